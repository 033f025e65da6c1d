package cmd

import (
	"strings"
	"testing"

	logger "github.com/credstore-io/credstore/internal/logging"
)

func TestDoctorCommandHealthy(t *testing.T) {
	setupTestStore(t)
	Logger = logger.Logger{}
	defer resetDoctorCommandState()
	seedTestSecret(t, "db_test", "P@ssw0rd1", "correct-horse")

	output, err := captureOutput(func() error {
		return doctorCmd.RunE(doctorCmd, nil)
	})
	if err != nil {
		t.Fatalf("doctor command failed on a healthy store: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "0 errors") {
		t.Errorf("Expected summary with 0 errors, got %q", output)
	}
}

func TestDoctorCommandMissingStore(t *testing.T) {
	setupTestStore(t)
	Logger = logger.Logger{}
	defer resetDoctorCommandState()
	cfg.StoreDir = cfg.StoreDir + "/does-not-exist"

	_, err := captureOutput(func() error {
		return doctorCmd.RunE(doctorCmd, nil)
	})
	if err == nil {
		t.Fatalf("Expected non-nil error when checks fail")
	}
}

func TestDoctorCommandJSON(t *testing.T) {
	setupTestStore(t)
	Logger = logger.Logger{}
	defer resetDoctorCommandState()
	seedTestSecret(t, "db_test", "P@ssw0rd1", "correct-horse")
	doctorJSON = true

	output, err := captureOutput(func() error {
		return doctorCmd.RunE(doctorCmd, nil)
	})
	if err != nil {
		t.Fatalf("doctor --json failed: %v", err)
	}
	if !strings.Contains(output, `"checks"`) || !strings.Contains(output, `"summary"`) {
		t.Errorf("Expected JSON document, got %q", output)
	}
}
