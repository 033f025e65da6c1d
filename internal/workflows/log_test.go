package workflows

import (
	"context"
	"testing"

	"github.com/credstore-io/credstore/internal/audit"
)

func seedAudit(t *testing.T, storeDir string, entries []audit.Entry) {
	t.Helper()
	trail := audit.ForStore(storeDir)
	for _, e := range entries {
		trail.Log(e)
	}
}

func TestLogEmptyTrail(t *testing.T) {
	cfg := testConfig(t)

	result, err := Log(context.Background(), cfg, LogOptions{})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if result.TotalEntriesBeforeFilter != 0 || len(result.Entries) != 0 {
		t.Errorf("Expected no entries, got %+v", result)
	}
}

func TestLogFilters(t *testing.T) {
	cfg := testConfig(t)
	seedAudit(t, cfg.StoreDir, []audit.Entry{
		{ID: "1", Timestamp: "2026-08-01T10:00:00.000000Z", User: "alice", Operation: "put", Secret: "db_test"},
		{ID: "2", Timestamp: "2026-08-02T10:00:00.000000Z", User: "bob", Operation: "rm", Secret: "db_test"},
		{ID: "3", Timestamp: "2026-08-03T10:00:00.000000Z", User: "alice", Operation: "rotate", Count: 2},
	})

	result, err := Log(context.Background(), cfg, LogOptions{User: "alice"})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if result.TotalEntriesBeforeFilter != 3 {
		t.Errorf("Expected 3 total entries, got %d", result.TotalEntriesBeforeFilter)
	}
	if len(result.Entries) != 2 {
		t.Errorf("Expected 2 entries for alice, got %v", result.Entries)
	}

	result, err = Log(context.Background(), cfg, LogOptions{Operations: "put,rm"})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Errorf("Expected 2 entries for put,rm, got %v", result.Entries)
	}

	result, err = Log(context.Background(), cfg, LogOptions{Since: "2026-08-02"})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Errorf("Expected 2 entries since 2026-08-02, got %v", result.Entries)
	}

	result, err = Log(context.Background(), cfg, LogOptions{Until: "2026-08-01"})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Errorf("Expected 1 entry until 2026-08-01, got %v", result.Entries)
	}
}

func TestLogLimitAndReverse(t *testing.T) {
	cfg := testConfig(t)
	seedAudit(t, cfg.StoreDir, []audit.Entry{
		{ID: "1", Timestamp: "2026-08-01T10:00:00.000000Z", User: "alice", Operation: "put"},
		{ID: "2", Timestamp: "2026-08-02T10:00:00.000000Z", User: "alice", Operation: "put"},
		{ID: "3", Timestamp: "2026-08-03T10:00:00.000000Z", User: "alice", Operation: "put"},
	})

	result, err := Log(context.Background(), cfg, LogOptions{Limit: 2})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 2 || result.Entries[0].ID != "2" {
		t.Errorf("Expected last 2 entries, got %v", result.Entries)
	}

	result, err = Log(context.Background(), cfg, LogOptions{Limit: 2, Reverse: true})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 2 || result.Entries[0].ID != "3" {
		t.Errorf("Expected most recent first, got %v", result.Entries)
	}
}

func TestLogInvalidDate(t *testing.T) {
	cfg := testConfig(t)

	if _, err := Log(context.Background(), cfg, LogOptions{Since: "01-08-2026"}); err == nil {
		t.Errorf("Expected error for invalid --since date")
	}
	if _, err := Log(context.Background(), cfg, LogOptions{Until: "bad"}); err == nil {
		t.Errorf("Expected error for invalid --until date")
	}
}

func TestFormatDetails(t *testing.T) {
	tests := []struct {
		entry audit.Entry
		want  string
	}{
		{audit.Entry{Operation: "put", Secret: "db_test"}, "db_test"},
		{audit.Entry{Operation: "rm", Secret: "db_test"}, "db_test"},
		{audit.Entry{Operation: "rotate", Count: 2, Secrets: []string{"a", "b"}}, "a, b"},
		{audit.Entry{Operation: "rotate", Count: 5, Source: "vault"}, "5 secrets (vault)"},
		{audit.Entry{Operation: "init", Source: "prompt"}, "prompt"},
		{audit.Entry{Operation: "unknown"}, ""},
	}
	for _, tt := range tests {
		if got := FormatDetails(tt.entry); got != tt.want {
			t.Errorf("FormatDetails(%s) = %q, want %q", tt.entry.Operation, got, tt.want)
		}
	}
}
