package audit

import (
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileName is the audit log file inside the store directory.
const FileName = ".audit.jsonl"

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`   // Random UUID per entry.
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // OS username performing the action.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Secret  string   `json:"secret,omitempty"`  // For put/rm.
	Secrets []string `json:"secrets,omitempty"` // For rotate.
	Count   int      `json:"count,omitempty"`   // For rotate.
	Source  string   `json:"source,omitempty"`  // Passphrase source: vault or file.
}

// Trail is the audit log for one secret store.
type Trail struct {
	// Path is the JSONL file entries are appended to.
	Path string
}

// ForStore returns the audit trail for a store directory.
func ForStore(storeDir string) Trail {
	return Trail{Path: filepath.Join(storeDir, FileName)}
}

// NewEntry builds an entry for an operation, stamped with an ID and the
// current OS user.
func NewEntry(op string) Entry {
	entry := Entry{
		ID:        uuid.New().String(),
		Operation: op,
	}
	if u, err := user.Current(); err == nil {
		entry.User = u.Username
	}
	return entry
}

// Log appends an entry to the audit log.
// Audit logging is best-effort: administrative operations must not fail
// just because the trail could not be written (the store may live on a
// read-only mount during verification runs).
func (t Trail) Log(entry Entry) {
	if t.Path == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	// #nosec G306 -- the trail holds names and timestamps, never secret values.
	f, err := os.OpenFile(t.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func (t Trail) ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(t.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
