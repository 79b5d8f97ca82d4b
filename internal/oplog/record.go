package oplog

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// DisplayLimit is the number of recent entries surfaced in the TUI and in
// `aliddns oplog list` by default. Older entries stay in the database until
// pruned.
const DisplayLimit = 20

// Entry represents one recorded DNS operation outcome.
type Entry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Operation  string    `json:"operation"` // e.g. "reconcile", "delete", "set-status"
	Domain     string    `json:"domain,omitempty"`
	RecordID   string    `json:"record_id,omitempty"`
	RecordName string    `json:"record_name,omitempty"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}
