package models

// Summary is the consolidated end-of-session report. All fields are free
// text; empty sections are simply omitted from the rendered note.
type Summary struct {
	Request      string
	Investigated string
	Learned      string
	Completed    string
	NextSteps    string
	Notes        string
}

// NoteMetadata carries the identity and timing shared by observation and
// summary notes. ID is caller-assigned and only unique within one sync batch.
// CreatedAt is milliseconds since the Unix epoch; it drives both display and
// the year-month folder bucket.
type NoteMetadata struct {
	ID           int64
	SessionID    string
	Project      string
	PromptNumber int
	CreatedAt    int64
}

// SyncResult reports the outcome of writing one note. FilePath is set only
// on a successful, enabled write; Error is a human-readable message, set only
// on failure. A disabled sync is a success with no path.
type SyncResult struct {
	Success  bool
	FilePath string
	Error    string
}
