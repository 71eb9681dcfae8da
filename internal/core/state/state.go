package state

import (
	"github.com/Axioz99/claude-obsidian-sync/internal/core/models"
)

// SessionState is the durable per-session working record, folded forward by
// the accumulator between hook invocations. JSON field names match the
// on-disk format; one file per session id.
type SessionState struct {
	SessionID     string              `json:"sessionId"`
	ProjectPath   string              `json:"projectPath"`
	StartTime     int64               `json:"startTime"`
	Observations  []ObservationRecord `json:"observations"`
	FilesRead     []string            `json:"filesRead"`
	FilesModified []string            `json:"filesModified"`
	PromptCount   int                 `json:"promptCount"`
}

// ObservationRecord is the accumulator's working representation of one
// observation, richer than the rendered form: it keeps the originating tool
// and timestamp, and is projected down to a models.Observation at flush time.
type ObservationRecord struct {
	ID            int64                  `json:"id"`
	Timestamp     int64                  `json:"timestamp"`
	ToolName      string                 `json:"toolName"`
	Type          models.ObservationType `json:"type"`
	Title         string                 `json:"title"`
	Subtitle      string                 `json:"subtitle,omitempty"`
	Facts         []string               `json:"facts"`
	FilesRead     []string               `json:"filesRead"`
	FilesModified []string               `json:"filesModified"`
}

// New creates an empty state for a session seen for the first time.
func New(sessionID, projectPath string, startTime int64) *SessionState {
	return &SessionState{
		SessionID:     sessionID,
		ProjectPath:   projectPath,
		StartTime:     startTime,
		Observations:  []ObservationRecord{},
		FilesRead:     []string{},
		FilesModified: []string{},
	}
}
