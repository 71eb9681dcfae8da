package hooks

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EventType is the discriminator on incoming hook payloads.
type EventType string

const (
	PreToolUse   EventType = "PreToolUse"
	PostToolUse  EventType = "PostToolUse"
	Notification EventType = "Notification"
	Stop         EventType = "Stop"
)

// Event is one hook invocation's payload. Tool fields are set for
// PreToolUse/PostToolUse; StopReason and TranscriptSummary only for Stop.
type Event struct {
	HookType          EventType       `json:"hook_type"`
	SessionID         string          `json:"session_id"`
	CWD               string          `json:"cwd"`
	ProjectPath       string          `json:"project_path,omitempty"`
	ToolName          string          `json:"tool_name,omitempty"`
	ToolInput         map[string]any  `json:"tool_input,omitempty"`
	ToolOutput        json.RawMessage `json:"tool_output,omitempty"`
	StopReason        string          `json:"stop_reason,omitempty"`
	TranscriptSummary string          `json:"transcript_summary,omitempty"`
}

// Parse decodes a hook payload and checks the fields every event must carry.
func Parse(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse hook input: %w", err)
	}
	if ev.SessionID == "" {
		return nil, errors.New("hook input missing session_id")
	}
	if ev.HookType == "" {
		return nil, errors.New("hook input missing hook_type")
	}
	return &ev, nil
}

// StringInput returns a string-typed tool input field, or "" when absent or
// of another type.
func (e *Event) StringInput(key string) string {
	if e.ToolInput == nil {
		return ""
	}
	s, _ := e.ToolInput[key].(string)
	return s
}
