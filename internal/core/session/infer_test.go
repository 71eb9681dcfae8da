package session

import (
	"testing"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/models"
)

func TestInferObservationType(t *testing.T) {
	tests := []struct {
		name      string
		toolName  string
		toolInput map[string]any
		want      models.ObservationType
	}{
		{
			name:      "fix cue",
			toolName:  "Edit",
			toolInput: map[string]any{"file_path": "a.go", "new_string": "fix the crash"},
			want:      models.TypeBugfix,
		},
		{
			name:      "error cue in path",
			toolName:  "Write",
			toolInput: map[string]any{"file_path": "errors.go"},
			want:      models.TypeBugfix,
		},
		{
			name:      "feature cue",
			toolName:  "Write",
			toolInput: map[string]any{"content": "add a new endpoint"},
			want:      models.TypeFeature,
		},
		{
			name:      "refactor cue",
			toolName:  "Edit",
			toolInput: map[string]any{"old_string": "rename this helper"},
			want:      models.TypeRefactor,
		},
		{
			name:      "read-only tool",
			toolName:  "Grep",
			toolInput: map[string]any{"pattern": "Handler"},
			want:      models.TypeDiscovery,
		},
		{
			name:      "no cue",
			toolName:  "Edit",
			toolInput: map[string]any{"file_path": "main.go"},
			want:      models.TypeChange,
		},
		{
			name:      "case insensitive",
			toolName:  "Edit",
			toolInput: map[string]any{"content": "FIX the thing"},
			want:      models.TypeBugfix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferObservationType(tt.toolName, tt.toolInput); got != tt.want {
				t.Errorf("InferObservationType() = %q, want %q", got, tt.want)
			}
		})
	}
}
