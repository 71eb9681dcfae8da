package session

import (
	"encoding/json"
	"strings"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/models"
)

// InferObservationType guesses an observation type from the tool and its
// serialized input. Substring cues only; downstream consumers must not treat
// the result as ground truth.
func InferObservationType(toolName string, toolInput map[string]any) models.ObservationType {
	raw, _ := json.Marshal(toolInput)
	input := strings.ToLower(string(raw))

	switch {
	case containsAny(input, "fix", "bug", "error"):
		return models.TypeBugfix
	case containsAny(input, "add", "new", "feature"):
		return models.TypeFeature
	case containsAny(input, "refactor", "rename", "move"):
		return models.TypeRefactor
	case toolName == "Read" || toolName == "Glob" || toolName == "Grep":
		return models.TypeDiscovery
	}
	return models.TypeChange
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
