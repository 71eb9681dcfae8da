package format

import (
	"regexp"
	"strings"
	"time"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/models"
)

// TypeEmoji maps each observation type to its display emoji.
var TypeEmoji = map[models.ObservationType]string{
	models.TypeBugfix:    "🔴",
	models.TypeFeature:   "🟣",
	models.TypeRefactor:  "🔄",
	models.TypeChange:    "✅",
	models.TypeDiscovery: "🔵",
	models.TypeDecision:  "⚖️",
}

// DefaultEmoji marks observations with an unrecognized type.
const DefaultEmoji = "📝"

// Emoji resolves the display emoji for an observation type.
func Emoji(t models.ObservationType) string {
	if e, ok := TypeEmoji[t]; ok {
		return e
	}
	return DefaultEmoji
}

var (
	illegalChars   = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// SanitizeFileName makes a string safe to use as a filename: filesystem
// metacharacters become underscores, whitespace and underscore runs collapse
// to a single underscore, edge underscores are trimmed, and the result is
// capped at 80 runes. Empty input (or input that sanitizes away entirely)
// yields "untitled". Idempotent and total.
func SanitizeFileName(name string) string {
	if name == "" {
		return "untitled"
	}

	s := illegalChars.ReplaceAllString(name, "_")
	s = whitespaceRuns.ReplaceAllString(s, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")

	if runes := []rune(s); len(runes) > 80 {
		s = strings.TrimRight(string(runes[:80]), "_")
	}
	if s == "" {
		return "untitled"
	}
	return s
}

// FormatYearMonth renders an epoch-millisecond timestamp as "YYYY-MM" in the
// local time zone, for folder bucketing.
func FormatYearMonth(epochMillis int64) string {
	return time.UnixMilli(epochMillis).Format("2006-01")
}

// FormatIsoDate renders an epoch-millisecond timestamp as a UTC ISO-8601
// instant with millisecond precision, e.g. "2026-01-28T10:30:00.000Z".
func FormatIsoDate(epochMillis int64) string {
	return time.UnixMilli(epochMillis).UTC().Format("2006-01-02T15:04:05.000Z")
}

// FormatReadableDate renders an epoch-millisecond timestamp for human
// display. Never used in paths or parsed back.
func FormatReadableDate(epochMillis int64) string {
	return time.UnixMilli(epochMillis).Format("2006-01-02 15:04")
}
