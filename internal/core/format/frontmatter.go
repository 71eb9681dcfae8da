package format

import (
	"fmt"
	"strings"
)

// Field is one key/value pair in a front matter block. Order is significant,
// so callers pass a slice rather than a map.
type Field struct {
	Key   string
	Value any
}

// Frontmatter serializes ordered key/value pairs into a YAML-subset block
// delimited by "---" lines. Nil values, empty arrays, and empty array items
// are skipped, string slices become "- item" lists, multi-line strings become literal block
// scalars, and everything else is emitted as "key: value" with default
// formatting. This is intentionally not a general YAML encoder: values are
// interpolated verbatim, with no quoting or escaping.
func Frontmatter(fields []Field) string {
	lines := []string{"---"}

	for _, f := range fields {
		switch v := f.Value.(type) {
		case nil:
			continue
		case []string:
			items := v[:0:0]
			for _, item := range v {
				if item != "" {
					items = append(items, item)
				}
			}
			if len(items) == 0 {
				continue
			}
			lines = append(lines, f.Key+":")
			for _, item := range items {
				lines = append(lines, "  - "+item)
			}
		case string:
			if strings.Contains(v, "\n") {
				lines = append(lines, f.Key+": |")
				for _, line := range strings.Split(v, "\n") {
					lines = append(lines, "  "+line)
				}
			} else {
				lines = append(lines, f.Key+": "+v)
			}
		default:
			lines = append(lines, fmt.Sprintf("%s: %v", f.Key, v))
		}
	}

	lines = append(lines, "---")
	return strings.Join(lines, "\n")
}
