package prompt

import "strings"

// Completer suggests known tags for the tag currently being typed in a
// comma-separated tag list.
type Completer struct {
	Tags []string
}

// Suggest returns the known tags whose lowercase form contains the segment
// after the last ", " in input. Blank input yields no suggestions.
func (c Completer) Suggest(input string) []string {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return nil
	}
	parts := strings.Split(lower, ", ")
	current := strings.TrimSpace(parts[len(parts)-1])

	var out []string
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), current) {
			out = append(out, t)
		}
	}
	return out
}

// Complete replaces the tag being typed with suggestion, keeping every tag
// before the last comma.
func (c Completer) Complete(input, suggestion string) string {
	i := strings.LastIndex(input, ",")
	if i < 0 {
		return suggestion
	}
	return input[:i] + ", " + suggestion
}

// SplitTags splits a comma-separated answer into trimmed, non-empty tags.
func SplitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}
