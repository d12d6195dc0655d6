package toolschema

import "strings"

// Docstring section markers.
const (
	ArgsMarker    = "Args:"
	ReturnsMarker = "Returns:"
)

// ParseDocstring splits a docstring into its summary and a parameter name →
// description table.
//
// The summary is the trimmed text before the first "Args:" marker (the whole
// text when there is none). The arguments block runs from that marker to the
// next "Args:" or "Returns:" marker; each line of the form "name: description"
// becomes one entry, later duplicates win and lines without a colon are skipped.
// Parsing never fails: a docstring with no usable lines yields an empty table.
func ParseDocstring(doc string) (summary string, params map[string]string) {
	summary, block, ok := splitSections(doc)
	if !ok {
		return summary, map[string]string{}
	}
	return summary, parseArgLines(block)
}

// splitSections is the first scanner pass: it cuts the docstring into the
// summary and the raw arguments block.
func splitSections(doc string) (summary, args string, hasArgs bool) {
	parts := strings.SplitN(doc, ArgsMarker, 3)
	summary = strings.TrimSpace(parts[0])
	if len(parts) < 2 {
		return summary, "", false
	}
	args, _, _ = strings.Cut(parts[1], ReturnsMarker)
	return summary, args, true
}

// parseArgLines is the second scanner pass: one "name: description" per line.
func parseArgLines(block string) map[string]string {
	out := make(map[string]string)
	for line := range strings.Lines(strings.TrimSpace(block)) {
		name, desc, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out[strings.TrimSpace(name)] = strings.TrimSpace(desc)
	}
	return out
}

// cleanDoc normalizes raw documentation text the way docstring tooling does:
// tabs expand to 8 spaces, the common indentation of all lines after the first
// is removed, and leading and trailing blank lines are dropped.
func cleanDoc(doc string) string {
	if strings.TrimSpace(doc) == "" {
		return ""
	}
	lines := strings.Split(strings.ReplaceAll(doc, "\t", "        "), "\n")
	indent := -1
	for _, line := range lines[1:] {
		content := strings.TrimLeft(line, " ")
		if content == "" {
			continue
		}
		if n := len(line) - len(content); indent < 0 || n < indent {
			indent = n
		}
	}
	lines[0] = strings.TrimLeft(lines[0], " ")
	if indent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= indent {
				lines[i] = lines[i][indent:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
		}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
