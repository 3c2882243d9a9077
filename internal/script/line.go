package script

import "strings"

// LineKind classifies one raw line of an annotated SQL script
type LineKind int

const (
	LineBlank LineKind = iota
	LineSQL
	LineComment           // plain line comment, no recognized metadata
	LineNameComment       // line comment carrying name: or title:
	LineDescComment       // line comment carrying description:
	LineBlockOpen         // opens a block comment
	LineBlockClose        // closes a block comment
	LineInsideBlock       // discarded content inside a block comment
	LineBlockOpenAndClose // /* ... */ on a single line
)

// classifiedLine is one tokenized script line. Value carries the metadata
// payload for name/description comments.
type classifiedLine struct {
	Kind  LineKind
	Text  string
	Value string
}

// classifyLine tokenizes a single line given the surrounding block-comment
// state. It never looks at more than one line.
func classifyLine(line string, inBlockComment bool) classifiedLine {
	trimmed := strings.TrimSpace(line)

	if inBlockComment {
		if strings.Contains(trimmed, "*/") {
			return classifiedLine{Kind: LineBlockClose, Text: line}
		}

		return classifiedLine{Kind: LineInsideBlock, Text: line}
	}

	if trimmed == "" {
		return classifiedLine{Kind: LineBlank, Text: line}
	}

	if strings.HasPrefix(trimmed, "/*") {
		if strings.Contains(trimmed[2:], "*/") {
			return classifiedLine{Kind: LineBlockOpenAndClose, Text: line}
		}

		return classifiedLine{Kind: LineBlockOpen, Text: line}
	}

	if strings.HasPrefix(trimmed, "--") {
		body := strings.TrimSpace(trimmed[2:])
		lower := strings.ToLower(body)

		if value, ok := metadataValue(body, lower, "name:"); ok {
			return classifiedLine{Kind: LineNameComment, Text: line, Value: value}
		}

		if value, ok := metadataValue(body, lower, "title:"); ok {
			return classifiedLine{Kind: LineNameComment, Text: line, Value: value}
		}

		if value, ok := metadataValue(body, lower, "description:"); ok {
			return classifiedLine{Kind: LineDescComment, Text: line, Value: value}
		}

		return classifiedLine{Kind: LineComment, Text: line}
	}

	return classifiedLine{Kind: LineSQL, Text: line}
}

// metadataValue extracts the text after a case-insensitive "key:" marker
func metadataValue(body, lower, key string) (string, bool) {
	idx := strings.Index(lower, key)
	if idx < 0 {
		return "", false
	}

	return strings.TrimSpace(body[idx+len(key):]), true
}
