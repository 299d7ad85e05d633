package gradle

import "strings"

// Tree-drawing vocabulary of the report.
const (
	midConnector  = "+---"
	lastConnector = `\---`
	barUnit       = "|    "
	padUnit       = "     "

	// DepthMarker replaces every indentation unit and connector in a
	// normalized line.
	DepthMarker = 'X'
)

// Suffixes Gradle appends after the version.
const (
	omittedMark    = "(*)"
	constraintMark = "(c)"
	unresolvedMark = "(n)"
	arrow          = "->"
)

// Normalize rewrites the leading tree drawing of line into a run of
// [DepthMarker] characters, one per indentation unit or connector:
//
//	"|    \--- a:b:1" -> "XX a:b:1"
//
// Only the leading drawing is rewritten; the payload is left untouched.
func Normalize(line string) string {
	var b strings.Builder
	rest := line
	for {
		switch {
		case strings.HasPrefix(rest, midConnector), strings.HasPrefix(rest, lastConnector):
			rest = rest[len(midConnector):]
		case strings.HasPrefix(rest, barUnit), strings.HasPrefix(rest, padUnit):
			rest = rest[len(barUnit):]
		default:
			b.WriteString(rest)
			return b.String()
		}
		b.WriteByte(DepthMarker)
	}
}

// Depth counts the leading depth markers of a normalized line.
func Depth(normalized string) int {
	n := 0
	for n < len(normalized) && normalized[n] == DepthMarker {
		n++
	}
	return n
}

// Payload returns the dependency text of a raw report line with the tree
// drawing removed.
func Payload(line string) string {
	norm := Normalize(line)
	return strings.TrimSpace(norm[Depth(norm):])
}

// ParseLine parses one raw dependency line.
//
// The level is the marker count minus one: the first dependency under a
// configuration is level 0, and a line without markers lands on
// [ConfigurationLevel], where it cannot be placed. A payload that does not
// split into group:artifact:version yields an opaque node whose label is the
// raw line. Anything after the second colon belongs to the version.
func ParseLine(line string) *Node {
	norm := Normalize(line)
	depth := Depth(norm)
	payload := strings.TrimSpace(norm[depth:])
	level := depth - 1

	fields := strings.SplitN(payload, ":", 3)
	if len(fields) < 3 {
		return &Node{Label: line, Level: level, Opaque: true}
	}

	n := &Node{
		Label:    payload,
		Group:    fields[0],
		Artifact: fields[1],
		Level:    level,
	}

	version := strings.TrimSpace(fields[2])
	version, n.Omitted = stripMark(version, omittedMark)
	version, n.Constraint = stripMark(version, constraintMark)
	version, n.Unresolved = stripMark(version, unresolvedMark)

	if requested, resolved, ok := strings.Cut(version, arrow); ok {
		n.RequestedVersion = strings.TrimSpace(requested)
		version = strings.TrimSpace(resolved)
		n.ReplacedByVersion = version
	}
	n.Version = version
	return n
}

func stripMark(version, mark string) (string, bool) {
	if !strings.Contains(version, mark) {
		return version, false
	}
	return strings.TrimSpace(strings.ReplaceAll(version, mark, "")), true
}
