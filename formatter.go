package metainspect

import "strings"

// FormatResult formats a result as human-readable text.
// Absent fields are shown as "<none>", list fields one item per line.
func FormatResult(r *Result) string {
	var b strings.Builder
	b.WriteString("url: ")
	b.WriteString(r.URL)
	b.WriteString("\n")
	for _, f := range r.Fields() {
		b.WriteString(f.Name)
		b.WriteString(":")
		switch {
		case !f.Valid:
			b.WriteString(" <none>\n")
		case f.List:
			b.WriteString("\n")
			for _, v := range f.Values {
				b.WriteString("  - ")
				b.WriteString(v)
				b.WriteString("\n")
			}
		default:
			b.WriteString(" ")
			b.WriteString(f.Values[0])
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatResults formats several results separated by blank lines.
func FormatResults(results []*Result) string {
	if len(results) == 0 {
		return ""
	}
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, FormatResult(r))
	}
	return strings.Join(parts, "\n")
}
