package gen

import "strings"

// Subst replaces every `#^#KEY#$#` placeholder in tmpl with values[KEY],
// the flat placeholder convention the original tool's per-fragment string
// templates use (e.g. assembling one field's accessor body before it is
// dropped into the surrounding Go-templated file via bavard). An unset key
// is replaced with the empty string rather than left verbatim, since a
// left-over placeholder in emitted source is always a generator bug, never
// something a reader should see.
func Subst(tmpl string, values map[string]string) string {
	var b strings.Builder
	b.Grow(len(tmpl))

	for {
		start := strings.Index(tmpl, "#^#")
		if start < 0 {
			b.WriteString(tmpl)
			break
		}

		end := strings.Index(tmpl[start:], "#$#")
		if end < 0 {
			b.WriteString(tmpl)
			break
		}

		end += start

		b.WriteString(tmpl[:start])

		key := tmpl[start+3 : end]
		b.WriteString(values[key])

		tmpl = tmpl[end+3:]
	}

	return b.String()
}
