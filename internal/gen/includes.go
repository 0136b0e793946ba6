package gen

import "sort"

// Include is a single #include directive destined for a generated header:
// System marks the angle-bracket form (<...>), false the quoted form
// ("...").
type Include struct {
	Path   string
	System bool
}

// MergeIncludes dedups and sorts a generated file's include list: system
// includes first (alphabetically), then quoted includes (alphabetically),
// matching the convention the original tool's emitted headers use.
func MergeIncludes(lists ...[]Include) []Include {
	seen := map[Include]bool{}

	var system, local []Include

	for _, l := range lists {
		for _, inc := range l {
			if seen[inc] {
				continue
			}

			seen[inc] = true

			if inc.System {
				system = append(system, inc)
			} else {
				local = append(local, inc)
			}
		}
	}

	sort.Slice(system, func(i, j int) bool { return system[i].Path < system[j].Path })
	sort.Slice(local, func(i, j int) bool { return local[i].Path < local[j].Path })

	return append(system, local...)
}

// Render formats an include list as the literal lines of a generated file,
// one per directive.
func Render(includes []Include) []string {
	out := make([]string, len(includes))

	for i, inc := range includes {
		if inc.System {
			out[i] = "#include <" + inc.Path + ">"
		} else {
			out[i] = "#include \"" + inc.Path + "\""
		}
	}

	return out
}
