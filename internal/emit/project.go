package emit

import (
	"sort"

	json "github.com/segmentio/encoding/json"

	"github.com/commschamp/dslgen/internal/ir"
)

// OptionsData is the template context for the project-level customisation
// options file: one entry per namespace-level field that declared
// customizable="true" (members of messages, interfaces and composite
// fields are not included).
type OptionsData struct {
	Package string
	Entries []string
}

// BuildOptionsData walks every namespace in the schema collecting
// customizable field names, in namespace-then-field declaration order.
func BuildOptionsData(pkg string, schema *ir.Schema) OptionsData {
	d := OptionsData{Package: pkg}

	for _, ns := range schema.AllNamespaces() {
		for _, f := range ns.Fields() {
			if f.Common().Flags.Customizable {
				d.Entries = append(d.Entries, goName(f.Common().Name))
			}
		}
	}

	return d
}

// DispatchEntry is one row of the generated message-id dispatch table.
type DispatchEntry struct {
	Name string
	ID   int64
}

// DispatchData is the template context for the project-level message
// dispatch table and factory function.
type DispatchData struct {
	Package  string
	Messages []DispatchEntry
}

// BuildDispatchData collects every message in the schema, ordered the way
// spec.md §4.6 defines message order (explicit "order", falling back to
// declaration order within its namespace).
func BuildDispatchData(pkg string, schema *ir.Schema) DispatchData {
	msgs := schema.AllMessages()

	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Order < msgs[j].Order })

	d := DispatchData{Package: pkg}
	for _, m := range msgs {
		d.Messages = append(d.Messages, DispatchEntry{Name: goName(m.Name), ID: m.ID})
	}

	return d
}

// RuntimeLibrary names the fixed runtime support library the generated
// code depends on, pinned only as a version token (spec.md §6: the library
// itself is an external collaborator, out of scope).
type RuntimeLibrary struct {
	MinVersion string `json:"minVersion"`
}

// BuildManifest is the output-side build manifest written alongside
// generated sources.
type BuildManifest struct {
	Name           string         `json:"name"`
	Version        string         `json:"version"`
	RuntimeLibrary RuntimeLibrary `json:"runtimeLibrary"`
}

// MarshalManifest renders m as indented JSON via segmentio/encoding/json,
// the promoted build-metadata serialiser (SPEC_FULL.md §2).
func MarshalManifest(m BuildManifest) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
