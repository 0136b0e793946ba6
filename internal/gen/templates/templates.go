// Package templates holds the Go-template bodies bavard renders into
// generated source files. They are kept as string constants rather than
// checked-in *.tmpl files so the generator core has no runtime dependency
// on a template directory shipping alongside the binary; internal/gen
// stages them to a scratch directory at batch construction time purely to
// satisfy bavard's disk-based Generate API (see field/internal/generator
// for the origin of that API shape).
package templates

const fieldTmpl = `// Code generated by dslgen. DO NOT EDIT.

package {{.Package}}

{{.Doc}}type {{.Name}} struct {
	value any
}

{{.AccessorBody}}
`

const interfaceTmpl = `// Code generated by dslgen. DO NOT EDIT.

package {{.Package}}

// {{.Name}} is the common transport-field bundle every message of this
// frame carries, generated from an <interface> definition.
type {{.Name}} struct {
{{range .Fields}}	{{.Name}} {{.Kind}}Field
{{end}}}

{{range .Fields}}
{{.AccessorBody}}
{{end}}
`

const messageTmpl = `// Code generated by dslgen. DO NOT EDIT.

package {{.Package}}

// {{.Name}} was generated from a <message> definition with id {{.ID}},
// sent by {{.Sender}}.
type {{.Name}} struct {
{{range .Fields}}	{{.Name}} {{.Kind}}Field
{{end}}}

func (m *{{.Name}}) ID() int64 { return {{.ID}} }

{{range .Fields}}
{{.AccessorBody}}
{{end}}
`

const frameTmpl = `// Code generated by dslgen. DO NOT EDIT.

package {{.Package}}

// {{.Name}} is the generated protocol stack for a <frame> definition,
// one field per layer in outer-to-inner order.
type {{.Name}} struct {
{{range .Layers}}	{{.Name}} {{.Kind}}Layer
{{end}}}
`

const optionsTmpl = `// Code generated by dslgen. DO NOT EDIT.

package {{.Package}}

// Options lists every field in this schema that declared
// customizable="true", one method per field for overriding its generated
// storage/behaviour.
type Options interface {
{{range .Entries}}	{{.}}() any
{{end}}}
`

const dispatchTmpl = `// Code generated by dslgen. DO NOT EDIT.

package {{.Package}}

// MessageFactory constructs a zero-value message for a wire id, the
// generated analogue of a commsdsl2comms message-factory class.
func MessageFactory(id int64) any {
	switch id {
{{range .Messages}}	case {{.ID}}:
		return &{{.Name}}{}
{{end}}	default:
		return nil
	}
}
`

// Bodies maps a staged filename to its template source. internal/gen
// writes every entry out under a scratch directory once per batch, then
// hands bavard that directory's path so its Generate calls can resolve the
// Templates names passed via gen.Batch.Add.
var Bodies = map[string]string{
	"field.go.tmpl":     fieldTmpl,
	"interface.go.tmpl": interfaceTmpl,
	"message.go.tmpl":   messageTmpl,
	"frame.go.tmpl":     frameTmpl,
	"options.go.tmpl":   optionsTmpl,
	"dispatch.go.tmpl":  dispatchTmpl,
}
