package emit

import "github.com/commschamp/dslgen/internal/ir"

// InterfaceData is the template context for one interface's generated
// transport-field bundle.
type InterfaceData struct {
	Package string
	Name    string
	Fields  []FieldData
}

// BuildInterfaceData converts a resolved interface into its template
// context, following the field member alongside it, not its CopiedFrom
// chain (CopyFieldsFrom was already flattened into Fields by Phase B).
func BuildInterfaceData(pkg string, i *ir.Interface) InterfaceData {
	d := InterfaceData{Package: pkg, Name: goName(i.Name)}

	for _, f := range i.Fields {
		d.Fields = append(d.Fields, BuildFieldData(f))
	}

	return d
}
