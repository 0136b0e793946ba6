package emit

import "github.com/commschamp/dslgen/internal/ir"

// LayerData is the template context for a single frame layer.
type LayerData struct {
	Name      string
	Kind      string
	FieldName string
}

// FrameData is the template context for one frame's generated stack type.
type FrameData struct {
	Package string
	Name    string
	Layers  []LayerData
}

// BuildFrameData converts a resolved frame into its template context.
func BuildFrameData(pkg string, f *ir.Frame) FrameData {
	d := FrameData{Package: pkg, Name: goName(f.Name)}

	for _, l := range f.Layers {
		ld := LayerData{Name: goName(l.Common().Name), Kind: l.Kind().String()}
		if l.Common().Field != nil {
			ld.FieldName = goName(l.Common().Field.Common().Name)
		}

		d.Layers = append(d.Layers, ld)
	}

	return d
}
