// Package emit walks the validated IR and produces the template contexts
// internal/gen renders into source files: one emission routine per
// construct (field kind, interface, message, frame, project-level
// artifact), each reading only from internal/ir and writing text through
// internal/gen's flat substitution primitive, per the design notes.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/commschamp/dslgen/internal/gen"
	"github.com/commschamp/dslgen/internal/ir"
)

// FieldData is the template context for a single field's emitted
// accessor/storage code, shared by every field kind; AccessorBody already
// holds the kind-specific fragment, assembled via the flat #^#KEY#$#
// substitution pass before this struct ever reaches a Go-templated file.
type FieldData struct {
	Name         string
	DisplayName  string
	Kind         string
	Description  string
	Doc          string
	Deprecated   bool
	SinceVersion uint
	MinLength    uint64
	MaxLength    uint64
	AccessorBody string
}

// accessorFragments holds one flat-substitution template per field kind,
// grounded on the corresponding *FieldImpl.cpp accessor bodies in
// original_source/lib/src (e.g. IntFieldImpl.cpp's getValue()/setValue()
// pair, EnumFieldImpl.cpp's valid() check). The text itself is a
// placeholder for the real per-kind wire logic (out of scope here); what
// matters is that each kind has its own fragment, filled from IR state.
var accessorFragments = map[ir.FieldKind]string{
	ir.KindInt: "func (f *#^#NAME#$#) Value() int64 { return f.value }\n" +
		"func (f *#^#NAME#$#) SetValue(v int64) { f.value = v }\n",
	ir.KindFloat: "func (f *#^#NAME#$#) Value() float64 { return f.value }\n",
	ir.KindEnum: "func (f *#^#NAME#$#) Value() #^#UNDERLYING#$# { return f.value }\n" +
		"func (f *#^#NAME#$#) Valid() bool { return #^#NAME#$#ValueValid(f.value) }\n",
	ir.KindSet:      "func (f *#^#NAME#$#) BitValue(idx uint) bool { return f.bits.Test(idx) }\n",
	ir.KindBitfield: "// #^#NAME#$# packs #^#MEMBERCOUNT#$# members into #^#LENGTH#$# bytes.\n",
	ir.KindBundle:   "// #^#NAME#$# aggregates #^#MEMBERCOUNT#$# members.\n",
	ir.KindString:   "func (f *#^#NAME#$#) Value() string { return f.value }\n",
	ir.KindData:     "func (f *#^#NAME#$#) Value() []byte { return f.value }\n",
	ir.KindList:     "func (f *#^#NAME#$#) Elements() []#^#ELEMENT#$# { return f.elements }\n",
	ir.KindRef:      "// #^#NAME#$# is a reference to #^#TARGET#$#.\n",
	ir.KindOptional: "func (f *#^#NAME#$#) Exists() bool { return f.exists }\n",
	ir.KindVariant:  "func (f *#^#NAME#$#) Index() int { return f.index }\n",
}

// BuildFieldData converts a single resolved field into its template
// context.
func BuildFieldData(f ir.Field) FieldData {
	c := f.Common()

	d := FieldData{
		Name:         c.Name,
		DisplayName:  c.DisplayName(),
		Kind:         f.Kind().String(),
		Description:  c.Description,
		Deprecated:   c.IsDeprecated(),
		SinceVersion: c.SinceVersion,
		MinLength:    f.MinLength(),
		MaxLength:    f.MaxLength(),
		AccessorBody: accessorBody(f),
	}
	d.Doc = FieldDoc(d)

	return d
}

func accessorBody(f ir.Field) string {
	frag, ok := accessorFragments[f.Kind()]
	if !ok {
		return ""
	}

	values := map[string]string{"NAME": goName(f.Common().Name)}

	switch v := f.(type) {
	case *ir.EnumField:
		values["UNDERLYING"] = underlyingGoType(v.Underlying, v.Signed)
	case *ir.BitfieldField:
		values["MEMBERCOUNT"] = strconv.Itoa(len(v.Members))
		values["LENGTH"] = strconv.FormatUint(v.MinLength(), 10)
	case *ir.BundleField:
		values["MEMBERCOUNT"] = strconv.Itoa(len(v.Members))
	case *ir.ListField:
		if v.Element != nil {
			values["ELEMENT"] = goName(v.Element.Common().Name)
		}
	case *ir.RefField:
		values["TARGET"] = v.TargetName
	}

	return gen.Subst(frag, values)
}

func underlyingGoType(w ir.IntWidth, signed bool) string {
	width := map[ir.IntWidth]string{
		ir.Int8: "8", ir.Int16: "16", ir.Int32: "32", ir.Int64: "64",
		ir.Intvar: "64", ir.Uintvar: "64",
	}[w]

	if signed {
		return "int" + width
	}

	return "uint" + width
}

// goName exports f for use as a Go identifier, matching the teacher's
// convention of title-casing schema names for generated symbols.
func goName(name string) string {
	if name == "" {
		return name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}

// FieldDoc renders a field's description as a Go doc comment, one line per
// source line, matching gofmt's comment convention.
func FieldDoc(d FieldData) string {
	if d.Description == "" {
		return ""
	}

	var b strings.Builder

	for _, line := range strings.Split(d.Description, "\n") {
		fmt.Fprintf(&b, "// %s\n", line)
	}

	return b.String()
}
