package parse

import (
	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/internal/version"
	"github.com/commschamp/dslgen/internal/xmladapter"
)

// prop reads an optional property, reporting any BadXml condition the
// adapter detects (the property given both as attribute and child element,
// or given more than once) instead of silently discarding it.
func (b *Builder) prop(node *xmladapter.Node, name string) string {
	v, err := node.Property(name)
	if err != nil {
		b.Sink.Errorf(diag.KindBadXML, err.Pos, "%s", err.Message)
	}

	return v
}

// reqProp is prop, but also reports BadXml when the property is absent
// entirely.
func (b *Builder) reqProp(node *xmladapter.Node, name string) string {
	v, err := node.RequireProperty(name)
	if err != nil {
		b.Sink.Errorf(diag.KindBadXML, err.Pos, "%s", err.Message)
	}

	return v
}

// parseProlog consumes the properties common to every field (name,
// displayName, description, version bounds, semantic type, customisation
// flags) shared via the embedded Prologue struct (spec.md §3), propagating
// and validating its version bounds against the parent's.
func parseProlog(b *Builder, node *xmladapter.Node, parentSince, parentDeprecated uint) ir.Prologue {
	name := b.reqProp(node, "name")
	displayName := b.prop(node, "displayName")
	description := b.prop(node, "description")

	sinceStr := b.prop(node, "sinceVersion")
	deprecatedStr := b.prop(node, "deprecatedSince")
	removedStr := b.prop(node, "removed")

	p := ir.Prologue{
		Name:              name,
		DisplayNameRaw:    displayName,
		Description:       description,
		SinceVersion:      parseVersionOr(sinceStr, parentSince),
		DeprecatedSince:   parseVersionOr(deprecatedStr, parentDeprecated),
		DeprecatedRemoved: parseBool(removedStr, false),
		Pos:               node.Pos,
	}

	p.SemanticType = parseSemanticType(node)
	p.Flags = parseFlags(node)

	for _, a := range node.ExtraAttrs() {
		p.ExtraAttrs = append(p.ExtraAttrs, ir.ExtraAttr{Name: a.Name, Value: a.Value})
	}

	for _, c := range node.ExtraChildren() {
		p.ExtraChildren = append(p.ExtraChildren, c.Name)
	}

	parent := version.Bounds{SinceVersion: parentSince, DeprecatedSince: parentDeprecated, SchemaVersion: b.Schema.Version}
	version.Propagate(b.Sink, node.Pos, name, parent, &p, sinceStr != "", deprecatedStr != "")

	return p
}

func parseSemanticType(node *xmladapter.Node) ir.SemanticType {
	v, _ := node.Property("semanticType")

	switch v {
	case "version":
		return ir.SemanticVersion
	case "messageId":
		return ir.SemanticMessageID
	case "length":
		return ir.SemanticLength
	default:
		return ir.SemanticNone
	}
}

func parseFlags(node *xmladapter.Node) ir.Flags {
	flag := func(name string) bool {
		v, _ := node.Property(name)
		return v == "true"
	}

	return ir.Flags{
		Pseudo:          flag("pseudo"),
		DisplayReadOnly: flag("displayReadOnly"),
		DisplayHidden:   flag("displayHidden"),
		Customizable:    flag("customizable"),
		FailOnInvalid:   flag("failOnInvalid"),
		ForceGen:        flag("forceGen"),
	}
}

func parseEndian(node *xmladapter.Node, dflt ir.Endian) ir.Endian {
	v, _ := node.Property("endian")

	switch v {
	case "big":
		return ir.BigEndian
	case "little":
		return ir.LittleEndian
	default:
		return dflt
	}
}

var fieldElementNames = []string{
	"int", "float", "enum", "set", "bitfield", "bundle",
	"string", "data", "list", "ref", "optional", "variant",
}

func isFieldElement(name string) bool {
	for _, n := range fieldElementNames {
		if n == name {
			return true
		}
	}

	return false
}
