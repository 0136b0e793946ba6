package parse

import (
	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/internal/resolve"
	"github.com/commschamp/dslgen/internal/version"
	"github.com/commschamp/dslgen/internal/xmladapter"
)

// registerInterface runs Phase A registration for a single <interface>
// element (spec.md §4.6: the transport fields every message extends).
func (b *Builder) registerInterface(node *xmladapter.Node, ns *ir.Namespace) {
	name := b.reqProp(node, "name")
	displayName := b.prop(node, "displayName")
	description := b.prop(node, "description")
	sinceStr := b.prop(node, "sinceVersion")
	deprecatedStr := b.prop(node, "deprecatedSince")

	iface := &ir.Interface{
		Name:           name,
		DisplayNameRaw: displayName,
		Description:    description,
		Pos:            node.Pos,
	}

	iface.SinceVersion = parseVersionOr(sinceStr, 0)
	iface.DeprecatedSince = parseVersionOr(deprecatedStr, ir.NoVersion)

	root := version.RootBounds(b.Schema.Version)
	pv := prologueView(iface)
	version.Propagate(b.Sink, node.Pos, name, root, pv, sinceStr != "", deprecatedStr != "")
	iface.SinceVersion, iface.DeprecatedSince = pv.SinceVersion, pv.DeprecatedSince

	for _, a := range node.ExtraAttrs() {
		iface.ExtraAttrs = append(iface.ExtraAttrs, ir.ExtraAttr{Name: a.Name, Value: a.Value})
	}

	iface.CopyFieldsFrom = b.prop(node, "copyFieldsFrom")

	ctx := fieldCtx{scope: ns, parentSince: iface.SinceVersion, parentDeprecated: iface.DeprecatedSince}

	for _, child := range node.Children(nil, extensionPrefixes, nil) {
		if isFieldElement(child.Name) {
			if f := b.parseField(child, ctx); f != nil {
				iface.Fields = append(iface.Fields, f)
			}
			continue
		}

		if child.Name == "alias" {
			aliasName := b.reqProp(child, "name")
			fieldPath := b.reqProp(child, "field")
			desc, _ := child.Property("description")

			idx := len(iface.Aliases)
			iface.Aliases = append(iface.Aliases, ir.Alias{Name: aliasName, FieldPath: fieldPath, Description: desc, Pos: child.Pos})

			b.queue(func(b *Builder) {
				res, err := resolve.FromSiblings(iface.Fields, fieldPath)
				if err != nil {
					b.Sink.Errorf(diag.KindUnresolvedReference, child.Pos, "alias %q: field %q not found", aliasName, fieldPath)
					return
				}

				iface.Aliases[idx].Target = res.Field
			})
		}
	}

	if iface.CopyFieldsFrom != "" {
		b.queue(func(b *Builder) {
			src, ok := ns.Interface(iface.CopyFieldsFrom)
			if !ok {
				b.Sink.Errorf(diag.KindUnresolvedReference, node.Pos,
					"interface %q: copyFieldsFrom=%q not found", name, iface.CopyFieldsFrom)
				return
			}

			iface.CopiedFrom = src
			iface.Fields = append(append([]ir.Field(nil), src.Fields...), iface.Fields...)
		})
	}

	if !ns.AddInterface(iface) {
		b.Sink.Errorf(diag.KindDuplicateName, node.Pos, "duplicate interface name %q in namespace %q", name, ns.Path())
	}
}

// prologueView lets version.Propagate operate uniformly on entities (like
// Interface) that carry version bounds without embedding a full Prologue.
// Callers must copy SinceVersion/DeprecatedSince back out after the call.
func prologueView(i *ir.Interface) *ir.Prologue {
	return &ir.Prologue{SinceVersion: i.SinceVersion, DeprecatedSince: i.DeprecatedSince}
}

func msgPrologueView(m *ir.Message) *ir.Prologue {
	return &ir.Prologue{SinceVersion: m.SinceVersion, DeprecatedSince: m.DeprecatedSince, DeprecatedRemoved: m.DeprecatedRemoved}
}

func framePrologueView(f *ir.Frame) *ir.Prologue {
	return &ir.Prologue{SinceVersion: f.SinceVersion, DeprecatedSince: f.DeprecatedSince}
}
