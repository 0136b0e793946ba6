package parse

import (
	"strconv"
	"strings"

	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/internal/resolve"
	"github.com/commschamp/dslgen/internal/version"
	"github.com/commschamp/dslgen/internal/xmladapter"
)

// nextMessageOrder hands out the auto-incrementing per-namespace message
// order spec.md §4.6 requires when a message carries no explicit "order".
var nextMessageOrder = map[*ir.Namespace]int{}

// registerMessage runs Phase A registration for a single <message> element.
func (b *Builder) registerMessage(node *xmladapter.Node, ns *ir.Namespace) {
	name := b.reqProp(node, "name")
	displayName := b.prop(node, "displayName")
	description := b.prop(node, "description")
	sinceStr := b.prop(node, "sinceVersion")
	deprecatedStr := b.prop(node, "deprecatedSince")
	removedStr := b.prop(node, "removed")

	m := &ir.Message{
		Name:              name,
		DisplayNameRaw:    displayName,
		Description:       description,
		DeprecatedRemoved: parseBool(removedStr, false),
		Pos:               node.Pos,
	}

	m.SinceVersion = parseVersionOr(sinceStr, 0)
	m.DeprecatedSince = parseVersionOr(deprecatedStr, ir.NoVersion)

	root := version.RootBounds(b.Schema.Version)
	pv := msgPrologueView(m)
	version.Propagate(b.Sink, node.Pos, name, root, pv, sinceStr != "", deprecatedStr != "")
	m.SinceVersion, m.DeprecatedSince = pv.SinceVersion, pv.DeprecatedSince

	m.Interface, _ = node.Property("interface")

	switch v, _ := node.Property("sender"); v {
	case "client":
		m.Sender = ir.SenderClient
	case "server":
		m.Sender = ir.SenderServer
	default:
		m.Sender = ir.SenderBoth
	}

	if platforms, _ := node.Property("platforms"); platforms != "" {
		for _, p := range strings.Split(platforms, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}

			if !b.Schema.HasPlatform(p) {
				b.Sink.Errorf(diag.KindSchemaRule, node.Pos, "message %q: unknown platform %q", name, p)
			}

			m.Platforms = append(m.Platforms, p)
		}
	}

	if v, _ := node.Property("customizable"); v == "true" {
		m.Customizable = true
	}

	if orderStr, _ := node.Property("order"); orderStr != "" {
		if v, err := strconv.Atoi(orderStr); err == nil {
			m.Order = v
		}
	} else {
		m.Order = nextMessageOrder[ns]
	}

	nextMessageOrder[ns] = m.Order + 1

	b.registerMessageID(node, ns, m)

	for _, a := range node.ExtraAttrs() {
		m.ExtraAttrs = append(m.ExtraAttrs, ir.ExtraAttr{Name: a.Name, Value: a.Value})
	}

	m.CopyFieldsFrom, _ = node.Property("copyFieldsFrom")

	ctx := fieldCtx{scope: ns, parentSince: m.SinceVersion, parentDeprecated: m.DeprecatedSince}

	for _, child := range node.Children(nil, extensionPrefixes, nil) {
		if isFieldElement(child.Name) {
			if f := b.parseField(child, ctx); f != nil {
				m.Fields = append(m.Fields, f)
			}
			continue
		}

		if child.Name == "alias" {
			b.registerMessageAlias(child, m)
		}
	}

	if m.CopyFieldsFrom != "" {
		b.queue(func(b *Builder) {
			src, ok := ns.Message(m.CopyFieldsFrom)
			if !ok {
				b.Sink.Errorf(diag.KindUnresolvedReference, node.Pos,
					"message %q: copyFieldsFrom=%q not found", name, m.CopyFieldsFrom)
				return
			}

			m.CopiedFrom = src
			m.Fields = append(append([]ir.Field(nil), src.Fields...), m.Fields...)
		})
	}

	if !ns.AddMessage(m) {
		b.Sink.Errorf(diag.KindDuplicateName, node.Pos, "duplicate message name %q in namespace %q", name, ns.Path())
	}
}

func (b *Builder) registerMessageAlias(child *xmladapter.Node, m *ir.Message) {
	aliasName := b.reqProp(child, "name")
	fieldPath := b.reqProp(child, "field")
	desc, _ := child.Property("description")

	idx := len(m.Aliases)
	m.Aliases = append(m.Aliases, ir.Alias{Name: aliasName, FieldPath: fieldPath, Description: desc, Pos: child.Pos})

	b.queue(func(b *Builder) {
		res, err := resolve.FromSiblings(m.Fields, fieldPath)
		if err != nil {
			b.Sink.Errorf(diag.KindUnresolvedReference, child.Pos, "alias %q: field %q not found", aliasName, fieldPath)
			return
		}

		m.Aliases[idx].Target = res.Field
	})
}

// registerMessageID handles the two ways a message's numeric id may be
// given: a literal "id" integer, or an "idRef" dotted reference into an
// enum field's named value (spec.md §4.6), resolved in Phase B since the
// enum may live in any schema document.
func (b *Builder) registerMessageID(node *xmladapter.Node, ns *ir.Namespace, m *ir.Message) {
	idStr, _ := node.Property("id")
	idRef, _ := node.Property("idRef")

	if idStr != "" && idRef != "" {
		b.Sink.Errorf(diag.KindSchemaRule, node.Pos, "message %q: both id and idRef given", m.Name)
		return
	}

	if idStr != "" {
		if v, err := strconv.ParseInt(idStr, 0, 64); err == nil {
			m.ID = v
		} else {
			b.Sink.Errorf(diag.KindBadXML, node.Pos, "message %q: id %q is not an integer", m.Name, idStr)
		}

		return
	}

	if idRef == "" {
		b.Sink.Errorf(diag.KindSchemaRule, node.Pos, "message %q: neither id nor idRef given", m.Name)
		return
	}

	m.IDRef = idRef

	b.queue(func(b *Builder) {
		res, err := resolve.FromNamespace(ns, idRef)
		if err != nil || res.Class != resolve.ClassEnumValue {
			b.Sink.Errorf(diag.KindUnresolvedReference, node.Pos, "message %q: idRef %q does not resolve to an enum value", m.Name, idRef)
			return
		}

		ev, ok := res.Field.(*ir.EnumField)
		if !ok {
			return
		}

		val, found := ev.ByName(res.Name)
		if !found {
			return
		}

		m.ID = val.Value
	})
}
