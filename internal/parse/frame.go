package parse

import (
	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/internal/resolve"
	"github.com/commschamp/dslgen/internal/version"
	"github.com/commschamp/dslgen/internal/xmladapter"
)

var layerElementNames = map[string]bool{
	"payload": true, "id": true, "size": true, "sync": true,
	"checksum": true, "value": true, "custom": true,
}

// registerFrame runs Phase A registration for a single <frame> element: an
// ordered stack of transport layers wrapping a message (spec.md §4.7).
func (b *Builder) registerFrame(node *xmladapter.Node, ns *ir.Namespace) {
	name := b.reqProp(node, "name")
	displayName := b.prop(node, "displayName")
	description := b.prop(node, "description")
	sinceStr := b.prop(node, "sinceVersion")
	deprecatedStr := b.prop(node, "deprecatedSince")

	fr := &ir.Frame{Name: name, DisplayNameRaw: displayName, Description: description, Pos: node.Pos}

	fr.SinceVersion = parseVersionOr(sinceStr, 0)
	fr.DeprecatedSince = parseVersionOr(deprecatedStr, ir.NoVersion)

	root := version.RootBounds(b.Schema.Version)
	pv := framePrologueView(fr)
	version.Propagate(b.Sink, node.Pos, name, root, pv, sinceStr != "", deprecatedStr != "")
	fr.SinceVersion, fr.DeprecatedSince = pv.SinceVersion, pv.DeprecatedSince

	layersNode := node
	if wrapped, ok := node.ChildNamed("layers"); ok {
		layersNode = wrapped
	}

	ctx := fieldCtx{scope: ns, parentSince: fr.SinceVersion, parentDeprecated: fr.DeprecatedSince}

	for _, child := range layersNode.Children(nil, extensionPrefixes, nil) {
		if !layerElementNames[child.Name] {
			continue
		}

		if l := b.parseLayer(child, ns, ctx); l != nil {
			fr.Layers = append(fr.Layers, l)
		}
	}

	if fr.PayloadIndex() < 0 {
		b.Sink.Errorf(diag.KindSchemaRule, node.Pos, "frame %q: no payload layer", name)
	}

	if !ns.AddFrame(fr) {
		b.Sink.Errorf(diag.KindDuplicateName, node.Pos, "duplicate frame name %q in namespace %q", name, ns.Path())
	}
}

func (b *Builder) parseLayer(node *xmladapter.Node, ns *ir.Namespace, ctx fieldCtx) ir.Layer {
	common := b.parseLayerCommon(node, ns, ctx)

	switch node.Name {
	case "payload":
		return &ir.PayloadLayer{LayerCommon: common}
	case "id":
		return &ir.IDLayer{LayerCommon: common}
	case "size":
		offStr, _ := node.Property("serOffset")
		return &ir.SizeLayer{LayerCommon: common, SerOffset: parseInt64(b.Sink, node.Pos, "serOffset", offStr, 0)}
	case "sync":
		return &ir.SyncLayer{LayerCommon: common}
	case "checksum":
		l := &ir.ChecksumLayer{LayerCommon: common}
		l.Algorithm, _ = node.Property("alg")
		l.From = b.reqProp(node, "from")
		l.Until = b.reqProp(node, "until")
		l.VerifyBeforeRead = parseBool(b.mustProp(node, "verifyBeforeRead"), false)

		// From/Until name sibling layers within this same frame, which
		// doesn't exist as a complete ir.Frame until registerFrame returns;
		// internal/driver binds FromLayer/UntilLayer once the frame is whole.
		return l
	case "value":
		l := &ir.ValueLayer{LayerCommon: common}
		l.PseudoField = b.mustProp(node, "pseudo") == "true"
		l.InterfaceFieldName, _ = node.Property("interfaceFieldName")

		if ifaces, _ := node.Property("interfaces"); ifaces != "" {
			l.Interfaces = splitCSV(ifaces)
		}

		return l
	case "custom":
		l := &ir.CustomLayer{LayerCommon: common}
		l.Checkpoint = b.mustProp(node, "checkpoint") == "true"
		l.IDReplacement = b.mustProp(node, "idReplacement") == "true"

		switch b.mustProp(node, "semanticLayerType") {
		case "id":
			l.SemanticLayerType = ir.LayerID
		case "size":
			l.SemanticLayerType = ir.LayerSize
		case "sync":
			l.SemanticLayerType = ir.LayerSync
		case "checksum":
			l.SemanticLayerType = ir.LayerChecksum
		case "value":
			l.SemanticLayerType = ir.LayerValue
		default:
			l.SemanticLayerType = ir.LayerCustom
		}

		return l
	default:
		return nil
	}
}

func (b *Builder) parseLayerCommon(node *xmladapter.Node, ns *ir.Namespace, ctx fieldCtx) ir.LayerCommon {
	name := b.reqProp(node, "name")
	displayName, _ := node.Property("displayName")
	description, _ := node.Property("description")

	common := ir.LayerCommon{Name: name, DisplayNameRaw: displayName, Description: description, Pos: node.Pos}

	if fieldName, _ := node.Property("field"); fieldName != "" {
		common.FieldRef = fieldName

		c := &common

		b.queue(func(b *Builder) {
			res, err := resolve.FromNamespace(ns, fieldName)
			if err != nil {
				b.Sink.Errorf(diag.KindUnresolvedReference, node.Pos, "layer %q: field %q not found", name, fieldName)
				return
			}

			c.Field = res.Field
		})

		return common
	}

	for _, fc := range node.Children(nil, extensionPrefixes, nil) {
		if isFieldElement(fc.Name) {
			common.Field = b.parseField(fc, ctx)
			break
		}
	}

	if common.Field == nil && node.Name != "payload" {
		b.Sink.Errorf(diag.KindSchemaRule, node.Pos, "layer %q carries no field", name)
	}

	return common
}

func splitCSV(s string) []string {
	var out []string

	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}

			start = i + 1
		}
	}

	return out
}
