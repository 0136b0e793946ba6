package parse

import (
	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/internal/xmladapter"
)

// registerNamespaceBody runs Phase A registration for every entity declared
// directly inside node (a <schema> or <ns> element) into ns. Both a flat
// layout (fields/messages/interfaces/frames/nested namespaces as direct
// children) and a wrapped one (grouped under <fields>/<messages>/
// <interfaces>/<frames>/<namespaces> container elements) are accepted: a
// wrapper is simply unwrapped into the same target namespace.
func (b *Builder) registerNamespaceBody(node *xmladapter.Node, ns *ir.Namespace) {
	for _, child := range node.Children(nil, extensionPrefixes, nil) {
		switch child.Name {
		case "ns", "namespace":
			b.registerChildNamespace(child, ns)
		case "fields", "messages", "interfaces", "frames", "namespaces":
			b.registerNamespaceBody(child, ns)
		case "message":
			b.registerMessage(child, ns)
		case "interface":
			b.registerInterface(child, ns)
		case "frame":
			b.registerFrame(child, ns)
		case "platforms":
			// Only meaningful at the schema root; loadHeader already
			// consumed it there, so a nested occurrence is just noise.
			b.Sink.Warnf(child.Pos, "<platforms> is only valid at the schema root")
		default:
			if isFieldElement(child.Name) {
				b.registerField(child, ns)
				continue
			}

			b.Sink.Warnf(child.Pos, "unexpected child element <%s>", child.Name)
		}
	}
}

func (b *Builder) registerChildNamespace(child *xmladapter.Node, ns *ir.Namespace) {
	name := b.reqProp(child, "name")
	desc, _ := child.Property("description")

	childNs := ns.EnsureChild(name)
	if desc != "" {
		childNs.Description = desc
	}

	childNs.Pos = child.Pos

	for _, a := range child.ExtraAttrs() {
		childNs.ExtraAttrs = append(childNs.ExtraAttrs, ir.ExtraAttr{Name: a.Name, Value: a.Value})
	}

	b.registerNamespaceBody(child, childNs)
}

func (b *Builder) registerField(child *xmladapter.Node, ns *ir.Namespace) {
	f := b.parseField(child, fieldCtx{scope: ns, parentDeprecated: ir.NoVersion})
	if f == nil {
		return
	}

	if !ns.AddField(f) {
		b.Sink.Errorf(diag.KindDuplicateName, child.Pos,
			"duplicate field name %q in namespace %q", f.Common().Name, ns.Path())
	}
}
