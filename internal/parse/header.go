package parse

import (
	"strconv"

	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/internal/xmladapter"
	"github.com/commschamp/dslgen/pkg/textpos"
)

// loadHeader parses the top-level schema properties shared across all
// schema files (spec.md §4 "Schema header"), and on a second-or-later
// file checks the new document agrees with the first.
func (b *Builder) loadHeader(root *xmladapter.Node) error {
	name := b.reqProp(root, "name")
	idStr := b.reqProp(root, "id")
	versionStr := b.reqProp(root, "version")
	dslVersionStr := b.reqProp(root, "dslVersion")
	endianStr := b.prop(root, "endian")

	id, err := parseUint(b.Sink, root.Pos, "id", idStr)
	if err != nil {
		return err
	}

	version, err := parseUint(b.Sink, root.Pos, "version", versionStr)
	if err != nil {
		return err
	}

	dslVersion, err := parseUint(b.Sink, root.Pos, "dslVersion", dslVersionStr)
	if err != nil {
		return err
	}

	endian := ir.BigEndian
	if endianStr == "little" {
		endian = ir.LittleEndian
	} else if endianStr != "" && endianStr != "big" {
		b.Sink.Errorf(diag.KindSchemaRule, root.Pos, "unknown endian %q", endianStr)
	}

	nonUnique := false
	if v, _ := root.Property("nonUniqueMsgIdAllowed"); v == "true" {
		nonUnique = true
	}

	if !b.headerSet {
		b.Schema.Name = name
		b.Schema.ID = id
		b.Schema.Version = version
		b.Schema.DSLVersion = dslVersion
		b.Schema.Endian = endian
		b.Schema.NonUniqueMsgIDAllowed = nonUnique
		b.Schema.Pos = root.Pos
		b.headerSet = true

		for _, pn := range root.ChildrenNamed("platforms") {
			for _, pc := range pn.Children([]string{"platform"}, extensionPrefixes, b.unexpectedChildWarn) {
				if pc.Name != "platform" {
					continue
				}

				pname := b.reqProp(pc, "name")
				b.Schema.Platforms = append(b.Schema.Platforms, ir.Platform{Name: pname, Pos: pc.Pos})
			}
		}

		for _, a := range root.ExtraAttrs() {
			b.Schema.ExtraAttrs = append(b.Schema.ExtraAttrs, ir.ExtraAttr{Name: a.Name, Value: a.Value})
		}

		return nil
	}

	if name != b.Schema.Name || id != b.Schema.ID || version != b.Schema.Version ||
		dslVersion != b.Schema.DSLVersion || endian != b.Schema.Endian {
		b.Sink.Errorf(diag.KindSchemaRule, root.Pos,
			"schema header (name=%q id=%d version=%d dslVersion=%d endian=%v) disagrees with the first file (name=%q id=%d version=%d dslVersion=%d endian=%v)",
			name, id, version, dslVersion, endian, b.Schema.Name, b.Schema.ID, b.Schema.Version, b.Schema.DSLVersion, b.Schema.Endian)
	}

	return nil
}

// unexpectedChildWarn is the Builder-wide callback passed to
// xmladapter.Node.Children: an unrecognised child element is a Warning,
// not fatal, unless the caller treats it otherwise.
func (b *Builder) unexpectedChildWarn(name string, pos textpos.Pos) {
	b.Sink.Warnf(pos, "unexpected child element <%s>", name)
}

func parseUint(sink *diag.Sink, pos textpos.Pos, prop, text string) (uint, error) {
	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		sink.Errorf(diag.KindBadXML, pos, "property %q must be an unsigned integer, got %q", prop, text)
		return 0, err
	}

	return uint(v), nil
}

func parseInt64(sink *diag.Sink, pos textpos.Pos, prop, text string, dflt int64) int64 {
	if text == "" {
		return dflt
	}

	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		sink.Errorf(diag.KindBadXML, pos, "property %q must be an integer, got %q", prop, text)
		return dflt
	}

	return v
}

func parseBool(text string, dflt bool) bool {
	if text == "" {
		return dflt
	}

	return text == "true" || text == "1"
}

func parseVersionOr(text string, dflt uint) uint {
	if text == "" {
		return dflt
	}

	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return dflt
	}

	return uint(v)
}
