package xmladapter

import (
	"strings"
	"testing"

	"github.com/commschamp/dslgen/pkg/testsupport"
	"github.com/commschamp/dslgen/pkg/textpos"
)

func TestParseBuildsNestedTree(t *testing.T) {
	root, err := Parse("schema.xml", strings.NewReader(`<schema name="Proto"><fields><int name="a"/></fields></schema>`))
	testsupport.NoError(t, err)

	testsupport.Equal(t, "schema", root.Name)

	fields, ok := root.ChildNamed("fields")
	testsupport.True(t, ok, "expected a fields child")
	testsupport.Equal(t, 1, len(fields.children))
	testsupport.Equal(t, "int", fields.children[0].Name)
}

func TestParseRejectsDuplicateAttribute(t *testing.T) {
	_, err := Parse("bad.xml", strings.NewReader(`<a x="1" x="2"/>`))
	testsupport.Error(t, err)
}

func TestParseRejectsMultipleRootElements(t *testing.T) {
	_, err := Parse("bad.xml", strings.NewReader(`<a/><b/>`))
	testsupport.Error(t, err)
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, err := Parse("empty.xml", strings.NewReader(``))
	testsupport.Error(t, err)
}

func TestPropertyReadsFromAttribute(t *testing.T) {
	root, err := Parse("f.xml", strings.NewReader(`<int name="count"/>`))
	testsupport.NoError(t, err)

	v, badErr := root.Property("name")
	testsupport.True(t, badErr == nil, "expected no error reading an attribute property")
	testsupport.Equal(t, "count", v)
}

func TestPropertyReadsFromChildElementValueAttr(t *testing.T) {
	root, err := Parse("f.xml", strings.NewReader(`<int><name value="count"/></int>`))
	testsupport.NoError(t, err)

	v, badErr := root.Property("name")
	testsupport.True(t, badErr == nil, "expected no error reading a child-element property")
	testsupport.Equal(t, "count", v)
}

func TestPropertyReadsFromChildElementText(t *testing.T) {
	root, err := Parse("f.xml", strings.NewReader(`<int><name> count </name></int>`))
	testsupport.NoError(t, err)

	v, badErr := root.Property("name")
	testsupport.True(t, badErr == nil, "expected no error reading a child-element text property")
	testsupport.Equal(t, "count", v)
}

func TestPropertyRejectsBothAttributeAndChildGiven(t *testing.T) {
	root, err := Parse("f.xml", strings.NewReader(`<int name="count"><name value="other"/></int>`))
	testsupport.NoError(t, err)

	_, badErr := root.Property("name")
	testsupport.True(t, badErr != nil, "expected an error when a property is given both ways")
}

func TestPropertyRejectsRepeatedChildElement(t *testing.T) {
	root, err := Parse("f.xml", strings.NewReader(`<int><name value="a"/><name value="b"/></int>`))
	testsupport.NoError(t, err)

	_, badErr := root.Property("name")
	testsupport.True(t, badErr != nil, "expected an error when a property child element repeats")
}

func TestRequirePropertyFailsWhenAbsent(t *testing.T) {
	root, err := Parse("f.xml", strings.NewReader(`<int/>`))
	testsupport.NoError(t, err)

	_, badErr := root.RequireProperty("name")
	testsupport.True(t, badErr != nil, "expected an error for a missing mandatory property")
}

func TestExtraAttrsExcludesConsumedProperties(t *testing.T) {
	root, err := Parse("f.xml", strings.NewReader(`<int name="count" custom="x"/>`))
	testsupport.NoError(t, err)

	_, badErr := root.Property("name")
	testsupport.True(t, badErr == nil, "expected no error consuming name")

	extra := root.ExtraAttrs()
	testsupport.Equal(t, 1, len(extra))
	testsupport.Equal(t, "custom", extra[0].Name)
}

func TestExtraChildrenExcludesConsumedChildren(t *testing.T) {
	root, err := Parse("f.xml", strings.NewReader(`<int><name value="count"/><note>hi</note></int>`))
	testsupport.NoError(t, err)

	_, badErr := root.Property("name")
	testsupport.True(t, badErr == nil, "expected no error consuming name")

	extra := root.ExtraChildren()
	testsupport.Equal(t, 1, len(extra))
	testsupport.Equal(t, "note", extra[0].Name)
}

func TestChildrenReportsUnexpectedNames(t *testing.T) {
	root, err := Parse("f.xml", strings.NewReader(`<fields><int/><bogus/></fields>`))
	testsupport.NoError(t, err)

	var reported []string
	kids := root.Children([]string{"int"}, nil, func(name string, _ textpos.Pos) {
		reported = append(reported, name)
	})

	testsupport.Equal(t, 2, len(kids), "expected both children to still be returned")
	testsupport.Equal(t, []string{"bogus"}, reported)
}

func TestChildrenAllowsExtensionPrefixedNames(t *testing.T) {
	root, err := Parse("f.xml", strings.NewReader(`<fields><int/><x-custom/></fields>`))
	testsupport.NoError(t, err)

	var reported []string
	root.Children([]string{"int"}, []string{"x-"}, func(name string, _ textpos.Pos) {
		reported = append(reported, name)
	})

	testsupport.Equal(t, 0, len(reported), "expected extension-prefixed children not to be reported")
}
