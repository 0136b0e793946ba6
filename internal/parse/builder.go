// Package parse implements the IR builder (spec.md §4.2): a two-phase
// construction pipeline that turns one or more schema XML documents into
// the intermediate representation defined by internal/ir.
//
// Phase A (registration) walks each document top-down, constructing every
// entity's bare identity and inserting it into its parent's name-keyed
// container, consuming only lexical properties. Phase B (resolution) runs
// once every document has been registered, evaluating every
// reference-bearing property queued during Phase A; a reference target may
// live in any processed document.
package parse

import (
	"fmt"
	"io"

	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/driver"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/internal/xmladapter"
	"github.com/commschamp/dslgen/pkg/textpos"
)

func filePos(filename string) textpos.Pos {
	return textpos.Pos{File: filename}
}

// extensionPrefixes silences "unexpected child" warnings for vendor
// namespacing conventions seen across real-world DSL schemas.
var extensionPrefixes = []string{"x-", "ext-"}

// pendingResolution is a single Phase B unit of work, queued during Phase
// A and run once every document is registered.
type pendingResolution func(b *Builder)

// Builder drives the two-phase IR construction for one protocol (one or
// more schema files sharing the same name/id/version).
type Builder struct {
	Sink   *diag.Sink
	Schema *ir.Schema

	pending []pendingResolution
	headerSet bool
}

// NewBuilder constructs an empty builder reporting through sink.
func NewBuilder(sink *diag.Sink) *Builder {
	return &Builder{Sink: sink, Schema: ir.NewSchema()}
}

// LoadFile runs Phase A registration for a single schema document. It may
// be called multiple times (once per `--input-file`); all calls must agree
// on the schema's name/id/version/dslVersion/endian (namespaces may be
// legally re-opened across files, per spec.md §3).
func (b *Builder) LoadFile(filename string, r io.Reader) error {
	root, err := xmladapter.Parse(filename, r)
	if err != nil {
		if bx, ok := err.(*xmladapter.BadXMLError); ok {
			b.Sink.Errorf(diag.KindBadXML, bx.Pos, "%s", bx.Message)
			return bx
		}

		b.Sink.Errorf(diag.KindBadXML, filePos(filename), "%v", err)
		return err
	}

	if root.Name != "schema" {
		b.Sink.Errorf(diag.KindBadXML, root.Pos, "root element must be <schema>, found <%s>", root.Name)
		return fmt.Errorf("bad root element")
	}

	if err := b.loadHeader(root); err != nil {
		return err
	}

	b.Schema.Files = append(b.Schema.Files, filename)

	b.registerNamespaceBody(root, b.Schema.Root)

	return nil
}

// Finalize runs every queued Phase B resolution and reports whether the
// resulting IR is usable (no Error-level diagnostic was recorded across
// either phase).
func (b *Builder) Finalize() (*ir.Schema, bool) {
	if b.Sink.HadError() {
		return nil, false
	}

	for _, fn := range b.pending {
		fn(b)
	}

	if b.Sink.HadError() {
		return nil, false
	}

	driver.Run(b.Sink, b.Schema)

	return b.Schema, !b.Sink.HadError()
}

func (b *Builder) queue(fn pendingResolution) {
	b.pending = append(b.pending, fn)
}
