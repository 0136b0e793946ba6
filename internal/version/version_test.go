package version

import (
	"testing"

	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/pkg/testsupport"
	"github.com/commschamp/dslgen/pkg/textpos"
)

func TestPropagateInheritsWhenUndeclared(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	parent := Bounds{SinceVersion: 2, DeprecatedSince: ir.NoVersion, SchemaVersion: 5}
	p := &ir.Prologue{DeprecatedSince: ir.NoVersion}

	Propagate(sink, textpos.Pos{}, "f", parent, p, false, false)

	testsupport.Equal(t, uint(2), p.SinceVersion)
	testsupport.True(t, !sink.HadError())
}

func TestPropagateRejectsSinceBelowParent(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	parent := Bounds{SinceVersion: 5, DeprecatedSince: ir.NoVersion, SchemaVersion: 10}
	p := &ir.Prologue{SinceVersion: 2, DeprecatedSince: ir.NoVersion}

	Propagate(sink, textpos.Pos{}, "f", parent, p, true, false)

	testsupport.True(t, sink.HadError())
}

func TestPropagateRejectsSinceAtOrAboveDeprecated(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	parent := RootBounds(10)
	p := &ir.Prologue{SinceVersion: 3, DeprecatedSince: 3}

	Propagate(sink, textpos.Pos{}, "f", parent, p, true, true)

	testsupport.True(t, sink.HadError())
}

func TestPropagateRemovedRequiresDeprecated(t *testing.T) {
	sink := diag.New(diag.Warning, nil)
	parent := RootBounds(10)
	p := &ir.Prologue{SinceVersion: 0, DeprecatedSince: ir.NoVersion, DeprecatedRemoved: true}

	Propagate(sink, textpos.Pos{}, "f", parent, p, false, false)

	testsupport.True(t, sink.HadError())
}

func TestRootBoundsHasNoDeprecation(t *testing.T) {
	b := RootBounds(7)

	testsupport.Equal(t, uint(0), b.SinceVersion)
	testsupport.Equal(t, ir.NoVersion, b.DeprecatedSince)
	testsupport.Equal(t, uint(7), b.SchemaVersion)
}
