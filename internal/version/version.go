// Package version computes (sinceVersion, deprecatedSince, removed) for
// every IR entity by inheritance from its parent, enforcing the validity
// bounds of spec.md §4.3.
package version

import (
	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/pkg/textpos"
)

// Bounds is the parent context a child entity's version is checked and
// inherited against.
type Bounds struct {
	SinceVersion    uint
	DeprecatedSince uint
	SchemaVersion   uint
}

// Propagate runs during Phase A as each entity is parsed, inheriting from
// the parent's bounds when the entity itself declares nothing, and rejecting
// bounds outside the lawful range. declaredSince/declaredDeprecated report
// whether the entity's own element carried each attribute; when false, the
// corresponding Prologue field is overwritten with the parent's value
// (callers already fill it with that inherited default before the call).
func Propagate(sink *diag.Sink, pos textpos.Pos, name string, parent Bounds, p *ir.Prologue, declaredSince, declaredDeprecated bool) {
	if declaredSince {
		if p.SinceVersion < parent.SinceVersion {
			sink.Errorf(diag.KindVersionError, pos,
				"%s: sinceVersion %d is below parent's sinceVersion %d", name, p.SinceVersion, parent.SinceVersion)
		}
	} else {
		p.SinceVersion = parent.SinceVersion
	}

	if declaredDeprecated {
		if p.DeprecatedSince != ir.NoVersion && parent.DeprecatedSince != ir.NoVersion && p.DeprecatedSince > parent.DeprecatedSince {
			sink.Errorf(diag.KindVersionError, pos,
				"%s: deprecatedSince %d is above parent's deprecatedSince %d", name, p.DeprecatedSince, parent.DeprecatedSince)
		}
	} else {
		p.DeprecatedSince = parent.DeprecatedSince
	}

	if p.DeprecatedSince != ir.NoVersion && p.SinceVersion >= p.DeprecatedSince {
		sink.Errorf(diag.KindVersionError, pos,
			"%s: sinceVersion %d must be strictly below deprecatedSince %d", name, p.SinceVersion, p.DeprecatedSince)
	}

	if p.DeprecatedRemoved {
		if p.DeprecatedSince == ir.NoVersion || p.DeprecatedSince >= parent.SchemaVersion {
			sink.Errorf(diag.KindVersionError, pos,
				"%s: removed=true requires deprecatedSince below the schema's version (%d)", name, parent.SchemaVersion)
		}

		if p.DeprecatedSince == ir.NoVersion {
			sink.Warnf(pos, "%s: removed=true set without a deprecatedSince", name)
		}
	}
}

// BoundsOf extracts the Bounds a child of this prologue should inherit.
func BoundsOf(p *ir.Prologue, schemaVersion uint) Bounds {
	return Bounds{SinceVersion: p.SinceVersion, DeprecatedSince: p.DeprecatedSince, SchemaVersion: schemaVersion}
}

// RootBounds is the inheritance root: the schema's own version with no
// deprecation.
func RootBounds(schemaVersion uint) Bounds {
	return Bounds{SinceVersion: 0, DeprecatedSince: ir.NoVersion, SchemaVersion: schemaVersion}
}
