// Package resolve implements the reference resolver (spec.md §4.4): it
// takes a dotted reference string and a starting scope, walks namespaces
// until a segment fails to match a child namespace, then dereferences the
// remainder into the target entity and, optionally, one of its members
// (bitfield bit, bundle member, set bit, enum value, or list element).
//
// The resolver is pure given the IR: it caches nothing and may be called
// repeatedly (spec.md §4.4).
package resolve

import (
	"fmt"
	"strings"

	"github.com/commschamp/dslgen/internal/ir"
)

// Classification is what kind of thing a resolved reference turned out to
// be, per spec.md §4.4.
type Classification int

// The classifications a resolved reference may carry.
const (
	ClassField Classification = iota
	ClassFieldValue
	ClassBit
	ClassEnumValue
	ClassSize
	ClassExists
)

// Result is the terminal entity a reference resolved to, plus its
// classification.
type Result struct {
	Class Classification
	Field ir.Field // the field ultimately addressed (container, for member refs)
	Name  string    // member name, when Class is Bit/EnumValue
}

// ErrUnresolved reports that a dotted reference could not be bound to any
// entity in the processed schema set (spec.md error kind
// UnresolvedReference).
type ErrUnresolved struct {
	Path string
}

func (e *ErrUnresolved) Error() string {
	return fmt.Sprintf("unresolved reference %q", e.Path)
}

// FromNamespace resolves a dotted reference starting from ns, walking
// child namespaces for as long as segments match, then dereferencing the
// remainder into a field, message, interface, or frame and (if further
// segments remain) into one of that field's members.
func FromNamespace(ns *ir.Namespace, path string) (Result, error) {
	if path == "" {
		return Result{}, &ErrUnresolved{Path: path}
	}

	scope, remainder := ns.ResolveNamespacePath(path)
	if len(remainder) == 0 {
		return Result{}, &ErrUnresolved{Path: path}
	}

	entityName := remainder[0]

	if f, ok := scope.Field(entityName); ok {
		return intoField(f, remainder[1:], path)
	}

	// Messages, interfaces, and frames have no addressable members beyond
	// themselves in this language, so any further segments are an error.
	if _, ok := scope.Message(entityName); ok {
		if len(remainder) > 1 {
			return Result{}, &ErrUnresolved{Path: path}
		}

		return Result{Class: ClassField}, nil
	}

	if _, ok := scope.Interface(entityName); ok {
		if len(remainder) > 1 {
			return Result{}, &ErrUnresolved{Path: path}
		}

		return Result{Class: ClassField}, nil
	}

	if _, ok := scope.Frame(entityName); ok {
		if len(remainder) > 1 {
			return Result{}, &ErrUnresolved{Path: path}
		}

		return Result{Class: ClassField}, nil
	}

	return Result{}, &ErrUnresolved{Path: path}
}

// FromSiblings resolves a "$"-prefixed reference, which denotes a sibling
// of the current field's immediate container (message or bundle), per
// spec.md §4.4. path must already have its leading "$" stripped.
func FromSiblings(siblings []ir.Field, path string) (Result, error) {
	segments := strings.Split(path, ".")
	if len(segments) == 0 || segments[0] == "" {
		return Result{}, &ErrUnresolved{Path: "$" + path}
	}

	for _, f := range siblings {
		if f.Common().Name == segments[0] {
			return intoField(f, segments[1:], "$"+path)
		}
	}

	return Result{}, &ErrUnresolved{Path: "$" + path}
}

// intoField dereferences a member path into field f: in order, bitfield
// members, bundle members, set bit names, enum value names, variant
// alternatives, and list elements (for .size and element sub-paths), per
// spec.md §4.4.
func intoField(f ir.Field, member []string, fullPath string) (Result, error) {
	if len(member) == 0 {
		return Result{Class: ClassField, Field: f}, nil
	}

	head := member[0]
	rest := member[1:]

	switch head {
	case "size":
		if len(rest) != 0 {
			return Result{}, &ErrUnresolved{Path: fullPath}
		}

		switch f.Kind() {
		case ir.KindList, ir.KindString, ir.KindData:
			return Result{Class: ClassSize, Field: f}, nil
		default:
			return Result{}, &ErrUnresolved{Path: fullPath}
		}
	case "exists":
		if len(rest) != 0 {
			return Result{}, &ErrUnresolved{Path: fullPath}
		}

		if f.Kind() != ir.KindOptional {
			return Result{}, &ErrUnresolved{Path: fullPath}
		}

		return Result{Class: ClassExists, Field: f}, nil
	case "value":
		if len(rest) != 0 {
			return Result{}, &ErrUnresolved{Path: fullPath}
		}

		return Result{Class: ClassFieldValue, Field: f}, nil
	}

	switch v := f.(type) {
	case *ir.BitfieldField:
		for _, m := range v.Members {
			if m.Common().Name == head {
				return intoField(m, rest, fullPath)
			}
		}
	case *ir.BundleField:
		for _, m := range v.Members {
			if m.Field.Common().Name == head {
				return intoField(m.Field, rest, fullPath)
			}
		}
	case *ir.SetField:
		if bit, ok := v.ByName(head); ok && len(rest) == 0 {
			return Result{Class: ClassBit, Field: f, Name: bit.Name}, nil
		}
	case *ir.EnumField:
		if ev, ok := v.ByName(head); ok && len(rest) == 0 {
			return Result{Class: ClassEnumValue, Field: f, Name: ev.Name}, nil
		}
	case *ir.ListField:
		if v.Element != nil {
			return intoField(v.Element, member, fullPath)
		}
	case *ir.OptionalField:
		if v.Inner != nil {
			return intoField(v.Inner, member, fullPath)
		}
	case *ir.VariantField:
		for _, m := range v.Members {
			if m.Field.Common().Name == head {
				return intoField(m.Field, rest, fullPath)
			}
		}
	}

	return Result{}, &ErrUnresolved{Path: fullPath}
}
