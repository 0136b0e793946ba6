package ir

import "github.com/bits-and-blooms/bitset"

// BitLayout tracks which bit positions of a fixed-width bit-packed field
// (Bitfield members, or Set bits) have already been claimed, catching
// overlaps and reporting the first gap. Built on bits-and-blooms/bitset,
// the pack's ready-made fixed-width bit-allocation structure, rather than
// a hand-rolled []bool.
type BitLayout struct {
	claimed *bitset.BitSet
	width   uint
}

// NewBitLayout constructs a layout tracker for a field of the given total
// bit width.
func NewBitLayout(width uint) *BitLayout {
	return &BitLayout{claimed: bitset.New(width), width: width}
}

// Claim marks [from, from+length) as occupied, returning false if any bit
// in that range was already claimed (an overlap) or the range runs past
// the layout's width.
func (b *BitLayout) Claim(from, length uint) bool {
	if length == 0 {
		return true
	}

	if from+length > b.width {
		return false
	}

	for i := from; i < from+length; i++ {
		if b.claimed.Test(i) {
			return false
		}
	}

	for i := from; i < from+length; i++ {
		b.claimed.Set(i)
	}

	return true
}

// FirstGap returns the index of the first unclaimed bit below width, or
// width itself if every bit is claimed.
func (b *BitLayout) FirstGap() uint {
	for i := uint(0); i < b.width; i++ {
		if !b.claimed.Test(i) {
			return i
		}
	}

	return b.width
}

// Count returns the number of claimed bits.
func (b *BitLayout) Count() uint {
	return uint(b.claimed.Count())
}

// ComputeBitfieldLayout assigns sequential, non-overlapping bit positions
// to a Bitfield's members in declaration order (member order is
// significant for packing, per spec.md §3) and returns the resulting
// layout plus each member's assigned starting offset.
func ComputeBitfieldLayout(members []Field) (*BitLayout, []uint) {
	var total uint
	for _, m := range members {
		total += memberBitLength(m)
	}

	layout := NewBitLayout(total)
	offsets := make([]uint, len(members))
	var cursor uint

	for i, m := range members {
		length := memberBitLength(m)
		offsets[i] = cursor
		layout.Claim(cursor, length)
		cursor += length
	}

	return layout, offsets
}
