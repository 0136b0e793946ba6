package ir

import (
	"testing"

	"github.com/commschamp/dslgen/pkg/testsupport"
)

func TestBitLayoutClaimDetectsOverlap(t *testing.T) {
	layout := NewBitLayout(8)

	testsupport.True(t, layout.Claim(0, 4), "first claim should succeed")
	testsupport.True(t, !layout.Claim(2, 2), "overlapping claim should fail")
	testsupport.True(t, layout.Claim(4, 4), "adjacent non-overlapping claim should succeed")
}

func TestBitLayoutClaimRejectsOutOfRange(t *testing.T) {
	layout := NewBitLayout(8)

	testsupport.True(t, !layout.Claim(6, 4), "claim extending past width should fail")
}

func TestBitLayoutFirstGap(t *testing.T) {
	layout := NewBitLayout(8)
	layout.Claim(0, 4)

	testsupport.Equal(t, uint(4), layout.FirstGap())

	layout.Claim(4, 4)

	testsupport.Equal(t, uint(8), layout.FirstGap())
}

func TestComputeBitfieldLayoutOffsets(t *testing.T) {
	members := []Field{
		&IntField{BitLength: 3},
		&IntField{BitLength: 5},
		&IntField{BitLength: 8},
	}

	layout, offsets := ComputeBitfieldLayout(members)

	testsupport.Equal(t, []uint{0, 3, 8}, offsets)
	testsupport.Equal(t, uint(16), layout.Count())
}
