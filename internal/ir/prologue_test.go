package ir

import (
	"testing"

	"github.com/commschamp/dslgen/pkg/testsupport"
)

func TestPrologueDisplayNameFallsBackToName(t *testing.T) {
	p := Prologue{Name: "sequenceNumber"}

	testsupport.Equal(t, "sequenceNumber", p.DisplayName())

	p.DisplayNameRaw = "Sequence Number"

	testsupport.Equal(t, "Sequence Number", p.DisplayName())
}

func TestPrologueIsDeprecated(t *testing.T) {
	p := Prologue{DeprecatedSince: NoVersion}
	testsupport.True(t, !p.IsDeprecated())

	p.DeprecatedSince = 3
	testsupport.True(t, p.IsDeprecated())
	testsupport.True(t, p.DeprecatedBefore(3))
	testsupport.True(t, !p.DeprecatedBefore(2))
}

func TestPrologueReuseDeepCopiesSlices(t *testing.T) {
	p := Prologue{ExtraAttrs: []ExtraAttr{{Name: "a", Value: "1"}}}

	clone := p.Reuse()
	clone.ExtraAttrs[0].Value = "2"

	testsupport.Equal(t, "1", p.ExtraAttrs[0].Value)
}
