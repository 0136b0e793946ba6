package gen

import (
	"testing"

	"github.com/commschamp/dslgen/pkg/testsupport"
)

func TestSubstReplacesKnownPlaceholders(t *testing.T) {
	out := Subst("func (f *#^#NAME#$#) Value() #^#TYPE#$# { return f.value }",
		map[string]string{"NAME": "Counter", "TYPE": "uint32"})

	testsupport.Equal(t, "func (f *Counter) Value() uint32 { return f.value }", out)
}

func TestSubstLeavesUnsetPlaceholdersEmpty(t *testing.T) {
	out := Subst("prefix#^#MISSING#$#suffix", map[string]string{})

	testsupport.Equal(t, "prefixsuffix", out)
}

func TestSubstHandlesNoPlaceholders(t *testing.T) {
	out := Subst("plain text", map[string]string{"NAME": "unused"})

	testsupport.Equal(t, "plain text", out)
}

func TestSubstHandlesRepeatedPlaceholder(t *testing.T) {
	out := Subst("#^#X#$#-#^#X#$#", map[string]string{"X": "a"})

	testsupport.Equal(t, "a-a", out)
}
