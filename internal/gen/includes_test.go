package gen

import (
	"testing"

	"github.com/commschamp/dslgen/pkg/testsupport"
)

func TestMergeIncludesDedupsAndOrdersSystemFirst(t *testing.T) {
	merged := MergeIncludes(
		[]Include{{Path: "cstdint", System: true}, {Path: "foo/Bar.h"}},
		[]Include{{Path: "cstdint", System: true}, {Path: "cassert", System: true}, {Path: "foo/Bar.h"}},
	)

	testsupport.Equal(t, 3, len(merged))
	testsupport.Equal(t, Include{Path: "cassert", System: true}, merged[0])
	testsupport.Equal(t, Include{Path: "cstdint", System: true}, merged[1])
	testsupport.Equal(t, Include{Path: "foo/Bar.h"}, merged[2])
}

func TestRenderFormatsSystemAndQuotedIncludes(t *testing.T) {
	lines := Render([]Include{
		{Path: "cstdint", System: true},
		{Path: "foo/Bar.h"},
	})

	testsupport.Equal(t, []string{"#include <cstdint>", "#include \"foo/Bar.h\""}, lines)
}
