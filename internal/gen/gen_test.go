package gen

import (
	"os"
	"testing"

	"github.com/commschamp/dslgen/internal/gen/templates"
	"github.com/commschamp/dslgen/pkg/testsupport"
)

func TestNewBatchStagesEveryKnownTemplate(t *testing.T) {
	batch, err := NewBatch(2026, "github.com/commschamp/dslgen")
	testsupport.NoError(t, err)
	defer batch.Close()

	entries, err := os.ReadDir(batch.tmplDir)
	testsupport.NoError(t, err)
	testsupport.Equal(t, len(templates.Bodies), len(entries))
}

func TestBatchAddQueuesFiles(t *testing.T) {
	batch, err := NewBatch(2026, "github.com/commschamp/dslgen")
	testsupport.NoError(t, err)
	defer batch.Close()

	testsupport.Equal(t, 0, batch.Count())

	batch.Add(struct{ Name string }{"Counter"}, "proto", "counter.go", "field.go.tmpl")
	batch.Add(struct{ Name string }{"Status"}, "proto", "status.go", "field.go.tmpl")

	testsupport.Equal(t, 2, batch.Count())
}

func TestBatchCloseRemovesScratchDir(t *testing.T) {
	batch, err := NewBatch(2026, "github.com/commschamp/dslgen")
	testsupport.NoError(t, err)

	dir := batch.tmplDir
	testsupport.NoError(t, batch.Close())

	_, statErr := os.Stat(dir)
	testsupport.True(t, os.IsNotExist(statErr), "expected the scratch template directory to be removed")
}
