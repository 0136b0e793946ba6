// Package gen drives code generation from the validated IR, wrapping
// bavard's batch template generator (the teacher's own code-generation
// dependency, seen wired in field/internal/generator/main.go) instead of
// hand-rolling a template runner. Template bodies themselves live as Go
// string constants (internal/gen/templates) rather than checked-in files,
// so a batch first materialises them into a scratch directory bavard can
// read from.
package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/consensys/bavard"

	"github.com/commschamp/dslgen/internal/gen/templates"
)

// copyrightHolder stamps the license header bavard prepends to generated
// files, matching the convention carried by every teacher-generated file.
const copyrightHolder = "commschamp"

// Batch accumulates every file a single `dslgen` invocation must render,
// then emits them all through one bavard.BatchGenerator so the generated
// tree gets the same gofmt/goimports post-processing pass the teacher's own
// generator runs.
type Batch struct {
	gen     *bavard.BatchGenerator
	tmplDir string
	items   []pendingFile
}

type pendingFile struct {
	data        any
	packageName string
	entry       bavard.Entry
}

// NewBatch constructs an empty generation batch for the given copyright
// year and module path, writing every known template body out to a scratch
// directory that subsequent Add/Render calls reference by filename.
func NewBatch(year int, module string) (*Batch, error) {
	dir, err := os.MkdirTemp("", "dslgen-templates-*")
	if err != nil {
		return nil, fmt.Errorf("staging templates: %w", err)
	}

	for name, body := range templates.Bodies {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			return nil, fmt.Errorf("staging template %q: %w", name, err)
		}
	}

	return &Batch{gen: bavard.NewBatchGenerator(copyrightHolder, year, module), tmplDir: dir}, nil
}

// Add queues a single templated output file. data is the template's root
// context object (typically one of the *Data structs in internal/emit);
// outPath is the final file path, relative to the output directory root.
func (b *Batch) Add(data any, packageName, outPath string, templateNames ...string) {
	b.items = append(b.items, pendingFile{
		data:        data,
		packageName: packageName,
		entry:       bavard.Entry{File: outPath, Templates: templateNames},
	})
}

// Render runs every queued entry through bavard, returning the first error
// encountered (bavard already contextualises it with the failing file).
func (b *Batch) Render() error {
	for _, it := range b.items {
		if err := b.gen.Generate(it.data, it.packageName, b.tmplDir, it.entry); err != nil {
			return fmt.Errorf("generating %s: %w", it.entry.File, err)
		}
	}

	return nil
}

// Count reports how many files are queued, for progress/log messages.
func (b *Batch) Count() int {
	return len(b.items)
}

// Close removes the scratch template directory.
func (b *Batch) Close() error {
	return os.RemoveAll(b.tmplDir)
}
