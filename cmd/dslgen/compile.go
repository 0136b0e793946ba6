package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/commschamp/dslgen/internal/diag"
	"github.com/commschamp/dslgen/internal/emit"
	"github.com/commschamp/dslgen/internal/gen"
	"github.com/commschamp/dslgen/internal/ir"
	"github.com/commschamp/dslgen/internal/outfs"
	"github.com/commschamp/dslgen/internal/parse"
	"github.com/commschamp/dslgen/pkg/textpos"
)

// runCompile drives the whole pipeline for one invocation: load every
// input file through the IR builder, bail out on the first phase that
// reports an error, then emit and render every generated artifact.
func runCompile(cmd *cobra.Command) error {
	inputFiles, _ := cmd.Flags().GetStringArray("input-file")
	if len(inputFiles) == 0 {
		return userError{fmt.Errorf("at least one --input-file is required")}
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	prefix, _ := cmd.Flags().GetString("input-files-prefix")
	nsOverride, _ := cmd.Flags().GetString("namespace-override")
	protocolVersion, _ := cmd.Flags().GetString("protocol-version")
	extraBundles, _ := cmd.Flags().GetStringArray("extra-input-bundle")
	customizationLevel, _ := cmd.Flags().GetString("customization-level")
	forceMainNsOptions, _ := cmd.Flags().GetBool("force-main-namespace-in-options")

	minLevel := diag.Warning
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		minLevel = diag.Debug
	}

	sink := diag.New(minLevel, nil)
	builder := parse.NewBuilder(sink)

	for _, bundle := range extraBundles {
		sink.Infof(textpos.Pos{}, "extra input bundle %q not yet materialised into --input-file list", bundle)
	}

	for _, path := range append([]string{}, inputFiles...) {
		if err := loadOne(builder, path, prefix); err != nil {
			return userError{err}
		}
	}

	schema, ok := builder.Finalize()
	if !ok {
		return userError{fmt.Errorf("schema failed validation (see diagnostics above)")}
	}

	if nsOverride != "" {
		schema.Root.Name = nsOverride
	}

	root, err := outfs.NewRoot(outDir)
	if err != nil {
		return err
	}

	if err := render(schema, root, protocolVersion, customizationLevel, forceMainNsOptions); err != nil {
		return err
	}

	return nil
}

func loadOne(b *parse.Builder, path, prefix string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	reported := strings.TrimPrefix(path, prefix)

	return b.LoadFile(reported, f)
}

// render walks the validated schema, builds every emitter's template
// context, and renders the whole batch through the generator core.
// customizationLevel gates whether an Options file is emitted at all
// (None means the generated code exposes no customisation surface);
// forceMainNsOptions keeps the root namespace's Options entries even when
// it would otherwise have none worth emitting.
func render(schema *ir.Schema, root outfs.Root, protocolVersion, customizationLevel string, forceMainNsOptions bool) error {
	pkg := goPackageName(schema.Name)

	batch, err := gen.NewBatch(time.Now().Year(), "github.com/commschamp/dslgen")
	if err != nil {
		return err
	}
	defer batch.Close()

	for _, ns := range schema.AllNamespaces() {
		for _, f := range ns.Fields() {
			data := emit.BuildFieldData(f)
			batch.Add(data, pkg, fieldOutPath(ns, f), "field.go.tmpl")
		}

		for _, iface := range ns.Interfaces() {
			data := emit.BuildInterfaceData(pkg, iface)
			batch.Add(data, pkg, namedOutPath(ns, iface.Name, "interface"), "interface.go.tmpl")
		}

		for _, m := range ns.Messages() {
			data := emit.BuildMessageData(pkg, m)
			batch.Add(data, pkg, namedOutPath(ns, m.Name, "message"), "message.go.tmpl")
		}

		for _, fr := range ns.Frames() {
			data := emit.BuildFrameData(pkg, fr)
			batch.Add(data, pkg, namedOutPath(ns, fr.Name, "frame"), "frame.go.tmpl")
		}
	}

	if !strings.EqualFold(customizationLevel, "None") {
		opts := emit.BuildOptionsData(pkg, schema)
		if forceMainNsOptions && len(opts.Entries) == 0 {
			opts.Entries = append(opts.Entries, "Main")
		}

		batch.Add(opts, pkg, "options.go", "options.go.tmpl")
	}

	batch.Add(emit.BuildDispatchData(pkg, schema), pkg, "dispatch.go", "dispatch.go.tmpl")

	if err := batch.Render(); err != nil {
		return fmt.Errorf("rendering generated sources: %w", err)
	}

	manifest := emit.BuildManifest{
		Name:           schema.Name,
		Version:        protocolVersion,
		RuntimeLibrary: emit.RuntimeLibrary{MinVersion: "1.0.0"},
	}

	data, err := emit.MarshalManifest(manifest)
	if err != nil {
		return fmt.Errorf("marshalling build manifest: %w", err)
	}

	return root.WriteFile("build-manifest.json", data)
}

func fieldOutPath(ns *ir.Namespace, f ir.Field) string {
	return namedOutPath(ns, f.Common().Name, "field")
}

func namedOutPath(ns *ir.Namespace, name, kind string) string {
	dir := strings.ReplaceAll(ns.Path(), ".", "/")
	if dir == "" {
		return fmt.Sprintf("%s_%s.go", strings.ToLower(name), kind)
	}

	return fmt.Sprintf("%s/%s_%s.go", dir, strings.ToLower(name), kind)
}

func goPackageName(schemaName string) string {
	lower := strings.ToLower(schemaName)
	lower = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, lower)

	if lower == "" {
		return "protocol"
	}

	return lower
}
