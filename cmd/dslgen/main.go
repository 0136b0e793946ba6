package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		DisableColors: !term.IsTerminal(int(os.Stderr.Fd())),
		FullTimestamp: true,
	})

	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if _, ok := err.(userError); ok {
		os.Exit(1)
	}

	os.Exit(2)
}

// userError marks a failure caused by the input (a bad schema, an
// unresolved reference, an I/O problem reading a file) rather than a bug
// in dslgen itself, so main can map it to exit code 1 instead of 2.
type userError struct{ error }

func init() {
	rootCmd.Flags().StringArray("input-file", nil, "schema XML file to compile (repeatable)")
	rootCmd.Flags().String("output-dir", ".", "directory generated sources are written to")
	rootCmd.Flags().String("input-files-prefix", "", "common prefix stripped from reported input paths")
	rootCmd.Flags().String("namespace-override", "", "override the root namespace name")
	rootCmd.Flags().String("customization-level", "Full", "Full, Limited, or None")
	rootCmd.Flags().String("protocol-version", "", "protocol version stamped into the build manifest")
	rootCmd.Flags().Bool("force-main-namespace-in-options", false, "always emit an Options entry for the main namespace")
	rootCmd.Flags().StringArray("extra-input-bundle", nil, "additional schema bundle directory (repeatable)")
	rootCmd.Flags().Bool("verbose", false, "enable debug-level diagnostics")
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dslgen",
	Short: "A compiler for binary-protocol schema definitions.",
	Long:  "dslgen parses protocol schema XML into a validated IR and generates Go source from it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			log.SetLevel(log.DebugLevel)
		}

		return runCompile(cmd)
	},
}
