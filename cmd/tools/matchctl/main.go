// cmd/tools/matchctl/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"matching-workers/internal/common/logger"
)

// app carries what every subcommand needs.
type app struct {
	logLevel string
	logger   logger.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "matchctl",
		Short: "Offline matching, slot-grid and registry tooling",
		Long:  `Runs the matching scorer and the availability grid against local JSON files and maintains the activity registry.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = logger.NewStructured(a.logLevel, "console")
			return nil
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(scoreCmd(a))
	root.AddCommand(rankCmd(a))
	root.AddCommand(gridCmd(a))
	root.AddCommand(registryCmd(a))
	return root
}

// readJSON decodes a file, or stdin when path is "-".
func readJSON(path string, out interface{}) error {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
