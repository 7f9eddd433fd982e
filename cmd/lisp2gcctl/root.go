package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jpare/lisp2gc/internal/rtlog"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	jsonOut    bool
	variantArg string
)

var rootCmd = &cobra.Command{
	Use:   "lisp2gcctl",
	Short: "Exercise the lisp2gc mark-compact runtime",
	Long: `lisp2gcctl drives a lisp2gc Runtime through scripted scenarios and
manual allocation/collection cycles, for exploring the collector's
behavior outside of a test binary.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		rtlog.Init(rtlog.Options{Enabled: verbose, Writer: os.Stderr})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log collector diagnostics")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit machine-readable JSON output")
	rootCmd.PersistentFlags().
		StringVar(&variantArg, "variant", "fixed", "heap growth strategy: fixed or realloc")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
