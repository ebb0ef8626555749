// Command symtab-compile reads a linker symbol listing and emits the
// KSYMTBL blob and its C wrapper source.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/polarvid/rt-thread/internal/buildinfo"
	"github.com/polarvid/rt-thread/internal/config"
	"github.com/polarvid/rt-thread/internal/symtab"
	"github.com/polarvid/rt-thread/internal/symtab/blob"
	"github.com/polarvid/rt-thread/internal/symtab/compress"
	"github.com/polarvid/rt-thread/internal/xerrors"
)

var (
	flagDialect       string
	flagOut           string
	flagConfig        string
	flagCompress      bool
	flagSplitStrategy string
	flagBigEndian     bool
	flagVerbose       bool
)

// newRootCmd builds the cobra command tree. Split out from main so tests
// can drive runCompile through real flag parsing instead of calling it
// against package-level defaults.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "symtab-compile",
		Short:   "Compile a linker symbol listing into a KSYMTBL blob",
		Version: buildinfo.Version,
	}

	compileCmd := &cobra.Command{
		Use:   "compile [input-file]",
		Short: "Parse, filter, optionally compress, and encode a symbol listing",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	compileCmd.Flags().StringVar(&flagDialect, "dialect", "nm", `input dialect: "map" or "nm"`)
	compileCmd.Flags().StringVar(&flagOut, "out", "", "output C wrapper path (default: write to stdout)")
	compileCmd.Flags().StringVar(&flagConfig, "config", "", "path to .ksymtbl.yaml")
	compileCmd.Flags().BoolVar(&flagCompress, "compress", false, "enable substring compression")
	compileCmd.Flags().StringVar(&flagSplitStrategy, "split-strategy", "", `compressor initial split strategy: "windowed" or "underscore"`)
	compileCmd.Flags().BoolVar(&flagBigEndian, "big-endian", false, "pack O2S/S2O as big-endian pairs")
	compileCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print the compression report and window diagnostics")

	root.AddCommand(compileCmd)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.SetFlags(0)
		log.Println("symtab-compile:", err)
		os.Exit(exitCodeFor(err))
	}
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("compress") {
		cfg.Compress = flagCompress
	}
	if flagSplitStrategy != "" {
		cfg.SplitStrategy = flagSplitStrategy
	}
	if cmd.Flags().Changed("big-endian") {
		cfg.BigEndian = flagBigEndian
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", xerrors.ErrMissingInput, err)
	}
	defer f.Close()

	var entries []symtab.SymbolEntry
	switch flagDialect {
	case "map":
		result, err := symtab.ParseMap(f)
		if err != nil {
			return err
		}
		entries = result.Entries
		if flagVerbose {
			okf("symtab-compile: map .text base %#x size %#x\n", result.TextBase, result.TextSize)
		}
	case "nm":
		entries, err = symtab.ParseNM(f)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown dialect %q", xerrors.ErrMalformedInput, flagDialect)
	}

	filt, err := symtab.NewFilter(cfg.DenyPatterns)
	if err != nil {
		return err
	}
	entries = filt.Apply(entries)

	base, windowed, skipped, ok := symtab.SelectWindow(entries)
	if !ok {
		return fmt.Errorf("%w: no class-T symbol found to anchor the 4GiB window", xerrors.ErrMalformedInput)
	}
	if skipped > 0 && flagVerbose {
		warnf("symtab-compile: %v: dropped %d symbols outside the 4GiB window anchored at %#x\n", xerrors.ErrWindowOverflow, skipped, base)
	}

	if cfg.Compress {
		strategy := compress.StrategyWindowed
		if cfg.SplitStrategy == "underscore" {
			strategy = compress.StrategyUnderscoreAware
		}
		buffers := make([][]byte, len(windowed))
		for i, e := range windowed {
			buffers[i] = e.Symbol
		}
		_, report := compress.Compress(buffers, strategy)
		for i := range windowed {
			windowed[i].Symbol = buffers[i]
		}
		if flagVerbose {
			if report.Exhausted {
				warnf("symtab-compile: %v after %d codes (ratio %.3f)\n", xerrors.ErrDictionaryExhausted, report.CodesUsed, report.Ratio())
			} else {
				okf("symtab-compile: compression ratio %.3f (%d codes used)\n", report.Ratio(), report.CodesUsed)
			}
		}
	}

	blb := blob.Encode(base, windowed, cfg.BigEndian)
	src, err := blob.RenderWrapper(blb, buildinfo.NewBuildID())
	if err != nil {
		return err
	}

	if flagOut == "" {
		if _, err := os.Stdout.Write(src); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
	} else {
		if err := os.WriteFile(flagOut, src, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", flagOut, err)
		}
	}
	if flagVerbose {
		dest := flagOut
		if dest == "" {
			dest = "stdout"
		}
		okf("symtab-compile: wrote %s (%d symbols, %d bytes)\n", dest, blb.N, len(blb.Words)*4)
	}
	return nil
}

// warnf and okf write verbose diagnostics to stderr, colored when it is a
// terminal — never to stdout, which carries the generated C wrapper by
// default.
func warnf(format string, a ...interface{}) {
	color.New(color.FgYellow).Fprintf(os.Stderr, format, a...)
}

func okf(format string, a ...interface{}) {
	color.New(color.FgGreen).Fprintf(os.Stderr, format, a...)
}

// exitCodeFor maps a toolchain error to the process exit code convention
// of spec §6: 0 success, 1 missing file, 2 malformed input.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, xerrors.ErrMissingInput):
		return 1
	case err != nil:
		return 2
	default:
		return 0
	}
}
