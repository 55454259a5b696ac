package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filehash/pkg/filecache"

	"github.com/utkarsh5026/filehash/cmd/ui"
)

func newCacheValidateCmd() *cobra.Command {
	flags := &cacheFlags{}
	var (
		concurrency int
		diag        bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path...]",
		Short: "Validate a file set against a cache, reusing unchanged hashes",
		Long: `Stat every named path, reuse the prior cache entry's hash where
(inode, mtime, size) all still match, rehash everything else in
parallel, and report whether the aggregate digest changed.

Paths are taken from the command line, read one per line from stdin
if none are given, or — if the cache has a valid header — reused from
the path list the cache already stores.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := readPaths(args)
			if err != nil {
				return err
			}

			mgr := filecache.NewManager(flags.version, flags.seedLow, flags.seedHigh, parseFingerprint(flags.fingerprint))
			c := filecache.NewCache(mgr)
			if err := c.Open(flags.path); err != nil {
				return fmt.Errorf("opening cache: %w", err)
			}
			defer c.Close()

			res, err := c.Validate(filecache.ValidateOptions{
				Files:           paths,
				Concurrency:     concurrency,
				WithDiagnostics: diag,
			})
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}

			if diag {
				printDiagnostics(res.Diagnostics)
			}

			reused := len(c.ReadFiles()) - res.Rehashed
			fmt.Println(ui.CacheSummaryLine(hexDigest(res.Digest[:]), res.Rehashed, reused))
			if res.Changed {
				fmt.Println(ui.WarningMessage("aggregate digest changed"))
			} else {
				fmt.Println(ui.SuccessMessage("no change"))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Bounded stat fan-out and hashing thread budget (0 = default)")
	cmd.Flags().BoolVarP(&diag, "verbose", "v", false, "Print a per-path reuse reason")

	return cmd
}

func printDiagnostics(diag []filecache.ReuseDecision) {
	for _, d := range diag {
		var status ui.ReuseStatus
		switch d.Reason {
		case filecache.ReasonReused:
			status = ui.StatusReused
		case filecache.ReasonMissing, filecache.ReasonStatError:
			status = ui.StatusMissing
		default:
			status = ui.StatusRehashed
		}
		fmt.Println(ui.FormatReuseLine(status, d.Path, string(d.Reason)))
	}
}
