package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filehash/pkg/filecache"

	"github.com/utkarsh5026/filehash/cmd/ui"
)

func newCacheWriteCmd() *cobra.Command {
	flags := &cacheFlags{}
	var (
		concurrency int
		gzipLevel   int
	)

	cmd := &cobra.Command{
		Use:   "write [path...]",
		Short: "Validate a file set and persist the result to the cache",
		Long: `Runs the same fast-path validation as "cache validate", then
atomically rewrites the sidecar file with the new entries and
aggregate digest.`,
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

			res, err := c.Validate(filecache.ValidateOptions{Files: paths, Concurrency: concurrency})
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}

			writeOpts := filecache.WriteOptions{}
			if cmd.Flags().Changed("gzip-level") {
				writeOpts.GzipLevel = &gzipLevel
			}
			if err := c.Write(writeOpts); err != nil {
				return fmt.Errorf("write: %w", err)
			}

			fmt.Println(ui.CacheSummaryLine(hexDigest(res.Digest[:]), res.Rehashed, len(c.ReadFiles())-res.Rehashed))
			fmt.Println(ui.SuccessMessage("cache written", flags.path))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Bounded stat fan-out and hashing thread budget (0 = default)")
	cmd.Flags().IntVar(&gzipLevel, "gzip-level", 1, "Gzip level for the compressed item section (1-9)")

	return cmd
}
