package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filehash/pkg/bulkhash"
	"github.com/utkarsh5026/filehash/pkg/xxh3hash"

	"github.com/utkarsh5026/filehash/cmd/ui"
)

func newHashCmd() *cobra.Command {
	var (
		outputMode  string
		concurrency int
		seedLow     uint32
		seedHigh    uint32
	)

	cmd := &cobra.Command{
		Use:   "hash [path...]",
		Short: "Hash files in parallel and print the aggregate digest",
		Long: `Hash every named file with XXH3-128 in parallel and fold the
per-file digests into a single seeded aggregate digest.

Paths are taken from the command line, or read one per line from
stdin if none are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := readPaths(args)
			if err != nil {
				return err
			}

			result, err := bulkhash.Bulk(bulkhash.Options{
				Files:       paths,
				OutputMode:  bulkhash.OutputMode(outputMode),
				Concurrency: concurrency,
				SeedLow:     seedLow,
				SeedHigh:    seedHigh,
			})
			if err != nil {
				return fmt.Errorf("hash: %w", err)
			}

			switch bulkhash.OutputMode(outputMode) {
			case bulkhash.OutputFiles, bulkhash.OutputAll:
				printPerFile(result, paths, bulkhash.OutputMode(outputMode))
			default:
				fmt.Println(ui.Cyan(hexDigest(result)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputMode, "mode", string(bulkhash.OutputDigest), "Output mode: digest, files, all")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Worker thread budget (0 = number of CPUs, at least 2)")
	cmd.Flags().Uint32Var(&seedLow, "seed-low", 0, "Low 32 bits of the aggregate digest seed")
	cmd.Flags().Uint32Var(&seedHigh, "seed-high", 0, "High 32 bits of the aggregate digest seed")

	return cmd
}

// printPerFile prints one hex digest per path, skipping the leading
// aggregate digest when mode is "all".
func printPerFile(result []byte, paths []string, mode bulkhash.OutputMode) {
	offset := 0
	if mode == bulkhash.OutputAll {
		fmt.Println(ui.Cyan(hexDigest(result[:xxh3hash.Size])))
		offset = xxh3hash.Size
	}
	for i, p := range paths {
		start := offset + i*xxh3hash.Size
		digest := result[start : start+xxh3hash.Size]
		fmt.Printf("%s  %s\n", hexDigest(digest), p)
	}
}
