package main

import "github.com/spf13/cobra"

// cacheFlags are shared by every cache subcommand: which sidecar file
// to open and which Manager to open it against.
type cacheFlags struct {
	path        string
	version     uint32
	seedLow     uint32
	seedHigh    uint32
	fingerprint string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "cache", "", "Path to the cache sidecar file (required)")
	cmd.Flags().Uint32Var(&f.version, "version", 1, "Schema version this cache must match")
	cmd.Flags().Uint32Var(&f.seedLow, "seed-low", 0, "Low 32 bits of the aggregate digest seed")
	cmd.Flags().Uint32Var(&f.seedHigh, "seed-high", 0, "High 32 bits of the aggregate digest seed")
	cmd.Flags().StringVar(&f.fingerprint, "fingerprint", "", "Fast-reject fingerprint (32 hex chars, or any string to hash)")
	cmd.MarkFlagRequired("cache")
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain a persistent file-hash cache",
	}

	cmd.AddCommand(newCacheValidateCmd())
	cmd.AddCommand(newCacheWriteCmd())
	cmd.AddCommand(newCacheDumpCmd())
	return cmd
}
