package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/filehash/pkg/filecache"

	"github.com/utkarsh5026/filehash/cmd/ui"
)

func newCacheDumpCmd() *cobra.Command {
	flags := &cacheFlags{}
	var limit int

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print a cache file's header and entry table",
		Long: `Opens the cache sidecar file and renders its header fields and,
unless suppressed with --limit 0, an entry table of the paths it
covers, matched against the Manager's version and fingerprint.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := filecache.NewManager(flags.version, flags.seedLow, flags.seedHigh, parseFingerprint(flags.fingerprint))
			c := filecache.NewCache(mgr)
			if err := c.Open(flags.path); err != nil {
				return fmt.Errorf("opening cache: %w", err)
			}
			defer c.Close()

			fmt.Println(ui.Header(" Cache Header "))
			h, ok := c.Header()
			if !ok {
				fmt.Println(ui.WarningMessage("no matching header (missing file, or version/fingerprint mismatch)"))
				return nil
			}
			fmt.Println(h.String())
			fmt.Println()

			paths, entries, _ := c.Entries()
			if limit == 0 || len(paths) == 0 {
				return nil
			}

			fmt.Println(ui.Section("Entries"))
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Path", "Size", "Mtime (ms)", "Hash")

			n := len(paths)
			if limit > 0 && limit < n {
				n = limit
			}
			for i := 0; i < n; i++ {
				e := entries[i]
				table.Append(
					paths[i],
					fmt.Sprintf("%d", e.Size),
					fmt.Sprintf("%d", e.MtimeMs),
					hexDigest(e.Hash[:]),
				)
			}
			table.Render()

			if n < len(paths) {
				fmt.Println(ui.FormatSeparator(40))
				fmt.Printf("%s\n", ui.InfoMessage(fmt.Sprintf("%d more entries not shown (--limit %d)", len(paths)-n, limit)))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 50, "Max entries to print (0 = header only, negative = unlimited)")

	return cmd
}
