package pbd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Gavin1937/pbd-epub-builder/pkg/manifest"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [series.json...]",
	Short: "Show what a manifest would build, without writing anything",
	Long:  "Print the series metadata and check that every chapter and image file the manifest references exists in the data directory",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}

		series, err := manifest.Load(args...)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to load manifest: %w", err))
		}

		fmt.Printf("📚 %s (series %d)\n", series.Title, series.ID)
		fmt.Printf("✍️  Author: %s\n", series.Author)
		fmt.Printf("📄 Novels: %d\n\n", len(series.Novels))

		missing := 0
		for i, novel := range series.Novels {
			fmt.Printf("%3d. %s (id %d)\n", i+1, novel.Title, novel.ID)

			files := []string{fmt.Sprintf("%d.txt", novel.ID), novel.CoverFile}
			for _, name := range novel.EmbeddedFiles {
				files = append(files, name)
			}
			for _, name := range files {
				if _, err := os.Stat(filepath.Join(cfg.DataDir, name)); err != nil {
					fmt.Printf("     ❌ missing: %s\n", name)
					missing++
				}
			}
		}

		if missing > 0 {
			cobra.CheckErr(fmt.Errorf("%d referenced file(s) missing from %s", missing, cfg.DataDir))
		}
		fmt.Println("\n✅ All referenced files present")
	},
}

func init() {
	inspectCmd.Flags().StringP("data-dir", "d", "", "Directory holding the downloaded txt and image files")
}
