package pbd

import (
	"fmt"
	"strings"

	"github.com/Gavin1937/pbd-epub-builder/pkg/data"
	"github.com/Gavin1937/pbd-epub-builder/pkg/integrations"
	"github.com/Gavin1937/pbd-epub-builder/pkg/services"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [series.json...]",
	Short: "Build an EPUB from one or more series manifests",
	Long:  "Read PixivBatchDownloader manifest file(s), resolve the downloaded chapter and image files, and write a single EPUB for the series",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}
		if cmd.Flags().Changed("output") {
			cfg.OutputDir, _ = cmd.Flags().GetString("output")
		}
		if cmd.Flags().Changed("index") {
			cfg.UseIndex, _ = cmd.Flags().GetBool("index")
		}
		if cmd.Flags().Changed("device") {
			cfg.Image.Device, _ = cmd.Flags().GetString("device")
		}

		var repo services.Repository
		if noLibrary, _ := cmd.Flags().GetBool("no-library"); !noLibrary {
			repo = data.NewDuckDBRepository(cfg.LibraryPath)
		}

		builder := newBuilder(cfg, repo)

		fmt.Printf("📥 Building from %d manifest(s)\n", len(args))

		// Listen for progress
		go func() {
			for progress := range builder.GetProgressChannel() {
				switch progress.Status {
				case "building":
					fmt.Printf("  [%d/%d] %s\n", progress.CurrentNovel, progress.TotalNovels, progress.NovelTitle)
				case "processing":
					fmt.Println("📦 Packaging book...")
				}
			}
		}()

		epubPath, err := builder.BuildSeries(args...)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("build failed: %w", err))
		}

		fmt.Printf("📖 EPUB created: %s\n", epubPath)
	},
}

func init() {
	buildCmd.Flags().StringP("data-dir", "d", "", "Directory holding the downloaded txt and image files")
	buildCmd.Flags().StringP("output", "o", "", "Directory to write the EPUB into")
	buildCmd.Flags().BoolP("index", "i", false, "Prefix novel titles with their position in the series")
	buildCmd.Flags().String("device", "", "Optimize images for a device profile ("+strings.Join(integrations.DeviceIDs(), ", ")+")")
	buildCmd.Flags().Bool("no-library", false, "Do not record the build in the library database")
}
