package pbd

import (
	"os"

	"github.com/Gavin1937/pbd-epub-builder/pkg/app"
	"github.com/Gavin1937/pbd-epub-builder/pkg/config"
	"github.com/Gavin1937/pbd-epub-builder/pkg/data"
	"github.com/Gavin1937/pbd-epub-builder/pkg/services"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pbd-epub-builder",
	Short: "Build EPUB books from PixivBatchDownloader exports",
	Long:  "Turn locally downloaded pixiv novels (series manifest JSON, chapter txt files and images) into EPUB books",
	Run: func(cmd *cobra.Command, args []string) {
		// Launch TUI by default
		cfg := loadConfig()
		repo := data.NewDuckDBRepository(cfg.LibraryPath)
		builder := newBuilder(cfg, repo)

		a := app.NewApp(repo, builder, cfg.DataDir)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.DefaultFileName+")")

	// Add all subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(listCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	cobra.CheckErr(err)
	return cfg
}

func newBuilder(cfg *config.Config, repo services.Repository) *services.Builder {
	builder := services.NewBuilder(repo, cfg.DataDir, cfg.OutputDir)
	builder.UseIndex(cfg.UseIndex)
	if cfg.Image.Device != "" {
		cobra.CheckErr(builder.OptimizeFor(cfg.Image.Device))
	}
	return builder
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
