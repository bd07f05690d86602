package services

import (
	"fmt"
	"os"
	"time"

	"github.com/Gavin1937/pbd-epub-builder/pkg/data"
	"github.com/Gavin1937/pbd-epub-builder/pkg/integrations"
	"github.com/Gavin1937/pbd-epub-builder/pkg/manifest"
)

// BuildProgress represents the progress of a series build
type BuildProgress struct {
	SeriesID     int64
	SeriesTitle  string
	NovelID      int64
	NovelTitle   string
	CurrentNovel int
	TotalNovels  int
	Status       string // "building", "processing", "complete", "error"
	Error        error
}

// Repository interface needed by the builder
type Repository interface {
	SaveBook(book *data.Book) error
	GetBook(seriesID int64) (*data.Book, error)
	ListBooks() ([]*data.Book, error)
	DeleteBook(seriesID int64) error
}

// Builder turns manifest files plus their downloaded content into
// EPUB books, recording each finished build in the library.
type Builder struct {
	repo         Repository
	dataDir      string
	outputDir    string
	useIndex     bool
	processor    *integrations.ImageProcessor
	progressChan chan BuildProgress
}

// NewBuilder creates a Builder. repo may be nil when no library
// should be kept.
func NewBuilder(repo Repository, dataDir, outputDir string) *Builder {
	return &Builder{
		repo:         repo,
		dataDir:      dataDir,
		outputDir:    outputDir,
		progressChan: make(chan BuildProgress, 100),
	}
}

// UseIndex numbers novel titles by their position in the series.
func (b *Builder) UseIndex(on bool) {
	b.useIndex = on
}

// OptimizeFor re-encodes images for the named device profile.
func (b *Builder) OptimizeFor(deviceID string) error {
	device, ok := integrations.GetDeviceProfile(deviceID)
	if !ok {
		return fmt.Errorf("unknown device: %s", deviceID)
	}
	b.processor = integrations.NewImageProcessor(device.OptimizationSettings())
	return nil
}

// GetProgressChannel returns the channel for receiving build progress updates
func (b *Builder) GetProgressChannel() <-chan BuildProgress {
	return b.progressChan
}

// BuildSeries builds one EPUB from the given manifest files and
// returns its path.
func (b *Builder) BuildSeries(manifestPaths ...string) (string, error) {
	info, err := os.Stat(b.dataDir)
	if err != nil {
		return "", fmt.Errorf("data directory missing: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("data path %s is not a directory", b.dataDir)
	}

	series, err := manifest.Load(manifestPaths...)
	if err != nil {
		return "", fmt.Errorf("failed to load manifest: %w", err)
	}

	builder := integrations.NewEPubBuilder(b.outputDir)
	defer builder.Close()
	if b.processor != nil {
		builder.OptimizeImages(b.processor)
	}
	if err := builder.Init(series); err != nil {
		return "", err
	}

	total := len(series.Novels)
	for i, novel := range series.Novels {
		b.sendProgress(BuildProgress{
			SeriesID:     series.ID,
			SeriesTitle:  series.Title,
			NovelID:      novel.ID,
			NovelTitle:   novel.Title,
			CurrentNovel: i + 1,
			TotalNovels:  total,
			Status:       "building",
		})

		index := 0
		if b.useIndex {
			index = i + 1
		}
		if err := builder.AddNovel(novel, b.dataDir, index); err != nil {
			err = fmt.Errorf("novel %d: %w", novel.ID, err)
			b.sendProgress(BuildProgress{
				SeriesID:    series.ID,
				SeriesTitle: series.Title,
				NovelID:     novel.ID,
				NovelTitle:  novel.Title,
				TotalNovels: total,
				Status:      "error",
				Error:       err,
			})
			return "", err
		}
	}

	b.sendProgress(BuildProgress{
		SeriesID:     series.ID,
		SeriesTitle:  series.Title,
		CurrentNovel: total,
		TotalNovels:  total,
		Status:       "processing",
	})

	epubPath, err := builder.Done()
	if err != nil {
		return "", err
	}

	if b.repo != nil {
		book := &data.Book{
			SeriesID:   series.ID,
			Title:      series.Title,
			Author:     series.Author,
			NovelCount: total,
			FilePath:   epubPath,
			BuiltAt:    time.Now(),
		}
		if err := b.repo.SaveBook(book); err != nil {
			return "", fmt.Errorf("failed to record book: %w", err)
		}
	}

	b.sendProgress(BuildProgress{
		SeriesID:     series.ID,
		SeriesTitle:  series.Title,
		CurrentNovel: total,
		TotalNovels:  total,
		Status:       "complete",
	})

	return epubPath, nil
}

// sendProgress sends a progress update (non-blocking)
func (b *Builder) sendProgress(progress BuildProgress) {
	select {
	case b.progressChan <- progress:
	default:
		// Channel full, skip this update
	}
}

// Close releases the progress channel.
func (b *Builder) Close() {
	close(b.progressChan)
}
