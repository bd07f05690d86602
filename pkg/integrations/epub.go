package integrations

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Gavin1937/pbd-epub-builder/pkg/content"
	"github.com/Gavin1937/pbd-epub-builder/pkg/data"
	"github.com/go-shiori/go-epub"
)

// EPubBuilder compiles a normalized series plus its downloaded files
// into a single EPUB. Use Init, AddNovel per episode, then Done; or
// CreateEPub for the whole series in one call.
type EPubBuilder struct {
	outputDir string
	useIndex  bool
	processor *ImageProcessor
	tempDir   string

	book     *epub.Epub
	series   *data.Series
	coverSet bool
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	return &EPubBuilder{outputDir: outputDir}
}

// UseIndex numbers novel titles by their position in the series.
func (p *EPubBuilder) UseIndex(on bool) {
	p.useIndex = on
}

// OptimizeImages re-encodes every embedded image through the given
// processor before it enters the book.
func (p *EPubBuilder) OptimizeImages(processor *ImageProcessor) {
	p.processor = processor
}

// Init prepares an empty book carrying the series metadata.
func (p *EPubBuilder) Init(series *data.Series) error {
	if len(series.Novels) == 0 {
		return fmt.Errorf("no novels to compile")
	}

	// Ensure output directory exists
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	book, err := epub.NewEpub(series.Title)
	if err != nil {
		return fmt.Errorf("failed to create EPub: %w", err)
	}
	book.SetAuthor(series.Author)

	p.book = book
	p.series = series
	p.coverSet = false
	return nil
}

// AddNovel registers a novel's images, transforms its text and
// appends the section. The first added novel's cover doubles as the
// book cover. index numbers the title when positive.
func (p *EPubBuilder) AddNovel(novel *data.Novel, dataDir string, index int) error {
	if p.book == nil {
		return fmt.Errorf("builder not initialized")
	}

	coverPath, err := p.addImage(dataDir, novel.CoverFile)
	if err != nil {
		return fmt.Errorf("failed to add cover image: %w", err)
	}
	if !p.coverSet {
		p.book.SetCover(coverPath, "")
		p.coverSet = true
	}

	paths := content.ImagePaths{Cover: coverPath}
	if len(novel.EmbeddedFiles) > 0 {
		paths.Embedded = make(map[string]string, len(novel.EmbeddedFiles))
		// Register in stable order so repeated builds are identical.
		markers := make([]string, 0, len(novel.EmbeddedFiles))
		for marker := range novel.EmbeddedFiles {
			markers = append(markers, marker)
		}
		sort.Strings(markers)
		for _, marker := range markers {
			internalPath, err := p.addImage(dataDir, novel.EmbeddedFiles[marker])
			if err != nil {
				return fmt.Errorf("failed to add embedded image %s: %w", marker, err)
			}
			paths.Embedded[marker] = internalPath
		}
	}

	textPath := filepath.Join(dataDir, fmt.Sprintf("%d.txt", novel.ID))
	raw, err := os.ReadFile(textPath)
	if err != nil {
		return fmt.Errorf("failed to read novel text: %w", err)
	}

	body, err := content.RenderChapter(novel, string(raw), paths, index)
	if err != nil {
		return fmt.Errorf("failed to render chapter: %w", err)
	}

	if _, err := p.book.AddSection(body, novel.Title, fmt.Sprintf("%d.xhtml", novel.ID), ""); err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}

	return nil
}

// Done writes the book into the output directory and returns its path.
func (p *EPubBuilder) Done() (string, error) {
	if p.book == nil {
		return "", fmt.Errorf("builder not initialized")
	}

	safeTitle := sanitizeFilename(p.series.Title)
	outputPath := filepath.Join(p.outputDir, safeTitle+".epub")

	if err := p.book.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}

	p.book = nil
	p.series = nil
	return outputPath, nil
}

// CreateEPub compiles all novels of a series into a single EPUB file
// and returns its path. Content files are resolved against dataDir.
func (p *EPubBuilder) CreateEPub(series *data.Series, dataDir string) (string, error) {
	if err := p.Init(series); err != nil {
		return "", err
	}

	for i, novel := range series.Novels {
		index := 0
		if p.useIndex {
			index = i + 1
		}
		if err := p.AddNovel(novel, dataDir, index); err != nil {
			return "", fmt.Errorf("failed to add novel %d: %w", novel.ID, err)
		}
	}

	return p.Done()
}

// addImage puts one image file into the EPUB, optionally re-encoded,
// and returns the internal path sections should reference.
func (p *EPubBuilder) addImage(dataDir, name string) (string, error) {
	if !isImageFile(name) {
		return "", fmt.Errorf("unsupported image type: %s", name)
	}

	source := filepath.Join(dataDir, name)
	if _, err := os.Stat(source); err != nil {
		return "", fmt.Errorf("image file missing: %w", err)
	}

	if p.processor != nil {
		processed, err := p.processFile(source, name)
		if err != nil {
			return "", err
		}
		source = processed
		name = filepath.Base(processed)
	}

	internalPath, err := p.book.AddImage(source, name)
	if err != nil {
		return "", fmt.Errorf("failed to add image %s: %w", name, err)
	}
	return internalPath, nil
}

// processFile runs one image through the processor and stages the
// result in a temp directory for go-epub to pick up.
func (p *EPubBuilder) processFile(source, name string) (string, error) {
	if p.tempDir == "" {
		tempDir, err := os.MkdirTemp("", "pbd-epub-*")
		if err != nil {
			return "", fmt.Errorf("failed to create temp directory: %w", err)
		}
		p.tempDir = tempDir
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	processed, err := p.processor.ProcessImageData(raw)
	if err != nil {
		return "", fmt.Errorf("failed to process image %s: %w", name, err)
	}

	ext := filepath.Ext(name)
	staged := filepath.Join(p.tempDir, strings.TrimSuffix(name, ext)+"."+p.processor.OutputExt())
	if err := os.WriteFile(staged, processed, 0644); err != nil {
		return "", fmt.Errorf("failed to stage image: %w", err)
	}
	return staged, nil
}

// Close removes the staging directory, if one was created.
func (p *EPubBuilder) Close() {
	if p.tempDir != "" {
		os.RemoveAll(p.tempDir)
		p.tempDir = ""
	}
}

// isImageFile checks if a file has an image extension
func isImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png" || ext == ".gif" || ext == ".webp"
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
