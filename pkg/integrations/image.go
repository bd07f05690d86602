package integrations

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	_ "image/gif"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageSettings controls how embedded images are re-encoded for
// e-reader screens.
type ImageSettings struct {
	MaxWidth  int
	MaxHeight int
	Grayscale bool
	Format    string // "jpeg" or "png"
	Quality   int    // JPEG quality
}

// ImageProcessor downsizes and re-encodes images to fit a device.
type ImageProcessor struct {
	settings ImageSettings
}

func NewImageProcessor(settings ImageSettings) *ImageProcessor {
	return &ImageProcessor{settings: settings}
}

// OutputExt returns the file extension matching the output format.
func (p *ImageProcessor) OutputExt() string {
	if p.settings.Format == "png" {
		return "png"
	}
	return "jpg"
}

// ProcessImage decodes, fits and re-encodes a single image.
func (p *ImageProcessor) ProcessImage(input io.Reader) ([]byte, error) {
	img, _, err := image.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	newWidth, newHeight := p.calculateDimensions(bounds.Dx(), bounds.Dy())

	var processed image.Image = img
	if newWidth != bounds.Dx() || newHeight != bounds.Dy() {
		processed = p.resize(img, newWidth, newHeight)
	}

	if p.settings.Grayscale {
		processed = p.toGrayscale(processed)
	}

	return p.encode(processed)
}

// ProcessImageData is a convenience method that works with byte slices
func (p *ImageProcessor) ProcessImageData(data []byte) ([]byte, error) {
	return p.ProcessImage(bytes.NewReader(data))
}

// calculateDimensions fits the image into the device bounds while
// keeping the aspect ratio.
func (p *ImageProcessor) calculateDimensions(width, height int) (int, int) {
	if width <= p.settings.MaxWidth && height <= p.settings.MaxHeight {
		return width, height
	}

	widthScale := float64(p.settings.MaxWidth) / float64(width)
	heightScale := float64(p.settings.MaxHeight) / float64(height)

	scale := widthScale
	if heightScale < widthScale {
		scale = heightScale
	}

	return int(float64(width) * scale), int(float64(height) * scale)
}

// resize resizes an image using high-quality interpolation
func (p *ImageProcessor) resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	// CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	return dst
}

// toGrayscale converts an image to grayscale
func (p *ImageProcessor) toGrayscale(img image.Image) image.Image {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}

	return gray
}

// encode encodes the processed image to the configured format
func (p *ImageProcessor) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer

	switch p.settings.Format {
	case "jpeg", "jpg", "":
		quality := p.settings.Quality
		if quality == 0 {
			quality = 85
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", p.settings.Format)
	}

	return buf.Bytes(), nil
}
