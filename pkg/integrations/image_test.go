package integrations

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestImage(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeResult(t *testing.T, data []byte) (image.Image, string) {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to decode processed image: %v", err)
	}
	return img, format
}

func TestProcessImageResizesToBounds(t *testing.T) {
	processor := NewImageProcessor(ImageSettings{
		MaxWidth:  100,
		MaxHeight: 50,
		Format:    "png",
	})

	out, err := processor.ProcessImageData(encodeTestImage(t, 400, 100))
	if err != nil {
		t.Fatalf("ProcessImageData failed: %v", err)
	}

	img, format := decodeResult(t, out)
	if format != "png" {
		t.Errorf("Expected png output, got %s", format)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 25 {
		t.Errorf("Expected 100x25 (aspect preserved), got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	processor := NewImageProcessor(ImageSettings{
		MaxWidth:  1000,
		MaxHeight: 1000,
		Format:    "png",
	})

	out, err := processor.ProcessImageData(encodeTestImage(t, 40, 60))
	if err != nil {
		t.Fatalf("ProcessImageData failed: %v", err)
	}

	img, _ := decodeResult(t, out)
	bounds := img.Bounds()
	if bounds.Dx() != 40 || bounds.Dy() != 60 {
		t.Errorf("Expected 40x60 unchanged, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessImageGrayscaleJPEG(t *testing.T) {
	processor := NewImageProcessor(ImageSettings{
		MaxWidth:  100,
		MaxHeight: 100,
		Grayscale: true,
		Format:    "jpeg",
		Quality:   80,
	})

	out, err := processor.ProcessImageData(encodeTestImage(t, 50, 50))
	if err != nil {
		t.Fatalf("ProcessImageData failed: %v", err)
	}

	_, format := decodeResult(t, out)
	if format != "jpeg" {
		t.Errorf("Expected jpeg output, got %s", format)
	}
}

func TestProcessImageInvalidData(t *testing.T) {
	processor := NewImageProcessor(ImageSettings{MaxWidth: 10, MaxHeight: 10})

	if _, err := processor.ProcessImageData([]byte("not an image")); err == nil {
		t.Error("Expected error for invalid image data")
	}
}

func TestProcessImageUnsupportedFormat(t *testing.T) {
	processor := NewImageProcessor(ImageSettings{
		MaxWidth:  10,
		MaxHeight: 10,
		Format:    "bmp",
	})

	if _, err := processor.ProcessImageData(encodeTestImage(t, 5, 5)); err == nil {
		t.Error("Expected error for unsupported output format")
	}
}

func TestOutputExt(t *testing.T) {
	if got := NewImageProcessor(ImageSettings{Format: "png"}).OutputExt(); got != "png" {
		t.Errorf("Expected png, got %s", got)
	}
	if got := NewImageProcessor(ImageSettings{Format: "jpeg"}).OutputExt(); got != "jpg" {
		t.Errorf("Expected jpg, got %s", got)
	}
	if got := NewImageProcessor(ImageSettings{}).OutputExt(); got != "jpg" {
		t.Errorf("Expected jpg default, got %s", got)
	}
}

func TestGetDeviceProfile(t *testing.T) {
	device, ok := GetDeviceProfile("kindle-paperwhite")
	if !ok {
		t.Fatal("Expected kindle-paperwhite profile to exist")
	}

	settings := device.OptimizationSettings()
	if settings.MaxWidth != device.Width || settings.MaxHeight != device.Height {
		t.Error("Expected settings to match device dimensions")
	}
	if !settings.Grayscale || settings.Format != "jpeg" {
		t.Error("Expected grayscale JPEG settings for an e-ink device")
	}

	if _, ok := GetDeviceProfile("walkman"); ok {
		t.Error("Expected unknown device to be rejected")
	}
}

func TestDeviceIDsSorted(t *testing.T) {
	ids := DeviceIDs()
	if len(ids) != len(Devices) {
		t.Fatalf("Expected %d ids, got %d", len(Devices), len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("Expected sorted ids, got %v", ids)
		}
	}
}
