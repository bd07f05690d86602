package integrations

import "sort"

// Device describes an e-reader screen the image optimizer can target.
type Device struct {
	Name      string
	Width     int // Screen width in pixels
	Height    int // Screen height in pixels
	Grayscale bool
}

// Predefined device profiles based on actual hardware
var Devices = map[string]Device{
	"kindle-basic": {
		Name:      "Kindle (10th/11th gen)",
		Width:     1072,
		Height:    1448,
		Grayscale: true,
	},
	"kindle-paperwhite": {
		Name:      "Kindle Paperwhite",
		Width:     1236,
		Height:    1648,
		Grayscale: true,
	},
	"kindle-oasis": {
		Name:      "Kindle Oasis",
		Width:     1264,
		Height:    1680,
		Grayscale: true,
	},
	"kobo-clara": {
		Name:      "Kobo Clara",
		Width:     1072,
		Height:    1448,
		Grayscale: true,
	},
	"kobo-libra": {
		Name:      "Kobo Libra 2",
		Width:     1264,
		Height:    1680,
		Grayscale: true,
	},
	"tablet": {
		Name:      "Generic color tablet",
		Width:     1600,
		Height:    2560,
		Grayscale: false,
	},
}

// GetDeviceProfile looks up a device by id.
func GetDeviceProfile(id string) (Device, bool) {
	device, ok := Devices[id]
	return device, ok
}

// DeviceIDs returns the known profile ids, sorted for help output.
func DeviceIDs() []string {
	ids := make([]string, 0, len(Devices))
	for id := range Devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// OptimizationSettings derives image settings for the device.
func (d Device) OptimizationSettings() ImageSettings {
	format := "png"
	if d.Grayscale {
		format = "jpeg"
	}
	return ImageSettings{
		MaxWidth:  d.Width,
		MaxHeight: d.Height,
		Grayscale: d.Grayscale,
		Format:    format,
		Quality:   85,
	}
}
