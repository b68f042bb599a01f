package utils

// ColourScheme holds the Catppuccin Mocha colours the UI uses.
type ColourScheme struct {
	Red      string
	Green    string
	Yellow   string
	Blue     string
	Lavender string
	Text     string
	Overlay1 string
	Surface0 string
	Surface1 string
	Base     string
}

// Colours is the palette shared by every view.
var Colours = ColourScheme{
	Red:      "#f38ba8",
	Green:    "#a6e3a1",
	Yellow:   "#f9e2af",
	Blue:     "#89b4fa",
	Lavender: "#b4befe",
	Text:     "#cdd6f4",
	Overlay1: "#7f849c",
	Surface0: "#313244",
	Surface1: "#45475a",
	Base:     "#1e1e2e",
}
