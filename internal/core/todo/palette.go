package todo

// tagPalette holds the display colours handed out to new tags.
var tagPalette = []string{
	"#1E40AF", // blue
	"#166534", // green
	"#6B21A8", // purple
	"#9D174D", // pink
	"#9A3412", // orange
	"#155E75", // cyan
	"#3730A3", // indigo
	"#115E59", // teal
	"#9F1239", // rose
	"#92400E", // amber
	"#3F6212", // lime
	"#065F46", // emerald
	"#075985", // sky
	"#5B21B6", // violet
	"#86198F", // fuchsia
	"#854D0E", // yellow
}

// PaletteSize is the number of distinct tag colours.
var PaletteSize = len(tagPalette)

// TagColor returns the palette colour for the tag created at position index.
// The colour is stored on the tag when it is created and never recomputed.
func TagColor(index int) string {
	if index < 0 {
		index = -index
	}
	return tagPalette[index%len(tagPalette)]
}
