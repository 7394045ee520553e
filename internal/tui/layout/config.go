package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Tree  TreeConfig
	Input InputConfig
	Text  TextConfig
}

// TreeConfig holds bookmark tree dimension configuration.
type TreeConfig struct {
	// HeightReduction is subtracted from terminal height for tree rows.
	// Accounts for: app padding (1) + title (2) + search box (2) + engines (2) + help bar (3) = 10
	HeightReduction int

	// MinHeight is the minimum number of tree rows shown.
	MinHeight int

	// ContentPadding is subtracted from terminal width for row rendering.
	ContentPadding int

	// MinRowWidth is the narrowest a row is ever rendered.
	MinRowWidth int

	// IndentWidth is the number of spaces per nesting level.
	IndentWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	SearchWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Tree: TreeConfig{
			HeightReduction: 10,
			MinHeight:       3,
			ContentPadding:  4,
			MinRowWidth:     20,
			IndentWidth:     2,
		},
		Input: InputConfig{
			SearchCharLimit: 200,
			SearchWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
