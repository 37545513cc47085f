package parameter

// Canvas Bounds
const (
	// MaxScreenHeight is the number of rows of every layer grid and of the physical outline
	MaxScreenHeight = 24

	// MaxScreenWidth is the number of columns of every layer grid; also bounds row payload text
	MaxScreenWidth = 80

	// NumLayers is the number of independent canvases owned by the render engine
	NumLayers = 4

	// SectionsPerLayer is the section slot count of a single layer
	SectionsPerLayer = 16

	// SectionKeyLen is the maximum length in bytes of a section key
	SectionKeyLen = 16
)

// DirtyNone marks a row no section spans
const DirtyNone = -1
