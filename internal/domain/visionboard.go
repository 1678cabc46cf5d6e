package domain

// VisionBoard is a per-(user, year, month) canvas holding freely
// positioned images. It owns its images as an embedded, ordered
// collection; image records never exist outside a board.
type VisionBoard struct {
	Record
	Owned
	Year        int           `json:"year"`
	Month       int           `json:"month"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Images      []VisionImage `json:"images"`
}

// ImageByID returns the index of the embedded image with the given ID,
// or -1 if the board doesn't hold it.
func (b *VisionBoard) ImageByID(imageID string) int {
	for i := range b.Images {
		if b.Images[i].ID == imageID {
			return i
		}
	}
	return -1
}

// NextZIndex returns a stacking order above every existing image.
// Using max+1 rather than len(images) keeps new images on top even
// after deletions have left gaps.
func (b *VisionBoard) NextZIndex() int {
	next := 0
	for i := range b.Images {
		if b.Images[i].ZIndex >= next {
			next = b.Images[i].ZIndex + 1
		}
	}
	return next
}

// Position is a 2D canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a rendered width/height in canvas units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Default placement for newly added images.
var (
	DefaultImagePosition = Position{X: 100, Y: 100}
	DefaultImageSize     = Size{Width: 200, Height: 200}
)

// VisionImage is one image placed on a board. Rotation is unbounded
// degrees (no wraparound) and ZIndex is a free integer; overlaps and
// out-of-canvas coordinates are the client's problem.
type VisionImage struct {
	Record
	VisionBoardID string   `json:"visionBoardId"`
	FileName      string   `json:"fileName"`
	FilePath      string   `json:"filePath"`
	Position      Position `json:"position"`
	Size          Size     `json:"size"`
	Rotation      float64  `json:"rotation"`
	ZIndex        int      `json:"zIndex"`
	// Optional display hints computed at upload time when the bytes
	// decode as an image. Omitted when decoding fails.
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	BlurHash string `json:"blurHash,omitempty"`
}
