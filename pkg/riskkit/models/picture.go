package models

// Picture describes an image anchored in a worksheet drawing.
type Picture struct {
	// Name is the drawing object name.
	Name string `json:"name"`
	// Description is the alternative text.
	Description string `json:"description,omitempty"`
	// Anchor is the top-left cell the image is anchored to, e.g. G1.
	Anchor string `json:"anchor"`
	// Target is the media part inside the package, e.g. xl/media/image1.png.
	Target string `json:"target,omitempty"`
	// OffsetX and OffsetY are offsets from the anchor cell in pixels.
	OffsetX int `json:"offset_x,omitempty"`
	OffsetY int `json:"offset_y,omitempty"`
	// W and H are the picture size in pixels, verbose mode only.
	W *int `json:"w,omitempty"`
	H *int `json:"h,omitempty"`
}
