package annotate

// Rect is an axis-aligned pixel rectangle measured from a page element,
// origin at the top-left of the viewport.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() int {
	return r.X + r.Width/2
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() int {
	return r.Y + r.Height/2
}

// Type is the caller-facing annotation intent, independent of the
// renderer's primitive vocabulary.
type Type string

const (
	// TypeBox draws a rectangle around the element
	TypeBox Type = "box"

	// TypeNumber draws a numbered circle marker at the element center
	TypeNumber Type = "number"

	// TypeArrow draws an arrow pointing at the element
	TypeArrow Type = "arrow"

	// TypeCircle draws a circle around the element
	TypeCircle Type = "circle"

	// TypeHighlight draws a semi-transparent overlay on the element
	TypeHighlight Type = "highlight"

	// TypeCallout draws a speech bubble anchored at the element center
	TypeCallout Type = "callout"

	// TypeLabel draws a text label above the element
	TypeLabel Type = "label"

	// TypeBlur obscures the element area
	TypeBlur Type = "blur"
)

// Position is a placement hint for arrows, labels and callout pointers.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
	PositionAuto   Position = "auto"
)

// Request describes one annotation to place on a captured screenshot.
// The selector is an opaque locator resolved by the browser collaborator;
// the translator never interprets it.
type Request struct {
	// Selector locates the element to annotate
	Selector string `yaml:"selector" json:"selector"`

	// Type is the semantic annotation type
	Type Type `yaml:"type" json:"type"`

	// Label is optional text shown with the annotation
	Label string `yaml:"label" json:"label"`

	// Position hints where the label or arrow should sit relative to
	// the element. Empty is treated as auto.
	Position Position `yaml:"position" json:"position"`

	// Number is the marker number. Zero means "use the request's
	// 1-based position within its batch".
	Number int `yaml:"number" json:"number"`
}

// Record captures the outcome of resolving one annotation request against
// a live page, including requests whose element could not be found.
type Record struct {
	Index    int      `json:"index"`
	Selector string   `json:"selector"`
	Label    string   `json:"label"`
	Type     Type     `json:"type"`
	Position Position `json:"position"`
	Number   int      `json:"number"`
	Bounds   *Rect    `json:"bounds"`
	Found    bool     `json:"found"`
}
