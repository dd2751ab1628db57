package annotate

// Command is a renderer-facing drawing primitive with concrete geometry
// and style. The set of kinds is closed: commands are only produced by
// Translate, which rejects unrecognized annotation types.
type Command interface {
	// Kind returns the renderer primitive kind ("marker", "rect", ...)
	Kind() string
}

// Default colors per primitive kind. The highlight color is fixed and
// never overridden.
const (
	colorPrimary  = "primary"
	colorRed      = "red"
	colorYellow   = "yellow"
	colorDark     = "darkGray"
	colorWhiteBkg = "white"
)

// MarkerCommand is a numbered circle centered on the element.
type MarkerCommand struct {
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Number int    `json:"number"`
	Color  string `json:"color"`
	Size   int    `json:"size"`
}

func (c *MarkerCommand) Kind() string { return c.Type }

// RectCommand is a stroked rectangle around the element.
type RectCommand struct {
	Type        string `json:"type"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Color       string `json:"color"`
	StrokeWidth int    `json:"strokeWidth"`
}

func (c *RectCommand) Kind() string { return c.Type }

// ArrowCommand is a line with an arrowhead pointing at the element.
// From and To are [x, y] coordinate pairs.
type ArrowCommand struct {
	Type        string `json:"type"`
	From        [2]int `json:"from"`
	To          [2]int `json:"to"`
	Color       string `json:"color"`
	StrokeWidth int    `json:"strokeWidth"`
}

func (c *ArrowCommand) Kind() string { return c.Type }

// CircleCommand is a stroked circle enclosing the element.
type CircleCommand struct {
	Type        string `json:"type"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Radius      int    `json:"radius"`
	Color       string `json:"color"`
	StrokeWidth int    `json:"strokeWidth"`
}

func (c *CircleCommand) Kind() string { return c.Type }

// HighlightCommand is a semi-transparent overlay on the element area.
type HighlightCommand struct {
	Type    string  `json:"type"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

func (c *HighlightCommand) Kind() string { return c.Type }

// CalloutCommand is a speech bubble anchored at the element center with a
// pointer toward the element.
type CalloutCommand struct {
	Type       string `json:"type"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Text       string `json:"text"`
	Pointer    string `json:"pointer"`
	Color      string `json:"color"`
	Background string `json:"background"`
	Shadow     bool   `json:"shadow"`
}

func (c *CalloutCommand) Kind() string { return c.Type }

// LabelCommand is a text label with a background, used both as a primary
// command and as the auxiliary label attached to box, arrow and circle
// annotations.
type LabelCommand struct {
	Type       string `json:"type"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Text       string `json:"text"`
	Color      string `json:"color"`
	FontSize   int    `json:"fontSize"`
	Background string `json:"background"`
	Shadow     bool   `json:"shadow"`
}

func (c *LabelCommand) Kind() string { return c.Type }

// BlurCommand obscures the element area, e.g. to hide sensitive data.
type BlurCommand struct {
	Type      string `json:"type"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Intensity int    `json:"intensity"`
}

func (c *BlurCommand) Kind() string { return c.Type }
