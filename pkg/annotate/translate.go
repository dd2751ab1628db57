// Package annotate translates measured element rectangles plus semantic
// annotation requests into positioned drawing commands for an external
// image-annotation renderer. Translation is a pure function: it has no
// state and touches no shared resources.
package annotate

import "fmt"

// Fixed geometry constants used by the translation rules.
const (
	boxPadding       = 4   // rect inflation around the element
	boxStrokeWidth   = 3   // box and circle stroke width
	arrowStrokeWidth = 2   // arrow stroke width
	arrowOffset      = 100 // arrow tail distance from the element edge
	arrowTipGap      = 5   // arrow head distance from the element edge
	arrowLabelGap    = 10  // label distance from the arrow tail
	markerSize       = 24  // numbered marker diameter
	circlePadding    = 8   // extra radius beyond the element half-extent
	highlightOpacity = 0.35
	blurIntensity    = 8
	labelFontSize    = 14
	labelYOffset     = 20 // standalone label height above the element
)

// Translate converts a single annotation request and its element's measured
// rectangle into a primary drawing command, plus an auxiliary label command
// for box, arrow and circle annotations that carry a non-empty label.
//
// Translate is never invoked for elements that were not found; the caller
// records those as not-found outcomes and skips translation. The only
// error is an unrecognized annotation type.
func Translate(req Request, rect Rect) (Command, *LabelCommand, error) {
	switch req.Type {
	case TypeBox:
		return translateBox(req, rect)
	case TypeNumber:
		return &MarkerCommand{
			Type:   "marker",
			X:      rect.CenterX(),
			Y:      rect.CenterY(),
			Number: req.Number,
			Color:  colorPrimary,
			Size:   markerSize,
		}, nil, nil
	case TypeArrow:
		return translateArrow(req, rect)
	case TypeCircle:
		return translateCircle(req, rect)
	case TypeHighlight:
		// Color and opacity are fixed regardless of any hints.
		return &HighlightCommand{
			Type:    "highlight",
			X:       rect.X,
			Y:       rect.Y,
			Width:   rect.Width,
			Height:  rect.Height,
			Color:   colorYellow,
			Opacity: highlightOpacity,
		}, nil, nil
	case TypeCallout:
		return &CalloutCommand{
			Type:       "callout",
			X:          rect.CenterX(),
			Y:          rect.CenterY(),
			Text:       req.Label,
			Pointer:    calloutPointer(req.Position),
			Color:      colorPrimary,
			Background: colorWhiteBkg,
			Shadow:     true,
		}, nil, nil
	case TypeLabel:
		return &LabelCommand{
			Type:       "label",
			X:          rect.CenterX(),
			Y:          rect.Y - labelYOffset,
			Text:       req.Label,
			Color:      colorDark,
			FontSize:   labelFontSize,
			Background: colorWhiteBkg,
			Shadow:     true,
		}, nil, nil
	case TypeBlur:
		return &BlurCommand{
			Type:      "blur",
			X:         rect.X,
			Y:         rect.Y,
			Width:     rect.Width,
			Height:    rect.Height,
			Intensity: blurIntensity,
		}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown annotation type %q", req.Type)
	}
}

func translateBox(req Request, rect Rect) (Command, *LabelCommand, error) {
	cmd := &RectCommand{
		Type:        "rect",
		X:           rect.X - boxPadding,
		Y:           rect.Y - boxPadding,
		Width:       rect.Width + boxPadding*2,
		Height:      rect.Height + boxPadding*2,
		Color:       colorRed,
		StrokeWidth: boxStrokeWidth,
	}

	if req.Label == "" {
		return cmd, nil, nil
	}

	var x, y int
	switch req.Position {
	case PositionTop:
		x, y = rect.CenterX(), rect.Y-25
	case PositionBottom:
		x, y = rect.CenterX(), rect.Y+rect.Height+20
	case PositionLeft:
		x, y = rect.X-10, rect.CenterY()
	default: // right or auto
		x, y = rect.X+rect.Width+15, rect.CenterY()
	}

	return cmd, auxLabel(x, y, req.Label), nil
}

func translateArrow(req Request, rect Rect) (Command, *LabelCommand, error) {
	var from, to [2]int

	// Arrow runs along one axis from 100px outside the indicated edge to
	// 5px outside it, through the element's center on the other axis.
	switch req.Position {
	case PositionLeft:
		from = [2]int{rect.X - arrowOffset, rect.CenterY()}
		to = [2]int{rect.X - arrowTipGap, rect.CenterY()}
	case PositionTop:
		from = [2]int{rect.CenterX(), rect.Y - arrowOffset}
		to = [2]int{rect.CenterX(), rect.Y - arrowTipGap}
	case PositionBottom:
		from = [2]int{rect.CenterX(), rect.Y + rect.Height + arrowOffset}
		to = [2]int{rect.CenterX(), rect.Y + rect.Height + arrowTipGap}
	default: // right or auto
		from = [2]int{rect.X + rect.Width + arrowOffset, rect.CenterY()}
		to = [2]int{rect.X + rect.Width + arrowTipGap, rect.CenterY()}
	}

	cmd := &ArrowCommand{
		Type:        "arrow",
		From:        from,
		To:          to,
		Color:       colorPrimary,
		StrokeWidth: arrowStrokeWidth,
	}

	if req.Label == "" {
		return cmd, nil, nil
	}

	// The label sits 10px beyond the arrow tail, on the side away from
	// the element, so it never overlaps the arrow line.
	x, y := from[0], from[1]
	switch req.Position {
	case PositionLeft:
		x -= arrowLabelGap
	case PositionTop:
		y -= arrowLabelGap
	case PositionBottom:
		y += arrowLabelGap
	default: // right or auto
		x += arrowLabelGap
	}

	return cmd, auxLabel(x, y, req.Label), nil
}

func translateCircle(req Request, rect Rect) (Command, *LabelCommand, error) {
	radius := max(rect.Width, rect.Height)/2 + circlePadding
	cmd := &CircleCommand{
		Type:        "circle",
		X:           rect.CenterX(),
		Y:           rect.CenterY(),
		Radius:      radius,
		Color:       colorRed,
		StrokeWidth: boxStrokeWidth,
	}

	if req.Label == "" {
		return cmd, nil, nil
	}

	return cmd, auxLabel(rect.CenterX()+radius+15, rect.CenterY(), req.Label), nil
}

// auxLabel builds the auxiliary label command attached to box, arrow and
// circle annotations. Style is fixed.
func auxLabel(x, y int, text string) *LabelCommand {
	return &LabelCommand{
		Type:       "label",
		X:          x,
		Y:          y,
		Text:       text,
		Color:      colorDark,
		FontSize:   labelFontSize,
		Background: colorWhiteBkg,
		Shadow:     true,
	}
}

// calloutPointer returns the callout pointer direction: the opposite of the
// requested position, defaulting to left when the position is unset or auto.
func calloutPointer(p Position) string {
	switch p {
	case PositionTop:
		return "bottom"
	case PositionBottom:
		return "top"
	case PositionLeft:
		return "right"
	case PositionRight:
		return "left"
	default:
		return "left"
	}
}

// Measurer resolves a selector to an element's bounding box on the current
// page. A nil Rect means the element was not found or not visible.
type Measurer interface {
	ElementBounds(selector string) (*Rect, error)
}

// Resolve measures and translates an ordered batch of annotation requests
// against the current page. Elements that cannot be found or measured are
// recorded as not-found outcomes and skipped; the remaining requests are
// still processed. Marker numbers default to each request's 1-based
// position within the batch.
func Resolve(m Measurer, reqs []Request) ([]Record, []Command, error) {
	var records []Record
	var commands []Command

	for i, req := range reqs {
		number := req.Number
		if number <= 0 {
			number = i + 1
		}

		record := Record{
			Index:    i + 1,
			Selector: req.Selector,
			Label:    req.Label,
			Type:     req.Type,
			Position: req.Position,
			Number:   number,
		}

		bounds, err := m.ElementBounds(req.Selector)
		if err != nil || bounds == nil {
			records = append(records, record)
			continue
		}

		record.Bounds = bounds
		record.Found = true
		records = append(records, record)

		req.Number = number
		primary, label, err := Translate(req, *bounds)
		if err != nil {
			return records, commands, err
		}

		commands = append(commands, primary)
		if label != nil {
			commands = append(commands, label)
		}
	}

	return records, commands, nil
}
