package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_BoxInflatesRect(t *testing.T) {
	rect := Rect{X: 10, Y: 20, Width: 100, Height: 40}

	cmd, label, err := Translate(Request{Type: TypeBox}, rect)
	require.NoError(t, err)
	assert.Nil(t, label)

	box, ok := cmd.(*RectCommand)
	require.True(t, ok)
	assert.Equal(t, "rect", box.Kind())
	assert.Equal(t, 6, box.X)
	assert.Equal(t, 16, box.Y)
	assert.Equal(t, 108, box.Width)
	assert.Equal(t, 48, box.Height)
	assert.Equal(t, "red", box.Color)
	assert.Equal(t, 3, box.StrokeWidth)
}

func TestTranslate_BoxWithTopLabel(t *testing.T) {
	// Worked example: rect {100,200,50,20}, label "Save", position top.
	rect := Rect{X: 100, Y: 200, Width: 50, Height: 20}
	req := Request{Type: TypeBox, Label: "Save", Position: PositionTop}

	cmd, label, err := Translate(req, rect)
	require.NoError(t, err)

	box := cmd.(*RectCommand)
	assert.Equal(t, 96, box.X)
	assert.Equal(t, 196, box.Y)
	assert.Equal(t, 58, box.Width)
	assert.Equal(t, 28, box.Height)

	require.NotNil(t, label)
	assert.Equal(t, 125, label.X)
	assert.Equal(t, 175, label.Y)
	assert.Equal(t, "Save", label.Text)
	assert.Equal(t, "darkGray", label.Color)
	assert.Equal(t, 14, label.FontSize)
	assert.Equal(t, "white", label.Background)
	assert.True(t, label.Shadow)
}

func TestTranslate_BoxLabelPositions(t *testing.T) {
	rect := Rect{X: 100, Y: 200, Width: 50, Height: 20}

	tests := []struct {
		name     string
		position Position
		x, y     int
	}{
		{"bottom", PositionBottom, 125, 240},
		{"left", PositionLeft, 90, 210},
		{"right", PositionRight, 165, 210},
		{"auto", PositionAuto, 165, 210},
		{"unset", "", 165, 210},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, label, err := Translate(Request{Type: TypeBox, Label: "l", Position: tt.position}, rect)
			require.NoError(t, err)
			require.NotNil(t, label)
			assert.Equal(t, tt.x, label.X)
			assert.Equal(t, tt.y, label.Y)
		})
	}
}

func TestTranslate_Marker(t *testing.T) {
	rect := Rect{X: 100, Y: 200, Width: 50, Height: 20}

	cmd, label, err := Translate(Request{Type: TypeNumber, Number: 7}, rect)
	require.NoError(t, err)
	assert.Nil(t, label)

	marker := cmd.(*MarkerCommand)
	assert.Equal(t, "marker", marker.Kind())
	assert.Equal(t, 125, marker.X)
	assert.Equal(t, 210, marker.Y)
	assert.Equal(t, 7, marker.Number)
	assert.Equal(t, "primary", marker.Color)
	assert.Equal(t, 24, marker.Size)
}

func TestTranslate_ArrowGeometry(t *testing.T) {
	rect := Rect{X: 200, Y: 300, Width: 80, Height: 40}

	tests := []struct {
		name     string
		position Position
		from, to [2]int
	}{
		{"left", PositionLeft, [2]int{100, 320}, [2]int{195, 320}},
		{"right", PositionRight, [2]int{380, 320}, [2]int{285, 320}},
		{"top", PositionTop, [2]int{240, 200}, [2]int{240, 295}},
		{"bottom", PositionBottom, [2]int{240, 440}, [2]int{240, 345}},
		{"auto defaults right", PositionAuto, [2]int{380, 320}, [2]int{285, 320}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := Translate(Request{Type: TypeArrow, Position: tt.position}, rect)
			require.NoError(t, err)

			arrow := cmd.(*ArrowCommand)
			assert.Equal(t, tt.from, arrow.From)
			assert.Equal(t, tt.to, arrow.To)
			assert.Equal(t, "primary", arrow.Color)
			assert.Equal(t, 2, arrow.StrokeWidth)
		})
	}
}

func TestTranslate_ArrowLabelSitsBeyondTail(t *testing.T) {
	rect := Rect{X: 200, Y: 300, Width: 80, Height: 40}

	tests := []struct {
		name     string
		position Position
		x, y     int
	}{
		{"left", PositionLeft, 90, 320},
		{"right", PositionRight, 390, 320},
		{"top", PositionTop, 240, 190},
		{"bottom", PositionBottom, 240, 450},
		{"auto", PositionAuto, 390, 320},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, label, err := Translate(Request{Type: TypeArrow, Label: "here", Position: tt.position}, rect)
			require.NoError(t, err)
			require.NotNil(t, label)
			assert.Equal(t, tt.x, label.X)
			assert.Equal(t, tt.y, label.Y)
		})
	}
}

func TestTranslate_CircleRadius(t *testing.T) {
	tests := []struct {
		name   string
		rect   Rect
		radius int
	}{
		{"wide", Rect{X: 0, Y: 0, Width: 100, Height: 40}, 58},
		{"tall", Rect{X: 0, Y: 0, Width: 30, Height: 70}, 43},
		{"odd extent floors", Rect{X: 0, Y: 0, Width: 51, Height: 20}, 33},
		{"zero size", Rect{X: 5, Y: 5, Width: 0, Height: 0}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := Translate(Request{Type: TypeCircle}, tt.rect)
			require.NoError(t, err)

			circle := cmd.(*CircleCommand)
			assert.Equal(t, tt.radius, circle.Radius)
			assert.Equal(t, tt.rect.CenterX(), circle.X)
			assert.Equal(t, tt.rect.CenterY(), circle.Y)
			assert.Equal(t, "red", circle.Color)
			assert.Equal(t, 3, circle.StrokeWidth)
		})
	}
}

func TestTranslate_CircleLabelClearsRadius(t *testing.T) {
	rect := Rect{X: 100, Y: 200, Width: 50, Height: 20}

	_, label, err := Translate(Request{Type: TypeCircle, Label: "l"}, rect)
	require.NoError(t, err)
	require.NotNil(t, label)

	// radius = 50/2 + 8 = 33; label at centerX + radius + 15
	assert.Equal(t, 173, label.X)
	assert.Equal(t, 210, label.Y)
}

func TestTranslate_HighlightIsAlwaysYellow(t *testing.T) {
	rect := Rect{X: 10, Y: 20, Width: 300, Height: 50}

	cmd, label, err := Translate(Request{Type: TypeHighlight, Label: "ignored for style"}, rect)
	require.NoError(t, err)
	assert.Nil(t, label)

	highlight := cmd.(*HighlightCommand)
	assert.Equal(t, "yellow", highlight.Color)
	assert.Equal(t, 0.35, highlight.Opacity)
	assert.Equal(t, 10, highlight.X)
	assert.Equal(t, 20, highlight.Y)
	assert.Equal(t, 300, highlight.Width)
	assert.Equal(t, 50, highlight.Height)
}

func TestTranslate_CalloutPointerOppositePosition(t *testing.T) {
	rect := Rect{X: 100, Y: 200, Width: 50, Height: 20}

	tests := []struct {
		position Position
		pointer  string
	}{
		{PositionTop, "bottom"},
		{PositionBottom, "top"},
		{PositionLeft, "right"},
		{PositionRight, "left"},
		{PositionAuto, "left"},
		{"", "left"},
	}

	for _, tt := range tests {
		cmd, _, err := Translate(Request{Type: TypeCallout, Label: "hi", Position: tt.position}, rect)
		require.NoError(t, err)

		callout := cmd.(*CalloutCommand)
		assert.Equal(t, tt.pointer, callout.Pointer, "position %q", tt.position)
		assert.Equal(t, "hi", callout.Text)
		assert.Equal(t, "primary", callout.Color)
		assert.Equal(t, "white", callout.Background)
		assert.True(t, callout.Shadow)
		assert.Equal(t, 125, callout.X)
		assert.Equal(t, 210, callout.Y)
	}
}

func TestTranslate_Label(t *testing.T) {
	rect := Rect{X: 100, Y: 200, Width: 50, Height: 20}

	cmd, aux, err := Translate(Request{Type: TypeLabel, Label: "Settings"}, rect)
	require.NoError(t, err)
	assert.Nil(t, aux)

	label := cmd.(*LabelCommand)
	assert.Equal(t, 125, label.X)
	assert.Equal(t, 180, label.Y)
	assert.Equal(t, "Settings", label.Text)
	assert.Equal(t, "darkGray", label.Color)
}

func TestTranslate_Blur(t *testing.T) {
	rect := Rect{X: 40, Y: 60, Width: 200, Height: 30}

	cmd, label, err := Translate(Request{Type: TypeBlur, Label: "no labels for blur"}, rect)
	require.NoError(t, err)
	assert.Nil(t, label)

	blur := cmd.(*BlurCommand)
	assert.Equal(t, 40, blur.X)
	assert.Equal(t, 60, blur.Y)
	assert.Equal(t, 200, blur.Width)
	assert.Equal(t, 30, blur.Height)
	assert.Equal(t, 8, blur.Intensity)
}

func TestTranslate_UnknownTypeRejected(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	cmd, label, err := Translate(Request{Type: "sparkle"}, rect)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown annotation type")
	assert.Contains(t, err.Error(), "sparkle")
	assert.Nil(t, cmd)
	assert.Nil(t, label)
}

func TestTranslate_Idempotent(t *testing.T) {
	rect := Rect{X: 100, Y: 200, Width: 50, Height: 20}
	req := Request{Type: TypeBox, Label: "Save", Position: PositionTop, Number: 2}

	first, firstLabel, err := Translate(req, rect)
	require.NoError(t, err)
	second, secondLabel, err := Translate(req, rect)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstLabel, secondLabel)
}

// stubMeasurer resolves selectors from a fixed map; missing selectors
// report not found.
type stubMeasurer struct {
	bounds map[string]Rect
}

func (m *stubMeasurer) ElementBounds(selector string) (*Rect, error) {
	if r, ok := m.bounds[selector]; ok {
		return &r, nil
	}
	return nil, nil
}

func TestResolve_DefaultNumbering(t *testing.T) {
	m := &stubMeasurer{bounds: map[string]Rect{
		"#a": {X: 0, Y: 0, Width: 10, Height: 10},
		"#b": {X: 20, Y: 0, Width: 10, Height: 10},
		"#c": {X: 40, Y: 0, Width: 10, Height: 10},
	}}
	reqs := []Request{
		{Selector: "#a", Type: TypeNumber},
		{Selector: "#b", Type: TypeNumber},
		{Selector: "#c", Type: TypeNumber},
	}

	records, commands, err := Resolve(m, reqs)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Len(t, commands, 3)

	for i, cmd := range commands {
		marker := cmd.(*MarkerCommand)
		assert.Equal(t, i+1, marker.Number)
	}
}

func TestResolve_ExplicitNumberWins(t *testing.T) {
	m := &stubMeasurer{bounds: map[string]Rect{
		"#a": {X: 0, Y: 0, Width: 10, Height: 10},
	}}

	_, commands, err := Resolve(m, []Request{{Selector: "#a", Type: TypeNumber, Number: 9}})
	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, 9, commands[0].(*MarkerCommand).Number)
}

func TestResolve_NotFoundIsRecordedAndSkipped(t *testing.T) {
	m := &stubMeasurer{bounds: map[string]Rect{
		"#found": {X: 0, Y: 0, Width: 10, Height: 10},
	}}
	reqs := []Request{
		{Selector: "#missing", Type: TypeBox, Label: "gone"},
		{Selector: "#found", Type: TypeBox},
	}

	records, commands, err := Resolve(m, reqs)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.False(t, records[0].Found)
	assert.Nil(t, records[0].Bounds)
	assert.Equal(t, 1, records[0].Index)

	assert.True(t, records[1].Found)
	require.NotNil(t, records[1].Bounds)

	// Only the found element yields a command.
	require.Len(t, commands, 1)
	assert.Equal(t, "rect", commands[0].Kind())
}

func TestResolve_LabelCommandFollowsPrimary(t *testing.T) {
	m := &stubMeasurer{bounds: map[string]Rect{
		"#a": {X: 100, Y: 200, Width: 50, Height: 20},
	}}

	_, commands, err := Resolve(m, []Request{{Selector: "#a", Type: TypeBox, Label: "Save", Position: PositionTop}})
	require.NoError(t, err)
	require.Len(t, commands, 2)
	assert.Equal(t, "rect", commands[0].Kind())
	assert.Equal(t, "label", commands[1].Kind())
}

func TestResolve_UnknownTypeSurfacesError(t *testing.T) {
	m := &stubMeasurer{bounds: map[string]Rect{
		"#a": {X: 0, Y: 0, Width: 10, Height: 10},
	}}

	_, _, err := Resolve(m, []Request{{Selector: "#a", Type: "sparkle"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sparkle")
}
