package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	lists    [][]Measurement
	selected []string
}

func newTestEditor(scale float64) (*Editor, *recorder) {
	rec := &recorder{}
	e := NewEditor(scale)
	e.SetImage(true)
	e.SetTool(ToolMeasure)
	e.OnChange = func(list []Measurement) { rec.lists = append(rec.lists, list) }
	e.OnSelect = func(id string) { rec.selected = append(rec.selected, id) }
	return e, rec
}

func draw(e *Editor, x1, y1, x2, y2 float64) {
	e.PointerDown(x1, y1)
	e.PointerMove((x1+x2)/2, (y1+y2)/2)
	e.PointerUp(x2, y2)
}

func TestDrawCommitsNormalizedMeasurement(t *testing.T) {
	e, rec := newTestEditor(100)

	draw(e, 10, 10, 110, 160)

	require.Len(t, rec.lists, 1)
	list := rec.lists[0]
	require.Len(t, list, 1)
	m := list[0]
	assert.Equal(t, 10.0, m.X)
	assert.Equal(t, 10.0, m.Y)
	assert.Equal(t, 100.0, m.Width)
	assert.Equal(t, 150.0, m.Height)
	assert.InDelta(t, 1.5, m.AreaM2, 1e-9)
	assert.Equal(t, "Area 1", m.Name)
	assert.NotEmpty(t, m.ID)

	id, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, m.ID, id)
	assert.Equal(t, StateSelected, e.State())
	assert.Equal(t, []string{m.ID}, rec.selected)
}

func TestDrawNegativeDirection(t *testing.T) {
	e, rec := newTestEditor(100)

	draw(e, 200, 200, 120, 140)

	require.Len(t, rec.lists, 1)
	m := rec.lists[0][0]
	assert.Equal(t, Rect{X: 120, Y: 140, Width: 80, Height: 60}, m.Rect())
}

func TestDrawBelowThresholdIsDiscarded(t *testing.T) {
	e, rec := newTestEditor(100)
	draw(e, 10, 10, 110, 160)

	draw(e, 0, 0, 5, 5)
	draw(e, 300, 300, 400, 305)

	assert.Len(t, rec.lists, 1)
	assert.Equal(t, 1, e.Len())
}

func TestDraftIsNotCommittedDuringGesture(t *testing.T) {
	e, rec := newTestEditor(100)

	e.PointerDown(50, 50)
	e.PointerMove(20, 10)

	r, ok := e.Draft()
	require.True(t, ok)
	assert.Equal(t, Rect{X: 20, Y: 10, Width: 30, Height: 40}, r)
	assert.Equal(t, StateDrawing, e.State())
	assert.Empty(t, rec.lists)
	assert.Equal(t, 0, e.Len())

	e.Cancel()
	_, ok = e.Draft()
	assert.False(t, ok)
	assert.Equal(t, StateIdle, e.State())
}

func TestNoDrawingWithoutImage(t *testing.T) {
	e, rec := newTestEditor(100)
	e.SetImage(false)

	draw(e, 10, 10, 110, 160)

	assert.Empty(t, rec.lists)
	assert.Equal(t, StateIdle, e.State())
}

func TestNoGesturesWithoutImage(t *testing.T) {
	e, rec := newTestEditor(100)
	draw(e, 10, 10, 110, 160)
	e.Load(e.Measurements(), []Suggestion{{ID: "s1", Label: "Hall", X: 300, Y: 300, Width: 50, Height: 50}})
	rec.lists = nil
	e.SetImage(false)
	e.SetTool(ToolSelect)

	e.PointerDown(50, 50)
	e.PointerMove(80, 80)
	e.PointerUp(80, 80)

	assert.Empty(t, rec.lists)
	assert.Equal(t, StateIdle, e.State())
	_, selected := e.Selected()
	assert.False(t, selected)

	_, found := e.SuggestionAt(310, 310)
	assert.False(t, found)
	_, promoted := e.Promote("s1")
	assert.False(t, promoted)
	assert.Len(t, e.Suggestions(), 1)
}

func TestMeasureToolDoesNotDrawOverExistingShape(t *testing.T) {
	e, _ := newTestEditor(100)
	draw(e, 10, 10, 110, 110)

	draw(e, 50, 50, 200, 200)

	assert.Equal(t, 1, e.Len())
}

func TestSelectToolDoesNotDraw(t *testing.T) {
	e, rec := newTestEditor(100)
	e.SetTool(ToolSelect)

	draw(e, 10, 10, 110, 160)

	assert.Empty(t, rec.lists)
}

func TestSelectAndClearByClick(t *testing.T) {
	e, rec := newTestEditor(100)
	draw(e, 10, 10, 110, 110)
	draw(e, 200, 200, 300, 300)
	first := rec.lists[1][0].ID
	e.SetTool(ToolSelect)

	e.PointerDown(50, 50)
	e.PointerUp(50, 50)
	id, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, first, id)
	assert.Len(t, rec.lists, 2, "a click without movement commits nothing")

	e.PointerDown(500, 500)
	e.PointerUp(500, 500)
	_, ok = e.Selected()
	assert.False(t, ok)
	assert.Equal(t, StateIdle, e.State())
}

func TestMoveGestureTranslatesOnly(t *testing.T) {
	e, rec := newTestEditor(100)
	draw(e, 10, 10, 110, 160)
	e.SetTool(ToolSelect)
	before := rec.lists[0][0]

	e.PointerDown(50, 50)
	e.PointerMove(70, 90)
	active, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, 30.0, active.X)
	assert.Len(t, rec.lists, 1)

	e.PointerUp(80, 100)

	require.Len(t, rec.lists, 2)
	after := rec.lists[1][0]
	assert.Equal(t, 40.0, after.X)
	assert.Equal(t, 60.0, after.Y)
	assert.Equal(t, before.Width, after.Width)
	assert.Equal(t, before.Height, after.Height)
	assert.Equal(t, before.AreaM2, after.AreaM2)
	assert.Equal(t, StateSelected, e.State())
}

func TestMoveClampsToOrigin(t *testing.T) {
	e, _ := newTestEditor(100)
	draw(e, 10, 10, 110, 110)
	id, _ := e.Selected()

	require.True(t, e.Move(id, -40, -5))

	m, _ := e.Get(id)
	assert.Equal(t, 0.0, m.X)
	assert.Equal(t, 0.0, m.Y)
}

func TestResizeGestureRecomputesArea(t *testing.T) {
	e, rec := newTestEditor(100)
	draw(e, 10, 10, 110, 110)
	e.SetTool(ToolSelect)
	id, _ := e.Selected()

	e.PointerDown(110, 110)
	assert.Equal(t, HandleBottomRight, e.ActiveHandle())
	e.PointerUp(210, 310)

	m, _ := e.Get(id)
	assert.Equal(t, Rect{X: 10, Y: 10, Width: 200, Height: 300}, m.Rect())
	assert.InDelta(t, 6.0, m.AreaM2, 1e-9)
	assert.Len(t, rec.lists, 2)
}

func TestResizeGestureFloorsAtMinSize(t *testing.T) {
	e, _ := newTestEditor(100)
	draw(e, 50, 50, 150, 150)
	e.SetTool(ToolSelect)
	id, _ := e.Selected()

	e.PointerDown(150, 150)
	e.PointerUp(0, 0)

	m, _ := e.Get(id)
	assert.Equal(t, Rect{X: 50, Y: 50, Width: MinSize, Height: MinSize}, m.Rect())

	e.PointerDown(50, 50)
	assert.Equal(t, HandleTopLeft, e.ActiveHandle())
	e.PointerUp(400, 400)

	m, _ = e.Get(id)
	assert.Equal(t, Rect{X: 50, Y: 50, Width: MinSize, Height: MinSize}, m.Rect())
}

func TestResizeClampsBelowFloor(t *testing.T) {
	e, _ := newTestEditor(100)
	draw(e, 10, 10, 110, 110)
	id, _ := e.Selected()

	require.True(t, e.Resize(id, Rect{X: 20, Y: 30, Width: 3, Height: -4}))

	m, _ := e.Get(id)
	assert.Equal(t, MinSize, m.Width)
	assert.Equal(t, MinSize, m.Height)
	assert.InDelta(t, Area(MinSize, MinSize, 100), m.AreaM2, 1e-12)
}

func TestRename(t *testing.T) {
	e, rec := newTestEditor(100)
	draw(e, 10, 10, 110, 110)
	id, _ := e.Selected()

	assert.True(t, e.Rename(id, "  Kitchen "))
	m, _ := e.Get(id)
	assert.Equal(t, "Kitchen", m.Name)
	assert.Len(t, rec.lists, 2)

	assert.False(t, e.Rename(id, "   "))
	m, _ = e.Get(id)
	assert.Equal(t, "Kitchen", m.Name)

	before := e.Measurements()
	assert.True(t, e.Rename(id, "Kitchen"))
	assert.Equal(t, before, e.Measurements())
	assert.Len(t, rec.lists, 2)

	assert.False(t, e.Rename("missing", "Hall"))
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	e, _ := newTestEditor(100)
	draw(e, 10, 10, 110, 110)
	draw(e, 200, 10, 300, 110)
	draw(e, 400, 10, 500, 110)
	list := e.Measurements()
	middle := list[1].ID
	last := list[2].ID

	e.Select(middle)
	require.True(t, e.Delete(middle))

	_, ok := e.Selected()
	assert.False(t, ok)
	assert.Equal(t, []Measurement{list[0], list[2]}, e.Measurements())
	assert.Equal(t, 1, e.Ordinal(list[0].ID))
	assert.Equal(t, 2, e.Ordinal(last))
	assert.Equal(t, 0, e.Ordinal(middle))

	assert.False(t, e.Delete(middle))
}

func TestDeleteKeepsOtherSelection(t *testing.T) {
	e, _ := newTestEditor(100)
	draw(e, 10, 10, 110, 110)
	draw(e, 200, 10, 300, 110)
	list := e.Measurements()

	e.Select(list[1].ID)
	e.Delete(list[0].ID)

	id, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, list[1].ID, id)
}

func TestIDsAreUnique(t *testing.T) {
	e, _ := newTestEditor(100)
	for i := 0; i < 50; i++ {
		x := float64(i * 20)
		draw(e, x, 1000, x+15, 1015)
	}
	seen := map[string]bool{}
	for _, m := range e.Measurements() {
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
	assert.Len(t, seen, 50)
}

func TestNotificationsAreCopies(t *testing.T) {
	e, rec := newTestEditor(100)
	draw(e, 10, 10, 110, 110)

	rec.lists[0][0].Width = 1

	m := e.Measurements()[0]
	assert.Equal(t, 100.0, m.Width)
}

func TestScaleChangeDoesNotRecomputeUntilAsked(t *testing.T) {
	e, _ := newTestEditor(100)
	draw(e, 10, 10, 110, 110)
	id, _ := e.Selected()

	e.SetScale(50)
	m, _ := e.Get(id)
	assert.InDelta(t, 1.0, m.AreaM2, 1e-9)

	assert.True(t, e.RecomputeAreas())
	m, _ = e.Get(id)
	assert.InDelta(t, 4.0, m.AreaM2, 1e-9)
	assert.False(t, e.RecomputeAreas())
}

func TestZeroScaleGivesZeroArea(t *testing.T) {
	e, _ := newTestEditor(0)
	draw(e, 10, 10, 110, 110)

	m := e.Measurements()[0]
	assert.Equal(t, 0.0, m.AreaM2)
}

func TestPromoteSuggestion(t *testing.T) {
	e, rec := newTestEditor(100)
	e.Load(nil, []Suggestion{
		{ID: "s1", Label: "Bedroom", X: 0, Y: 0, Width: 200, Height: 100},
		{ID: "s2", X: 300, Y: 0, Width: 5, Height: 100},
	})

	id, ok := e.SuggestionAt(10, 10)
	require.True(t, ok)
	m, ok := e.Promote(id)
	require.True(t, ok)
	assert.Equal(t, "Bedroom", m.Name)
	assert.InDelta(t, 2.0, m.AreaM2, 1e-9)
	assert.Len(t, e.Suggestions(), 1)
	assert.Len(t, rec.lists, 1)

	_, ok = e.Promote("s2")
	assert.False(t, ok)
	_, ok = e.Promote("s1")
	assert.False(t, ok)
}

func TestLoadResetsState(t *testing.T) {
	e, rec := newTestEditor(100)
	draw(e, 10, 10, 110, 110)

	e.Load([]Measurement{{ID: "a", Name: "A", Width: 20, Height: 20}}, nil)

	assert.Len(t, rec.lists, 1)
	_, ok := e.Selected()
	assert.False(t, ok)
	assert.Equal(t, 1, e.Ordinal("a"))
}
