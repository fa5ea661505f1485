package measure

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// Tool is the active interaction tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolMeasure
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolMeasure:
		return "measure"
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// State is the editor's gesture state.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateSelected
	StateTransforming
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateSelected:
		return "selected"
	case StateTransforming:
		return "transforming"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Handle identifies what part of a selected measurement a gesture grabbed.
type Handle int

const (
	HandleTopLeft Handle = iota
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleBody
	HandleNone Handle = -1
)

// DefaultHandleRadius is the grab distance, in stage units, around a corner handle.
const DefaultHandleRadius = 8.0

// Editor owns the ordered list of measurements and the gesture state machine
// that edits it. Every committed change replaces the whole list and hands a
// copy of it to OnChange; intermediate gesture geometry is never committed.
type Editor struct {
	shapes      []Measurement
	index       map[string]int
	suggestions []Suggestion

	tool     Tool
	state    State
	selected string
	scale    float64
	hasImage bool

	HandleRadius float64

	// gesture
	anchorX, anchorY float64
	draft            Rect
	handle           Handle
	origin           Measurement
	active           Measurement

	OnChange func(list []Measurement)
	OnSelect func(id string)
}

// NewEditor returns an empty editor using the given scale.
func NewEditor(scale float64) *Editor {
	return &Editor{
		index:        map[string]int{},
		scale:        scale,
		handle:       HandleNone,
		HandleRadius: DefaultHandleRadius,
	}
}

// Load replaces the editor contents without notifying. Gesture and selection
// state are reset.
func (e *Editor) Load(list []Measurement, suggestions []Suggestion) {
	e.shapes = append([]Measurement(nil), list...)
	e.suggestions = append([]Suggestion(nil), suggestions...)
	e.reindex()
	e.selected = ""
	e.state = StateIdle
	e.handle = HandleNone
}

func (e *Editor) reindex() {
	e.index = make(map[string]int, len(e.shapes))
	for i, m := range e.shapes {
		e.index[m.ID] = i
	}
}

func (e *Editor) commit(next []Measurement) {
	e.shapes = next
	e.reindex()
	if e.OnChange != nil {
		e.OnChange(e.Measurements())
	}
}

func (e *Editor) setSelected(id string) {
	if e.selected == id {
		return
	}
	e.selected = id
	if e.OnSelect != nil {
		e.OnSelect(id)
	}
}

// Measurements returns a copy of the current list.
func (e *Editor) Measurements() []Measurement {
	return append([]Measurement(nil), e.shapes...)
}

// Len returns the number of measurements.
func (e *Editor) Len() int {
	return len(e.shapes)
}

// Get returns the measurement with the given id.
func (e *Editor) Get(id string) (Measurement, bool) {
	i, ok := e.index[id]
	if !ok {
		return Measurement{}, false
	}
	return e.shapes[i], true
}

// Ordinal returns the 1-based display number of id, derived from its list
// position, or 0 when the id is unknown.
func (e *Editor) Ordinal(id string) int {
	i, ok := e.index[id]
	if !ok {
		return 0
	}
	return i + 1
}

func (e *Editor) Tool() Tool     { return e.tool }
func (e *Editor) State() State   { return e.state }
func (e *Editor) Scale() float64 { return e.scale }
func (e *Editor) HasImage() bool { return e.hasImage }

// Suggestions returns a copy of the read-only candidate regions.
func (e *Editor) Suggestions() []Suggestion {
	return append([]Suggestion(nil), e.suggestions...)
}

// SetTool switches the active tool, abandoning any gesture in progress.
func (e *Editor) SetTool(t Tool) {
	e.Cancel()
	e.tool = t
}

// SetImage records whether a background image is present. Without one no
// gesture is accepted and no suggestion can be promoted.
func (e *Editor) SetImage(present bool) {
	e.hasImage = present
	if !present && e.state != StateIdle {
		e.Cancel()
	}
}

// SetScale relays a new scale. Existing areas keep the value computed at their
// last geometry change until RecomputeAreas is called or they are resized.
func (e *Editor) SetScale(scale float64) {
	e.scale = scale
}

// RecomputeAreas re-derives every area from the current scale. It reports
// whether any area changed.
func (e *Editor) RecomputeAreas() bool {
	changed := false
	next := lo.Map(e.shapes, func(m Measurement, _ int) Measurement {
		area := Area(m.Width, m.Height, e.scale)
		if area != m.AreaM2 {
			changed = true
			m.AreaM2 = area
		}
		return m
	})
	if changed {
		e.commit(next)
	}
	return changed
}

// Selected returns the selected id, if any.
func (e *Editor) Selected() (string, bool) {
	return e.selected, e.selected != ""
}

// Select marks id as selected. Unknown ids are ignored.
func (e *Editor) Select(id string) bool {
	if _, ok := e.index[id]; !ok {
		return false
	}
	if e.state == StateDrawing || e.state == StateTransforming {
		e.Cancel()
	}
	e.setSelected(id)
	e.state = StateSelected
	return true
}

// ClearSelection drops the selection.
func (e *Editor) ClearSelection() {
	if e.state == StateTransforming {
		e.Cancel()
	}
	e.setSelected("")
	if e.state == StateSelected {
		e.state = StateIdle
	}
}

// HitTest returns the topmost measurement containing the point.
func (e *Editor) HitTest(x, y float64) (string, bool) {
	for i := len(e.shapes) - 1; i >= 0; i-- {
		if e.shapes[i].Contains(x, y) {
			return e.shapes[i].ID, true
		}
	}
	return "", false
}

// HandleAt returns the corner handle of the selected measurement under the point.
func (e *Editor) HandleAt(x, y float64) Handle {
	m, ok := e.Get(e.selected)
	if !ok {
		return HandleNone
	}
	return m.CornerAt(x, y, e.HandleRadius)
}

// Draft returns the normalised rectangle being drawn.
func (e *Editor) Draft() (Rect, bool) {
	if e.state != StateDrawing {
		return Rect{}, false
	}
	return e.draft.Normalize(), true
}

// Active returns the transient geometry of the measurement being moved or resized.
func (e *Editor) Active() (Measurement, bool) {
	if e.state != StateTransforming {
		return Measurement{}, false
	}
	return e.active, true
}

// ActiveHandle returns the handle grabbed by the current transform gesture.
func (e *Editor) ActiveHandle() Handle {
	if e.state != StateTransforming {
		return HandleNone
	}
	return e.handle
}

// PointerDown starts a gesture at the stage point.
func (e *Editor) PointerDown(x, y float64) {
	if !e.hasImage {
		return
	}
	switch e.tool {
	case ToolMeasure:
		if _, hit := e.HitTest(x, y); hit {
			return
		}
		e.anchorX, e.anchorY = x, y
		e.draft = Rect{X: x, Y: y}
		e.state = StateDrawing
	case ToolSelect:
		if h := e.HandleAt(x, y); h != HandleNone {
			e.beginTransform(e.selected, h, x, y)
			return
		}
		if id, hit := e.HitTest(x, y); hit {
			e.setSelected(id)
			e.beginTransform(id, HandleBody, x, y)
			return
		}
		e.ClearSelection()
	}
}

func (e *Editor) beginTransform(id string, h Handle, x, y float64) {
	m, _ := e.Get(id)
	e.anchorX, e.anchorY = x, y
	e.handle = h
	e.origin = m
	e.active = m
	e.state = StateTransforming
}

// PointerMove updates the gesture in progress. Nothing is committed.
func (e *Editor) PointerMove(x, y float64) {
	switch e.state {
	case StateDrawing:
		e.draft.Width = x - e.anchorX
		e.draft.Height = y - e.anchorY
	case StateTransforming:
		if e.handle == HandleBody {
			e.active.X = math.Max(0, e.origin.X+x-e.anchorX)
			e.active.Y = math.Max(0, e.origin.Y+y-e.anchorY)
			return
		}
		e.active = e.active.withRect(resizeRect(e.origin, e.handle, x, y), e.scale)
	}
}

// PointerUp finishes the gesture and commits its result.
func (e *Editor) PointerUp(x, y float64) {
	switch e.state {
	case StateDrawing:
		e.PointerMove(x, y)
		e.finishDraw()
	case StateTransforming:
		e.PointerMove(x, y)
		id, h, active := e.origin.ID, e.handle, e.active
		e.handle = HandleNone
		e.state = StateSelected
		if h == HandleBody {
			e.Move(id, active.X, active.Y)
		} else {
			e.Resize(id, active.Rect())
		}
	}
}

// Cancel abandons the gesture in progress without committing anything.
func (e *Editor) Cancel() {
	switch e.state {
	case StateDrawing:
		e.state = StateIdle
		if e.selected != "" {
			e.state = StateSelected
		}
	case StateTransforming:
		e.state = StateSelected
	}
	e.handle = HandleNone
	e.draft = Rect{}
}

func (e *Editor) finishDraw() {
	r := e.draft
	e.draft = Rect{}
	e.state = StateIdle
	if e.selected != "" {
		e.state = StateSelected
	}
	if math.Abs(r.Width) < MinSize || math.Abs(r.Height) < MinSize {
		return
	}
	r = clampOrigin(r.Normalize())
	if r.Width < MinSize || r.Height < MinSize {
		return
	}
	m := Measurement{
		ID:   e.newID(),
		Name: fmt.Sprintf("Area %d", len(e.shapes)+1),
	}.withRect(r, e.scale)

	e.commit(append(e.Measurements(), m))
	e.setSelected(m.ID)
	e.state = StateSelected
}

// clampOrigin trims the part of a normalised rectangle that lies left of or
// above the stage origin.
func clampOrigin(r Rect) Rect {
	if r.X < 0 {
		r.Width += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.Height += r.Y
		r.Y = 0
	}
	return r
}

func (e *Editor) newID() string {
	for {
		id := NewID()
		if _, taken := e.index[id]; !taken {
			return id
		}
	}
}

// resizeRect moves the grabbed corner of o to (x, y), keeping the opposite
// corner fixed and flooring both extents at MinSize.
func resizeRect(o Measurement, h Handle, x, y float64) Rect {
	left, top := o.X, o.Y
	right, bottom := o.X+o.Width, o.Y+o.Height

	switch h {
	case HandleTopLeft:
		left, top = math.Max(0, x), math.Max(0, y)
		left = math.Min(left, right-MinSize)
		top = math.Min(top, bottom-MinSize)
	case HandleTopRight:
		right, top = x, math.Max(0, y)
		right = math.Max(right, left+MinSize)
		top = math.Min(top, bottom-MinSize)
	case HandleBottomLeft:
		left, bottom = math.Max(0, x), y
		left = math.Min(left, right-MinSize)
		bottom = math.Max(bottom, top+MinSize)
	case HandleBottomRight:
		right, bottom = x, y
		right = math.Max(right, left+MinSize)
		bottom = math.Max(bottom, top+MinSize)
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Move commits a new top-left position for id. Area is unchanged by translation.
func (e *Editor) Move(id string, x, y float64) bool {
	i, ok := e.index[id]
	if !ok {
		return false
	}
	x, y = math.Max(0, x), math.Max(0, y)
	if e.shapes[i].X == x && e.shapes[i].Y == y {
		return true
	}
	next := e.Measurements()
	next[i].X, next[i].Y = x, y
	e.commit(next)
	return true
}

// Resize commits new geometry for id. Width and height are floored at MinSize
// and the area is recomputed with the current scale.
func (e *Editor) Resize(id string, r Rect) bool {
	i, ok := e.index[id]
	if !ok {
		return false
	}
	r.X, r.Y = math.Max(0, r.X), math.Max(0, r.Y)
	r.Width = math.Max(r.Width, MinSize)
	r.Height = math.Max(r.Height, MinSize)

	m := e.shapes[i].withRect(r, e.scale)
	if m == e.shapes[i] {
		return true
	}
	next := e.Measurements()
	next[i] = m
	e.commit(next)
	return true
}

// Rename sets the trimmed name of id. An empty name is ignored, and renaming
// to the current name leaves the list untouched.
func (e *Editor) Rename(id, name string) bool {
	i, ok := e.index[id]
	if !ok {
		return false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if e.shapes[i].Name == name {
		return true
	}
	next := e.Measurements()
	next[i].Name = name
	e.commit(next)
	return true
}

// Delete removes id from the list, clearing the selection if it pointed at it.
func (e *Editor) Delete(id string) bool {
	if _, ok := e.index[id]; !ok {
		return false
	}
	if e.state == StateTransforming && e.origin.ID == id {
		e.Cancel()
	}
	next := lo.Reject(e.shapes, func(m Measurement, _ int) bool {
		return m.ID == id
	})
	e.commit(next)
	if e.selected == id {
		e.setSelected("")
		e.state = StateIdle
	}
	return true
}

// SuggestionAt returns the topmost suggestion containing the point.
func (e *Editor) SuggestionAt(x, y float64) (string, bool) {
	if !e.hasImage {
		return "", false
	}
	for i := len(e.suggestions) - 1; i >= 0; i-- {
		if e.suggestions[i].Contains(x, y) {
			return e.suggestions[i].ID, true
		}
	}
	return "", false
}

// Promote turns a suggestion into a measurement. Suggestions smaller than
// MinSize are rejected and stay in place.
func (e *Editor) Promote(suggestionID string) (Measurement, bool) {
	if !e.hasImage {
		return Measurement{}, false
	}
	s, i, ok := lo.FindIndexOf(e.suggestions, func(s Suggestion) bool {
		return s.ID == suggestionID
	})
	if !ok {
		return Measurement{}, false
	}
	r := clampOrigin(Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}.Normalize())
	if r.Width < MinSize || r.Height < MinSize {
		return Measurement{}, false
	}

	name := strings.TrimSpace(s.Label)
	if name == "" {
		name = fmt.Sprintf("Area %d", len(e.shapes)+1)
	}
	m := Measurement{ID: e.newID(), Name: name}.withRect(r, e.scale)

	e.suggestions = append(e.suggestions[:i:i], e.suggestions[i+1:]...)
	e.commit(append(e.Measurements(), m))
	return m, true
}
