package ui

import (
	"fmt"
	"image/color"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/samber/lo"
	"golang.org/x/image/font"

	"plan-measure/measure"
)

const (
	ListRowHeight    = 22.0
	listHeaderHeight = 28.0
)

var (
	colorListBackground = color.RGBA{38, 38, 44, 255}
	colorListSelected   = color.RGBA{0, 90, 200, 255}
	colorListEditing    = color.RGBA{70, 70, 30, 255}
	colorListDivider    = color.RGBA{0, 0, 0, 80}
)

type ListItem struct {
	ID   string
	Name string
	Area float64
}

// ListPanel is the measurement table: one row per measurement in list order,
// plus a total. Row ordinals are the 1-based list positions.
type ListPanel struct {
	X, Y, W, H float64

	Items    []ListItem
	Selected string

	editingID string
	editing   TextField

	// OnRename commits an edited name.
	OnRename func(id, name string) bool
}

func (p *ListPanel) SetItems(list []measure.Measurement) {
	p.Items = lo.Map(list, func(m measure.Measurement, _ int) ListItem {
		return ListItem{ID: m.ID, Name: m.Name, Area: m.AreaM2}
	})
	if p.editingID != "" && !lo.ContainsBy(p.Items, func(it ListItem) bool { return it.ID == p.editingID }) {
		p.editingID = ""
	}
}

func (p *ListPanel) Total() float64 {
	return lo.SumBy(p.Items, func(it ListItem) float64 { return it.Area })
}

func (p *ListPanel) Contains(mx, my int) bool {
	x, y := float64(mx), float64(my)
	return x >= p.X && x < p.X+p.W && y >= p.Y && y < p.Y+p.H
}

// RowAt returns the id of the measurement row under the cursor.
func (p *ListPanel) RowAt(mx, my int) (string, bool) {
	if !p.Contains(mx, my) {
		return "", false
	}
	i := int((float64(my) - p.Y - listHeaderHeight) / ListRowHeight)
	if float64(my) < p.Y+listHeaderHeight || i < 0 || i >= len(p.Items) {
		return "", false
	}
	return p.Items[i].ID, true
}

// BeginRename starts editing the name of the row with the given id.
func (p *ListPanel) BeginRename(id string) bool {
	it, ok := lo.Find(p.Items, func(it ListItem) bool { return it.ID == id })
	if !ok {
		return false
	}
	p.editingID = id
	p.editing = TextField{Text: it.Name}
	return true
}

func (p *ListPanel) Editing() (string, bool) {
	return p.editingID, p.editingID != ""
}

func (p *ListPanel) Insert(r []rune) { p.editing.Insert(r) }
func (p *ListPanel) Backspace()      { p.editing.Backspace() }

func (p *ListPanel) Commit() {
	id := p.editingID
	p.editingID = ""
	if id != "" && p.OnRename != nil {
		p.OnRename(id, p.editing.Text)
	}
}

func (p *ListPanel) Cancel() {
	p.editingID = ""
}

func RowLabel(ordinal int, name string) string {
	return fmt.Sprintf("%d. %s", ordinal, name)
}

func FormatArea(area float64) string {
	return humanize.FormatFloat("#,###.##", area) + " m²"
}

func (p *ListPanel) Draw(screen *ebiten.Image, face font.Face, drawText DrawTextFunc) {
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), colorListBackground, false)
	vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(p.X), float32(p.Y+p.H), 1, colorListDivider, false)
	if face == nil || drawText == nil {
		return
	}

	x := int(p.X) + 8
	drawText(screen, face, fmt.Sprintf("Measurements (%d)", len(p.Items)), x, int(p.Y)+8, color.White)

	y := p.Y + listHeaderHeight
	for i, it := range p.Items {
		if y+ListRowHeight > p.Y+p.H-ListRowHeight {
			break
		}
		label := RowLabel(i+1, it.Name)
		switch {
		case it.ID == p.editingID:
			vector.DrawFilledRect(screen, float32(p.X), float32(y), float32(p.W), ListRowHeight, colorListEditing, false)
			label = RowLabel(i+1, p.editing.Text+"_")
		case it.ID == p.Selected:
			vector.DrawFilledRect(screen, float32(p.X), float32(y), float32(p.W), ListRowHeight, colorListSelected, false)
		}
		drawText(screen, face, label, x, int(y)+4, color.White)
		area := FormatArea(it.Area)
		drawText(screen, face, area, int(p.X+p.W)-8-7*len([]rune(area)), int(y)+4, color.White)
		y += ListRowHeight
	}

	ty := p.Y + p.H - ListRowHeight
	vector.StrokeLine(screen, float32(p.X), float32(ty), float32(p.X+p.W), float32(ty), 1, colorListDivider, false)
	total := FormatArea(p.Total())
	drawText(screen, face, "Total", x, int(ty)+4, color.White)
	drawText(screen, face, total, int(p.X+p.W)-8-7*len([]rune(total)), int(ty)+4, color.White)
}
