package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/xvierd/discipline-tracker/internal/heatmap"
)

// parseColor converts a hex string to a color, falling back to the empty
// bucket color on bad input.
func parseColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(heatmap.BucketEmpty.Color())
	}
	return c
}

// gridLayout places one object per cell in the order of heatmap.Grid.Rects.
type gridLayout struct {
	rects []heatmap.Rect
}

func newGridLayout() gridLayout {
	var g heatmap.Grid
	return gridLayout{rects: g.Rects()}
}

func (gridLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(float32(heatmap.Width()), float32(heatmap.Height()))
}

func (l gridLayout) Layout(objects []fyne.CanvasObject, _ fyne.Size) {
	for i, obj := range objects {
		if i >= len(l.rects) {
			return
		}
		r := l.rects[i]
		obj.Move(fyne.NewPos(r.X, r.Y))
		obj.Resize(fyne.NewSize(r.Width, r.Height))
	}
}

// heatmapView draws the contribution grid as colored rectangles.
type heatmapView struct {
	cells     []*canvas.Rectangle
	container *fyne.Container
}

func newHeatmapView() *heatmapView {
	v := &heatmapView{cells: make([]*canvas.Rectangle, 0, heatmap.Weeks*heatmap.Days)}
	objects := make([]fyne.CanvasObject, 0, cap(v.cells))
	empty := parseColor(heatmap.BucketEmpty.Color())
	for i := 0; i < cap(v.cells); i++ {
		r := canvas.NewRectangle(empty)
		r.CornerRadius = 2
		v.cells = append(v.cells, r)
		objects = append(objects, r)
	}
	v.container = container.New(newGridLayout(), objects...)
	return v
}

// Update recolors every cell from g.
func (v *heatmapView) Update(g *heatmap.Grid) {
	for i, rect := range g.Rects() {
		v.cells[i].FillColor = parseColor(rect.Color)
		v.cells[i].Refresh()
	}
}
