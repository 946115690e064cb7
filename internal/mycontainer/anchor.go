package mycontainer

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

var zero float32 = 0

var (
	FillConstraint   = AnchorConstraints{Top: &zero, Bottom: &zero, Left: &zero, Right: &zero}
	CenterConstraint = AnchorConstraints{}
)

// Offset returns a pointer to d, to be used as an anchor distance.
func Offset(d float32) *float32 {
	return &d
}

type AnchorConstraints struct {
	Top, Bottom, Left, Right *float32
}

type AnchorLayout struct {
	constraints map[fyne.CanvasObject]AnchorConstraints
}

func NewAnchorLayout() *AnchorLayout {
	return &AnchorLayout{
		constraints: make(map[fyne.CanvasObject]AnchorConstraints),
	}
}

func (a *AnchorLayout) Add(obj fyne.CanvasObject, constraints AnchorConstraints) {
	a.constraints[obj] = constraints
}

// Layout places every object by its constraints. Objects without
// constraints are centered at their minimum size.
func (a *AnchorLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, obj := range objects {
		c := a.constraints[obj]
		ms := obj.MinSize()

		x, width := span(c.Left, c.Right, size.Width, ms.Width)
		y, height := span(c.Top, c.Bottom, size.Height, ms.Height)

		obj.Resize(fyne.NewSize(width, height))
		obj.Move(fyne.NewPos(x, y))
	}
}

// span resolves one axis. Anchoring both ends stretches the object,
// anchoring one end keeps its minimum length and anchoring none centers it.
func span(start, end *float32, total, minLen float32) (pos, length float32) {
	switch {
	case start != nil && end != nil:
		return *start, total - *start - *end
	case start != nil:
		return *start, minLen
	case end != nil:
		return total - minLen - *end, minLen
	default:
		return (total - minLen) / 2, minLen
	}
}

func (a *AnchorLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var size fyne.Size
	for _, obj := range objects {
		if !obj.Visible() {
			continue
		}
		size = size.Max(obj.MinSize())
	}
	return size
}

func (a *AnchorLayout) Remove(obj fyne.CanvasObject) {
	delete(a.constraints, obj)
}

type Anchor struct {
	Layout    *AnchorLayout
	Container *fyne.Container
}

func NewAnchor() *Anchor {
	layout := NewAnchorLayout()
	return &Anchor{
		Layout:    layout,
		Container: container.New(layout),
	}
}

func (a *Anchor) Add(obj fyne.CanvasObject, constraints AnchorConstraints) {
	a.Layout.Add(obj, constraints)
	a.Container.Add(obj)
}

func (a *Anchor) Remove(obj fyne.CanvasObject) {
	a.Layout.Remove(obj)
	a.Container.Remove(obj)
}
