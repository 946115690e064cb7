package components

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// CustomLabel is a word wrapping label with its own color, so that it can be
// faded out.
type CustomLabel struct {
	widget.BaseWidget

	Text       string
	Color      color.Color
	TextStyle  fyne.TextStyle
	Alignment  fyne.TextAlign
	TextSize   float32
	FontSource fyne.Resource
	WrapWidth  float32
	// MaxLines truncates the text with an ellipsis. Zero means no limit.
	MaxLines int

	box *fyne.Container
}

func NewCustomLabel(text string, textColor color.Color) *CustomLabel {
	label := &CustomLabel{Text: text, Color: textColor, WrapWidth: 200}
	label.ExtendBaseWidget(label)
	label.box = container.New(layout.NewCustomPaddedVBoxLayout(0))
	return label
}

func (c *CustomLabel) CreateRenderer() fyne.WidgetRenderer {
	return &customLabelRenderer{label: c}
}

type customLabelRenderer struct {
	label *CustomLabel
}

func (r *customLabelRenderer) Layout(size fyne.Size) {
	r.updateTexts(size.Width)
	r.label.box.Resize(size)
}

func (r *customLabelRenderer) MinSize() fyne.Size {
	r.updateTexts(r.label.WrapWidth)
	return r.label.box.MinSize()
}

func (r *customLabelRenderer) Refresh() {
	for _, o := range r.label.box.Objects {
		if t, ok := o.(*canvas.Text); ok {
			t.Color = r.label.Color
		}
	}
	canvas.Refresh(r.label.box)
}

func (r *customLabelRenderer) Destroy() {}

func (r *customLabelRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.label.box}
}

func (r *customLabelRenderer) updateTexts(width float32) {
	lines := r.wrap(width)
	if n := r.label.MaxLines; n > 0 && len(lines) > n {
		lines = lines[:n]
		lines[n-1] += "…"
	}

	r.label.box.Objects = nil
	for _, l := range lines {
		r.label.box.Add(r.newText(l))
	}
}

func (r *customLabelRenderer) wrap(width float32) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(r.label.Text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}

		if line != "" && r.newText(candidate).MinSize().Width > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func (r *customLabelRenderer) newText(txt string) *canvas.Text {
	text := canvas.NewText(txt, r.label.Color)
	if r.label.TextSize > 0 {
		text.TextSize = r.label.TextSize
	}
	text.TextStyle = r.label.TextStyle
	text.Alignment = r.label.Alignment
	if r.label.FontSource != nil {
		text.FontSource = r.label.FontSource
	}
	return text
}
