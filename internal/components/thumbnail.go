package components

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ThumbnailSize is the size of the image area of a ThumbnailCard.
var ThumbnailSize = fyne.NewSize(240, 160)

type Thumbnail struct {
	// Key identifies the image so it is only decoded when it changes.
	Key   string
	Image []byte
	// Highlight is the frame color. Nil hides the frame.
	Highlight color.Color
	Status    string
	// Progress goes from 0 to 1. A negative value hides the bar.
	Progress   float64
	Views      string
	Favorites  string
	Resolution string
	Size       string
}

// ThumbnailCard shows a search result. A tap selects it and a secondary
// tap or a double tap opens it.
type ThumbnailCard struct {
	widget.BaseWidget

	key        string
	image      *canvas.Image
	frame      *canvas.Rectangle
	status     *Pill
	progress   *widget.ProgressBar
	views      *Pill
	favorites  *Pill
	resolution *canvas.Text
	size       *canvas.Text

	OnTapped func() `json:"-"`
	OnOpen   func() `json:"-"`
}

func NewThumbnailCard() *ThumbnailCard {
	img := canvas.NewImageFromResource(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(ThumbnailSize)

	frame := canvas.NewRectangle(color.Transparent)
	frame.CornerRadius = 5
	frame.StrokeWidth = 3

	c := &ThumbnailCard{
		image:      img,
		frame:      frame,
		status:     NewPill(""),
		progress:   widget.NewProgressBar(),
		views:      NewPill(""),
		favorites:  NewPill(""),
		resolution: canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		size:       canvas.NewText("", theme.Color(theme.ColorNamePlaceHolder)),
	}
	c.resolution.TextSize = theme.CaptionTextSize()
	c.size.TextSize = theme.CaptionTextSize()
	c.ExtendBaseWidget(c)
	return c
}

func (c *ThumbnailCard) SetData(data Thumbnail) {
	if data.Key != c.key {
		c.key = data.Key
		if len(data.Image) > 0 {
			c.image.Resource = fyne.NewStaticResource(data.Key, data.Image)
		} else {
			c.image.Resource = theme.BrokenImageIcon()
		}
		c.image.Refresh()
	}

	if data.Highlight != nil {
		c.frame.StrokeColor = data.Highlight
	} else {
		c.frame.StrokeColor = color.Transparent
	}
	c.frame.Refresh()

	if data.Status == "" {
		c.status.Hide()
	} else {
		c.status.SetText(data.Status)
		c.status.SetColor(data.Highlight)
		c.status.Show()
	}

	if data.Progress < 0 {
		c.progress.Hide()
	} else {
		c.progress.SetValue(data.Progress)
		c.progress.Show()
	}

	c.views.SetText(data.Views)
	c.favorites.SetText(data.Favorites)
	c.resolution.Text = data.Resolution
	c.resolution.Refresh()
	c.size.Text = data.Size
	c.size.Refresh()
}

func (c *ThumbnailCard) Tapped(_ *fyne.PointEvent) {
	if c.OnTapped != nil {
		c.OnTapped()
	}
}

func (c *ThumbnailCard) TappedSecondary(_ *fyne.PointEvent) {
	if c.OnOpen != nil {
		c.OnOpen()
	}
}

func (c *ThumbnailCard) DoubleTapped(_ *fyne.PointEvent) {
	if c.OnOpen != nil {
		c.OnOpen()
	}
}

func (c *ThumbnailCard) CreateRenderer() fyne.WidgetRenderer {
	overlay := container.NewBorder(
		container.NewHBox(layout.NewSpacer(), c.status),
		c.progress,
		nil,
		nil,
	)
	info := container.NewHBox(
		c.resolution,
		c.size,
		layout.NewSpacer(),
		c.views,
		c.favorites,
	)

	body := container.NewBorder(nil, info, nil, nil, container.NewStack(c.image, overlay))
	return widget.NewSimpleRenderer(container.NewStack(container.NewPadded(body), c.frame))
}
