package components

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
)

func TestPillChoice_Tap(t *testing.T) {
	test.NewApp()

	var got []bool
	p := NewColoredPillChoice("Sketchy", false, color.NRGBA{R: 255, A: 255})
	p.OnSelected = func(b bool) {
		got = append(got, b)
	}

	test.Tap(p)
	test.Tap(p)
	p.SetSelect(true)

	assert.Equal(t, []bool{true, false}, got)
	assert.True(t, p.Selected())
	assert.Equal(t, "Sketchy", p.Text())
}

func TestStepper(t *testing.T) {
	test.NewApp()

	s := NewStepper(5)
	s.OnChanged = func(v int) {
		if v <= 9 {
			s.SetValue(v)
		}
	}

	for range 6 {
		test.Tap(s.plus)
	}
	assert.Equal(t, 9, s.Value())
	assert.Equal(t, "9", s.label.Text)

	test.Tap(s.minus)
	assert.Equal(t, 8, s.Value())
}

func TestThumbnailCard(t *testing.T) {
	test.NewApp()

	taps, opens := 0, 0
	c := NewThumbnailCard()
	c.OnTapped = func() { taps++ }
	c.OnOpen = func() { opens++ }

	c.SetData(Thumbnail{
		Key:        "a1",
		Status:     "42%",
		Progress:   0.42,
		Views:      "12.3k",
		Favorites:  "1.2m",
		Resolution: "1920x1080",
		Size:       "5.1 MB",
	})
	test.WidgetRenderer(c)

	assert.True(t, c.status.Visible())
	assert.True(t, c.progress.Visible())
	assert.InDelta(t, 0.42, c.progress.Value, 0.001)
	assert.Equal(t, "1920x1080", c.resolution.Text)

	c.SetData(Thumbnail{Key: "a1", Progress: -1})
	assert.False(t, c.status.Visible())
	assert.False(t, c.progress.Visible())

	test.Tap(c)
	test.TapSecondary(c)
	test.DoubleTap(c)
	assert.Equal(t, 1, taps)
	assert.Equal(t, 2, opens)
}

func TestBatch(t *testing.T) {
	test.NewApp()

	b := Batch{Finished: 2, Failed: 1, Running: 3, Queued: 4}
	assert.Equal(t, 10, b.Total())

	tracker := NewBatchTracker()
	tracker.Resize(fyne.NewSize(100, 6))
	tracker.SetBatch(b)

	r := test.WidgetRenderer(tracker).(*batchTrackerRenderer)
	r.Layout(fyne.NewSize(100, 6))
	assert.InDelta(t, 20, r.segments[0].Size().Width, 0.01)
	assert.InDelta(t, 10, r.segments[1].Size().Width, 0.01)
	assert.InDelta(t, 30, r.segments[2].Size().Width, 0.01)
	assert.InDelta(t, 60, r.segments[3].Position().X, 0.01)
}

func TestMinSizeWrapper(t *testing.T) {
	test.NewApp()

	label := widget.NewLabel("x")
	w := NewMinSizeWrapper(label, fyne.NewSize(200, 10))
	assert.Equal(t, float32(200), w.MinSize().Width)
	assert.Equal(t, label.MinSize().Height, w.MinSize().Height)
}
