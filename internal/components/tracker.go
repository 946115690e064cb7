package components

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

var (
	trackerFinished = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	trackerFailed   = color.NRGBA{R: 207, G: 34, B: 46, A: 255}
	trackerRunning  = color.NRGBA{R: 31, G: 111, B: 235, A: 255}
	trackerQueued   = color.NRGBA{R: 110, G: 118, B: 129, A: 255}
)

// Batch is the state of the download queue.
type Batch struct {
	Finished int
	Failed   int
	Running  int
	Queued   int
}

func (b Batch) Total() int {
	return b.Finished + b.Failed + b.Running + b.Queued
}

// BatchTracker draws a strip split in proportion to the finished, failed,
// running and queued downloads.
type BatchTracker struct {
	widget.BaseWidget
	batch Batch
}

func NewBatchTracker() *BatchTracker {
	w := &BatchTracker{}
	w.ExtendBaseWidget(w)
	return w
}

func (w *BatchTracker) SetBatch(b Batch) {
	w.batch = b
	w.Refresh()
}

func (w *BatchTracker) CreateRenderer() fyne.WidgetRenderer {
	r := &batchTrackerRenderer{
		widget:     w,
		background: canvas.NewRectangle(color.Transparent),
		segments: []*canvas.Rectangle{
			canvas.NewRectangle(trackerFinished),
			canvas.NewRectangle(trackerFailed),
			canvas.NewRectangle(trackerRunning),
			canvas.NewRectangle(trackerQueued),
		},
	}
	return r
}

type batchTrackerRenderer struct {
	widget     *BatchTracker
	background *canvas.Rectangle
	segments   []*canvas.Rectangle
}

func (r *batchTrackerRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	b := r.widget.batch
	total := b.Total()
	counts := []int{b.Finished, b.Failed, b.Running, b.Queued}

	var x float32
	for i, seg := range r.segments {
		var width float32
		if total > 0 {
			width = size.Width * float32(counts[i]) / float32(total)
		}
		seg.Move(fyne.NewPos(x, 0))
		seg.Resize(fyne.NewSize(width, size.Height))
		x += width
	}
}

func (r *batchTrackerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 6)
}

func (r *batchTrackerRenderer) Refresh() {
	r.Layout(r.widget.Size())
	for _, seg := range r.segments {
		seg.Refresh()
	}
}

func (r *batchTrackerRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background}
	for _, seg := range r.segments {
		objects = append(objects, seg)
	}
	return objects
}

func (r *batchTrackerRenderer) Destroy() {}
