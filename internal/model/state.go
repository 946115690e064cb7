package model

// ImageState is the lifecycle of a result in the grid.
type ImageState int

const (
	Unselected ImageState = iota
	Selected
	Queued
	Downloading
	Downloaded
	Failed
)

func (s ImageState) String() string {
	switch s {
	case Unselected:
		return "unselected"
	case Selected:
		return "selected"
	case Queued:
		return "queued"
	case Downloading:
		return "downloading"
	case Downloaded:
		return "downloaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Toggle is what a click on the image does.
func (s ImageState) Toggle() ImageState {
	switch s {
	case Unselected, Failed:
		return Selected
	case Selected:
		return Unselected
	default:
		return s
	}
}

func (s ImageState) Select() ImageState {
	if s == Unselected {
		return Selected
	}
	return s
}

func (s ImageState) Deselect() ImageState {
	if s == Selected {
		return Unselected
	}
	return s
}

// Downloadable reports if pressing download should queue the image.
func (s ImageState) Downloadable() bool {
	return s == Selected || s == Failed
}

// Busy reports if the image is waiting for or being downloaded.
func (s ImageState) Busy() bool {
	return s == Queued || s == Downloading
}
