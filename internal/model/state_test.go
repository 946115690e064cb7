package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageState_Transitions(t *testing.T) {
	tests := []struct {
		from     ImageState
		toggle   ImageState
		selected ImageState
		cleared  ImageState
	}{
		{from: Unselected, toggle: Selected, selected: Selected, cleared: Unselected},
		{from: Selected, toggle: Unselected, selected: Selected, cleared: Unselected},
		{from: Queued, toggle: Queued, selected: Queued, cleared: Queued},
		{from: Downloading, toggle: Downloading, selected: Downloading, cleared: Downloading},
		{from: Downloaded, toggle: Downloaded, selected: Downloaded, cleared: Downloaded},
		{from: Failed, toggle: Selected, selected: Failed, cleared: Failed},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.toggle, tt.from.Toggle())
			assert.Equal(t, tt.selected, tt.from.Select())
			assert.Equal(t, tt.cleared, tt.from.Deselect())
		})
	}

	assert.True(t, Selected.Downloadable())
	assert.True(t, Failed.Downloadable())
	assert.False(t, Downloaded.Downloadable())
	assert.True(t, Queued.Busy())
}
