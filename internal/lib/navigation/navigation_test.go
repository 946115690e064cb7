package navigation_test

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/quintans/wallfetch/internal/lib/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type home struct{}

type details struct {
	name string
}

func TestNavigator(t *testing.T) {
	test.NewApp()

	var closed []string
	c := container.NewStack()
	nav := navigation.New(c)
	nav.Factory = func(to any) navigation.ViewFactory {
		switch p := to.(type) {
		case home:
			return func() (fyne.CanvasObject, func(bool)) {
				return widget.NewLabel("home"), func(back bool) {
					closed = append(closed, "home")
				}
			}
		case details:
			return func() (fyne.CanvasObject, func(bool)) {
				return widget.NewLabel(p.name), func(back bool) {
					if back {
						closed = append(closed, p.name+" back")
						return
					}
					closed = append(closed, p.name)
				}
			}
		}
		return nil
	}

	current := func() string {
		require.Len(t, c.Objects, 1)
		return c.Objects[0].(*widget.Label).Text
	}

	nav.To(home{})
	first := c.Objects[0]
	assert.Equal(t, "home", current())

	nav.To(details{name: "a1"})
	assert.Equal(t, "a1", current())
	assert.Equal(t, 2, nav.Depth())

	nav.Back()
	assert.Equal(t, "home", current())
	assert.Same(t, first, c.Objects[0], "previous screen is kept")
	assert.Equal(t, []string{"a1 back"}, closed)

	nav.Back()
	assert.Equal(t, "home", current())
	assert.Equal(t, 1, nav.Depth())

	nav.To(details{name: "b2"})
	nav.Reset(details{name: "c3"})
	assert.Equal(t, "c3", current())
	assert.Equal(t, []string{"a1 back", "b2", "home"}, closed)

	nav.To("unknown")
	assert.Equal(t, "c3", current())
}
