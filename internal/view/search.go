package view

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/components"
	"github.com/quintans/wallfetch/internal/lib/bind"
	"github.com/quintans/wallfetch/internal/lib/text"
	"github.com/quintans/wallfetch/internal/lib/timers"
	"github.com/quintans/wallfetch/internal/model"
	"github.com/quintans/wallfetch/internal/viewmodel"
)

var (
	purityClean   = color.NRGBA{R: 68, G: 153, B: 68, A: 255}
	puritySketchy = color.NRGBA{R: 204, G: 170, B: 51, A: 255}
	purityNSFW    = color.NRGBA{R: 204, G: 51, B: 51, A: 255}

	stateSelected    = color.NRGBA{R: 31, G: 111, B: 235, A: 255}
	stateQueued      = color.NRGBA{R: 110, G: 118, B: 129, A: 255}
	stateDownloading = color.NRGBA{R: 130, G: 80, B: 223, A: 255}
	stateDownloaded  = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	stateFailed      = color.NRGBA{R: 207, G: 34, B: 46, A: 255}
)

const (
	// scrollThreshold is the distance to the bottom of the grid that loads
	// the next page.
	scrollThreshold float32 = 200
	scrollDebounce          = 300 * time.Millisecond
)

func Search(vm *viewmodel.ViewModel) (fyne.CanvasObject, func(bool)) {
	s := vm.Search
	var unbinds []func()

	query := widget.NewEntry()
	query.SetPlaceHolder("Search wallpapers, +tag, -tag, @user, id:123...")
	unbinds = append(unbinds, s.Query.Bind(onUI(func(q string) {
		if query.Text != q {
			query.SetText(q)
		}
	})))

	search := func() {
		s.SetQuery(query.Text)
		go s.Search()
	}
	query.OnSubmitted = func(string) {
		search()
	}
	searchBtn := widget.NewButtonWithIcon("SEARCH", theme.SearchIcon(), search)
	searchBtn.Importance = widget.HighImportance

	busy := widget.NewActivity()
	busy.Hide()
	unbinds = append(unbinds, s.Busy.Bind(onUI(func(b bool) {
		if b {
			busy.Show()
			busy.Start()
			return
		}
		busy.Stop()
		busy.Hide()
	})))

	purity, unbind := purityPills(s)
	unbinds = append(unbinds, unbind)
	categories, unbind := categoryPills(s)
	unbinds = append(unbinds, unbind)
	sorting, unbind := sortingSelects(s)
	unbinds = append(unbinds, unbind)
	resolutions, unbind := menuButton(s.ResolutionLabel, func() *fyne.Menu {
		return resolutionMenu(s)
	})
	unbinds = append(unbinds, unbind)
	ratios, unbind := menuButton(s.RatioLabel, func() *fyne.Menu {
		return ratioMenu(s)
	})
	unbinds = append(unbinds, unbind)

	filters := container.NewHBox(
		purity,
		widget.NewSeparator(),
		categories,
		widget.NewSeparator(),
		sorting,
		resolutions,
		ratios,
		layout.NewSpacer(),
		optionsButton(vm.App),
	)

	results, closeResults := resultGrid(s)

	bottom, unbind := searchActions(s)
	unbinds = append(unbinds, unbind)

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, container.NewHBox(busy, searchBtn), query),
		container.NewHScroll(filters),
	)

	return container.NewBorder(top, bottom, nil, nil, results), func(bool) {
		closeResults()
		for _, u := range unbinds {
			u()
		}
	}
}

func purityPills(s *viewmodel.Search) (fyne.CanvasObject, func()) {
	clean := components.NewColoredPillChoice("SFW", false, purityClean)
	sketchy := components.NewColoredPillChoice("Sketchy", false, puritySketchy)
	nsfw := components.NewColoredPillChoice("NSFW", false, purityNSFW)

	changed := func(bool) {
		s.SetPurity(model.Purity{
			Clean:   clean.Selected(),
			Sketchy: sketchy.Selected(),
			NSFW:    nsfw.Selected(),
		})
	}
	clean.OnSelected = changed
	sketchy.OnSelected = changed
	nsfw.OnSelected = changed

	unbind := s.Purity.Bind(onUI(func(p model.Purity) {
		clean.SetSelect(p.Clean)
		sketchy.SetSelect(p.Sketchy)
		nsfw.SetSelect(p.NSFW)
	}))

	return container.NewHBox(clean, sketchy, nsfw), unbind
}

func categoryPills(s *viewmodel.Search) (fyne.CanvasObject, func()) {
	general := components.NewPillChoice("General", false)
	anime := components.NewPillChoice("Anime", false)
	people := components.NewPillChoice("People", false)

	changed := func(bool) {
		s.SetCategories(model.Categories{
			General: general.Selected(),
			Anime:   anime.Selected(),
			People:  people.Selected(),
		})
	}
	general.OnSelected = changed
	anime.OnSelected = changed
	people.OnSelected = changed

	unbind := s.Categories.Bind(onUI(func(c model.Categories) {
		general.SetSelect(c.General)
		anime.SetSelect(c.Anime)
		people.SetSelect(c.People)
	}))

	return container.NewHBox(general, anime, people), unbind
}

// sortingSelects shows the sorting and, for the top list, its time range.
func sortingSelects(s *viewmodel.Search) (fyne.CanvasObject, func()) {
	labels := make([]string, 0, len(model.Sortings))
	for _, v := range model.Sortings {
		labels = append(labels, v.Label())
	}
	sorting := widget.NewSelect(labels, nil)

	rangeLabels := make([]string, 0, len(model.TopRanges))
	for _, v := range model.TopRanges {
		rangeLabels = append(rangeLabels, v.Label())
	}
	topRange := widget.NewSelect(rangeLabels, nil)
	topRange.Hide()

	sorting.OnChanged = func(label string) {
		v, err := model.ParseSorting(label)
		if err != nil || v == s.Sorting.Get() {
			return
		}
		s.SetSorting(v)
	}
	topRange.OnChanged = func(label string) {
		v, err := model.ParseTopRange(label)
		if err != nil || v == s.TopRange.Get() {
			return
		}
		s.SetTopRange(v)
	}

	unbindSorting := s.Sorting.Bind(onUI(func(v model.Sorting) {
		sorting.SetSelected(v.Label())
		if v == model.TopList {
			topRange.Show()
		} else {
			topRange.Hide()
		}
	}))
	unbindRange := s.TopRange.Bind(onUI(func(v model.TopRange) {
		topRange.SetSelected(v.Label())
	}))

	return container.NewHBox(sorting, topRange), func() {
		unbindSorting()
		unbindRange()
	}
}

// menuButton is a button labelled by label that pops up the menu built by
// menu. The menu is built on every tap so that it shows the current checks.
func menuButton(label *bind.Bind[string], menu func() *fyne.Menu) (*widget.Button, func()) {
	var btn *widget.Button
	btn = widget.NewButtonWithIcon("", theme.MenuDropDownIcon(), func() {
		showMenu(btn, menu())
	})
	btn.IconPlacement = widget.ButtonIconTrailingText

	unbind := label.Bind(onUI(btn.SetText))
	return btn, unbind
}

func showMenu(anchor fyne.CanvasObject, menu *fyne.Menu) {
	driver := fyne.CurrentApp().Driver()
	c := driver.CanvasForObject(anchor)
	if c == nil {
		return
	}
	pos := driver.AbsolutePositionForObject(anchor).Add(fyne.NewPos(0, anchor.Size().Height))
	widget.ShowPopUpMenuAtPosition(menu, c, pos)
}

func resolutionMenu(s *viewmodel.Search) *fyne.Menu {
	atLeast, hasAtLeast := s.AtLeast()
	groups := model.GroupByRatio(model.Resolutions)

	exact := make([]*fyne.MenuItem, 0, len(groups))
	minimum := make([]*fyne.MenuItem, 0, len(groups))
	for _, g := range groups {
		exactItems := make([]*fyne.MenuItem, 0, len(g.Resolutions))
		minItems := make([]*fyne.MenuItem, 0, len(g.Resolutions))
		for _, r := range g.Resolutions {
			e := fyne.NewMenuItem(r.String(), func() {
				s.ToggleResolution(r)
			})
			e.Checked = s.HasResolution(r)
			exactItems = append(exactItems, e)

			m := fyne.NewMenuItem(r.String(), func() {
				s.SetAtLeast(r)
			})
			m.Checked = hasAtLeast && atLeast == r
			minItems = append(minItems, m)
		}

		e := fyne.NewMenuItem(g.Ratio.String(), nil)
		e.ChildMenu = fyne.NewMenu("", exactItems...)
		exact = append(exact, e)

		m := fyne.NewMenuItem(g.Ratio.String(), nil)
		m.ChildMenu = fyne.NewMenu("", minItems...)
		minimum = append(minimum, m)
	}

	exactly := fyne.NewMenuItem("Exactly", nil)
	exactly.ChildMenu = fyne.NewMenu("", exact...)
	least := fyne.NewMenuItem("At least", nil)
	least.ChildMenu = fyne.NewMenu("", minimum...)

	return fyne.NewMenu("Resolution",
		exactly,
		least,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Any resolution", s.ClearResolutions),
	)
}

func ratioMenu(s *viewmodel.Search) *fyne.Menu {
	items := make([]*fyne.MenuItem, 0, len(model.Ratios)+2)
	for _, r := range model.Ratios {
		item := fyne.NewMenuItem(r.String(), func() {
			s.ToggleRatio(r)
		})
		item.Checked = s.HasRatio(r)
		items = append(items, item)
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Any ratio", s.ClearRatios),
	)
	return fyne.NewMenu("Ratio", items...)
}

// optionsButton gives quick access to the settings that change the results.
func optionsButton(vm *viewmodel.App) *widget.Button {
	var btn *widget.Button
	btn = widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		hide := fyne.NewMenuItem("Hide downloaded", func() {
			go vm.SetIgnoreDownloaded(!vm.IgnoreDownloaded.Get())
		})
		hide.Checked = vm.IgnoreDownloaded.Get()

		similar := fyne.NewMenuItem("Match similar images", func() {
			go vm.SetMatchSimilar(!vm.MatchSimilar.Get())
		})
		similar.Checked = vm.MatchSimilar.Get()

		showMenu(btn, fyne.NewMenu("", hide, similar))
	})
	return btn
}

// resultGrid lays out one card per visible result and loads the next page
// when scrolled near the bottom.
func resultGrid(s *viewmodel.Search) (fyne.CanvasObject, func()) {
	grid := container.NewGridWrap(components.NewThumbnailCard().MinSize())
	scroll := container.NewVScroll(grid)

	empty := widget.NewLabel("Search for wallpapers")
	empty.Alignment = fyne.TextAlignCenter

	more := timers.NewDebounce(scrollDebounce, s.NextPage)
	scroll.OnScrolled = func(pos fyne.Position) {
		if pos.Y+scroll.Size().Height >= grid.MinSize().Height-scrollThreshold {
			more.Trigger()
		}
	}

	var cards []*components.ThumbnailCard
	first := ""
	unbind := s.Results.Listen(onUI(func(items []viewmodel.Item) {
		for i, it := range items {
			if i == len(cards) {
				card := components.NewThumbnailCard()
				cards = append(cards, card)
				grid.Add(card)
			}
			id := it.Wallpaper.ID
			card := cards[i]
			card.OnTapped = func() {
				s.Toggle(id)
			}
			card.OnOpen = func() {
				s.OpenPreview(id)
			}
			card.SetData(thumbnail(it))
		}
		for _, card := range cards[len(items):] {
			grid.Remove(card)
		}
		cards = cards[:len(items)]
		grid.Refresh()

		if len(items) == 0 {
			empty.Show()
			first = ""
			return
		}
		empty.Hide()
		if items[0].Wallpaper.ID != first {
			first = items[0].Wallpaper.ID
			scroll.ScrollToTop()
		}
	}))

	return container.NewStack(scroll, container.NewCenter(empty)), func() {
		unbind()
		more.Stop()
	}
}

func thumbnail(it viewmodel.Item) components.Thumbnail {
	w := it.Wallpaper
	t := components.Thumbnail{
		Key:        w.ID,
		Image:      it.Thumbnail,
		Progress:   -1,
		Views:      text.CompactNumber(w.Views),
		Favorites:  text.CompactNumber(w.Favorites),
		Resolution: w.Resolution,
		Size:       text.Size(w.FileSize),
	}

	switch it.State {
	case model.Selected:
		t.Highlight = stateSelected
		t.Status = "Selected"
	case model.Queued:
		t.Highlight = stateQueued
		t.Status = "Queued"
		t.Progress = 0
	case model.Downloading:
		t.Highlight = stateDownloading
		t.Status = fmt.Sprintf("%.0f%%", it.Progress)
		t.Progress = it.Progress / 100
	case model.Downloaded:
		t.Highlight = stateDownloaded
		t.Status = "Downloaded"
		if it.SimilarTo != "" {
			t.Status = "Similar to " + it.SimilarTo
		}
	case model.Failed:
		t.Highlight = stateFailed
		t.Status = "Failed"
	}

	return t
}

// searchActions is the bottom bar: result summary, download counters and
// the selection and download buttons.
func searchActions(s *viewmodel.Search) (fyne.CanvasObject, func()) {
	summary := widget.NewLabel("")
	unbindSummary := s.Summary.Bind(onUI(summary.SetText))

	selectAll := widget.NewButtonWithIcon("Select all", theme.CheckButtonCheckedIcon(), s.SelectAll)
	deselectAll := widget.NewButtonWithIcon("Deselect all", theme.CheckButtonIcon(), s.DeselectAll)

	download := widget.NewButtonWithIcon("Download", theme.DownloadIcon(), func() {
		go s.Download()
	})
	download.Importance = widget.HighImportance
	unbindDownloadable := s.Downloadable.Bind(onUI(func(n int) {
		if n == 0 {
			download.SetText("Download")
			download.Disable()
			return
		}
		download.SetText(fmt.Sprintf("Download (%d)", n))
		download.Enable()
	}))

	next := widget.NewButtonWithIcon("Next page", theme.MoreVerticalIcon(), func() {
		go s.NextPage()
	})
	unbindMore := s.HasMore.Bind(onUI(func(more bool) {
		if more {
			next.Enable()
		} else {
			next.Disable()
		}
	}))

	counters := widget.NewLabel("")
	tracker := components.NewBatchTracker()
	unbindCounters := s.Counters.Bind(onUI(func(c app.DownloadCounters) {
		b := components.Batch{
			Finished: c.Finished,
			Failed:   c.Failed,
			Running:  c.Running,
			Queued:   c.Queued,
		}
		if b.Total() == 0 {
			counters.Hide()
			tracker.Hide()
			return
		}
		counters.SetText(fmt.Sprintf("Queued: %d  Completed: %d  Failed: %d", c.Queued+c.Running, c.Finished, c.Failed))
		tracker.SetBatch(b)
		counters.Show()
		tracker.Show()
	}))

	bar := container.NewVBox(
		tracker,
		container.NewHBox(summary, layout.NewSpacer(), counters, selectAll, deselectAll, next, download),
	)

	return bar, func() {
		unbindSummary()
		unbindDownloadable()
		unbindMore()
		unbindCounters()
	}
}
