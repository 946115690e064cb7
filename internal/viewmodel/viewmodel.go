package viewmodel

import "github.com/quintans/wallfetch/internal/app"

// ViewModel is the root of the screen models. Screens that come and go,
// like the preview, are created on navigation.
type ViewModel struct {
	Shared  *Shared
	App     *App
	Search  *Search
	preview PreviewService
}

func New(
	shared *Shared,
	appService AppService,
	searchService SearchService,
	downloadService DownloadService,
	previewService PreviewService,
) *ViewModel {
	a := NewApp(shared, appService)
	return &ViewModel{
		Shared:  shared,
		App:     a,
		Search:  NewSearch(shared, searchService, downloadService, a.IgnoreDownloaded),
		preview: previewService,
	}
}

func (vm *ViewModel) NewPreview(params app.PreviewParams) *Preview {
	return NewPreview(vm.Shared, vm.preview, params)
}

// Mount loads the persisted state of every screen.
func (vm *ViewModel) Mount() {
	vm.App.Mount()
	vm.Search.Mount()
}
