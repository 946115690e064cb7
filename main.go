package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"github.com/joho/godotenv"
	gapp "github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/app/services"
	"github.com/quintans/wallfetch/internal/gateways/eventbus"
	"github.com/quintans/wallfetch/internal/gateways/library"
	"github.com/quintans/wallfetch/internal/gateways/repository"
	"github.com/quintans/wallfetch/internal/gateways/secrets"
	"github.com/quintans/wallfetch/internal/gateways/wallhaven"
	"github.com/quintans/wallfetch/internal/lib/bind"
	"github.com/quintans/wallfetch/internal/lib/bus"
	"github.com/quintans/wallfetch/internal/lib/navigation"
	"github.com/quintans/wallfetch/internal/lib/values"
	"github.com/quintans/wallfetch/internal/view"
	"github.com/quintans/wallfetch/internal/viewmodel"
)

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("WALLFETCH_LOG_LEVEL")),
	})))

	slog.Info("starting", "app", gapp.Name, "version", gapp.Version)

	path, err := os.UserConfigDir()
	if err != nil {
		panic(err)
	}
	configDir := filepath.Join(path, gapp.Name)
	slog.Info("config", "dir", configDir)

	saveDir, err := defaultSaveDir()
	if err != nil {
		panic(err)
	}

	a := app.NewWithID("cc.wallhaven.wallfetch")
	w := a.NewWindow("WallFetch")
	w.Resize(fyne.NewSize(1280, 800))

	db := repository.NewDB(configDir, saveDir)
	api := wallhaven.New(values.Coalesce(os.Getenv("WALLFETCH_API_URL"), wallhaven.BaseURL))
	lib := library.New()
	sec := secrets.NewSecrets()

	b := bus.New()
	eventBus := eventbus.New(b)

	downloadSvc := services.NewDownload(db, api, lib, eventBus)
	appSvc := services.NewApp(db, sec, lib, downloadSvc, os.Getenv("WALLFETCH_API_KEY"))
	searchSvc := services.NewSearch(db, api, lib, appSvc)
	previewSvc := services.NewPreview(api)

	err = appSvc.Start()
	if err != nil {
		slog.Error("Failed to start", "error", err)
	}

	nav := navigation.New(container.NewStack())
	shared := &viewmodel.Shared{
		Navigate:         nav,
		ShowNotification: bind.NewNotifier[gapp.Notify](),
		Publish:          b.Publish,
	}
	vm := viewmodel.New(shared, appSvc, searchSvc, downloadSvc, previewSvc)
	nav.Factory = view.Factory(vm)

	bus.Register(b, vm.App.Loading.Notify)
	bus.Register(b, vm.Search.OnDownloadProgress)
	bus.Register(b, vm.Search.OnDownloadFinished)
	bus.Register(b, vm.Search.OnDownloadFailed)
	bus.Register(b, vm.Search.OnDownloadCounters)

	content, _ := view.App(vm, nav, w)
	w.SetContent(content)

	w.ShowAndRun()

	downloadSvc.Close()
}

func defaultSaveDir() (string, error) {
	if dir := os.Getenv("WALLFETCH_SAVE_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Pictures", "wallfetch"), nil
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
