package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quintans/faults"
	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/files"
	"github.com/quintans/wallfetch/internal/lib/https"
	"github.com/quintans/wallfetch/internal/lib/retry"
	"github.com/quintans/wallfetch/internal/model"
)

// downloadRetries is how many times a failed transfer is attempted again.
const downloadRetries = 2

var ErrCancelled = errors.New("download cancelled")

type task struct {
	req     app.DownloadRequest
	batchID string
	target  string
}

// Download is a FIFO queue of image downloads with a bounded number of
// transfers in flight. The bound can be changed at any time; lowering it
// lets the running transfers finish.
type Download struct {
	repo     Repository
	api      app.WallpaperAPI
	library  app.Library
	eventBus app.EventBus
	delay    func(attempt int, err error) time.Duration

	mu          sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	queue       []task
	active      map[string]context.CancelFunc
	maxParallel int
	counters    app.DownloadCounters
	wg          sync.WaitGroup
}

func NewDownload(
	repo Repository,
	api app.WallpaperAPI,
	library app.Library,
	eventBus app.EventBus,
) *Download {
	ctx, cancel := context.WithCancel(context.Background())
	return &Download{
		repo:        repo,
		api:         api,
		library:     library,
		eventBus:    eventBus,
		delay:       https.DelayFunc,
		ctx:         ctx,
		cancel:      cancel,
		active:      map[string]context.CancelFunc{},
		maxParallel: model.DefaultConcurrentDownloads,
	}
}

// SetConcurrency changes how many downloads run at the same time.
func (d *Download) SetConcurrency(n int) error {
	if n < model.MinConcurrentDownloads || n > model.MaxConcurrentDownloads {
		return faults.Errorf("%w: %d", model.ErrInvalidConcurrency, n)
	}

	d.mu.Lock()
	d.maxParallel = n
	d.mu.Unlock()

	d.startNext()
	return nil
}

// Enqueue adds the requests, in order, to the end of the queue. Requests
// already queued or running are skipped. It returns the batch id.
func (d *Download) Enqueue(reqs []app.DownloadRequest) (string, error) {
	settings, err := d.repo.LoadSettings()
	if err != nil {
		return "", faults.Errorf("loading settings: %w", err)
	}
	dir := settings.SaveDir()
	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return "", faults.Errorf("creating storage directory %s: %w", dir, err)
	}

	batchID := uuid.NewString()

	d.mu.Lock()
	added := 0
	for _, r := range reqs {
		if d.known(r.ID) {
			continue
		}
		d.queue = append(d.queue, task{
			req:     r,
			batchID: batchID,
			target:  filepath.Join(dir, r.Filename),
		})
		added++
	}
	d.counters.BatchID = batchID
	d.counters.Queued = len(d.queue)
	counters := d.counters
	d.mu.Unlock()

	slog.Info("Queued downloads", "batch", batchID, "count", added)
	d.eventBus.DownloadCounters(counters)
	d.startNext()

	return batchID, nil
}

func (d *Download) Counters() app.DownloadCounters {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.counters
}

// CancelAll drops the queue and stops the running downloads.
func (d *Download) CancelAll() {
	d.mu.Lock()
	queued := d.queue
	d.queue = nil
	for _, cancel := range d.active {
		cancel()
	}
	d.counters.Queued = 0
	d.counters.Failed += len(queued)
	counters := d.counters
	d.mu.Unlock()

	for _, t := range queued {
		d.eventBus.DownloadFailed(t.req.ID, ErrCancelled)
	}
	d.eventBus.DownloadCounters(counters)
}

// Close cancels everything and waits for the running downloads to stop.
func (d *Download) Close() {
	d.CancelAll()
	d.cancel()
	d.wg.Wait()
}

// Wait blocks until the queue is drained.
func (d *Download) Wait() {
	d.wg.Wait()
}

func (d *Download) known(id string) bool {
	if _, ok := d.active[id]; ok {
		return true
	}
	return slices.ContainsFunc(d.queue, func(t task) bool {
		return t.req.ID == id
	})
}

func (d *Download) startNext() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for len(d.active) < d.maxParallel && len(d.queue) > 0 {
		t := d.queue[0]
		d.queue = d.queue[1:]

		ctx, cancel := context.WithCancel(d.ctx)
		d.active[t.req.ID] = cancel
		d.counters.Queued = len(d.queue)
		d.counters.Running = len(d.active)

		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			defer cancel()
			d.run(ctx, t)
		}()
	}
}

func (d *Download) run(ctx context.Context, t task) {
	d.eventBus.DownloadProgress(t.req.ID, 0)

	err := d.save(ctx, t)

	d.mu.Lock()
	delete(d.active, t.req.ID)
	d.counters.Running = len(d.active)
	if err != nil {
		d.counters.Failed++
	} else {
		d.counters.Finished++
	}
	counters := d.counters
	d.mu.Unlock()

	if err != nil {
		slog.Error("Download failed", "batch", t.batchID, "id", t.req.ID, "url", t.req.URL, "error", err)
		d.eventBus.DownloadFailed(t.req.ID, err)
	} else {
		if !d.library.Add(t.target) {
			slog.Info("Storage directory changed, download not recorded", "id", t.req.ID, "path", t.target)
		}
		d.eventBus.DownloadFinished(t.req.ID, t.req.Filename)
	}
	d.eventBus.DownloadCounters(counters)

	d.startNext()
}

// save writes to a temporary file next to the target and renames it into
// place once complete. A failed attempt leaves nothing behind.
func (d *Download) save(ctx context.Context, t task) error {
	return retry.Do(func() error {
		tmp, err := files.CreateTemp(t.target)
		if err != nil {
			return retry.NewPermanentError(err)
		}

		lastPercent := -1
		err = d.api.Download(ctx, t.req.URL, tmp, func(written, total int64) {
			if total <= 0 {
				return
			}
			p := int(written * 100 / total)
			if p == lastPercent {
				return
			}
			lastPercent = p
			d.eventBus.DownloadProgress(t.req.ID, float64(p))
		})
		cerr := tmp.Close()
		if err == nil {
			err = cerr
		}
		if err == nil {
			err = os.Rename(tmp.Name(), t.target)
		}
		if err != nil {
			_ = os.Remove(tmp.Name())
			if ctx.Err() != nil {
				return retry.NewPermanentError(errors.Join(ErrCancelled, err))
			}
			return err
		}
		return nil
	}, retry.WithContext(ctx), retry.WithRetries(downloadRetries), retry.WithDelayFunc(d.delay))
}
