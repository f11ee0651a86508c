package views

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

type DashboardSource interface {
	Stats(ctx context.Context) (models.DashboardStats, error)
	WeeklyViews(ctx context.Context) ([]models.WeeklyViews, error)
	ProjectsTimeline(ctx context.Context) ([]models.ProjectsTimeline, error)
}

type DashboardData struct {
	Stats    models.DashboardStats
	Weekly   []models.WeeklyViews
	Timeline []models.ProjectsTimeline
}

// Dashboard loads its three parts together. It shows either all of them
// or an error, never a mix.
type Dashboard struct {
	src    DashboardSource
	notify Notifier

	mu      sync.Mutex
	epoch   uint64
	data    *DashboardData
	loading bool
	err     error
}

func NewDashboard(src DashboardSource, notify Notifier) *Dashboard {
	return &Dashboard{src: src, notify: notify}
}

// Load fetches all parts. A load that finishes after a newer one has
// started returns its own result but leaves the view alone.
func (d *Dashboard) Load(ctx context.Context) (DashboardData, error) {
	d.mu.Lock()
	d.epoch++
	epoch := d.epoch
	d.loading = true
	d.mu.Unlock()

	var data DashboardData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Stats, err = d.src.Stats(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Weekly, err = d.src.WeeklyViews(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Timeline, err = d.src.ProjectsTimeline(gctx)
		return err
	})
	err := g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if epoch != d.epoch {
		if err != nil {
			return DashboardData{}, err
		}
		return data, nil
	}
	d.loading = false
	if err != nil {
		d.data, d.err = nil, err
		Failed(d.notify, "Failed to load dashboard data", err)
		return DashboardData{}, err
	}
	d.data, d.err = &data, nil
	return data, nil
}

func (d *Dashboard) Data() (DashboardData, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data == nil {
		return DashboardData{}, false
	}
	return *d.data, true
}

func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *Dashboard) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}
