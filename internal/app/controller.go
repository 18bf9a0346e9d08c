// Package app holds the session: one controller that owns the catalog and
// every view, and applies user commands to them one at a time.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/wegive/internal/catalog"
	"github.com/Makepad-fr/wegive/internal/estimate"
	"github.com/Makepad-fr/wegive/internal/model"
	"github.com/Makepad-fr/wegive/internal/nav"
	"github.com/Makepad-fr/wegive/internal/report"
	"github.com/Makepad-fr/wegive/internal/view"
)

var log = logrus.WithField("prefix", "app")

// Outcome is the visible result of a command.
type Outcome struct {
	Notice   *Notice
	Item     *model.SurplusItem
	Estimate *estimate.Result
	// Location is where an exported report was published.
	Location string
}

type Controller struct {
	mu sync.Mutex

	catalog *catalog.Catalog
	nav     *nav.Controller
	mapView *view.MapView
	detail  view.Detail
	market  view.MarketplaceModel
	items   []model.SurplusItem
	sink    report.Sink
	now     func() time.Time
}

type Option func(*Controller)

// WithClock fixes the time used to name exported reports.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New wires the views to c and renders them once from the loaded catalog.
// mv may wrap a nil widget; sink may be nil when exporting is not offered.
func New(cat *catalog.Catalog, mv *view.MapView, sink report.Sink, opts ...Option) *Controller {
	if mv == nil {
		mv = view.NewMapView(nil, 0)
	}
	c := &Controller{
		catalog: cat,
		mapView: mv,
		sink:    sink,
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	c.nav = nav.New(mv.Activate)
	cat.Subscribe(c.render)
	c.render(cat.List())
	return c
}

// render is the catalog listener. Both views are replaced in full.
func (c *Controller) render(items []model.SurplusItem) {
	c.items = items
	c.market = view.Marketplace(items)
	c.mapView.Refresh(items)
}

// Dispatch applies one command. Failures come back both as an error and as
// a notice on the outcome.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out, err := c.dispatch(ctx, cmd)
	if err != nil {
		out.Notice, _ = NoticeFor(err)
		log.WithError(err).WithField("command", cmd.Kind).Warn("command failed")
	}
	return out, err
}

func (c *Controller) dispatch(ctx context.Context, cmd Command) (Outcome, error) {
	switch cmd.Kind {
	case Navigate:
		return Outcome{}, c.nav.Navigate(cmd.Section)

	case SubmitDonation:
		it, err := c.catalog.Submit(ctx, cmd.Draft)
		if err != nil {
			return Outcome{}, err
		}
		return submitted(it), nil

	case AcceptDonation:
		it, err := c.catalog.Accept(ctx, cmd.ID)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Item: &it, Notice: info(fmt.Sprintf("Accepted %q. Please arrange pickup.", it.Description))}, nil

	case CollectDonation:
		it, err := c.catalog.Collect(ctx, cmd.ID)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Item: &it, Notice: info(fmt.Sprintf("%q marked as collected.", it.Description))}, nil

	case EstimateSurplus:
		r, ok := estimate.EstimateText(cmd.Planned, cmd.Actual)
		if !ok {
			return Outcome{}, nil
		}
		return Outcome{Estimate: &r}, nil

	case ExportReport:
		return c.export(ctx)

	case OpenDetail:
		if !c.detail.Open(c.catalog, cmd.ID) {
			return Outcome{}, fmt.Errorf("%w: %s", catalog.ErrItemNotFound, cmd.ID)
		}
		return Outcome{}, nil

	case CloseDetail:
		c.detail.Close()
		return Outcome{}, nil
	}
	return Outcome{}, fmt.Errorf("unsupported command %s", cmd.Kind)
}

func (c *Controller) export(ctx context.Context) (Outcome, error) {
	data, err := report.CSV(c.catalog.List())
	if err != nil {
		return Outcome{}, err
	}
	if c.sink == nil {
		return Outcome{}, fmt.Errorf("no report destination configured")
	}
	loc, err := c.sink.Publish(ctx, report.Filename(c.now()), data)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Location: loc, Notice: info("Report saved to " + loc)}, nil
}

func submitted(it model.SurplusItem) Outcome {
	return Outcome{Item: &it, Notice: info(fmt.Sprintf("Listed %q for pickup.", it.Description))}
}

// PrepareSubmission validates and geocodes a draft without touching the
// session, so it can run off the UI event loop.
func (c *Controller) PrepareSubmission(ctx context.Context, d model.Draft) (model.SurplusItem, error) {
	return c.catalog.Prepare(ctx, d)
}

// CommitSubmission stores a prepared item, whatever section is visible by then.
func (c *Controller) CommitSubmission(ctx context.Context, it model.SurplusItem) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	saved, err := c.catalog.Commit(ctx, it)
	if err != nil {
		n, _ := NoticeFor(err)
		return Outcome{Notice: n}, err
	}
	return submitted(saved), nil
}

// Section is the visible section.
func (c *Controller) Section() nav.Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nav.Current()
}

// StepSection moves delta tabs from the visible section, wrapping around.
func (c *Controller) StepSection(delta int) nav.Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nav.Step(delta)
}

func (c *Controller) Marketplace() view.MarketplaceModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.market
}

// Detail renders the open modal, if any.
func (c *Controller) Detail() (view.DetailModel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detail.Render(c.catalog)
}

func (c *Controller) Markers() []view.Marker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mapView.Markers()
}

// AttachMap hands the map view its widget once the UI has created it.
func (c *Controller) AttachMap(w view.MapWidget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mapView.Attach(w)
}

func (c *Controller) Summary() report.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return report.Summarize(c.items)
}

func (c *Controller) Items() []model.SurplusItem {
	return c.catalog.List()
}
