// Package catalog owns the session's authoritative list of surplus items.
//
// Every mutation is persisted before it becomes visible, and subscribers are
// notified with a fresh snapshot afterwards. If saving fails the mutation is
// rolled back, so the in-memory and persisted forms never diverge.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/wegive/internal/geocode"
	"github.com/Makepad-fr/wegive/internal/model"
	"github.com/Makepad-fr/wegive/internal/store"
)

var log = logrus.WithField("prefix", "catalog")

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateID       = errors.New("duplicate item id")
	ErrInvalidDraft      = errors.New("invalid donation")
)

// Listener receives a snapshot of the catalog after each mutation.
type Listener func(items []model.SurplusItem)

type Catalog struct {
	mu        sync.RWMutex
	items     []model.SurplusItem
	index     map[string]int
	store     store.Items
	gateway   geocode.Gateway
	validate  *validator.Validate
	newID     func() string
	listeners []Listener
}

type Option func(*Catalog)

// WithIDGenerator replaces the default "item-<uuid>" ids.
func WithIDGenerator(f func() string) Option {
	return func(c *Catalog) { c.newID = f }
}

func WithValidator(v *validator.Validate) Option {
	return func(c *Catalog) { c.validate = v }
}

// New loads the persisted items and returns a ready catalog.
func New(ctx context.Context, s store.Items, g geocode.Gateway, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		store:    s,
		gateway:  g,
		validate: validator.New(),
		newID:    func() string { return "item-" + uuid.NewString() },
	}
	for _, o := range opts {
		o(c)
	}

	items, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.items = make([]model.SurplusItem, 0, len(items))
	c.index = make(map[string]int, len(items))
	for _, it := range items {
		if _, dup := c.index[it.ID]; dup {
			log.WithField("id", it.ID).Warn("skipping duplicate id in store")
			continue
		}
		if !it.Status.Valid() {
			it.Status = model.StatusAvailable
		}
		c.index[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	log.WithField("count", len(c.items)).Info("catalog loaded")
	return c, nil
}

// Subscribe registers l for every future mutation.
func (c *Catalog) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Submit validates and geocodes the draft, then appends it as a new Available item.
// On geocoding failure nothing changes and the error wraps geocode.ErrGeocodingFailed.
func (c *Catalog) Submit(ctx context.Context, d model.Draft) (model.SurplusItem, error) {
	item, err := c.Prepare(ctx, d)
	if err != nil {
		return model.SurplusItem{}, err
	}
	return c.Commit(ctx, item)
}

// Prepare is the side-effect free half of Submit: validation and geocoding.
func (c *Catalog) Prepare(ctx context.Context, d model.Draft) (model.SurplusItem, error) {
	item := d.Normalize()
	if err := c.validate.Struct(model.Draft{
		Description:   item.Description,
		PickupAddress: item.PickupAddress,
	}); err != nil {
		return model.SurplusItem{}, fmt.Errorf("%w: %s", ErrInvalidDraft, err)
	}

	loc, err := geocode.Resolve(ctx, c.gateway, item.PickupAddress)
	if err != nil {
		return model.SurplusItem{}, err
	}
	item.Location = &loc
	return item, nil
}

// Commit appends a prepared item. An empty id gets a fresh one.
func (c *Catalog) Commit(ctx context.Context, item model.SurplusItem) (model.SurplusItem, error) {
	c.mu.Lock()

	if item.ID == "" {
		item.ID = c.newID()
	}
	if _, dup := c.index[item.ID]; dup {
		c.mu.Unlock()
		return model.SurplusItem{}, fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
	}
	item.Status = model.StatusAvailable
	item = item.Clone()

	c.items = append(c.items, item)
	if err := c.store.Save(ctx, c.items); err != nil {
		c.items = c.items[:len(c.items)-1]
		c.mu.Unlock()
		return model.SurplusItem{}, err
	}
	c.index[item.ID] = len(c.items) - 1
	snap, listeners := c.snapshotLocked()
	c.mu.Unlock()

	log.WithFields(logrus.Fields{"id": item.ID, "quantity": item.Quantity}).Info("item submitted")
	notify(listeners, snap)
	return item.Clone(), nil
}

// Accept claims an Available item. Claiming an already claimed or collected
// item is a no-op that returns it unchanged.
func (c *Catalog) Accept(ctx context.Context, id string) (model.SurplusItem, error) {
	return c.advance(ctx, id, model.StatusClaimed)
}

// Collect marks a Claimed item as collected. Available items must be claimed first.
func (c *Catalog) Collect(ctx context.Context, id string) (model.SurplusItem, error) {
	return c.advance(ctx, id, model.StatusCollected)
}

func (c *Catalog) advance(ctx context.Context, id string, to model.Status) (model.SurplusItem, error) {
	c.mu.Lock()

	i, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return model.SurplusItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	cur := c.items[i]
	if cur.Status.Reached(to) {
		c.mu.Unlock()
		return cur.Clone(), nil
	}
	if !cur.Status.CanAdvanceTo(to) {
		c.mu.Unlock()
		return model.SurplusItem{}, fmt.Errorf("%w: %s is %s, cannot become %s", ErrInvalidTransition, id, cur.Status, to)
	}

	c.items[i].Status = to
	if err := c.store.Save(ctx, c.items); err != nil {
		c.items[i].Status = cur.Status
		c.mu.Unlock()
		return model.SurplusItem{}, err
	}
	updated := c.items[i].Clone()
	snap, listeners := c.snapshotLocked()
	c.mu.Unlock()

	log.WithFields(logrus.Fields{"id": id, "from": cur.Status, "to": to}).Info("status changed")
	notify(listeners, snap)
	return updated, nil
}

// List returns a copy of the items in insertion order.
func (c *Catalog) List() []model.SurplusItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, _ := c.snapshotLocked()
	return snap
}

func (c *Catalog) FindByID(id string) (model.SurplusItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return model.SurplusItem{}, false
	}
	return c.items[i].Clone(), true
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Catalog) snapshotLocked() ([]model.SurplusItem, []Listener) {
	out := make([]model.SurplusItem, len(c.items))
	for i, it := range c.items {
		out[i] = it.Clone()
	}
	return out, append([]Listener(nil), c.listeners...)
}

func notify(listeners []Listener, snap []model.SurplusItem) {
	for _, l := range listeners {
		l(snap)
	}
}
