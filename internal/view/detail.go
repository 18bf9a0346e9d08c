package view

import "github.com/Makepad-fr/wegive/internal/model"

// Detail is the modal showing one item. Zero value is closed.
type Detail struct {
	id string
}

// DetailModel is what the open modal displays.
type DetailModel struct {
	Item       model.SurplusItem
	CanAccept  bool
	CanCollect bool
}

// Open shows id. Unknown ids leave the modal as it was.
func (d *Detail) Open(f Finder, id string) bool {
	if _, ok := f.FindByID(id); !ok {
		log.WithField("id", id).Warn("detail requested for unknown item")
		return false
	}
	d.id = id
	return true
}

func (d *Detail) Close() { d.id = "" }

func (d *Detail) IsOpen() bool { return d.id != "" }

func (d *Detail) ID() string { return d.id }

// Render reads the current state of the open item. Accept is offered only
// while the item is Available.
func (d *Detail) Render(f Finder) (DetailModel, bool) {
	if d.id == "" {
		return DetailModel{}, false
	}
	it, ok := f.FindByID(d.id)
	if !ok {
		return DetailModel{}, false
	}
	return DetailModel{
		Item:       it,
		CanAccept:  it.Status == model.StatusAvailable,
		CanCollect: it.Status == model.StatusClaimed,
	}, true
}
