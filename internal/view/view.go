// Package view derives what each section shows from a catalog snapshot.
// Views never mutate the catalog; they are rebuilt in full after every change.
package view

import (
	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/wegive/internal/model"
)

var log = logrus.WithField("prefix", "view")

// Finder looks up a single item. *catalog.Catalog satisfies it.
type Finder interface {
	FindByID(id string) (model.SurplusItem, bool)
}
