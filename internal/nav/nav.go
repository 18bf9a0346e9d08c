// Package nav tracks which section of the app is visible.
package nav

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "nav")

var ErrUnknownSection = errors.New("unknown section")

type Section string

const (
	Donor       Section = "donor"
	Marketplace Section = "marketplace"
	NGO         Section = "ngo"
	Impact      Section = "impact"
)

// Sections lists every section in tab order.
var Sections = []Section{Donor, Marketplace, NGO, Impact}

func (s Section) Valid() bool {
	for _, v := range Sections {
		if v == s {
			return true
		}
	}
	return false
}

// Title is the label shown in the tab bar.
func (s Section) Title() string {
	switch s {
	case Donor:
		return "Donate"
	case Marketplace:
		return "Marketplace"
	case NGO:
		return "Map"
	case Impact:
		return "Impact"
	}
	return string(s)
}

// Controller is a state machine over Sections. Exactly one section is visible.
type Controller struct {
	current Section
	onMap   func()
}

// New starts on the donor section. onMap runs every time the map section is
// entered; it may be nil.
func New(onMap func()) *Controller {
	return &Controller{current: Donor, onMap: onMap}
}

func (c *Controller) Current() Section { return c.current }

func (c *Controller) Visible(s Section) bool { return c.current == s }

// Navigate shows s. Unknown sections leave the state unchanged.
func (c *Controller) Navigate(s Section) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	c.current = s
	log.WithField("section", s).Debug("navigate")
	if s == NGO && c.onMap != nil {
		c.onMap()
	}
	return nil
}

// Step moves delta tabs from the current section, wrapping around.
func (c *Controller) Step(delta int) Section {
	i := 0
	for j, s := range Sections {
		if s == c.current {
			i = j
		}
	}
	n := len(Sections)
	next := Sections[((i+delta)%n+n)%n]
	_ = c.Navigate(next)
	return next
}
