package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/wegive/internal/model"
	"github.com/Makepad-fr/wegive/internal/view"
)

// cardItem adapts a marketplace card to bubbles/list.
type cardItem struct {
	card view.Card
}

func (c cardItem) Title() string { return c.card.Description }
func (c cardItem) Description() string {
	return fmt.Sprintf("%d units · %s", c.card.Quantity, c.card.Donor)
}
func (c cardItem) FilterValue() string { return c.card.Description + " " + c.card.Donor }

// cardDelegate renders a card on two lines.
type cardDelegate struct{}

func (d cardDelegate) Height() int                               { return 2 }
func (d cardDelegate) Spacing() int                              { return 1 }
func (d cardDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(cardItem)
	if !ok {
		return
	}
	c := it.card
	title := titleStyle.Render(c.Description)
	if c.Status == model.StatusCollected {
		title = collectedText.Render(c.Description)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s  %s\n", prefix, title, badge(c.Status))
	fmt.Fprintf(w, "  %s", mutedStyle.Render(fmt.Sprintf("%d units · expires %s · %s", c.Quantity, c.Expiry, c.Donor)))
}

func cardItems(mm view.MarketplaceModel) []list.Item {
	out := make([]list.Item, 0, len(mm.Cards))
	for _, c := range mm.Cards {
		out = append(out, cardItem{card: c})
	}
	return out
}
