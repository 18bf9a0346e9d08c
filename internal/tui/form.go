package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/wegive/internal/model"
)

const (
	fieldDescription = iota
	fieldQuantity
	fieldExpiry
	fieldAddress
	fieldDonor
	fieldPlanned
	fieldActual
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Item description",
	"Quantity",
	"Best before (YYYY-MM-DD)",
	"Pickup address",
	"Donor name",
	"Planned pax",
	"Actual attendance",
}

// donationForm holds the donor inputs and the surplus estimator inputs.
type donationForm struct {
	inputs []textinput.Model
	focus  int
}

func newDonationForm() donationForm {
	f := donationForm{inputs: make([]textinput.Model, fieldCount)}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 200
		ti.Placeholder = fieldLabels[i]
		f.inputs[i] = ti
	}
	f.inputs[fieldQuantity].CharLimit = 9
	f.inputs[fieldPlanned].CharLimit = 9
	f.inputs[fieldActual].CharLimit = 9
	f.inputs[fieldExpiry].CharLimit = 10
	f.inputs[0].Focus()
	return f
}

func (f *donationForm) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = ((f.focus+delta)%fieldCount + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f donationForm) onLastDonationField() bool { return f.focus == fieldDonor }

func (f donationForm) onEstimator() bool { return f.focus == fieldPlanned || f.focus == fieldActual }

func (f donationForm) draft() model.Draft {
	return model.Draft{
		Description:   f.inputs[fieldDescription].Value(),
		Quantity:      f.inputs[fieldQuantity].Value(),
		ExpiryDate:    f.inputs[fieldExpiry].Value(),
		PickupAddress: f.inputs[fieldAddress].Value(),
		DonorName:     f.inputs[fieldDonor].Value(),
	}
}

func (f donationForm) estimatorValues() (string, string) {
	return f.inputs[fieldPlanned].Value(), f.inputs[fieldActual].Value()
}

func (f *donationForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.inputs[f.focus].Blur()
	f.focus = 0
	f.inputs[0].Focus()
}

func (f *donationForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f donationForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("List surplus food"))
	b.WriteString("\n\n")
	for i := range f.inputs {
		if i == fieldPlanned {
			b.WriteString("\n")
			b.WriteString(titleStyle.Render("Surplus estimator"))
			b.WriteString("\n\n")
		}
		label := fieldLabels[i]
		if i == f.focus {
			label = accentStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		b.WriteString(label + "\n" + f.inputs[i].View() + "\n")
	}
	return b.String()
}
