// Package tui is the full-screen terminal front end of wegive.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/wegive/internal/app"
	"github.com/Makepad-fr/wegive/internal/model"
	"github.com/Makepad-fr/wegive/internal/nav"
	"github.com/Makepad-fr/wegive/internal/tui/asciimap"
	"github.com/Makepad-fr/wegive/internal/ui"
	"github.com/Makepad-fr/wegive/internal/view"
)

var log = logrus.WithField("prefix", "tui")

// preparedMsg carries a geocoded submission back to the event loop.
type preparedMsg struct {
	item model.SurplusItem
	err  error
}

type Model struct {
	ctx    context.Context
	ctl    *app.Controller
	widget *asciimap.Widget
	keys   keyMap
	help   help.Model

	list     list.Model
	form     donationForm
	estimate string

	notice     *app.Notice
	submitting bool
	width      int
	height     int
}

// New builds the model. The widget must already be attached to ctl.
func New(ctx context.Context, ctl *app.Controller, widget *asciimap.Widget) Model {
	l := list.New(nil, cardDelegate{}, 74, 14)
	l.Title = "Marketplace"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("donation", "donations")

	m := Model{
		ctx:    ctx,
		ctl:    ctl,
		widget: widget,
		keys:   defaultKeys(),
		help:   help.New(),
		list:   l,
		form:   newDonationForm(),
		width:  80,
		height: 24,
	}
	m.syncList()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) syncList() {
	m.list.SetItems(cardItems(m.ctl.Marketplace()))
}

// dispatch runs cmd and keeps whatever notice it produced.
func (m *Model) dispatch(cmd app.Command) app.Outcome {
	out, err := m.ctl.Dispatch(m.ctx, cmd)
	if err != nil && !app.IsUserFailure(err) {
		log.WithError(err).Error(cmd.Kind)
	}
	if out.Notice != nil {
		m.notice = out.Notice
	}
	m.syncList()
	return out
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(max(msg.Width-6, 10), max(msg.Height-10, 4))
		m.widget.SetSize(msg.Width-8, msg.Height-12)
		if m.ctl.Section() == nav.NGO {
			m.dispatch(app.NavigateTo(nav.NGO))
		}
		return m, nil

	case preparedMsg:
		return m.commit(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.notice != nil && m.notice.Blocking {
			if key.Matches(msg, m.keys.Dismiss) {
				m.notice = nil
			}
			return m, nil
		}
		m.notice = nil

		if _, open := m.ctl.Detail(); open {
			return m.updateDetail(msg)
		}
		if key.Matches(msg, m.keys.NextTab) {
			return m.step(1), nil
		}
		if key.Matches(msg, m.keys.PrevTab) {
			return m.step(-1), nil
		}

		switch m.ctl.Section() {
		case nav.Donor:
			return m.updateForm(msg)
		case nav.Marketplace:
			return m.updateMarketplace(msg)
		case nav.NGO:
			return m.updateMap(msg)
		case nav.Impact:
			return m.updateImpact(msg)
		}
	}

	if m.ctl.Section() == nav.Donor {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m Model) step(delta int) Model {
	m.ctl.StepSection(delta)
	m.syncList()
	return m
}

// global handles keys shared by every section except the form, which needs
// digits and letters for typing.
func (m Model) global(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Jump):
		i := int(msg.String()[0] - '1')
		m.dispatch(app.NavigateTo(nav.Sections[i]))
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Enter):
		if m.form.onLastDonationField() {
			return m.submit()
		}
		m.form.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.form.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.form.move(-1)
		return m, nil
	}

	cmd := m.form.update(msg)
	if m.form.onEstimator() {
		m.estimate = ""
		if out := m.dispatch(app.Estimate(m.form.estimatorValues())); out.Estimate != nil {
			m.estimate = out.Estimate.String()
		}
	}
	return m, cmd
}

// submit geocodes off the event loop; the result comes back as preparedMsg.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	ctx, ctl, d := m.ctx, m.ctl, m.form.draft()
	return m, func() tea.Msg {
		it, err := ctl.PrepareSubmission(ctx, d)
		return preparedMsg{item: it, err: err}
	}
}

// commit applies a prepared submission whatever section is visible now.
func (m Model) commit(msg preparedMsg) Model {
	m.submitting = false
	if msg.err != nil {
		m.notice, _ = app.NoticeFor(msg.err)
		return m
	}
	out, err := m.ctl.CommitSubmission(m.ctx, msg.item)
	m.notice = out.Notice
	if err == nil {
		m.form.reset()
		m.estimate = ""
	}
	m.syncList()
	return m
}

func (m Model) updateMarketplace(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() != list.Filtering {
		if mm, cmd, done := m.global(msg); done {
			return mm, cmd
		}
		if key.Matches(msg, m.keys.Open) {
			if it, ok := m.list.SelectedItem().(cardItem); ok {
				m.dispatch(app.Open(it.card.ID))
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateMap(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if mm, cmd, done := m.global(msg); done {
		return mm, cmd
	}
	switch {
	case key.Matches(msg, m.keys.Left):
		m.widget.Select(-1)
	case key.Matches(msg, m.keys.Right):
		m.widget.Select(1)
	case key.Matches(msg, m.keys.Open):
		if mk, ok := m.widget.Selected(); ok {
			m.dispatch(app.Open(mk.ID))
		}
	}
	return m, nil
}

func (m Model) updateImpact(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if mm, cmd, done := m.global(msg); done {
		return mm, cmd
	}
	if key.Matches(msg, m.keys.Export) {
		m.dispatch(app.Export())
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d, _ := m.ctl.Detail()
	switch {
	case key.Matches(msg, m.keys.Close):
		m.dispatch(app.Close())
	case key.Matches(msg, m.keys.Accept) && d.CanAccept:
		m.dispatch(app.Accept(d.Item.ID))
	case key.Matches(msg, m.keys.Collect) && d.CanCollect:
		m.dispatch(app.Collect(d.Item.ID))
	}
	return m, nil
}

func (m Model) View() string {
	body := m.sectionView()
	bindings := m.helpKeys()
	if d, open := m.ctl.Detail(); open {
		body = detailView(d)
		bindings = m.detailKeys(d)
	}
	if m.notice != nil && m.notice.Blocking {
		body = alertStyle.Render(errorStyle.Render(m.notice.Text) + "\n\n" + helpStyle.Render("enter to dismiss"))
		bindings = []key.Binding{m.keys.Dismiss}
	}

	parts := []string{m.tabs(), "", body, ""}
	if m.notice != nil && !m.notice.Blocking {
		parts = append(parts, accentStyle.Render(m.notice.Text))
	}
	parts = append(parts, m.help.ShortHelpView(bindings))
	return panelString(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) tabs() string {
	cur := m.ctl.Section()
	tabs := make([]string, 0, len(nav.Sections))
	for i, s := range nav.Sections {
		label := fmt.Sprintf("%d %s", i+1, s.Title())
		if s == cur {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return titleStyle.Render("WeGive") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) sectionView() string {
	switch m.ctl.Section() {
	case nav.Donor:
		s := m.form.view()
		if m.submitting {
			s += "\n" + pendingStyle.Render("Locating pickup address…")
		}
		if m.estimate != "" {
			s += "\n" + successStyle.Render(m.estimate)
		}
		return s
	case nav.Marketplace:
		if m.ctl.Marketplace().Empty {
			return titleStyle.Render("Marketplace") + "\n\n" + mutedStyle.Render(view.EmptyPlaceholder)
		}
		return m.list.View()
	case nav.NGO:
		return m.mapView()
	case nav.Impact:
		return m.impactView()
	}
	return ""
}

func (m Model) mapView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Available pickups") + "\n")
	b.WriteString(panelString(m.widget.Render()) + "\n")
	if mk, ok := m.widget.Selected(); ok {
		b.WriteString(fmt.Sprintf("%s %s  %s", successStyle.Render("◉"), mk.Title, mutedStyle.Render(mk.Position.String())))
	} else {
		b.WriteString(mutedStyle.Render("No available donations with a known location."))
	}
	return b.String()
}

func (m Model) impactView() string {
	s := m.ctl.Summary()
	lines := []string{
		titleStyle.Render("Impact"),
		"",
		fmt.Sprintf("%s %d   %s %d   %s %d   %s %d",
			successStyle.Render("Available"), s.Available,
			pendingStyle.Render("Claimed"), s.Claimed,
			mutedStyle.Render("Collected"), s.Collected,
			accentStyle.Render("Total"), s.Items),
		mutedStyle.Render(ui.ProgressBar(s.Collected, s.Items, 28)) + " collected",
		"",
		fmt.Sprintf("Food diverted from waste: %s kg", titleStyle.Render(fmt.Sprintf("%.2f", s.WasteDivertedK))),
		fmt.Sprintf("Carbon saved: %s kg CO2e", titleStyle.Render(fmt.Sprintf("%.2f", s.CarbonSavedK))),
	}
	return strings.Join(lines, "\n")
}

func detailView(d view.DetailModel) string {
	it := d.Item
	lines := []string{
		titleStyle.Render(it.Description),
		"",
		"Donor: " + it.DonorName,
		fmt.Sprintf("Quantity: %d units", it.Quantity),
		"Expiry: " + it.ExpiryLabel(),
		"Pickup Address: " + it.PickupAddress,
		"Status: " + badge(it.Status),
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) helpKeys() []key.Binding {
	k := m.keys
	switch m.ctl.Section() {
	case nav.Donor:
		return []key.Binding{k.Down, k.Enter, k.Submit, k.NextTab}
	case nav.Marketplace:
		return []key.Binding{k.Open, k.Jump, k.NextTab, k.Quit}
	case nav.NGO:
		return []key.Binding{k.Left, k.Right, k.Open, k.Jump, k.Quit}
	case nav.Impact:
		return []key.Binding{k.Export, k.Jump, k.NextTab, k.Quit}
	}
	return nil
}

func (m Model) detailKeys(d view.DetailModel) []key.Binding {
	var out []key.Binding
	if d.CanAccept {
		out = append(out, m.keys.Accept)
	}
	if d.CanCollect {
		out = append(out, m.keys.Collect)
	}
	return append(out, m.keys.Close)
}
