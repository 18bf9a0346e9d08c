package cli

import (
	"fmt"

	"github.com/Makepad-fr/wegive/internal/model"
	"github.com/Makepad-fr/wegive/internal/report"
	"github.com/Makepad-fr/wegive/internal/ui"
	"github.com/Makepad-fr/wegive/internal/view"
)

// listLines renders the ls panel. A non-empty only keeps items in that status.
func listLines(items []model.SurplusItem, group bool, only model.Status) []string {
	t := ui.Current()
	s := report.Summarize(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		ui.C(t.Title, "WeGive marketplace"),
		ui.C(t.Success, t.SymAvailable), s.Available,
		ui.C(t.Pending, t.SymClaimed), s.Claimed,
		ui.C(t.Muted, t.SymCollected), s.Collected,
		ui.C(t.Accent, "Total"), s.Items,
	)

	lines := []string{
		header,
		ui.C(t.Muted, ui.ProgressBar(s.Collected, s.Items, 28)+" collected"),
		"",
	}
	switch {
	case only != "":
		lines = append(lines, statusLines(items, only)...)
	case group:
		lines = append(lines, groupLines(items)...)
	default:
		lines = append(lines, flatLines(items, 0)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: claim with `wegive accept <index>`"))
	return lines
}

// flatLines renders one line per item; offset shifts the shown index.
func flatLines(items []model.SurplusItem, offset int) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, view.EmptyPlaceholder)}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", offset+i+1)
		color, sym := t.Status(it.Status)
		title := truncate(it.Description, 48)
		meta := joinNonEmpty(" · ",
			fmt.Sprintf("×%d", it.Quantity),
			expiryText(it),
			it.DonorName,
		)
		out = append(out, fmt.Sprintf("%s %s %s  %s  %s",
			ui.C(ui.Dim, idx), ui.C(color, sym), title, ui.C(t.Muted, meta), ui.C(ui.Dim, it.ID)))
	}
	return out
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func expiryText(it model.SurplusItem) string {
	if it.ExpiryDate == "" {
		return ""
	}
	return "exp " + it.ExpiryLabel()
}

// groupLines keeps ls indexes stable across groups so they can be passed
// to accept and collect.
func groupLines(items []model.SurplusItem) []string {
	t := ui.Current()
	var lines []string
	for gi, st := range []model.Status{model.StatusAvailable, model.StatusClaimed, model.StatusCollected} {
		if gi > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, ui.C(t.Accent, string(st)))
		lines = append(lines, statusLines(items, st)...)
	}
	return lines
}

// statusLines lists the items in status st under their ls index.
func statusLines(items []model.SurplusItem, st model.Status) []string {
	var lines []string
	for i, it := range items {
		if it.Status == st {
			lines = append(lines, flatLines([]model.SurplusItem{it}, i)...)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	}
	return lines
}
