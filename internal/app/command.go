package app

import (
	"fmt"

	"github.com/Makepad-fr/wegive/internal/model"
	"github.com/Makepad-fr/wegive/internal/nav"
)

// Kind enumerates the user actions the controller understands.
type Kind int

const (
	Navigate Kind = iota
	SubmitDonation
	AcceptDonation
	CollectDonation
	EstimateSurplus
	ExportReport
	OpenDetail
	CloseDetail
)

var kindNames = map[Kind]string{
	Navigate:        "navigate",
	SubmitDonation:  "submit",
	AcceptDonation:  "accept",
	CollectDonation: "collect",
	EstimateSurplus: "estimate",
	ExportReport:    "export",
	OpenDetail:      "open-detail",
	CloseDetail:     "close-detail",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is one dispatched action. Only the fields its Kind needs are read.
type Command struct {
	Kind    Kind
	Section nav.Section
	Draft   model.Draft
	ID      string
	Planned string
	Actual  string
}

func NavigateTo(s nav.Section) Command { return Command{Kind: Navigate, Section: s} }
func Submit(d model.Draft) Command     { return Command{Kind: SubmitDonation, Draft: d} }
func Accept(id string) Command         { return Command{Kind: AcceptDonation, ID: id} }
func Collect(id string) Command        { return Command{Kind: CollectDonation, ID: id} }
func Estimate(planned, actual string) Command {
	return Command{Kind: EstimateSurplus, Planned: planned, Actual: actual}
}
func Export() Command        { return Command{Kind: ExportReport} }
func Open(id string) Command { return Command{Kind: OpenDetail, ID: id} }
func Close() Command         { return Command{Kind: CloseDetail} }
