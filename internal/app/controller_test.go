package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Makepad-fr/wegive/internal/catalog"
	"github.com/Makepad-fr/wegive/internal/geocode"
	"github.com/Makepad-fr/wegive/internal/model"
	"github.com/Makepad-fr/wegive/internal/nav"
	"github.com/Makepad-fr/wegive/internal/report"
	"github.com/Makepad-fr/wegive/internal/store"
	"github.com/Makepad-fr/wegive/internal/view"
)

type memSink struct {
	name string
	data []byte
	err  error
}

func (m *memSink) Publish(_ context.Context, name string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.name, m.data = name, data
	return "/tmp/" + name, nil
}

type countingWidget struct {
	resized int
	markers int
}

func (w *countingWidget) Resize()                    { w.resized++ }
func (w *countingWidget) ClearMarkers()              { w.markers = 0 }
func (w *countingWidget) AddMarker(view.Marker)      { w.markers++ }
func (w *countingWidget) SetCenter(model.Coordinate) {}
func (w *countingWidget) SetZoom(int)                {}
func (w *countingWidget) FitBounds(view.Bounds)      {}

type ControllerTestSuite struct {
	suite.Suite
	ctx    context.Context
	kv     *store.Memory
	sink   *memSink
	widget *countingWidget
	ctl    *Controller
}

func (s *ControllerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.kv = store.NewMemory()
	s.sink = &memSink{}
	s.widget = &countingWidget{}

	gw := geocode.NewStaticGateway(map[string]model.Coordinate{
		"1 Raffles Place": {Lat: 1.2840, Lng: 103.8515},
		"10 Bayfront Ave": {Lat: 1.2834, Lng: 103.8607},
	})
	cat, err := catalog.New(s.ctx, store.NewItemStore(s.kv), gw)
	s.Require().NoError(err)

	clock := func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }
	s.ctl = New(cat, view.NewMapView(s.widget, 0), s.sink, WithClock(clock))
}

func (s *ControllerTestSuite) submit(desc, addr string) model.SurplusItem {
	out, err := s.ctl.Dispatch(s.ctx, Submit(model.Draft{
		Description: desc, Quantity: "10", ExpiryDate: "2026-10-19", PickupAddress: addr, DonorName: "Hotel",
	}))
	s.Require().NoError(err)
	s.Require().NotNil(out.Item)
	return *out.Item
}

func (s *ControllerTestSuite) TestStartsOnDonorWithEmptyMarketplace() {
	s.Equal(nav.Donor, s.ctl.Section())
	s.True(s.ctl.Marketplace().Empty)
}

func (s *ControllerTestSuite) TestSubmitRendersViews() {
	it := s.submit("Rice", "1 raffles place")

	s.Equal(model.StatusAvailable, it.Status)
	s.Len(s.ctl.Marketplace().Cards, 1)
	s.Len(s.ctl.Markers(), 1)
	s.Equal(1, s.widget.markers)
}

func (s *ControllerTestSuite) TestSubmitUnresolvable() {
	out, err := s.ctl.Dispatch(s.ctx, Submit(model.Draft{Description: "Rice", PickupAddress: "Atlantis"}))

	s.ErrorIs(err, geocode.ErrGeocodingFailed)
	s.Require().NotNil(out.Notice)
	s.True(out.Notice.Blocking)
	s.Equal("Could not find the address. Please check and try again.", out.Notice.Text)
	s.Empty(s.ctl.Items())
	_, ok, _ := s.kv.Get(s.ctx, store.ItemsKey)
	s.False(ok)
}

func (s *ControllerTestSuite) TestAcceptRemovesMarkerAndUpdatesDetail() {
	a := s.submit("Rice", "1 Raffles Place")
	s.submit("Bread", "10 Bayfront Ave")
	s.Len(s.ctl.Markers(), 2)

	_, err := s.ctl.Dispatch(s.ctx, Open(a.ID))
	s.Require().NoError(err)
	d, ok := s.ctl.Detail()
	s.Require().True(ok)
	s.True(d.CanAccept)

	out, err := s.ctl.Dispatch(s.ctx, Accept(a.ID))
	s.Require().NoError(err)
	s.Equal(model.StatusClaimed, out.Item.Status)
	s.Len(s.ctl.Markers(), 1)

	d, ok = s.ctl.Detail()
	s.Require().True(ok)
	s.False(d.CanAccept)
	s.Equal(model.StatusClaimed, d.Item.Status)

	_, err = s.ctl.Dispatch(s.ctx, Close())
	s.NoError(err)
	_, ok = s.ctl.Detail()
	s.False(ok)
}

func (s *ControllerTestSuite) TestAcceptUnknown() {
	out, err := s.ctl.Dispatch(s.ctx, Accept("item-nope"))
	s.ErrorIs(err, catalog.ErrItemNotFound)
	s.Require().NotNil(out.Notice)
	s.True(out.Notice.Failure)
}

func (s *ControllerTestSuite) TestNavigateToMapActivatesWidget() {
	s.submit("Rice", "1 Raffles Place")

	_, err := s.ctl.Dispatch(s.ctx, NavigateTo(nav.NGO))
	s.Require().NoError(err)
	s.Equal(nav.NGO, s.ctl.Section())
	s.Equal(1, s.widget.resized)
	s.Equal(1, s.widget.markers)

	_, err = s.ctl.Dispatch(s.ctx, NavigateTo("settings"))
	s.ErrorIs(err, nav.ErrUnknownSection)
	s.Equal(nav.NGO, s.ctl.Section())
}

func (s *ControllerTestSuite) TestStepSectionWraps() {
	s.Equal(nav.Impact, s.ctl.StepSection(-1))
	s.Equal(nav.Donor, s.ctl.StepSection(1))

	resized := s.widget.resized
	s.Equal(nav.NGO, s.ctl.StepSection(2))
	s.Equal(nav.NGO, s.ctl.Section())
	s.Equal(resized+1, s.widget.resized, "entering the map resizes it")
}

func (s *ControllerTestSuite) TestEstimate() {
	out, err := s.ctl.Dispatch(s.ctx, Estimate("100", "60"))
	s.Require().NoError(err)
	s.Require().NotNil(out.Estimate)
	s.Equal(40, out.Estimate.Surplus)

	out, err = s.ctl.Dispatch(s.ctx, Estimate("50", "60"))
	s.NoError(err)
	s.Nil(out.Estimate)
}

func (s *ControllerTestSuite) TestExport() {
	_, err := s.ctl.Dispatch(s.ctx, Export())
	s.ErrorIs(err, report.ErrEmptyReport)
	s.Nil(s.sink.data, "no file for an empty catalog")

	a := s.submit("Rice", "1 Raffles Place")
	_, err = s.ctl.Dispatch(s.ctx, Accept(a.ID))
	s.Require().NoError(err)
	_, err = s.ctl.Dispatch(s.ctx, Collect(a.ID))
	s.Require().NoError(err)

	out, err := s.ctl.Dispatch(s.ctx, Export())
	s.Require().NoError(err)
	s.Equal("wegive_impact_report_2026-10-18.csv", s.sink.name)
	s.Equal("/tmp/wegive_impact_report_2026-10-18.csv", out.Location)
	s.Contains(string(s.sink.data), ",Collected,5.00,9.00")

	sum := s.ctl.Summary()
	s.Equal(1, sum.Collected)
	s.InDelta(5.0, sum.WasteDivertedK, 1e-9)
}

func (s *ControllerTestSuite) TestTwoPhaseSubmitCommitsAfterNavigation() {
	it, err := s.ctl.PrepareSubmission(s.ctx, model.Draft{Description: "Soup", Quantity: "4", PickupAddress: "10 Bayfront Ave"})
	s.Require().NoError(err)
	s.Empty(s.ctl.Items(), "prepare does not mutate")

	_, err = s.ctl.Dispatch(s.ctx, NavigateTo(nav.Impact))
	s.Require().NoError(err)

	out, err := s.ctl.CommitSubmission(s.ctx, it)
	s.Require().NoError(err)
	s.Equal("Soup", out.Item.Description)
	s.Len(s.ctl.Marketplace().Cards, 1)
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func TestNoticeFor(t *testing.T) {
	n, ok := NoticeFor(nil)
	assert.Nil(t, n)
	assert.True(t, ok)

	n, ok = NoticeFor(report.ErrEmptyReport)
	require.NotNil(t, n)
	assert.True(t, ok)
	assert.Equal(t, "No data to report.", n.Text)

	_, ok = NoticeFor(errors.New("disk full"))
	assert.False(t, ok)
	assert.False(t, IsUserFailure(errors.New("disk full")))
	assert.True(t, IsUserFailure(catalog.ErrInvalidTransition))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "export", ExportReport.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
