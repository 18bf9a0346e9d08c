package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Makepad-fr/wegive/internal/model"
)

type CLITestSuite struct {
	suite.Suite
	dir     string
	cfgFile string
}

func (s *CLITestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.cfgFile = filepath.Join(s.dir, "wegive.yaml")
	s.Require().NoError(os.WriteFile(s.cfgFile, []byte(`
ui:
  color: never
log:
  level: debug
geocoding:
  static:
    1 raffles place:
      lat: 1.2840
      lng: 103.8515
    "St. Andrew's Rd 1":
      lat: 1.2903
      lng: 103.8520
`), 0o644))
}

func (s *CLITestSuite) run(args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	base := []string{"--config", s.cfgFile, "--data-dir", filepath.Join(s.dir, "data")}
	code := Execute(context.Background(), append(base, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func (s *CLITestSuite) submitRice() {
	code, out, errOut := s.run("submit", "--description", "Rice", "--quantity", "10",
		"--expiry", "2026-10-19", "--address", "1 Raffles Place", "--donor", `Hotel "A"`)
	s.Require().Equal(ExitOK, code, errOut)
	s.Contains(out, `Listed "Rice" for pickup.`)
}

func (s *CLITestSuite) TestLifecycle() {
	s.submitRice()

	code, out, _ := s.run("ls")
	s.Equal(ExitOK, code)
	s.Contains(out, "Rice")
	s.Contains(out, "×10 · exp 19 Oct 2026")

	code, out, _ = s.run("accept", "1")
	s.Equal(ExitOK, code)
	s.Contains(out, "Please arrange pickup")

	code, _, _ = s.run("accept", "1")
	s.Equal(ExitOK, code, "accepting twice is a no-op")

	code, _, _ = s.run("collect", "1")
	s.Equal(ExitOK, code)

	reports := filepath.Join(s.dir, "reports")
	code, out, _ = s.run("report", "--out", reports)
	s.Require().Equal(ExitOK, code)
	s.Contains(out, "Report saved to")

	files, err := filepath.Glob(filepath.Join(reports, "wegive_impact_report_*.csv"))
	s.Require().NoError(err)
	s.Require().Len(files, 1)
	b, err := os.ReadFile(files[0])
	s.Require().NoError(err)
	s.True(strings.HasSuffix(string(b), `,"Rice",10,2026-10-19,"Hotel ""A""",Collected,5.00,9.00`))
}

func (s *CLITestSuite) TestGroupedList() {
	s.submitRice()
	code, out, _ := s.run("ls", "--group")
	s.Equal(ExitOK, code)
	s.Contains(out, "Available")
	s.Contains(out, "(none)")
}

func (s *CLITestSuite) TestListByStatus() {
	s.submitRice()
	code, _, errOut := s.run("submit", "--description", "Soup", "--address", "1 Raffles Place")
	s.Require().Equal(ExitOK, code, errOut)
	code, _, _ = s.run("accept", "2")
	s.Require().Equal(ExitOK, code)

	code, out, _ := s.run("ls", "--status", "claimed")
	s.Equal(ExitOK, code)
	s.Contains(out, " 2. ")
	s.Contains(out, "Soup")
	s.NotContains(out, "Rice")

	code, _, errOut = s.run("ls", "--status", "eaten")
	s.Equal(ExitUsage, code)
	s.Contains(errOut, `unknown status "eaten"`)
}

func (s *CLITestSuite) TestUnresolvableAddress() {
	code, _, errOut := s.run("submit", "--description", "Rice", "--address", "Atlantis")
	s.Equal(ExitUsage, code)
	s.Contains(errOut, "Could not find the address. Please check and try again.")

	_, out, _ := s.run("ls")
	s.Contains(out, "No surplus items currently available.")
}

func (s *CLITestSuite) TestStaticAddressWithDots() {
	code, out, errOut := s.run("submit", "--description", "Bread", "--address", "St. Andrew's Rd 1")
	s.Require().Equal(ExitOK, code, errOut)
	s.Contains(out, `Listed "Bread" for pickup.`)
}

func (s *CLITestSuite) TestMissingDescription() {
	code, _, errOut := s.run("submit", "--address", "1 Raffles Place")
	s.Equal(ExitUsage, code)
	s.Contains(errOut, "description")
}

func (s *CLITestSuite) TestEmptyReport() {
	code, _, errOut := s.run("report", "--out", s.dir)
	s.Equal(ExitUsage, code)
	s.Contains(errOut, "No data to report.")
}

func (s *CLITestSuite) TestUnknownAndInvalidTransitions() {
	code, _, _ := s.run("accept", "item-missing")
	s.Equal(ExitUsage, code)

	s.submitRice()
	code, _, errOut := s.run("collect", "1")
	s.Equal(ExitUsage, code)
	s.Contains(errOut, "Only claimed donations")
}

func (s *CLITestSuite) TestEstimate() {
	code, out, _ := s.run("estimate", "100", "60")
	s.Equal(ExitOK, code)
	s.Equal("Estimated Surplus: 40 pax (40.0%). Consider listing this!\n", out)

	code, out, _ = s.run("estimate", "50", "60")
	s.Equal(ExitOK, code)
	s.Empty(out)
}

func (s *CLITestSuite) TestUsageErrors() {
	code, _, errOut := s.run("accept")
	s.Equal(ExitUsage, code)
	s.Contains(errOut, "wegive --help")

	code, _, _ = s.run("frobnicate")
	s.Equal(ExitUsage, code)

	code, _, _ = s.run("ls", "--bogus")
	s.Equal(ExitUsage, code)
}

func (s *CLITestSuite) TestSQLiteStore() {
	code, _, errOut := s.run("--store", "sqlite", "submit", "--description", "Soup", "--address", "1 raffles place")
	s.Require().Equal(ExitOK, code, errOut)

	_, out, _ := s.run("--store", "sqlite", "ls")
	s.Contains(out, "Soup")
	s.FileExists(filepath.Join(s.dir, "data", "wegive.db"))

	_, out, _ = s.run("ls")
	s.NotContains(out, "Soup", "json store is separate")
}

func (s *CLITestSuite) TestConfigShow() {
	code, out, _ := s.run("--store", "sqlite", "config", "show")
	s.Equal(ExitOK, code)
	s.Contains(out, "driver: sqlite")
	s.Contains(out, "single_zoom: 14")
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func TestResolveID(t *testing.T) {
	assert.Equal(t, "item-x", resolveID(nil, "item-x"))
	assert.Equal(t, "7", resolveID(nil, "7"))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	title := strings.Repeat("a", 44) + "鸡饭鸡饭鸡饭"
	got := truncate(title, 48)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 44)+"鸡...", got)
	assert.Equal(t, "鸡饭", truncate("鸡饭", 48))

	lines := flatLines([]model.SurplusItem{{ID: "item-1", Description: title, Status: model.StatusAvailable}}, 0)
	require.Len(t, lines, 1)
	assert.True(t, utf8.ValidString(lines[0]))
}

func TestJoinNonEmpty(t *testing.T) {
	require.Equal(t, "a · c", joinNonEmpty(" · ", "a", " ", "c"))
}
