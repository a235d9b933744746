package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory"
)

type CLITestSuite struct {
	suite.Suite
	dataDir string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	s.T().Setenv("XDG_CONFIG_HOME", s.T().TempDir())
	s.dataDir = s.T().TempDir()
}

func (s *CLITestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer
	base := []string{"--backend", "file", "--data-dir", s.dataDir}
	err := execute(context.Background(), &out, append(base, args...))
	return out.String(), err
}

func (s *CLITestSuite) show(name string) inventory.ContainerView {
	out, err := s.run("show", name, "-o", "json")
	s.Require().NoError(err)

	var view inventory.ContainerView
	s.Require().NoError(json.Unmarshal([]byte(out), &view))
	return view
}

func (s *CLITestSuite) TestCreateAddShow() {
	out, err := s.run("create", "bag", "--capacity", "3")
	s.Require().NoError(err)
	s.Contains(out, "bag (0/3 slots used)")

	out, err = s.run("add", "bag", "arrow", "30", "--countable", "--max-stack", "20", "--kind", "weapon")
	s.Require().NoError(err)
	s.Contains(out, "added 30 of arrow, 0 left over")

	view := s.show("bag")
	s.Equal(3, view.Capacity)
	s.Equal(2, view.Occupied)
	s.Equal(20, view.Slots[0].Count)
	s.Equal(10, view.Slots[1].Count)
	s.True(view.Slots[2].IsEmpty())

	out, err = s.run("show", "bag")
	s.Require().NoError(err)
	s.Contains(out, "SLOT")
	s.Contains(out, "arrow")

	out, err = s.run("show", "bag", "-o", "yaml")
	s.Require().NoError(err)
	s.Contains(out, "capacity: 3")
}

func (s *CLITestSuite) TestAddReportsFull() {
	_, err := s.run("create", "pouch", "--capacity", "1")
	s.Require().NoError(err)

	out, err := s.run("add", "pouch", "coin", "15", "--countable", "--max-stack", "10")
	s.Error(err)
	s.True(errors.IsFull(err), "got %v", err)
	s.Contains(out, "added 10 of coin, 5 left over")

	view := s.show("pouch")
	s.Equal(10, view.Slots[0].Count)
}

func (s *CLITestSuite) TestRemoveSortResizeClear() {
	_, err := s.run("create", "chest", "--capacity", "4")
	s.Require().NoError(err)
	for _, name := range []string{"sword", "amulet", "helm"} {
		_, err = s.run("add", "chest", name)
		s.Require().NoError(err)
	}

	_, err = s.run("remove", "chest", "--slot", "0")
	s.Require().NoError(err)
	s.True(s.show("chest").Slots[0].IsEmpty())

	_, err = s.run("sort", "chest", "--by-name")
	s.Require().NoError(err)
	view := s.show("chest")
	s.Equal("amulet", view.Slots[0].Item.Name)
	s.Equal("helm", view.Slots[1].Item.Name)

	_, err = s.run("remove", "chest", "--id", view.Slots[1].StackID)
	s.Require().NoError(err)
	s.Equal(1, s.show("chest").Occupied)

	out, err := s.run("resize", "chest", "2")
	s.Require().NoError(err)
	s.Contains(out, "chest (1/2 slots used)")

	_, err = s.run("clear", "chest")
	s.Require().NoError(err)
	s.Equal(0, s.show("chest").Occupied)
}

func (s *CLITestSuite) TestListAndDelete() {
	for _, name := range []string{"b", "a"} {
		_, err := s.run("create", name)
		s.Require().NoError(err)
	}

	out, err := s.run("list")
	s.Require().NoError(err)
	s.Equal("a\nb\n", out)

	_, err = s.run("delete", "a")
	s.Require().NoError(err)

	_, err = s.run("show", "a")
	s.True(errors.IsNotFound(err), "got %v", err)
}

func (s *CLITestSuite) TestCatalogLookup() {
	catalog := filepath.Join(s.T().TempDir(), "items.yaml")
	s.Require().NoError(os.WriteFile(catalog, []byte(`items:
  - name: potion
    kind: consumable
    countable: true
    max_stack: 5
`), 0o600))

	_, err := s.run("create", "belt", "--capacity", "2")
	s.Require().NoError(err)

	_, err = s.run("--catalog", catalog, "add", "belt", "potion", "7")
	s.Require().NoError(err)

	view := s.show("belt")
	s.Equal(5, view.Slots[0].Count)
	s.Equal(2, view.Slots[1].Count)
	s.Equal("consumable", string(view.Slots[0].Item.Kind))

	_, err = s.run("--catalog", catalog, "add", "belt", "elixir")
	s.True(errors.IsNotFound(err), "got %v", err)
}

func (s *CLITestSuite) TestInvalidInput() {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown backend", args: []string{"--backend", "tape", "list"}},
		{name: "quantity not a number", args: []string{"add", "bag", "arrow", "many"}},
		{name: "capacity not a number", args: []string{"resize", "bag", "big"}},
		{name: "unknown output format", args: []string{"show", "bag", "-o", "xml"}},
	}

	_, err := s.run("create", "bag")
	s.Require().NoError(err)

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.run(tc.args...)
			s.Error(err)
			s.True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *CLITestSuite) TestJSONCodecWithCompression() {
	_, err := s.run("--codec", "json", "--compression", "zstd", "create", "crate", "--capacity", "2")
	s.Require().NoError(err)

	// saves written with one codec load under another
	_, err = s.run("--codec", "cbor", "add", "crate", "lantern")
	s.Require().NoError(err)
	s.Equal(1, s.show("crate").Occupied)
}

func (s *CLITestSuite) TestExitCodes() {
	s.Equal(5, exitCode(errors.NotFound("missing")))
	s.Equal(8, exitCode(errors.Full("no room")))
	s.Equal(15, exitCode(errors.DataLoss("corrupt")))
	s.Equal(1, exitCode(context.Canceled))
}
