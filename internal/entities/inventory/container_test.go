package inventory_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/idgen"
)

// material is a countable test entry
type material struct {
	name string
	max  int
}

func (m material) UniqueName() string { return m.name }
func (m material) IsCountable() bool  { return true }
func (m material) MaxCount() int      { return m.max }

// relic is a non-countable test entry
type relic struct {
	name string
}

func (r relic) UniqueName() string { return r.name }
func (r relic) IsCountable() bool  { return false }
func (r relic) MaxCount() int      { return 1 }

// gem is a pointer entry that asks for a copy per stack
type gem struct {
	name string
	cuts int
}

func (g *gem) UniqueName() string { return g.name }
func (g *gem) IsCountable() bool  { return false }
func (g *gem) MaxCount() int      { return 1 }
func (g *gem) Clone() inventory.Entry {
	cp := *g
	return &cp
}

// runeStone is a pointer entry without Clone
type runeStone struct {
	name string
}

func (r *runeStone) UniqueName() string { return r.name }
func (r *runeStone) IsCountable() bool  { return false }
func (r *runeStone) MaxCount() int      { return 1 }

var (
	wood  = material{name: "wood", max: 10}
	stone = material{name: "stone", max: 5}
	crown = relic{name: "crown"}
	orb   = relic{name: "orb"}
)

type ContainerTestSuite struct {
	suite.Suite
	gen *idgen.SequentialGenerator
}

func TestContainerSuite(t *testing.T) {
	suite.Run(t, new(ContainerTestSuite))
}

func (s *ContainerTestSuite) SetupTest() {
	s.gen = idgen.NewSequential("stk")
}

func (s *ContainerTestSuite) newContainer(capacity int) *inventory.Container[inventory.Entry] {
	c, err := inventory.New[inventory.Entry](&inventory.Config{
		Capacity:    capacity,
		IDGenerator: s.gen,
	})
	s.Require().NoError(err)
	return c
}

func (s *ContainerTestSuite) counts(c *inventory.Container[inventory.Entry]) []int {
	var counts []int
	for _, slot := range c.All() {
		stack, ok := slot.Stack()
		if !ok {
			counts = append(counts, 0)
			continue
		}
		counts = append(counts, stack.Count())
	}
	return counts
}

func (s *ContainerTestSuite) requireConsistent(c *inventory.Container[inventory.Entry]) {
	s.Require().NoError(c.Validate())
}

func (s *ContainerTestSuite) TestNew() {
	testCases := []struct {
		name    string
		config  *inventory.Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			config: &inventory.Config{Capacity: 4},
		},
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
			errMsg:  "config cannot be nil",
		},
		{
			name:    "zero capacity",
			config:  &inventory.Config{Capacity: 0},
			wantErr: true,
			errMsg:  "Capacity",
		},
		{
			name:    "negative capacity",
			config:  &inventory.Config{Capacity: -3},
			wantErr: true,
			errMsg:  "must be positive",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c, err := inventory.New[inventory.Entry](tc.config)
			if tc.wantErr {
				s.Error(err)
				s.True(errors.IsInvalidArgument(err))
				s.Contains(err.Error(), tc.errMsg)
				s.Nil(c)
				return
			}
			s.NoError(err)
			s.Equal(tc.config.Capacity, c.Capacity())
			s.True(c.IsEmpty())
			s.True(c.HasFreeSlot())
		})
	}
}

func (s *ContainerTestSuite) TestAddCountableCarriesOverflow() {
	c := s.newContainer(5)

	result, err := c.Add(wood, 25)
	s.Require().NoError(err)
	s.Equal(inventory.FullyAdded, result.Status)
	s.Equal(2, result.Index)
	s.Equal(25, result.Added)
	s.Equal(0, result.Remaining)

	s.Equal([]int{10, 10, 5, 0, 0}, s.counts(c))
	s.Equal(3, c.Occupied())
	s.Equal(25, c.CountOf("wood"))
	s.requireConsistent(c)
}

func (s *ContainerTestSuite) TestAddMergesBeforeOpeningSlots() {
	c := s.newContainer(4)

	_, err := c.Add(wood, 4)
	s.Require().NoError(err)
	result, err := c.Add(wood, 3)
	s.Require().NoError(err)
	s.Equal(0, result.Index)
	s.Equal([]int{7, 0, 0, 0}, s.counts(c))

	result, err = c.Add(wood, 5)
	s.Require().NoError(err)
	s.Equal(1, result.Index)
	s.Equal([]int{10, 2, 0, 0}, s.counts(c))

	_, err = c.Add(stone, 2)
	s.Require().NoError(err)
	s.Equal([]int{10, 2, 2, 0}, s.counts(c))
	s.Equal(3, c.Occupied())
	s.requireConsistent(c)
}

func (s *ContainerTestSuite) TestAddTopsUpLowestUnderFilledStack() {
	c := s.newContainer(4)

	_, err := c.Add(wood, 20)
	s.Require().NoError(err)

	first, _ := c.Get(0)
	second, _ := c.Get(1)
	firstStack, _ := first.Stack()
	secondStack, _ := second.Stack()

	_, err = c.RemoveByID(firstStack.ID(), 3)
	s.Require().NoError(err)
	_, err = c.RemoveByID(secondStack.ID(), 3)
	s.Require().NoError(err)
	s.Equal([]int{7, 7, 0, 0}, s.counts(c))

	result, err := c.Add(wood, 5)
	s.Require().NoError(err)
	s.Equal(1, result.Index)
	s.Equal([]int{10, 9, 0, 0}, s.counts(c))
	s.Equal(2, c.Occupied())
}

func (s *ContainerTestSuite) TestAddRejectedWhenFull() {
	c := s.newContainer(1)

	result, err := c.Add(stone, 1)
	s.Require().NoError(err)
	s.Equal(inventory.FullyAdded, result.Status)
	s.Equal(1, c.Occupied())

	result, err = c.Add(crown, 1)
	s.Error(err)
	s.True(errors.IsFull(err))
	s.Equal(inventory.AddRejected, result.Status)
	s.Equal(-1, result.Index)
	s.Equal(0, result.Added)
	s.Equal(1, c.Occupied())
	s.False(c.HasFreeSlot())
	s.requireConsistent(c)
}

func (s *ContainerTestSuite) TestAddFillsLastStackBeforeReportingFull() {
	c := s.newContainer(1)

	_, err := c.Add(stone, 3)
	s.Require().NoError(err)

	result, err := c.Add(stone, 4)
	s.True(errors.IsFull(err))
	s.Equal(inventory.PartiallyAdded, result.Status)
	s.Equal(2, result.Added)
	s.Equal(2, result.Remaining)
	s.Equal(0, result.Index)
	s.Equal([]int{5}, s.counts(c))
}

func (s *ContainerTestSuite) TestAddPartiallyWithoutRollback() {
	c := s.newContainer(2)

	result, err := c.Add(wood, 25)
	s.Error(err)
	s.True(errors.IsFull(err))
	s.Equal(inventory.PartiallyAdded, result.Status)
	s.Equal(20, result.Added)
	s.Equal(5, result.Remaining)
	s.Equal(1, result.Index)
	s.Equal([]int{10, 10}, s.counts(c))
	s.Equal(2, c.Occupied())
	s.requireConsistent(c)
}

func (s *ContainerTestSuite) TestAddNonCountableCreatesOneStackPerUnit() {
	c := s.newContainer(3)

	result, err := c.Add(crown, 2)
	s.Require().NoError(err)
	s.Equal(inventory.FullyAdded, result.Status)
	s.Equal(1, result.Index)
	s.Equal(2, c.Occupied())

	ids := map[string]bool{}
	for _, stack := range c.Stacks() {
		s.Equal(crown, stack.Entry())
		s.Equal(1, stack.Count())
		ids[stack.ID()] = true
	}
	s.Len(ids, 2)

	for id := range ids {
		status, err := c.RemoveByID(id, 0)
		s.Require().NoError(err)
		s.Equal(inventory.FullyRemoved, status)
		break
	}
	s.Equal(1, c.Occupied())
	s.requireConsistent(c)
}

func (s *ContainerTestSuite) TestAddNonCountableStopsWhenFull() {
	c := s.newContainer(2)

	result, err := c.Add(orb, 3)
	s.True(errors.IsFull(err))
	s.Equal(inventory.PartiallyAdded, result.Status)
	s.Equal(2, result.Added)
	s.Equal(1, result.Remaining)
	s.Equal(2, c.Occupied())
}

func (s *ContainerTestSuite) TestAddInvalidInput() {
	testCases := []struct {
		name     string
		entry    inventory.Entry
		quantity int
		errMsg   string
	}{
		{name: "nil entry", entry: nil, quantity: 1, errMsg: "entry is required"},
		{name: "typed nil entry", entry: (*runeStone)(nil), quantity: 1, errMsg: "entry is required"},
		{name: "zero quantity", entry: wood, quantity: 0, errMsg: "quantity must be positive"},
		{name: "negative quantity", entry: crown, quantity: -2, errMsg: "quantity must be positive"},
		{name: "countable without max", entry: material{name: "dust"}, quantity: 1, errMsg: "max count"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c := s.newContainer(2)
			result, err := c.Add(tc.entry, tc.quantity)
			s.Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.errMsg)
			s.Equal(inventory.AddRejected, result.Status)
			s.True(c.IsEmpty())
		})
	}
}

func (s *ContainerTestSuite) TestAddClonesEntriesThatAskForIt() {
	c := s.newContainer(4)

	cut := &gem{name: "ruby", cuts: 3}
	_, err := c.Add(cut, 2)
	s.Require().NoError(err)

	a, _ := c.Get(0)
	b, _ := c.Get(1)
	as, _ := a.Stack()
	bs, _ := b.Stack()
	s.NotSame(as.Entry(), bs.Entry())
	s.NotSame(cut, as.Entry())
	s.Equal(3, as.Entry().(*gem).cuts)

	shared := &runeStone{name: "ansuz"}
	_, err = c.Add(shared, 2)
	s.Require().NoError(err)
	x, _ := c.Get(2)
	y, _ := c.Get(3)
	xs, _ := x.Stack()
	ys, _ := y.Stack()
	s.Same(xs.Entry(), ys.Entry())
	s.NotEqual(xs.ID(), ys.ID())
}

func (s *ContainerTestSuite) TestRemoveByID() {
	testCases := []struct {
		name       string
		entry      inventory.Entry
		quantity   int
		remove     int
		wantStatus inventory.RemoveStatus
		wantCount  int
		wantErr    bool
		errCode    errors.Code
	}{
		{
			name:       "partial removal",
			entry:      wood,
			quantity:   8,
			remove:     3,
			wantStatus: inventory.PartiallyRemoved,
			wantCount:  5,
		},
		{
			name:       "removing the exact count clears the slot",
			entry:      wood,
			quantity:   8,
			remove:     8,
			wantStatus: inventory.FullyRemoved,
		},
		{
			name:       "zero quantity removes the whole stack",
			entry:      wood,
			quantity:   8,
			remove:     0,
			wantStatus: inventory.FullyRemoved,
		},
		{
			name:       "non-countable ignores the quantity",
			entry:      crown,
			quantity:   1,
			remove:     5,
			wantStatus: inventory.FullyRemoved,
		},
		{
			name:       "more than the stack holds",
			entry:      wood,
			quantity:   4,
			remove:     5,
			wantStatus: inventory.RemoveRejected,
			wantCount:  4,
			wantErr:    true,
			errCode:    errors.CodeInvalidArgument,
		},
		{
			name:       "negative quantity",
			entry:      wood,
			quantity:   4,
			remove:     -1,
			wantStatus: inventory.RemoveRejected,
			wantCount:  4,
			wantErr:    true,
			errCode:    errors.CodeInvalidArgument,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c := s.newContainer(3)
			_, err := c.Add(tc.entry, tc.quantity)
			s.Require().NoError(err)
			slot, err := c.Get(0)
			s.Require().NoError(err)
			stack, ok := slot.Stack()
			s.Require().True(ok)

			status, err := c.RemoveByID(stack.ID(), tc.remove)
			s.Equal(tc.wantStatus, status)
			if tc.wantErr {
				s.Error(err)
				s.Equal(tc.errCode, errors.GetCode(err))
			} else {
				s.NoError(err)
			}

			if tc.wantCount == 0 {
				_, found := c.Contains(stack.ID())
				s.False(found)
				s.Equal(0, c.Occupied())
			} else {
				s.Equal(tc.wantCount, stack.Count())
				s.Equal(1, c.Occupied())
			}
			s.requireConsistent(c)
		})
	}
}

func (s *ContainerTestSuite) TestRemoveUnknownID() {
	c := s.newContainer(2)
	_, err := c.Add(wood, 3)
	s.Require().NoError(err)

	status, err := c.RemoveByID("stk_404", 1)
	s.Equal(inventory.RemoveRejected, status)
	s.True(errors.IsNotFound(err))

	status, err = c.RemoveByID("", 0)
	s.Equal(inventory.RemoveRejected, status)
	s.True(errors.IsNotFound(err))
	s.Equal(1, c.Occupied())
}

func (s *ContainerTestSuite) TestRemoveAt() {
	c := s.newContainer(3)
	_, err := c.Add(wood, 6)
	s.Require().NoError(err)

	status, err := c.RemoveAt(0, 2)
	s.Require().NoError(err)
	s.Equal(inventory.PartiallyRemoved, status)
	s.Equal([]int{4, 0, 0}, s.counts(c))

	for _, index := range []int{-1, 3, 10} {
		status, err = c.RemoveAt(index, 0)
		s.Equal(inventory.RemoveRejected, status)
		s.True(errors.IsNotFound(err))
	}

	status, err = c.RemoveAt(1, 0)
	s.Equal(inventory.RemoveRejected, status)
	s.True(errors.IsNotFound(err))

	status, err = c.RemoveAt(0, 0)
	s.Require().NoError(err)
	s.Equal(inventory.FullyRemoved, status)
	s.True(c.IsEmpty())
}

func (s *ContainerTestSuite) TestFindFreeSlot() {
	c := s.newContainer(3)
	_, err := c.Add(crown, 3)
	s.Require().NoError(err)

	_, ok := c.FindFreeSlot()
	s.False(ok)

	_, err = c.RemoveAt(1, 0)
	s.Require().NoError(err)
	index, ok := c.FindFreeSlot()
	s.True(ok)
	s.Equal(1, index)
}

func (s *ContainerTestSuite) TestContainsFollowsStacksAcrossSort() {
	c := s.newContainer(4)
	_, err := c.Add(wood, 1)
	s.Require().NoError(err)
	_, err = c.Add(crown, 1)
	s.Require().NoError(err)
	_, err = c.Add(stone, 1)
	s.Require().NoError(err)

	slot, _ := c.Get(2)
	stoneStack, _ := slot.Stack()

	_, err = c.RemoveAt(1, 0)
	s.Require().NoError(err)
	index, ok := c.Contains(stoneStack.ID())
	s.True(ok)
	s.Equal(2, index)

	c.Sort(nil)
	index, ok = c.Contains(stoneStack.ID())
	s.True(ok)
	s.Equal(1, index)
	s.Equal([]int{1, 1, 0, 0}, s.counts(c))
	s.requireConsistent(c)
}

func (s *ContainerTestSuite) TestContainsKind() {
	c := s.newContainer(4)
	_, err := c.Add(wood, 2)
	s.Require().NoError(err)
	_, err = c.Add(&gem{name: "opal"}, 1)
	s.Require().NoError(err)

	index, ok := c.ContainsKind(reflect.TypeOf(&gem{}))
	s.True(ok)
	s.Equal(1, index)

	_, ok = c.ContainsKind(reflect.TypeOf(relic{}))
	s.False(ok)
	_, ok = c.ContainsKind(nil)
	s.False(ok)

	index, ok = inventory.FindKind[material](c)
	s.True(ok)
	s.Equal(0, index)

	_, ok = inventory.FindKind[relic](c)
	s.False(ok)
}

func (s *ContainerTestSuite) TestSetMaintainsOccupancy() {
	c := s.newContainer(3)

	stack, err := inventory.NewStack[inventory.Entry](wood, 4, s.gen)
	s.Require().NoError(err)

	s.Require().NoError(c.Set(2, inventory.SlotOf(stack)))
	s.Equal(1, c.Occupied())

	// replacing an occupied slot keeps the count
	other, err := inventory.NewStack[inventory.Entry](crown, 1, s.gen)
	s.Require().NoError(err)
	s.Require().NoError(c.Set(2, inventory.SlotOf(other)))
	s.Equal(1, c.Occupied())

	// setting the same stack into its own slot is a no-op
	s.Require().NoError(c.Set(2, inventory.SlotOf(other)))
	s.Equal(1, c.Occupied())

	err = c.Set(0, inventory.SlotOf(other))
	s.True(errors.IsInvalidArgument(err))
	s.Equal(1, c.Occupied())

	s.Require().NoError(c.Set(2, inventory.EmptySlot[inventory.Entry]()))
	s.Equal(0, c.Occupied())

	s.Require().NoError(c.Set(1, inventory.SlotOf[inventory.Entry](nil)))
	s.Equal(0, c.Occupied())

	err = c.Set(3, inventory.SlotOf(stack))
	s.True(errors.IsNotFound(err))

	_, err = c.Get(-1)
	s.True(errors.IsNotFound(err))
	s.requireConsistent(c)
}

func (s *ContainerTestSuite) TestNewStackValidates() {
	_, err := inventory.NewStack[inventory.Entry](wood, 11, s.gen)
	s.True(errors.IsInvalidArgument(err))

	_, err = inventory.NewStack[inventory.Entry](wood, 0, s.gen)
	s.True(errors.IsInvalidArgument(err))

	_, err = inventory.NewStack[inventory.Entry](nil, 1, s.gen)
	s.True(errors.IsInvalidArgument(err))

	_, err = inventory.NewStack[inventory.Entry](crown, 1, nil)
	s.True(errors.IsInvalidArgument(err))

	stack, err := inventory.NewStack[inventory.Entry](crown, 1, s.gen)
	s.Require().NoError(err)
	s.Equal(stack.ID(), stack.GetID())
	s.Equal(inventory.EntityType, stack.GetType())
	s.True(stack.IsFull())
}

func (s *ContainerTestSuite) TestSortWithComparator() {
	c := s.newContainer(5)
	_, err := c.Add(stone, 2)
	s.Require().NoError(err)
	_, err = c.Add(orb, 1)
	s.Require().NoError(err)
	_, err = c.Add(wood, 3)
	s.Require().NoError(err)
	_, err = c.Add(crown, 1)
	s.Require().NoError(err)
	_, err = c.RemoveAt(1, 0)
	s.Require().NoError(err)

	c.Sort(inventory.ByName[inventory.Entry])

	var names []string
	for _, slot := range c.All() {
		stack, ok := slot.Stack()
		if !ok {
			names = append(names, "")
			continue
		}
		names = append(names, stack.Entry().UniqueName())
	}
	s.Equal([]string{"crown", "stone", "wood", "", ""}, names)
	s.Equal(3, c.Occupied())
	s.requireConsistent(c)
}

func (s *ContainerTestSuite) TestResizeGrow() {
	c := s.newContainer(2)
	_, err := c.Add(wood, 15)
	s.Require().NoError(err)

	dropped, err := c.Resize(4)
	s.Require().NoError(err)
	s.Empty(dropped)
	s.Equal(4, c.Capacity())
	s.Equal(2, c.Occupied())
	s.Equal([]int{10, 5, 0, 0}, s.counts(c))
	s.True(c.HasFreeSlot())
}

func (s *ContainerTestSuite) TestResizeTruncates() {
	c := s.newContainer(5)
	_, err := c.Add(crown, 1)
	s.Require().NoError(err)
	_, err = c.Add(wood, 4)
	s.Require().NoError(err)
	_, err = c.Add(orb, 1)
	s.Require().NoError(err)
	_, err = c.Add(stone, 3)
	s.Require().NoError(err)
	_, err = c.RemoveAt(1, 0)
	s.Require().NoError(err)

	dropped, err := c.Resize(2)
	s.Require().NoError(err)
	s.Equal(2, c.Capacity())
	s.Equal(2, c.Occupied())

	var kept []string
	for _, stack := range c.Stacks() {
		kept = append(kept, stack.Entry().UniqueName())
	}
	s.Equal([]string{"crown", "orb"}, kept)
	s.Require().Len(dropped, 1)
	s.Equal("stone", dropped[0].Entry().UniqueName())
	s.False(c.HasFreeSlot())
	s.requireConsistent(c)
}

func (s *ContainerTestSuite) TestResizeRejectsNonPositive() {
	c := s.newContainer(3)
	_, err := c.Add(wood, 3)
	s.Require().NoError(err)

	for _, capacity := range []int{0, -1} {
		dropped, err := c.Resize(capacity)
		s.True(errors.IsInvalidArgument(err))
		s.Nil(dropped)
		s.Equal(3, c.Capacity())
		s.Equal(1, c.Occupied())
	}
}

func (s *ContainerTestSuite) TestClear() {
	c := s.newContainer(3)
	_, err := c.Add(crown, 3)
	s.Require().NoError(err)
	s.False(c.IsEmpty())

	c.Clear()
	s.True(c.IsEmpty())
	s.Equal(3, c.Capacity())
	s.Equal([]int{0, 0, 0}, s.counts(c))
	s.requireConsistent(c)
}

func (s *ContainerTestSuite) TestIterationIncludesEmptySlots() {
	c := s.newContainer(3)
	_, err := c.Add(wood, 1)
	s.Require().NoError(err)

	seen := 0
	for range c.All() {
		seen++
	}
	s.Equal(3, seen)

	// the sequence is restartable
	seen = 0
	for range c.All() {
		seen++
	}
	s.Equal(3, seen)

	occupied := 0
	for range c.Stacks() {
		occupied++
	}
	s.Equal(1, occupied)

	for i := range c.All() {
		s.Equal(0, i)
		break
	}
}

func (s *ContainerTestSuite) TestInvariantsHoldUnderRandomOperations() {
	rng := rand.New(rand.NewSource(42))
	entries := []inventory.Entry{wood, stone, crown, orb}
	c := s.newContainer(6)
	totals := map[string]int{}

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(10); {
		case op < 5:
			entry := entries[rng.Intn(len(entries))]
			result, _ := c.Add(entry, 1+rng.Intn(12))
			totals[entry.UniqueName()] += result.Added
		case op < 8:
			index := rng.Intn(c.Capacity())
			slot, err := c.Get(index)
			s.Require().NoError(err)
			stack, ok := slot.Stack()
			if !ok {
				continue
			}
			name, before := stack.Entry().UniqueName(), stack.Count()
			quantity := rng.Intn(before + 1)
			status, err := c.RemoveAt(index, quantity)
			s.Require().NoError(err)
			switch {
			case status == inventory.FullyRemoved:
				totals[name] -= before
			default:
				totals[name] -= quantity
			}
		case op < 9:
			c.Sort(nil)
		default:
			dropped, err := c.Resize(3 + rng.Intn(6))
			s.Require().NoError(err)
			for _, stack := range dropped {
				totals[stack.Entry().UniqueName()] -= stack.Count()
			}
		}

		s.Require().NoError(c.Validate(), "step %d", step)
		for name, total := range totals {
			s.Require().Equal(total, c.CountOf(name), "step %d name %s", step, name)
		}
	}
}
