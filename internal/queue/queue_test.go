package queue

import (
	"testing"

	"github.com/llehouerou/wavesd/internal/song"
)

func track(path string) song.Handle {
	return song.NewDetached(path, path, "", "", 0, 0)
}

func appendTrack(t *testing.T, c *Core, path string, priority uint8) uint32 {
	t.Helper()
	id, err := c.Append(track(path), priority)
	if err != nil {
		t.Fatalf("Append(%q) failed: %v", path, err)
	}
	return id
}

func TestAppend_AssignsSequentialPositions(t *testing.T) {
	c := NewCore(10, 4)
	appendTrack(t, c, "a", 0)
	appendTrack(t, c, "b", 0)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if c.ItemAt(0).Song().Path != "a" || c.ItemAt(1).Song().Path != "b" {
		t.Error("items not appended in order")
	}
	if c.OrderToPosition(0) != 0 || c.OrderToPosition(1) != 1 {
		t.Error("order array should be identity in non-random mode")
	}
}

func TestAppend_QueueFull(t *testing.T) {
	c := NewCore(1, 4)
	appendTrack(t, c, "a", 0)

	_, err := c.Append(track("b"), 0)
	if err != ErrQueueFull {
		t.Errorf("Append at capacity = %v, want ErrQueueFull", err)
	}
}

func TestAppend_RefusesAttachedSong(t *testing.T) {
	c := NewCore(4, 4)
	attached := song.NewAttached(1, "a", "A", "", "", 0, 0)

	_, err := c.Append(attached, 0)
	if err != ErrSongOwnershipViolation {
		t.Errorf("Append(attached) = %v, want ErrSongOwnershipViolation", err)
	}
	if c.Len() != 0 {
		t.Error("a refused Append must not mutate the queue")
	}
}

func TestIDMap_RoundTrip(t *testing.T) {
	c := NewCore(10, 4)
	id := appendTrack(t, c, "a", 0)

	pos, ok := c.IDToPosition(id)
	if !ok || pos != 0 {
		t.Fatalf("IDToPosition(id) = (%d, %v), want (0, true)", pos, ok)
	}
	if c.PositionToID(pos) != id {
		t.Error("position -> id -> IDToPosition -> position round trip broken")
	}
}

func TestDeletePosition_ShiftsItemsAndOrder(t *testing.T) {
	c := NewCore(10, 4)
	idA := appendTrack(t, c, "a", 0)
	idB := appendTrack(t, c, "b", 0)
	idC := appendTrack(t, c, "c", 0)

	c.DeletePosition(0)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if c.ItemAt(0).Song().Path != "b" || c.ItemAt(1).Song().Path != "c" {
		t.Errorf("items after delete = %q, %q; want b, c", c.ItemAt(0).Song().Path, c.ItemAt(1).Song().Path)
	}
	if _, ok := c.IDToPosition(idA); ok {
		t.Error("deleted id should no longer resolve")
	}
	posB, _ := c.IDToPosition(idB)
	posC, _ := c.IDToPosition(idC)
	if posB != 0 || posC != 1 {
		t.Errorf("IdMap after delete: B=%d C=%d, want B=0 C=1", posB, posC)
	}
	if c.OrderToPosition(0) != 0 || c.OrderToPosition(1) != 1 {
		t.Error("order array should remain a valid permutation after delete")
	}
}

func TestClear_ReleasesEverything(t *testing.T) {
	c := NewCore(10, 4)
	id := appendTrack(t, c, "a", 0)
	c.SetRandom(true)

	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", c.Len())
	}
	if _, ok := c.IDToPosition(id); ok {
		t.Error("cleared id should not resolve")
	}
	if !c.Random() {
		t.Error("Clear must preserve mode flags")
	}
}

func TestSwapPositions_ExchangesItemsAndIds(t *testing.T) {
	c := NewCore(10, 4)
	idA := appendTrack(t, c, "a", 0)
	idB := appendTrack(t, c, "b", 0)

	versionBefore := c.Version()
	c.SwapPositions(0, 1)

	if c.ItemAt(0).Song().Path != "b" || c.ItemAt(1).Song().Path != "a" {
		t.Error("SwapPositions did not exchange items")
	}
	posA, _ := c.IDToPosition(idA)
	posB, _ := c.IDToPosition(idB)
	if posA != 1 || posB != 0 {
		t.Errorf("IdMap after swap: A=%d B=%d, want A=1 B=0", posA, posB)
	}
	if c.ItemAt(0).Version() != versionBefore || c.ItemAt(1).Version() != versionBefore {
		t.Error("swapped items should be stamped with the pre-swap version")
	}
	if c.Version() != versionBefore+1 {
		t.Errorf("Version() = %d, want %d", c.Version(), versionBefore+1)
	}
}

func TestMovePosition_NonRandom(t *testing.T) {
	c := NewCore(10, 4)
	appendTrack(t, c, "a", 0)
	appendTrack(t, c, "b", 0)
	appendTrack(t, c, "c", 0)
	appendTrack(t, c, "d", 0)

	c.MovePosition(0, 2)

	got := []string{c.ItemAt(0).Song().Path, c.ItemAt(1).Song().Path, c.ItemAt(2).Song().Path, c.ItemAt(3).Song().Path}
	want := []string{"b", "c", "a", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("positions after MovePosition(0,2) = %v, want %v", got, want)
		}
	}
}

func TestMovePosition_RandomRewritesOrder(t *testing.T) {
	c := NewCore(10, 4)
	appendTrack(t, c, "a", 0)
	appendTrack(t, c, "b", 0)
	appendTrack(t, c, "c", 0)
	appendTrack(t, c, "d", 0)
	c.SetRandom(true)
	// order currently [0,1,2,3]; simulate having played order 1 (position 1, "b")
	playedID := c.PositionToID(1)

	c.MovePosition(0, 2)

	// "b" used to be at position 1; after moving position 0->2, b is
	// now at position 0. The order entry that pointed at 1 must now
	// point at 0 so the same item is still referenced.
	newPos, ok := c.IDToPosition(playedID)
	if !ok {
		t.Fatal("b's id should still resolve")
	}
	var orderForB = -1
	for o := 0; o < c.Len(); o++ {
		if c.OrderToPosition(o) == newPos {
			orderForB = o
		}
	}
	if orderForB == -1 {
		t.Fatal("order array lost track of b after MovePosition")
	}
	assertOrderIsPermutation(t, c)
}

func TestMoveRange_EndToEnd(t *testing.T) {
	// spec.md scenario 5: [A,B,C,D,E], MoveRange(1,3,3) -> [A,D,E,B,C]
	c := NewCore(10, 4)
	appendTrack(t, c, "A", 0)
	appendTrack(t, c, "B", 0)
	appendTrack(t, c, "C", 0)
	appendTrack(t, c, "D", 0)
	appendTrack(t, c, "E", 0)

	idB := c.PositionToID(1)
	idC := c.PositionToID(2)

	c.MoveRange(1, 3, 3)

	want := []string{"A", "D", "E", "B", "C"}
	for i, w := range want {
		if got := c.ItemAt(i).Song().Path; got != w {
			t.Fatalf("positions after MoveRange = %v, want %v (index %d: got %q)",
				collectPaths(c), want, i, got)
		}
	}

	posB, _ := c.IDToPosition(idB)
	posC, _ := c.IDToPosition(idC)
	if posB != 3 || posC != 4 {
		t.Errorf("IdMap after MoveRange: B=%d C=%d, want B=3 C=4", posB, posC)
	}
}

func TestMoveRange_RandomRewritesOrder(t *testing.T) {
	c := NewCore(10, 4)
	for _, p := range []string{"A", "B", "C", "D", "E"} {
		appendTrack(t, c, p, 0)
	}
	c.SetRandom(true)

	c.MoveRange(1, 3, 3)
	assertOrderIsPermutation(t, c)
}

func TestModifyAtOrder_StampsAndBumps(t *testing.T) {
	c := NewCore(10, 4)
	appendTrack(t, c, "a", 0)
	appendTrack(t, c, "b", 0)

	before := c.Version()
	c.ModifyAtOrder(1)

	if c.ItemAt(1).Version() != before {
		t.Errorf("ModifyAtOrder should stamp with the pre-call version")
	}
	if c.Version() != before+1 {
		t.Errorf("Version() = %d, want %d", c.Version(), before+1)
	}
}

func TestModifyAll_StampsAllBumpsOnce(t *testing.T) {
	c := NewCore(10, 4)
	appendTrack(t, c, "a", 0)
	appendTrack(t, c, "b", 0)
	appendTrack(t, c, "c", 0)

	before := c.Version()
	c.ModifyAll()

	for i := 0; i < c.Len(); i++ {
		if c.ItemAt(i).Version() != before {
			t.Errorf("item %d version = %d, want %d", i, c.ItemAt(i).Version(), before)
		}
	}
	if c.Version() != before+1 {
		t.Errorf("Version() = %d, want %d", c.Version(), before+1)
	}
}

func TestVersion_WrapsAroundAndResetsStamps(t *testing.T) {
	c := NewCore(4, 4)
	appendTrack(t, c, "a", 0)
	appendTrack(t, c, "b", 0)

	c.version = versionCeiling - 1

	c.ModifyAll()

	if c.Version() != 1 {
		t.Fatalf("Version() after wrap = %d, want 1", c.Version())
	}
	for i := 0; i < c.Len(); i++ {
		if c.ItemAt(i).Version() != 0 {
			t.Errorf("item %d version after wrap = %d, want 0", i, c.ItemAt(i).Version())
		}
	}
}

func TestPreconditionViolation_PanicsOnBadIndex(t *testing.T) {
	c := NewCore(4, 4)
	appendTrack(t, c, "a", 0)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for an out-of-range position")
		}
		if _, ok := r.(PreconditionViolation); !ok {
			t.Errorf("recovered value = %#v, want PreconditionViolation", r)
		}
	}()
	c.ItemAt(5)
}

func assertOrderIsPermutation(t *testing.T, c *Core) {
	t.Helper()
	seen := make(map[int]bool, c.Len())
	for o := 0; o < c.Len(); o++ {
		pos := c.OrderToPosition(o)
		if pos < 0 || pos >= c.Len() {
			t.Fatalf("order[%d] = %d out of range", o, pos)
		}
		if seen[pos] {
			t.Fatalf("order array has duplicate position %d", pos)
		}
		seen[pos] = true
	}
}

func collectPaths(c *Core) []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.ItemAt(i).Song().Path
	}
	return out
}
