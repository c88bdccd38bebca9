package document

import (
	"errors"
	"testing"
)

func addRange(t *testing.T, x *RangeIndex, start, end, bufLen int) RangeID {
	t.Helper()
	id, err := x.Add("tag", start, end, bufLen)
	if err != nil {
		t.Fatalf("Add([%d,%d)): %v", start, end, err)
	}
	return id
}

func TestRangeIndexAddValidation(t *testing.T) {
	x := NewRangeIndex()
	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 2},
		{"end past buffer", 0, 11},
		{"empty interval", 3, 3},
		{"inverted interval", 5, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := x.Add("tag", tt.start, tt.end, 10); !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("err = %v, want ErrInvalidRange", err)
			}
		})
	}
}

// The sliding behavior under edits: a start at the edit offset shifts, an end
// at the edit offset stays. Offsets inside a removed interval land on the
// edit offset.
func TestRangeIndexAdjustForEdit(t *testing.T) {
	tests := []struct {
		name               string
		start, end         int
		at, removed, ins   int
		wantStart, wantEnd int
		dead               bool
	}{
		{"insert before", 4, 8, 0, 0, 3, 7, 11, false},
		{"insert after", 4, 8, 9, 0, 3, 4, 8, false},
		{"insert inside", 4, 8, 6, 0, 3, 4, 11, false},
		{"insert at start slides range", 4, 8, 4, 0, 8, 12, 16, false},
		{"insert at end leaves range", 4, 8, 8, 0, 3, 4, 8, false},
		{"delete before", 4, 8, 0, 2, 0, 2, 6, false},
		{"delete after", 4, 8, 8, 2, 0, 4, 8, false},
		{"delete inside shrinks", 4, 8, 5, 2, 0, 4, 6, false},
		{"delete overlapping head", 4, 8, 2, 4, 0, 2, 4, false},
		{"delete overlapping tail", 4, 8, 6, 4, 0, 4, 6, false},
		{"delete spanning kills range", 4, 8, 2, 10, 0, 0, 0, true},
		{"delete exactly the range kills it", 4, 8, 4, 4, 0, 0, 0, true},
		{"replace inside", 4, 8, 5, 2, 5, 4, 11, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := NewRangeIndex()
			id := addRange(t, x, tt.start, tt.end, 20)

			dead, err := x.AdjustForEdit(EditDelta{At: tt.at, Removed: tt.removed, Inserted: tt.ins, Seq: 1})
			if err != nil {
				t.Fatalf("AdjustForEdit: %v", err)
			}
			if tt.dead {
				if len(dead) != 1 || dead[0] != id {
					t.Fatalf("dead = %v, want [%d]", dead, id)
				}
				if _, ok := x.Get(id); ok {
					t.Fatal("collapsed range still in index")
				}
				return
			}
			if len(dead) != 0 {
				t.Fatalf("dead = %v, want none", dead)
			}
			tr, ok := x.Get(id)
			if !ok {
				t.Fatal("range disappeared")
			}
			if tr.Start != tt.wantStart || tr.End != tt.wantEnd {
				t.Errorf("range = [%d,%d), want [%d,%d)", tr.Start, tr.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestRangeIndexAdjustRejectsStaleDelta(t *testing.T) {
	x := NewRangeIndex()
	id := addRange(t, x, 2, 5, 10)

	if _, err := x.AdjustForEdit(EditDelta{At: 0, Inserted: 1, Seq: 2}); !errors.Is(err, ErrStaleDelta) {
		t.Fatalf("seq skip: err = %v, want ErrStaleDelta", err)
	}
	if _, err := x.AdjustForEdit(EditDelta{At: 0, Inserted: 1, Seq: 1}); err != nil {
		t.Fatalf("first delta: %v", err)
	}
	// Replaying the same delta must be rejected too.
	if _, err := x.AdjustForEdit(EditDelta{At: 0, Inserted: 1, Seq: 1}); !errors.Is(err, ErrStaleDelta) {
		t.Fatalf("replay: err = %v, want ErrStaleDelta", err)
	}

	tr, _ := x.Get(id)
	if tr.Start != 3 || tr.End != 6 {
		t.Errorf("range = [%d,%d), want [3,6): rejected deltas must not mutate", tr.Start, tr.End)
	}
}

func TestRangeIndexOverlapping(t *testing.T) {
	x := NewRangeIndex()
	a := addRange(t, x, 0, 5, 20)
	b := addRange(t, x, 3, 10, 20)
	addRange(t, x, 15, 20, 20)

	got := x.Overlapping(4, 12)
	if len(got) != 2 {
		t.Fatalf("got %d ranges, want 2", len(got))
	}
	if got[0].ID != a || got[1].ID != b {
		t.Errorf("order = [%d, %d], want [%d, %d]", got[0].ID, got[1].ID, a, b)
	}

	// Half-open: a range ending at the query start does not intersect.
	if got := x.Overlapping(5, 6); len(got) != 1 || got[0].ID != b {
		t.Errorf("Overlapping(5,6) = %v, want only range b", got)
	}
}

func TestRangeIndexIDsAscendByCreation(t *testing.T) {
	x := NewRangeIndex()
	var prev RangeID
	for i := 0; i < 5; i++ {
		id := addRange(t, x, i, i+1, 10)
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestRangeIndexRemoveByTag(t *testing.T) {
	x := NewRangeIndex()
	a, _ := x.Add("keep", 0, 2, 10)
	b, _ := x.Add("drop", 2, 4, 10)
	c, _ := x.Add("drop", 4, 6, 10)

	dead := x.removeByTag("drop")
	if len(dead) != 2 || dead[0] != b || dead[1] != c {
		t.Fatalf("dead = %v, want [%d %d]", dead, b, c)
	}
	if x.Len() != 1 {
		t.Fatalf("Len = %d, want 1", x.Len())
	}
	if _, ok := x.Get(a); !ok {
		t.Error("unrelated range removed")
	}
}

func TestRangeIndexExpand(t *testing.T) {
	x := NewRangeIndex()
	id := addRange(t, x, 4, 8, 20)

	if err := x.expand(id, 2, 6); err != nil {
		t.Fatalf("expand: %v", err)
	}
	if tr, _ := x.Get(id); tr.Start != 2 || tr.End != 8 {
		t.Fatalf("after left grow: [%d,%d)", tr.Start, tr.End)
	}
	if err := x.expand(id, 6, 12); err != nil {
		t.Fatalf("expand: %v", err)
	}
	if tr, _ := x.Get(id); tr.Start != 2 || tr.End != 12 {
		t.Fatalf("after right grow: [%d,%d)", tr.Start, tr.End)
	}
	// Interval already covered: no change.
	if err := x.expand(id, 3, 5); err != nil {
		t.Fatalf("expand: %v", err)
	}
	if tr, _ := x.Get(id); tr.Start != 2 || tr.End != 12 {
		t.Fatalf("after covered expand: [%d,%d)", tr.Start, tr.End)
	}
}
