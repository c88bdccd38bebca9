package document

import "testing"

func rankedIDs(o *OrderModel) []RangeID {
	return o.Ranked()
}

func assertOrder(t *testing.T, o *OrderModel, want []RangeID) {
	t.Helper()
	got := rankedIDs(o)
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	for i, e := range o.Entries() {
		if e.Rank != i {
			t.Fatalf("rank at position %d is %d; ranks must be dense", i, e.Rank)
		}
	}
}

func TestOrderRegisterAppends(t *testing.T) {
	o := NewOrderModel()
	o.Register(1)
	o.Register(2)
	o.Register(3)
	assertOrder(t, o, []RangeID{1, 2, 3})

	// Re-registering must not duplicate or move.
	o.Register(2)
	assertOrder(t, o, []RangeID{1, 2, 3})
}

func TestOrderMove(t *testing.T) {
	o := NewOrderModel()
	o.Register(1)
	o.Register(2)
	o.Register(3)

	// Third item dragged to the top.
	if err := o.Move(3, 0); err != nil {
		t.Fatalf("Move: %v", err)
	}
	assertOrder(t, o, []RangeID{3, 1, 2})

	if err := o.Move(3, 1); err != nil {
		t.Fatalf("Move: %v", err)
	}
	assertOrder(t, o, []RangeID{1, 3, 2})

	// Out-of-bounds targets clamp to the ends.
	if err := o.Move(1, 99); err != nil {
		t.Fatalf("Move: %v", err)
	}
	assertOrder(t, o, []RangeID{3, 2, 1})
	if err := o.Move(1, -5); err != nil {
		t.Fatalf("Move: %v", err)
	}
	assertOrder(t, o, []RangeID{1, 3, 2})
}

func TestOrderMoveUnknown(t *testing.T) {
	o := NewOrderModel()
	o.Register(1)
	if err := o.Move(42, 0); err != ErrUnknownRange {
		t.Fatalf("err = %v, want ErrUnknownRange", err)
	}
}

func TestOrderUnregisterClosesGap(t *testing.T) {
	o := NewOrderModel()
	o.Register(1)
	o.Register(2)
	o.Register(3)

	if !o.Unregister(2) {
		t.Fatal("Unregister returned false for live id")
	}
	assertOrder(t, o, []RangeID{1, 3})
	if rank, ok := o.Rank(3); !ok || rank != 1 {
		t.Errorf("Rank(3) = %d,%v, want 1,true", rank, ok)
	}
	if _, ok := o.Rank(2); ok {
		t.Error("removed id still has a rank")
	}
	if o.Unregister(2) {
		t.Error("Unregister returned true for dead id")
	}
}
