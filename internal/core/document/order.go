package document

// OrderEntry pairs a range with its rank in the user-controlled sidebar
// order. Ranks are dense: always a contiguous permutation of 0..N-1.
type OrderEntry struct {
	Range RangeID
	Rank  int
}

// OrderModel maintains a total order over live ranges, independent of their
// textual position. It backs the drag-to-reorder sidebar list.
type OrderModel struct {
	ids []RangeID
	pos map[RangeID]int
}

// NewOrderModel returns an empty order.
func NewOrderModel() *OrderModel {
	return &OrderModel{pos: make(map[RangeID]int)}
}

// Register appends the range at the end (highest rank). Registering an
// already known range is a no-op.
func (o *OrderModel) Register(id RangeID) {
	if _, ok := o.pos[id]; ok {
		return
	}
	o.pos[id] = len(o.ids)
	o.ids = append(o.ids, id)
}

// Unregister removes the range and closes the rank gap it leaves.
func (o *OrderModel) Unregister(id RangeID) bool {
	idx, ok := o.pos[id]
	if !ok {
		return false
	}
	o.ids = append(o.ids[:idx], o.ids[idx+1:]...)
	o.reindex()
	return true
}

// Move relocates the range to the given rank, clamped into [0, N-1], and
// re-densifies all ranks.
func (o *OrderModel) Move(id RangeID, rank int) error {
	idx, ok := o.pos[id]
	if !ok {
		return ErrUnknownRange
	}
	o.ids = append(o.ids[:idx], o.ids[idx+1:]...)
	if rank < 0 {
		rank = 0
	}
	if rank > len(o.ids) {
		rank = len(o.ids)
	}
	o.ids = append(o.ids[:rank], append([]RangeID{id}, o.ids[rank:]...)...)
	o.reindex()
	return nil
}

// Rank returns the range's current rank.
func (o *OrderModel) Rank(id RangeID) (int, bool) {
	idx, ok := o.pos[id]
	return idx, ok
}

// Len returns the number of ordered ranges.
func (o *OrderModel) Len() int {
	return len(o.ids)
}

// Ranked returns the range ids in rank order.
func (o *OrderModel) Ranked() []RangeID {
	out := make([]RangeID, len(o.ids))
	copy(out, o.ids)
	return out
}

// Entries returns the full order as (range, rank) pairs in rank order.
func (o *OrderModel) Entries() []OrderEntry {
	out := make([]OrderEntry, len(o.ids))
	for i, id := range o.ids {
		out[i] = OrderEntry{Range: id, Rank: i}
	}
	return out
}

func (o *OrderModel) reindex() {
	for i, id := range o.ids {
		o.pos[id] = i
	}
	for id, idx := range o.pos {
		if idx >= len(o.ids) || o.ids[idx] != id {
			delete(o.pos, id)
		}
	}
}
