package document

import "sort"

// RangeID identifies a tagged range. Ids are allocated from a monotonic
// per-document counter and never reused, so ascending id equals creation
// order, which is what the resolver's blend order relies on.
type RangeID uint64

// TaggedRange assigns one tag to a half-open interval [Start, End) of buffer
// offsets. End is always strictly greater than Start while the range lives.
type TaggedRange struct {
	ID    RangeID
	Tag   TagID
	Start int
	End   int
}

func (tr TaggedRange) intersects(start, end int) bool {
	return tr.Start < end && start < tr.End
}

// RangeIndex owns the set of tagged ranges anchored to buffer offsets.
// Overlap between ranges, of the same tag or different tags, is the normal
// case and resolved at render time.
type RangeIndex struct {
	ranges map[RangeID]*TaggedRange
	nextID RangeID
	seq    uint64
}

// NewRangeIndex returns an empty index synchronized to buffer revision 0.
func NewRangeIndex() *RangeIndex {
	return &RangeIndex{ranges: make(map[RangeID]*TaggedRange), nextID: 1}
}

// Add inserts a new range over [start, end). bufLen bounds the interval.
func (x *RangeIndex) Add(tag TagID, start, end, bufLen int) (RangeID, error) {
	if start < 0 || end > bufLen || start >= end {
		return 0, ErrInvalidRange
	}
	id := x.nextID
	x.nextID++
	x.ranges[id] = &TaggedRange{ID: id, Tag: tag, Start: start, End: end}
	return id, nil
}

// Remove deletes a range by id.
func (x *RangeIndex) Remove(id RangeID) bool {
	if _, ok := x.ranges[id]; !ok {
		return false
	}
	delete(x.ranges, id)
	return true
}

// Get looks a range up by id.
func (x *RangeIndex) Get(id RangeID) (TaggedRange, bool) {
	tr, ok := x.ranges[id]
	if !ok {
		return TaggedRange{}, false
	}
	return *tr, true
}

// Len returns the number of live ranges.
func (x *RangeIndex) Len() int {
	return len(x.ranges)
}

// All returns every live range ordered by start ascending, ties broken by id.
func (x *RangeIndex) All() []TaggedRange {
	out := make([]TaggedRange, 0, len(x.ranges))
	for _, tr := range x.ranges {
		out = append(out, *tr)
	}
	sortRanges(out)
	return out
}

// Overlapping returns the ranges intersecting [start, end), ordered by start
// ascending, ties broken by id ascending.
func (x *RangeIndex) Overlapping(start, end int) []TaggedRange {
	var out []TaggedRange
	for _, tr := range x.ranges {
		if tr.intersects(start, end) {
			out = append(out, *tr)
		}
	}
	sortRanges(out)
	return out
}

// AdjustForEdit rewrites every live range for one buffer edit and returns the
// ids of ranges that collapsed to nothing and were deleted. The delta must
// carry the next buffer sequence number; anything else is rejected as stale
// with no mutation.
//
// Shift rule: a start at or after the edit offset shifts, an end shifts only
// when strictly after it. Typing at a range's start slides the whole range
// right; typing at its end leaves it alone. Offsets inside the removed
// interval collapse onto the edit offset.
func (x *RangeIndex) AdjustForEdit(d EditDelta) ([]RangeID, error) {
	if d.Seq != x.seq+1 {
		return nil, ErrStaleDelta
	}
	x.seq = d.Seq

	var dead []RangeID
	for id, tr := range x.ranges {
		tr.Start = shiftStart(tr.Start, d)
		tr.End = shiftEnd(tr.End, d)
		if tr.Start >= tr.End {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		delete(x.ranges, id)
	}
	sort.Slice(dead, func(i, j int) bool { return dead[i] < dead[j] })
	return dead, nil
}

// removeByTag deletes every range referencing the tag and returns their ids,
// for the tag-deletion cascade.
func (x *RangeIndex) removeByTag(tag TagID) []RangeID {
	var dead []RangeID
	for id, tr := range x.ranges {
		if tr.Tag == tag {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		delete(x.ranges, id)
	}
	sort.Slice(dead, func(i, j int) bool { return dead[i] < dead[j] })
	return dead
}

// expand grows an existing range to the convex hull of itself and
// [start, end). Used when re-tagging a selection that touches the range.
func (x *RangeIndex) expand(id RangeID, start, end int) error {
	tr, ok := x.ranges[id]
	if !ok {
		return ErrUnknownRange
	}
	if start < tr.Start {
		tr.Start = start
	}
	if end > tr.End {
		tr.End = end
	}
	return nil
}

// syncTo pins the index to the buffer revision it was built against.
func (x *RangeIndex) syncTo(seq uint64) {
	x.seq = seq
}

// restore re-inserts a range from a snapshot, keeping its original id.
func (x *RangeIndex) restore(tr TaggedRange, bufLen int) error {
	if tr.ID == 0 || tr.Start < 0 || tr.End > bufLen || tr.Start >= tr.End {
		return ErrInvalidRange
	}
	if _, ok := x.ranges[tr.ID]; ok {
		return ErrInvalidRange
	}
	stored := tr
	x.ranges[tr.ID] = &stored
	if tr.ID >= x.nextID {
		x.nextID = tr.ID + 1
	}
	return nil
}

func shiftStart(pos int, d EditDelta) int {
	switch {
	case pos < d.At:
		return pos
	case pos < d.At+d.Removed:
		return d.At
	default:
		return pos + d.Inserted - d.Removed
	}
}

func shiftEnd(pos int, d EditDelta) int {
	switch {
	case pos <= d.At:
		return pos
	case pos < d.At+d.Removed:
		return d.At
	default:
		return pos + d.Inserted - d.Removed
	}
}

func sortRanges(rs []TaggedRange) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Start != rs[j].Start {
			return rs[i].Start < rs[j].Start
		}
		return rs[i].ID < rs[j].ID
	})
}
