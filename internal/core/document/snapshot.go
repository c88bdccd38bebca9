package document

// SnapshotVersion is the current structured save format version.
const SnapshotVersion = 1

// Snapshot is the serializable whole-document form: buffer text, tags,
// ranges and user order in one self-describing envelope.
type Snapshot struct {
	Version     int             `json:"version"`
	Text        string          `json:"text"`
	Tags        []TagSnapshot   `json:"tags"`
	Ranges      []RangeSnapshot `json:"ranges"`
	Order       []RangeID       `json:"order"`
	NextRangeID RangeID         `json:"next_range_id"`
}

// TagSnapshot is the on-disk form of one tag.
type TagSnapshot struct {
	ID    TagID  `json:"id"`
	Name  string `json:"name"`
	Color RGBA   `json:"color"`
	Mode  string `json:"mode"`
}

// RangeSnapshot is the on-disk form of one tagged range.
type RangeSnapshot struct {
	ID    RangeID `json:"id"`
	Tag   TagID   `json:"tag"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}

// Snapshot captures the document as plain data. The result shares nothing
// with the document, so it can be handed to the persistence worker while the
// owner keeps mutating.
func (d *Document) Snapshot() *Snapshot {
	s := &Snapshot{
		Version:     SnapshotVersion,
		Text:        d.buffer.String(),
		NextRangeID: d.index.nextID,
	}
	for _, t := range d.registry.Tags() {
		s.Tags = append(s.Tags, TagSnapshot{ID: t.ID, Name: t.Name, Color: t.Color, Mode: t.Mode.String()})
	}
	for _, tr := range d.index.All() {
		s.Ranges = append(s.Ranges, RangeSnapshot{ID: tr.ID, Tag: tr.Tag, Start: tr.Start, End: tr.End})
	}
	s.Order = d.order.Ranked()
	return s
}

// FromSnapshot rebuilds a document, repairing instead of failing: ranges with
// unknown tags or inverted bounds are dropped, ends past the buffer are
// clamped, duplicate or stale order entries are discarded and live ranges
// missing from the order are appended. A loaded document always satisfies
// CheckInvariants.
func FromSnapshot(s *Snapshot) *Document {
	d := New(s.Text)
	n := d.buffer.Len()

	for _, t := range s.Tags {
		tag := Tag{ID: t.ID, Name: t.Name, Color: t.Color, Mode: ParseRenderMode(t.Mode)}
		if err := d.registry.restore(tag); err != nil {
			continue
		}
	}

	for _, rs := range s.Ranges {
		if _, ok := d.registry.Get(rs.Tag); !ok {
			continue
		}
		tr := TaggedRange{ID: rs.ID, Tag: rs.Tag, Start: rs.Start, End: rs.End}
		if tr.End > n {
			tr.End = n
		}
		if err := d.index.restore(tr, n); err != nil {
			continue
		}
	}
	if s.NextRangeID > d.index.nextID {
		d.index.nextID = s.NextRangeID
	}

	for _, id := range s.Order {
		if _, ok := d.index.Get(id); ok {
			d.order.Register(id)
		}
	}
	for _, tr := range d.index.All() {
		d.order.Register(tr.ID)
	}

	return d
}

// Equal reports whether two snapshots describe the same document state.
// Used by tests and by the store to skip no-op writes.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Version != o.Version || s.Text != o.Text ||
		len(s.Tags) != len(o.Tags) || len(s.Ranges) != len(o.Ranges) || len(s.Order) != len(o.Order) {
		return false
	}
	for i := range s.Tags {
		if s.Tags[i] != o.Tags[i] {
			return false
		}
	}
	for i := range s.Ranges {
		if s.Ranges[i] != o.Ranges[i] {
			return false
		}
	}
	for i := range s.Order {
		if s.Order[i] != o.Order[i] {
			return false
		}
	}
	return true
}
