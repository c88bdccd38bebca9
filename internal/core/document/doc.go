// Package document implements the tagged range engine: a text buffer with
// user-defined colored tags attached to arbitrary sub-ranges, kept consistent
// under free-form editing.
//
// A single logical owner drives all mutation; the package does no locking.
// In the TUI that owner is the bubbletea update loop.
package document

import "fmt"

// Document is the aggregate of buffer, tag registry, range index and order
// model. It is the unit of persistence and always serializes to a
// self-consistent state.
type Document struct {
	buffer   *TextBuffer
	registry *TagRegistry
	index    *RangeIndex
	order    *OrderModel
}

// RangeListItem is one sidebar row: a live range with its user rank.
type RangeListItem struct {
	Range TaggedRange
	Rank  int
}

// New builds an empty document over the given text.
func New(text string) *Document {
	d := &Document{
		buffer:   NewTextBuffer(text),
		registry: NewTagRegistry(),
		index:    NewRangeIndex(),
		order:    NewOrderModel(),
	}
	d.index.syncTo(d.buffer.Seq())
	return d
}

// Text returns the full buffer text.
func (d *Document) Text() string {
	return d.buffer.String()
}

// TextIn returns the buffer text in [start, end), clamped.
func (d *Document) TextIn(start, end int) string {
	return d.buffer.Slice(start, end)
}

// Len returns the buffer length in runes.
func (d *Document) Len() int {
	return d.buffer.Len()
}

// Seq returns the buffer's edit sequence number.
func (d *Document) Seq() uint64 {
	return d.buffer.Seq()
}

// ApplyEdit applies one edit to the buffer and immediately rewrites every
// live range for it. Ranges that collapse to nothing are deleted together
// with their order entries, so the index/order bijection survives every edit.
func (d *Document) ApplyEdit(at, removedLen int, inserted string) (EditDelta, error) {
	delta, err := d.buffer.ApplyEdit(at, removedLen, inserted)
	if err != nil {
		return EditDelta{}, err
	}
	dead, err := d.index.AdjustForEdit(delta)
	if err != nil {
		// The index is always driven from the buffer it was built with, so a
		// stale delta here is a bug worth surfacing loudly.
		panic(fmt.Sprintf("document: range index out of sync: %v", err))
	}
	for _, id := range dead {
		d.order.Unregister(id)
	}
	return delta, nil
}

// CreateTag adds a tag with a fresh random color.
func (d *Document) CreateTag(name string) (Tag, error) {
	return d.registry.Create(name)
}

// RenameTag changes a tag's name.
func (d *Document) RenameTag(id TagID, name string) error {
	return d.registry.Rename(id, name)
}

// SetTagColor changes a tag's color.
func (d *Document) SetTagColor(id TagID, c RGBA) error {
	return d.registry.SetColor(id, c)
}

// SetTagMode changes a tag's render mode.
func (d *Document) SetTagMode(id TagID, m RenderMode) error {
	return d.registry.SetMode(id, m)
}

// DeleteTag removes a tag and cascades: every range referencing it is removed
// from the index and the order model.
func (d *Document) DeleteTag(id TagID) error {
	if !d.registry.remove(id) {
		return ErrUnknownTag
	}
	for _, rid := range d.index.removeByTag(id) {
		d.order.Unregister(rid)
	}
	return nil
}

// Tag looks a tag up by id.
func (d *Document) Tag(id TagID) (Tag, bool) {
	return d.registry.Get(id)
}

// Tags returns all tags sorted by name.
func (d *Document) Tags() []Tag {
	return d.registry.Tags()
}

// TagSelection assigns a tag to [start, end). When the selection touches an
// existing range of the same tag, that range grows to the union of the two
// intervals instead of stacking a duplicate; re-tagging is the only way a
// user resizes a range directly.
func (d *Document) TagSelection(tag TagID, start, end int) (RangeID, error) {
	if _, ok := d.registry.Get(tag); !ok {
		return 0, ErrUnknownTag
	}
	if start < 0 || end > d.buffer.Len() || start >= end {
		return 0, ErrInvalidRange
	}
	for _, tr := range d.index.All() {
		if tr.Tag == tag && tr.intersects(start, end) {
			if err := d.index.expand(tr.ID, start, end); err != nil {
				return 0, err
			}
			return tr.ID, nil
		}
	}
	id, err := d.index.Add(tag, start, end, d.buffer.Len())
	if err != nil {
		return 0, err
	}
	d.order.Register(id)
	return id, nil
}

// Untag removes a single range.
func (d *Document) Untag(id RangeID) error {
	if !d.index.Remove(id) {
		return ErrUnknownRange
	}
	d.order.Unregister(id)
	return nil
}

// Range looks a range up by id.
func (d *Document) Range(id RangeID) (TaggedRange, bool) {
	return d.index.Get(id)
}

// RangeCount returns the number of live ranges.
func (d *Document) RangeCount() int {
	return d.index.Len()
}

// RangesOverlapping returns the ranges intersecting [start, end), ordered by
// start then id.
func (d *Document) RangesOverlapping(start, end int) []TaggedRange {
	return d.index.Overlapping(start, end)
}

// MoveRange relocates a range in the sidebar order; the drag-and-drop
// reposition operation.
func (d *Document) MoveRange(id RangeID, rank int) error {
	return d.order.Move(id, rank)
}

// OrderedRanges returns the sidebar list in user rank order.
func (d *Document) OrderedRanges() []RangeListItem {
	entries := d.order.Entries()
	out := make([]RangeListItem, 0, len(entries))
	for _, e := range entries {
		tr, ok := d.index.Get(e.Range)
		if !ok {
			continue
		}
		out = append(out, RangeListItem{Range: tr, Rank: e.Rank})
	}
	return out
}

// Resolve partitions [start, end) into maximal runs of constant effective
// style, blending all active tags over the given base style.
func (d *Document) Resolve(start, end int, base Style) []Span {
	return ResolveStyles(d.index, d.registry, start, end, base)
}

// CheckInvariants verifies the containment and bijection invariants: every
// range's tag resolves, every range lies inside the buffer with start < end,
// and index and order model hold exactly the same ranges with dense ranks.
func (d *Document) CheckInvariants() error {
	n := d.buffer.Len()
	for _, tr := range d.index.All() {
		if _, ok := d.registry.Get(tr.Tag); !ok {
			return fmt.Errorf("document: range %d references unknown tag %s", tr.ID, tr.Tag)
		}
		if tr.Start < 0 || tr.End > n || tr.Start >= tr.End {
			return fmt.Errorf("document: range %d out of bounds: [%d,%d) in buffer of %d", tr.ID, tr.Start, tr.End, n)
		}
		if _, ok := d.order.Rank(tr.ID); !ok {
			return fmt.Errorf("document: range %d missing from order model", tr.ID)
		}
	}
	if d.order.Len() != d.index.Len() {
		return fmt.Errorf("document: order holds %d entries for %d ranges", d.order.Len(), d.index.Len())
	}
	for i, e := range d.order.Entries() {
		if e.Rank != i {
			return fmt.Errorf("document: rank %d at position %d", e.Rank, i)
		}
	}
	return nil
}
