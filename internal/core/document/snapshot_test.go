package document

import "testing"

func TestSnapshotRoundTrip(t *testing.T) {
	d := newTestDoc(t, "buy milk and eggs")
	groceries := createTag(t, d, "groceries")
	urgent := createTag(t, d, "urgent")
	if err := d.SetTagMode(urgent, ModeTextColor); err != nil {
		t.Fatal(err)
	}
	a := tagRange(t, d, groceries, 4, 8)
	b := tagRange(t, d, urgent, 0, 3)
	if err := d.MoveRange(b, 0); err != nil {
		t.Fatal(err)
	}

	snap := d.Snapshot()
	restored := FromSnapshot(snap)
	if err := restored.CheckInvariants(); err != nil {
		t.Fatalf("restored document: %v", err)
	}
	if !restored.Snapshot().Equal(snap) {
		t.Fatal("round trip changed the snapshot")
	}

	if restored.Text() != d.Text() {
		t.Errorf("text = %q", restored.Text())
	}
	if tr, ok := restored.Range(a); !ok || tr.Start != 4 || tr.End != 8 {
		t.Errorf("range a = %+v, %v", tr, ok)
	}
	if tag, ok := restored.Tag(urgent); !ok || tag.Mode != ModeTextColor {
		t.Errorf("urgent tag = %+v, %v", tag, ok)
	}
	items := restored.OrderedRanges()
	if len(items) != 2 || items[0].Range.ID != b {
		t.Errorf("order lost: %+v", items)
	}

	// New ranges in the restored document must not collide with loaded ids.
	c := tagRange(t, restored, groceries, 13, 17)
	if c == a || c == b {
		t.Fatalf("id %d reused", c)
	}
}

func TestFromSnapshotRepairsBadData(t *testing.T) {
	snap := &Snapshot{
		Version: SnapshotVersion,
		Text:    "0123456789",
		Tags: []TagSnapshot{
			{ID: "t1", Name: "good", Color: RGBA{R: 1, A: 255}, Mode: "background"},
			{ID: "", Name: "no id", Color: RGBA{A: 255}, Mode: "background"},
			{ID: "t2", Name: "  ", Color: RGBA{A: 255}, Mode: "background"},
		},
		Ranges: []RangeSnapshot{
			{ID: 1, Tag: "t1", Start: 0, End: 4},
			{ID: 2, Tag: "ghost", Start: 1, End: 2}, // unknown tag
			{ID: 3, Tag: "t1", Start: 5, End: 3},    // inverted
			{ID: 4, Tag: "t1", Start: 8, End: 25},   // end past buffer: clamp
		},
		Order:       []RangeID{99, 4, 4, 1}, // stale id, duplicate
		NextRangeID: 5,
	}

	d := FromSnapshot(snap)
	if err := d.CheckInvariants(); err != nil {
		t.Fatalf("repaired document: %v", err)
	}
	if len(d.Tags()) != 1 {
		t.Errorf("tags = %d, want 1", len(d.Tags()))
	}
	if d.RangeCount() != 2 {
		t.Errorf("ranges = %d, want 2", d.RangeCount())
	}
	if tr, ok := d.Range(4); !ok || tr.End != 10 {
		t.Errorf("clamped range = %+v, %v", tr, ok)
	}
	items := d.OrderedRanges()
	if len(items) != 2 || items[0].Range.ID != 4 || items[1].Range.ID != 1 {
		t.Errorf("order = %+v", items)
	}
}

func TestFromSnapshotUnknownModeDefaultsToBackground(t *testing.T) {
	snap := &Snapshot{
		Version: SnapshotVersion,
		Text:    "x",
		Tags: []TagSnapshot{
			{ID: "t1", Name: "old", Color: RGBA{A: 255}, Mode: "glow"},
		},
	}
	d := FromSnapshot(snap)
	tag, ok := d.Tag("t1")
	if !ok {
		t.Fatal("tag dropped")
	}
	if tag.Mode != ModeBackground {
		t.Errorf("mode = %v", tag.Mode)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	d := newTestDoc(t, "hello")
	tag := createTag(t, d, "t")
	tagRange(t, d, tag, 0, 5)

	snap := d.Snapshot()
	if _, err := d.ApplyEdit(5, 0, " world"); err != nil {
		t.Fatal(err)
	}
	if err := d.DeleteTag(tag); err != nil {
		t.Fatal(err)
	}

	if snap.Text != "hello" {
		t.Errorf("snapshot text mutated: %q", snap.Text)
	}
	if len(snap.Ranges) != 1 || len(snap.Tags) != 1 {
		t.Errorf("snapshot lost entries: %d ranges, %d tags", len(snap.Ranges), len(snap.Tags))
	}
}

func TestSnapshotEqual(t *testing.T) {
	d := newTestDoc(t, "hello")
	tag := createTag(t, d, "t")
	tagRange(t, d, tag, 0, 5)

	a := d.Snapshot()
	b := d.Snapshot()
	if !a.Equal(b) {
		t.Fatal("identical snapshots not equal")
	}

	if _, err := d.ApplyEdit(5, 0, "!"); err != nil {
		t.Fatal(err)
	}
	if a.Equal(d.Snapshot()) {
		t.Fatal("snapshots of different states equal")
	}

	if a.Equal(nil) {
		t.Fatal("Equal(nil) = true")
	}
	var nilSnap *Snapshot
	if !nilSnap.Equal(nil) {
		t.Fatal("nil.Equal(nil) = false")
	}
}
