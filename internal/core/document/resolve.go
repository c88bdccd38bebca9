package document

import "sort"

// Style is the effective display style over one run: a text color and a
// background color, blended independently.
type Style struct {
	Foreground RGBA
	Background RGBA
}

// Span is a maximal run of constant effective style inside a resolved
// interval. Intervals are half-open rune offsets, like everywhere else.
type Span struct {
	Start int
	End   int
	Style Style
}

// ResolveStyles partitions [start, end) into ordered, gap-free spans of
// constant effective style. Tags active over a run are composited in
// ascending range-id order with the alpha-over operator: ModeBackground tags
// against base.Background, ModeTextColor tags against base.Foreground. Runs
// with no active tags keep the base style, and adjacent runs that end up
// identical are merged so boundary seams never surface.
//
// The function is stateless: the same index and interval always yield the
// same spans.
func ResolveStyles(index *RangeIndex, registry *TagRegistry, start, end int, base Style) []Span {
	if start >= end {
		return nil
	}

	active := index.Overlapping(start, end)
	if len(active) == 0 {
		return []Span{{Start: start, End: end, Style: base}}
	}

	// Distinct boundary offsets, clipped to the query interval, partition it
	// into runs where the set of active tags is constant.
	cuts := make([]int, 0, 2*len(active)+2)
	cuts = append(cuts, start, end)
	for _, tr := range active {
		if tr.Start > start && tr.Start < end {
			cuts = append(cuts, tr.Start)
		}
		if tr.End > start && tr.End < end {
			cuts = append(cuts, tr.End)
		}
	}
	sort.Ints(cuts)
	cuts = dedupInts(cuts)

	// Per-run blending wants ascending id, not the start-ordered sequence
	// Overlapping returns.
	byID := make([]TaggedRange, len(active))
	copy(byID, active)
	sort.Slice(byID, func(i, j int) bool { return byID[i].ID < byID[j].ID })

	spans := make([]Span, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		a, b := cuts[i], cuts[i+1]
		st := base
		for _, tr := range byID {
			if tr.Start > a || tr.End < b {
				continue
			}
			tag, ok := registry.Get(tr.Tag)
			if !ok {
				continue
			}
			switch tag.Mode {
			case ModeTextColor:
				st.Foreground = tag.Color.Over(st.Foreground)
			default:
				st.Background = tag.Color.Over(st.Background)
			}
		}
		if n := len(spans); n > 0 && spans[n-1].Style == st && spans[n-1].End == a {
			spans[n-1].End = b
			continue
		}
		spans = append(spans, Span{Start: a, End: b, Style: st})
	}
	return spans
}

func dedupInts(xs []int) []int {
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}
