package document

// TextBuffer owns the character sequence of a document. Offsets are logical
// rune positions, never byte positions, so multi-byte characters cannot be
// split by an edit.
type TextBuffer struct {
	runes []rune
	seq   uint64
}

// EditDelta describes one applied edit. The range index consumes it to shift
// every live range, and uses Seq to reject application against a stale
// buffer revision.
type EditDelta struct {
	At       int
	Removed  int
	Inserted int
	Seq      uint64
}

// NewTextBuffer builds a buffer over the given text.
func NewTextBuffer(text string) *TextBuffer {
	return &TextBuffer{runes: []rune(text)}
}

// Len returns the length in runes.
func (b *TextBuffer) Len() int {
	return len(b.runes)
}

// Seq returns the edit sequence number, incremented by every applied edit.
func (b *TextBuffer) Seq() uint64 {
	return b.seq
}

func (b *TextBuffer) String() string {
	return string(b.runes)
}

// Slice returns the text in [start, end), clamped to the buffer bounds.
func (b *TextBuffer) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(b.runes) {
		end = len(b.runes)
	}
	if start >= end {
		return ""
	}
	return string(b.runes[start:end])
}

// ApplyEdit replaces the removedLen runes at offset at with inserted and
// returns the resulting delta. Offsets outside the buffer are caller bugs and
// reported as ErrInvalidEdit without mutating anything.
func (b *TextBuffer) ApplyEdit(at, removedLen int, inserted string) (EditDelta, error) {
	if at < 0 || at > len(b.runes) || removedLen < 0 || at+removedLen > len(b.runes) {
		return EditDelta{}, ErrInvalidEdit
	}
	ins := []rune(inserted)

	next := make([]rune, 0, len(b.runes)-removedLen+len(ins))
	next = append(next, b.runes[:at]...)
	next = append(next, ins...)
	next = append(next, b.runes[at+removedLen:]...)
	b.runes = next
	b.seq++

	return EditDelta{At: at, Removed: removedLen, Inserted: len(ins), Seq: b.seq}, nil
}
