package screens

import "sort"

// lineIndex maps between flat rune offsets and (line, col) positions for the
// editor viewport. Rebuilt from the document text after every mutation; the
// engine itself only knows flat offsets.
type lineIndex struct {
	runes  []rune
	starts []int
}

func buildLineIndex(text string) *lineIndex {
	runes := []rune(text)
	starts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{runes: runes, starts: starts}
}

func (li *lineIndex) lineCount() int {
	return len(li.starts)
}

// lineOf returns the line containing the offset. Offsets past the end map to
// the last line.
func (li *lineIndex) lineOf(offset int) int {
	if offset <= 0 {
		return 0
	}
	// First start strictly greater than offset, minus one.
	idx := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset })
	return idx - 1
}

// lineStart returns the offset of the first rune of the line.
func (li *lineIndex) lineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(li.starts) {
		return len(li.runes)
	}
	return li.starts[line]
}

// lineEnd returns the offset just past the last visible rune of the line,
// excluding the trailing newline.
func (li *lineIndex) lineEnd(line int) int {
	if line < 0 {
		return 0
	}
	if line+1 < len(li.starts) {
		return li.starts[line+1] - 1
	}
	return len(li.runes)
}

// colOf returns the column of the offset within its line.
func (li *lineIndex) colOf(offset int) int {
	return offset - li.lineStart(li.lineOf(offset))
}

// offsetAt returns the offset for (line, col), clamping both into range.
func (li *lineIndex) offsetAt(line, col int) int {
	if line < 0 {
		line = 0
	}
	if line >= len(li.starts) {
		line = len(li.starts) - 1
	}
	start := li.lineStart(line)
	length := li.lineEnd(line) - start
	if col < 0 {
		col = 0
	}
	if col > length {
		col = length
	}
	return start + col
}

// lineText returns the visible text of the line without the newline.
func (li *lineIndex) lineText(line int) []rune {
	return li.runes[li.lineStart(line):li.lineEnd(line)]
}
