package termline

// isWordChar reports whether r belongs to a word for boundary detection.
// Letters, digits and underscore count; everything else separates words.
func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// wordBoundaries scans input for maximal word-character runs and returns
// their start offsets (leftSide) or end offsets, left to right. Offsets are
// rune offsets into input.
func wordBoundaries(input string, leftSide bool) []int {
	var boundaries []int
	runes := []rune(input)

	i := 0
	for i < len(runes) {
		if !isWordChar(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && isWordChar(runes[i]) {
			i++
		}
		if leftSide {
			boundaries = append(boundaries, start)
		} else {
			boundaries = append(boundaries, i)
		}
	}
	return boundaries
}

// closestLeftBoundary returns the nearest word boundary strictly left of
// offset, or 0 when there is none.
func closestLeftBoundary(input string, offset int) int {
	found := 0
	for _, b := range wordBoundaries(input, true) {
		if b >= offset {
			break
		}
		found = b
	}
	return found
}

// closestRightBoundary returns the nearest word boundary strictly right of
// offset, or the rune length of input when there is none.
func closestRightBoundary(input string, offset int) int {
	for _, b := range wordBoundaries(input, false) {
		if b > offset {
			return b
		}
	}
	return len([]rune(input))
}

// offsetToColRow translates a logical rune offset into the physical (row,
// col) it lands on when input is displayed with soft wrapping at maxCols.
// A newline resets the column and starts a new row; any other rune advances
// the column, wrapping once it exceeds maxCols. This is the primitive every
// redraw computation is built on.
func offsetToColRow(input string, offset, maxCols int) (row, col int) {
	runes := []rune(input)
	if offset > len(runes) {
		offset = len(runes)
	}
	for i := 0; i < offset; i++ {
		if runes[i] == '\n' {
			col = 0
			row++
			continue
		}
		col++
		if col > maxCols {
			col = 0
			row++
		}
	}
	return row, col
}

// countLines returns the number of physical rows input occupies when
// wrapped at maxCols. Always at least 1.
func countLines(input string, maxCols int) int {
	row, _ := offsetToColRow(input, len([]rune(input)), maxCols)
	return row + 1
}
