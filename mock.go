package termline

import "strings"

// mockSurface implements Surface for testing without a terminal.
//
// Beyond recording raw output, it interprets the relative cursor-movement
// sequences the engine emits (\r, \r\n, CSI A/B/C/D/E/F/K) against the
// same wrap rule the engine computes with, tracking an absolute (row,
// col). Tests can then assert where the cursor physically landed instead
// of comparing escape-sequence byte streams, which is the only stable way
// to verify redraw and resize behavior.
type mockSurface struct {
	cols, rows int
	output     strings.Builder
	curRow     int
	curCol     int
}

func newMockSurface(cols, rows int) *mockSurface {
	return &mockSurface{cols: cols, rows: rows}
}

func (m *mockSurface) Write(text string) {
	m.output.WriteString(text)
	m.track(text)
}

func (m *mockSurface) Size() (cols, rows int) {
	return m.cols, m.rows
}

// Output returns everything written so far.
func (m *mockSurface) Output() string {
	return m.output.String()
}

// Reset clears the recorded output but keeps the cursor position.
func (m *mockSurface) Reset() {
	m.output.Reset()
}

// track replays text against the cursor model.
func (m *mockSurface) track(text string) {
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[':
			j := i + 2
			n := 0
			hasNum := false
			for j < len(runes) && (runes[j] == ';' || (runes[j] >= '0' && runes[j] <= '9')) {
				if runes[j] == ';' {
					j++
					continue
				}
				n = n*10 + int(runes[j]-'0')
				hasNum = true
				j++
			}
			if !hasNum {
				n = 1
			}
			if j >= len(runes) {
				return
			}
			switch runes[j] {
			case 'A':
				m.curRow -= n
			case 'B':
				m.curRow += n
			case 'C':
				m.curCol += n
			case 'D':
				m.curCol -= n
			case 'E':
				m.curRow++
				m.curCol = 0
			case 'F':
				m.curRow--
				m.curCol = 0
			case 'K', 'm':
				// erase / color: no cursor movement
			}
			i = j + 1
		case r == '\r':
			m.curCol = 0
			i++
		case r == '\n':
			m.curRow++
			i++
		default:
			// Same wrap rule as offsetToColRow: advance, wrap once the
			// column exceeds the width.
			m.curCol++
			if m.curCol > m.cols {
				m.curCol = 0
				m.curRow++
			}
			i++
		}
	}
}
