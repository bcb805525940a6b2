package termline

import (
	"testing"
)

var _ Surface = (*TTYSurface)(nil)
var _ Surface = (*mockSurface)(nil)

func TestMockSurfaceTracking(t *testing.T) {
	m := newMockSurface(10, 24)

	m.Write("hello")
	if m.curRow != 0 || m.curCol != 5 {
		t.Fatalf("after text: (%d, %d), want (0, 5)", m.curRow, m.curCol)
	}

	m.Write("\r")
	if m.curCol != 0 {
		t.Fatalf("after CR: col %d, want 0", m.curCol)
	}

	m.Write("\x1b[3C")
	if m.curCol != 3 {
		t.Fatalf("after CSI 3C: col %d, want 3", m.curCol)
	}

	m.Write("\x1b[B\x1b[B\x1b[A")
	if m.curRow != 1 {
		t.Fatalf("after B B A: row %d, want 1", m.curRow)
	}

	m.Write("\x1b[F")
	if m.curRow != 0 || m.curCol != 0 {
		t.Fatalf("after CSI F: (%d, %d), want (0, 0)", m.curRow, m.curCol)
	}

	// Color and erase sequences must not move the cursor, multi-parameter
	// forms included.
	m.Write("\x1b[1;38;2;255;85;85m\x1b[K\x1b[0m")
	if m.curRow != 0 || m.curCol != 0 {
		t.Fatalf("after color/erase: (%d, %d), want (0, 0)", m.curRow, m.curCol)
	}
}

func TestMockSurfaceWraps(t *testing.T) {
	m := newMockSurface(5, 24)
	m.Write("abcdefg")

	// Same wrap rule as offsetToColRow.
	wantRow, wantCol := offsetToColRow("abcdefg", 7, 5)
	if m.curRow != wantRow || m.curCol != wantCol {
		t.Fatalf("wrapped to (%d, %d), want (%d, %d)", m.curRow, m.curCol, wantRow, wantCol)
	}
}
