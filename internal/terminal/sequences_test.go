package terminal

import "testing"

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{1, 1, "\x1b[1;1H"},
		{24, 80, "\x1b[24;80H"},
		{120, 7, "\x1b[120;7H"},
	}
	for _, tt := range tests {
		if got := MoveCursor(tt.row, tt.col); got != tt.want {
			t.Errorf("MoveCursor(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestAppendMoveCursor_KeepsPrefix(t *testing.T) {
	got := AppendMoveCursor([]byte(HideCursor), 3, 4)
	if string(got) != HideCursor+"\x1b[3;4H" {
		t.Fatalf("unexpected output: %q", got)
	}
}
