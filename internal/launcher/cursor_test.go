package launcher

import "testing"

func TestCursor_Move(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		count int
		want  int
	}{
		{name: "down", start: 0, delta: 1, count: 3, want: 1},
		{name: "clamp bottom", start: 2, delta: 1, count: 3, want: 2},
		{name: "clamp top", start: 0, delta: -1, count: 3, want: 0},
		{name: "big jump", start: 1, delta: 100, count: 5, want: 4},
		{name: "empty list no-op", start: 0, delta: 1, count: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cursor{index: tt.start}
			c.Move(tt.delta, tt.count)
			if c.Index() != tt.want {
				t.Errorf("Move(%d, %d) from %d = %d, want %d", tt.delta, tt.count, tt.start, c.Index(), tt.want)
			}
		})
	}
}

func TestCursor_ClampAndPick(t *testing.T) {
	list := []Suggestion{{Title: "a"}, {Title: "b"}}

	c := Cursor{index: 1}
	if s, ok := c.Pick(list); !ok || s.Title != "b" {
		t.Errorf("Pick() = %v, %v, want b", s, ok)
	}

	c.Clamp(1)
	if c.Index() != 0 {
		t.Errorf("Clamp(1) = %d, want 0", c.Index())
	}

	c.Clamp(0)
	if _, ok := c.Pick(nil); ok {
		t.Error("Pick() on an empty list should report no selection")
	}

	if c.Set(5, 2) {
		t.Error("Set() outside the list should fail")
	}
}
