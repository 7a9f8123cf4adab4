package f32

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect(10, 20, 0, 0)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(9.99, 19.99), true},
		{Pt(10, 5), false},
		{Pt(5, 20), false},
		{Pt(-0.01, 5), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("%v.Contains(%v) = %t; want %t", r, tt.p, got, tt.want)
		}
	}
}

func TestRectOffsets(t *testing.T) {
	r := Rect(0, 0, 10, 10).Add(Pt(5, 5))
	if want := Rect(5, 5, 15, 15); r != want {
		t.Errorf("got %v; want %v", r, want)
	}
	if got := r.Size(); got != Pt(10, 10) {
		t.Errorf("got size %v; want (10,10)", got)
	}
	if got := Rect(10, 8, 3, 3); got != Rect(3, 3, 10, 8) {
		t.Errorf("Rect should order its corners, got %v", got)
	}
}
