package lines

import "testing"

func TestLocate(t *testing.T) {
	buf := []byte("aaa\nbbb\nccc\n")

	tests := []struct {
		name       string
		start, end int
		want       Span
	}{
		{"within first line", 1, 2, Span{0, 4}},
		{"spans first and second line", 1, 5, Span{0, 8}},
		{"exact line end", 0, 4, Span{0, 4}},
		{"range stops before last line's terminator", 8, 11, Span{8, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Locate(buf, tt.start, tt.end, Terminator)
			if got != tt.want {
				t.Errorf("Locate(%d,%d) = %+v, want %+v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestLocateNoTrailingTerminator(t *testing.T) {
	buf := []byte("aaa\nbbb")
	got := Locate(buf, 4, 7, Terminator)
	want := Span{4, 7}
	if got != want {
		t.Errorf("Locate = %+v, want %+v", got, want)
	}
}

func TestCount(t *testing.T) {
	buf := []byte("a\nb\nc\n")
	if got := Count(buf, Terminator); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
	if got := Count(nil, Terminator); got != 0 {
		t.Errorf("Count(nil) = %d, want 0", got)
	}
}

func TestPreceding(t *testing.T) {
	buf := []byte("aaa\nbbb\nccc\nddd\n")
	// Lines: aaa@0, bbb@4, ccc@8, ddd@12

	tests := []struct {
		name string
		pos  int
		n    uint64
		want int
	}{
		{"zero lines before ccc start", 8, 0, 4},
		{"one line before ccc start", 8, 1, 0},
		{"zero lines before end of buffer", 16, 0, 12},
		{"clamped past buffer start", 4, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Preceding(buf, tt.pos, tt.n, Terminator)
			if got != tt.want {
				t.Errorf("Preceding(pos=%d, n=%d) = %d, want %d", tt.pos, tt.n, got, tt.want)
			}
		})
	}
}

func TestStep(t *testing.T) {
	buf := []byte("aaa\nbbb\nccc")
	spans := Step(buf, 0, len(buf), Terminator)
	want := []Span{{0, 4}, {4, 8}, {8, 11}}
	if len(spans) != len(want) {
		t.Fatalf("Step returned %d spans, want %d", len(spans), len(want))
	}
	for i, s := range spans {
		if s != want[i] {
			t.Errorf("span[%d] = %+v, want %+v", i, s, want[i])
		}
	}
}

func TestStepper(t *testing.T) {
	buf := []byte("aaa\nbbb\n")
	st := NewStepper(Terminator, 0, len(buf))

	span, ok := st.Next(buf)
	if !ok || span != (Span{0, 4}) {
		t.Fatalf("first Next() = %+v, %v", span, ok)
	}
	span, ok = st.Next(buf)
	if !ok || span != (Span{4, 8}) {
		t.Fatalf("second Next() = %+v, %v", span, ok)
	}
	if _, ok := st.Next(buf); ok {
		t.Fatalf("expected exhausted stepper")
	}
}
