package text

import "testing"

func TestNewFromString(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Summary
	}{
		{"empty", "", Summary{FirstLineLen: 0}},
		{"single line", "abc", Summary{Bytes: 3, Chars: 3, Lines: Point{0, 3}, FirstLineLen: 3, RightmostPoint: Point{0, 3}}},
		{
			"two lines", "ab\ncde",
			Summary{Bytes: 6, Chars: 6, Lines: Point{1, 3}, FirstLineLen: 2, RightmostPoint: Point{1, 3}},
		},
		{
			"trailing newline", "ab\n",
			Summary{Bytes: 3, Chars: 3, Lines: Point{1, 0}, FirstLineLen: 2, RightmostPoint: Point{0, 2}},
		},
		{
			"multibyte", "é", // 2 bytes, 1 char
			Summary{Bytes: 2, Chars: 1, Lines: Point{0, 1}, FirstLineLen: 1, RightmostPoint: Point{0, 1}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NewFromString(c.in)
			if got != c.want {
				t.Errorf("NewFromString(%q) = %+v, want %+v", c.in, got, c.want)
			}
		})
	}
}

func TestAddAssociative(t *testing.T) {
	a := NewFromString("aa\nbb")
	b := NewFromString("b\nccc")
	c := NewFromString("\nddd\n")

	left := Add(Add(a, b), c)
	right := Add(a, Add(b, c))
	if left != right {
		t.Errorf("Add not associative: (a+b)+c=%+v, a+(b+c)=%+v", left, right)
	}
}

func TestAddMatchesWholeString(t *testing.T) {
	parts := []string{"hello ", "world\nsecond ", "line\nthird"}
	whole := ""
	sum := Zero
	for _, p := range parts {
		whole += p
		sum = Add(sum, NewFromString(p))
	}
	want := NewFromString(whole)
	if sum != want {
		t.Errorf("piecewise sum = %+v, want %+v", sum, want)
	}
}

func TestAddIdentity(t *testing.T) {
	s := NewFromString("some text\nwith lines")
	if got := Add(Zero, s); got != s {
		t.Errorf("Add(Zero, s) = %+v, want %+v", got, s)
	}
	if got := Add(s, Zero); got != s {
		t.Errorf("Add(s, Zero) = %+v, want %+v", got, s)
	}
}

func TestRightmostPointWidestWins(t *testing.T) {
	// "aa\nbbbb\nc" -> widest line is "bbbb" at row 1, col 4.
	sum := NewFromString("aa\nbbbb\nc")
	want := Point{Row: 1, Col: 4}
	if sum.RightmostPoint != want {
		t.Errorf("RightmostPoint = %v, want %v", sum.RightmostPoint, want)
	}
}

func TestPointArithmetic(t *testing.T) {
	p := New(2, 5)
	if got := p.Add(New(0, 3)); got != (Point{2, 8}) {
		t.Errorf("same-line add = %v", got)
	}
	if got := p.Add(New(1, 2)); got != (Point{3, 2}) {
		t.Errorf("new-line add = %v", got)
	}
	if got := New(3, 2).Sub(New(2, 5)); got != (Point{1, 2}) {
		t.Errorf("cross-row sub = %v", got)
	}
	if got := New(2, 8).Sub(New(2, 5)); got != (Point{0, 3}) {
		t.Errorf("same-row sub = %v", got)
	}
}

func TestPointCmp(t *testing.T) {
	if !New(1, 0).Less(New(1, 1)) {
		t.Error("expected (1,0) < (1,1)")
	}
	if !New(0, 9).Less(New(1, 0)) {
		t.Error("expected (0,9) < (1,0)")
	}
	if New(1, 1).Cmp(New(1, 1)) != 0 {
		t.Error("expected equal points to compare 0")
	}
}
