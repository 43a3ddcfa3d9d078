package word

import "testing"

func TestNormalizeFoldsNegativeZero(t *testing.T) {
	if got := Normalize(NegativeZero); got != 0 {
		t.Errorf("Normalize(0x7FFF) = %#x, want 0", got)
	}
	if got := Normalize(0x1234); got != 0x1234 {
		t.Errorf("Normalize(0x1234) = %#x, want 0x1234", got)
	}
}

func TestAddCommutative(t *testing.T) {
	pairs := []struct{ a, b Word }{
		{0x0001, 0x0002},
		{0x4000, 0x0001},
		{0x7FFE, 0x0001},
		{0x3FFF, 0x3FFF},
	}
	for _, p := range pairs {
		if Add(p.a, p.b) != Add(p.b, p.a) {
			t.Errorf("Add(%#x,%#x) != Add(%#x,%#x)", p.a, p.b, p.b, p.a)
		}
	}
}

func TestAddIdentity(t *testing.T) {
	for _, a := range []Word{0, 1, 0x3FFF, 0x4000, 0x7FFE} {
		if got := Add(a, 0); got != Normalize(a) {
			t.Errorf("Add(%#x,0) = %#x, want %#x", a, got, Normalize(a))
		}
	}
}

func TestAddComplementIsZero(t *testing.T) {
	for _, a := range []Word{0, 1, 0x3FFF, 0x4000, 0x7FFE} {
		if got := Add(a, Complement(a)); got != 0 {
			t.Errorf("Add(%#x, Complement(%#x)) = %#x, want 0", a, a, got)
		}
	}
}

func TestAddNoStoredNegativeZero(t *testing.T) {
	// 0x7FFE + 0x0001 produces 0x7FFF before normalization.
	if got := Add(0x7FFE, 0x0001); got != 0 {
		t.Errorf("Add(0x7FFE,0x0001) = %#x, want 0", got)
	}
}

func TestSubAddDuality(t *testing.T) {
	pairs := []struct{ a, b Word }{
		{0x0010, 0x0005},
		{0x0005, 0x0010},
		{0x4001, 0x0002},
	}
	for _, p := range pairs {
		if Sub(p.a, p.b) != Add(p.a, Complement(p.b)) {
			t.Errorf("Sub(%#x,%#x) != Add(a,Complement(b))", p.a, p.b)
		}
	}
}

func TestComplementOfZero(t *testing.T) {
	if got := Complement(0); got != NegativeZero {
		t.Errorf("Complement(0) = %#x, want 0x7FFF", got)
	}
}

func TestSign(t *testing.T) {
	cases := []struct {
		v    Word
		want int
	}{
		{0, 0},
		{NegativeZero, 0},
		{1, 1},
		{0x4001, -1},
		{0x4000, -1},
	}
	for _, c := range cases {
		if got := Sign(c.v); got != c.want {
			t.Errorf("Sign(%#x) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestIsNegative(t *testing.T) {
	if IsNegative(0x4000) != true {
		t.Error("0x4000 should be negative")
	}
	if IsNegative(0x3FFF) != false {
		t.Error("0x3FFF should not be negative")
	}
}

func TestParity(t *testing.T) {
	cases := []struct {
		v    Word
		want bool
	}{
		{0x0000, false},
		{0x0001, true},
		{0x0003, false},
		{0x7FFF, true}, // 15 bits set -> odd
	}
	for _, c := range cases {
		if got := Parity(c.v); got != c.want {
			t.Errorf("Parity(%#x) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestFuzzNoNegativeZero(t *testing.T) {
	for a := 0; a < 0x8000; a += 37 {
		for b := 0; b < 0x8000; b += 53 {
			if got := Add(Word(a), Word(b)); got == NegativeZero {
				t.Fatalf("Add(%#x,%#x) produced negative zero", a, b)
			}
		}
	}
}
