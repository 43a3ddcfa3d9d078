package cpu

import (
	"testing"

	"github.com/agcsim/agc/emu/word"
)

// dpAdd/dpSub carry and borrow propagation: the low words add or subtract
// natively, with overflow out of the low word fed as a one-bit carry (or
// borrow) into the end-around high-word add/sub, per the double-precision
// scheme DAD/DAS/DSU all share.

func TestDpAddCarriesLowOverflowIntoHighWord(t *testing.T) {
	// 0x7FFE + 0x7FFE overflows the low word's 15 bits; the carry must
	// land in the high word.
	highR, lowR := dpAdd(0, 0x7FFE, 0, 0x7FFE)
	if highR != 1 {
		t.Errorf("highR = %#x, want 1 (carry propagated)", highR)
	}
	if lowR != 0x7FFC {
		t.Errorf("lowR = %#x, want 0x7FFC", lowR)
	}
}

func TestDpAddWithNoOverflowCarriesNothing(t *testing.T) {
	highR, lowR := dpAdd(2, 10, 3, 20)
	if highR != 5 || lowR != 30 {
		t.Errorf("dpAdd(2,10,3,20) = (%d,%d), want (5,30)", highR, lowR)
	}
}

func TestDpSubBorrowsFromHighWord(t *testing.T) {
	// 0 - 1 in the low word must borrow one from the high-word subtract,
	// and the low word's 0x7FFF result normalizes to 0.
	highR, lowR := dpSub(5, 0, 0, 1)
	if highR != 4 {
		t.Errorf("highR = %#x, want 4 (borrow propagated)", highR)
	}
	if lowR != 0 {
		t.Errorf("lowR = %#x, want 0 (negative zero normalized)", lowR)
	}
}

func TestDpSubWithNoBorrow(t *testing.T) {
	highR, lowR := dpSub(10, 30, 3, 20)
	if highR != 7 || lowR != 10 {
		t.Errorf("dpSub(10,30,3,20) = (%d,%d), want (7,10)", highR, lowR)
	}
}

func TestExecDADPropagatesCarryThroughAccumulator(t *testing.T) {
	m := New()
	m.A, m.L = 0, 0x7FFE
	m.Mem.WriteErasable(10, 0)
	m.Mem.WriteErasable(11, 0x7FFE)

	if err := m.Execute(DAD, 10); err != nil {
		t.Fatal(err)
	}
	if m.A != 1 || m.L != 0x7FFC {
		t.Errorf("A=%#x L=%#x, want A=1 L=0x7FFC", m.A, m.L)
	}
}

func TestExecDASWritesBackSumWithCarry(t *testing.T) {
	m := New()
	m.A, m.L = 0, 0x7FFE
	m.Mem.WriteErasable(10, 0)
	m.Mem.WriteErasable(11, 0x7FFE)

	if err := m.Execute(DAS, 10); err != nil {
		t.Fatal(err)
	}
	if got := m.Mem.ReadErasable(10); got != 1 {
		t.Errorf("erasable[10] = %#x, want 1", got)
	}
	if got := m.Mem.ReadErasable(11); got != 0x7FFC {
		t.Errorf("erasable[11] = %#x, want 0x7FFC", got)
	}
}

func TestExecDSUPropagatesBorrow(t *testing.T) {
	m := New()
	m.A, m.L = 5, 0
	m.Mem.WriteErasable(10, 0)
	m.Mem.WriteErasable(11, 1)

	if err := m.Execute(DSU, 10); err != nil {
		t.Fatal(err)
	}
	if m.A != 4 || m.L != 0 {
		t.Errorf("A=%d L=%d, want A=4 L=0", m.A, m.L)
	}
}

func TestExecDCSComplementsBothWords(t *testing.T) {
	m := New()
	m.Mem.WriteErasable(5, 1)
	m.Mem.WriteErasable(6, 2)

	if err := m.Execute(DCS, 5); err != nil {
		t.Fatal(err)
	}
	if m.A != word.Complement(1) || m.L != word.Complement(2) {
		t.Errorf("A=%#x L=%#x, want complements of 1 and 2", m.A, m.L)
	}
}

func TestExecLXCHSwapsLWithMemory(t *testing.T) {
	m := New()
	m.L = 7
	m.Mem.WriteErasable(3, 99)

	if err := m.Execute(LXCH, 3); err != nil {
		t.Fatal(err)
	}
	if m.L != 99 {
		t.Errorf("L = %d, want 99", m.L)
	}
	if got := m.Mem.ReadErasable(3); got != 7 {
		t.Errorf("erasable[3] = %d, want 7", got)
	}
}

func TestExecQXCHSwapsQWithMemory(t *testing.T) {
	m := New()
	m.Q = 7
	m.Mem.WriteErasable(3, 99)

	if err := m.Execute(QXCH, 3); err != nil {
		t.Fatal(err)
	}
	if m.Q != 99 {
		t.Errorf("Q = %d, want 99", m.Q)
	}
	if got := m.Mem.ReadErasable(3); got != 7 {
		t.Errorf("erasable[3] = %d, want 7", got)
	}
}

func TestExecINCRIncrementsMemoryInPlace(t *testing.T) {
	m := New()
	m.Mem.WriteErasable(8, 41)

	if err := m.Execute(INCR, 8); err != nil {
		t.Fatal(err)
	}
	if got := m.Mem.ReadErasable(8); got != 42 {
		t.Errorf("erasable[8] = %d, want 42", got)
	}
}

func TestExecDIM(t *testing.T) {
	cases := []struct {
		name string
		in   word.Word
		want word.Word
	}{
		{"positive decrements toward zero", 5, 4},
		{"negative increments toward zero", word.SignBit | 5, word.SignBit | 6},
		{"zero increments away from zero", 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := New()
			m.Mem.WriteErasable(0, c.in)
			if err := m.Execute(DIM, 0); err != nil {
				t.Fatal(err)
			}
			if got := m.Mem.ReadErasable(0); got != c.want {
				t.Errorf("DIM(%#x) = %#x, want %#x", c.in, got, c.want)
			}
		})
	}
}

func TestExecCYRRotatesRightWithWraparound(t *testing.T) {
	m := New()
	m.Mem.WriteErasable(0, 1) // bit 0 set
	if err := m.Execute(CYR, 0); err != nil {
		t.Fatal(err)
	}
	if got := m.Mem.ReadErasable(0); got != word.SignBit {
		t.Errorf("CYR(1) = %#x, want %#x (bit 0 wrapped into bit 14)", got, word.SignBit)
	}
}

func TestExecSRShiftsRightDroppingLowBit(t *testing.T) {
	m := New()
	m.Mem.WriteErasable(0, 3)
	if err := m.Execute(SR, 0); err != nil {
		t.Fatal(err)
	}
	if got := m.Mem.ReadErasable(0); got != 1 {
		t.Errorf("SR(3) = %#x, want 1", got)
	}
}

func TestExecSLShiftsLeftMaskingOverflow(t *testing.T) {
	m := New()
	m.Mem.WriteErasable(0, word.SignBit)
	if err := m.Execute(SL, 0); err != nil {
		t.Fatal(err)
	}
	if got := m.Mem.ReadErasable(0); got != 0 {
		t.Errorf("SL(SignBit) = %#x, want 0 (shifted out of the 15-bit field)", got)
	}
}

func TestExecPINCOnlyIncrementsNonNegative(t *testing.T) {
	m := New()
	m.Mem.WriteErasable(0, 5)
	m.Mem.WriteErasable(1, word.SignBit|5)

	if err := m.Execute(PINC, 0); err != nil {
		t.Fatal(err)
	}
	if err := m.Execute(PINC, 1); err != nil {
		t.Fatal(err)
	}
	if got := m.Mem.ReadErasable(0); got != 6 {
		t.Errorf("erasable[0] = %d, want 6", got)
	}
	if got := m.Mem.ReadErasable(1); got != word.SignBit|5 {
		t.Errorf("erasable[1] = %#x, want unchanged %#x", got, word.SignBit|5)
	}
}

func TestExecMINCOnlyIncrementsNegative(t *testing.T) {
	m := New()
	m.Mem.WriteErasable(0, 5)
	m.Mem.WriteErasable(1, word.SignBit|5)

	if err := m.Execute(MINC, 0); err != nil {
		t.Fatal(err)
	}
	if err := m.Execute(MINC, 1); err != nil {
		t.Fatal(err)
	}
	if got := m.Mem.ReadErasable(0); got != 5 {
		t.Errorf("erasable[0] = %d, want unchanged 5", got)
	}
	if got := m.Mem.ReadErasable(1); got != word.SignBit|6 {
		t.Errorf("erasable[1] = %#x, want %#x", got, word.SignBit|6)
	}
}

func TestExecDXCHSwapsAccumulatorPairWithMemory(t *testing.T) {
	m := New()
	m.A, m.L = 1, 2
	m.Mem.WriteErasable(4, 10)
	m.Mem.WriteErasable(5, 20)

	if err := m.Execute(DXCH, 4); err != nil {
		t.Fatal(err)
	}
	if m.A != 10 || m.L != 20 {
		t.Errorf("A=%d L=%d, want A=10 L=20", m.A, m.L)
	}
	if got := m.Mem.ReadErasable(4); got != 1 {
		t.Errorf("erasable[4] = %d, want 1", got)
	}
	if got := m.Mem.ReadErasable(5); got != 2 {
		t.Errorf("erasable[5] = %d, want 2", got)
	}
}

func TestExecRANDReadsAndClearsChannel(t *testing.T) {
	m := New()
	m.Chan.Write(20, 0o17)

	if err := m.Execute(RAND, 20); err != nil {
		t.Fatal(err)
	}
	if m.A != 0o17 {
		t.Errorf("A = %#o, want 017", m.A)
	}
	if got := m.Chan.Peek(20); got != 0 {
		t.Errorf("channel 20 = %#o, want cleared to 0", got)
	}
}

func TestExecINDEXLoadsZDirectlyWithoutPostIncrement(t *testing.T) {
	m := New()
	m.Z = 0x100
	m.Mem.WriteErasable(0, 0x200)

	if err := m.Execute(INDEX, 0); err != nil {
		t.Fatal(err)
	}
	if m.Z != 0x200 {
		t.Errorf("Z = %#x, want 0x200 (no post-increment on an INDEX load)", m.Z)
	}
}

func TestExecCCS(t *testing.T) {
	// CCS classifies the memory operand's sign and acts on A accordingly
	// (per spec: complement A if the operand is positive, clear A's sign
	// bit if negative) — the operand's own value beyond its sign plays no
	// further part, so A is preset to a value distinct from the operand
	// to make each branch's effect on A observable. CCS never jumps, so
	// the engine's ordinary post-instruction increment always applies;
	// a zero operand adds its own extra increment on top of that, for a
	// net skip of two instead of one.
	cases := []struct {
		name    string
		operand word.Word
		aBefore word.Word
		wantA   word.Word
		wantAdv word.Word
	}{
		{"zero operand skips an extra instruction, A unaffected", 0, 5, 5, 2},
		{"positive operand complements A", 7, 5, word.Normalize(word.Complement(5)), 1},
		{"negative operand clears A's sign bit", word.SignBit | 7, word.SignBit | 5, 5, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := New()
			m.Z = 0x100
			m.A = c.aBefore
			m.Mem.WriteErasable(0, c.operand)
			base := m.Z
			if err := m.Execute(CCS, 0); err != nil {
				t.Fatal(err)
			}
			if m.A != c.wantA {
				t.Errorf("A = %#x, want %#x", m.A, c.wantA)
			}
			if want := base + c.wantAdv; m.Z != want {
				t.Errorf("Z = %#x, want %#x", m.Z, want)
			}
		})
	}
}

func TestExecMSKAndMASKAreEquivalent(t *testing.T) {
	for _, mnem := range []Mnemonic{MSK, MASK} {
		m := New()
		m.A = 0o17

		if err := m.Execute(mnem, 0o05); err != nil {
			t.Fatal(err)
		}
		if m.A != 0o05 {
			t.Errorf("%s: A = %#o, want 005", mnem, m.A)
		}
	}
}
