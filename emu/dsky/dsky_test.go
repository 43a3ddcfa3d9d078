package dsky

import "testing"

type fakeRupt struct {
	triggered []string
}

func (r *fakeRupt) Trigger(kind string) {
	r.triggered = append(r.triggered, kind)
}

func TestInputValidPairBuffersAndLightsKeyRel(t *testing.T) {
	rupt := &fakeRupt{}
	d := New(rupt)
	d.Input(16, 25)
	if !d.Light(KeyRel) {
		t.Error("KEY_REL should be lit after valid input")
	}
	if len(rupt.triggered) != 1 || rupt.triggered[0] != "KEYRUPT" {
		t.Errorf("triggered = %v, want [KEYRUPT]", rupt.triggered)
	}
}

func TestInputOutOfRangeSetsOprErr(t *testing.T) {
	rupt := &fakeRupt{}
	d := New(rupt)
	d.Input(200, 0)
	if !d.Light(OprErr) {
		t.Error("OPR_ERR should be lit on out-of-range verb")
	}
}

func TestOutputDecFormatting(t *testing.T) {
	d := New(nil)
	d.Input(16, 25)
	disp, ok := d.Output()
	if !ok {
		t.Fatal("expected Output to succeed with a buffered pair")
	}
	if disp[0] != "00016" || disp[1] != "00025" {
		t.Errorf("display = %v, want [00016 00025 ...]", disp[:2])
	}
	for i := 2; i < 6; i++ {
		if disp[i] != "00000" {
			t.Errorf("display[%d] = %q, want 00000", i, disp[i])
		}
	}
	if !d.Light(Prog) {
		t.Error("PROG should be lit after Output")
	}
}

func TestOutputOctFormatting(t *testing.T) {
	d := New(nil)
	d.SetMode(OCT)
	d.Input(16, 25)
	disp, _ := d.Output()
	if disp[0] != "00020" || disp[1] != "00031" {
		t.Errorf("oct display = %v, want [00020 00031]", disp[:2])
	}
}

func TestOutputEmptyBufferReturnsFalse(t *testing.T) {
	d := New(nil)
	_, ok := d.Output()
	if ok {
		t.Error("Output on empty buffer should return false")
	}
}

func TestSetModeRejectsInvalid(t *testing.T) {
	d := New(nil)
	d.SetMode(Mode(99))
	if !d.Light(OprErr) {
		t.Error("invalid mode should set OPR_ERR")
	}
	if d.Mode != DEC {
		t.Error("invalid SetMode should not change the mode")
	}
}

func TestBufferIsFIFO(t *testing.T) {
	d := New(nil)
	d.Input(1, 2)
	d.Input(3, 4)
	disp, _ := d.Output()
	if disp[0] != "00001" {
		t.Errorf("first Output should drain oldest pair, got %q", disp[0])
	}
	disp, _ = d.Output()
	if disp[0] != "00003" {
		t.Errorf("second Output should drain next pair, got %q", disp[0])
	}
}
