package core

import "testing"

func TestInputFrameKeepsOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionNone) // ignored
	f.Set(ActionLeft)
	f.Set(ActionRotate)

	want := []Action{ActionLeft, ActionLeft, ActionRotate}
	if len(f.Actions) != len(want) {
		t.Fatalf("Actions = %v, expected %v", f.Actions, want)
	}
	for i := range want {
		if f.Actions[i] != want[i] {
			t.Errorf("Actions[%d] = %v, expected %v", i, f.Actions[i], want[i])
		}
	}

	if !f.Has(ActionRotate) {
		t.Error("Has(Rotate) should be true")
	}
	if f.Has(ActionHardDrop) {
		t.Error("Has(HardDrop) should be false")
	}
}

func TestInputFrameCloneAndClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)

	clone := f.Clone()
	f.Clear()

	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}
	if !clone.Has(ActionPause) {
		t.Error("clone should be unaffected by Clear on the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionHardDrop.String() != "HardDrop" {
		t.Errorf("ActionHardDrop.String() = %q", ActionHardDrop.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
