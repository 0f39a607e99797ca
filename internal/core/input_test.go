package core

import "testing"

func TestEdgeDetectorPressOnlyOnFirstFrame(t *testing.T) {
	d := NewEdgeDetector()

	f1 := d.Frame([]Action{ActionPause})
	if !f1.WasPressed(ActionPause) || !f1.IsHeld(ActionPause) {
		t.Fatalf("first frame: expected Pause pressed and held, got %+v", f1)
	}

	f2 := d.Frame([]Action{ActionPause})
	if f2.WasPressed(ActionPause) {
		t.Error("second frame: Pause should not be pressed again while held")
	}
	if !f2.IsHeld(ActionPause) {
		t.Error("second frame: Pause should still be held")
	}

	f3 := d.Frame(nil)
	if f3.IsHeld(ActionPause) || f3.WasPressed(ActionPause) {
		t.Error("third frame: Pause released, expected neither held nor pressed")
	}

	f4 := d.Frame([]Action{ActionPause})
	if !f4.WasPressed(ActionPause) {
		t.Error("fourth frame: Pause should be pressed again after release")
	}
}

func TestEdgeDetectorIgnoresNone(t *testing.T) {
	d := NewEdgeDetector()
	f := d.Frame([]Action{ActionNone, ActionUp})
	if f.IsHeld(ActionNone) {
		t.Error("ActionNone should never be held")
	}
	if !f.WasPressed(ActionUp) {
		t.Error("Up should be pressed")
	}
}

func TestEdgeDetectorReset(t *testing.T) {
	d := NewEdgeDetector()
	d.Frame([]Action{ActionRestart})
	d.Reset()
	if f := d.Frame([]Action{ActionRestart}); !f.WasPressed(ActionRestart) {
		t.Error("after Reset a held action should count as a new press")
	}
}

func TestInputFrameCloneAndClear(t *testing.T) {
	f := NewInputFrame()
	f.Press(ActionSave)
	f.Hold(ActionLeft)

	c := f.Clone()
	f.Clear()

	if f.IsHeld(ActionLeft) || f.WasPressed(ActionSave) {
		t.Error("Clear should remove all actions")
	}
	if !c.IsHeld(ActionLeft) || !c.WasPressed(ActionSave) {
		t.Error("Clone should be unaffected by Clear on the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionLoad.String() != "Load" {
		t.Errorf("ActionLoad.String() = %q", ActionLoad.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action String() = %q", Action(99).String())
	}
}
