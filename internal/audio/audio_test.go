package audio

import (
	"errors"
	"fmt"
	"testing"
)

func newTracker() *Tracker {
	return NewTracker([]string{"onflip", "crypt"}, []string{"coin", "hit"}, nil)
}

func TestPlayAmbient(t *testing.T) {
	tr := newTracker()

	if err := tr.PlayAmbient("onflip", 1.5); err != nil {
		t.Fatalf("PlayAmbient() error = %v", err)
	}
	track, vol := tr.Current()
	if track != "onflip" || vol != 1 || tr.State() != Playing {
		t.Errorf("Current() = %q, %v state %s", track, vol, tr.State())
	}

	// same track keeps its volume
	_ = tr.PlayAmbient("onflip", 0.2)
	if _, vol := tr.Current(); vol != 1 {
		t.Errorf("replaying the current track changed volume to %v", vol)
	}

	_ = tr.PlayAmbient("crypt", 0.5)
	if track, vol := tr.Current(); track != "crypt" || vol != 0.5 {
		t.Errorf("Current() = %q, %v after switch", track, vol)
	}
}

func TestPlayAmbientUnknown(t *testing.T) {
	tr := newTracker()
	_ = tr.PlayAmbient("onflip", 1)

	err := tr.PlayAmbient("missing", 1)
	if !errors.Is(err, ErrUnknownTrack) {
		t.Fatalf("PlayAmbient(missing) error = %v, expected ErrUnknownTrack", err)
	}
	if track, _ := tr.Current(); track != "onflip" || tr.State() != Playing {
		t.Error("a failed PlayAmbient must not disturb the current track")
	}
}

func TestPauseResume(t *testing.T) {
	tests := []struct {
		name     string
		actions  func(*Tracker)
		expected State
	}{
		{"pause while stopped", func(tr *Tracker) { tr.Pause() }, Stopped},
		{"resume while stopped", func(tr *Tracker) { tr.Resume() }, Stopped},
		{"pause", func(tr *Tracker) { _ = tr.PlayAmbient("onflip", 1); tr.Pause() }, Paused},
		{"pause twice", func(tr *Tracker) { _ = tr.PlayAmbient("onflip", 1); tr.Pause(); tr.Pause() }, Paused},
		{"resume", func(tr *Tracker) { _ = tr.PlayAmbient("onflip", 1); tr.Pause(); tr.Resume() }, Playing},
		{"stop", func(tr *Tracker) { _ = tr.PlayAmbient("onflip", 1); tr.Stop() }, Stopped},
		{"replay while paused stays paused", func(tr *Tracker) {
			_ = tr.PlayAmbient("onflip", 1)
			tr.Pause()
			_ = tr.PlayAmbient("onflip", 1)
		}, Paused},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := newTracker()
			tc.actions(tr)
			if tr.State() != tc.expected {
				t.Errorf("State() = %s, expected %s", tr.State(), tc.expected)
			}
		})
	}
}

func TestPlayEffect(t *testing.T) {
	tr := newTracker().WithBell()

	if err := tr.PlayEffect("coin"); err != nil {
		t.Fatalf("PlayEffect(coin) error = %v", err)
	}
	if err := tr.PlayEffect("boom"); !errors.Is(err, ErrUnknownTrack) {
		t.Errorf("PlayEffect(boom) error = %v, expected ErrUnknownTrack", err)
	}
	tr.SetEffectsVolume(0)
	_ = tr.PlayEffect("hit")

	if got := tr.Played(); len(got) != 2 || got[0] != "coin" || got[1] != "hit" {
		t.Errorf("Played() = %v", got)
	}
	if n := tr.TakeBells(); n != 1 {
		t.Errorf("TakeBells() = %d, expected one ring", n)
	}
	if n := tr.TakeBells(); n != 0 {
		t.Errorf("TakeBells() = %d after draining", n)
	}
}

func TestPlayEffectWithoutBell(t *testing.T) {
	tr := newTracker()
	_ = tr.PlayEffect("coin")
	if n := tr.TakeBells(); n != 0 {
		t.Errorf("TakeBells() = %d without a bell", n)
	}
}

func TestPlayedIsBounded(t *testing.T) {
	effects := make([]string, 0, 100)
	for i := range 100 {
		effects = append(effects, fmt.Sprintf("fx%d", i))
	}
	tr := NewTracker(nil, effects, nil)
	for _, name := range effects {
		_ = tr.PlayEffect(name)
	}

	got := tr.Played()
	if len(got) != recentEffects {
		t.Fatalf("len(Played()) = %d, expected %d", len(got), recentEffects)
	}
	if got[0] != "fx68" || got[len(got)-1] != "fx99" {
		t.Errorf("Played() spans %s..%s, expected fx68..fx99", got[0], got[len(got)-1])
	}
}

func TestNopService(t *testing.T) {
	var s Service = Nop{}
	if err := s.PlayAmbient("anything", 1); err != nil {
		t.Error(err)
	}
	s.Pause()
	s.Resume()
	if err := s.PlayEffect("anything"); err != nil {
		t.Error(err)
	}
}
