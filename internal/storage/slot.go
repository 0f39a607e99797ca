package storage

import (
	"hash/fnv"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// maxUserSlots bounds the slot numbers handed out by SlotFor.
const maxUserSlots = 1 << 20

// Slot saves to and loads from one fixed slot of a Store.
type Slot struct {
	store *Store
	n     int
}

// Slot returns a handle on slot n. A non-positive n means DefaultSlot.
func (s *Store) Slot(n int) Slot {
	if n <= 0 {
		n = DefaultSlot
	}
	return Slot{store: s, n: n}
}

// Number returns the slot number.
func (s Slot) Number() int { return s.n }

// SaveGame writes the slot.
func (s Slot) SaveGame(roomID int, pos core.Vec2, extra int) error {
	return s.store.Save(SaveData{Slot: s.n, RoomID: roomID, Pos: pos, Extra: extra})
}

// LoadGame reads the slot. ok is false when nothing was saved.
func (s Slot) LoadGame() (SaveData, bool, error) {
	return s.store.Load(s.n)
}

// RecordRun stores a finished run.
func (s Slot) RecordRun(r Run) (int64, error) {
	return s.store.RecordRun(r)
}

// SlotFor maps a user name to a stable slot number. The empty name gets
// DefaultSlot; every other name lands above it.
func SlotFor(user string) int {
	if user == "" {
		return DefaultSlot
	}
	h := fnv.New32a()
	h.Write([]byte(user))
	return DefaultSlot + 1 + int(h.Sum32()%maxUserSlots)
}
