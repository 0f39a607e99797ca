package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsSave(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveGame(2, core.V(120, 64), 0); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	d, ok, err := store.LoadGame()
	if err != nil || !ok {
		t.Fatalf("LoadGame() = %v, %v", ok, err)
	}
	if d.RoomID != 2 || d.Pos != core.V(120, 64) {
		t.Errorf("LoadGame() = %+v", d)
	}
}

func TestStoreLoadEmpty(t *testing.T) {
	store := openTestStore(t)

	d, ok, err := store.LoadGame()
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if ok {
		t.Errorf("LoadGame() on empty store = %+v, expected nothing", d)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveGame(1, core.V(50, 80), 0); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveGame(3, core.V(200.5, 120.25), 7); err != nil {
		t.Fatal(err)
	}

	d, ok, err := store.LoadGame()
	if err != nil || !ok {
		t.Fatalf("LoadGame() = %v, %v", ok, err)
	}
	if d.RoomID != 3 || d.Pos.X != 200.5 || d.Pos.Y != 120.25 || d.Extra != 7 {
		t.Errorf("LoadGame() = %+v, expected the second save", d)
	}
	if d.SavedAt.IsZero() {
		t.Error("SavedAt should be set")
	}

	saves, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 1 {
		t.Errorf("List() = %d slots, expected 1", len(saves))
	}
}

func TestStoreSlots(t *testing.T) {
	store := openTestStore(t)

	for _, d := range []SaveData{
		{Slot: 3, RoomID: 3, Pos: core.V(1, 1)},
		{Slot: 2, RoomID: 2, Pos: core.V(2, 2)},
		{RoomID: 1, Pos: core.V(3, 3)},
	} {
		if err := store.Save(d); err != nil {
			t.Fatalf("Save(%+v) failed: %v", d, err)
		}
	}

	saves, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 3 {
		t.Fatalf("List() = %d slots, expected 3", len(saves))
	}
	for i, d := range saves {
		if d.Slot != i+1 || d.RoomID != i+1 {
			t.Errorf("saves[%d] = %+v", i, d)
		}
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if saves, _ := store.List(); len(saves) != 0 {
		t.Errorf("List() after Clear = %d slots", len(saves))
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.RecordRun(Run{Score: (i + 1) * 100, RoomID: 1, Outcome: OutcomeGameOver}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.RecordRun(Run{Score: 250, RoomID: 3, Outcome: OutcomeVictory, Difficulty: "hard"}); err != nil {
		t.Fatal(err)
	}

	runs, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
	if runs[0].Difficulty != "normal" {
		t.Errorf("default difficulty = %q, expected normal", runs[0].Difficulty)
	}
}

func TestStoreRunStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil || high != 0 {
		t.Errorf("HighScore() on empty store = %d, %v", high, err)
	}

	store.RecordRun(Run{Score: 100, RoomID: 1, Outcome: OutcomeGameOver})
	store.RecordRun(Run{Score: 300, RoomID: 3, Outcome: OutcomeVictory})

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 || st.Victories != 1 || st.HighScore != 300 || st.AvgScore != 200 {
		t.Errorf("Stats() = %+v", st)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatal(err)
	}
	if high, _ := store.HighScore(); high != 0 {
		t.Errorf("HighScore() after ClearRuns = %d", high)
	}
}

func TestSlotHandles(t *testing.T) {
	store := openTestStore(t)

	alice := store.Slot(SlotFor("alice"))
	bob := store.Slot(SlotFor("bob"))
	if alice.Number() == bob.Number() {
		t.Fatalf("alice and bob share slot %d", alice.Number())
	}

	if err := alice.SaveGame(2, core.V(10, 20), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := bob.LoadGame(); err != nil || ok {
		t.Errorf("bob.LoadGame() = %v, %v, expected empty", ok, err)
	}
	d, ok, err := alice.LoadGame()
	if err != nil || !ok || d.RoomID != 2 {
		t.Errorf("alice.LoadGame() = %+v, %v, %v", d, ok, err)
	}
	if _, ok, _ := store.LoadGame(); ok {
		t.Error("default slot should stay empty")
	}
}

func TestSlotFor(t *testing.T) {
	tests := []struct {
		user string
		want func(int) bool
	}{
		{"", func(n int) bool { return n == DefaultSlot }},
		{"alice", func(n int) bool { return n > DefaultSlot }},
		{"a-very-long-user-name-from-ssh", func(n int) bool { return n > DefaultSlot }},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			got := SlotFor(tt.user)
			if !tt.want(got) {
				t.Errorf("SlotFor(%q) = %d", tt.user, got)
			}
			if again := SlotFor(tt.user); again != got {
				t.Errorf("SlotFor(%q) not stable: %d then %d", tt.user, got, again)
			}
		})
	}

	if store := openTestStore(t); store.Slot(0).Number() != DefaultSlot {
		t.Error("Slot(0) should be the default slot")
	}
}
