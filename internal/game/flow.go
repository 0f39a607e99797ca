package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/audio"
	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/entity"
	"github.com/vovakirdan/tui-dungeon/internal/observe"
	"github.com/vovakirdan/tui-dungeon/internal/render"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
	"github.com/vovakirdan/tui-dungeon/internal/world"
)

// Menu options in display order.
const (
	MenuPlay = iota
	MenuQuit
)

var menuOptions = []string{"Play", "Quit"}

// Status messages shown in the title line.
const (
	StatusSaved  = "Game Saved!"
	StatusLoaded = "Game Loaded!"
	StatusNoSave = "No Save Found"
)

const (
	effectCoin  = "coin"
	effectChest = "chest"
	effectHit   = "hit"

	defaultVolume        = 1.0
	defaultStatusSeconds = 2.0
)

// ErrNoPersistence is reported when save or load is pressed without a store.
var ErrNoPersistence = errors.New("game: no save storage")

// Persistence stores one save slot.
type Persistence interface {
	SaveGame(roomID int, pos core.Vec2, extra int) error
	LoadGame() (storage.SaveData, bool, error)
}

// RunRecorder stores finished runs.
type RunRecorder interface {
	RecordRun(storage.Run) (int64, error)
}

// Builder creates a fresh room graph with its start room selected.
type Builder func() (*world.Graph, error)

// Options configure a Flow. Only Build is required.
type Options struct {
	Gameplay      config.Gameplay
	AmbientTrack  string
	AmbientVolume float64
	Build         Builder
	Audio         audio.Service
	Store         Persistence
	Runs          RunRecorder
	Logger        *log.Logger
	Metrics       *observe.Metrics
}

// StepResult reports the state after one Step.
type StepResult struct {
	Phase     Phase
	RoomID    int
	Fade      float64
	FadeState FadeState
	Collected []*entity.Item
	Damage    int
	Quit      bool
}

// Flow owns the game state for one player and advances it one frame at a
// time. It is not safe for concurrent use.
type Flow struct {
	opts    Options
	gp      config.Gameplay
	audio   audio.Service
	logger  *log.Logger
	metrics *observe.Metrics
	ctx     context.Context

	phase  Phase
	menu   int
	player *entity.Player
	graph  *world.Graph
	fade   *Fade

	pendingRoom  int
	pendingSpawn core.Vec2
	hasPending   bool

	status     string
	statusLeft float64
}

// New builds the world and returns a flow sitting in the main menu.
func New(opts Options) (*Flow, error) {
	if opts.Build == nil {
		return nil, errors.New("game: no world builder")
	}
	graph, err := opts.Build()
	if err != nil {
		return nil, fmt.Errorf("game: build world: %w", err)
	}
	if graph.Current() == nil {
		return nil, errors.New("game: world has no start room")
	}

	gp := opts.Gameplay
	if gp.StatusSeconds <= 0 {
		gp.StatusSeconds = defaultStatusSeconds
	}
	if opts.AmbientVolume <= 0 {
		opts.AmbientVolume = defaultVolume
	}

	f := &Flow{
		opts:    opts,
		gp:      gp,
		audio:   opts.Audio,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		ctx:     context.Background(),
		graph:   graph,
		fade:    NewFade(gp.FadeSpeed),
	}
	if f.audio == nil {
		f.audio = audio.Nop{}
	}
	if f.logger == nil {
		f.logger = log.New(io.Discard)
	}
	f.player = f.newPlayer(pointVec(gp.StartPos))
	return f, nil
}

// Phase returns the current phase.
func (f *Flow) Phase() Phase { return f.phase }

// Player returns the player.
func (f *Flow) Player() *entity.Player { return f.player }

// Graph returns the room graph.
func (f *Flow) Graph() *world.Graph { return f.graph }

// Audio returns the audio service the flow plays through.
func (f *Flow) Audio() audio.Service { return f.audio }

// Fade returns the room transition fade.
func (f *Flow) Fade() *Fade { return f.fade }

// MenuOptions returns the main menu entries.
func (f *Flow) MenuOptions() []string { return menuOptions }

// MenuIndex returns the highlighted menu entry.
func (f *Flow) MenuIndex() int { return f.menu }

// Status returns the transient save/load message, empty when none.
func (f *Flow) Status() string { return f.status }

// Pending returns the room and spawn point of a running transition.
func (f *Flow) Pending() (room int, spawn core.Vec2, ok bool) {
	return f.pendingRoom, f.pendingSpawn, f.hasPending
}

// RoomID returns the current room id.
func (f *Flow) RoomID() int {
	id, _ := f.graph.CurrentID()
	return id
}

// Title returns the status line for the current phase.
func (f *Flow) Title() string {
	switch f.phase {
	case PhaseMainMenu:
		return "Dungeon of Algorithms"
	case PhasePaused:
		return "PAUSED - Press P to Resume"
	case PhaseGameOver:
		return "GAME OVER - Press R to Restart"
	case PhaseVictory:
		return "VICTORY! - Press R to Restart"
	}
	if f.status != "" {
		return f.status
	}
	return fmt.Sprintf("HP: %d | Score: %d | Room: %d", f.player.Health, f.player.Score, f.RoomID())
}

// Step advances the game by one frame.
func (f *Flow) Step(in core.InputFrame, dt float64) StepResult {
	start := time.Now()
	defer func() { f.metrics.RecordTick(f.ctx, time.Since(start)) }()

	f.tickStatus(dt)

	var res StepResult
	if in.WasPressed(core.ActionQuit) {
		res.Quit = true
		return f.result(res)
	}

	switch f.phase {
	case PhaseMainMenu:
		res.Quit = f.stepMenu(in)
	case PhaseGameOver:
		if in.WasPressed(core.ActionRestart) {
			f.Restart(pointVec(f.gp.GameOverRespawn))
		}
	case PhaseVictory:
		if in.WasPressed(core.ActionRestart) {
			f.Restart(pointVec(f.gp.VictoryRespawn))
		}
	case PhasePlaying, PhasePaused:
		if in.WasPressed(core.ActionPause) && !f.fade.Active() {
			f.togglePause()
		}
		if f.phase == PhasePlaying {
			f.stepPlaying(in, dt, &res)
		}
	}
	return f.result(res)
}

func (f *Flow) result(res StepResult) StepResult {
	res.Phase = f.phase
	res.RoomID = f.RoomID()
	res.Fade = f.fade.Alpha()
	res.FadeState = f.fade.State()
	return res
}

func (f *Flow) stepMenu(in core.InputFrame) (quit bool) {
	n := len(menuOptions)
	if in.WasPressed(core.ActionUp) || in.WasPressed(core.ActionLeft) {
		f.menu = (f.menu - 1 + n) % n
	}
	if in.WasPressed(core.ActionDown) || in.WasPressed(core.ActionRight) {
		f.menu = (f.menu + 1) % n
	}
	if in.WasPressed(core.ActionBack) {
		return true
	}
	if !in.WasPressed(core.ActionConfirm) {
		return false
	}
	switch f.menu {
	case MenuPlay:
		f.setPhase(PhasePlaying)
		f.playAmbient()
	case MenuQuit:
		return true
	}
	return false
}

func (f *Flow) togglePause() {
	if f.phase == PhasePaused {
		f.setPhase(PhasePlaying)
		f.audio.Resume()
		return
	}
	f.setPhase(PhasePaused)
	f.audio.Pause()
}

func (f *Flow) stepPlaying(in core.InputFrame, dt float64, res *StepResult) {
	if f.checkDeath() {
		return
	}
	if f.fade.Active() {
		if f.fade.Advance(dt) {
			f.swapRoom()
		}
		return
	}

	room := f.graph.Current()

	prev := f.player.Pos
	f.player.Update(dt, in, room.Collider())
	if room.IsCollidingWithDecor(f.player.Bounds()) {
		f.player.SetPosition(prev)
	}

	upd := room.Update(dt, f.player)
	res.Collected = upd.Collected
	res.Damage = upd.Damage
	for _, it := range upd.Collected {
		f.metrics.RecordItem(f.ctx, it.Kind.String())
		effect := effectCoin
		if it.IsGoal() {
			effect = effectChest
		}
		f.playEffect(effect)
	}
	if upd.Damage > 0 {
		f.playEffect(effectHit)
	}
	if f.checkDeath() {
		return
	}
	if upd.Won() {
		f.setPhase(PhaseVictory)
		f.recordRun(storage.OutcomeVictory)
		return
	}

	if f.tryTransition() {
		return
	}

	if in.WasPressed(core.ActionSave) {
		f.save()
	}
	if in.WasPressed(core.ActionLoad) {
		f.load()
	}
}

// checkDeath ends the run once the player has no health left.
func (f *Flow) checkDeath() bool {
	if f.player.IsAlive() {
		return false
	}
	f.fade.Reset()
	f.hasPending = false
	f.setPhase(PhaseGameOver)
	f.recordRun(storage.OutcomeGameOver)
	return true
}

// tryTransition starts a fade when the player stands in an open doorway at
// a connected edge of the current room.
func (f *Flow) tryTransition() bool {
	room := f.graph.Current()
	grid := room.Tiles()
	if grid == nil {
		return false
	}

	cx, cy := worldPoint(f.player.Center())
	if !grid.IsVacant(cx, cy) {
		return false
	}

	pos := f.player.Pos
	px, py := worldPoint(pos)
	dir, target, ok := f.graph.BoundaryExit(px, py, room.WidthPixels(), room.HeightPixels())
	if !ok {
		dir, target, ok = f.graph.NearEdgeExit(pos, world.Margins{Low: f.gp.EdgeMarginLow, High: f.gp.EdgeMarginHigh})
	}
	if !ok {
		return false
	}

	dest, exists := f.graph.Room(target)
	if !exists {
		f.logger.Warn("exit leads nowhere", "room", room.ID(), "dir", dir, "target", target)
		return false
	}
	if !f.fade.Begin() {
		return false
	}

	f.pendingRoom = target
	f.pendingSpawn = f.spawnFor(dir, dest, pos)
	f.hasPending = true
	f.logger.Debug("transition started", "from", room.ID(), "to", target, "dir", dir)
	return true
}

// worldPoint rounds a position down to whole world units.
func worldPoint(v core.Vec2) (int, int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y))
}

// spawnFor places an arriving player near the edge opposite to the exit.
// The coordinate along the shared edge is carried over unless the
// destination overrides it.
func (f *Flow) spawnFor(dir world.Direction, dest *world.Room, pos core.Vec2) core.Vec2 {
	low, high := f.gp.SpawnInsetLow, f.gp.SpawnInsetHigh
	switch dir {
	case world.East:
		pos = core.V(low, pos.Y)
	case world.West:
		pos = core.V(float64(dest.WidthPixels())-high, pos.Y)
	case world.North:
		pos = core.V(pos.X, float64(dest.HeightPixels())-high)
	case world.South:
		pos = core.V(pos.X, low)
	}

	switch dir {
	case world.East, world.West:
		if dest.EntryY != nil {
			pos.Y = *dest.EntryY
		}
	case world.North, world.South:
		if dest.EntryX != nil {
			pos.X = *dest.EntryX
		}
	}
	return pos
}

func (f *Flow) swapRoom() {
	if !f.hasPending {
		return
	}
	from := f.RoomID()
	f.graph.ChangeRoom(f.pendingRoom)
	f.player.SetPosition(f.pendingSpawn)
	f.hasPending = false

	to := f.RoomID()
	f.metrics.RecordTransition(f.ctx, from, to)
	f.logger.Info("entered room", "from", from, "to", to)

	if track := f.graph.Current().Ambient; track != "" {
		if err := f.audio.PlayAmbient(track, f.opts.AmbientVolume); err != nil {
			f.logger.Warn("ambient failed", "track", track, "err", err)
		}
	}
}

// Restart rebuilds the world, puts a fresh player at spawn in the start room
// and resumes play. If the rebuild fails the current world is kept.
func (f *Flow) Restart(spawn core.Vec2) {
	if g, err := f.opts.Build(); err != nil {
		f.logger.Error("world rebuild failed", "err", err)
	} else {
		f.graph = g
	}
	f.graph.ChangeRoom(f.gp.StartRoom)

	f.player = f.newPlayer(spawn)
	f.fade.Reset()
	f.hasPending = false
	f.setPhase(PhasePlaying)
	f.playAmbient()
}

func (f *Flow) save() {
	if f.opts.Store == nil {
		f.persistenceFailed("save", ErrNoPersistence)
		return
	}
	if err := f.opts.Store.SaveGame(f.RoomID(), f.player.Pos, 0); err != nil {
		f.persistenceFailed("save", err)
		return
	}
	f.logger.Info("game saved", "room", f.RoomID(), "x", f.player.Pos.X, "y", f.player.Pos.Y)
	f.setStatus(StatusSaved)
}

func (f *Flow) load() {
	if f.opts.Store == nil {
		f.persistenceFailed("load", ErrNoPersistence)
		return
	}
	d, ok, err := f.opts.Store.LoadGame()
	if err != nil {
		f.persistenceFailed("load", err)
		return
	}
	if !ok {
		f.setStatus(StatusNoSave)
		return
	}
	if _, exists := f.graph.Room(d.RoomID); !exists {
		f.persistenceFailed("load", fmt.Errorf("saved room %d does not exist", d.RoomID))
		return
	}
	f.graph.ChangeRoom(d.RoomID)
	f.player.SetPosition(d.Pos)
	f.logger.Info("game loaded", "room", d.RoomID, "x", d.Pos.X, "y", d.Pos.Y)
	f.setStatus(StatusLoaded)
}

func (f *Flow) persistenceFailed(op string, err error) {
	f.logger.Error("persistence failed", "op", op, "err", err)
	f.metrics.RecordPersistenceError(f.ctx, op)
	f.setStatus("Error: " + err.Error())
}

func (f *Flow) recordRun(outcome string) {
	if f.opts.Runs == nil {
		return
	}
	_, err := f.opts.Runs.RecordRun(storage.Run{
		Score:      f.player.Score,
		RoomID:     f.RoomID(),
		Outcome:    outcome,
		Difficulty: string(f.gp.Difficulty),
	})
	if err != nil {
		f.logger.Error("run not recorded", "err", err)
		f.metrics.RecordPersistenceError(f.ctx, "record_run")
	}
}

func (f *Flow) setPhase(p Phase) {
	if f.phase == p {
		return
	}
	f.logger.Debug("phase changed", "from", f.phase, "to", p)
	f.phase = p
	f.metrics.RecordPhase(f.ctx, p.String())
}

func (f *Flow) setStatus(msg string) {
	f.status = msg
	f.statusLeft = f.gp.StatusSeconds
}

func (f *Flow) tickStatus(dt float64) {
	if f.status == "" {
		return
	}
	f.statusLeft -= dt
	if f.statusLeft <= 0 {
		f.status = ""
	}
}

func (f *Flow) playAmbient() {
	track := f.graph.Current().Ambient
	if track == "" {
		track = f.opts.AmbientTrack
	}
	if track == "" {
		return
	}
	if err := f.audio.PlayAmbient(track, f.opts.AmbientVolume); err != nil {
		f.logger.Warn("ambient failed", "track", track, "err", err)
	}
}

func (f *Flow) playEffect(name string) {
	if err := f.audio.PlayEffect(name); err != nil {
		f.logger.Debug("effect failed", "effect", name, "err", err)
	}
}

func (f *Flow) newPlayer(pos core.Vec2) *entity.Player {
	p := entity.NewPlayer(pos)
	if f.gp.PlayerSpeed > 0 {
		p.Speed = f.gp.PlayerSpeed
	}
	if f.gp.PlayerHealth > 0 {
		p.Health = f.gp.StartHealth()
	}
	return p
}

// Draw emits the current room, the player and the fade overlay.
func (f *Flow) Draw(r render.Renderer) {
	if f.phase == PhaseMainMenu {
		return
	}
	f.graph.Current().Draw(r)
	f.player.Draw(r)
	if a := f.fade.Alpha(); a > 0 {
		r.Overlay(a)
	}
}

func pointVec(p config.Point) core.Vec2 {
	return core.V(p.X, p.Y)
}
