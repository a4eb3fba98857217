package battleship

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
)

const DefaultBoardSize = 10

// DefaultFleet is the enemy placement order; the player's inventory holds the same ships smallest first.
var DefaultFleet = []int{4, 3, 3, 2, 2, 2}

var ErrInvalidState = errors.New("invalid battleship state")

type Phase string

const (
	PhasePlacement Phase = "placement"
	PhaseBattle    Phase = "battle"
	PhaseGameOver  Phase = "game_over"
)

type Side string

const (
	SideNone   Side = ""
	SidePlayer Side = "player"
	SideAI     Side = "ai"
)

type Option func(*Engine)

func WithRandom(src random.Source) Option {
	return func(e *Engine) {
		e.rnd = src
	}
}

func WithBoardSize(size int) Option {
	return func(e *Engine) {
		e.size = size
	}
}

func WithFleet(sizes ...int) Option {
	return func(e *Engine) {
		e.fleet = slices.Clone(sizes)
	}
}

// State is a full snapshot of the game, hidden information included. Use View for the player's side.
type State struct {
	Phase      Phase  `json:"phase"`
	Round      uint64 `json:"round"`
	BoardSize  int    `json:"board_size"`
	PlayerTurn bool   `json:"player_turn"`
	Winner     Side   `json:"winner,omitempty"`

	Inventory []Ship `json:"inventory"`
	Selected  int    `json:"selected"`

	PlayerShips []PlacedShip `json:"player_ships"`
	EnemyShips  []PlacedShip `json:"enemy_ships,omitempty"`
	// PlayerShots are fired by the player at the enemy board, EnemyShots by the AI.
	PlayerShots []entity.Coord `json:"player_shots,omitempty"`
	EnemyShots  []entity.Coord `json:"enemy_shots,omitempty"`

	AIQueue    []entity.Coord `json:"ai_queue,omitempty"`
	AILastHit  *entity.Coord  `json:"ai_last_hit,omitempty"`
	LastAIShot *entity.Coord  `json:"last_ai_shot,omitempty"`

	PlayerBoard [][]CellState `json:"player_board"`
	EnemyBoard  [][]CellState `json:"enemy_board"`
}

// View strips what the player must not see: intact enemy ships and the AI's memory.
func (that State) View() State {
	view := that
	view.AIQueue = nil
	view.AILastHit = nil
	view.EnemyShips = nil

	for _, ship := range that.EnemyShips {
		if ship.Sunk() || that.Phase == PhaseGameOver {
			view.EnemyShips = append(view.EnemyShips, ship)
		}
	}

	return view
}

// Engine holds one battleship game against the AI. It is not safe for concurrent use.
type Engine struct {
	rnd   random.Source
	size  int
	fleet []int

	phase      Phase
	round      uint64
	inventory  []Ship
	selected   int
	player     *Board
	enemy      *Board
	playerTurn bool
	winner     Side

	ai         hunter
	lastAIShot *entity.Coord
}

func New(opts ...Option) *Engine {
	engine := &Engine{
		size:  DefaultBoardSize,
		fleet: slices.Clone(DefaultFleet),
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.rnd == nil {
		engine.rnd = random.NewTimeSeeded()
	}

	engine.init()

	return engine
}

func (that *Engine) init() {
	that.phase = PhasePlacement
	that.inventory = newInventory(that.fleet)
	that.selected = -1
	that.player = newBoard(that.size)
	that.enemy = newBoard(that.size)
	that.playerTurn = true
	that.winner = SideNone
	that.ai.reset()
	that.lastAIShot = nil
}

func newInventory(fleet []int) []Ship {
	sizes := slices.Clone(fleet)
	slices.Sort(sizes)

	inventory := make([]Ship, 0, len(sizes))
	for _, size := range sizes {
		inventory = append(inventory, Ship{Size: size, Orientation: Horizontal})
	}

	return inventory
}

func (that *Engine) State() State {
	return State{
		Phase:       that.phase,
		Round:       that.round,
		BoardSize:   that.size,
		PlayerTurn:  that.playerTurn,
		Winner:      that.winner,
		Inventory:   slices.Clone(that.inventory),
		Selected:    that.selected,
		PlayerShips: that.player.shipList(),
		EnemyShips:  that.enemy.shipList(),
		PlayerShots: that.enemy.shotList(),
		EnemyShots:  that.player.shotList(),
		AIQueue:     slices.Clone(that.ai.queue),
		AILastHit:   cloneCoord(that.ai.lastHit),
		LastAIShot:  cloneCoord(that.lastAIShot),
		PlayerBoard: that.player.cells(true),
		EnemyBoard:  that.enemy.cells(false),
	}
}

// Restore replaces the game with a snapshot taken by State. Damage is recomputed from the shots.
func (that *Engine) Restore(state State) error {
	if state.BoardSize <= 0 {
		return fmt.Errorf("%w: board size %d", ErrInvalidState, state.BoardSize)
	}

	switch state.Phase {
	case PhasePlacement, PhaseBattle, PhaseGameOver:
	default:
		return fmt.Errorf("%w: phase %q", ErrInvalidState, state.Phase)
	}

	player, err := restoreBoard(state.BoardSize, state.PlayerShips, state.EnemyShots)
	if err != nil {
		return fmt.Errorf("player board: %w", err)
	}

	enemy, err := restoreBoard(state.BoardSize, state.EnemyShips, state.PlayerShots)
	if err != nil {
		return fmt.Errorf("enemy board: %w", err)
	}

	that.size = state.BoardSize
	that.phase = state.Phase
	that.round = state.Round
	that.inventory = slices.Clone(state.Inventory)
	that.selected = state.Selected
	that.player = player
	that.enemy = enemy
	that.playerTurn = state.PlayerTurn
	that.winner = state.Winner
	that.ai = hunter{queue: slices.Clone(state.AIQueue), lastHit: cloneCoord(state.AILastHit)}
	that.lastAIShot = cloneCoord(state.LastAIShot)

	return nil
}

// SelectShip marks an inventory ship as the placement candidate; an invalid index clears the selection.
func (that *Engine) SelectShip(index int) State {
	if that.phase != PhasePlacement {
		return that.State()
	}

	if index < 0 || index >= len(that.inventory) {
		index = -1
	}

	that.selected = index

	return that.State()
}

// RotateSelected flips the orientation of the selected inventory ship.
func (that *Engine) RotateSelected() State {
	if that.phase != PhasePlacement || !that.hasSelection() {
		return that.State()
	}

	ship := &that.inventory[that.selected]
	ship.Orientation = ship.Orientation.Flip()

	return that.State()
}

// PlaceShip anchors the selected ship at (row, col), or failing that ends it at (row, col).
func (that *Engine) PlaceShip(row, col int) State {
	if that.phase != PhasePlacement || !that.hasSelection() {
		return that.State()
	}

	ship := that.inventory[that.selected]
	at := entity.Coord{Row: row, Col: col}

	for _, anchor := range []entity.Coord{at, mirroredAnchor(at, ship.Size, ship.Orientation)} {
		candidate := PlacedShip{Size: ship.Size, Orientation: ship.Orientation, Anchor: anchor}
		if !that.player.fits(candidate, nil) {
			continue
		}

		that.player.add(candidate)
		that.inventory = slices.Delete(that.inventory, that.selected, that.selected+1)
		that.selected = -1

		break
	}

	return that.State()
}

// ToggleOrientation rotates the placed ship covering (row, col) in place, re-anchoring
// it on the mirrored anchor if needed. The rotation is reverted when neither fits.
func (that *Engine) ToggleOrientation(row, col int) State {
	if that.phase != PhasePlacement {
		return that.State()
	}

	ship := that.player.shipAt(entity.Coord{Row: row, Col: col})
	if ship == nil {
		return that.State()
	}

	original := ship.Orientation
	ship.Orientation = original.Flip()

	if that.player.fits(*ship, ship) {
		return that.State()
	}

	candidate := *ship
	candidate.Anchor = mirroredAnchor(ship.Anchor, ship.Size, ship.Orientation)
	if that.player.fits(candidate, ship) {
		ship.Anchor = candidate.Anchor
		return that.State()
	}

	ship.Orientation = original

	return that.State()
}

// RemoveShip returns the placed ship covering (row, col) to the inventory.
func (that *Engine) RemoveShip(row, col int) State {
	if that.phase != PhasePlacement {
		return that.State()
	}

	ship := that.player.shipAt(entity.Coord{Row: row, Col: col})
	if ship == nil {
		return that.State()
	}

	that.player.remove(ship)
	that.inventory = append(that.inventory, Ship{Size: ship.Size, Orientation: Horizontal})

	return that.State()
}

// StartBattle deploys the enemy fleet once every ship of the player is placed.
// Failing to fit the enemy fleet is an invariant violation and leaves the game in placement.
func (that *Engine) StartBattle() (State, error) {
	if that.phase != PhasePlacement || len(that.inventory) > 0 || len(that.player.ships) == 0 {
		return that.State(), nil
	}

	enemy, err := placeFleet(that.rnd, that.size, that.fleet)
	if err != nil {
		return that.State(), fmt.Errorf("failed to deploy enemy fleet: %w", err)
	}

	that.enemy = enemy
	that.phase = PhaseBattle
	that.playerTurn = true
	that.selected = -1

	return that.State(), nil
}

// Attack fires at the enemy board and, unless that ends the game, lets the AI reply at once.
func (that *Engine) Attack(row, col int) State {
	if !that.fire(row, col) {
		return that.State()
	}

	return that.EnemyTurn()
}

// Fire resolves the player's shot only and hands the turn to the AI; EnemyTurn must follow.
func (that *Engine) Fire(row, col int) State {
	that.fire(row, col)

	return that.State()
}

// IsAITurn reports whether the AI owes a reply.
func (that *Engine) IsAITurn() bool {
	return that.phase == PhaseBattle && !that.playerTurn
}

// EnemyTurn plays the AI's shot: hunt the queued neighbours of a hit, otherwise search at random.
func (that *Engine) EnemyTurn() State {
	if !that.IsAITurn() {
		return that.State()
	}

	target, ok := that.ai.nextTarget(that.rnd, that.player)
	if !ok {
		that.playerTurn = true
		return that.State()
	}

	result, _ := that.player.receive(target)
	that.lastAIShot = &target
	that.ai.record(that.player, target, result)

	if that.player.allSunk() {
		that.phase = PhaseGameOver
		that.winner = SideAI

		return that.State()
	}

	that.playerTurn = true

	return that.State()
}

func (that *Engine) Reset() State {
	that.round++
	that.init()

	return that.State()
}

func (that *Engine) fire(row, col int) bool {
	target := entity.Coord{Row: row, Col: col}
	if that.phase != PhaseBattle || !that.playerTurn || !target.In(that.size) || that.enemy.fired(target) {
		return false
	}

	that.enemy.receive(target)

	if that.enemy.allSunk() {
		that.phase = PhaseGameOver
		that.winner = SidePlayer

		return false
	}

	that.playerTurn = false

	return true
}

func (that *Engine) hasSelection() bool {
	return that.selected >= 0 && that.selected < len(that.inventory)
}

func cloneCoord(c *entity.Coord) *entity.Coord {
	if c == nil {
		return nil
	}

	copied := *c

	return &copied
}
