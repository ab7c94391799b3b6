// Package game implements the card-draw round: draw a hand from the pool,
// reveal it slot by slot, pick one card, bank its points.
package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"tagdeck-go/internal/tags"
)

const (
	// HandSize is the number of cards in every hand.
	HandSize = 5
	// DeleteChance is the probability that a slot holds a DeleteCard.
	DeleteChance = 0.1
)

var (
	ErrPoolTooSmall    = errors.New("not enough tags in the selected groups to draw a hand")
	ErrRoundInProgress = errors.New("a hand is already on the table")
	ErrNotDrawn        = errors.New("no hand is waiting for a pick")
	ErrNotRevealed     = errors.New("card is not revealed yet")
	ErrSlotOutOfRange  = errors.New("slot out of range")
)

// State is the round's position in the draw/pick cycle.
type State int

const (
	StateIdle State = iota
	StateDrawn
	StateSelected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawn:
		return "drawn"
	case StateSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// GroupFilter decides whether a record belongs to the drawing pool.
type GroupFilter interface {
	Intersects(groups []string) bool
}

// Pool returns the records eligible for drawing.
func Pool(records []tags.Record, groups GroupFilter) []tags.Record {
	var pool []tags.Record
	for _, r := range records {
		if groups.Intersects(r.Groups) {
			pool = append(pool, r)
		}
	}
	return pool
}

// Round describes a freshly drawn hand.
type Round struct {
	ID       string
	Hand     []Card
	PoolSize int
}

// Pick is the outcome of selecting a card.
type Pick struct {
	Slot  int
	Card  Card
	Delta int
	Score int
}

// Game holds the score and the current round.
type Game struct {
	rng          *rand.Rand
	deleteChance float64
	newID        func() string

	state    State
	roundID  string
	hand     []Card
	revealed []bool
	picked   int
	score    int
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source used for drawing.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithDeleteChance overrides DeleteChance.
func WithDeleteChance(p float64) Option {
	return func(g *Game) { g.deleteChance = p }
}

// WithRoundIDs overrides how round ids are generated.
func WithRoundIDs(next func() string) Option {
	return func(g *Game) { g.newID = next }
}

// New creates an idle game with a zero score.
func New(opts ...Option) *Game {
	g := &Game{
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		deleteChance: DeleteChance,
		newID:        uuid.NewString,
		picked:       -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CanDraw reports whether a new hand may be drawn. Idle and Selected are both ready.
func (g *Game) CanDraw() bool {
	return g.state != StateDrawn
}

// Draw deals a new hand from pool. A refused draw leaves the game untouched.
func (g *Game) Draw(pool []tags.Record) (Round, error) {
	if !g.CanDraw() {
		return Round{}, ErrRoundInProgress
	}
	if len(pool) < HandSize {
		return Round{}, ErrPoolTooSmall
	}

	hand := make([]Card, HandSize)
	used := make(map[int]bool, HandSize)
	for i := range hand {
		if g.rng.Float64() < g.deleteChance {
			hand[i] = DeleteCard{}
			continue
		}
		idx := g.rng.Intn(len(pool))
		for used[idx] {
			idx = g.rng.Intn(len(pool))
		}
		used[idx] = true
		hand[i] = RecordCard{Record: pool[idx]}
	}

	g.hand = hand
	g.revealed = make([]bool, HandSize)
	g.roundID = g.newID()
	g.picked = -1
	g.state = StateDrawn

	return Round{ID: g.roundID, Hand: g.Hand(), PoolSize: len(pool)}, nil
}

// RevealDelay is how long after the draw slot turns face up.
func RevealDelay(slot int, interval time.Duration) time.Duration {
	return time.Duration(slot) * interval
}

// Reveal turns slot face up if roundID is still the current round.
func (g *Game) Reveal(roundID string, slot int) bool {
	if roundID == "" || roundID != g.roundID {
		return false
	}
	if slot < 0 || slot >= len(g.revealed) {
		return false
	}
	g.revealed[slot] = true
	return true
}

// Select picks the card at slot and ends the round.
func (g *Game) Select(slot int) (Pick, error) {
	if g.state != StateDrawn {
		return Pick{}, ErrNotDrawn
	}
	if slot < 0 || slot >= len(g.hand) {
		return Pick{}, ErrSlotOutOfRange
	}
	if !g.revealed[slot] {
		return Pick{}, ErrNotRevealed
	}

	card := g.hand[slot]
	delta := Value(card)
	g.score += delta
	g.picked = slot
	g.state = StateSelected
	return Pick{Slot: slot, Card: card, Delta: delta, Score: g.score}, nil
}

// Reset zeroes the score and clears the table.
func (g *Game) Reset() {
	g.score = 0
	g.hand = nil
	g.revealed = nil
	g.roundID = ""
	g.picked = -1
	g.state = StateIdle
}

func (g *Game) State() State    { return g.state }
func (g *Game) Score() int      { return g.score }
func (g *Game) RoundID() string { return g.roundID }

// PickedSlot is the slot chosen this round, or -1.
func (g *Game) PickedSlot() int { return g.picked }

// Hand returns a copy of the current hand.
func (g *Game) Hand() []Card {
	return append([]Card(nil), g.hand...)
}

// Revealed returns a copy of the reveal flags.
func (g *Game) Revealed() []bool {
	return append([]bool(nil), g.revealed...)
}

// IsRevealed reports whether slot is face up.
func (g *Game) IsRevealed(slot int) bool {
	return slot >= 0 && slot < len(g.revealed) && g.revealed[slot]
}
