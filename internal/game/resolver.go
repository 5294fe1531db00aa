package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Phase tracks the resolver's per-round state machine.
type Phase int

const (
	PhaseAwaitingSubmissions Phase = iota
	PhaseResolving
	PhaseRoundComplete
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSubmissions:
		return "AWAITING_SUBMISSIONS"
	case PhaseResolving:
		return "RESOLVING"
	case PhaseRoundComplete:
		return "ROUND_COMPLETE"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// CardSource re-hydrates card instances from catalog ids. Implemented by the
// catalog; instances must be independent deep copies.
type CardSource interface {
	Instantiate(id string) (*Card, error)
}

// Pacer controls the cooperative real-time delays between emitted deltas.
// The delays exist purely for client pacing; a zero Pacer runs the resolver
// deterministically with no suspension, which is what tests use. Relative
// ordering of emitted deltas never depends on the pacer.
type Pacer struct {
	Tick    time.Duration
	Cast    time.Duration
	Trigger time.Duration
	// Sleep is injectable for tests. Nil means time.Sleep.
	Sleep func(time.Duration)
}

func (p Pacer) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Resolver drives one round of simultaneous-turn resolution for exactly two
// players. It exclusively owns the ability queue and both player states for
// the duration of the round; a fresh resolver is created per round.
type Resolver struct {
	players   [2]*PlayerState
	firstIdx  int
	nextFirst int
	queue     *AbilityQueue
	source    CardSource
	emitter   Emitter
	pacer     Pacer
	replay    *ReplayLog
	phase     Phase
	seq       uint64
	logger    *zap.Logger
}

// NewResolver creates a resolver for one round. firstID designates the
// player whose timer decrements first each iteration.
func NewResolver(p1, p2 *PlayerState, firstID string, source CardSource, emitter Emitter, pacer Pacer, logger *zap.Logger) *Resolver {
	r := &Resolver{
		players: [2]*PlayerState{p1, p2},
		queue:   NewAbilityQueue(),
		source:  source,
		emitter: emitter,
		pacer:   pacer,
		phase:   PhaseAwaitingSubmissions,
		logger:  logger,
	}
	if p2.ID == firstID {
		r.firstIdx = 1
	}
	r.nextFirst = r.firstIdx
	return r
}

// SetReplay attaches a replay log that records every emitted delta.
func (r *Resolver) SetReplay(log *ReplayLog) { r.replay = log }

// Phase returns the resolver's current state.
func (r *Resolver) Phase() Phase { return r.phase }

// NextFirstID returns which player goes first next round. Valid after
// Resolve returns.
func (r *Resolver) NextFirstID() string { return r.players[r.nextFirst].ID }

// Queue exposes the pending-ability queue for inspection.
func (r *Resolver) Queue() *AbilityQueue { return r.queue }

func (r *Resolver) playerByID(id string) *PlayerState {
	if r.players[0].ID == id {
		return r.players[0]
	}
	return r.players[1]
}

func (r *Resolver) opponentOf(id string) *PlayerState {
	if r.players[0].ID == id {
		return r.players[1]
	}
	return r.players[0]
}

// populate rebuilds both dropzones from submitted catalog ids and applies
// the mana-solvency guard: a player whose submitted costs exceed available
// mana has the entire submission voided rather than rejected. Play
// continues with an empty zone for that player.
func (r *Resolver) populate(submissions map[string][]string) error {
	for _, p := range r.players {
		ids := submissions[p.ID]
		zone := make([]*Card, 0, len(ids))
		total := 0
		for _, id := range ids {
			card, err := r.source.Instantiate(id)
			if err != nil {
				return fmt.Errorf("populate dropzone for %s: %w", p.ID, err)
			}
			card.Timer = card.Time
			total += card.Cost
			zone = append(zone, card)
		}
		if total > p.Mana {
			if r.logger != nil {
				r.logger.Info("submission voided, mana overdraw",
					zap.String("player_id", p.ID),
					zap.Int("cost", total),
					zap.Int("mana", p.Mana),
				)
			}
			p.DropZone = nil
			continue
		}
		p.Mana -= total
		p.DropZone = zone
	}
	return nil
}

// Resolve runs the full resolution loop for one round. It returns the match
// result (zero Result when the round completes and play continues) or an
// error for unexpected faults, which are fatal to the match only.
func (r *Resolver) Resolve(submissions map[string][]string) (Result, error) {
	r.phase = PhaseResolving
	if err := r.populate(submissions); err != nil {
		return Result{}, err
	}

	order := [2]int{r.firstIdx, 1 - r.firstIdx}

	for len(r.players[0].DropZone) > 0 || len(r.players[1].DropZone) > 0 {
		for _, idx := range order {
			p := r.players[idx]
			// The player's whole tick: keep decrementing and casting until a
			// front card survives with time left. Consecutive ready cards all
			// resolve left to right before the opponent moves.
			for p.Front() != nil {
				front := p.Front()
				front.Timer--
				if front.Timer > 0 {
					r.emitTick(p)
					r.pacer.pause(r.pacer.Tick)
					break
				}

				card := p.PopFront()
				if res := r.cast(card, p); res.GameOver {
					return r.finishGameOver(res), nil
				}
				fired := r.queue.SweepExpiring(ExpireNextCard, p.ID)
				if res := r.fireExpired(fired, p.ID); res.GameOver {
					return r.finishGameOver(res), nil
				}
				// Last-mover disadvantage: whoever did not just resolve a
				// card opens the next round.
				r.nextFirst = 1 - idx
			}
		}
	}

	fired := r.queue.SweepExpiring(ExpireEndOfRound, r.players[r.nextFirst].ID)
	if res := r.fireExpired(fired, r.players[r.nextFirst].ID); res.GameOver {
		return r.finishGameOver(res), nil
	}

	r.phase = PhaseRoundComplete
	return Result{}, nil
}

// cast runs the cast protocol for one card: trigger matching, triggered
// applications, the counter veto, and finally the card's own ability.
func (r *Resolver) cast(card *Card, active *PlayerState) Result {
	matched := r.queue.ConsumeTriggered(card, active.ID)

	countered := false
	for _, entry := range matched {
		eff := entry.Ability.Effect
		if eff.Kind == EffectSpell && eff.Subkind == SubkindCounter && eff.Prevention {
			countered = true
		}
	}

	if r.logger != nil {
		r.logger.Debug("casting card",
			zap.String("player_id", active.ID),
			zap.String("card", card.Name),
			zap.Int("triggered", len(matched)),
			zap.Bool("countered", countered),
		)
	}

	for _, entry := range matched {
		eff := entry.Ability.Effect
		if eff.Kind == EffectSpell && eff.Subkind == SubkindCounter && eff.Prevention {
			// The veto itself is the application: the card simply does not
			// resolve.
			continue
		}
		res := r.applyEffect(entry.Ability, entry.Owner, card, true)
		if res.GameOver {
			// Death unwinds without a delta; the game-over event is the only
			// emission left.
			return res
		}
		r.emitSnapshot(EventTriggered, active.ID)
		r.pacer.pause(r.pacer.Trigger)
	}

	if countered {
		r.emitSnapshot(EventCast, active.ID)
		r.pacer.pause(r.pacer.Cast)
		return Result{}
	}

	// The card's own application carries no source card: the instance has
	// already left the dropzone, so spell mutations aim at queued state.
	res := r.applyEffect(card.Ability, active.ID, nil, false)
	if res.GameOver {
		return res
	}
	r.emitSnapshot(EventCast, active.ID)
	r.pacer.pause(r.pacer.Cast)
	return Result{}
}

// fireExpired applies the effects of entries that expired with
// TriggerOnExpiration set. Expiry firing is a triggered application.
func (r *Resolver) fireExpired(entries []*PendingAbility, activeID string) Result {
	for _, entry := range entries {
		res := r.applyEffect(entry.Ability, entry.Owner, nil, true)
		if res.GameOver {
			return res
		}
		r.emitSnapshot(EventTriggered, activeID)
		r.pacer.pause(r.pacer.Trigger)
	}
	return Result{}
}

// finishGameOver converts a death result into the terminal game-over event
// and tears down the match channel. No further deltas are emitted.
func (r *Resolver) finishGameOver(res Result) Result {
	r.phase = PhaseGameOver
	if r.logger != nil {
		r.logger.Info("match ended",
			zap.String("winner", res.WinnerID),
			zap.String("loser", res.LoserID),
		)
	}
	r.emitter.Broadcast(GameOver{Type: EventGameOver, Winner: res.WinnerID})
	r.emitter.Shutdown()
	return res
}

// emitTick emits the intermediate tick delta for a player whose front card
// has not reached zero yet. State is emitted before the pacing delay.
func (r *Resolver) emitTick(p *PlayerState) {
	delta := Delta{
		Key:  r.nextKey(),
		Type: EventTick,
		Tick: p.ID,
		DropZones: map[string][]CardView{
			p.ID: CardViews(p.DropZone),
		},
	}
	r.emit(delta)
}

// emitSnapshot emits one consolidated delta with dropzone, health and mana
// snapshots for both players.
func (r *Resolver) emitSnapshot(eventType EventType, activeID string) {
	delta := Delta{
		Key:       r.nextKey(),
		Type:      eventType,
		Tick:      activeID,
		DropZones: make(map[string][]CardView, 2),
		Health:    make(map[string]int, 2),
		Mana:      make(map[string]int, 2),
	}
	for _, p := range r.players {
		delta.DropZones[p.ID] = CardViews(p.DropZone)
		delta.Health[p.ID] = p.Health
		delta.Mana[p.ID] = p.Mana
	}
	r.emit(delta)
}

func (r *Resolver) emit(delta Delta) {
	if r.replay != nil {
		r.replay.Record(delta)
	}
	r.emitter.Broadcast(delta)
}

func (r *Resolver) nextKey() string {
	r.seq++
	return fmt.Sprintf("%d-%s", r.seq, uuid.NewString())
}
