package game

import "go.uber.org/zap"

// Result is the explicit outcome of applying effects or resolving a round.
// The zero value means play continues. GameOver is a control-flow signal,
// not an error: it propagates through every function in the resolution call
// chain that can produce it.
type Result struct {
	GameOver bool
	WinnerID string
	LoserID  string
}

// applyEffect resolves one ability's effect against current player state.
// owner is the player the ability belongs to; sourceCard is the card being
// cast when the application happens during a cast, nil otherwise. triggered
// marks applications caused by a trigger match or an expiration firing:
// those always apply immediately, since being triggered is itself the
// activation event. A non-triggered deferred ability enqueues a pending
// entry instead of mutating anything.
func (r *Resolver) applyEffect(ability Ability, owner string, sourceCard *Card, triggered bool) Result {
	if !triggered && ability.Deferred() {
		r.queue.Add(ability, owner)
		if r.logger != nil {
			r.logger.Debug("ability enqueued",
				zap.String("owner", owner),
				zap.String("kind", string(ability.Effect.Kind)),
			)
		}
		return Result{}
	}

	for _, target := range r.targetsOf(ability.Effect.Target, owner) {
		r.applyToPlayer(ability.Effect, target, sourceCard)
	}
	return r.deathCheck()
}

// targetsOf resolves SELF/OPPONENT/BOTH to concrete player states.
func (r *Resolver) targetsOf(target Target, owner string) []*PlayerState {
	self := r.playerByID(owner)
	opp := r.opponentOf(owner)
	switch target {
	case TargetSelf:
		return []*PlayerState{self}
	case TargetOpponent:
		return []*PlayerState{opp}
	case TargetBoth:
		return []*PlayerState{self, opp}
	default:
		return nil
	}
}

// applyToPlayer dispatches on the effect kind. Every branch returns
// explicitly; there is no fallthrough.
func (r *Resolver) applyToPlayer(effect Effect, target *PlayerState, sourceCard *Card) {
	switch effect.Kind {
	case EffectHealth:
		if effect.Prevention {
			target.Health -= effect.Value
		} else {
			target.Health += effect.Value
		}
		return

	case EffectDamage:
		if effect.Prevention {
			r.preventDamage(effect, sourceCard)
			return
		}
		target.Health -= effect.Value
		return

	case EffectDraw:
		if effect.Prevention {
			target.DrawBonus -= effect.Value
		} else {
			target.DrawBonus += effect.Value
		}
		if target.DrawBonus < 0 {
			target.DrawBonus = 0
		}
		return

	case EffectMana:
		if effect.Prevention {
			target.Mana -= effect.Value
		} else {
			target.Mana += effect.Value
		}
		return

	case EffectSpell:
		r.applySpellEffect(effect, target, sourceCard)
		return

	default:
		// Rejected at catalog load; unreachable for validated abilities.
		return
	}
}

// preventDamage reduces the value of the damage source itself rather than
// touching a player. With a value it subtracts from the nearest source — the
// front queued DAMAGE ability when one is pending, otherwise the casting
// card — clamped at zero. Without a value it nullifies the casting card's
// damage outright.
func (r *Resolver) preventDamage(effect Effect, sourceCard *Card) {
	if !effect.HasValue {
		if sourceCard != nil && sourceCard.Ability.Effect.Kind == EffectDamage {
			sourceCard.Ability.Effect.Value = 0
		}
		return
	}
	for _, entry := range r.queue.Entries() {
		if entry.Ability.Effect.Kind == EffectDamage && !entry.Ability.Effect.Prevention {
			entry.Ability.Effect.Value -= effect.Value
			if entry.Ability.Effect.Value < 0 {
				entry.Ability.Effect.Value = 0
			}
			return
		}
	}
	if sourceCard != nil && sourceCard.Ability.Effect.Kind == EffectDamage {
		sourceCard.Ability.Effect.Value -= effect.Value
		if sourceCard.Ability.Effect.Value < 0 {
			sourceCard.Ability.Effect.Value = 0
		}
	}
}

// applySpellEffect handles SPELL-kind effects, which act on cards and
// queued abilities instead of player totals.
func (r *Resolver) applySpellEffect(effect Effect, target *PlayerState, sourceCard *Card) {
	switch effect.Subkind {
	case SubkindCounter:
		// The countered card never casts and none of its effects apply.
		if removed := target.RemoveFront(); removed != nil && r.logger != nil {
			r.logger.Debug("card countered",
				zap.String("player_id", target.ID),
				zap.String("card", removed.Name),
			)
		}
		return

	case SubkindTime:
		front := target.Front()
		if front == nil {
			return
		}
		if effect.Prevention {
			front.Timer -= effect.Value
		} else {
			front.Timer += effect.Value
		}
		if front.Timer < 0 {
			front.Timer = 0
		}
		return

	default:
		// Mutate the casting card's ability when there is one, otherwise the
		// target's front queued card.
		victim := sourceCard
		if victim == nil {
			victim = target.Front()
		}
		if victim == nil {
			return
		}
		if effect.SpellChange != nil {
			sc := effect.SpellChange
			victim.Ability.Effect.Target = sc.Target
			victim.Ability.Effect.Kind = sc.Kind
			victim.Ability.Effect.Subkind = sc.Subkind
			if sc.HasValue {
				victim.Ability.Effect.Value = sc.Value
				victim.Ability.Effect.HasValue = true
			}
		}
		if effect.HasValue {
			if effect.Prevention {
				victim.Ability.Effect.Value -= effect.Value
				if victim.Ability.Effect.Value < 0 {
					victim.Ability.Effect.Value = 0
				}
			} else {
				victim.Ability.Effect.Value += effect.Value
			}
		}
		return
	}
}

// deathCheck inspects both players after an application. Health at or below
// zero ends the match naming the other player as winner.
func (r *Resolver) deathCheck() Result {
	for i, p := range r.players {
		if p.Health <= 0 {
			other := r.players[1-i]
			return Result{GameOver: true, WinnerID: other.ID, LoserID: p.ID}
		}
	}
	return Result{}
}
