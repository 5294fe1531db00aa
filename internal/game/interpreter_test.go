package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func newTestResolver(t *testing.T) (*Resolver, *PlayerState, *PlayerState) {
	t.Helper()
	p1, p2 := newTestPlayers()
	r := NewResolver(p1, p2, "alice", testSource(), newCaptureEmitter(), Pacer{}, zaptest.NewLogger(t))
	return r, p1, p2
}

func TestApplyEffectBothTargets(t *testing.T) {
	r, p1, p2 := newTestResolver(t)
	ability := Ability{
		Effect: Effect{Target: TargetBoth, Kind: EffectDamage, Value: 3, HasValue: true, Immediate: true},
	}
	res := r.applyEffect(ability, "alice", nil, false)
	assert.False(t, res.GameOver)
	assert.Equal(t, 17, p1.Health)
	assert.Equal(t, 17, p2.Health)
}

func TestApplyEffectDeferredEnqueues(t *testing.T) {
	r, p1, p2 := newTestResolver(t)
	ability := Ability{
		Effect:  Effect{Target: TargetOpponent, Kind: EffectDamage, Value: 3, HasValue: true},
		Trigger: &Trigger{Kind: EffectDamage},
	}
	res := r.applyEffect(ability, "alice", nil, false)
	assert.False(t, res.GameOver)
	assert.Equal(t, 1, r.Queue().Len())
	assert.Equal(t, 20, p1.Health)
	assert.Equal(t, 20, p2.Health)
}

func TestApplyEffectHealthPrevention(t *testing.T) {
	r, p1, _ := newTestResolver(t)
	ability := Ability{
		Effect: Effect{Target: TargetSelf, Kind: EffectHealth, Prevention: true, Value: 4, HasValue: true, Immediate: true},
	}
	r.applyEffect(ability, "alice", nil, false)
	assert.Equal(t, 16, p1.Health)
}

func TestApplyEffectManaDrain(t *testing.T) {
	r, _, p2 := newTestResolver(t)
	ability := Ability{
		Effect: Effect{Target: TargetOpponent, Kind: EffectMana, Prevention: true, Value: 4, HasValue: true, Immediate: true},
	}
	r.applyEffect(ability, "alice", nil, false)
	assert.Equal(t, 6, p2.Mana)
}

func TestApplyEffectDrawBonusClampsAtZero(t *testing.T) {
	r, p1, _ := newTestResolver(t)
	drain := Ability{
		Effect: Effect{Target: TargetSelf, Kind: EffectDraw, Prevention: true, Value: 2, HasValue: true, Immediate: true},
	}
	r.applyEffect(drain, "alice", nil, false)
	assert.Equal(t, 0, p1.DrawBonus)

	grant := Ability{
		Effect: Effect{Target: TargetSelf, Kind: EffectDraw, Value: 3, HasValue: true, Immediate: true},
	}
	r.applyEffect(grant, "alice", nil, false)
	assert.Equal(t, 3, p1.DrawBonus)
}

func TestPreventDamageValueReducesQueuedEntry(t *testing.T) {
	r, _, _ := newTestResolver(t)
	queued := Ability{
		Effect:     Effect{Target: TargetOpponent, Kind: EffectDamage, Value: 5, HasValue: true},
		Expiration: &Expiration{Kind: ExpireEndOfRound, NumActivations: 1, TriggerOnExpiration: true},
	}
	r.queue.Add(queued, "bob")

	prevention := Effect{Kind: EffectDamage, Prevention: true, Value: 3, HasValue: true}
	r.preventDamage(prevention, nil)

	assert.Equal(t, 2, r.queue.Entries()[0].Ability.Effect.Value)
}

func TestPreventDamageValueClampsQueuedEntryAtZero(t *testing.T) {
	r, _, _ := newTestResolver(t)
	queued := Ability{
		Effect:     Effect{Target: TargetOpponent, Kind: EffectDamage, Value: 2, HasValue: true},
		Expiration: &Expiration{Kind: ExpireEndOfRound, NumActivations: 1, TriggerOnExpiration: true},
	}
	r.queue.Add(queued, "bob")

	prevention := Effect{Kind: EffectDamage, Prevention: true, Value: 5, HasValue: true}
	r.preventDamage(prevention, nil)

	assert.Equal(t, 0, r.queue.Entries()[0].Ability.Effect.Value)
}

func TestPreventDamageValueFallsBackToSourceCard(t *testing.T) {
	r, _, _ := newTestResolver(t)
	source := damageCard("bolt", 5, 3, 3)

	prevention := Effect{Kind: EffectDamage, Prevention: true, Value: 3, HasValue: true}
	r.preventDamage(prevention, source)

	assert.Equal(t, 2, source.Ability.Effect.Value)
}

func TestPreventDamageWithoutValueNullifiesSource(t *testing.T) {
	r, _, _ := newTestResolver(t)
	source := damageCard("bolt", 5, 3, 3)

	prevention := Effect{Kind: EffectDamage, Prevention: true}
	r.preventDamage(prevention, source)

	assert.Equal(t, 0, source.Ability.Effect.Value)
}

func TestSpellTimeAdjustmentClampsAtZero(t *testing.T) {
	r, p1, _ := newTestResolver(t)
	card := damageCard("bolt", 5, 3, 3)
	card.Timer = 1
	p1.DropZone = []*Card{card}

	speedUp := Effect{Kind: EffectSpell, Subkind: SubkindTime, Prevention: true, Value: 4, HasValue: true}
	r.applySpellEffect(speedUp, p1, nil)
	assert.Equal(t, 0, card.Timer)

	slowDown := Effect{Kind: EffectSpell, Subkind: SubkindTime, Value: 2, HasValue: true}
	r.applySpellEffect(slowDown, p1, nil)
	assert.Equal(t, 2, card.Timer)
}

func TestSpellCounterRemovesFrontCard(t *testing.T) {
	r, p1, _ := newTestResolver(t)
	p1.DropZone = []*Card{damageCard("a", 1, 1, 1), damageCard("b", 1, 1, 1)}

	counter := Effect{Kind: EffectSpell, Subkind: SubkindCounter, Prevention: true}
	r.applySpellEffect(counter, p1, nil)

	assert.Len(t, p1.DropZone, 1)
	assert.Equal(t, "b", p1.DropZone[0].ID)
}

func TestDeathCheckNamesWinnerAndLoser(t *testing.T) {
	r, p1, p2 := newTestResolver(t)
	p2.Health = 0
	res := r.deathCheck()
	assert.True(t, res.GameOver)
	assert.Equal(t, p1.ID, res.WinnerID)
	assert.Equal(t, p2.ID, res.LoserID)

	p2.Health = 20
	p1.Health = -3
	res = r.deathCheck()
	assert.True(t, res.GameOver)
	assert.Equal(t, p2.ID, res.WinnerID)
}
