package game

// PendingAbility is a deferred ability waiting in the queue for a trigger
// match or an expiration sweep.
type PendingAbility struct {
	Ability Ability
	Owner   string
	// Remaining counts activations left before the entry is removed by an
	// expiration sweep.
	Remaining int
}

// AbilityQueue is the insertion-ordered collection of pending abilities for
// one round. It is exclusively owned by a single resolver, so no locking.
type AbilityQueue struct {
	entries []*PendingAbility
}

// NewAbilityQueue creates an empty queue.
func NewAbilityQueue() *AbilityQueue {
	return &AbilityQueue{entries: make([]*PendingAbility, 0, 8)}
}

// Add appends a pending ability owned by the given player.
func (q *AbilityQueue) Add(ability Ability, owner string) *PendingAbility {
	entry := &PendingAbility{
		Ability: ability.Clone(),
		Owner:   owner,
	}
	if exp := entry.Ability.Expiration; exp != nil {
		entry.Remaining = exp.NumActivations
	}
	q.entries = append(q.entries, entry)
	return entry
}

// Len returns the number of pending entries.
func (q *AbilityQueue) Len() int {
	return len(q.entries)
}

// Entries returns the live entries in insertion order.
func (q *AbilityQueue) Entries() []*PendingAbility {
	return q.entries
}

// ownerAligned applies the self/opponent ownership rule: a SELF-targeting
// entry reacts to its owner's casts, an OPPONENT-targeting entry to the
// other player's. BOTH aligns with either.
func ownerAligned(entry *PendingAbility, activePlayerID string) bool {
	switch entry.Ability.Effect.Target {
	case TargetSelf:
		return entry.Owner == activePlayerID
	case TargetOpponent:
		return entry.Owner != activePlayerID
	default:
		return true
	}
}

// matches reports whether the entry's trigger pattern fits the just-cast
// card for the given active player.
func (q *AbilityQueue) matches(entry *PendingAbility, card *Card, activePlayerID string) bool {
	trig := entry.Ability.Trigger
	if trig == nil {
		return false
	}
	if !ownerAligned(entry, activePlayerID) {
		return false
	}
	if trig.Kind != card.Ability.Effect.Kind {
		return false
	}
	if trig.Subkind != SubkindNone && trig.Subkind != card.Ability.Effect.Subkind {
		return false
	}
	return EvaluateCondition(entry.Ability.Condition, card, entry)
}

// ConsumeTriggered returns all entries matching the just-cast card, in
// insertion order. Entries marked ExpiresOnTrigger are removed from the
// queue at match time; sustained entries stay and may match again.
func (q *AbilityQueue) ConsumeTriggered(card *Card, activePlayerID string) []*PendingAbility {
	var matched []*PendingAbility
	kept := q.entries[:0]
	for _, entry := range q.entries {
		if q.matches(entry, card, activePlayerID) {
			matched = append(matched, entry)
			if entry.Ability.Trigger.ExpiresOnTrigger {
				continue
			}
		}
		kept = append(kept, entry)
	}
	q.entries = kept
	return matched
}

// SweepExpiring decrements the activation counter of every entry whose
// expiration kind matches. For NEXT_CARD sweeps the ownership-alignment rule
// is applied against the player whose card just resolved; END_OF_ROUND
// sweeps hit every matching entry. Entries whose counter drops below one are
// removed; the removed entries with TriggerOnExpiration set are returned so
// the resolver can fire their effects.
func (q *AbilityQueue) SweepExpiring(kind ExpirationKind, activePlayerID string) []*PendingAbility {
	var fired []*PendingAbility
	kept := q.entries[:0]
	for _, entry := range q.entries {
		exp := entry.Ability.Expiration
		if exp == nil || exp.Kind != kind {
			kept = append(kept, entry)
			continue
		}
		if kind == ExpireNextCard && !ownerAligned(entry, activePlayerID) {
			kept = append(kept, entry)
			continue
		}
		entry.Remaining--
		if entry.Remaining >= 1 {
			kept = append(kept, entry)
			continue
		}
		if exp.TriggerOnExpiration {
			fired = append(fired, entry)
		}
	}
	q.entries = kept
	return fired
}
