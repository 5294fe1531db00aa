package game

// conditionValue resolves the left-hand quantity a condition compares
// against. For the SPELL domain exactly one quantity is selected by the
// condition's subkind: TIME reads the cast card's timer, MANA reads its
// cost, anything else reads the ability effect value. The comparison then
// applies to that single quantity for every operator.
func conditionValue(cond *Condition, card *Card, entry *PendingAbility) int {
	switch cond.Domain {
	case DomainSpell:
		if card == nil {
			return 0
		}
		switch cond.Subkind {
		case SubkindTime:
			return card.Timer
		case SubkindMana:
			return card.Cost
		default:
			return card.Ability.Effect.Value
		}
	case DomainExpiration:
		if entry == nil {
			return 0
		}
		return entry.Remaining
	default:
		if card == nil {
			return 0
		}
		return card.Ability.Effect.Value
	}
}

// EvaluateCondition reports whether the guard holds for the given cast card
// and pending entry. A nil condition always holds.
func EvaluateCondition(cond *Condition, card *Card, entry *PendingAbility) bool {
	if cond == nil {
		return true
	}
	lhs := conditionValue(cond, card, entry)
	switch cond.Op {
	case CompareEqual:
		return lhs == cond.Value
	case CompareLess:
		return lhs < cond.Value
	case CompareGreater:
		return lhs > cond.Value
	default:
		return false
	}
}
