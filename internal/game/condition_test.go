package game

import "testing"

func TestEvaluateConditionNilAlwaysHolds(t *testing.T) {
	if !EvaluateCondition(nil, nil, nil) {
		t.Fatal("nil condition must hold")
	}
}

func TestEvaluateConditionSpellDomain(t *testing.T) {
	card := &Card{
		Cost:  3,
		Timer: 2,
		Ability: Ability{
			Effect: Effect{Kind: EffectDamage, Value: 5, HasValue: true},
		},
	}

	cases := []struct {
		name string
		cond Condition
		want bool
	}{
		{"mana subkind reads cost", Condition{Domain: DomainSpell, Subkind: SubkindMana, Op: CompareGreater, Value: 2}, true},
		{"mana subkind equal", Condition{Domain: DomainSpell, Subkind: SubkindMana, Op: CompareEqual, Value: 3}, true},
		{"time subkind reads timer", Condition{Domain: DomainSpell, Subkind: SubkindTime, Op: CompareLess, Value: 3}, true},
		{"time subkind not greater", Condition{Domain: DomainSpell, Subkind: SubkindTime, Op: CompareGreater, Value: 2}, false},
		{"default subkind reads effect value", Condition{Domain: DomainSpell, Op: CompareEqual, Value: 5}, true},
		{"value domain reads effect value", Condition{Domain: DomainValue, Op: CompareGreater, Value: 4}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EvaluateCondition(&tc.cond, card, nil); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEvaluateConditionExpirationDomain(t *testing.T) {
	entry := &PendingAbility{Remaining: 2}
	cond := &Condition{Domain: DomainExpiration, Op: CompareEqual, Value: 2}
	if !EvaluateCondition(cond, nil, entry) {
		t.Error("expiration domain must read the remaining counter")
	}
	cond.Value = 1
	if EvaluateCondition(cond, nil, entry) {
		t.Error("expected mismatch on remaining counter")
	}
}

func TestEvaluateConditionNilCardIsZero(t *testing.T) {
	cond := &Condition{Domain: DomainSpell, Subkind: SubkindMana, Op: CompareEqual, Value: 0}
	if !EvaluateCondition(cond, nil, nil) {
		t.Error("missing card must evaluate as zero")
	}
}

func TestEvaluateConditionUnknownOperator(t *testing.T) {
	cond := &Condition{Domain: DomainValue, Op: Comparison("BETWEEN"), Value: 1}
	card := &Card{Ability: Ability{Effect: Effect{Value: 1}}}
	if EvaluateCondition(cond, card, nil) {
		t.Error("unknown operator must not hold")
	}
}
