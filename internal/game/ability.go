package game

import "fmt"

// EffectKind indicates what an effect does when it resolves.
type EffectKind string

const (
	EffectHealth EffectKind = "HEALTH"
	EffectDamage EffectKind = "DAMAGE"
	EffectDraw   EffectKind = "DRAW"
	EffectMana   EffectKind = "MANA"
	EffectSpell  EffectKind = "SPELL"
)

// EffectSubkind refines an effect kind. Only SPELL-kind effects and triggers
// carry a subkind.
type EffectSubkind string

const (
	SubkindNone    EffectSubkind = ""
	SubkindType    EffectSubkind = "TYPE"
	SubkindTime    EffectSubkind = "TIME"
	SubkindMana    EffectSubkind = "MANA"
	SubkindCounter EffectSubkind = "COUNTER"
)

// Target selects which player an effect applies to, relative to the
// ability's owner.
type Target string

const (
	TargetSelf     Target = "SELF"
	TargetOpponent Target = "OPPONENT"
	TargetBoth     Target = "BOTH"
)

// ExpirationKind is the lifecycle boundary at which a pending ability's
// activation counter is decremented.
type ExpirationKind string

const (
	ExpireEndOfRound ExpirationKind = "END_OF_ROUND"
	ExpireNextCard   ExpirationKind = "NEXT_CARD"
)

// Comparison is the operator of a numeric guard condition.
type Comparison string

const (
	CompareEqual   Comparison = "EQUAL"
	CompareLess    Comparison = "LESS"
	CompareGreater Comparison = "GREATER"
)

// ConditionDomain selects where a condition draws its left-hand value from.
type ConditionDomain string

const (
	// DomainSpell reads a quantity from the card being cast, selected by the
	// condition's subkind: TIME reads the timer, MANA reads the cost, any
	// other subkind reads the ability's effect value.
	DomainSpell ConditionDomain = "SPELL"
	// DomainExpiration reads the pending entry's remaining activation count.
	DomainExpiration ConditionDomain = "EXPIRATION"
	// DomainValue reads the cast card's ability effect value.
	DomainValue ConditionDomain = "VALUE"
)

// Effect describes a single state mutation. Value is meaningful only when
// HasValue is set; SPELL-kind effects without a value nullify rather than
// adjust.
type Effect struct {
	Target     Target
	Kind       EffectKind
	Subkind    EffectSubkind
	Value      int
	HasValue   bool
	Prevention bool
	Immediate  bool
	// SpellChange optionally rewrites another ability's effect when this
	// effect resolves (retype/redirect).
	SpellChange *Effect
}

// Trigger describes the event pattern that activates a pending ability: a
// just-cast card whose effect kind (and subkind, when set) matches.
// Ownership alignment comes from the pending ability's effect target.
type Trigger struct {
	Kind             EffectKind
	Subkind          EffectSubkind
	ExpiresOnTrigger bool
}

// Expiration bounds a pending ability's lifetime in activation sweeps.
type Expiration struct {
	Kind                ExpirationKind
	NumActivations      int
	TriggerOnExpiration bool
}

// Condition is a numeric guard evaluated before a trigger or expiration
// fires.
type Condition struct {
	Domain  ConditionDomain
	Subkind EffectSubkind
	Op      Comparison
	Value   int
}

// Ability is the full effect/trigger/expiration/condition bundle attached to
// a card. Abilities are immutable templates; card instances and pending
// entries carry copies.
type Ability struct {
	Effect     Effect
	Trigger    *Trigger
	Expiration *Expiration
	Condition  *Condition
}

// Clone returns a deep copy of the ability so per-round mutation never
// touches the catalog template.
func (a Ability) Clone() Ability {
	out := a
	if a.Effect.SpellChange != nil {
		sc := *a.Effect.SpellChange
		out.Effect.SpellChange = &sc
	}
	if a.Trigger != nil {
		t := *a.Trigger
		out.Trigger = &t
	}
	if a.Expiration != nil {
		e := *a.Expiration
		out.Expiration = &e
	}
	if a.Condition != nil {
		c := *a.Condition
		out.Condition = &c
	}
	return out
}

// Deferred reports whether the ability creates a pending queue entry instead
// of resolving at cast time.
func (a Ability) Deferred() bool {
	return !a.Effect.Immediate
}

// Validate checks catalog-level integrity: a non-immediate ability with
// neither trigger nor expiration could never resolve and is rejected.
func (a Ability) Validate() error {
	switch a.Effect.Kind {
	case EffectHealth, EffectDamage, EffectDraw, EffectMana, EffectSpell:
	default:
		return fmt.Errorf("unknown effect kind %q", a.Effect.Kind)
	}
	switch a.Effect.Target {
	case TargetSelf, TargetOpponent, TargetBoth:
	default:
		return fmt.Errorf("unknown effect target %q", a.Effect.Target)
	}
	if !a.Effect.Immediate && a.Trigger == nil && a.Expiration == nil {
		return fmt.Errorf("deferred ability has neither trigger nor expiration")
	}
	if a.Expiration != nil && a.Expiration.NumActivations < 1 {
		return fmt.Errorf("expiration needs at least one activation, got %d", a.Expiration.NumActivations)
	}
	return nil
}
