package game

// Card is a per-round instance of a catalog definition. Instances are deep
// copies: the resolver mutates Timer and the ability's effect value freely
// without touching the shared catalog.
type Card struct {
	ID      string
	Name    string
	Text    string
	Cost    int
	Time    int
	Timer   int
	Ability Ability
}

// Clone returns an independent copy of the card instance.
func (c *Card) Clone() *Card {
	cpy := *c
	cpy.Ability = c.Ability.Clone()
	return &cpy
}

// PlayerState is one player's mutable state for a single round.
// Health may go negative; that is the death signal. Mana must stay
// non-negative after cost deduction (solvency guard).
type PlayerState struct {
	ID       string
	Hand     []*Card
	DropZone []*Card
	Health   int
	Mana     int
	// DrawBonus adjusts how many cards the player draws at the next round
	// start. Never below zero.
	DrawBonus int
}

// Front returns the left-most dropzone card, or nil when the zone is empty.
func (p *PlayerState) Front() *Card {
	if len(p.DropZone) == 0 {
		return nil
	}
	return p.DropZone[0]
}

// PopFront removes and returns the left-most dropzone card.
func (p *PlayerState) PopFront() *Card {
	if len(p.DropZone) == 0 {
		return nil
	}
	card := p.DropZone[0]
	p.DropZone = p.DropZone[1:]
	return card
}

// RemoveFront discards the left-most dropzone card without casting it.
func (p *PlayerState) RemoveFront() *Card {
	return p.PopFront()
}
