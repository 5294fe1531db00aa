// Package catalog holds the immutable card table. Definitions are validated
// once at load time; integrity faults are fatal to startup and never a
// runtime condition.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spellclash/spellclash-server/internal/game"
	"go.uber.org/zap"
)

// ErrUnknownCard is returned when an id has no catalog entry.
var ErrUnknownCard = errors.New("unknown card id")

// Definition is one immutable catalog entry.
type Definition struct {
	ID      string
	Name    string
	Text    string
	Cost    int
	Time    int
	Ability game.Ability
}

// Catalog maps card ids to their definitions. Read-only after Load, safe to
// share across all concurrent matches.
type Catalog struct {
	defs   map[string]Definition
	logger *zap.Logger
}

// Load builds a catalog from definitions and validates every entry. Any
// malformed ability definition fails the load.
func Load(defs []Definition, logger *zap.Logger) (*Catalog, error) {
	c := &Catalog{
		defs:   make(map[string]Definition, len(defs)),
		logger: logger,
	}
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("catalog: definition %q has empty id", def.Name)
		}
		if _, dup := c.defs[def.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate card id %q", def.ID)
		}
		if def.Cost < 0 {
			return nil, fmt.Errorf("catalog: card %q has negative cost", def.ID)
		}
		if def.Time < 1 {
			return nil, fmt.Errorf("catalog: card %q has cast time %d, want >= 1", def.ID, def.Time)
		}
		if err := def.Ability.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: card %q: %w", def.ID, err)
		}
		c.defs[def.ID] = def
	}
	if logger != nil {
		logger.Info("card catalog loaded", zap.Int("cards", len(c.defs)))
	}
	return c, nil
}

// Default loads the built-in card set.
func Default(logger *zap.Logger) (*Catalog, error) {
	return Load(builtinCards(), logger)
}

// Get returns the definition for an id.
func (c *Catalog) Get(id string) (Definition, bool) {
	def, ok := c.defs[id]
	return def, ok
}

// Has reports whether an id exists in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.defs[id]
	return ok
}

// IDs returns all card ids in stable order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.defs))
	for id := range c.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Instantiate builds a fresh card instance for one round. Instances are
// independent deep copies; mutating one never affects the catalog or any
// sibling instance. Implements game.CardSource.
func (c *Catalog) Instantiate(id string) (*game.Card, error) {
	def, ok := c.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	return &game.Card{
		ID:      def.ID,
		Name:    def.Name,
		Text:    RenderText(def),
		Cost:    def.Cost,
		Time:    def.Time,
		Timer:   def.Time,
		Ability: def.Ability.Clone(),
	}, nil
}

// RenderText fills the display-text template with the card's numbers.
// Supported placeholders: {value}, {cost}, {time}.
func RenderText(def Definition) string {
	r := strings.NewReplacer(
		"{value}", strconv.Itoa(def.Ability.Effect.Value),
		"{cost}", strconv.Itoa(def.Cost),
		"{time}", strconv.Itoa(def.Time),
	)
	return r.Replace(def.Text)
}
