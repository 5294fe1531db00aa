package catalog

import (
	"testing"

	"github.com/spellclash/spellclash-server/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func validDef(id string) Definition {
	return Definition{
		ID: id, Name: id, Cost: 1, Time: 1,
		Text: "Deal {value} damage.",
		Ability: game.Ability{
			Effect: game.Effect{
				Target: game.TargetOpponent, Kind: game.EffectDamage,
				Value: 2, HasValue: true, Immediate: true,
			},
		},
	}
}

func TestLoadDefaultCatalog(t *testing.T) {
	cat, err := Default(zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.NotEmpty(t, cat.IDs())
	assert.True(t, cat.Has("fireball"))
}

func TestLoadRejectsMalformedDefinitions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Definition)
	}{
		{"empty id", func(d *Definition) { d.ID = "" }},
		{"negative cost", func(d *Definition) { d.Cost = -1 }},
		{"zero cast time", func(d *Definition) { d.Time = 0 }},
		{"unresolvable ability", func(d *Definition) {
			d.Ability.Effect.Immediate = false
			d.Ability.Trigger = nil
			d.Ability.Expiration = nil
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def := validDef("x")
			tc.mutate(&def)
			_, err := Load([]Definition{def}, nil)
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	_, err := Load([]Definition{validDef("x"), validDef("x")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestInstantiateReturnsDeepCopies(t *testing.T) {
	cat, err := Load([]Definition{validDef("x")}, nil)
	require.NoError(t, err)

	a, err := cat.Instantiate("x")
	require.NoError(t, err)
	b, err := cat.Instantiate("x")
	require.NoError(t, err)

	a.Ability.Effect.Value = 99
	a.Timer = 0

	assert.Equal(t, 2, b.Ability.Effect.Value, "sibling instance must be untouched")
	def, _ := cat.Get("x")
	assert.Equal(t, 2, def.Ability.Effect.Value, "catalog template must be untouched")
}

func TestInstantiateUnknownID(t *testing.T) {
	cat, err := Load(nil, nil)
	require.NoError(t, err)
	_, err = cat.Instantiate("ghost")
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestInstantiateSetsTimerFromTime(t *testing.T) {
	def := validDef("x")
	def.Time = 4
	cat, err := Load([]Definition{def}, nil)
	require.NoError(t, err)

	card, err := cat.Instantiate("x")
	require.NoError(t, err)
	assert.Equal(t, 4, card.Timer)
}

func TestRenderTextFillsPlaceholders(t *testing.T) {
	def := validDef("x")
	def.Cost = 3
	def.Time = 2
	def.Text = "Costs {cost}, lands in {time}, deals {value}."
	assert.Equal(t, "Costs 3, lands in 2, deals 2.", RenderText(def))
}

func TestDefaultCatalogTextIsRendered(t *testing.T) {
	cat, err := Default(nil)
	require.NoError(t, err)
	card, err := cat.Instantiate("fireball")
	require.NoError(t, err)
	assert.NotContains(t, card.Text, "{value}")
}
