package catalog

import "github.com/spellclash/spellclash-server/internal/game"

// builtinCards is the shipped card set. Every effect kind, trigger shape,
// expiration kind and condition domain appears at least once.
func builtinCards() []Definition {
	return []Definition{
		{
			ID: "fireball", Name: "Fireball", Cost: 3, Time: 3,
			Text: "Deal {value} damage to your opponent.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetOpponent, Kind: game.EffectDamage,
					Value: 5, HasValue: true, Immediate: true,
				},
			},
		},
		{
			ID: "spark", Name: "Spark", Cost: 1, Time: 1,
			Text: "Deal {value} damage to your opponent.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetOpponent, Kind: game.EffectDamage,
					Value: 2, HasValue: true, Immediate: true,
				},
			},
		},
		{
			ID: "spring", Name: "Spring", Cost: 2, Time: 2,
			Text: "Restore {value} health.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetSelf, Kind: game.EffectHealth,
					Value: 3, HasValue: true, Immediate: true,
				},
			},
		},
		{
			ID: "cloud", Name: "Cloud", Cost: 2, Time: 1,
			Text: "Negate the next damage spell your opponent casts.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetOpponent, Kind: game.EffectDamage,
					Prevention: true,
				},
				Trigger: &game.Trigger{
					Kind: game.EffectDamage, ExpiresOnTrigger: true,
				},
				Expiration: &game.Expiration{
					Kind: game.ExpireEndOfRound, NumActivations: 1,
				},
			},
		},
		{
			ID: "ward", Name: "Ward", Cost: 3, Time: 2,
			Text: "Counter the next damage spell your opponent casts.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetOpponent, Kind: game.EffectSpell,
					Subkind: game.SubkindCounter, Prevention: true,
				},
				Trigger: &game.Trigger{
					Kind: game.EffectDamage, ExpiresOnTrigger: true,
				},
				Expiration: &game.Expiration{
					Kind: game.ExpireEndOfRound, NumActivations: 1,
				},
			},
		},
		{
			ID: "moon", Name: "Moon", Cost: 2, Time: 2,
			Text: "Weaken the next expensive damage spell your opponent casts by {value}.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetOpponent, Kind: game.EffectDamage,
					Prevention: true, Value: 3, HasValue: true,
				},
				Trigger: &game.Trigger{
					Kind: game.EffectDamage, ExpiresOnTrigger: true,
				},
				Condition: &game.Condition{
					Domain: game.DomainSpell, Subkind: game.SubkindMana,
					Op: game.CompareGreater, Value: 2,
				},
				Expiration: &game.Expiration{
					Kind: game.ExpireEndOfRound, NumActivations: 1,
				},
			},
		},
		{
			ID: "totem", Name: "Totem", Cost: 2, Time: 2,
			Text: "Whenever you cast a damage spell this round, restore {value} health.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetSelf, Kind: game.EffectHealth,
					Value: 1, HasValue: true,
				},
				Trigger: &game.Trigger{
					Kind: game.EffectDamage,
				},
				Expiration: &game.Expiration{
					Kind: game.ExpireEndOfRound, NumActivations: 2,
				},
			},
		},
		{
			ID: "haste", Name: "Haste", Cost: 1, Time: 1,
			Text: "Your next spell casts {value} ticks sooner.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetSelf, Kind: game.EffectSpell,
					Subkind: game.SubkindTime, Prevention: true,
					Value: 1, HasValue: true, Immediate: true,
				},
			},
		},
		{
			ID: "slow", Name: "Slow", Cost: 2, Time: 1,
			Text: "Your opponent's next spell casts {value} ticks later.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetOpponent, Kind: game.EffectSpell,
					Subkind: game.SubkindTime,
					Value:   2, HasValue: true, Immediate: true,
				},
			},
		},
		{
			ID: "manafont", Name: "Mana Font", Cost: 0, Time: 2,
			Text: "Gain {value} mana.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetSelf, Kind: game.EffectMana,
					Value: 2, HasValue: true, Immediate: true,
				},
			},
		},
		{
			ID: "drain", Name: "Drain", Cost: 2, Time: 2,
			Text: "Your opponent loses {value} mana.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetOpponent, Kind: game.EffectMana,
					Prevention: true, Value: 2, HasValue: true, Immediate: true,
				},
			},
		},
		{
			ID: "divination", Name: "Divination", Cost: 1, Time: 2,
			Text: "Draw {value} extra card next round.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetSelf, Kind: game.EffectDraw,
					Value: 1, HasValue: true, Immediate: true,
				},
			},
		},
		{
			ID: "curse", Name: "Curse", Cost: 3, Time: 2,
			Text: "At the end of the round, deal {value} damage to your opponent.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetOpponent, Kind: game.EffectDamage,
					Value: 4, HasValue: true,
				},
				Expiration: &game.Expiration{
					Kind: game.ExpireEndOfRound, NumActivations: 1,
					TriggerOnExpiration: true,
				},
			},
		},
		{
			ID: "embers", Name: "Embers", Cost: 2, Time: 1,
			Text: "After your opponent's second spell resolves, deal {value} damage to them.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetOpponent, Kind: game.EffectDamage,
					Value: 3, HasValue: true,
				},
				Expiration: &game.Expiration{
					Kind: game.ExpireNextCard, NumActivations: 2,
					TriggerOnExpiration: true,
				},
			},
		},
		{
			ID: "mirror", Name: "Mirror", Cost: 4, Time: 2,
			Text: "Reflect the next damage spell your opponent casts back at them.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetOpponent, Kind: game.EffectSpell,
					SpellChange: &game.Effect{
						Target: game.TargetSelf, Kind: game.EffectDamage,
					},
				},
				Trigger: &game.Trigger{
					Kind: game.EffectDamage, ExpiresOnTrigger: true,
				},
				Expiration: &game.Expiration{
					Kind: game.ExpireEndOfRound, NumActivations: 1,
				},
			},
		},
		{
			ID: "amplify", Name: "Amplify", Cost: 1, Time: 1,
			Text: "Your next queued spell's effect grows by {value}.",
			Ability: game.Ability{
				Effect: game.Effect{
					Target: game.TargetSelf, Kind: game.EffectSpell,
					Value: 2, HasValue: true, Immediate: true,
				},
			},
		},
	}
}
