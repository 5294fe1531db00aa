package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrDeckNotFound is returned when a user has no deck with the given name.
var ErrDeckNotFound = errors.New("deck not found")

// Deck is a named card collection owned by a user. Cards is the ordered
// list of catalog ids.
type Deck struct {
	UserID string
	Name   string
	Cards  []string
}

// DeckRepository persists decks in postgres.
type DeckRepository struct {
	db *DB
}

// NewDeckRepository creates the repository.
func NewDeckRepository(db *DB) *DeckRepository {
	return &DeckRepository{db: db}
}

// Save inserts or replaces a named deck.
func (r *DeckRepository) Save(ctx context.Context, deck Deck) error {
	_, err := r.db.pool.Exec(ctx,
		`INSERT INTO decks (user_id, name, cards)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, name) DO UPDATE SET cards = EXCLUDED.cards`,
		deck.UserID, deck.Name, deck.Cards,
	)
	if err != nil {
		return fmt.Errorf("save deck %q for %s: %w", deck.Name, deck.UserID, err)
	}
	if r.db.logger != nil {
		r.db.logger.Debug("deck saved",
			zap.String("user_id", deck.UserID),
			zap.String("deck", deck.Name),
			zap.Int("cards", len(deck.Cards)),
		)
	}
	return nil
}

// Get loads a named deck for a user.
func (r *DeckRepository) Get(ctx context.Context, userID, name string) (Deck, error) {
	deck := Deck{UserID: userID, Name: name}
	err := r.db.pool.QueryRow(ctx,
		`SELECT cards FROM decks WHERE user_id = $1 AND name = $2`,
		userID, name,
	).Scan(&deck.Cards)
	if errors.Is(err, pgx.ErrNoRows) {
		return Deck{}, ErrDeckNotFound
	}
	if err != nil {
		return Deck{}, fmt.Errorf("load deck %q for %s: %w", name, userID, err)
	}
	return deck, nil
}

// List returns the names of a user's decks.
func (r *DeckRepository) List(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT name FROM decks WHERE user_id = $1 ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list decks for %s: %w", userID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan deck name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a named deck.
func (r *DeckRepository) Delete(ctx context.Context, userID, name string) error {
	tag, err := r.db.pool.Exec(ctx,
		`DELETE FROM decks WHERE user_id = $1 AND name = $2`,
		userID, name,
	)
	if err != nil {
		return fmt.Errorf("delete deck %q for %s: %w", name, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDeckNotFound
	}
	return nil
}
