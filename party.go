package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrPartyNotFound is returned when a party id does not exist.
var ErrPartyNotFound = errors.New("party not found")

// Party is a saved team selection.
type Party struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Profile   CriteriaProfile `json:"profile"`
	Algorithm string          `json:"algorithm"`
	Members   []string        `json:"members"`
	Score     float64         `json:"score"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PartyFromRecommendation shapes a recommendation for persistence.
func PartyFromRecommendation(name string, profile CriteriaProfile, r Recommendation) Party {
	return Party{
		Name:      name,
		Profile:   profile,
		Algorithm: r.Algorithm,
		Members:   r.Team.IDs(),
		Score:     r.Score,
	}
}

const partySchema = `
CREATE TABLE IF NOT EXISTS parties (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	profile    TEXT NOT NULL,
	algorithm  TEXT NOT NULL,
	score      REAL NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS party_members (
	party_id     TEXT NOT NULL REFERENCES parties(id) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	character_id TEXT NOT NULL,
	PRIMARY KEY (party_id, position)
);
`

// PartyStore persists parties in a SQLite database.
type PartyStore struct {
	db *sql.DB
}

// OpenPartyStore opens (creating if needed) the database at path.
func OpenPartyStore(path string) (*PartyStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open party store: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(partySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create party schema: %w", err)
	}
	return &PartyStore{db: db}, nil
}

// Close releases the database.
func (s *PartyStore) Close() error {
	return s.db.Close()
}

// SaveParty stores p and returns its id. A new id is assigned when p.ID is empty.
func (s *PartyStore) SaveParty(ctx context.Context, p Party) (string, error) {
	if len(p.Members) == 0 {
		return "", errors.New("save party: no members")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save party: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM party_members WHERE party_id = ?`, p.ID); err != nil {
		return "", fmt.Errorf("save party: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM parties WHERE id = ?`, p.ID); err != nil {
		return "", fmt.Errorf("save party: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO parties (id, name, profile, algorithm, score, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Profile), p.Algorithm, p.Score, p.CreatedAt.UnixMilli()); err != nil {
		return "", fmt.Errorf("save party: %w", err)
	}
	for i, id := range p.Members {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO party_members (party_id, position, character_id) VALUES (?, ?, ?)`,
			p.ID, i, id); err != nil {
			return "", fmt.Errorf("save party member %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save party: %w", err)
	}
	return p.ID, nil
}

// GetParty loads one party with its members in order.
func (s *PartyStore) GetParty(ctx context.Context, id string) (Party, error) {
	var p Party
	var profile string
	var created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, profile, algorithm, score, created_at FROM parties WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &profile, &p.Algorithm, &p.Score, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Party{}, fmt.Errorf("%w: %s", ErrPartyNotFound, id)
	}
	if err != nil {
		return Party{}, fmt.Errorf("get party %s: %w", id, err)
	}
	p.Profile = CriteriaProfile(profile)
	p.CreatedAt = time.UnixMilli(created).UTC()
	if p.Members, err = s.members(ctx, id); err != nil {
		return Party{}, err
	}
	return p, nil
}

func (s *PartyStore) members(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT character_id FROM party_members WHERE party_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("party %s members: %w", id, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var cid string
		if err := rows.Scan(&cid); err != nil {
			return nil, fmt.Errorf("party %s members: %w", id, err)
		}
		out = append(out, cid)
	}
	return out, rows.Err()
}

// ListParties returns all parties, newest first.
func (s *PartyStore) ListParties(ctx context.Context) ([]Party, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM parties ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("list parties: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}

	parties := make([]Party, 0, len(ids))
	for _, id := range ids {
		p, err := s.GetParty(ctx, id)
		if err != nil {
			return nil, err
		}
		parties = append(parties, p)
	}
	return parties, nil
}

// DeleteParty removes a party and its members.
func (s *PartyStore) DeleteParty(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM party_members WHERE party_id = ?`, id); err != nil {
		return fmt.Errorf("delete party %s: %w", id, err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM parties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete party %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrPartyNotFound, id)
	}
	return nil
}
