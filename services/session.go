package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionKey identifies one rendered screen: the chat and the message holding the card.
type SessionKey struct {
	ChatID    int64
	MessageID int
}

// SessionStore keeps the state behind each screen between button presses.
type SessionStore interface {
	Get(ctx context.Context, key SessionKey) (FoodDetails, bool, error)
	Save(ctx context.Context, key SessionKey, s FoodDetails) error
	Delete(ctx context.Context, key SessionKey) error
	// Prune drops sessions last saved before cutoff and returns their keys.
	Prune(ctx context.Context, cutoff time.Time) ([]SessionKey, error)
}

type memorySession struct {
	state   FoodDetails
	savedAt time.Time
}

type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[SessionKey]memorySession
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[SessionKey]memorySession), now: time.Now}
}

func (m *MemorySessionStore) Get(_ context.Context, key SessionKey) (FoodDetails, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[key]
	if !ok {
		return FoodDetails{}, false, nil
	}
	return e.state.clone(), true, nil
}

func (m *MemorySessionStore) Save(_ context.Context, key SessionKey, s FoodDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[key] = memorySession{state: s.clone(), savedAt: m.now()}
	return nil
}

func (m *MemorySessionStore) Delete(_ context.Context, key SessionKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
	return nil
}

func (m *MemorySessionStore) Prune(_ context.Context, cutoff time.Time) ([]SessionKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed []SessionKey
	for key, e := range m.sessions {
		if e.savedAt.Before(cutoff) {
			delete(m.sessions, key)
			removed = append(removed, key)
		}
	}
	return removed, nil
}

// PGSessionStore persists sessions as JSON in food_sessions, so open screens
// survive a bot restart.
type PGSessionStore struct {
	pool *pgxpool.Pool
}

func NewPGSessionStore(pool *pgxpool.Pool) *PGSessionStore {
	return &PGSessionStore{pool: pool}
}

func (p *PGSessionStore) Get(ctx context.Context, key SessionKey) (FoodDetails, bool, error) {
	var stateJSON []byte
	err := p.pool.QueryRow(ctx, `
		SELECT state FROM food_sessions WHERE chat_id = $1 AND message_id = $2`,
		key.ChatID, key.MessageID,
	).Scan(&stateJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return FoodDetails{}, false, nil
	}
	if err != nil {
		return FoodDetails{}, false, err
	}

	var s FoodDetails
	if err := json.Unmarshal(stateJSON, &s); err != nil {
		return FoodDetails{}, false, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	return s, true, nil
}

func (p *PGSessionStore) Save(ctx context.Context, key SessionKey, s FoodDetails) error {
	stateJSON, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO food_sessions (chat_id, message_id, food_id, state, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (chat_id, message_id) DO UPDATE SET
			food_id = $3,
			state = $4,
			updated_at = now()`,
		key.ChatID, key.MessageID, s.FoodID, stateJSON,
	)
	return err
}

func (p *PGSessionStore) Delete(ctx context.Context, key SessionKey) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM food_sessions WHERE chat_id = $1 AND message_id = $2`, key.ChatID, key.MessageID)
	return err
}

func (p *PGSessionStore) Prune(ctx context.Context, cutoff time.Time) ([]SessionKey, error) {
	rows, err := p.pool.Query(ctx, `
		DELETE FROM food_sessions WHERE updated_at < $1
		RETURNING chat_id, message_id`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var removed []SessionKey
	for rows.Next() {
		var key SessionKey
		if err := rows.Scan(&key.ChatID, &key.MessageID); err != nil {
			return nil, err
		}
		removed = append(removed, key)
	}
	return removed, rows.Err()
}
