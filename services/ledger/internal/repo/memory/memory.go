// Package memory keeps contract state in process maps. It backs the dispatcher
// in tests and in the seed tool's dry runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"content-ledger/services/ledger/internal/entity"
	"content-ledger/services/ledger/internal/repo/persistent"

	"github.com/google/uuid"
)

type TokenStore struct {
	mu          sync.RWMutex
	tokens      map[uint64]entity.Token
	lastTokenID uint64
}

var _ persistent.TokenRepository = (*TokenStore)(nil)

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[uint64]entity.Token)}
}

func (s *TokenStore) Mint(_ context.Context, uri, creator string, height uint64) (*entity.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTokenID++
	now := time.Now()
	token := entity.Token{
		ID:        s.lastTokenID,
		URI:       uri,
		Creator:   creator,
		Owner:     creator,
		MintedAt:  height,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tokens[token.ID] = token
	return &token, nil
}

func (s *TokenStore) GetByID(_ context.Context, id uint64) (*entity.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[id]
	if !ok {
		return nil, fmt.Errorf("token u%d: %w", id, entity.ErrNotFound)
	}
	return &token, nil
}

func (s *TokenStore) LastTokenID(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTokenID, nil
}

func (s *TokenStore) UpdateOwner(_ context.Context, id uint64, from, to string) (*entity.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.owned(id, from)
	if err != nil {
		return nil, err
	}
	token.Owner = to
	token.UpdatedAt = time.Now()
	s.tokens[id] = token
	return &token, nil
}

func (s *TokenStore) Delete(_ context.Context, id uint64, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.owned(id, owner); err != nil {
		return err
	}
	delete(s.tokens, id)
	return nil
}

// owned must be called with mu held.
func (s *TokenStore) owned(id uint64, owner string) (entity.Token, error) {
	token, ok := s.tokens[id]
	if !ok {
		return entity.Token{}, fmt.Errorf("token u%d: %w", id, entity.ErrNotFound)
	}
	if token.Owner != owner {
		return entity.Token{}, fmt.Errorf("token u%d not owned by %s: %w", id, owner, entity.ErrUnauthorized)
	}
	return token, nil
}

func (s *TokenStore) ListByOwner(_ context.Context, owner string, limit, offset int) ([]*entity.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := make([]*entity.Token, 0)
	for _, token := range s.tokens {
		if token.Owner == owner {
			t := token
			owned = append(owned, &t)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	return page(owned, limit, offset), nil
}

type subscriptionKey struct {
	subscriber string
	creator    string
}

type SubscriptionStore struct {
	mu            sync.RWMutex
	subscriptions map[subscriptionKey]entity.Subscription
}

var _ persistent.SubscriptionRepository = (*SubscriptionStore)(nil)

func NewSubscriptionStore() *SubscriptionStore {
	return &SubscriptionStore{subscriptions: make(map[subscriptionKey]entity.Subscription)}
}

func (s *SubscriptionStore) Get(_ context.Context, subscriber, creator string) (*entity.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscriptions[subscriptionKey{subscriber, creator}]
	if !ok {
		return nil, fmt.Errorf("subscription %s -> %s: %w", subscriber, creator, entity.ErrNotFound)
	}
	return &sub, nil
}

func (s *SubscriptionStore) Create(_ context.Context, subscription *entity.Subscription, height uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := subscriptionKey{subscription.Subscriber, subscription.Creator}
	now := time.Now()
	created := *subscription
	created.CreatedAt = now
	if existing, ok := s.subscriptions[key]; ok {
		if existing.ActiveAt(height) {
			return fmt.Errorf("subscription %s -> %s active until %d: %w",
				key.subscriber, key.creator, existing.EndBlock, entity.ErrConflict)
		}
		created.CreatedAt = existing.CreatedAt
	}
	created.UpdatedAt = now
	s.subscriptions[key] = created
	*subscription = created
	return nil
}

func (s *SubscriptionStore) Update(_ context.Context, subscriber, creator string, fn func(*entity.Subscription) error) (*entity.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := subscriptionKey{subscriber, creator}
	current, ok := s.subscriptions[key]
	if !ok {
		return nil, fmt.Errorf("subscription %s -> %s: %w", subscriber, creator, entity.ErrNotFound)
	}
	if err := fn(&current); err != nil {
		return nil, err
	}
	current.Subscriber, current.Creator = subscriber, creator
	current.UpdatedAt = time.Now()
	s.subscriptions[key] = current

	updated := current
	return &updated, nil
}

func (s *SubscriptionStore) Delete(_ context.Context, subscriber, creator string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := subscriptionKey{subscriber, creator}
	if _, ok := s.subscriptions[key]; !ok {
		return fmt.Errorf("subscription %s -> %s: %w", subscriber, creator, entity.ErrNotFound)
	}
	delete(s.subscriptions, key)
	return nil
}

func (s *SubscriptionStore) ListByCreator(_ context.Context, creator string) ([]*entity.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Subscription, 0)
	for key, sub := range s.subscriptions {
		if key.creator == creator {
			v := sub
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subscriber < out[j].Subscriber })
	return out, nil
}

type CallLog struct {
	mu      sync.RWMutex
	records []entity.CallRecord
}

var _ persistent.CallRepository = (*CallLog)(nil)

func NewCallLog() *CallLog {
	return &CallLog{}
}

func (l *CallLog) Create(_ context.Context, record *entity.CallRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	l.records = append(l.records, *record)
	return nil
}

// List returns newest first, like the postgres repository.
func (l *CallLog) List(_ context.Context, filter persistent.CallFilter, limit, offset int) ([]*entity.CallRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*entity.CallRecord, 0, len(l.records))
	for i := len(l.records) - 1; i >= 0; i-- {
		r := l.records[i]
		if filter.Contract != "" && r.Contract != filter.Contract {
			continue
		}
		if filter.Sender != "" && r.Sender != filter.Sender {
			continue
		}
		out = append(out, &r)
	}
	return page(out, limit, offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
