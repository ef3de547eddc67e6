// Package memory is a process-local implementation of the repository
// interfaces. Transactions are serialized by one mutex and work on a copy of
// the state that replaces the live state only when fn succeeds.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stocksim/internal/models"
	"github.com/baharkarakas/stocksim/internal/repository"
)

type state struct {
	users    map[string]models.User
	byName   map[string]string // username -> id
	history  []models.HistoryEntry
	holdings map[string]map[string]int64 // user -> symbol -> quantity
}

func (s *state) clone() *state {
	c := &state{
		users:    make(map[string]models.User, len(s.users)),
		byName:   make(map[string]string, len(s.byName)),
		history:  append([]models.HistoryEntry(nil), s.history...),
		holdings: make(map[string]map[string]int64, len(s.holdings)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.byName {
		c.byName[k] = v
	}
	for u, m := range s.holdings {
		cm := make(map[string]int64, len(m))
		for sym, q := range m {
			cm[sym] = q
		}
		c.holdings[u] = cm
	}
	return c
}

type Store struct {
	mu    sync.Mutex
	st    *state
	audit []models.AuditLog
}

func New() *Store {
	return &Store{st: &state{
		users:    map[string]models.User{},
		byName:   map[string]string{},
		holdings: map[string]map[string]int64{},
	}}
}

// Repositories exposes the store under every repository interface.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{Users: s, History: s, Holdings: s.Holdings(), AuditLogs: s.AuditLog(), Ledger: s}
}

// ---------- users ----------

func (s *Store) Create(ctx context.Context, username, hash string, cash decimal.Decimal) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.byName[username]; ok {
		return models.User{}, repository.ErrConflict
	}
	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Cash:         cash,
		CreatedAt:    time.Now().UTC(),
	}
	s.st.users[u.ID] = u
	s.st.byName[username] = u.ID
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.st.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.st.byName[username]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return s.st.users[id], nil
}

// ---------- history & holdings ----------

func (s *Store) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.HistoryEntry{}
	for i := len(s.st.history) - 1; i >= 0; i-- {
		if s.st.history[i].UserID == userID {
			out = append(out, s.st.history[i])
		}
	}
	if offset >= len(out) {
		return []models.HistoryEntry{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Holdings is the repository.Holdings view of the store.
func (s *Store) Holdings() repository.Holdings { return holdingsView{s} }

type holdingsView struct{ s *Store }

func (v holdingsView) ListByUser(ctx context.Context, userID string) ([]models.Holding, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	out := []models.Holding{}
	for sym, q := range v.s.st.holdings[userID] {
		out = append(out, models.Holding{UserID: userID, Symbol: sym, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

// ---------- audit ----------

func (s *Store) AuditLog() repository.AuditLogs { return auditView{s} }

type auditView struct{ s *Store }

func (v auditView) Create(ctx context.Context, l models.AuditLog) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now().UTC()
	v.s.audit = append(v.s.audit, l)
	return nil
}

// AuditEntries returns a copy of every audit record written so far.
func (s *Store) AuditEntries() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AuditLog(nil), s.audit...)
}

// ---------- ledger ----------

func (s *Store) WithTx(ctx context.Context, fn func(repository.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(&tx{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

type tx struct{ st *state }

func (t *tx) LockUser(ctx context.Context, userID string) (models.User, error) {
	u, ok := t.st.users[userID]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (t *tx) SetCash(ctx context.Context, userID string, cash decimal.Decimal) error {
	u, ok := t.st.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Cash = cash
	t.st.users[userID] = u
	return nil
}

func (t *tx) AppendHistory(ctx context.Context, e models.HistoryEntry) (models.HistoryEntry, error) {
	if _, ok := t.st.users[e.UserID]; !ok {
		return models.HistoryEntry{}, repository.ErrNotFound
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	t.st.history = append(t.st.history, e)
	return e, nil
}

func (t *tx) UserHistory(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	out := []models.HistoryEntry{}
	for _, e := range t.st.history {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (t *tx) UpsertHoldings(ctx context.Context, hs []models.Holding) error {
	for _, h := range hs {
		if h.Quantity < 0 {
			return repository.ErrConflict
		}
		m, ok := t.st.holdings[h.UserID]
		if !ok {
			m = map[string]int64{}
			t.st.holdings[h.UserID] = m
		}
		m[h.Symbol] = h.Quantity
	}
	return nil
}
