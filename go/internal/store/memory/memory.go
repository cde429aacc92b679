// Package memory is an in-process store for single-process deployments and
// tests. Updates are copy-on-write so a failed transaction leaves no trace;
// when a snapshot path is configured each commit is written to disk first.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/store"
)

type teamRecord struct {
	Team models.Team `json:"team"`
	Seq  int64       `json:"seq"`
}

type tradeRecord struct {
	Trade models.Trade `json:"trade"`
	Seq   int64        `json:"seq"`
}

type state struct {
	teams    map[models.OwnerID]*teamRecord
	rostered map[models.PlayerID]models.OwnerID
	trades   map[uuid.UUID]*tradeRecord
	keys     map[string]uuid.UUID
	nextSeq  int64
}

func newState() *state {
	return &state{
		teams:    make(map[models.OwnerID]*teamRecord),
		rostered: make(map[models.PlayerID]models.OwnerID),
		trades:   make(map[uuid.UUID]*tradeRecord),
		keys:     make(map[string]uuid.UUID),
	}
}

func (s *state) clone() *state {
	c := newState()
	c.nextSeq = s.nextSeq
	for owner, rec := range s.teams {
		c.teams[owner] = &teamRecord{Team: rec.Team.Clone(), Seq: rec.Seq}
	}
	for player, owner := range s.rostered {
		c.rostered[player] = owner
	}
	for id, rec := range s.trades {
		c.trades[id] = &tradeRecord{Trade: cloneTrade(rec.Trade), Seq: rec.Seq}
	}
	for key, id := range s.keys {
		c.keys[key] = id
	}
	return c
}

// snapshot is the on-disk representation of the state
type snapshot struct {
	Teams   []teamRecord  `json:"teams"`
	Trades  []tradeRecord `json:"trades"`
	NextSeq int64         `json:"next_seq"`
}

// Store is an in-memory store.Store
type Store struct {
	mu    sync.RWMutex
	state *state
	path  string
}

var _ store.Store = (*Store)(nil)

// New returns an empty store that keeps nothing on disk
func New() *Store {
	return &Store{state: newState()}
}

// Open returns a store persisted to a JSON snapshot at path, loading the
// snapshot if it already exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	s := &Store{state: newState(), path: filepath.Clean(path)}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	st, err := fromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	s.state = st
	return s, nil
}

func fromSnapshot(snap snapshot) (*state, error) {
	st := newState()
	st.nextSeq = snap.NextSeq
	for _, rec := range snap.Teams {
		rec := rec
		owner := rec.Team.OwnerID
		if _, exists := st.teams[owner]; exists {
			return nil, fmt.Errorf("snapshot has duplicate team for owner %s", owner)
		}
		for _, p := range rec.Team.Players {
			if other, taken := st.rostered[p]; taken {
				return nil, fmt.Errorf("snapshot has player %s on teams %s and %s", p, other, owner)
			}
			st.rostered[p] = owner
		}
		st.teams[owner] = &rec
	}
	for _, rec := range snap.Trades {
		rec := rec
		st.trades[rec.Trade.ID] = &rec
		if key := rec.Trade.Key(); key != "" {
			st.keys[key] = rec.Trade.ID
		}
	}
	return st, nil
}

func (s *state) toSnapshot() snapshot {
	snap := snapshot{NextSeq: s.nextSeq}
	for _, rec := range s.teams {
		snap.Teams = append(snap.Teams, *rec)
	}
	for _, rec := range s.trades {
		snap.Trades = append(snap.Trades, *rec)
	}
	sort.Slice(snap.Teams, func(i, j int) bool { return snap.Teams[i].Seq < snap.Teams[j].Seq })
	sort.Slice(snap.Trades, func(i, j int) bool { return snap.Trades[i].Seq < snap.Trades[j].Seq })
	return snap
}

// View runs fn against the current state under a read lock
func (s *Store) View(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&tx{state: s.state})
}

// Update runs fn against a private copy of the state and swaps it in on success
func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if err := fn(&tx{state: next, writable: true}); err != nil {
		return err
	}
	if s.path != "" {
		if err := s.persist(next); err != nil {
			return err
		}
	}
	s.state = next
	return nil
}

// Close is a no-op; every commit is already persisted
func (s *Store) Close() error {
	return nil
}

func (s *Store) persist(st *state) error {
	data, err := json.MarshalIndent(st.toSnapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

type tx struct {
	state    *state
	writable bool
}

func (t *tx) checkWritable() error {
	if !t.writable {
		return store.ErrReadOnly
	}
	return nil
}

func (t *tx) GetTeam(ctx context.Context, owner models.OwnerID) (*models.Team, error) {
	rec, ok := t.state.teams[owner]
	if !ok {
		return nil, store.ErrNotFound
	}
	team := rec.Team.Clone()
	return &team, nil
}

func (t *tx) ListTeams(ctx context.Context) ([]models.Team, error) {
	recs := make([]*teamRecord, 0, len(t.state.teams))
	for _, rec := range t.state.teams {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Seq < recs[j].Seq })

	teams := make([]models.Team, len(recs))
	for i, rec := range recs {
		teams[i] = rec.Team.Clone()
	}
	return teams, nil
}

func (t *tx) InsertTeam(ctx context.Context, team models.Team) error {
	if err := t.checkWritable(); err != nil {
		return err
	}
	if _, exists := t.state.teams[team.OwnerID]; exists {
		return fmt.Errorf("team for owner %s: %w", team.OwnerID, store.ErrConflict)
	}
	for _, p := range team.Players {
		if _, taken := t.state.rostered[p]; taken {
			return fmt.Errorf("player %s: %w", p, store.ErrConflict)
		}
	}
	t.state.nextSeq++
	t.state.teams[team.OwnerID] = &teamRecord{Team: team.Clone(), Seq: t.state.nextSeq}
	for _, p := range team.Players {
		t.state.rostered[p] = team.OwnerID
	}
	return nil
}

func (t *tx) DeleteTeam(ctx context.Context, owner models.OwnerID) error {
	if err := t.checkWritable(); err != nil {
		return err
	}
	rec, ok := t.state.teams[owner]
	if !ok {
		return store.ErrNotFound
	}
	for _, p := range rec.Team.Players {
		delete(t.state.rostered, p)
	}
	delete(t.state.teams, owner)
	return nil
}

func (t *tx) AddRosterPlayer(ctx context.Context, owner models.OwnerID, player models.PlayerID, addedAt time.Time) error {
	if err := t.checkWritable(); err != nil {
		return err
	}
	rec, ok := t.state.teams[owner]
	if !ok {
		return store.ErrNotFound
	}
	if holder, taken := t.state.rostered[player]; taken {
		return fmt.Errorf("player %s held by %s: %w", player, holder, store.ErrConflict)
	}
	rec.Team.Players = append(rec.Team.Players, player)
	t.state.rostered[player] = owner
	return nil
}

func (t *tx) RemoveRosterPlayer(ctx context.Context, owner models.OwnerID, player models.PlayerID) error {
	if err := t.checkWritable(); err != nil {
		return err
	}
	rec, ok := t.state.teams[owner]
	if !ok {
		return store.ErrNotFound
	}
	for i, p := range rec.Team.Players {
		if p == player {
			rec.Team.Players = append(rec.Team.Players[:i], rec.Team.Players[i+1:]...)
			delete(t.state.rostered, player)
			return nil
		}
	}
	return store.ErrNotFound
}

func (t *tx) RosteredPlayers(ctx context.Context) (map[models.PlayerID]models.OwnerID, error) {
	out := make(map[models.PlayerID]models.OwnerID, len(t.state.rostered))
	for p, o := range t.state.rostered {
		out[p] = o
	}
	return out, nil
}

func (t *tx) InsertTrade(ctx context.Context, trade models.Trade) error {
	if err := t.checkWritable(); err != nil {
		return err
	}
	if _, exists := t.state.trades[trade.ID]; exists {
		return fmt.Errorf("trade %s: %w", trade.ID, store.ErrConflict)
	}
	key := trade.Key()
	if key != "" {
		if _, used := t.state.keys[key]; used {
			return fmt.Errorf("correlation key %s: %w", key, store.ErrConflict)
		}
	}
	t.state.nextSeq++
	t.state.trades[trade.ID] = &tradeRecord{Trade: cloneTrade(trade), Seq: t.state.nextSeq}
	if key != "" {
		t.state.keys[key] = trade.ID
	}
	return nil
}

func (t *tx) GetTrade(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	rec, ok := t.state.trades[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	trade := cloneTrade(rec.Trade)
	return &trade, nil
}

func (t *tx) GetTradeByCorrelationKey(ctx context.Context, key string) (*models.Trade, error) {
	id, ok := t.state.keys[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return t.GetTrade(ctx, id)
}

func (t *tx) ListTrades(ctx context.Context) ([]models.Trade, error) {
	recs := make([]*tradeRecord, 0, len(t.state.trades))
	for _, rec := range t.state.trades {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Seq < recs[j].Seq })

	trades := make([]models.Trade, len(recs))
	for i, rec := range recs {
		trades[i] = cloneTrade(rec.Trade)
	}
	return trades, nil
}

func (t *tx) SetTradeCorrelationKey(ctx context.Context, id uuid.UUID, key string) error {
	if err := t.checkWritable(); err != nil {
		return err
	}
	rec, ok := t.state.trades[id]
	if !ok {
		return store.ErrNotFound
	}
	if holder, used := t.state.keys[key]; used && holder != id {
		return fmt.Errorf("correlation key %s: %w", key, store.ErrConflict)
	}
	if old := rec.Trade.Key(); old != "" {
		delete(t.state.keys, old)
	}
	k := key
	rec.Trade.CorrelationKey = &k
	t.state.keys[key] = id
	return nil
}

func (t *tx) DeleteTrade(ctx context.Context, id uuid.UUID) error {
	if err := t.checkWritable(); err != nil {
		return err
	}
	rec, ok := t.state.trades[id]
	if !ok {
		return store.ErrNotFound
	}
	if key := rec.Trade.Key(); key != "" {
		delete(t.state.keys, key)
	}
	delete(t.state.trades, id)
	return nil
}

func cloneTrade(t models.Trade) models.Trade {
	if t.CorrelationKey != nil {
		k := *t.CorrelationKey
		t.CorrelationKey = &k
	}
	return t
}
