// Package server hosts games behind a WebSocket gateway. The engine itself
// is single-threaded; each hosted game is serialized behind a session mutex.
package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dominionfree/dominion-server-go/internal/config"
	"github.com/dominionfree/dominion-server-go/internal/game"
	"github.com/dominionfree/dominion-server-go/internal/game/watchers"
	"github.com/dominionfree/dominion-server-go/internal/repository"
)

// Manager owns the hosted games.
type Manager struct {
	mu       sync.RWMutex
	logger   *zap.Logger
	catalog  []*game.Card
	defaults config.GameConfig
	results  *repository.ResultRepository // nil disables persistence
	recorder *game.ReplayRecorder         // nil disables replay recording
	sessions map[string]*Session
}

// NewManager creates a game manager. results may be nil when persistence is
// disabled.
func NewManager(catalog []*game.Card, defaults config.GameConfig, results *repository.ResultRepository, logger *zap.Logger) *Manager {
	return &Manager{
		logger:   logger,
		catalog:  catalog,
		defaults: defaults,
		results:  results,
		sessions: make(map[string]*Session),
	}
}

// EnableReplays turns on snapshot recording for games created afterwards.
func (m *Manager) EnableReplays(recorder *game.ReplayRecorder) {
	m.mu.Lock()
	m.recorder = recorder
	m.mu.Unlock()
}

// CreateGame builds a new game for the given player identifiers and drives it
// to its first decision.
func (m *Manager) CreateGame(players []string, seed int64) (*Session, error) {
	if len(players) < m.defaults.MinPlayers {
		return nil, fmt.Errorf("need at least %d players, got %d", m.defaults.MinPlayers, len(players))
	}
	if len(players) > m.defaults.MaxPlayers {
		return nil, fmt.Errorf("at most %d players allowed, got %d", m.defaults.MaxPlayers, len(players))
	}
	if seed == 0 {
		seed = m.defaults.Seed
	}

	g, err := game.NewGame(game.Options{
		GameID:  uuid.NewString(),
		Players: players,
		Kingdom: m.defaults.Kingdom,
		Catalog: m.catalog,
		Seed:    seed,
		Logger:  m.logger,
	})
	if err != nil {
		return nil, err
	}

	g.Watchers().AddWatcher(watchers.NewCardsDrawnWatcher())
	g.Watchers().AddWatcher(watchers.NewCardsGainedWatcher())
	g.Watchers().AddWatcher(watchers.NewCardsTrashedWatcher())
	g.Watchers().AddWatcher(watchers.NewEmptyPilesWatcher())
	g.Watchers().AddWatcher(watchers.NewTurnsTakenWatcher())

	m.mu.RLock()
	recorder := m.recorder
	m.mu.RUnlock()
	if recorder != nil {
		recorder.StartRecording(g.ID())
	}

	session := &Session{game: g, manager: m, recorder: recorder}
	session.record()
	if err := session.advance(context.Background()); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[g.ID()] = session
	m.mu.Unlock()

	m.logger.Info("game created",
		zap.String("game_id", g.ID()),
		zap.Strings("players", players),
	)
	return session, nil
}

// GetSession returns the session hosting the given game, or nil.
func (m *Manager) GetSession(gameID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[gameID]
}

// RemoveSession drops a finished or abandoned game.
func (m *Manager) RemoveSession(gameID string) {
	m.mu.Lock()
	delete(m.sessions, gameID)
	m.mu.Unlock()
}

// Session serializes access to one hosted game.
type Session struct {
	mu       sync.Mutex
	game     *game.Game
	manager  *Manager
	recorder *game.ReplayRecorder
	lastTurn int
}

// GameID returns the hosted game's identifier.
func (s *Session) GameID() string { return s.game.ID() }

// View returns the game as seen by the given player.
func (s *Session) View(viewerID string) game.GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.GetView(viewerID)
}

// Players returns the seating order.
func (s *Session) Players() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.PlayerOrder()
}

// Result returns the terminal result once the hosted game has finished, or
// nil.
func (s *Session) Result() *game.GameResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Result()
}

// Finished reports whether the hosted game has ended.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State() == game.GameStateFinished
}

// Resolve applies a player's answer to the pending decision and advances the
// game to its next decision or its end. Answers from the wrong player and
// invalid selections are rejected without advancing; the decision stays
// pending for a retry.
func (s *Session) Resolve(ctx context.Context, playerID string, chosen []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.game.PendingDecision()
	if pending == nil {
		return game.ErrNoDecisionPending
	}
	if pending.PlayerID != playerID {
		return fmt.Errorf("%w: decision belongs to %s", game.ErrInvalidAnswer, pending.PlayerID)
	}
	if err := s.game.ResolveDecision(chosen); err != nil {
		return err
	}
	return s.advanceLocked(ctx)
}

// advance drives the game forward under the session lock.
func (s *Session) advance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked(ctx)
}

func (s *Session) advanceLocked(ctx context.Context) error {
	// A resumed continuation may already have surfaced the next decision.
	if s.game.PendingDecision() == nil && s.game.State() == game.GameStateInProgress {
		if _, err := s.game.AdvanceGameState(); err != nil {
			return err
		}
	}
	s.recordLocked()
	if s.game.State() == game.GameStateFinished {
		s.persistResult(ctx)
		s.saveReplay()
	}
	return nil
}

// record takes a replay snapshot at turn boundaries and at game end.
func (s *Session) record() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordLocked()
}

func (s *Session) recordLocked() {
	if s.recorder == nil {
		return
	}
	turn := s.game.TurnNumber()
	if turn == s.lastTurn && s.game.State() != game.GameStateFinished {
		return
	}
	s.lastTurn = turn
	s.recorder.RecordState(s.game.ID(), s.game.Snapshot())
}

func (s *Session) saveReplay() {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.SaveReplay(s.game.ID()); err != nil && s.manager != nil {
		s.manager.logger.Error("failed to save replay",
			zap.String("game_id", s.game.ID()),
			zap.Error(err),
		)
	}
}

func (s *Session) persistResult(ctx context.Context) {
	if s.manager == nil || s.manager.results == nil {
		return
	}
	if err := s.manager.results.SaveResult(ctx, s.game.ID(), s.game.Result()); err != nil {
		s.manager.logger.Error("failed to persist game result",
			zap.String("game_id", s.game.ID()),
			zap.Error(err),
		)
	}
}
