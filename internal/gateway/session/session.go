// Package session keeps one set of agent views per browser session.
package session

import (
	"strings"
	"sync"
	"time"

	"agenthub/internal/agent"
	"agenthub/internal/agentview"
	"agenthub/internal/connect"
	"agenthub/internal/types"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// Session owns the three agent views and the mock account connections that
// gate them.
type Session struct {
	ID        string
	CreatedAt time.Time

	Wellness *agentview.View[types.WellnessEvent]
	Issues   *agentview.View[types.IssueSuggestion]
	Alerts   *agentview.View[types.DisasterAlert]

	connectors map[types.Domain]connect.Connector
}

func newSession(id string, agents *agent.Agents) *Session {
	calendar := connect.NewMock(connect.ProviderGoogleCalendar)
	github := connect.NewMock(connect.ProviderGitHub)
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		Wellness:  agentview.New[types.WellnessEvent](agents.Wellness, agentview.WellnessPresenter, calendar),
		Issues:    agentview.New[types.IssueSuggestion](agents.Issues, agentview.IssuesPresenter, github),
		Alerts:    agentview.New[types.DisasterAlert](agents.Alerts, agentview.AlertsPresenter, nil),
		connectors: map[types.Domain]connect.Connector{
			types.DomainWellness: calendar,
			types.DomainIssues:   github,
		},
	}
}

func (s *Session) View(d types.Domain) (agentview.Controller, bool) {
	switch d {
	case types.DomainWellness:
		return s.Wellness, true
	case types.DomainIssues:
		return s.Issues, true
	case types.DomainAlerts:
		return s.Alerts, true
	}
	return nil, false
}

// Connector is absent for agents that need no account.
func (s *Session) Connector(d types.Domain) (connect.Connector, bool) {
	c, ok := s.connectors[d]
	return c, ok
}

// Store is an expiring LRU of sessions.
type Store struct {
	agents *agent.Agents
	logger *zap.Logger
	newID  func() string

	mu    sync.Mutex
	cache *expirable.LRU[string, *Session]
}

func NewStore(agents *agent.Agents, ttl time.Duration, size int, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if size <= 0 {
		size = 1
	}
	logger = logger.Named("session")
	onEvict := func(id string, _ *Session) {
		logger.Debug("session evicted", zap.String("session_id", id))
	}
	return &Store{
		agents: agents,
		logger: logger,
		newID:  uuid.NewString,
		cache:  expirable.NewLRU[string, *Session](size, onEvict, ttl),
	}
}

// GetOrCreate returns the session for id, creating it when id is blank,
// unknown or expired. created reports whether a new session was made.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.cache.Get(id); ok {
			s.cache.Add(id, sess)
			return sess, false
		}
	} else {
		id = s.newID()
	}
	sess = newSession(id, s.agents)
	s.cache.Add(id, sess)
	s.logger.Debug("session created", zap.String("session_id", id))
	return sess, true
}

func (s *Store) Get(id string) (*Session, bool) {
	return s.cache.Get(strings.TrimSpace(id))
}

func (s *Store) Len() int {
	return s.cache.Len()
}
