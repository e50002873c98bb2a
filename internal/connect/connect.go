// Package connect models the account-connection step that gates the
// wellness and issues agents. Only a mock connector exists; no credentials
// are exchanged with any external service.
package connect

import (
	"context"
	"sync"
	"time"

	"agenthub/internal/types"
)

type Provider string

const (
	ProviderGoogleCalendar Provider = "google_calendar"
	ProviderGitHub         Provider = "github"
)

func (p Provider) Label() string {
	switch p {
	case ProviderGoogleCalendar:
		return "Google Calendar"
	case ProviderGitHub:
		return "GitHub"
	}
	return string(p)
}

// ProviderFor reports which account a domain's agent needs. Alerts needs
// none.
func ProviderFor(d types.Domain) (Provider, bool) {
	switch d {
	case types.DomainWellness:
		return ProviderGoogleCalendar, true
	case types.DomainIssues:
		return ProviderGitHub, true
	}
	return "", false
}

type Connector interface {
	Provider() Provider
	Connect(ctx context.Context) error
	Disconnect()
	Connected() bool
}

// Mock flips a flag on Connect.
type Mock struct {
	provider Provider
	now      func() time.Time

	mu          sync.RWMutex
	connected   bool
	connectedAt time.Time
}

func NewMock(p Provider) *Mock {
	return &Mock{provider: p, now: time.Now}
}

func (m *Mock) Provider() Provider { return m.provider }

func (m *Mock) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		m.connected = true
		m.connectedAt = m.now()
	}
	return nil
}

func (m *Mock) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	m.connectedAt = time.Time{}
}

func (m *Mock) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// ConnectedAt is zero while disconnected.
func (m *Mock) ConnectedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connectedAt
}
