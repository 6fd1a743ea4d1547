// Package wallet owns the session's wallet connection state: connect and
// disconnect actions, external account-change events, and auto-reconnect.
package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/galaport/wallet/internal/chainerr"
	"github.com/galaport/wallet/internal/session"
)

// Account identifies a connected wallet.
type Account struct {
	Address   string
	PublicKey string
}

// Connector is the injected wallet-connection client.
type Connector interface {
	Connect(ctx context.Context) (Account, error)
	Disconnect(ctx context.Context) error
}

// State is the singleton wallet connection state for the session.
type State struct {
	Connected  bool   `json:"connected"`
	Address    string `json:"address,omitempty"`
	PublicKey  string `json:"publicKey,omitempty"`
	Connecting bool   `json:"connecting"`
	Error      string `json:"error,omitempty"`
}

// Service mutates the wallet state. Only connect/disconnect actions (and
// account-change events routed through them) may change the state.
type Service struct {
	mu        sync.Mutex
	state     State
	connector Connector
	sessions  session.Repository

	// onDisconnect clears dependent stores; in-flight requests finishing
	// after a disconnect land in already-cleared stores and are harmless.
	onDisconnect func()
}

// NewService creates a wallet service. sessions and onDisconnect may be nil.
func NewService(connector Connector, sessions session.Repository, onDisconnect func()) *Service {
	return &Service{
		connector:    connector,
		sessions:     sessions,
		onDisconnect: onDisconnect,
	}
}

// State returns a copy of the current connection state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect establishes a wallet connection and persists the reconnect flag.
func (s *Service) Connect(ctx context.Context) (State, error) {
	s.mu.Lock()
	if s.state.Connecting {
		s.mu.Unlock()
		return s.state, chainerr.New(chainerr.CodePendingRequest, "A connection request is already in progress.")
	}
	s.state.Connecting = true
	s.state.Error = ""
	s.mu.Unlock()

	account, err := s.connector.Connect(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Connecting = false

	if err != nil {
		ce := chainerr.Classify(err)
		s.state.Connected = false
		s.state.Error = ce.Message
		return s.state, ce
	}

	s.state.Connected = true
	s.state.Address = account.Address
	s.state.PublicKey = account.PublicKey

	s.persistFlag(ctx, account.Address, true)
	return s.state, nil
}

// Disconnect tears down the connection, clears state, and persists the flag.
func (s *Service) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	address := s.state.Address
	s.state = State{}
	s.mu.Unlock()

	if address != "" {
		s.persistFlag(ctx, address, false)
	}

	if s.onDisconnect != nil {
		s.onDisconnect()
	}

	if err := s.connector.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting wallet: %w", err)
	}
	return nil
}

// HandleAccountChanged reacts to an external wallet account switch: an empty
// address forces a disconnect, any other address reconnects as that account.
func (s *Service) HandleAccountChanged(ctx context.Context, address, publicKey string) error {
	if address == "" {
		slog.Info("wallet account removed, forcing disconnect")
		return s.Disconnect(ctx)
	}

	s.mu.Lock()
	previous := s.state.Address
	s.state.Connected = true
	s.state.Address = address
	s.state.PublicKey = publicKey
	s.state.Error = ""
	s.mu.Unlock()

	slog.Info("wallet account changed", "from", previous, "to", address)

	if previous != "" && previous != address {
		s.persistFlag(ctx, previous, false)
	}
	s.persistFlag(ctx, address, true)

	if s.onDisconnect != nil {
		// Stores hold the previous account's data; clear for refetch.
		s.onDisconnect()
	}
	return nil
}

// AutoReconnect connects at startup when a prior session left the connected
// flag set. Absence of a flag is not an error.
func (s *Service) AutoReconnect(ctx context.Context) (bool, error) {
	if s.sessions == nil {
		return false, nil
	}

	wallet, found, err := s.sessions.LastConnected(ctx)
	if err != nil {
		return false, fmt.Errorf("reading reconnect flag: %w", err)
	}
	if !found {
		return false, nil
	}

	slog.Info("auto-reconnecting previous session", "wallet", wallet)
	if _, err := s.Connect(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) persistFlag(ctx context.Context, address string, connected bool) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.SetConnected(ctx, address, connected); err != nil {
		slog.Warn("failed to persist session flag", "wallet", address, "error", err)
	}
}
