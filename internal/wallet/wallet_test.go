package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/galaport/wallet/internal/chainerr"
)

type fakeConnector struct {
	account     Account
	err         error
	disconnects int
}

func (f *fakeConnector) Connect(context.Context) (Account, error) {
	return f.account, f.err
}

func (f *fakeConnector) Disconnect(context.Context) error {
	f.disconnects++
	return nil
}

type fakeSessions struct {
	flags map[string]bool
	last  string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{flags: make(map[string]bool)}
}

func (f *fakeSessions) SetConnected(_ context.Context, wallet string, connected bool) error {
	f.flags[wallet] = connected
	if connected {
		f.last = wallet
	}
	return nil
}

func (f *fakeSessions) WasConnected(_ context.Context, wallet string) (bool, error) {
	return f.flags[wallet], nil
}

func (f *fakeSessions) LastConnected(context.Context) (string, bool, error) {
	if f.last != "" && f.flags[f.last] {
		return f.last, true, nil
	}
	return "", false, nil
}

func TestConnect(t *testing.T) {
	sessions := newFakeSessions()
	svc := NewService(&fakeConnector{account: Account{Address: "client|abc", PublicKey: "pk"}}, sessions, nil)

	state, err := svc.Connect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.Connected || state.Address != "client|abc" || state.PublicKey != "pk" {
		t.Errorf("state = %+v", state)
	}
	if state.Connecting {
		t.Error("connecting flag must be reset")
	}
	if !sessions.flags["client|abc"] {
		t.Error("connected flag not persisted")
	}
}

func TestConnectRejected(t *testing.T) {
	svc := NewService(&fakeConnector{err: errors.New("User rejected the request")}, nil, nil)

	state, err := svc.Connect(context.Background())
	ce, ok := chainerr.AsChainError(err)
	if !ok || ce.Code != chainerr.CodeUserRejected {
		t.Fatalf("expected typed rejection, got %v", err)
	}
	if state.Connected {
		t.Error("state must remain disconnected")
	}
	if state.Error == "" {
		t.Error("state should carry the error message")
	}
}

func TestDisconnectClearsStateAndStores(t *testing.T) {
	sessions := newFakeSessions()
	cleared := false
	connector := &fakeConnector{account: Account{Address: "client|abc"}}
	svc := NewService(connector, sessions, func() { cleared = true })

	svc.Connect(context.Background())
	if err := svc.Disconnect(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if svc.State() != (State{}) {
		t.Errorf("state = %+v, want zero", svc.State())
	}
	if !cleared {
		t.Error("dependent stores must be cleared")
	}
	if sessions.flags["client|abc"] {
		t.Error("connected flag must be cleared")
	}
	if connector.disconnects != 1 {
		t.Errorf("disconnects = %d", connector.disconnects)
	}
}

func TestAccountChangedSwitches(t *testing.T) {
	sessions := newFakeSessions()
	cleared := 0
	svc := NewService(&fakeConnector{account: Account{Address: "client|abc"}}, sessions, func() { cleared++ })

	svc.Connect(context.Background())
	if err := svc.HandleAccountChanged(context.Background(), "client|xyz", "pk2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := svc.State()
	if state.Address != "client|xyz" || !state.Connected {
		t.Errorf("state = %+v", state)
	}
	if sessions.flags["client|abc"] {
		t.Error("previous account flag must be cleared")
	}
	if !sessions.flags["client|xyz"] {
		t.Error("new account flag must be set")
	}
	if cleared == 0 {
		t.Error("stores must be cleared on account switch")
	}
}

func TestAccountChangedEmptyForcesDisconnect(t *testing.T) {
	svc := NewService(&fakeConnector{account: Account{Address: "client|abc"}}, nil, nil)
	svc.Connect(context.Background())

	if err := svc.HandleAccountChanged(context.Background(), "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.State().Connected {
		t.Error("empty account must force disconnect")
	}
}

func TestAutoReconnect(t *testing.T) {
	sessions := newFakeSessions()
	sessions.SetConnected(context.Background(), "client|abc", true)

	svc := NewService(&fakeConnector{account: Account{Address: "client|abc"}}, sessions, nil)
	reconnected, err := svc.AutoReconnect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reconnected || !svc.State().Connected {
		t.Error("expected auto-reconnect")
	}
}

func TestAutoReconnectWithoutFlag(t *testing.T) {
	svc := NewService(&fakeConnector{}, newFakeSessions(), nil)
	reconnected, err := svc.AutoReconnect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reconnected {
		t.Error("no flag, no reconnect")
	}
}
