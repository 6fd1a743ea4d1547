// Package tx tracks transaction lifecycle bookkeeping: pending records, a
// capped recent history, and the companion toast per transaction.
package tx

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/galaport/wallet/internal/toast"
)

// RecentCap is the maximum length of the recent list; older entries are
// dropped from the tail.
const RecentCap = 10

// Type names the kind of chain operation a transaction performs.
type Type string

const (
	TypeTransfer         Type = "transfer"
	TypeMint             Type = "mint"
	TypeBurn             Type = "burn"
	TypeCreateCollection Type = "create-collection"
	TypeGrantAllowance   Type = "grant-allowance"
)

// Status is a transaction's lifecycle state. Confirmed and Failed are
// terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirming Status = "confirming"
	StatusConfirmed  Status = "confirmed"
	StatusFailed     Status = "failed"
)

// Transaction is one tracked operation. A transaction lives in exactly one
// of the pending or recent lists at any time.
type Transaction struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Status      Status    `json:"status"`
	Description string    `json:"description"`
	Hash        string    `json:"hash,omitempty"`
	Error       string    `json:"error,omitempty"`
	ToastID     string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store owns the pending and recent transaction lists and drives the
// companion toasts.
type Store struct {
	mu      sync.Mutex
	pending []Transaction
	recent  []Transaction
	toasts  *toast.Store
}

// NewStore creates a transaction store wired to a toast store.
func NewStore(toasts *toast.Store) *Store {
	return &Store{toasts: toasts}
}

// AddPending creates a pending transaction with a companion pending toast and
// returns both IDs.
func (s *Store) AddPending(txType Type, description string) (txID, toastID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	toastID = s.toasts.Add(toast.TypePending, "Transaction pending", description)
	t := Transaction{
		ID:          uuid.NewString(),
		Type:        txType,
		Status:      StatusPending,
		Description: description,
		ToastID:     toastID,
		CreatedAt:   time.Now(),
	}
	s.pending = append(s.pending, t)
	return t.ID, toastID
}

// MarkConfirming moves a pending transaction into the confirming state while
// the wallet signs. The record stays in the pending list.
func (s *Store) MarkConfirming(txID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.pending, func(t Transaction) bool { return t.ID == txID })
	if i < 0 {
		return false
	}
	s.pending[i].Status = StatusConfirming
	return true
}

// MarkComplete finalizes a pending transaction as confirmed, relocates it to
// the front of the recent list, and morphs its toast to success.
func (s *Store) MarkComplete(txID, hash string) bool {
	return s.finalize(txID, StatusConfirmed, hash, "")
}

// MarkFailed finalizes a pending transaction as failed, relocates it to the
// front of the recent list, and morphs its toast to error.
func (s *Store) MarkFailed(txID, errMsg string) bool {
	return s.finalize(txID, StatusFailed, "", errMsg)
}

func (s *Store) finalize(txID string, status Status, hash, errMsg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.pending, func(t Transaction) bool { return t.ID == txID })
	if i < 0 {
		return false
	}

	t := s.pending[i]
	s.pending = slices.Delete(s.pending, i, i+1)

	t.Status = status
	t.Hash = hash
	t.Error = errMsg

	s.recent = append([]Transaction{t}, s.recent...)
	if len(s.recent) > RecentCap {
		s.recent = s.recent[:RecentCap]
	}

	s.updateToast(t)
	return true
}

func (s *Store) updateToast(t Transaction) {
	dismissible := true
	if t.Status == StatusConfirmed {
		typ := toast.TypeSuccess
		title := "Transaction confirmed"
		s.toasts.Update(t.ToastID, toast.Update{
			Type: &typ, Title: &title, Message: &t.Description, Dismissible: &dismissible,
		})
		return
	}
	typ := toast.TypeError
	title := "Transaction failed"
	msg := t.Description
	if t.Error != "" {
		msg = t.Error
	}
	s.toasts.Update(t.ToastID, toast.Update{
		Type: &typ, Title: &title, Message: &msg, Dismissible: &dismissible,
	})
}

// Pending returns the in-flight transactions in creation order.
func (s *Store) Pending() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.pending)
}

// Recent returns terminal transactions, newest first, capped at RecentCap.
func (s *Store) Recent() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.recent)
}

// ClearAll empties both lists.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.recent = nil
}
