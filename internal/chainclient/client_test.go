package chainclient

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/galaport/wallet/internal/chainerr"
	"github.com/galaport/wallet/internal/domain"
	"github.com/galaport/wallet/internal/signer"
)

type fakeSigner struct {
	method  string
	payload any
	result  signer.Result
	err     error
}

func (f *fakeSigner) SignAndSubmit(_ context.Context, method string, payload any) (signer.Result, error) {
	f.method = method
	f.payload = payload
	return f.result, f.err
}

var galaKey = domain.TokenKey{Collection: "GALA", Category: "Unit", Type: "none", AdditionalKey: "none"}

func TestTransferBuildsPayload(t *testing.T) {
	fake := &fakeSigner{result: signer.Result{Hash: "0xabc"}}
	client := New(fake)

	result, err := client.Transfer(context.Background(),
		"client|from", "client|to", galaKey, decimal.Zero, decimal.RequireFromString("12.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Hash != "0xabc" {
		t.Errorf("hash = %q", result.Hash)
	}
	if fake.method != "TransferToken" {
		t.Errorf("method = %q", fake.method)
	}

	raw, _ := json.Marshal(fake.payload)
	var p map[string]any
	json.Unmarshal(raw, &p)
	if p["quantity"] != "12.5" {
		t.Errorf("quantity = %v", p["quantity"])
	}
	if p["uniqueKey"] == "" || p["uniqueKey"] == nil {
		t.Error("payload missing uniqueKey")
	}
}

func TestEachCallGetsFreshUniqueKey(t *testing.T) {
	fake := &fakeSigner{}
	client := New(fake)

	keys := make(map[string]bool)
	for range 3 {
		_, err := client.Mint(context.Background(), "client|o", galaKey, decimal.NewFromInt(1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		raw, _ := json.Marshal(fake.payload)
		var p map[string]any
		json.Unmarshal(raw, &p)
		keys[p["uniqueKey"].(string)] = true
	}
	if len(keys) != 3 {
		t.Errorf("expected 3 distinct unique keys, got %d", len(keys))
	}
}

func TestWriteErrorsAreClassified(t *testing.T) {
	fake := &fakeSigner{err: errors.New("MetaMask: User rejected the request")}
	client := New(fake)

	_, err := client.Burn(context.Background(), "client|o", galaKey, decimal.Zero, decimal.NewFromInt(1))
	if err == nil {
		t.Fatal("expected error")
	}
	ce, ok := chainerr.AsChainError(err)
	if !ok {
		t.Fatalf("expected ChainError, got %T", err)
	}
	if ce.Code != chainerr.CodeUserRejected {
		t.Errorf("code = %s, want %s", ce.Code, chainerr.CodeUserRejected)
	}
}

func TestTypedErrorsPassThrough(t *testing.T) {
	orig := chainerr.New(chainerr.CodeMaxSupplyExceeded, "supply cap hit")
	fake := &fakeSigner{err: orig}
	client := New(fake)

	_, err := client.CreateCollection(context.Background(), CollectionSpec{Key: galaKey, Name: "Gala"})
	ce, ok := chainerr.AsChainError(err)
	if !ok || ce != orig {
		t.Fatalf("expected original typed error, got %v", err)
	}
}

func TestStatusLifecycle(t *testing.T) {
	client := New(&fakeSigner{result: signer.Result{Hash: "0xabc"}})
	if client.Status() != signer.StatusIdle {
		t.Errorf("initial status = %v", client.Status())
	}

	client.Mint(context.Background(), "client|o", galaKey, decimal.NewFromInt(1))
	if client.Status() != signer.StatusConfirmed {
		t.Errorf("status after success = %v", client.Status())
	}

	rejected := New(&fakeSigner{err: errors.New("user rejected the request")})
	rejected.Mint(context.Background(), "client|o", galaKey, decimal.NewFromInt(1))
	if rejected.Status() != signer.StatusRejected {
		t.Errorf("status after rejection = %v", rejected.Status())
	}

	failed := New(&fakeSigner{err: errors.New("boom")})
	failed.Mint(context.Background(), "client|o", galaKey, decimal.NewFromInt(1))
	if failed.Status() != signer.StatusFailed {
		t.Errorf("status after failure = %v", failed.Status())
	}
}

func TestGrantAllowancePayload(t *testing.T) {
	fake := &fakeSigner{}
	client := New(fake)

	_, err := client.GrantAllowance(context.Background(), galaKey, "client|grantee",
		domain.AllowanceMint, decimal.NewFromInt(1000), decimal.NewFromInt(10), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.method != "GrantAllowance" {
		t.Errorf("method = %q", fake.method)
	}

	raw, _ := json.Marshal(fake.payload)
	var p map[string]any
	json.Unmarshal(raw, &p)
	if p["allowanceType"] != float64(domain.AllowanceMint) {
		t.Errorf("allowanceType = %v", p["allowanceType"])
	}
	if p["grantedTo"] != "client|grantee" {
		t.Errorf("grantedTo = %v", p["grantedTo"])
	}
}
