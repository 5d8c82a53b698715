package points_test

import (
	"errors"
	"testing"

	"rewardpoints/core/events"
	"rewardpoints/native/points"
)

func TestAddMerchant(t *testing.T) {
	engine, emitter := newTestEngine(t)
	merchant := addr(0x20)

	if _, err := engine.AddMerchant(addr(0x99), merchant); !errors.Is(err, points.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	var zero [20]byte
	if _, err := engine.AddMerchant(testOwner, zero); !errors.Is(err, points.ErrInvalidIdentity) {
		t.Fatalf("expected invalid identity error, got %v", err)
	}

	id, err := engine.AddMerchant(testOwner, merchant)
	if err != nil {
		t.Fatalf("add merchant: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first merchant id 1, got %d", id)
	}
	stored, err := engine.GetMerchantByID(id)
	if err != nil {
		t.Fatalf("get merchant: %v", err)
	}
	if stored.Identity != merchant || !stored.Approved {
		t.Fatalf("unexpected merchant record %+v", stored)
	}
	if evt := emitter.last(t); evt.EventType() != events.TypeMerchantAdded {
		t.Fatalf("unexpected event type %q", evt.EventType())
	}

	second, err := engine.AddMerchant(testOwner, addr(0x21))
	if err != nil {
		t.Fatalf("add second merchant: %v", err)
	}
	if second != 2 {
		t.Fatalf("expected monotonic id 2, got %d", second)
	}
}

func TestAddMerchantByAdmin(t *testing.T) {
	engine, _ := newTestEngine(t)
	admin := addr(0x10)
	if err := engine.AddAdmin(testOwner, admin); err != nil {
		t.Fatalf("add admin: %v", err)
	}
	if _, err := engine.AddMerchant(admin, addr(0x20)); err != nil {
		t.Fatalf("admin add merchant: %v", err)
	}
}

func TestAddMerchantDuplicateIdentity(t *testing.T) {
	engine, _ := newTestEngine(t)
	merchant := addr(0x20)
	if _, err := engine.AddMerchant(testOwner, merchant); err != nil {
		t.Fatalf("add merchant: %v", err)
	}
	if _, err := engine.AddMerchant(testOwner, merchant); !errors.Is(err, points.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}
}

func TestBanAndApproveMerchant(t *testing.T) {
	engine, emitter := newTestEngine(t)
	merchant := addr(0x20)
	id, err := engine.AddMerchant(testOwner, merchant)
	if err != nil {
		t.Fatalf("add merchant: %v", err)
	}

	if err := engine.BanMerchant(addr(0x99), id); !errors.Is(err, points.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if err := engine.BanMerchant(testOwner, 42); !errors.Is(err, points.ErrInvalidID) {
		t.Fatalf("expected unknown id error, got %v", err)
	}
	if err := engine.ApproveMerchant(testOwner, id); !errors.Is(err, points.ErrInvalidState) {
		t.Fatalf("expected invalid state approving an approved merchant, got %v", err)
	}

	if err := engine.BanMerchant(testOwner, id); err != nil {
		t.Fatalf("ban merchant: %v", err)
	}
	stored, err := engine.GetMerchantByID(id)
	if err != nil {
		t.Fatalf("get merchant: %v", err)
	}
	if stored.Approved {
		t.Fatalf("expected merchant to be banned")
	}
	if err := engine.BanMerchant(testOwner, id); !errors.Is(err, points.ErrInvalidState) {
		t.Fatalf("expected invalid state banning a banned merchant, got %v", err)
	}
	if evt := emitter.last(t); evt.EventType() != events.TypeMerchantBanned {
		t.Fatalf("unexpected event type %q", evt.EventType())
	}

	if err := engine.ApproveMerchant(testOwner, id); err != nil {
		t.Fatalf("approve merchant: %v", err)
	}
	stored, err = engine.GetMerchantByID(id)
	if err != nil {
		t.Fatalf("get merchant: %v", err)
	}
	if !stored.Approved {
		t.Fatalf("expected merchant to be approved again")
	}
	if evt := emitter.last(t); evt.EventType() != events.TypeMerchantApproved {
		t.Fatalf("unexpected event type %q", evt.EventType())
	}
}

func TestGetMerchantByAddress(t *testing.T) {
	engine, _ := newTestEngine(t)
	merchant := addr(0x20)
	id, err := engine.AddMerchant(testOwner, merchant)
	if err != nil {
		t.Fatalf("add merchant: %v", err)
	}
	stored, err := engine.GetMerchantByAddress(merchant)
	if err != nil {
		t.Fatalf("get merchant by address: %v", err)
	}
	if stored.ID != id {
		t.Fatalf("identity index disagrees with record: got id %d, want %d", stored.ID, id)
	}
	var zero [20]byte
	if _, err := engine.GetMerchantByAddress(zero); !errors.Is(err, points.ErrInvalidIdentity) {
		t.Fatalf("expected invalid identity error, got %v", err)
	}
	if _, err := engine.GetMerchantByAddress(addr(0x77)); !errors.Is(err, points.ErrInvalidIdentity) {
		t.Fatalf("expected invalid identity error for unknown address, got %v", err)
	}
	if _, err := engine.GetMerchantByID(0); !errors.Is(err, points.ErrInvalidID) {
		t.Fatalf("expected unknown id error for id 0, got %v", err)
	}
}
