package points_test

import (
	"errors"
	"testing"

	"rewardpoints/core/events"
	"rewardpoints/core/state"
	"rewardpoints/native/points"
	"rewardpoints/storage"
)

type capturingEmitter struct {
	events []events.Event
}

func (c *capturingEmitter) Emit(e events.Event) {
	c.events = append(c.events, e)
}

func (c *capturingEmitter) last(t *testing.T) events.Event {
	t.Helper()
	if len(c.events) == 0 {
		t.Fatalf("expected at least one event")
	}
	return c.events[len(c.events)-1]
}

func addr(b byte) [20]byte {
	var a [20]byte
	a[19] = b
	return a
}

var testOwner = addr(0x01)

func newTestEngine(t *testing.T) (*points.Engine, *capturingEmitter) {
	t.Helper()
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	engine, err := points.NewEngine(state.NewManager(db), testOwner)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	emitter := &capturingEmitter{}
	engine.SetEmitter(emitter)
	return engine, emitter
}

func TestNewEngineRejectsZeroOwner(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	var zero [20]byte
	if _, err := points.NewEngine(state.NewManager(db), zero); !errors.Is(err, points.ErrInvalidIdentity) {
		t.Fatalf("expected invalid identity error, got %v", err)
	}
}

func TestNewEngineRejectsOwnerMismatch(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	manager := state.NewManager(db)
	if _, err := points.NewEngine(manager, testOwner); err != nil {
		t.Fatalf("first boot: %v", err)
	}
	if _, err := points.NewEngine(manager, addr(0x02)); err == nil {
		t.Fatalf("expected error for differing owner on reopen")
	}
}

func TestAddAdmin(t *testing.T) {
	engine, emitter := newTestEngine(t)
	admin := addr(0x10)

	if err := engine.AddAdmin(addr(0x99), admin); !errors.Is(err, points.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	var zero [20]byte
	if err := engine.AddAdmin(testOwner, zero); !errors.Is(err, points.ErrInvalidIdentity) {
		t.Fatalf("expected invalid identity error, got %v", err)
	}

	if err := engine.AddAdmin(testOwner, admin); err != nil {
		t.Fatalf("add admin: %v", err)
	}
	isAdmin, err := engine.IsAdmin(admin)
	if err != nil {
		t.Fatalf("is admin: %v", err)
	}
	if !isAdmin {
		t.Fatalf("expected identity to be admin")
	}
	other, err := engine.IsAdmin(addr(0x11))
	if err != nil {
		t.Fatalf("is admin: %v", err)
	}
	if other {
		t.Fatalf("expected identity not to be admin")
	}
	if emitter.last(t).EventType() != events.TypeAdminAdded {
		t.Fatalf("unexpected event type %q", emitter.last(t).EventType())
	}
}

func TestAddAdminTwiceStillEmits(t *testing.T) {
	engine, emitter := newTestEngine(t)
	admin := addr(0x10)

	if err := engine.AddAdmin(testOwner, admin); err != nil {
		t.Fatalf("add admin: %v", err)
	}
	if err := engine.AddAdmin(testOwner, admin); err != nil {
		t.Fatalf("re-add admin: %v", err)
	}
	if len(emitter.events) != 2 {
		t.Fatalf("expected two events, got %d", len(emitter.events))
	}
}

func TestRemoveAdmin(t *testing.T) {
	engine, emitter := newTestEngine(t)
	admin := addr(0x10)

	if err := engine.AddAdmin(testOwner, admin); err != nil {
		t.Fatalf("add admin: %v", err)
	}
	if err := engine.RemoveAdmin(addr(0x99), admin); !errors.Is(err, points.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	var zero [20]byte
	if err := engine.RemoveAdmin(testOwner, zero); !errors.Is(err, points.ErrInvalidIdentity) {
		t.Fatalf("expected invalid identity error, got %v", err)
	}
	if err := engine.RemoveAdmin(testOwner, admin); err != nil {
		t.Fatalf("remove admin: %v", err)
	}
	isAdmin, err := engine.IsAdmin(admin)
	if err != nil {
		t.Fatalf("is admin: %v", err)
	}
	if isAdmin {
		t.Fatalf("expected admin role to be revoked")
	}
	// Removing a non-member is accepted.
	if err := engine.RemoveAdmin(testOwner, addr(0x11)); err != nil {
		t.Fatalf("remove non-member: %v", err)
	}
	if emitter.last(t).EventType() != events.TypeAdminRemoved {
		t.Fatalf("unexpected event type %q", emitter.last(t).EventType())
	}
}

func TestPauseAuthorization(t *testing.T) {
	engine, _ := newTestEngine(t)
	admin := addr(0x10)
	if err := engine.AddAdmin(testOwner, admin); err != nil {
		t.Fatalf("add admin: %v", err)
	}
	// Admins cannot pause, only the owner.
	if err := engine.Pause(admin); !errors.Is(err, points.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if err := engine.Pause(testOwner); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := engine.Pause(testOwner); !errors.Is(err, points.ErrInvalidState) {
		t.Fatalf("expected invalid state on double pause, got %v", err)
	}
	paused, err := engine.Paused()
	if err != nil {
		t.Fatalf("paused: %v", err)
	}
	if !paused {
		t.Fatalf("expected engine to be paused")
	}
	if err := engine.Unpause(admin); !errors.Is(err, points.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if err := engine.Unpause(testOwner); err != nil {
		t.Fatalf("unpause: %v", err)
	}
	if err := engine.Unpause(testOwner); !errors.Is(err, points.ErrInvalidState) {
		t.Fatalf("expected invalid state on double unpause, got %v", err)
	}
}

func TestPauseGatesValueOperationsOnly(t *testing.T) {
	engine, _ := newTestEngine(t)
	merchant := addr(0x20)
	user := addr(0x30)
	merchantID, err := engine.AddMerchant(testOwner, merchant)
	if err != nil {
		t.Fatalf("add merchant: %v", err)
	}
	if _, err := engine.AddUser(testOwner, user); err != nil {
		t.Fatalf("add user: %v", err)
	}
	if err := engine.RewardUser(merchant, user, 10); err != nil {
		t.Fatalf("reward user: %v", err)
	}

	if err := engine.Pause(testOwner); err != nil {
		t.Fatalf("pause: %v", err)
	}

	// Value-bearing operations fail while paused.
	if err := engine.RewardUser(merchant, user, 5); !errors.Is(err, points.ErrPaused) {
		t.Fatalf("expected paused error for reward, got %v", err)
	}
	if err := engine.RedeemPoints(user, merchantID, 5); !errors.Is(err, points.ErrPaused) {
		t.Fatalf("expected paused error for redeem, got %v", err)
	}
	if err := engine.AddOperator(merchant, addr(0x40)); !errors.Is(err, points.ErrPaused) {
		t.Fatalf("expected paused error for add operator, got %v", err)
	}
	if err := engine.RemoveOperator(merchant, addr(0x40)); !errors.Is(err, points.ErrPaused) {
		t.Fatalf("expected paused error for remove operator, got %v", err)
	}
	if err := engine.TransferMerchantOwnership(merchant, addr(0x41)); !errors.Is(err, points.ErrPaused) {
		t.Fatalf("expected paused error for transfer, got %v", err)
	}

	// Governance operations are not pause-gated.
	if err := engine.AddAdmin(testOwner, addr(0x10)); err != nil {
		t.Fatalf("add admin while paused: %v", err)
	}
	if _, err := engine.AddMerchant(testOwner, addr(0x21)); err != nil {
		t.Fatalf("add merchant while paused: %v", err)
	}
	if err := engine.BanUser(testOwner, user); err != nil {
		t.Fatalf("ban user while paused: %v", err)
	}
	if err := engine.ApproveUser(testOwner, user); err != nil {
		t.Fatalf("approve user while paused: %v", err)
	}

	if err := engine.Unpause(testOwner); err != nil {
		t.Fatalf("unpause: %v", err)
	}
	if err := engine.RedeemPoints(user, merchantID, 5); err != nil {
		t.Fatalf("redeem after unpause: %v", err)
	}
}
