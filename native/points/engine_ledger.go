package points

import (
	"math"

	"rewardpoints/core/events"
)

// RewardUser accrues points to the user on behalf of the effective merchant.
// The caller must be an approved merchant identity, or an operator whose
// delegation currently resolves to an approved merchant; after an ownership
// transfer the operator's reward is attributed to the merchant's ledger entry
// under its new identity, same numeric id. A merchant cannot reward itself.
func (e *Engine) RewardUser(caller, userIdentity [20]byte, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardNotPaused(); err != nil {
		return err
	}
	merchant, err := e.effectiveMerchant(caller)
	if err != nil {
		return err
	}
	if isZeroAddress(userIdentity) {
		return ErrInvalidUser
	}
	user, found, err := e.userByAddress(userIdentity)
	if err != nil {
		return err
	}
	if !found {
		return ErrInvalidUser
	}
	if !user.Approved {
		return ErrInvalidState
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	if merchant.Identity == userIdentity {
		return ErrInvalidOperation
	}
	entry := new(LedgerEntry)
	if _, err := e.st.KVGet(ledgerKey(user.ID, merchant.ID), entry); err != nil {
		return err
	}
	if entry.Earned > math.MaxUint64-amount || user.TotalEarned > math.MaxUint64-amount {
		return ErrInvalidAmount
	}
	entry.Earned += amount
	user.TotalEarned += amount
	cs := e.st.NewChangeset()
	cs.KVPut(ledgerKey(user.ID, merchant.ID), entry)
	cs.KVPut(userKey(user.ID), user)
	if err := cs.Commit(); err != nil {
		return err
	}
	e.emit(events.UserRewarded{UserID: user.ID, MerchantID: merchant.ID, Amount: amount})
	return nil
}

// RedeemPoints consumes points the calling user accrued at the merchant. The
// amount is bounded by the per-merchant balance, never the user's aggregate.
func (e *Engine) RedeemPoints(caller [20]byte, merchantID uint64, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardNotPaused(); err != nil {
		return err
	}
	user, found, err := e.userByAddress(caller)
	if err != nil {
		return err
	}
	if !found {
		return ErrInvalidUser
	}
	if !user.Approved {
		return ErrInvalidState
	}
	merchant, found, err := e.merchantByID(merchantID)
	if err != nil {
		return err
	}
	if !found {
		return ErrInvalidID
	}
	if !merchant.Approved {
		return ErrInvalidState
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	entry := new(LedgerEntry)
	if _, err := e.st.KVGet(ledgerKey(user.ID, merchant.ID), entry); err != nil {
		return err
	}
	if amount > entry.Available() {
		return ErrInsufficientBalance
	}
	entry.Redeemed += amount
	user.TotalRedeemed += amount
	cs := e.st.NewChangeset()
	cs.KVPut(ledgerKey(user.ID, merchant.ID), entry)
	cs.KVPut(userKey(user.ID), user)
	if err := cs.Commit(); err != nil {
		return err
	}
	e.emit(events.PointsRedeemed{UserID: user.ID, MerchantID: merchant.ID, Amount: amount})
	return nil
}

// EarnedPointsAt returns the points the user has accrued at the merchant.
func (e *Engine) EarnedPointsAt(userIdentity [20]byte, merchantID uint64) (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	entry, err := e.ledgerEntry(userIdentity, merchantID)
	if err != nil {
		return 0, err
	}
	return entry.Earned, nil
}

// RedeemedPointsAt returns the points the user has consumed at the merchant.
func (e *Engine) RedeemedPointsAt(userIdentity [20]byte, merchantID uint64) (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	entry, err := e.ledgerEntry(userIdentity, merchantID)
	if err != nil {
		return 0, err
	}
	return entry.Redeemed, nil
}

func (e *Engine) ledgerEntry(userIdentity [20]byte, merchantID uint64) (*LedgerEntry, error) {
	if isZeroAddress(userIdentity) {
		return nil, ErrInvalidIdentity
	}
	user, found, err := e.userByAddress(userIdentity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvalidUser
	}
	merchant, found, err := e.merchantByID(merchantID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvalidID
	}
	entry := new(LedgerEntry)
	if _, err := e.st.KVGet(ledgerKey(user.ID, merchant.ID), entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// effectiveMerchant resolves the caller to the merchant the reward is
// attributed to: the caller's own record, or the record its operator
// delegation points at. The merchant must be approved.
func (e *Engine) effectiveMerchant(caller [20]byte) (*Merchant, error) {
	merchant, found, err := e.merchantByAddress(caller)
	if err != nil {
		return nil, err
	}
	if !found {
		owning, assigned, err := e.operatorOwner(caller)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, ErrUnauthorized
		}
		merchant, found, err = e.merchantByAddress(owning)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrUnauthorized
		}
	}
	if !merchant.Approved {
		return nil, ErrUnauthorized
	}
	return merchant, nil
}
