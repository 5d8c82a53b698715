package points

import "rewardpoints/core/events"

// AddMerchant registers a new merchant identity and returns its id. Only the
// owner or an admin may register merchants. The record starts approved. A
// second registration of the same identity is rejected so the identity index
// always points at a single ledger shard.
func (e *Engine) AddMerchant(caller, identity [20]byte) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireOwnerOrAdmin(caller); err != nil {
		return 0, err
	}
	if isZeroAddress(identity) {
		return 0, ErrInvalidIdentity
	}
	if _, found, err := e.merchantByAddress(identity); err != nil {
		return 0, err
	} else if found {
		return 0, ErrAlreadyExists
	}
	var counter uint64
	if _, err := e.st.KVGet(merchantCounterKey(), &counter); err != nil {
		return 0, err
	}
	id := counter + 1
	merchant := &Merchant{
		ID:        id,
		Identity:  identity,
		Approved:  true,
		Operators: make([][20]byte, 0),
	}
	cs := e.st.NewChangeset()
	cs.KVPut(merchantCounterKey(), id)
	cs.KVPut(merchantKey(id), merchant)
	cs.KVPut(merchantIndexKey(identity), id)
	if err := cs.Commit(); err != nil {
		return 0, err
	}
	e.emit(events.MerchantAdded{ID: id, Merchant: identity})
	return id, nil
}

// BanMerchant revokes a merchant's approval. The merchant must currently be
// approved; banning twice fails.
func (e *Engine) BanMerchant(caller [20]byte, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireOwnerOrAdmin(caller); err != nil {
		return err
	}
	merchant, found, err := e.merchantByID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrInvalidID
	}
	if !merchant.Approved {
		return ErrInvalidState
	}
	merchant.Approved = false
	if err := e.st.KVPut(merchantKey(id), merchant); err != nil {
		return err
	}
	e.emit(events.MerchantBanned{ID: id})
	return nil
}

// ApproveMerchant restores a banned merchant. The merchant must currently be
// banned; approving an approved merchant fails.
func (e *Engine) ApproveMerchant(caller [20]byte, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireOwnerOrAdmin(caller); err != nil {
		return err
	}
	merchant, found, err := e.merchantByID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrInvalidID
	}
	if merchant.Approved {
		return ErrInvalidState
	}
	merchant.Approved = true
	if err := e.st.KVPut(merchantKey(id), merchant); err != nil {
		return err
	}
	e.emit(events.MerchantApproved{ID: id})
	return nil
}

// GetMerchantByID returns the merchant record for the id.
func (e *Engine) GetMerchantByID(id uint64) (*Merchant, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	merchant, found, err := e.merchantByID(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvalidID
	}
	return merchant, nil
}

// GetMerchantByAddress returns the merchant record for the identity.
func (e *Engine) GetMerchantByAddress(identity [20]byte) (*Merchant, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if isZeroAddress(identity) {
		return nil, ErrInvalidIdentity
	}
	merchant, found, err := e.merchantByAddress(identity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvalidIdentity
	}
	return merchant, nil
}

func (e *Engine) merchantByID(id uint64) (*Merchant, bool, error) {
	if id == 0 {
		return nil, false, nil
	}
	merchant := new(Merchant)
	found, err := e.st.KVGet(merchantKey(id), merchant)
	if err != nil || !found {
		return nil, false, err
	}
	return merchant, true, nil
}

func (e *Engine) merchantByAddress(identity [20]byte) (*Merchant, bool, error) {
	var id uint64
	found, err := e.st.KVGet(merchantIndexKey(identity), &id)
	if err != nil {
		return nil, false, err
	}
	if !found || id == 0 {
		return nil, false, nil
	}
	return e.merchantByID(id)
}
