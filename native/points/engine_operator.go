package points

import (
	"bytes"
	"sort"

	"rewardpoints/core/events"
)

// AddOperator delegates the identity as an operator of the calling merchant.
// The merchant may manage operators in any approval state, but not while the
// engine is paused. An identity already delegated to any merchant is
// rejected: the operator index maps each operator to exactly one merchant.
func (e *Engine) AddOperator(caller, operator [20]byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardNotPaused(); err != nil {
		return err
	}
	merchant, found, err := e.merchantByAddress(caller)
	if err != nil {
		return err
	}
	if !found {
		return ErrUnauthorized
	}
	if isZeroAddress(operator) {
		return ErrInvalidIdentity
	}
	if _, assigned, err := e.operatorOwner(operator); err != nil {
		return err
	} else if assigned {
		return ErrAlreadyExists
	}
	merchant.Operators = append(merchant.Operators, operator)
	sort.Slice(merchant.Operators, func(i, j int) bool {
		return bytes.Compare(merchant.Operators[i][:], merchant.Operators[j][:]) < 0
	})
	cs := e.st.NewChangeset()
	cs.KVPut(merchantKey(merchant.ID), merchant)
	cs.KVPut(operatorIndexKey(operator), merchant.Identity)
	if err := cs.Commit(); err != nil {
		return err
	}
	e.emit(events.OperatorAdded{MerchantID: merchant.ID, Operator: operator})
	return nil
}

// RemoveOperator revokes the delegation. The identity must currently be an
// operator of the calling merchant.
func (e *Engine) RemoveOperator(caller, operator [20]byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardNotPaused(); err != nil {
		return err
	}
	merchant, found, err := e.merchantByAddress(caller)
	if err != nil {
		return err
	}
	if !found {
		return ErrUnauthorized
	}
	if isZeroAddress(operator) {
		return ErrInvalidIdentity
	}
	owning, assigned, err := e.operatorOwner(operator)
	if err != nil {
		return err
	}
	if !assigned || owning != merchant.Identity {
		return ErrInvalidState
	}
	updated := make([][20]byte, 0, len(merchant.Operators))
	for _, existing := range merchant.Operators {
		if existing != operator {
			updated = append(updated, existing)
		}
	}
	merchant.Operators = updated
	var unassigned [20]byte
	cs := e.st.NewChangeset()
	cs.KVPut(merchantKey(merchant.ID), merchant)
	cs.KVPut(operatorIndexKey(operator), unassigned)
	if err := cs.Commit(); err != nil {
		return err
	}
	e.emit(events.OperatorRemoved{MerchantID: merchant.ID, Operator: operator})
	return nil
}

// TransferMerchantOwnership rotates the calling merchant's identity. The
// numeric id and the operator set survive the rotation: every operator is
// re-pointed at the new identity in the same batch that rewrites the record
// and the identity index.
func (e *Engine) TransferMerchantOwnership(caller, newIdentity [20]byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardNotPaused(); err != nil {
		return err
	}
	merchant, found, err := e.merchantByAddress(caller)
	if err != nil {
		return err
	}
	if !found {
		return ErrUnauthorized
	}
	if isZeroAddress(newIdentity) {
		return ErrInvalidIdentity
	}
	if _, taken, err := e.merchantByAddress(newIdentity); err != nil {
		return err
	} else if taken {
		return ErrAlreadyExists
	}
	oldIdentity := merchant.Identity
	merchant.Identity = newIdentity
	cs := e.st.NewChangeset()
	cs.KVPut(merchantKey(merchant.ID), merchant)
	cs.KVPut(merchantIndexKey(oldIdentity), uint64(0))
	cs.KVPut(merchantIndexKey(newIdentity), merchant.ID)
	for _, operator := range merchant.Operators {
		cs.KVPut(operatorIndexKey(operator), newIdentity)
	}
	if err := cs.Commit(); err != nil {
		return err
	}
	e.emit(events.MerchantOwnershipTransferred{
		MerchantID:  merchant.ID,
		OldIdentity: oldIdentity,
		NewIdentity: newIdentity,
	})
	return nil
}

// IsMerchantOperator reports whether the identity is currently an operator of
// the merchant.
func (e *Engine) IsMerchantOperator(operator [20]byte, merchantID uint64) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	merchant, found, err := e.merchantByID(merchantID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, ErrInvalidID
	}
	if isZeroAddress(operator) {
		return false, ErrInvalidIdentity
	}
	owning, assigned, err := e.operatorOwner(operator)
	if err != nil {
		return false, err
	}
	return assigned && owning == merchant.Identity, nil
}

// operatorOwner resolves the merchant identity the operator is delegated to.
func (e *Engine) operatorOwner(operator [20]byte) ([20]byte, bool, error) {
	var owning [20]byte
	found, err := e.st.KVGet(operatorIndexKey(operator), &owning)
	if err != nil {
		return owning, false, err
	}
	if !found || isZeroAddress(owning) {
		return owning, false, nil
	}
	return owning, true, nil
}
