package events

const (
	// TypeAdminAdded is emitted when the owner grants the admin role.
	TypeAdminAdded = "points.admin.added"
	// TypeAdminRemoved is emitted when the owner revokes the admin role.
	TypeAdminRemoved = "points.admin.removed"
	// TypeMerchantAdded is emitted when a merchant record is created.
	TypeMerchantAdded = "points.merchant.added"
	// TypeMerchantBanned is emitted when a merchant is banned.
	TypeMerchantBanned = "points.merchant.banned"
	// TypeMerchantApproved is emitted when a banned merchant is re-approved.
	TypeMerchantApproved = "points.merchant.approved"
	// TypeOperatorAdded is emitted when a merchant delegates an operator.
	TypeOperatorAdded = "points.operator.added"
	// TypeOperatorRemoved is emitted when a merchant revokes an operator.
	TypeOperatorRemoved = "points.operator.removed"
	// TypeMerchantOwnershipTransferred is emitted when a merchant rotates its
	// identity.
	TypeMerchantOwnershipTransferred = "points.merchant.ownership_transferred"
	// TypeUserAdded is emitted when a user record is created.
	TypeUserAdded = "points.user.added"
	// TypeUserBanned is emitted when a user is banned.
	TypeUserBanned = "points.user.banned"
	// TypeUserApproved is emitted when a banned user is re-approved.
	TypeUserApproved = "points.user.approved"
	// TypeUserRewarded is emitted when a merchant or operator accrues points
	// to a user.
	TypeUserRewarded = "points.user.rewarded"
	// TypePointsRedeemed is emitted when a user consumes points at a merchant.
	TypePointsRedeemed = "points.redeemed"
	// TypePaused is emitted when the owner suspends value-bearing operations.
	TypePaused = "points.paused"
	// TypeUnpaused is emitted when the owner lifts the suspension.
	TypeUnpaused = "points.unpaused"
)

// AdminAdded captures an admin grant. The grant is recorded even when the
// identity was already an admin.
type AdminAdded struct {
	Admin [20]byte
}

// EventType implements the Event interface.
func (AdminAdded) EventType() string { return TypeAdminAdded }

// AdminRemoved captures an admin revocation.
type AdminRemoved struct {
	Admin [20]byte
}

// EventType implements the Event interface.
func (AdminRemoved) EventType() string { return TypeAdminRemoved }

// MerchantAdded captures a newly registered merchant.
type MerchantAdded struct {
	ID       uint64
	Merchant [20]byte
}

// EventType implements the Event interface.
func (MerchantAdded) EventType() string { return TypeMerchantAdded }

// MerchantBanned captures a merchant ban.
type MerchantBanned struct {
	ID uint64
}

// EventType implements the Event interface.
func (MerchantBanned) EventType() string { return TypeMerchantBanned }

// MerchantApproved captures a merchant re-approval.
type MerchantApproved struct {
	ID uint64
}

// EventType implements the Event interface.
func (MerchantApproved) EventType() string { return TypeMerchantApproved }

// OperatorAdded captures an operator delegation.
type OperatorAdded struct {
	MerchantID uint64
	Operator   [20]byte
}

// EventType implements the Event interface.
func (OperatorAdded) EventType() string { return TypeOperatorAdded }

// OperatorRemoved captures an operator revocation.
type OperatorRemoved struct {
	MerchantID uint64
	Operator   [20]byte
}

// EventType implements the Event interface.
func (OperatorRemoved) EventType() string { return TypeOperatorRemoved }

// MerchantOwnershipTransferred captures an identity rotation for a merchant.
// The numeric id and the operator set are unchanged by the transfer.
type MerchantOwnershipTransferred struct {
	MerchantID  uint64
	OldIdentity [20]byte
	NewIdentity [20]byte
}

// EventType implements the Event interface.
func (MerchantOwnershipTransferred) EventType() string {
	return TypeMerchantOwnershipTransferred
}

// UserAdded captures a newly registered user.
type UserAdded struct {
	ID   uint64
	User [20]byte
}

// EventType implements the Event interface.
func (UserAdded) EventType() string { return TypeUserAdded }

// UserBanned captures a user ban.
type UserBanned struct {
	ID uint64
}

// EventType implements the Event interface.
func (UserBanned) EventType() string { return TypeUserBanned }

// UserApproved captures a user re-approval.
type UserApproved struct {
	ID uint64
}

// EventType implements the Event interface.
func (UserApproved) EventType() string { return TypeUserApproved }

// UserRewarded captures a points accrual. Merchant is the effective merchant:
// for an operator caller it is the merchant the operator resolves to.
type UserRewarded struct {
	UserID     uint64
	MerchantID uint64
	Amount     uint64
}

// EventType implements the Event interface.
func (UserRewarded) EventType() string { return TypeUserRewarded }

// PointsRedeemed captures a points redemption.
type PointsRedeemed struct {
	UserID     uint64
	MerchantID uint64
	Amount     uint64
}

// EventType implements the Event interface.
func (PointsRedeemed) EventType() string { return TypePointsRedeemed }

// Paused captures the engine entering the paused state.
type Paused struct {
	Caller [20]byte
}

// EventType implements the Event interface.
func (Paused) EventType() string { return TypePaused }

// Unpaused captures the engine leaving the paused state.
type Unpaused struct {
	Caller [20]byte
}

// EventType implements the Event interface.
func (Unpaused) EventType() string { return TypeUnpaused }
