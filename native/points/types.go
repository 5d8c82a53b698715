package points

// Merchant is the stored record for a business authorized to award points.
// Operators is kept sorted so RLP encoding is deterministic.
type Merchant struct {
	ID        uint64
	Identity  [20]byte
	Approved  bool
	Operators [][20]byte
}

// User is the stored record for an identity accruing and redeeming points.
// TotalEarned and TotalRedeemed are aggregates over every ledger entry of the
// user; the ledger is their only writer.
type User struct {
	ID            uint64
	Identity      [20]byte
	Approved      bool
	TotalEarned   uint64
	TotalRedeemed uint64
}

// LedgerEntry tracks the points a user has accrued and consumed at a single
// merchant. Redeemed never exceeds Earned.
type LedgerEntry struct {
	Earned   uint64
	Redeemed uint64
}

// Available returns the redeemable balance of the entry.
func (e LedgerEntry) Available() uint64 {
	return e.Earned - e.Redeemed
}

func isZeroAddress(addr [20]byte) bool {
	var zero [20]byte
	return addr == zero
}
