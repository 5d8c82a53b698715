package points

import "encoding/binary"

var (
	ownerKeyBytes           = []byte("points/owner")
	pausedKeyBytes          = []byte("points/paused")
	adminPrefix             = []byte("points/admin/")
	merchantPrefix          = []byte("points/merchant/")
	merchantCounterKeyBytes = []byte("points/merchant/counter")
	merchantIndexPrefix     = []byte("points/merchant-index/")
	operatorIndexPrefix     = []byte("points/operator-index/")
	userPrefix              = []byte("points/user/")
	userCounterKeyBytes     = []byte("points/user/counter")
	userIndexPrefix         = []byte("points/user-index/")
	ledgerPrefix            = []byte("points/ledger/")
)

func ownerKey() []byte {
	return append([]byte(nil), ownerKeyBytes...)
}

func pausedKey() []byte {
	return append([]byte(nil), pausedKeyBytes...)
}

func adminKey(addr [20]byte) []byte {
	return appendAddr(adminPrefix, addr)
}

func merchantKey(id uint64) []byte {
	return appendID(merchantPrefix, id)
}

func merchantCounterKey() []byte {
	return append([]byte(nil), merchantCounterKeyBytes...)
}

func merchantIndexKey(addr [20]byte) []byte {
	return appendAddr(merchantIndexPrefix, addr)
}

func operatorIndexKey(addr [20]byte) []byte {
	return appendAddr(operatorIndexPrefix, addr)
}

func userKey(id uint64) []byte {
	return appendID(userPrefix, id)
}

func userCounterKey() []byte {
	return append([]byte(nil), userCounterKeyBytes...)
}

func userIndexKey(addr [20]byte) []byte {
	return appendAddr(userIndexPrefix, addr)
}

func ledgerKey(userID, merchantID uint64) []byte {
	key := make([]byte, len(ledgerPrefix)+16)
	copy(key, ledgerPrefix)
	binary.BigEndian.PutUint64(key[len(ledgerPrefix):], userID)
	binary.BigEndian.PutUint64(key[len(ledgerPrefix)+8:], merchantID)
	return key
}

func appendAddr(prefix []byte, addr [20]byte) []byte {
	key := make([]byte, len(prefix)+len(addr))
	copy(key, prefix)
	copy(key[len(prefix):], addr[:])
	return key
}

func appendID(prefix []byte, id uint64) []byte {
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], id)
	return key
}
