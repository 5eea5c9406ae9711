package pagestore

import "fmt"

// WalOp tags a WAL record. Write is the only op the replay path accepts
// today; Commit and the extension range keep the record format open for
// differentiated record types without breaking the layout.
type WalOp uint16

const (
	OpWrite WalOp = iota + 1
	OpCommit

	opExtensionBase
)

// Extension returns the nth extension op. Tags live in 12 bits, so n is
// capped well below 4096.
func Extension(n uint16) WalOp {
	return opExtensionBase + WalOp(n)
}

func (op WalOp) IsExtension() bool {
	return op >= opExtensionBase
}

const (
	walOpShift  = 52
	walAddrMask = (1 << walOpShift) - 1
)

// WalPageNumber packs an op tag and a page address into one integer:
// the tag in the 12 bits above bit 52, the page index (address without
// its low 12 bits) below.
//
//	63            52 51                                             0
//	+---------------+-----------------------------------------------+
//	|     op tag    |                address >> 12                  |
//	+---------------+-----------------------------------------------+
type WalPageNumber uint64

func PackWalOp(op WalOp, addr PageAddress) WalPageNumber {
	return WalPageNumber(uint64(op)<<walOpShift | (uint64(addr) >> 12))
}

func (n WalPageNumber) Op() WalOp {
	return WalOp(n >> walOpShift)
}

func (n WalPageNumber) Address() PageAddress {
	return PageAddress(uint64(n)&walAddrMask) << 12
}

func (n WalPageNumber) String() string {
	return fmt.Sprintf("wal[op=%d addr=%d]", n.Op(), n.Address())
}
