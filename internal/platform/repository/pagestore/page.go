package pagestore

// PageSize is the fixed unit of storage. Byte offset N*PageSize in the
// main file holds page N; there is no file-level header.
const PageSize = 4096

// Page is a fixed-size buffer. Pages handed out by the store are shared
// and must be treated as immutable; every write produces a new page
// value instead of mutating one in place.
type Page [PageSize]byte

// FilledPage returns a page with every byte set to b.
func FilledPage(b byte) *Page {
	var p Page
	for i := range p {
		p[i] = b
	}
	return &p
}

// PageAddress is an unsigned byte offset into the main file. Every
// access masks it down to a page boundary, so an address identifies
// exactly one page.
type PageAddress uint64

// Align rounds the address down to the nearest page boundary.
func (a PageAddress) Align() PageAddress {
	return a &^ (PageSize - 1)
}
