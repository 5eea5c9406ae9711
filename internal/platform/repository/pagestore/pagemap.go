package pagestore

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"

	"zerodb/internal/domain"
	"zerodb/internal/platform/codec"
)

// PageMap indexes records by identifier: an ordered map for range and
// bounds queries, an unordered map for point lookups, and a free list
// of open page layouts keyed by size class. It persists through the
// binary codec, one page per map.
type PageMap struct {
	orderMap    *redblacktree.Tree
	readMap     map[domain.UUID]PageAddress
	openLayouts *redblacktree.Tree
}

func uuidComparator(a, b interface{}) int {
	return a.(domain.UUID).Compare(b.(domain.UUID))
}

func NewPageMap() *PageMap {
	return &PageMap{
		orderMap:    redblacktree.NewWith(uuidComparator),
		readMap:     make(map[domain.UUID]PageAddress),
		openLayouts: redblacktree.NewWith(utils.IntComparator),
	}
}

// Insert allocates a fresh time-ordered identifier and binds it to the
// given page address in both maps.
func (m *PageMap) Insert(addr PageAddress) (domain.UUID, error) {
	id, err := domain.RandV7()
	if err != nil {
		return domain.UUID{}, err
	}
	m.orderMap.Put(id, addr)
	m.readMap[id] = addr
	return id, nil
}

func (m *PageMap) GetEntry(id domain.UUID) (PageAddress, bool) {
	addr, ok := m.readMap[id]
	return addr, ok
}

// GetEntryBounds returns the half-open address range between the entry
// at or after id and its successor in identifier order — the record's
// page neighborhood for scanning and compaction.
func (m *PageMap) GetEntryBounds(id domain.UUID) (start, end PageAddress, ok bool) {
	node, found := m.orderMap.Ceiling(id)
	if !found {
		return 0, 0, false
	}
	it := m.orderMap.IteratorAt(node)
	if !it.Next() {
		return 0, 0, false
	}
	return node.Value.(PageAddress), it.Value().(PageAddress), true
}

// Remove unbinds id and returns the address it pointed at.
func (m *PageMap) Remove(id domain.UUID) (PageAddress, bool) {
	addr, ok := m.readMap[id]
	if !ok {
		return 0, false
	}
	delete(m.readMap, id)
	m.orderMap.Remove(id)
	return addr, true
}

func (m *PageMap) Len() int {
	return len(m.readMap)
}

// SetOpenLayout records addr as a free or partially filled page with
// the given usable byte size.
func (m *PageMap) SetOpenLayout(size int, addr PageAddress) {
	m.openLayouts.Put(size, addr)
}

// TakeOpenLayout removes and returns the smallest open page that fits
// size bytes.
func (m *PageMap) TakeOpenLayout(size int) (PageAddress, bool) {
	node, found := m.openLayouts.Ceiling(size)
	if !found {
		return 0, false
	}
	addr := node.Value.(PageAddress)
	m.openLayouts.Remove(node.Key)
	return addr, true
}

// MaxAddress returns the highest page address the map knows about,
// bound or free.
func (m *PageMap) MaxAddress() (PageAddress, bool) {
	var max PageAddress
	found := false
	for _, addr := range m.readMap {
		if !found || addr > max {
			max = addr
			found = true
		}
	}
	it := m.openLayouts.Iterator()
	for it.Next() {
		if addr := it.Value().(PageAddress); !found || addr > max {
			max = addr
			found = true
		}
	}
	return max, found
}

// Push encodes the bound entries and the free list, each followed by
// its own count so Pop can unwind the stack.
func (m *PageMap) Push(d *codec.DatabaseBytes) {
	it := m.orderMap.Iterator()
	for it.Next() {
		codec.PushUUID(d, it.Key().(domain.UUID))
		codec.PushUint64(d, uint64(it.Value().(PageAddress)))
	}
	codec.PushUint64(d, uint64(m.orderMap.Size()))

	lit := m.openLayouts.Iterator()
	for lit.Next() {
		codec.PushUint64(d, uint64(lit.Key().(int)))
		codec.PushUint64(d, uint64(lit.Value().(PageAddress)))
	}
	codec.PushUint64(d, uint64(m.openLayouts.Size()))
}

// Pop consumes what Push produced, fields in reverse order.
func (m *PageMap) Pop(d *codec.DatabaseBytes) error {
	layoutCount, err := codec.ConsumeUint64(d)
	if err != nil {
		return err
	}
	for i := uint64(0); i < layoutCount; i++ {
		addr, err := codec.ConsumeUint64(d)
		if err != nil {
			return err
		}
		size, err := codec.ConsumeUint64(d)
		if err != nil {
			return err
		}
		m.openLayouts.Put(int(size), PageAddress(addr))
	}

	entryCount, err := codec.ConsumeUint64(d)
	if err != nil {
		return err
	}
	for i := uint64(0); i < entryCount; i++ {
		addr, err := codec.ConsumeUint64(d)
		if err != nil {
			return err
		}
		id, err := codec.ConsumeUUID(d)
		if err != nil {
			return err
		}
		m.orderMap.Put(id, PageAddress(addr))
		m.readMap[id] = PageAddress(addr)
	}
	return nil
}
