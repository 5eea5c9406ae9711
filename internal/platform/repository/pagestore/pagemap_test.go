package pagestore

import (
	"sort"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"

	"zerodb/internal/domain"
	"zerodb/internal/platform/codec"
)

func TestInsertBindsBothMaps(t *testing.T) {
	m := NewPageMap()

	id, err := m.Insert(4096)
	assert.NoError(t, err)
	assert.False(t, id.IsZero())

	addr, ok := m.GetEntry(id)
	assert.True(t, ok)
	assert.Equal(t, PageAddress(4096), addr)

	assert.Equal(t, 1, m.Len())
}

func TestGetEntryBounds(t *testing.T) {
	m := NewPageMap()

	ids := make([]domain.UUID, 0, 3)
	for i := 1; i <= 3; i++ {
		id, err := m.Insert(PageAddress(i) * PageSize)
		assert.NoError(t, err)
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Compare(ids[j]) < 0
	})

	first, _ := m.GetEntry(ids[0])
	second, _ := m.GetEntry(ids[1])

	start, end, ok := m.GetEntryBounds(ids[0])
	assert.True(t, ok)
	assert.Equal(t, first, start)
	assert.Equal(t, second, end)

	// The last entry has no successor to bound it.
	_, _, ok = m.GetEntryBounds(ids[2])
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	m := NewPageMap()
	id, err := m.Insert(8192)
	assert.NoError(t, err)

	addr, ok := m.Remove(id)
	assert.True(t, ok)
	assert.Equal(t, PageAddress(8192), addr)
	assert.Equal(t, 0, m.Len())

	_, ok = m.Remove(id)
	assert.False(t, ok)
}

func TestOpenLayouts(t *testing.T) {
	m := NewPageMap()
	m.SetOpenLayout(512, 4096)
	m.SetOpenLayout(2048, 8192)

	// Smallest layout that fits wins.
	addr, ok := m.TakeOpenLayout(600)
	assert.True(t, ok)
	assert.Equal(t, PageAddress(8192), addr)

	// Taken layouts are gone.
	_, ok = m.TakeOpenLayout(600)
	assert.False(t, ok)

	addr, ok = m.TakeOpenLayout(100)
	assert.True(t, ok)
	assert.Equal(t, PageAddress(4096), addr)
}

func TestMaxAddress(t *testing.T) {
	m := NewPageMap()

	_, ok := m.MaxAddress()
	assert.False(t, ok)

	_, err := m.Insert(4096)
	assert.NoError(t, err)
	m.SetOpenLayout(PageSize, 12288)

	maxAddr, ok := m.MaxAddress()
	assert.True(t, ok)
	assert.Equal(t, PageAddress(12288), maxAddr)
}

func TestPageMapCodecRoundTrip(t *testing.T) {
	m := NewPageMap()
	for i := 1; i <= 5; i++ {
		_, err := m.Insert(PageAddress(i) * PageSize)
		assert.NoError(t, err)
	}
	m.SetOpenLayout(PageSize, 24576)
	m.SetOpenLayout(128, 28672)

	d := codec.NewDatabaseBytes()
	m.Push(d)

	decoded := NewPageMap()
	assert.NoError(t, decoded.Pop(d))

	if decoded.Len() != m.Len() {
		t.Fatalf("entry count mismatch:\n%s", spew.Sdump(decoded))
	}
	it := m.orderMap.Iterator()
	for it.Next() {
		addr, ok := decoded.GetEntry(it.Key().(domain.UUID))
		assert.True(t, ok)
		assert.Equal(t, it.Value().(PageAddress), addr)
	}

	addr, ok := decoded.TakeOpenLayout(4096)
	assert.True(t, ok)
	assert.Equal(t, PageAddress(24576), addr)
	addr, ok = decoded.TakeOpenLayout(64)
	assert.True(t, ok)
	assert.Equal(t, PageAddress(28672), addr)
}
