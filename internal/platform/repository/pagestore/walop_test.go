package pagestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackWalOpRoundTrip(t *testing.T) {
	cases := []struct {
		op   WalOp
		addr PageAddress
	}{
		{OpWrite, 0},
		{OpWrite, 4096},
		{OpCommit, 8192},
		{Extension(3), 4096 * 1000},
		{OpWrite, PageAddress(1) << 40},
	}

	for _, c := range cases {
		packed := PackWalOp(c.op, c.addr)
		assert.Equal(t, c.op, packed.Op())
		assert.Equal(t, c.addr, packed.Address())
	}
}

func TestPackWalOpDropsSubPageBits(t *testing.T) {
	packed := PackWalOp(OpWrite, 4096+17)
	assert.Equal(t, PageAddress(4096), packed.Address())
}

func TestExtensionOps(t *testing.T) {
	assert.False(t, OpWrite.IsExtension())
	assert.False(t, OpCommit.IsExtension())
	assert.True(t, Extension(0).IsExtension())
	assert.NotEqual(t, Extension(0), Extension(1))
}

func TestPageAddressAlign(t *testing.T) {
	assert.Equal(t, PageAddress(0), PageAddress(0).Align())
	assert.Equal(t, PageAddress(0), PageAddress(4095).Align())
	assert.Equal(t, PageAddress(4096), PageAddress(4096).Align())
	assert.Equal(t, PageAddress(8192), PageAddress(8192+1).Align())
}
