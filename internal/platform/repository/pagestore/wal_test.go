package pagestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func createTempWal(t *testing.T) *WAL {
	t.Helper()
	dir, err := os.MkdirTemp("", "waltest")
	if err != nil {
		t.Fatalf("error creating temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	w, err := OpenWal(filepath.Join(dir, "test.zero_wal"))
	if err != nil {
		t.Fatalf("error opening WAL: %v", err)
	}
	t.Cleanup(func() {
		w.Close()
	})
	return w
}

func TestOpenWalInitializesHeader(t *testing.T) {
	w := createTempWal(t)

	commit, ledger, err := w.Header()
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), commit)
	assert.Equal(t, uint64(0), ledger)
}

func TestHeaderRoundTrip(t *testing.T) {
	w := createTempWal(t)

	assert.NoError(t, w.WriteHeader(3, 17))
	commit, ledger, err := w.Header()
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), commit)
	assert.Equal(t, uint64(17), ledger)

	assert.NoError(t, w.WriteLedgerVersion(18))
	commit, ledger, err = w.Header()
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), commit)
	assert.Equal(t, uint64(18), ledger)
}

func TestAppendReadRecord(t *testing.T) {
	w := createTempWal(t)
	page := FilledPage(0x2a)

	assert.NoError(t, w.Append(walHeaderSize, OpWrite, 8192, page))

	op, addr, got, err := w.ReadRecordAt(walHeaderSize)
	assert.NoError(t, err)
	assert.Equal(t, OpWrite, op)
	assert.Equal(t, PageAddress(8192), addr)
	assert.Equal(t, page, got)
}

func TestResetTruncatesToHeader(t *testing.T) {
	w := createTempWal(t)

	assert.NoError(t, w.Append(walHeaderSize, OpWrite, 4096, FilledPage(1)))
	assert.NoError(t, w.WriteLedgerVersion(1))

	assert.NoError(t, w.Reset(5))

	info, err := os.Stat(w.path)
	assert.NoError(t, err)
	assert.Equal(t, int64(walHeaderSize), info.Size())

	commit, ledger, err := w.Header()
	assert.NoError(t, err)
	assert.Equal(t, uint64(5), commit)
	assert.Equal(t, uint64(0), ledger)
}

func TestWalLocking(t *testing.T) {
	w := createTempWal(t)

	assert.NoError(t, w.LockShared())
	assert.NoError(t, w.Unlock())
	assert.NoError(t, w.LockExclusive())
	assert.NoError(t, w.Unlock())
}
