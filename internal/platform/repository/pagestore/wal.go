package pagestore

import (
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// WAL file layout: bytes [0,8) hold the commit counter, [8,16) the
// ledger version, both u64 little-endian. Records follow at offset 16,
// each an 8-byte packed WalPageNumber and a full page body.
const (
	walHeaderSize   = 16
	walLedgerOffset = 8
	walRecordSize   = 8 + PageSize
	walSuffix       = ".zero_wal"
)

type WAL struct {
	fd   *os.File
	path string
}

// OpenWal opens or creates the log at path. A fresh file gets a zeroed
// header so readers always find both counters.
func OpenWal(path string) (*WAL, error) {
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open wal %s: %w", path, err)
	}
	info, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("stat wal %s: %w", path, err)
	}
	w := &WAL{fd: fd, path: path}
	if info.Size() < walHeaderSize {
		if err := w.WriteHeader(0, 0); err != nil {
			fd.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *WAL) Header() (commit, ledger uint64, err error) {
	var b [walHeaderSize]byte
	if _, err := w.fd.ReadAt(b[:], 0); err != nil {
		return 0, 0, fmt.Errorf("read wal header: %w", err)
	}
	return binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16]), nil
}

func (w *WAL) WriteHeader(commit, ledger uint64) error {
	var b [walHeaderSize]byte
	binary.LittleEndian.PutUint64(b[0:8], commit)
	binary.LittleEndian.PutUint64(b[8:16], ledger)
	if _, err := w.fd.WriteAt(b[:], 0); err != nil {
		return fmt.Errorf("write wal header: %w", err)
	}
	return nil
}

func (w *WAL) WriteLedgerVersion(ledger uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], ledger)
	if _, err := w.fd.WriteAt(b[:], walLedgerOffset); err != nil {
		return fmt.Errorf("write wal ledger version: %w", err)
	}
	return nil
}

// Append writes one record at the given byte offset. The header is not
// touched here; the store updates the ledger version after a successful
// append, which is why a crash between the two can under-report the log
// length.
func (w *WAL) Append(off int64, op WalOp, addr PageAddress, page *Page) error {
	var rec [walRecordSize]byte
	binary.LittleEndian.PutUint64(rec[0:8], uint64(PackWalOp(op, addr)))
	copy(rec[8:], page[:])
	if _, err := w.fd.WriteAt(rec[:], off); err != nil {
		return fmt.Errorf("append wal record: %w", err)
	}
	return nil
}

// ReadRecordAt reads the record starting at the given byte offset.
func (w *WAL) ReadRecordAt(off int64) (WalOp, PageAddress, *Page, error) {
	var rec [walRecordSize]byte
	if _, err := w.fd.ReadAt(rec[:], off); err != nil {
		return 0, 0, nil, fmt.Errorf("read wal record at %d: %w", off, err)
	}
	packed := WalPageNumber(binary.LittleEndian.Uint64(rec[0:8]))
	var page Page
	copy(page[:], rec[8:])
	return packed.Op(), packed.Address(), &page, nil
}

// Reset truncates the log back to its header and starts the given
// generation with an empty ledger.
func (w *WAL) Reset(commit uint64) error {
	if err := w.fd.Truncate(walHeaderSize); err != nil {
		return fmt.Errorf("truncate wal: %w", err)
	}
	return w.WriteHeader(commit, 0)
}

// Advisory locks guard cross-process coordination on the log file.
// In-process exclusion is the store's own mutex.

func (w *WAL) LockShared() error {
	if err := unix.Flock(int(w.fd.Fd()), unix.LOCK_SH); err != nil {
		return fmt.Errorf("lock wal shared: %w", err)
	}
	return nil
}

func (w *WAL) LockExclusive() error {
	if err := unix.Flock(int(w.fd.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("lock wal exclusive: %w", err)
	}
	return nil
}

func (w *WAL) Unlock() error {
	if err := unix.Flock(int(w.fd.Fd()), unix.LOCK_UN); err != nil {
		return fmt.Errorf("unlock wal: %w", err)
	}
	return nil
}

func (w *WAL) Close() error {
	if w.fd == nil {
		return nil
	}
	err := w.fd.Close()
	w.fd = nil
	return err
}
