package pagestore

import (
	"fmt"
	"os"
	"sync"
)

// MaxBuf bounds both the read cache and the pending-write ledger. A
// write that pushes the ledger past it triggers a checkpoint.
const MaxBuf = 1000

// BufferedRW is a buffered page store over two files: the main paged
// data file and an append-only write-ahead log. Writes land in the log
// and an in-memory ledger first and reach the main file only on flush.
//
// The store itself is synchronous and single-owner; the mutex plus the
// advisory lock on the log file are what make concurrent callers and
// concurrent processes safe, respectively.
type BufferedRW struct {
	mu   sync.Mutex
	main *os.File
	wal  *WAL

	// Pages written but not yet flushed to the main file.
	updateLedger map[PageAddress]*Page
	// Bounded cache of recently read or written pages.
	readBuffer map[PageAddress]*Page

	// Local view of the on-disk WAL header, used to detect whether the
	// log has grown or rotated since the last sync.
	commit        uint64
	ledgerVersion uint64
	// Byte offset one past the last record this store has replayed or
	// appended. Incremental replay resumes here instead of trusting any
	// implicit file cursor.
	walOffset int64

	maxBuf int
}

// OpenBufferedRW opens the main file at path and its log at
// path + ".zero_wal", creating either as needed, then syncs against
// whatever the log already holds.
func OpenBufferedRW(path string) (*BufferedRW, error) {
	return openBufferedRW(path, MaxBuf)
}

func openBufferedRW(path string, maxBuf int) (*BufferedRW, error) {
	main, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open data file %s: %w", path, err)
	}
	wal, err := OpenWal(path + walSuffix)
	if err != nil {
		main.Close()
		return nil, err
	}

	b := &BufferedRW{
		main:         main,
		wal:          wal,
		updateLedger: make(map[PageAddress]*Page),
		readBuffer:   make(map[PageAddress]*Page),
		walOffset:    walHeaderSize,
		maxBuf:       maxBuf,
	}
	if err := b.syncWal(); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// ReadPage returns the page at the aligned address. The log is synced
// first so the caches reflect records other stores may have appended;
// then the read is served from cache, from the pending ledger, or from
// the main file, in that order. Short reads are errors, never partial
// pages.
func (b *BufferedRW) ReadPage(addr PageAddress) (*Page, error) {
	addr = addr.Align()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.syncWal(); err != nil {
		return nil, err
	}
	if p, ok := b.readBuffer[addr]; ok {
		return p, nil
	}
	// The ledger is the only copy of unflushed pages; consult it before
	// the main file so cache eviction can never surface stale bytes.
	if p, ok := b.updateLedger[addr]; ok {
		b.cachePage(addr, p)
		return p, nil
	}

	if err := b.wal.LockShared(); err != nil {
		return nil, err
	}
	defer b.wal.Unlock()

	var p Page
	if _, err := b.main.ReadAt(p[:], int64(addr)); err != nil {
		return nil, fmt.Errorf("read page at %d: %w", addr, err)
	}
	b.cachePage(addr, &p)
	return &p, nil
}

// WritePage records the page in the log and both in-memory maps. Once
// the pending ledger outgrows the buffer bound the store checkpoints:
// the cache is dropped, the log rotates to a fresh generation, and
// everything pending is flushed to the main file.
func (b *BufferedRW) WritePage(addr PageAddress, page *Page) error {
	addr = addr.Align()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.wal.LockExclusive(); err != nil {
		return err
	}
	defer b.wal.Unlock()

	b.cachePage(addr, page)

	if err := b.wal.Append(b.walOffset, OpWrite, addr, page); err != nil {
		return err
	}
	b.ledgerVersion++
	if err := b.wal.WriteLedgerVersion(b.ledgerVersion); err != nil {
		return err
	}
	b.walOffset += walRecordSize
	b.updateLedger[addr] = page

	if len(b.updateLedger) > b.maxBuf {
		return b.checkpoint()
	}
	return nil
}

// checkpoint rotates the log to a new generation and flushes the
// ledger. The commit counter is incremented, not reset, so a stale
// reader always sees a generation different from its own and replays
// from scratch.
func (b *BufferedRW) checkpoint() error {
	b.readBuffer = make(map[PageAddress]*Page)
	b.commit++
	b.ledgerVersion = 0
	if err := b.wal.Reset(b.commit); err != nil {
		return err
	}
	b.walOffset = walHeaderSize
	return b.flushLedger()
}

// FlushWal writes every pending page to the main file. The batch is not
// atomic: a failure partway through leaves earlier pages applied and
// later ones still pending in the log.
func (b *BufferedRW) FlushWal() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.wal.LockExclusive(); err != nil {
		return err
	}
	defer b.wal.Unlock()

	return b.flushLedger()
}

func (b *BufferedRW) flushLedger() error {
	pending := b.updateLedger
	b.updateLedger = make(map[PageAddress]*Page)

	for addr, page := range pending {
		if _, err := b.main.WriteAt(page[:], int64(addr)); err != nil {
			return fmt.Errorf("flush page at %d: %w", addr, err)
		}
	}
	return b.main.Sync()
}

// syncWal reconciles the in-memory state with the on-disk header. A
// commit counter we have not seen means the log rotated: drop both maps
// and replay the whole generation. A larger ledger version on the same
// commit means new records were appended: replay just the delta from
// the tracked offset.
func (b *BufferedRW) syncWal() error {
	if err := b.wal.LockShared(); err != nil {
		return err
	}
	defer b.wal.Unlock()

	commit, ledger, err := b.wal.Header()
	if err != nil {
		return err
	}

	switch {
	case commit != b.commit:
		b.updateLedger = make(map[PageAddress]*Page)
		b.readBuffer = make(map[PageAddress]*Page)
		b.commit = commit
		b.ledgerVersion = 0
		b.walOffset = walHeaderSize
	case ledger <= b.ledgerVersion:
		return nil
	}

	for i := b.ledgerVersion; i < ledger; i++ {
		op, addr, page, err := b.wal.ReadRecordAt(b.walOffset)
		if err != nil {
			return err
		}
		if op != OpWrite {
			return fmt.Errorf("wal replay: unexpected op %d at offset %d", op, b.walOffset)
		}
		b.updateLedger[addr] = page
		b.cachePage(addr, page)
		b.walOffset += walRecordSize
	}
	b.ledgerVersion = ledger
	return nil
}

// cachePage inserts into the read buffer, evicting an arbitrary
// resident entry when at capacity. Arbitrary eviction is a capacity
// bound, not a recency policy.
func (b *BufferedRW) cachePage(addr PageAddress, page *Page) {
	if _, ok := b.readBuffer[addr]; !ok && len(b.readBuffer) >= b.maxBuf {
		for victim := range b.readBuffer {
			delete(b.readBuffer, victim)
			break
		}
	}
	b.readBuffer[addr] = page
}

// MainSize reports the current byte size of the main data file.
func (b *BufferedRW) MainSize() (int64, error) {
	info, err := b.main.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat data file: %w", err)
	}
	return info.Size(), nil
}

func (b *BufferedRW) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	walErr := b.wal.Close()
	if err := b.main.Close(); err != nil {
		return err
	}
	return walErr
}
