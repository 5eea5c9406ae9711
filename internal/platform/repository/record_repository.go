package repository

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"zerodb/internal/domain"
	"zerodb/internal/platform/codec"
	"zerodb/internal/platform/repository/pagestore"
	"zerodb/internal/platform/utils"
)

// Page 0 holds the serialized page map; record pages start after it.
const indexPageAddress pagestore.PageAddress = 0

var ErrRecordTooLarge = errors.New("repository: encoded record exceeds page size")

// PageStoreRepository keeps one record per page. Saving encodes the
// record into a page payload, binds a fresh identifier to the page in
// the index, and re-persists the index itself as page 0.
type PageStoreRepository struct {
	mu       sync.Mutex
	store    *pagestore.BufferedRW
	index    *pagestore.PageMap
	nextPage pagestore.PageAddress
}

func NewPageStoreRepository(store *pagestore.BufferedRW) (*PageStoreRepository, error) {
	index, err := loadIndex(store)
	if err != nil {
		return nil, err
	}

	next := pagestore.PageAddress(pagestore.PageSize)
	if maxAddr, ok := index.MaxAddress(); ok {
		next = maxAddr + pagestore.PageSize
	}

	return &PageStoreRepository{
		store:    store,
		index:    index,
		nextPage: next,
	}, nil
}

func loadIndex(store *pagestore.BufferedRW) (*pagestore.PageMap, error) {
	index := pagestore.NewPageMap()

	page, err := store.ReadPage(indexPageAddress)
	if err != nil {
		size, sizeErr := store.MainSize()
		if sizeErr == nil && size == 0 {
			// Fresh store, nothing persisted yet.
			return index, nil
		}
		return nil, fmt.Errorf("load page index: %w", err)
	}

	d, err := utils.ReadDatabaseBytes(bytes.NewReader(page[:]))
	if err != nil {
		return nil, fmt.Errorf("parse page index: %w", err)
	}
	if d.Len() == 0 {
		// Zeroed index page, treat as empty.
		return index, nil
	}
	if err := index.Pop(d); err != nil {
		return nil, fmt.Errorf("decode page index: %w", err)
	}
	return index, nil
}

func (r *PageStoreRepository) Save(row domain.User) (domain.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addr := r.allocPage()
	id, err := r.index.Insert(addr)
	if err != nil {
		return domain.UserRecord{}, err
	}

	rec := domain.UserRecord{
		Row:       row,
		CreatedBy: domain.SystemUser,
		ModCount:  0,
		UpdatedBy: domain.SystemUser,
		UpdatedOn: id.Timestamp(),
		ID:        id,
	}

	page, err := recordPage(rec)
	if err != nil {
		r.index.Remove(id)
		return domain.UserRecord{}, err
	}
	if err := r.store.WritePage(addr, page); err != nil {
		r.index.Remove(id)
		return domain.UserRecord{}, err
	}
	if err := r.persistIndex(); err != nil {
		return domain.UserRecord{}, err
	}
	return rec, nil
}

func (r *PageStoreRepository) Get(id domain.UUID) (domain.UserRecord, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addr, ok := r.index.GetEntry(id)
	if !ok {
		return domain.UserRecord{}, false, nil
	}

	page, err := r.store.ReadPage(addr)
	if err != nil {
		return domain.UserRecord{}, false, err
	}
	d, err := utils.ReadDatabaseBytes(bytes.NewReader(page[:]))
	if err != nil {
		return domain.UserRecord{}, false, fmt.Errorf("parse record page at %d: %w", addr, err)
	}
	rec, err := PopUserRecord(d)
	if err != nil {
		return domain.UserRecord{}, false, fmt.Errorf("decode record at %d: %w", addr, err)
	}
	return rec, true, nil
}

func (r *PageStoreRepository) Delete(id domain.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addr, ok := r.index.Remove(id)
	if !ok {
		return false, nil
	}
	// The whole page is reusable again.
	r.index.SetOpenLayout(pagestore.PageSize, addr)

	if err := r.persistIndex(); err != nil {
		return false, err
	}
	return true, nil
}

// Flush persists the index page and pushes every pending page out of
// the log into the main file.
func (r *PageStoreRepository) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.persistIndex(); err != nil {
		return err
	}
	return r.store.FlushWal()
}

func (r *PageStoreRepository) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}
	return r.store.Close()
}

func (r *PageStoreRepository) allocPage() pagestore.PageAddress {
	if addr, ok := r.index.TakeOpenLayout(pagestore.PageSize); ok {
		return addr
	}
	addr := r.nextPage
	r.nextPage += pagestore.PageSize
	return addr
}

func (r *PageStoreRepository) persistIndex() error {
	d := codec.NewDatabaseBytes()
	r.index.Push(d)
	return writePagePayload(r.store, indexPageAddress, d)
}

func recordPage(rec domain.UserRecord) (*pagestore.Page, error) {
	d := codec.NewDatabaseBytes()
	PushUserRecord(d, rec)
	return pagePayload(d)
}

func pagePayload(d *codec.DatabaseBytes) (*pagestore.Page, error) {
	var buf bytes.Buffer
	if err := utils.WriteDatabaseBytes(&buf, d); err != nil {
		return nil, err
	}
	if buf.Len() > pagestore.PageSize {
		return nil, ErrRecordTooLarge
	}
	var page pagestore.Page
	copy(page[:], buf.Bytes())
	return &page, nil
}

func writePagePayload(store *pagestore.BufferedRW, addr pagestore.PageAddress, d *codec.DatabaseBytes) error {
	page, err := pagePayload(d)
	if err != nil {
		return err
	}
	return store.WritePage(addr, page)
}
