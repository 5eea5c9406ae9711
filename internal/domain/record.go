package domain

// UserRecord wraps a user row with the bookkeeping fields every stored
// record carries. Field order matters to the storage codec: records are
// encoded in this declared order and decoded in reverse.
type UserRecord struct {
	Row       User   `json:"row"`
	CreatedBy UUID   `json:"created_by"`
	ModCount  uint64 `json:"mod_count"`
	UpdatedBy UUID   `json:"updated_by"`
	UpdatedOn uint64 `json:"updated_on"`
	ID        UUID   `json:"id"`
}

// NewSystemUserRecord builds a record attributed to the system user,
// stamped with the creation time carried by its own identifier.
func NewSystemUserRecord(row User) (UserRecord, error) {
	id, err := RandV7()
	if err != nil {
		return UserRecord{}, err
	}
	return UserRecord{
		Row:       row,
		CreatedBy: SystemUser,
		ModCount:  0,
		UpdatedBy: SystemUser,
		UpdatedOn: id.Timestamp(),
		ID:        id,
	}, nil
}

type RecordRepository interface {
	Save(row User) (UserRecord, error)
	Get(id UUID) (UserRecord, bool, error)
	Delete(id UUID) (bool, error)
	Flush() error
}
