package repository

import (
	"zerodb/internal/domain"
	"zerodb/internal/platform/codec"
)

// Hand-written codec pairs for the system table types. These stand in
// for generated per-type implementations: fields go in declared order on
// the way in and come back in reverse declared order on the way out.

func PushUser(d *codec.DatabaseBytes, u domain.User) {
	codec.PushString(d, u.FirstName)
	codec.PushString(d, u.LastName)
	codec.PushString(d, u.Email)
}

func PopUser(d *codec.DatabaseBytes) (domain.User, error) {
	var u domain.User
	var err error

	if u.Email, err = codec.ConsumeString(d); err != nil {
		return u, err
	}
	if u.LastName, err = codec.ConsumeString(d); err != nil {
		return u, err
	}
	if u.FirstName, err = codec.ConsumeString(d); err != nil {
		return u, err
	}
	return u, nil
}

func PushUserRecord(d *codec.DatabaseBytes, r domain.UserRecord) {
	PushUser(d, r.Row)
	codec.PushUUID(d, r.CreatedBy)
	codec.PushUint64(d, r.ModCount)
	codec.PushUUID(d, r.UpdatedBy)
	codec.PushUint64(d, r.UpdatedOn)
	codec.PushUUID(d, r.ID)
}

func PopUserRecord(d *codec.DatabaseBytes) (domain.UserRecord, error) {
	var r domain.UserRecord
	var err error

	if r.ID, err = codec.ConsumeUUID(d); err != nil {
		return r, err
	}
	if r.UpdatedOn, err = codec.ConsumeUint64(d); err != nil {
		return r, err
	}
	if r.UpdatedBy, err = codec.ConsumeUUID(d); err != nil {
		return r, err
	}
	if r.ModCount, err = codec.ConsumeUint64(d); err != nil {
		return r, err
	}
	if r.CreatedBy, err = codec.ConsumeUUID(d); err != nil {
		return r, err
	}
	if r.Row, err = PopUser(d); err != nil {
		return r, err
	}
	return r, nil
}
