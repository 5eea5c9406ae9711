package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UUID is a 128-bit identifier split into four fields. For v7 identifiers
// Data1 and Data2 hold the millisecond timestamp, so the field-by-field
// ordering below is also chronological order.
type UUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

func NewUUID(data1 uint32, data2 uint16, data3 uint16, data4 [8]byte) UUID {
	return UUID{
		Data1: data1,
		Data2: data2,
		Data3: data3,
		Data4: data4,
	}
}

// RandV7 builds a time-ordered identifier per RFC 9562, section 5.7:
// 48 bits of unix milliseconds, the 0x7 version nibble over 12 random
// bits, and 8 entropy bytes with the first two overwritten by the
// variant tag. One entropy read per call; an entropy failure is returned
// as-is, never retried.
func RandV7() (UUID, error) {
	tms := uint64(time.Now().UnixMilli())

	randA, err := randUint16()
	if err != nil {
		return UUID{}, err
	}
	data3 := uint16(0x7<<12) | (randA & 0x0fff)

	data4, err := randBytes8()
	if err != nil {
		return UUID{}, err
	}
	data4[0] = 1
	data4[1] = 0

	return UUID{Data3: data3, Data4: data4}.EncodeTime(tms), nil
}

// EncodeTime stores the low 48 bits of a millisecond timestamp into
// Data1 and Data2.
func (u UUID) EncodeTime(tms uint64) UUID {
	u.Data1 = uint32(tms >> 16)
	u.Data2 = uint16(tms)
	return u
}

// Timestamp recovers the millisecond timestamp encoded by EncodeTime.
func (u UUID) Timestamp() uint64 {
	return uint64(u.Data1)<<16 | uint64(u.Data2)
}

// Compare orders Data1 > Data2 > Data3 > Data4, which compares v7
// identifiers by creation time first.
func (u UUID) Compare(other UUID) int {
	if u.Data1 != other.Data1 {
		if u.Data1 < other.Data1 {
			return -1
		}
		return 1
	}
	if u.Data2 != other.Data2 {
		if u.Data2 < other.Data2 {
			return -1
		}
		return 1
	}
	if u.Data3 != other.Data3 {
		if u.Data3 < other.Data3 {
			return -1
		}
		return 1
	}
	for i := range u.Data4 {
		if u.Data4[i] != other.Data4[i] {
			if u.Data4[i] < other.Data4[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (u UUID) IsZero() bool {
	return u == UUID{}
}

// String renders the four fields as lowercase hex groups of widths
// 8-4-4-16. Note the last group is not broken out further; this is not
// the canonical five-group RFC form.
func (u UUID) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%08x-%04x-%04x-", u.Data1, u.Data2, u.Data3)
	for _, b := range u.Data4 {
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}

var ErrInvalidUUID = errors.New("invalid uuid string")

// ParseUUID parses the 8-4-4-16 hex form produced by String.
func ParseUUID(s string) (UUID, error) {
	if len(s) != 35 {
		return UUID{}, ErrInvalidUUID
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' {
		return UUID{}, ErrInvalidUUID
	}

	data1, err := strconv.ParseUint(s[0:8], 16, 32)
	if err != nil {
		return UUID{}, ErrInvalidUUID
	}
	data2, err := strconv.ParseUint(s[9:13], 16, 16)
	if err != nil {
		return UUID{}, ErrInvalidUUID
	}
	data3, err := strconv.ParseUint(s[14:18], 16, 16)
	if err != nil {
		return UUID{}, ErrInvalidUUID
	}

	var data4 [8]byte
	for i := range data4 {
		b, err := strconv.ParseUint(s[19+i*2:21+i*2], 16, 8)
		if err != nil {
			return UUID{}, ErrInvalidUUID
		}
		data4[i] = byte(b)
	}

	return NewUUID(uint32(data1), uint16(data2), uint16(data3), data4), nil
}
