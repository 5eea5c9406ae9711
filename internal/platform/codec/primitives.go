package codec

import (
	"encoding/binary"
	"unicode/utf8"

	"zerodb/internal/domain"
)

// Fixed-width integers encode as their little-endian byte representation
// tagged with a layout equal to the byte width.

func PushUint8(d *DatabaseBytes, v uint8) {
	d.PushSegment([]byte{v})
}

func PushUint16(d *DatabaseBytes, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	d.PushSegment(b[:])
}

func PushUint32(d *DatabaseBytes, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	d.PushSegment(b[:])
}

func PushUint64(d *DatabaseBytes, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	d.PushSegment(b[:])
}

func PushInt8(d *DatabaseBytes, v int8)   { PushUint8(d, uint8(v)) }
func PushInt16(d *DatabaseBytes, v int16) { PushUint16(d, uint16(v)) }
func PushInt32(d *DatabaseBytes, v int32) { PushUint32(d, uint32(v)) }
func PushInt64(d *DatabaseBytes, v int64) { PushUint64(d, uint64(v)) }

func consumeFixed(d *DatabaseBytes, width int) ([]byte, error) {
	seg, err := d.ConsumeLayout()
	if err != nil {
		return nil, err
	}
	if len(seg) < width {
		return nil, ErrBadLength
	}
	return seg, nil
}

func ConsumeUint8(d *DatabaseBytes) (uint8, error) {
	seg, err := consumeFixed(d, 1)
	if err != nil {
		return 0, err
	}
	return seg[0], nil
}

func ConsumeUint16(d *DatabaseBytes) (uint16, error) {
	seg, err := consumeFixed(d, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(seg), nil
}

func ConsumeUint32(d *DatabaseBytes) (uint32, error) {
	seg, err := consumeFixed(d, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(seg), nil
}

func ConsumeUint64(d *DatabaseBytes) (uint64, error) {
	seg, err := consumeFixed(d, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(seg), nil
}

func ConsumeInt8(d *DatabaseBytes) (int8, error) {
	v, err := ConsumeUint8(d)
	return int8(v), err
}

func ConsumeInt16(d *DatabaseBytes) (int16, error) {
	v, err := ConsumeUint16(d)
	return int16(v), err
}

func ConsumeInt32(d *DatabaseBytes) (int32, error) {
	v, err := ConsumeUint32(d)
	return int32(v), err
}

func ConsumeInt64(d *DatabaseBytes) (int64, error) {
	v, err := ConsumeUint64(d)
	return int64(v), err
}

// PushBytes appends b as a single raw segment.
func PushBytes(d *DatabaseBytes, b []byte) {
	d.PushSegment(b)
}

// ConsumeBytes pops one raw segment and checks it holds exactly n bytes.
func ConsumeBytes(d *DatabaseBytes, n int) ([]byte, error) {
	seg, err := d.ConsumeLayout()
	if err != nil {
		return nil, err
	}
	if len(seg) != n {
		return nil, ErrBadLength
	}
	return seg, nil
}

// Strings encode as raw UTF-8 bytes tagged with byte length.

func PushString(d *DatabaseBytes, s string) {
	d.PushSegment([]byte(s))
}

func ConsumeString(d *DatabaseBytes) (string, error) {
	seg, err := d.ConsumeLayout()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(seg) {
		return "", ErrInvalidText
	}
	return string(seg), nil
}

// PushOption encodes a present value as its inner encoding and absence
// as a single zero-length segment.
func PushOption[T any](d *DatabaseBytes, v *T, push func(*DatabaseBytes, T)) {
	if v == nil {
		d.PushSegment(nil)
		return
	}
	push(d, *v)
}

// ConsumeOption pops one segment; zero length means absence, anything
// else is re-wrapped and handed to pop. Because a single layout is
// consumed, options only round-trip single-segment inner values
// (primitives, strings) — same limit as the dynamic-sequence scheme.
func ConsumeOption[T any](d *DatabaseBytes, pop func(*DatabaseBytes) (T, error)) (*T, error) {
	seg, err := d.ConsumeLayout()
	if err != nil {
		return nil, err
	}
	if len(seg) == 0 {
		return nil, nil
	}
	inner := New(len(seg), seg)
	v, err := pop(inner)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// PushArray encodes a fixed-size array as the concatenation of its
// element encodings in one segment.
func PushArray[T any](d *DatabaseBytes, xs []T, push func(*DatabaseBytes, T)) {
	scratch := NewDatabaseBytes()
	for _, x := range xs {
		push(scratch, x)
	}
	d.PushSegment(scratch.Bytes())
}

// ConsumeArray decodes n elements of the given byte width from one
// segment; the segment length must be exactly n*width.
func ConsumeArray[T any](d *DatabaseBytes, n, width int, pop func(*DatabaseBytes) (T, error)) ([]T, error) {
	seg, err := d.ConsumeLayout()
	if err != nil {
		return nil, err
	}
	if len(seg) != n*width {
		return nil, ErrBadLength
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		chunk := seg[i*width : (i+1)*width]
		inner := New(width, chunk)
		v, err := pop(inner)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// PushSlice encodes a dynamically sized sequence as a flat blob of
// element bytes plus a trailing per-element width. Every element is
// assumed to encode to the same width, which holds for all supported
// primitive element types; variable-width elements (strings, nested
// slices) cannot be represented and fail on the consume side.
func PushSlice[T any](d *DatabaseBytes, xs []T, push func(*DatabaseBytes, T)) {
	scratch := NewDatabaseBytes()
	width := 0
	for i, x := range xs {
		push(scratch, x)
		if i == 0 {
			width = len(scratch.Bytes())
		}
	}
	PushUint64(d, uint64(width))
	d.PushSegment(scratch.Bytes())
}

// ConsumeSlice decodes the blob written by PushSlice by chunking it into
// width-sized pieces.
func ConsumeSlice[T any](d *DatabaseBytes, pop func(*DatabaseBytes) (T, error)) ([]T, error) {
	seg, err := d.ConsumeLayout()
	if err != nil {
		return nil, err
	}
	width64, err := ConsumeUint64(d)
	if err != nil {
		return nil, err
	}
	width := int(width64)
	if width == 0 {
		if len(seg) != 0 {
			return nil, ErrBadLength
		}
		return nil, nil
	}
	if len(seg)%width != 0 {
		return nil, ErrBadLength
	}
	out := make([]T, 0, len(seg)/width)
	for off := 0; off < len(seg); off += width {
		inner := New(width, seg[off:off+width])
		v, err := pop(inner)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// PushUUID appends the four identifier fields in declared order.
// Implemented here by hand to keep the identifier usable by the page
// index without going through the record layer.
func PushUUID(d *DatabaseBytes, id domain.UUID) {
	PushUint32(d, id.Data1)
	PushUint16(d, id.Data2)
	PushUint16(d, id.Data3)
	PushBytes(d, id.Data4[:])
}

// ConsumeUUID pops the four fields in reverse declared order.
func ConsumeUUID(d *DatabaseBytes) (domain.UUID, error) {
	var id domain.UUID

	data4, err := ConsumeBytes(d, 8)
	if err != nil {
		return id, err
	}
	copy(id.Data4[:], data4)

	if id.Data3, err = ConsumeUint16(d); err != nil {
		return id, err
	}
	if id.Data2, err = ConsumeUint16(d); err != nil {
		return id, err
	}
	if id.Data1, err = ConsumeUint32(d); err != nil {
		return id, err
	}
	return id, nil
}
