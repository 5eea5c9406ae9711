package codec

import "errors"

var (
	ErrNoLayouts   = errors.New("codec: no layouts left to consume")
	ErrShortBuffer = errors.New("codec: buffer shorter than claimed layout")
	ErrBadLength   = errors.New("codec: segment length does not match type width")
	ErrInvalidText = errors.New("codec: segment is not valid utf-8")
)

// DatabaseBytes is a stack of length-tagged byte segments: one layout
// entry per appended segment, all segment bytes concatenated in append
// order into a single flat buffer.
//
// ConsumeLayout pops the most recently appended segment, so composite
// values must append their fields in declared order and consume them in
// reverse declared order. That LIFO contract is load-bearing; decoders
// that consume in declared order read the wrong fields.
type DatabaseBytes struct {
	layouts []int
	bytes   []byte
}

// NewDatabaseBytes returns an empty segment stack.
func NewDatabaseBytes() *DatabaseBytes {
	return &DatabaseBytes{}
}

// New returns a stack holding a single segment of the given layout.
func New(layout int, b []byte) *DatabaseBytes {
	return &DatabaseBytes{
		layouts: []int{layout},
		bytes:   b,
	}
}

// Push appends every segment of other, in order, on top of d.
func (d *DatabaseBytes) Push(other *DatabaseBytes) {
	d.layouts = append(d.layouts, other.layouts...)
	d.bytes = append(d.bytes, other.bytes...)
}

// PushSegment appends b as one new segment tagged with its length.
func (d *DatabaseBytes) PushSegment(b []byte) {
	d.layouts = append(d.layouts, len(b))
	d.bytes = append(d.bytes, b...)
}

// ConsumeLayout pops and returns the most recently appended segment.
// It never panics: an empty layout stack or a flat buffer shorter than
// the claimed segment length is reported as an error.
func (d *DatabaseBytes) ConsumeLayout() ([]byte, error) {
	if len(d.layouts) == 0 {
		return nil, ErrNoLayouts
	}
	size := d.layouts[len(d.layouts)-1]
	if len(d.bytes) < size {
		return nil, ErrShortBuffer
	}
	d.layouts = d.layouts[:len(d.layouts)-1]
	seg := make([]byte, size)
	copy(seg, d.bytes[len(d.bytes)-size:])
	d.bytes = d.bytes[:len(d.bytes)-size]
	return seg, nil
}

// Layouts returns the layout stack, bottom first.
func (d *DatabaseBytes) Layouts() []int {
	return d.layouts
}

// Bytes returns the flat buffer holding all segments in append order.
func (d *DatabaseBytes) Bytes() []byte {
	return d.bytes
}

// Len reports the number of segments currently on the stack.
func (d *DatabaseBytes) Len() int {
	return len(d.layouts)
}

// Value is the contract between record types and the codec. Push must
// append fields in declared order; Pop must consume them in reverse
// declared order. Implementations are generated or hand-written by the
// record layer; the codec only defines the building blocks.
type Value interface {
	Push(d *DatabaseBytes)
	Pop(d *DatabaseBytes) error
}
