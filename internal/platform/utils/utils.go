package utils

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"zerodb/internal/platform/codec"
)

// Framing for DatabaseBytes values on byte streams: a u32 segment count,
// one u32 layout per segment, then the flat byte buffer. This is the
// payload format used inside pages.

const maxSegments = 1 << 20

var ErrTooManySegments = errors.New("utils: segment count out of range")

func WriteDatabaseBytes(w io.Writer, d *codec.DatabaseBytes) error {
	layouts := d.Layouts()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(layouts))); err != nil {
		return err
	}
	for _, layout := range layouts {
		if err := binary.Write(w, binary.LittleEndian, uint32(layout)); err != nil {
			return err
		}
	}
	if _, err := w.Write(d.Bytes()); err != nil {
		return err
	}
	return nil
}

func ReadDatabaseBytes(r io.Reader) (*codec.DatabaseBytes, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	if count > maxSegments {
		return nil, ErrTooManySegments
	}

	layouts := make([]uint32, count)
	total := 0
	for i := range layouts {
		if err := binary.Read(r, binary.LittleEndian, &layouts[i]); err != nil {
			return nil, err
		}
		total += int(layouts[i])
	}

	buf := make([]byte, total)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read segment bytes: %w", err)
	}

	d := codec.NewDatabaseBytes()
	off := 0
	for _, layout := range layouts {
		d.PushSegment(buf[off : off+int(layout)])
		off += int(layout)
	}
	return d, nil
}
