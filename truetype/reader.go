package truetype

import (
	"encoding/binary"
	"fmt"
)

// reader provides positional big-endian reads over an immutable byte
// buffer. There is no seek state; every read names its offset and is
// bounds-checked against the buffer length.
type reader struct {
	data []byte
}

func (r reader) len() int { return len(r.data) }

// check validates that [off, off+n) lies inside the buffer.
func (r reader) check(off, n int) error {
	if off < 0 || n < 0 || off+n > len(r.data) {
		return fmt.Errorf("%w: %d bytes at offset %d (have %d)", ErrTruncated, n, off, len(r.data))
	}
	return nil
}

func (r reader) u8(off int) (uint8, error) {
	if err := r.check(off, 1); err != nil {
		return 0, err
	}
	return r.data[off], nil
}

func (r reader) u16(off int) (uint16, error) {
	if err := r.check(off, 2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.data[off:]), nil
}

func (r reader) i16(off int) (int16, error) {
	v, err := r.u16(off)
	return int16(v), err
}

func (r reader) u32(off int) (uint32, error) {
	if err := r.check(off, 4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(r.data[off:]), nil
}

func (r reader) i32(off int) (int32, error) {
	v, err := r.u32(off)
	return int32(v), err
}

// cursor is a sequential big-endian decoder with a sticky error, used for
// the stream-shaped parts of the format (glyf flag and delta streams,
// compound component records). Once a read runs past the end, the cursor
// records the error, returns zeros from then on, and the caller checks
// err() once at the end of the stream.
type cursor struct {
	data []byte
	pos  int
	fail error
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) err() error { return c.fail }

func (c *cursor) bad(n int) bool {
	if c.fail != nil {
		return true
	}
	if c.pos+n > len(c.data) {
		c.fail = fmt.Errorf("%w: %d bytes at stream offset %d (have %d)", ErrTruncated, n, c.pos, len(c.data))
		return true
	}
	return false
}

func (c *cursor) skip(n int) {
	if c.bad(n) {
		return
	}
	c.pos += n
}

func (c *cursor) u8() uint8 {
	if c.bad(1) {
		return 0
	}
	v := c.data[c.pos]
	c.pos++
	return v
}

func (c *cursor) i8() int8 {
	return int8(c.u8())
}

func (c *cursor) u16() uint16 {
	if c.bad(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v
}

func (c *cursor) i16() int16 {
	return int16(c.u16())
}

// f2dot14 reads a signed 16-bit fixed-point value with 14 fractional bits.
func (c *cursor) f2dot14() float64 {
	return float64(c.i16()) / 16384
}
