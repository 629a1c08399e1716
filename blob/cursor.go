package blob

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/agx/errs"
)

// cursor is a buffered reader that tracks its offset from the start of the stream
// and can seek back when the source allows it.
type cursor struct {
	src    io.Reader
	br     *bufio.Reader
	seeker io.Seeker
	base   int64
	pos    int64
}

func newCursor(src io.Reader, size int) *cursor {
	c := &cursor{
		src: src,
		br:  bufio.NewReaderSize(src, size),
	}

	if s, ok := src.(io.Seeker); ok {
		if base, err := s.Seek(0, io.SeekCurrent); err == nil {
			c.seeker = s
			c.base = base
		}
	}

	return c
}

func (c *cursor) Read(p []byte) (int, error) {
	n, err := c.br.Read(p)
	c.pos += int64(n)

	return n, err
}

// readFull fills p.
func (c *cursor) readFull(p []byte) error {
	_, err := io.ReadFull(c, p)
	return readError(err)
}

// discard skips n bytes.
func (c *cursor) discard(n uint64) error {
	for n > 0 {
		chunk := min(n, 1<<30)
		skipped, err := c.br.Discard(int(chunk))
		c.pos += int64(skipped)
		if err != nil {
			return readError(err)
		}
		n -= chunk
	}

	return nil
}

// seek moves to pos bytes from the start of the stream.
func (c *cursor) seek(pos int64) error {
	if pos == c.pos {
		return nil
	}
	if c.seeker == nil {
		return errs.ErrNotSeekable
	}

	if _, err := c.seeker.Seek(c.base+pos, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seek: %w", errs.ErrIO, err)
	}
	c.br.Reset(c.src)
	c.pos = pos

	return nil
}

func (c *cursor) seekable() bool {
	return c.seeker != nil
}

// readError maps a short read to errs.ErrTruncated and anything else to errs.ErrIO.
func readError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return errs.ErrTruncated
	default:
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
}
