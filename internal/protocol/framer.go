// ABOUTME: Line framer for the inbound stream: one newline-terminated message per call
// ABOUTME: Distinguishes end of stream from empty lines and recovers from oversized lines

package protocol

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"
)

// DefaultMaxLineBytes caps a single inbound line.
const DefaultMaxLineBytes = 10 * 1024 * 1024

const readBufferSize = 64 * 1024

// LineReader reads newline-delimited messages. It performs no parsing and
// never retries: every failure is returned to the caller as it happens.
type LineReader struct {
	r    *bufio.Reader
	max  int
	done bool
}

// NewLineReader wraps r. A non-positive maxLineBytes selects
// DefaultMaxLineBytes.
func NewLineReader(r io.Reader, maxLineBytes int) *LineReader {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	return &LineReader{
		r:   bufio.NewReaderSize(r, readBufferSize),
		max: maxLineBytes,
	}
}

// ReadNext returns the next line without its "\n" or "\r\n" terminator.
// It returns io.EOF once the stream ends with nothing left to deliver; a
// final line without a terminator is still returned first. I/O failures and
// oversized or non-UTF-8 lines come back as *ReadError.
func (lr *LineReader) ReadNext() ([]byte, error) {
	if lr.done {
		return nil, io.EOF
	}

	var line []byte
	tooLong := false
	for {
		chunk, err := lr.r.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
			// Room for a pending "\r\n" that is not part of the content.
			if len(line) > lr.max+2 {
				tooLong, line = true, nil
			}
		}

		switch {
		case err == nil:
			return lr.finish(line, tooLong)
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			lr.done = true
			if !tooLong && len(line) == 0 {
				return nil, io.EOF
			}
			return lr.finish(line, tooLong)
		default:
			return nil, &ReadError{Err: err}
		}
	}
}

func (lr *LineReader) finish(line []byte, tooLong bool) ([]byte, error) {
	content := trimEOL(line)
	if tooLong || len(content) > lr.max {
		return nil, &ReadError{Err: ErrLineTooLong}
	}
	if !utf8.Valid(content) {
		return nil, &ReadError{Err: ErrInvalidUTF8}
	}
	if content == nil {
		content = []byte{}
	}
	return content, nil
}

func trimEOL(line []byte) []byte {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
		if n > 0 && line[n-1] == '\r' {
			n--
		}
	}
	return line[:n]
}
