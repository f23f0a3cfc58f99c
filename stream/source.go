package stream

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// Source is the decoder's input surface. A short ReadBytes return signals end
// of stream; it is not an error.
type Source interface {
	// CanRead reports whether at least one more byte is available.
	CanRead() bool

	// ReadBytes returns up to n bytes, short only at end of stream.
	ReadBytes(n int) ([]byte, error)
}

// ByteSource reads from an in-memory byte sequence, optionally starting at an
// offset. Returned slices alias the underlying data and must not be modified.
type ByteSource struct {
	data []byte
	pos  int
}

var _ Source = (*ByteSource)(nil)

// NewByteSource creates a source over data.
func NewByteSource(data []byte) *ByteSource {
	return &ByteSource{data: data}
}

// NewByteSourceAt creates a source over data starting at offset. An offset
// past the end yields an exhausted source.
func NewByteSourceAt(data []byte, offset int) *ByteSource {
	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}

	return &ByteSource{data: data, pos: offset}
}

// CanRead implements Source.
func (s *ByteSource) CanRead() bool {
	return s.pos < len(s.data)
}

// ReadBytes implements Source.
func (s *ByteSource) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		n = 0
	}

	end := s.pos + n
	if end > len(s.data) {
		end = len(s.data)
	}

	out := s.data[s.pos:end]
	s.pos = end

	return out, nil
}

// Position returns the next read offset.
func (s *ByteSource) Position() int {
	return s.pos
}

// FileSource reads from an OS file through a buffered reader.
type FileSource struct {
	f *os.File
	r *bufio.Reader
}

var _ Source = (*FileSource)(nil)

// NewFileSource wraps an open file at its current offset.
func NewFileSource(f *os.File) *FileSource {
	return &FileSource{f: f, r: bufio.NewReader(f)}
}

// NewFileSourceAt seeks the file to offset and wraps it.
func NewFileSourceAt(f *os.File, offset int64) (*FileSource, error) {
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}

	return NewFileSource(f), nil
}

// CanRead implements Source.
func (s *FileSource) CanRead() bool {
	_, err := s.r.Peek(1)
	return err == nil
}

// ReadBytes implements Source. I/O failures other than end of file are
// returned as errors.
func (s *FileSource) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)

	m, err := io.ReadFull(s.r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}

	return buf[:m], nil
}

// Position returns the file offset of the next unread byte.
func (s *FileSource) Position() (int64, error) {
	pos, err := s.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	return pos - int64(s.r.Buffered()), nil
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.f.Close()
}
