package stream

import (
	"bufio"
	"io"
	"os"

	"github.com/arloliu/keyframe/internal/pool"
)

// Sink is the encoder's output surface.
type Sink interface {
	// WriteBytes writes p in full or returns an error.
	WriteBytes(p []byte) error
}

// ByteSink collects encoded output in a pooled in-memory buffer.
//
// Call Finish to return the buffer to the pool once the bytes have been
// consumed; the sink is unusable afterwards.
type ByteSink struct {
	buf *pool.ByteBuffer
}

var _ Sink = (*ByteSink)(nil)

// NewByteSink creates an in-memory sink.
func NewByteSink() *ByteSink {
	return &ByteSink{buf: pool.GetStreamBuffer()}
}

// WriteBytes implements Sink.
func (s *ByteSink) WriteBytes(p []byte) error {
	s.buf.MustWrite(p)
	return nil
}

// Bytes returns the accumulated output. The slice is valid until Finish and
// must not be modified.
func (s *ByteSink) Bytes() []byte {
	return s.buf.Bytes()
}

// Len returns the number of bytes accumulated.
func (s *ByteSink) Len() int {
	return s.buf.Len()
}

// Finish releases the pooled buffer. The sink must not be used afterwards.
func (s *ByteSink) Finish() {
	pool.PutStreamBuffer(s.buf)
	s.buf = nil
}

// FileSink writes encoded output to an OS file through a buffered writer.
type FileSink struct {
	f *os.File
	w *bufio.Writer
}

var _ Sink = (*FileSink)(nil)

// NewFileSink wraps an open file. The sink owns buffering but not the file's
// lifetime until Close is called.
func NewFileSink(f *os.File) *FileSink {
	return &FileSink{f: f, w: bufio.NewWriter(f)}
}

// WriteBytes implements Sink.
func (s *FileSink) WriteBytes(p []byte) error {
	_, err := s.w.Write(p)
	return err
}

// Flush pushes buffered bytes to the file.
func (s *FileSink) Flush() error {
	return s.w.Flush()
}

// Position returns the file offset the next write lands at.
func (s *FileSink) Position() (int64, error) {
	if err := s.w.Flush(); err != nil {
		return 0, err
	}

	return s.f.Seek(0, io.SeekCurrent)
}

// Seek flushes buffered bytes and repositions the file.
func (s *FileSink) Seek(offset int64, whence int) (int64, error) {
	if err := s.w.Flush(); err != nil {
		return 0, err
	}

	return s.f.Seek(offset, whence)
}

// Close flushes and closes the file. The file is closed even when the flush
// fails; the first error wins.
func (s *FileSink) Close() error {
	flushErr := s.w.Flush()
	closeErr := s.f.Close()

	if flushErr != nil {
		return flushErr
	}

	return closeErr
}
