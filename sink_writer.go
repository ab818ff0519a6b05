package ulog

import "io"

// WriterSink adapts any io.Writer into a Sink. It is always Ready,
// making it the natural choice for a hosted process that just wants
// framed bytes landing on stdout, a file, or a net.Conn — the role
// the original's hosted build fills with a direct write(2) to a
// file descriptor.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink wraps w as a Sink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Send(frame []byte) error {
	_, err := s.w.Write(frame)
	return err
}

func (s *WriterSink) Ready() bool { return true }
