package backend

import (
	"bufio"
	"io"
)

// lineReader only ever returns whole newline-terminated lines. A trailing
// partial line is held back and reported as io.EOF until the rest of it
// arrives, so a CSV file that is still being written never yields a torn
// record.
type lineReader struct {
	r       *bufio.Reader
	partial []byte
	// ready is the unread rest of a complete line that did not fit the
	// caller's buffer.
	ready []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.ready) == 0 {
		line, err := l.r.ReadBytes('\n')
		if err != nil {
			l.partial = append(l.partial, line...)
			return 0, io.EOF
		}
		l.ready = append(l.partial, line...)
		l.partial = nil
	}
	n := copy(b, l.ready)
	l.ready = l.ready[n:]
	return n, nil
}

// Pending returns the partial line held back so far.
func (l *lineReader) Pending() []byte {
	return l.partial
}
