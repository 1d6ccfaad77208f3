package yinpool

import (
	"bytes"
	"io"
	"os"
)

// BytesSource is a Source over an in-memory YIN document, the common case
// when callers already hold the document (e.g. fetched from a schema
// repository or embedded in a binary).
type BytesSource struct {
	Data []byte
	K    Kind
}

func (s BytesSource) Open() (Reader, error) { return nopCloser{bytes.NewReader(s.Data)}, nil }
func (s BytesSource) Kind() Kind            { return s.K }

// FileSource opens a YIN document lazily from a filesystem path each time
// Open is called, so the same FileSource value may back more than one
// Submit.
type FileSource struct {
	Path string
	K    Kind
}

func (s FileSource) Open() (Reader, error) { return os.Open(s.Path) }
func (s FileSource) Kind() Kind            { return s.K }

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

var (
	_ Source = BytesSource{}
	_ Source = FileSource{}
)
