package serialization

import (
	"compress/gzip"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Encode writes the object to the path, using the format specified by the file
// extension, which can be .json or .gob. The path may additionally have a .gz
// suffix, in which case the stream will be compressed. Missing parent directories
// are created.
func Encode(path string, obj interface{}) (err error) {
	enc, err := NewEncoder(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := enc.Close(); err == nil {
			err = cerr
		}
	}()
	return enc.Encode(obj)
}

// Encoder is an interface that matches gob.Encoder and json.Encoder
type Encoder interface {
	// Encoder adds an item to the stream
	Encode(interface{}) error
}

// EncodeCloser is an encoder that can also close its underlying stream
type EncodeCloser struct {
	encoder Encoder
	closers []io.Closer
}

// Encode writes an object to the underlying stream
func (e *EncodeCloser) Encode(x interface{}) error {
	return e.encoder.Encode(x)
}

// Close closes the underlying stream
func (e *EncodeCloser) Close() error {
	var closeErr error
	// We must close in reverse order
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

// NewEncoder opens the specified path and returns an encoder that writes in the format
// specified by the file extension.
func NewEncoder(path string) (*EncodeCloser, error) {
	inpath := path
	plain, compressed := format(path)

	var e func(io.Writer) Encoder
	switch {
	case strings.HasSuffix(plain, ".json"):
		e = func(w io.Writer) Encoder {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc
		}
	case strings.HasSuffix(plain, ".gob"):
		e = func(w io.Writer) Encoder { return gob.NewEncoder(w) }
	default:
		return nil, fmt.Errorf("could not find encoder for %s", inpath)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}

	var w io.WriteCloser
	w, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	closers := []io.Closer{w}

	if compressed {
		w = gzip.NewWriter(w)
		closers = append(closers, w)
	}

	return &EncodeCloser{
		encoder: e(w),
		closers: closers,
	}, nil
}

// format strips the compression suffix from path
func format(path string) (string, bool) {
	if strings.HasSuffix(path, ".gz") {
		return strings.TrimSuffix(path, ".gz"), true
	}
	return path, false
}
