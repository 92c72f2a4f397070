package serialization

import (
	"compress/gzip"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Decoder is an interface that matches gob.Decoder and json.Decoder
type Decoder interface {
	// Decode extracts an object from the stream
	Decode(interface{}) error
}

// Decode loads a single object from a file into obj, which must be a pointer. If the path
// ends with .gz then the contents will be decompressed. The encoding is then determined by the
// remaining file extension, which can be .json or .gob.
//
//   var weights linear.Weights
//   err := serialization.Decode("models/deepset_linear.gob.gz", &weights)
func Decode(path string, obj interface{}) error {
	r, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error loading %s: %v", path, err)
	}
	defer r.Close()
	return decodeAs(r, path, obj)
}

// decodeAs is like Decode but uses the provided path to determine the compression and
// encoding used in the stream.
func decodeAs(r io.Reader, path string, obj interface{}) error {
	inpath := path
	path, compressed := format(path)
	if compressed {
		rd, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("error loading %s: %v", inpath, err)
		}
		defer rd.Close()
		r = rd
	}

	var d Decoder
	switch {
	case strings.HasSuffix(path, ".json"):
		d = json.NewDecoder(r)
	case strings.HasSuffix(path, ".gob"):
		d = gob.NewDecoder(r)
	default:
		return fmt.Errorf("could not find decoder for %s", inpath)
	}

	if err := d.Decode(obj); err != nil {
		return fmt.Errorf("error decoding %s: %v", inpath, err)
	}
	return nil
}
