package dataset

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"
)

// WriteSplit writes rows as a parquet file at path, creating parent directories
func WriteSplit(fs afero.Fs, path string, rows []Row) (err error) {
	if err := fs.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Wrapf(err, "unable to create dir for %s", path)
	}
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	defer errors.Defer(&err, f.Close)

	if err := parquet.Write(f, rows); err != nil {
		return errors.Wrapf(err, "error writing %s", path)
	}
	return nil
}

// ReadCSV parses rows from a CSV with a user_input,label header
func ReadCSV(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrapf(err, "error parsing csv")
	}
	return rows, nil
}
