package dataset

import (
	"os"
	"path/filepath"

	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/kiteco/deepset/kite-golib/kitelog"
	"github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"
)

// Ext is the file extension of split files
const Ext = ".parquet"

// Loader reads the splits of one dataset stored as <Dir>/<Name>/<split>.parquet
type Loader struct {
	Fs     afero.Fs
	Dir    string
	Name   string
	Logger kitelog.Interface
}

// NewLoader returns a loader reading from the OS filesystem
func NewLoader(dir, name string, logger kitelog.Interface) *Loader {
	return &Loader{
		Fs:     afero.NewOsFs(),
		Dir:    dir,
		Name:   name,
		Logger: logger,
	}
}

// Path of the file holding split
func (l *Loader) Path(split Split) string {
	return filepath.Join(l.Dir, l.Name, string(split)+Ext)
}

// Load reads split into a table. It returns a nil table for an invalid split
// (ErrInvalidArgument, no file access) or a missing split file (ErrNotFound),
// after logging the condition.
func (l *Loader) Load(split Split) (*Table, error) {
	if !split.Valid() {
		l.logger().Printf("tried to load an invalid split: %q", split)
		return nil, errors.InvalidArgumentf("invalid split %q", split)
	}

	path := l.Path(split)
	f, err := l.Fs.Open(path)
	if os.IsNotExist(err) {
		l.logger().Printf("%s %s split not found when loading dataset", l.Name, split)
		return nil, errors.NotFoundf("%s: %s", path, err)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to stat %s", path)
	}

	rows, err := parquet.Read[Row](f, fi.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s", path)
	}
	return NewTable(rows), nil
}

func (l *Loader) logger() kitelog.Interface {
	if l.Logger == nil {
		return kitelog.Discard
	}
	return l.Logger
}
