package cache

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/spf13/afero"

	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Disk keeps one file per key in a flat directory.  Entry age is the file
// modification time, so a rewrite restarts the retention window.
type Disk struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// NewDisk creates dir on fs if needed.
func NewDisk(fs afero.Fs, dir string) (*Disk, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to create cache directory").
			WithDetail(dir)
	}
	return &Disk{fs: fs, dir: dir, now: time.Now}, nil
}

func (d *Disk) Name() string { return "disk" }

func (d *Disk) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", errors.New(errors.ErrCodeValidation, "invalid cache key").WithDetail(key)
	}
	return filepath.Join(d.dir, key), nil
}

func (d *Disk) Get(_ context.Context, key string) ([]byte, error) {
	p, err := d.path(key)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(d.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheMiss
		}
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to read cache entry")
	}
	return data, nil
}

// Put writes to a temporary file in the same directory and renames it over
// the entry, so readers never observe a partial write.
func (d *Disk) Put(_ context.Context, key string, data []byte) error {
	p, err := d.path(key)
	if err != nil {
		return err
	}
	tmp, err := afero.TempFile(d.fs, d.dir, "."+key+".tmp-*")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to create temp file")
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = d.fs.Remove(name)
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to write cache entry")
	}
	if err := tmp.Close(); err != nil {
		_ = d.fs.Remove(name)
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to close cache entry")
	}
	if err := d.fs.Rename(name, p); err != nil {
		_ = d.fs.Remove(name)
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to commit cache entry")
	}
	return nil
}

// Sweep removes regular files older than maxAge, abandoned temp files
// included.
func (d *Disk) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	infos, err := afero.ReadDir(d.fs, d.dir)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeCacheError, "failed to list cache directory")
	}
	cutoff := d.now().Add(-maxAge)
	removed := 0
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if !info.Mode().IsRegular() || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := d.fs.Remove(filepath.Join(d.dir, info.Name())); err != nil && !os.IsNotExist(err) {
			return removed, errors.Wrap(err, errors.ErrCodeCacheError, "failed to remove expired entry").
				WithDetail(info.Name())
		}
		removed++
	}
	return removed, nil
}

//Personal.AI order the ending
