package storage

import (
	"context"
	"strconv"

	logging "github.com/ipfs/go-log"
	"github.com/meppu/eight/errs"
	"github.com/meppu/eight/storage/shard"
)

var defaultFilesystemLog = logging.Logger("eight/storage/filesystem")

// FilesystemOption configures a Filesystem backend at construction time.
type FilesystemOption func(*Filesystem)

// WithLogger overrides the logger a Filesystem backend reports decrement
// underflow to (at debug level), in place of the package-scoped default. Useful for routing multiple embedded backends to distinct
// logger names, or to a test-local logger.
func WithLogger(log logging.EventLogger) FilesystemOption {
	return func(f *Filesystem) {
		f.log = log
	}
}

// Filesystem is a Storage backend that shards keys into a directory tree
// rooted at a path on disk. It acquires no in-process lock of its own:
// the filesystem is the concurrency arbiter, and two concurrent Set calls
// on the same key resolve by last-writer-wins at the OS level.
type Filesystem struct {
	root string
	log  logging.EventLogger
}

// NewFilesystem constructs a Filesystem backend rooted at dir.
func NewFilesystem(dir string, opts ...FilesystemOption) *Filesystem {
	f := &Filesystem{root: dir, log: defaultFilesystemLog}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Root returns the directory this backend is rooted at.
func (f *Filesystem) Root() string {
	return f.root
}

func (f *Filesystem) Set(_ context.Context, key, value string) error {
	path, err := shard.EncodePath(f.root, key)
	if err != nil {
		return err
	}
	return shard.Write(path, value)
}

func (f *Filesystem) Get(_ context.Context, key string) (string, error) {
	path, err := shard.EncodePath(f.root, key)
	if err != nil {
		return "", err
	}
	return shard.Read(path)
}

func (f *Filesystem) Delete(_ context.Context, key string) error {
	path, err := shard.EncodePath(f.root, key)
	if err != nil {
		return err
	}
	return shard.Delete(path)
}

func (f *Filesystem) Exists(_ context.Context, key string) (bool, error) {
	path, err := shard.EncodePath(f.root, key)
	if err != nil {
		return false, err
	}
	return shard.Exists(path)
}

func (f *Filesystem) Increment(ctx context.Context, key string, n uint64) (uint64, error) {
	return f.crement(ctx, key, n, true)
}

func (f *Filesystem) Decrement(ctx context.Context, key string, n uint64) (uint64, error) {
	return f.crement(ctx, key, n, false)
}

func (f *Filesystem) crement(_ context.Context, key string, n uint64, up bool) (uint64, error) {
	path, err := shard.EncodePath(f.root, key)
	if err != nil {
		return 0, err
	}

	raw, err := shard.Read(path)
	if err != nil {
		return 0, err
	}

	current, parseErr := strconv.ParseUint(raw, 10, 64)
	if parseErr != nil {
		return 0, errs.New(errs.UIntParseFail)
	}

	var updated uint64
	if up {
		updated = current + n
	} else {
		if n > current {
			f.log.Debugf("decrement underflow: key=%q current=%d n=%d", key, current, n)
			return 0, errs.New(errs.UIntParseFail)
		}
		updated = current - n
	}

	if err := shard.Write(path, strconv.FormatUint(updated, 10)); err != nil {
		return 0, err
	}
	return updated, nil
}

func (f *Filesystem) Search(_ context.Context, prefix string) ([]string, error) {
	return shard.Search(f.root, prefix)
}

func (f *Filesystem) Flush(_ context.Context) error {
	return shard.Flush(f.root)
}
