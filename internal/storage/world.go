package storage

import (
	"context"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/jmgilman/go/errors"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/brdbfs/internal/logging"
	"github.com/GriffinCanCode/brdbfs/internal/metrics"
	"github.com/GriffinCanCode/brdbfs/internal/schema"
)

// DefaultMaxBlobSize caps the decoded size of a single blob when
// Options.MaxBlobSize is zero.
const DefaultMaxBlobSize = 256 << 20

// Options configures how a world file is read.
type Options struct {
	Logger       *logging.Logger
	Metrics      *metrics.Metrics
	VerifyHashes bool
	MaxBlobSize  int64
}

// World is an open world file.
type World struct {
	db      *DB
	logger  *logging.Logger
	metrics *metrics.Metrics
	verify  bool
	maxBlob int64
	decoder *zstd.Decoder

	globalOnce sync.Once
	global     *schema.GlobalData
	globalErr  error
}

// Open opens the world file at path. A missing file fails with
// errors.CodeNotFound, a file without the world layout with
// errors.CodeInvalidInput.
func Open(ctx context.Context, path string, opts Options) (*World, error) {
	logger := logging.OrNop(opts.Logger)

	info, err := os.Stat(path)
	if err != nil {
		code := errors.CodeDatabase
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		return nil, errors.WithContext(errors.Wrap(err, code, "failed to open world file"), "path", path)
	}
	if info.IsDir() {
		return nil, errors.WithContext(
			errors.New(errors.CodeInvalidInput, "world file is a directory"),
			"path", path,
		)
	}

	db, err := OpenDB(ctx, path)
	if err != nil {
		return nil, err
	}

	maxBlob := opts.MaxBlobSize
	if maxBlob <= 0 {
		maxBlob = DefaultMaxBlobSize
	}

	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(maxBlob)),
	)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create zstd decoder")
	}

	logger.Debug("world file opened",
		zap.String("path", path),
		zap.String("size", humanize.Bytes(uint64(info.Size()))),
		zap.Bool("verify_hashes", opts.VerifyHashes),
		zap.String("max_blob_size", humanize.Bytes(uint64(maxBlob))),
	)

	return &World{
		db:      db,
		logger:  logger,
		metrics: opts.Metrics,
		verify:  opts.VerifyHashes,
		maxBlob: maxBlob,
		decoder: decoder,
	}, nil
}

// Close releases the database handle
func (w *World) Close() error {
	w.decoder.Close()
	if err := w.db.Close(); err != nil {
		return errors.Wrap(err, errors.CodeDatabase, "failed to close world file")
	}
	return nil
}

// GlobalData decodes the world's global data block. The result, including a
// failure, is cached for the lifetime of the World.
func (w *World) GlobalData() (*schema.GlobalData, error) {
	return w.GlobalDataContext(context.Background())
}

// GlobalDataContext is GlobalData with a context for the first read.
func (w *World) GlobalDataContext(ctx context.Context) (*schema.GlobalData, error) {
	w.globalOnce.Do(func() {
		data, err := w.ReadFileContext(ctx, schema.GlobalDataPath)
		if err != nil {
			w.globalErr = err
			return
		}
		w.global, w.globalErr = schema.DecodeGlobalData(data)
	})
	return w.global, w.globalErr
}
