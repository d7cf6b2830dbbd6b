package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmgilman/go/errors"
	"go.uber.org/zap"
)

// Blob compression values.
const (
	CompressionNone int64 = 0
	CompressionZstd int64 = 1
)

// Upper bound on the buffer reserved ahead of decompression.
const maxPrealloc = 64 << 20

type blob struct {
	id               int64
	compression      int64
	sizeUncompressed int64
	sizeCompressed   int64
	deltaBase        sql.NullInt64
	hash             []byte
	content          []byte
}

// readBlob fetches a blob and returns its decoded, checked contents.
func (w *World) readBlob(ctx context.Context, id int64) ([]byte, error) {
	start := time.Now()

	var b blob
	err := w.db.QueryRowContext(ctx, `
		SELECT blob_id, compression, size_uncompressed, size_compressed, delta_base_id, hash, content
		FROM blobs WHERE blob_id = ?`,
		id,
	).Scan(&b.id, &b.compression, &b.sizeUncompressed, &b.sizeCompressed, &b.deltaBase, &b.hash, &b.content)
	if err == sql.ErrNoRows {
		return nil, errors.WithContext(errors.New(CodeCorruptBlob, "blob is missing"), "blob_id", id)
	}
	if err != nil {
		return nil, errors.WithContext(errors.Wrap(err, errors.CodeDatabase, "failed to read blob"), "blob_id", id)
	}

	data, err := w.decodeBlob(&b)
	if err != nil {
		return nil, errors.WithContext(err, "blob_id", id)
	}

	w.metrics.RecordBlobRead(len(b.content), len(data), time.Since(start))
	w.logger.Debug("blob read",
		zap.Int64("blob_id", id),
		zap.Int("compressed", len(b.content)),
		zap.Int("uncompressed", len(data)),
	)
	return data, nil
}

func (w *World) decodeBlob(b *blob) ([]byte, error) {
	if b.deltaBase.Valid {
		return nil, errors.WithContext(
			errors.New(errors.CodeNotImplemented, "delta compressed blobs are not supported"),
			"delta_base_id", b.deltaBase.Int64,
		)
	}
	if b.sizeUncompressed < 0 {
		return nil, errors.Newf(CodeCorruptBlob, "negative recorded size %d", b.sizeUncompressed)
	}
	if b.sizeUncompressed > w.maxBlob {
		return nil, errors.Newf(CodeCorruptBlob, "recorded size %d exceeds the %d byte blob limit",
			b.sizeUncompressed, w.maxBlob)
	}
	if int64(len(b.content)) != b.sizeCompressed {
		return nil, errors.Newf(CodeCorruptBlob, "stored size %d does not match recorded size %d",
			len(b.content), b.sizeCompressed)
	}

	var data []byte
	switch b.compression {
	case CompressionNone:
		data = b.content
	case CompressionZstd:
		var err error
		data, err = w.decoder.DecodeAll(b.content, make([]byte, 0, min(b.sizeUncompressed, maxPrealloc)))
		if err != nil {
			return nil, errors.Wrap(err, CodeCorruptBlob, "failed to decompress blob")
		}
	default:
		return nil, errors.Newf(CodeCorruptBlob, "unknown compression %d", b.compression)
	}

	if int64(len(data)) != b.sizeUncompressed {
		return nil, errors.Newf(CodeCorruptBlob, "decoded size %d does not match recorded size %d",
			len(data), b.sizeUncompressed)
	}

	if w.verify && !VerifyDigest(data, b.hash) {
		return nil, errors.WithContext(
			errors.New(CodeHashMismatch, "blob digest does not match"),
			"digest", DigestHex(data),
		)
	}
	return data, nil
}
