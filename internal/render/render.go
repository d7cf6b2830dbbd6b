package render

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jmgilman/go/errors"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/brdbfs/internal/logging"
	"github.com/GriffinCanCode/brdbfs/internal/schema"
)

// Reader is the storage a Renderer pulls bytes from.
type Reader interface {
	ReadFileContext(ctx context.Context, path string) ([]byte, error)
	GlobalDataContext(ctx context.Context) (*schema.GlobalData, error)
}

// DecodeFunc decodes schema bytes with the world's global data.
type DecodeFunc func(b []byte, gd *schema.GlobalData) (*schema.Schema, error)

// Renderer renders world file entries.
type Renderer struct {
	reader Reader
	raw    io.Writer
	format schema.Format
	decode DecodeFunc
	logger *logging.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFormat sets how schemas are printed.
func WithFormat(f schema.Format) Option {
	return func(r *Renderer) { r.format = f }
}

// WithDecoder replaces the schema decoder.
func WithDecoder(fn DecodeFunc) Option {
	return func(r *Renderer) { r.decode = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// New creates a Renderer reading from reader. Raw (.mps) content is written
// to raw.
func New(reader Reader, raw io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		reader: reader,
		raw:    raw,
		format: schema.FormatText,
		decode: schema.Decode,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.OrNop(r.logger)
	return r
}

// Render produces the output for path. Raw content goes straight to the raw
// writer and the returned text is empty.
func (r *Renderer) Render(path string) (string, error) {
	return r.RenderContext(context.Background(), path)
}

// RenderContext is Render with a context passed down to the Reader.
func (r *Renderer) RenderContext(ctx context.Context, path string) (string, error) {
	kind, suffix, err := Classify(path)
	if err != nil {
		return "", err
	}

	r.logger.Debug("rendering", zap.String("path", path), zap.Stringer("kind", kind))

	var text string
	switch kind {
	case KindSchema:
		text, err = r.renderSchema(ctx, path)
	case KindJSON:
		text, err = r.renderJSON(ctx, path)
	case KindMPS:
		err = r.renderRaw(ctx, path)
	default:
		err = errors.Newf(CodeUnsupportedFileType, "unsupported file type %q", suffix)
	}
	if err != nil {
		err = errors.WithContext(err, "suffix", suffix)
		return "", errors.WithContext(err, "path", path)
	}
	return text, nil
}

func (r *Renderer) read(ctx context.Context, path string) ([]byte, error) {
	data, err := r.reader.ReadFileContext(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, CodeStorageReadFailed, "failed to read file")
	}
	return data, nil
}

func (r *Renderer) renderSchema(ctx context.Context, path string) (string, error) {
	data, err := r.read(ctx, path)
	if err != nil {
		return "", err
	}

	gd, err := r.reader.GlobalDataContext(ctx)
	if err != nil {
		return "", errors.Wrap(err, CodeGlobalDataUnavailable, "failed to load global data")
	}

	s, err := r.decode(data, gd)
	if err != nil {
		return "", errors.Wrap(err, CodeSchemaDecodeFailed, "failed to decode schema")
	}

	text, err := s.Encode(r.format)
	if err != nil {
		return "", errors.Wrap(err, CodeSchemaDecodeFailed, "failed to encode schema")
	}
	return text, nil
}

func (r *Renderer) renderJSON(ctx context.Context, path string) (string, error) {
	data, err := r.read(ctx, path)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		return "", errors.WithContextMap(
			errors.New(CodeInvalidEncoding, "file is not valid UTF-8"),
			map[string]interface{}{
				"charset":   detectCharset(data),
				"mime_type": mimetype.Detect(data).String(),
			},
		)
	}
	return string(data), nil
}

func (r *Renderer) renderRaw(ctx context.Context, path string) error {
	data, err := r.read(ctx, path)
	if err != nil {
		return err
	}
	if _, err := r.raw.Write(data); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to write raw output")
	}
	return nil
}

// detectCharset guesses the encoding of data, for diagnostics only.
func detectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "unknown"
	}
	return strings.ToLower(result.Charset)
}
