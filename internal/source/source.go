// Package source opens AGXB fixtures from local files, memory maps and S3, and strips
// a compressed container when one is present.
package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arloliu/agx/compress"
	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/format"
	"github.com/arloliu/agx/internal/options"
)

// Config holds the source settings.
type Config struct {
	useMmap     bool
	compression format.CompressionType
	s3Region    string
	s3Endpoint  string
	s3          ObjectGetter
	logger      zerolog.Logger
}

// Option configures Open.
type Option = options.Option[*Config]

// WithMmap maps local files into memory instead of reading them through a file handle.
func WithMmap(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.useMmap = enabled
	})
}

// WithCompression forces the container format. The zero value detects it from the
// leading bytes.
func WithCompression(typ format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if typ != 0 {
			if _, err := compress.GetCodec(typ); err != nil {
				return err
			}
		}
		c.compression = typ

		return nil
	})
}

// WithS3 sets the region and optional custom endpoint of the S3 client.
func WithS3(region, endpoint string) Option {
	return options.NoError(func(c *Config) {
		c.s3Region = region
		c.s3Endpoint = endpoint
	})
}

// WithObjectGetter replaces the S3 client built from the default AWS configuration.
func WithObjectGetter(getter ObjectGetter) Option {
	return options.NoError(func(c *Config) {
		c.s3 = getter
	})
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = logger
	})
}

// Source is an opened fixture.
type Source struct {
	// Location is the path or URL the source was opened from.
	Location string
	// Compression is the container the bytes were stored in.
	Compression format.CompressionType

	reader  io.Reader
	mapped  []byte
	closers []io.Closer
}

// Reader returns the plain AGXB stream. It implements io.Seeker when the fixture is
// an uncompressed local file or a memory mapped file of any container.
func (s *Source) Reader() io.Reader {
	return s.reader
}

// Read reads from the plain AGXB stream.
func (s *Source) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Close releases every resource of the source, innermost first.
func (s *Source) Close() error {
	var errList []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errList = append(errList, err)
		}
	}
	s.closers = nil

	return errors.Join(errList...)
}

// Open opens location: a local path or an s3://bucket/key URL.
func Open(ctx context.Context, location string, opts ...Option) (*Source, error) {
	cfg := &Config{logger: zerolog.Nop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	src := &Source{Location: location}

	raw, err := openRaw(ctx, cfg, src, location)
	if err != nil {
		return nil, err
	}

	if err := src.unwrap(cfg, raw); err != nil {
		_ = src.Close()
		return nil, err
	}

	cfg.logger.Debug().
		Str("location", location).
		Stringer("compression", src.Compression).
		Msg("opened agxb source")

	return src, nil
}

func openRaw(ctx context.Context, cfg *Config, src *Source, location string) (io.Reader, error) {
	if strings.HasPrefix(location, s3Scheme) {
		body, err := openS3(ctx, cfg, location)
		if err != nil {
			return nil, err
		}
		src.closers = append(src.closers, body)

		return body, nil
	}

	if cfg.useMmap {
		m, err := openMmap(location)
		if err == nil {
			src.closers = append(src.closers, m)
			src.mapped = m.Data()

			return bytes.NewReader(src.mapped), nil
		}
		if !errors.Is(err, errMmapUnsupported) {
			return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
		}
		cfg.logger.Debug().Str("location", location).Msg("mmap unsupported, reading file")
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	src.closers = append(src.closers, f)

	return f, nil
}

// unwrap detects the container of raw and installs the plain reader.
func (s *Source) unwrap(cfg *Config, raw io.Reader) error {
	typ := cfg.compression
	reader := raw

	if typ == 0 {
		head, rest, err := sniff(raw)
		if err != nil {
			return err
		}
		typ = compress.Detect(head)
		reader = rest
	}

	s.Compression = typ
	if typ == format.CompressionNone {
		s.reader = reader
		return nil
	}

	codec, err := compress.GetCodec(typ)
	if err != nil {
		return err
	}

	// A mapped container is already in memory; inflate it whole so the decoder can seek.
	if s.mapped != nil {
		data, err := codec.Decompress(s.mapped)
		if err != nil {
			return fmt.Errorf("%w: %w", errs.ErrIO, err)
		}
		s.reader = bytes.NewReader(data)

		return nil
	}

	plain, err := codec.NewReader(reader)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, plain)
	s.reader = plain

	return nil
}

// sniff returns the leading bytes of r and a reader that still yields them.
// Sources supporting io.ReaderAt are returned unchanged so they stay seekable.
func sniff(r io.Reader) ([]byte, io.Reader, error) {
	head := make([]byte, compress.SniffSize)

	if ra, ok := r.(io.ReaderAt); ok {
		n, err := ra.ReadAt(head, 0)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
		}

		return head[:n], r, nil
	}

	br := bufio.NewReader(r)
	peeked, err := br.Peek(compress.SniffSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return peeked, br, nil
}
