package blob

import (
	"github.com/rs/zerolog"

	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/format"
	"github.com/arloliu/agx/internal/options"
	"github.com/arloliu/agx/internal/pool"
)

// DecoderConfig holds the decoder settings.
type DecoderConfig struct {
	host       endian.EndianEngine
	registry   format.Registry
	logger     zerolog.Logger
	bufferSize int
}

func newDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		host:       endian.NativeEngine(),
		registry:   format.DefaultRegistry(),
		logger:     zerolog.Nop(),
		bufferSize: pool.SlotDefaultSize,
	}
}

// DecoderOption is a functional option for configuring a Decoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithHostByteOrder makes the decoder behave as if it ran on a host of the given byte
// order. It is used to exercise byte swapping on a single machine.
func WithHostByteOrder(engine endian.EndianEngine) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		if engine != nil {
			c.host = engine
		}
	})
}

// WithDecoderRegistry sets the registry of stores built by ReadStore.
func WithDecoderRegistry(registry format.Registry) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if registry == nil {
			return errs.ErrNilRegistry
		}
		c.registry = registry

		return nil
	})
}

// WithDecoderLogger sets the logger used for debug output. The default discards.
func WithDecoderLogger(logger zerolog.Logger) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.logger = logger
	})
}

// WithReadBufferSize sets the size of the read-ahead buffer. Values below 16 are
// raised to 16.
func WithReadBufferSize(size int) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.bufferSize = max(size, 16)
	})
}
