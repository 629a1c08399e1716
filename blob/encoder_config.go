package blob

import (
	"github.com/rs/zerolog"

	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/internal/options"
)

// EncoderConfig holds the encoder settings.
type EncoderConfig struct {
	engine endian.EndianEngine
	logger zerolog.Logger
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		engine: endian.NativeEngine(),
		logger: zerolog.Nop(),
	}
}

// EncoderOption is a functional option for configuring an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithByteOrder writes header and record integers with engine instead of the host
// byte order. A nil engine keeps the host order.
func WithByteOrder(engine endian.EndianEngine) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		if engine != nil {
			c.engine = engine
		}
	})
}

// WithLittleEndian writes integers in little-endian order.
func WithLittleEndian() EncoderOption {
	return WithByteOrder(endian.GetLittleEndianEngine())
}

// WithBigEndian writes integers in big-endian order.
func WithBigEndian() EncoderOption {
	return WithByteOrder(endian.GetBigEndianEngine())
}

// WithEncoderLogger sets the logger used for debug output. The default discards.
func WithEncoderLogger(logger zerolog.Logger) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.logger = logger
	})
}
