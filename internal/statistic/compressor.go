package statistic

import (
	"fmt"
	"github.com/klauspost/compress/zstd"
	"grailhunter/internal/statistic/interfaces"
)

// Snapshots hold counters and client bitmaps for a handful of endpoints;
// anything decoding past this is corrupt.
const defaultMaxSnapshotSize = 64 << 20

type CompressorOption func(*compressorOptions)

type compressorOptions struct {
	level   zstd.EncoderLevel
	maxSize uint64
}

func WithCompressionLevel(level zstd.EncoderLevel) CompressorOption {
	return func(o *compressorOptions) { o.level = level }
}

func WithMaxSnapshotSize(n uint64) CompressorOption {
	return func(o *compressorOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

type SnapshotCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (c *SnapshotCompressor) Compress(val []byte) ([]byte, error) {
	return c.encoder.EncodeAll(val, nil), nil
}

func (c *SnapshotCompressor) Decompress(val []byte) ([]byte, error) {
	out, err := c.decoder.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return out, nil
}

func (c *SnapshotCompressor) Close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}

// NewZstdCompressor builds a single-goroutine encoder/decoder pair; the
// scheduler is the only caller and never compresses concurrently.
func NewZstdCompressor(opts ...CompressorOption) (interfaces.CompressorInterface, error) {
	o := compressorOptions{level: zstd.SpeedBetterCompression, maxSize: defaultMaxSnapshotSize}
	for _, opt := range opts {
		opt(&o)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(o.level), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(o.maxSize))
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &SnapshotCompressor{encoder: encoder, decoder: decoder}, nil
}

// ProvideCompressor is the injector entry point; the cleanup releases the
// zstd buffers on shutdown.
func ProvideCompressor() (interfaces.CompressorInterface, func(), error) {
	c, err := NewZstdCompressor()
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}
