package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/cgaebel/hybrid"
)

// Compression selects the block compression applied to snapshot payloads.
type Compression uint8

const (
	// CompressionNone stores the payload raw.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

var (
	// ErrInvalidSnapshot is returned when a snapshot header or payload is
	// malformed or truncated.
	ErrInvalidSnapshot = errors.New("codec: invalid snapshot")
	// ErrUnknownCompression is returned for an unrecognized compression type.
	ErrUnknownCompression = errors.New("codec: unknown compression")
	// ErrCodecMismatch is returned when a snapshot was written by a
	// different element codec than the one decoding it.
	ErrCodecMismatch = errors.New("codec: element codec mismatch")
)

// Snapshot layout:
//
//	magic "HARR" (4) | version (1) | compression (1) | codec name len (1) |
//	codec name | element count (uint64 LE) |
//	uncompressed size (uint32 LE) | compressed size (uint32 LE; 0 = raw) |
//	payload block
//
// The payload is every element in logical order, each record prefixed with
// its uvarint length.
var magic = [4]byte{'H', 'A', 'R', 'R'}

const (
	version         = 1
	blockHeaderSize = 8
)

// ZSTD encoder/decoder pools; construction is expensive relative to a
// typical snapshot.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Encode writes a snapshot of a's logical sequence to w. Elements are
// encoded in logical order (inline segment first, then heap segment), so
// decoding reproduces the same sequence regardless of how the source was
// split across segments.
func Encode[T any](w io.Writer, a *hybrid.Array[T], c ElementCodec[T], compression Compression) error {
	var payload bytes.Buffer
	var scratch [binary.MaxVarintLen64]byte
	var marshalErr error
	a.ForEach(func(_ int, v *T) bool {
		b, err := c.MarshalElement(v)
		if err != nil {
			marshalErr = err
			return false
		}
		n := binary.PutUvarint(scratch[:], uint64(len(b)))
		payload.Write(scratch[:n])
		payload.Write(b)
		return true
	})
	if marshalErr != nil {
		return fmt.Errorf("codec: marshal element: %w", marshalErr)
	}

	block, err := compressBlock(payload.Bytes(), compression)
	if err != nil {
		return err
	}

	name := c.Name()
	if len(name) == 0 || len(name) > 255 {
		return fmt.Errorf("%w: codec name %q", ErrInvalidSnapshot, name)
	}
	header := make([]byte, 0, 7+len(name)+8)
	header = append(header, magic[:]...)
	header = append(header, version, byte(compression), byte(len(name)))
	header = append(header, name...)
	header = binary.LittleEndian.AppendUint64(header, uint64(a.Len()))

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(block)
	return err
}

// Decode reads a snapshot from r and appends every element into dst in
// logical order. The destination's construction (inline storage, hooks,
// capacity ceiling) is the caller's business; Decode only appends.
func Decode[T any](r io.Reader, dst *hybrid.Array[T], c ElementCodec[T]) error {
	var fixed [7]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return fmt.Errorf("%w: short header: %w", ErrInvalidSnapshot, err)
	}
	if !bytes.Equal(fixed[:4], magic[:]) {
		return fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}
	if fixed[4] != version {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, fixed[4])
	}
	compression := Compression(fixed[5])

	name := make([]byte, fixed[6])
	if _, err := io.ReadFull(r, name); err != nil {
		return fmt.Errorf("%w: short codec name: %w", ErrInvalidSnapshot, err)
	}
	if string(name) != c.Name() {
		return fmt.Errorf("%w: snapshot written with %q, decoding with %q", ErrCodecMismatch, name, c.Name())
	}

	var countBuf [8]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return fmt.Errorf("%w: short element count: %w", ErrInvalidSnapshot, err)
	}
	count := binary.LittleEndian.Uint64(countBuf[:])

	var blockHeader [blockHeaderSize]byte
	if _, err := io.ReadFull(r, blockHeader[:]); err != nil {
		return fmt.Errorf("%w: short block header: %w", ErrInvalidSnapshot, err)
	}
	uncompressedSize := binary.LittleEndian.Uint32(blockHeader[0:])
	compressedSize := binary.LittleEndian.Uint32(blockHeader[4:])

	stored := compressedSize
	if stored == 0 {
		stored = uncompressedSize
	}
	raw := make([]byte, stored)
	if _, err := io.ReadFull(r, raw); err != nil {
		return fmt.Errorf("%w: short payload: %w", ErrInvalidSnapshot, err)
	}

	data, err := decompressBlock(raw, uncompressedSize, compressedSize, compression)
	if err != nil {
		return err
	}

	for i := uint64(0); i < count; i++ {
		l, n := binary.Uvarint(data)
		if n <= 0 || uint64(len(data)-n) < l {
			return fmt.Errorf("%w: truncated element %d", ErrInvalidSnapshot, i)
		}
		var v T
		if err := c.UnmarshalElement(data[n:n+int(l)], &v); err != nil {
			return fmt.Errorf("codec: unmarshal element %d: %w", i, err)
		}
		data = data[n+int(l):]
		if err := dst.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// compressBlock compresses the payload and prepends the block header.
// When compression does not pay for itself (ratio > 0.9) the payload is
// stored raw, signalled by a zero compressed size.
func compressBlock(data []byte, compression Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch compression {
	case CompressionNone:
		// Stored raw below.
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		compressed = compressZSTD(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(result[4:], 0)
		copy(result[blockHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	copy(result[blockHeaderSize:], compressed)
	return result, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func compressZSTD(data []byte) []byte {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)
	return enc.EncodeAll(data, nil)
}

func decompressBlock(stored []byte, uncompressedSize, compressedSize uint32, compression Compression) ([]byte, error) {
	if compressedSize == 0 {
		return stored, nil
	}

	result := make([]byte, uncompressedSize)
	switch compression {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(stored, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrInvalidSnapshot)
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		decoded, err := dec.DecodeAll(stored, result[:0])
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrInvalidSnapshot)
		}
		return decoded, nil

	case CompressionNone:
		return nil, fmt.Errorf("%w: compressed block in an uncompressed snapshot", ErrInvalidSnapshot)

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
}
