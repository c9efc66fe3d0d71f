package catalog

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-genenet/pkg/validation"
)

const (
	// SnapshotMagic opens every snapshot file ("GNCS")
	SnapshotMagic uint32 = 0x474E4353
	// SnapshotVersion is the current snapshot layout
	SnapshotVersion uint8 = 1

	// [Magic:4][Version:1][DataLen:4][Checksum:4]
	snapshotHeaderSize = 13
)

// WriteSnapshot writes c as one snappy-framed JSON stream.
//
// Format: [Magic:4][Version:1][DataLen:4][Checksum:4][Data:N], big-endian,
// where the checksum is the CRC32 of the compressed data.
func WriteSnapshot(w io.Writer, c *Catalog) error {
	var data bytes.Buffer
	zw := snappy.NewBufferedWriter(&data)
	if err := json.NewEncoder(zw).Encode(c.document()); err != nil {
		return NewError("snapshot").Cause(err).Err()
	}
	if err := zw.Close(); err != nil {
		return NewError("snapshot").Cause(err).Err()
	}

	header := make([]byte, snapshotHeaderSize)
	binary.BigEndian.PutUint32(header[0:4], SnapshotMagic)
	header[4] = SnapshotVersion
	binary.BigEndian.PutUint32(header[5:9], uint32(data.Len()))
	binary.BigEndian.PutUint32(header[9:13], crc32.ChecksumIEEE(data.Bytes()))

	if _, err := w.Write(header); err != nil {
		return NewError("snapshot").Cause(err).Err()
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return NewError("snapshot").Cause(err).Err()
	}
	return nil
}

// SaveSnapshot writes a snapshot of c to path
func SaveSnapshot(c *Catalog, path string) error {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, c); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return NewError("snapshot").Path(path).Cause(err).Err()
	}
	return nil
}

// ReadSnapshot decodes a snapshot from r
func ReadSnapshot(r io.Reader, opts ...Option) (*Catalog, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, NewError("restore").Cause(err).Err()
	}
	return decodeSnapshot(bytes.NewReader(buf), int64(len(buf)), opts...)
}

// OpenSnapshot decodes the snapshot file at path straight from a memory map.
// The compressed body is never copied onto the heap.
func OpenSnapshot(path string, opts ...Option) (*Catalog, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, NewError("restore").Path(path).Cause(err).Err()
	}
	defer reader.Close()

	c, err := decodeSnapshot(reader, int64(reader.Len()), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// decodeSnapshot checks the header and checksum of the size-byte snapshot in
// r, then streams the body through the snappy and JSON decoders
func decodeSnapshot(r io.ReaderAt, size int64, opts ...Option) (*Catalog, error) {
	corrupt := func(format string, args ...any) error {
		return NewError("restore").Causef(ErrCorruptSnapshot, format, args...).Err()
	}

	if size < snapshotHeaderSize {
		return nil, corrupt("%d bytes is shorter than the header", size)
	}
	header := make([]byte, snapshotHeaderSize)
	if _, err := r.ReadAt(header, 0); err != nil {
		return nil, NewError("restore").Cause(err).Err()
	}
	if magic := binary.BigEndian.Uint32(header[0:4]); magic != SnapshotMagic {
		return nil, corrupt("bad magic %x", magic)
	}
	if v := header[4]; v != SnapshotVersion {
		return nil, corrupt("unsupported version %d", v)
	}
	n := int64(binary.BigEndian.Uint32(header[5:9]))
	checksum := binary.BigEndian.Uint32(header[9:13])
	if size-snapshotHeaderSize < n {
		return nil, corrupt("truncated: want %d data bytes, have %d", n, size-snapshotHeaderSize)
	}

	crc := crc32.NewIEEE()
	if _, err := io.Copy(crc, io.NewSectionReader(r, snapshotHeaderSize, n)); err != nil {
		return nil, NewError("restore").Cause(err).Err()
	}
	if crc.Sum32() != checksum {
		return nil, corrupt("checksum mismatch")
	}

	var d document
	body := snappy.NewReader(io.NewSectionReader(r, snapshotHeaderSize, n))
	if err := json.NewDecoder(body).Decode(&d); err != nil {
		return nil, corrupt("%v", err)
	}
	if err := validation.Struct(&d); err != nil {
		return nil, NewError("restore").Causef(ErrInvalidPart, "%v", err).Err()
	}
	return d.build(opts...)
}
