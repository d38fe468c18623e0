// Package fileio materializes reference files in memory.
//
// Plain files are memory-mapped read-only; files that start with the gzip
// magic bytes are decompressed into a heap buffer. The mapping is released
// by Close on every path, so callers must not retain Bytes after Close.
package fileio

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/logging"
)

var gzipMagic = []byte{0x1f, 0x8b}

// File is an in-memory view of a reference file.
type File struct {
	path string
	data []byte
	mm   mmap.MMap
}

// Open maps path into memory, decompressing gzip content transparently.
func Open(ctx context.Context, path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return nil, errors.WrapIO("stat", path, err)
	}
	if info.IsDir() {
		return nil, errors.NewIOError("open", path, errors.New("is a directory"))
	}

	f := &File{path: path}

	// mmap rejects zero-length files
	if info.Size() == 0 {
		f.data = []byte{}
		return f, nil
	}

	mm, err := mmap.Map(fh, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.WrapIO("map", path, err)
	}

	if !bytes.HasPrefix(mm, gzipMagic) {
		f.mm = mm
		f.data = mm
		logging.FromContext(ctx).Trace().
			Str("path", path).
			Int64("bytes", info.Size()).
			Msg("Mapped reference file")
		return f, nil
	}

	data, err := gunzip(mm)
	if uerr := mm.Unmap(); uerr != nil && err == nil {
		err = uerr
	}
	if err != nil {
		return nil, errors.WrapIO("decompress", path, err)
	}
	f.data = data
	logging.FromContext(ctx).Trace().
		Str("path", path).
		Int64("compressed_bytes", info.Size()).
		Int("bytes", len(data)).
		Msg("Decompressed reference file")
	return f, nil
}

func gunzip(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// Bytes returns the file contents. The slice is invalid after Close.
func (f *File) Bytes() []byte {
	return f.data
}

// Close releases the mapping. It is safe to call more than once.
func (f *File) Close() error {
	f.data = nil
	if f.mm == nil {
		return nil
	}
	mm := f.mm
	f.mm = nil
	return errors.WrapIO("unmap", f.path, mm.Unmap())
}

// With opens path, calls fn with its contents, and closes it whatever fn returns.
func With(ctx context.Context, path string, fn func(data []byte) error) (err error) {
	f, err := Open(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(f.Bytes())
}
