package mstable

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type dataType byte

const (
	dataTypeInvalid dataType = iota
	dataTypeNoCompression
	dataTypeGzip
	dataTypeZip
	dataTypeXZ
	dataTypeZ
	dataTypeBZip2
)

var byteCodeSigs = map[dataType][]byte{
	dataTypeGzip:  {0x1f, 0x8b, 0x08},
	dataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	dataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	dataTypeZ:     {0x1f, 0x9d},
	dataTypeBZip2: {0x42, 0x5a, 0x68},
}

// detectDataType attempts to detect the compression of a stream by checking
// against a set of known signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func detectDataType(r io.Reader) (dataType, error) {
	buff := make([]byte, 6)
	if _, err := r.Read(buff); err != nil {
		return dataTypeInvalid, err
	}

Outer:
	for dt, sig := range byteCodeSigs {
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	return dataTypeNoCompression, nil
}

// Open opens an experiment file for reading, transparently decompressing
// it if needed. CPTAC portal downloads are frequently gzipped; the other
// formats come along for free.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, pfx.Err(err)
	}

	dt, err := detectDataType(f)
	if err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}

	switch dt {
	case dataTypeGzip:
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		return &decompressCloser{r, f}, nil
	case dataTypeZip:
		return &decompressCloser{zipstream.NewReader(f), f}, nil
	case dataTypeBZip2:
		return &decompressCloser{bzip2.NewReader(f), f}, nil
	case dataTypeXZ:
		r, err := xz.NewReader(f, 0)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		return &decompressCloser{r, f}, nil
	case dataTypeZ:
		r, err := zlib.NewReader(f)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		return &decompressCloser{r, f}, nil
	}

	// No known signature. Assume the file is uncompressed.
	return f, nil
}

// decompressCloser closes the underlying file, not just the decompression
// layer.
type decompressCloser struct {
	io.Reader
	f *os.File
}

func (c *decompressCloser) Close() error {
	return c.f.Close()
}
