package main

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Serialize writes data to w in little-endian binary form. data must have a
// fixed size (see binary.Write).
func Serialize(w io.Writer, data any) {
	Check(binary.Write(w, binary.LittleEndian, data))
}

func Deserialize(r io.Reader, data any) {
	Check(binary.Read(r, binary.LittleEndian, data))
}

// SerializeSlice writes the length of s followed by its elements.
func SerializeSlice[T any](w io.Writer, s []T) {
	Serialize(w, int64(len(s)))
	Serialize(w, s)
}

// maxSliceLen limits the length of a slice read from a reader that can't tell
// how much data it has left.
const maxSliceLen = 1 << 24

// DeserializeSlice reads a slice written by SerializeSlice. The length
// prefix is checked against the data left in r (when r has a Len method, like
// bytes.Buffer and bytes.Reader) before anything is allocated.
func DeserializeSlice[T any](r io.Reader, s *[]T) {
	var n int64
	Deserialize(r, &n)

	limit := int64(maxSliceLen)
	if lr, ok := r.(interface{ Len() int }); ok {
		var zero T
		if size := binary.Size(zero); size > 0 {
			limit = int64(lr.Len() / size)
		}
	}
	if n < 0 || n > limit {
		Check(fmt.Errorf("invalid slice length %d, at most %d elements can "+
			"be read", n, limit))
	}

	*s = make([]T, n)
	Deserialize(r, *s)
}

func SerializeString(w io.Writer, s string) {
	SerializeSlice(w, []byte(s))
}

func DeserializeString(r io.Reader, s *string) {
	var b []byte
	DeserializeSlice(r, &b)
	*s = string(b)
}

// Zip compresses data into a zip archive with a single entry.
func Zip(data []byte) []byte {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	f, err := zw.Create("data")
	Check(err)
	_, err = f.Write(data)
	Check(err)
	Check(zw.Close())
	return buf.Bytes()
}

// Unzip returns the contents of the single entry of an archive produced by
// Zip.
func Unzip(data []byte) []byte {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	Check(err)
	if len(zr.File) != 1 {
		Check(fmt.Errorf("expected 1 file in zip archive, found %d", len(zr.File)))
	}
	f, err := zr.File[0].Open()
	Check(err)
	defer func(f io.ReadCloser) { Check(f.Close()) }(f)
	unzipped, err := io.ReadAll(f)
	Check(err)
	return unzipped
}
