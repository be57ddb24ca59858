package utils

import (
	"fmt"
	"hash"
	"io"

	_ "unsafe"
)

// These functions allow defeat of the escape analysis to prevent heap allocations.
// It is the caller responsibility to ensure this is safe

func _read(reader io.Reader, buf []byte) (n int, err error) {
	return reader.Read(buf)
}

func _readFull(reader io.Reader, buf []byte) (n int, err error) {
	return io.ReadFull(reader, buf)
}

func _write(writer io.Writer, buf []byte) (n int, err error) {
	return writer.Write(buf)
}

func _sum(hasher hash.Hash, buf []byte) []byte {
	return hasher.Sum(buf)
}

func _reset(hasher hash.Hash) {
	hasher.Reset()
}

func _appendf(buf []byte, format string, v ...any) []byte {
	return fmt.Appendf(buf, format, v...)
}

func _sprintf(format string, v ...any) string {
	return fmt.Sprintf(format, v...)
}

//go:noescape
//go:linkname ReadNoEscape git.gammaspectra.live/Haven/consensus/utils._read
func ReadNoEscape(reader io.Reader, buf []byte) (n int, err error)

//go:noescape
//go:linkname ReadFullNoEscape git.gammaspectra.live/Haven/consensus/utils._readFull
func ReadFullNoEscape(reader io.Reader, buf []byte) (n int, err error)

//go:noescape
//go:linkname WriteNoEscape git.gammaspectra.live/Haven/consensus/utils._write
func WriteNoEscape(writer io.Writer, buf []byte) (n int, err error)

//go:noescape
//go:linkname SumNoEscape git.gammaspectra.live/Haven/consensus/utils._sum
func SumNoEscape(hasher hash.Hash, buf []byte) []byte

//go:noescape
//go:linkname ResetNoEscape git.gammaspectra.live/Haven/consensus/utils._reset
func ResetNoEscape(hasher hash.Hash)

//go:noescape
//go:linkname AppendfNoEscape git.gammaspectra.live/Haven/consensus/utils._appendf
func AppendfNoEscape(buf []byte, format string, v ...any) []byte

//go:noescape
//go:linkname SprintfNoEscape git.gammaspectra.live/Haven/consensus/utils._sprintf
func SprintfNoEscape(format string, v ...any) string
