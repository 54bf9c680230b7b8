package crx

import (
	"bytes"
	"encoding/binary"
)

// Magic is the 4-byte tag at the start of every CRX container.
var Magic = [4]byte{'C', 'r', '2', '4'}

// Version is the container format version. Only the two released
// layouts exist; anything else is rejected during parsing, so a switch
// over Version may be exhaustive.
type Version uint32

const (
	// VersionCRX2 is the legacy layout with raw public key and
	// signature blocks following the fixed header.
	VersionCRX2 Version = 2
	// VersionCRX3 is the current layout with a single
	// protobuf-encoded header block of declared size.
	VersionCRX3 Version = 3
)

// Fixed header sizes up to and including the length fields.
const (
	headerSizeCRX2 = 16 // magic + version + pubkey len + signature len
	headerSizeCRX3 = 12 // magic + version + header len
)

// Header is a parsed view over a CRX container buffer. It is not a
// full decode: for CRX3 the protobuf header block is opaque and only
// its declared length is recorded.
type Header struct {
	Version Version

	// PubKeyLen and SigLen are set for VersionCRX2 only.
	PubKeyLen uint32
	SigLen    uint32

	// HeaderLen is set for VersionCRX3 only.
	HeaderLen uint32

	// ArchiveOffset is the byte offset within the buffer where the
	// ZIP archive begins. Always in [0, len(buffer)].
	ArchiveOffset int
}

// ParseHeader inspects buf and returns the parsed container header.
// It returns a *FormatError for truncated or malformed containers and
// a *UnsupportedVersionError for version fields other than 2 and 3.
func ParseHeader(buf []byte) (*Header, error) {
	if len(buf) < len(Magic) {
		return nil, &FormatError{Reason: "shorter than magic tag"}
	}
	if !bytes.Equal(buf[0:4], Magic[:]) {
		return nil, &FormatError{Reason: "missing Cr24 magic tag"}
	}
	if len(buf) < 8 {
		return nil, &FormatError{Reason: "truncated version field"}
	}

	version := binary.LittleEndian.Uint32(buf[4:8])
	switch Version(version) {
	case VersionCRX2:
		return parseCRX2(buf)
	case VersionCRX3:
		return parseCRX3(buf)
	default:
		return nil, &UnsupportedVersionError{Version: version}
	}
}

// ArchiveOffset returns the byte offset where the embedded ZIP archive
// begins.
func ArchiveOffset(buf []byte) (int, error) {
	header, err := ParseHeader(buf)
	if err != nil {
		return 0, err
	}
	return header.ArchiveOffset, nil
}

func parseCRX2(buf []byte) (*Header, error) {
	if len(buf) < headerSizeCRX2 {
		return nil, &FormatError{Reason: "truncated crx2 header"}
	}

	pubKeyLen := binary.LittleEndian.Uint32(buf[8:12])
	sigLen := binary.LittleEndian.Uint32(buf[12:16])

	// Untrusted lengths: compute in 64-bit so they cannot wrap, then
	// check against the buffer before narrowing.
	offset := uint64(headerSizeCRX2) + uint64(pubKeyLen) + uint64(sigLen)
	if offset > uint64(len(buf)) {
		return nil, &FormatError{Reason: "key and signature lengths exceed buffer"}
	}

	return &Header{
		Version:       VersionCRX2,
		PubKeyLen:     pubKeyLen,
		SigLen:        sigLen,
		ArchiveOffset: int(offset),
	}, nil
}

func parseCRX3(buf []byte) (*Header, error) {
	if len(buf) < headerSizeCRX3 {
		return nil, &FormatError{Reason: "truncated crx3 header"}
	}

	headerLen := binary.LittleEndian.Uint32(buf[8:12])

	offset := uint64(headerSizeCRX3) + uint64(headerLen)
	if offset > uint64(len(buf)) {
		return nil, &FormatError{Reason: "header length exceeds buffer"}
	}

	return &Header{
		Version:       VersionCRX3,
		HeaderLen:     headerLen,
		ArchiveOffset: int(offset),
	}, nil
}
