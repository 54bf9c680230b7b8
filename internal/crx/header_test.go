package crx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildCRX2 constructs a synthetic CRX2 container around payload.
func buildCRX2(pubKey, sig, payload []byte) []byte {
	buf := make([]byte, 0, 16+len(pubKey)+len(sig)+len(payload))
	buf = append(buf, 'C', 'r', '2', '4')
	buf = binary.LittleEndian.AppendUint32(buf, 2)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(pubKey)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(sig)))
	buf = append(buf, pubKey...)
	buf = append(buf, sig...)
	buf = append(buf, payload...)
	return buf
}

// buildCRX3 constructs a synthetic CRX3 container around payload.
func buildCRX3(header, payload []byte) []byte {
	buf := make([]byte, 0, 12+len(header)+len(payload))
	buf = append(buf, 'C', 'r', '2', '4')
	buf = binary.LittleEndian.AppendUint32(buf, 3)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(header)))
	buf = append(buf, header...)
	buf = append(buf, payload...)
	return buf
}

func TestParseHeaderCRX2(t *testing.T) {
	tests := []struct {
		name    string
		pubKey  []byte
		sig     []byte
		payload []byte
	}{
		{
			name:    "typical_lengths",
			pubKey:  bytes.Repeat([]byte{0xAA}, 294),
			sig:     bytes.Repeat([]byte{0xBB}, 256),
			payload: []byte("PK\x03\x04 zip payload"),
		},
		{
			name:    "empty_key_and_signature",
			pubKey:  nil,
			sig:     nil,
			payload: []byte("PK\x03\x04"),
		},
		{
			name:    "empty_payload",
			pubKey:  []byte{1, 2, 3},
			sig:     []byte{4, 5},
			payload: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buildCRX2(tt.pubKey, tt.sig, tt.payload)

			header, err := ParseHeader(buf)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if header.Version != VersionCRX2 {
				t.Errorf("version = %d, want %d", header.Version, VersionCRX2)
			}
			if int(header.PubKeyLen) != len(tt.pubKey) {
				t.Errorf("pubkey length = %d, want %d", header.PubKeyLen, len(tt.pubKey))
			}
			if int(header.SigLen) != len(tt.sig) {
				t.Errorf("signature length = %d, want %d", header.SigLen, len(tt.sig))
			}

			wantOffset := 16 + len(tt.pubKey) + len(tt.sig)
			if header.ArchiveOffset != wantOffset {
				t.Errorf("offset = %d, want %d", header.ArchiveOffset, wantOffset)
			}

			// Slicing at the offset must reproduce the payload exactly.
			if !bytes.Equal(buf[header.ArchiveOffset:], tt.payload) {
				t.Errorf("payload mismatch:\ngot:  %q\nwant: %q", buf[header.ArchiveOffset:], tt.payload)
			}
		})
	}
}

func TestParseHeaderCRX3(t *testing.T) {
	tests := []struct {
		name    string
		header  []byte
		payload []byte
	}{
		{
			name:    "typical_header",
			header:  bytes.Repeat([]byte{0x08}, 37),
			payload: []byte("PK\x03\x04 zip payload"),
		},
		{
			name:    "empty_header_block",
			header:  nil,
			payload: []byte("PK\x03\x04"),
		},
		{
			name:    "empty_payload",
			header:  []byte{0x12, 0x34},
			payload: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buildCRX3(tt.header, tt.payload)

			header, err := ParseHeader(buf)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if header.Version != VersionCRX3 {
				t.Errorf("version = %d, want %d", header.Version, VersionCRX3)
			}
			if int(header.HeaderLen) != len(tt.header) {
				t.Errorf("header length = %d, want %d", header.HeaderLen, len(tt.header))
			}

			wantOffset := 12 + len(tt.header)
			if header.ArchiveOffset != wantOffset {
				t.Errorf("offset = %d, want %d", header.ArchiveOffset, wantOffset)
			}

			if !bytes.Equal(buf[header.ArchiveOffset:], tt.payload) {
				t.Errorf("payload mismatch:\ngot:  %q\nwant: %q", buf[header.ArchiveOffset:], tt.payload)
			}
		})
	}
}

func TestParseHeaderFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{
			name: "empty_buffer",
			buf:  nil,
		},
		{
			name: "shorter_than_magic",
			buf:  []byte("Cr"),
		},
		{
			name: "wrong_magic",
			buf:  []byte("Cr25\x02\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"),
		},
		{
			name: "zip_not_crx",
			buf:  []byte("PK\x03\x04 this is already a zip file"),
		},
		{
			name: "magic_only",
			buf:  []byte("Cr24"),
		},
		{
			name: "truncated_version_field",
			buf:  []byte("Cr24\x02\x00"),
		},
		{
			name: "crx2_truncated_length_fields",
			buf:  []byte("Cr24\x02\x00\x00\x00\x05\x00"),
		},
		{
			name: "crx3_truncated_length_field",
			buf:  []byte("Cr24\x03\x00\x00\x00\x05"),
		},
	}

	// Overflow cases with explicit out-of-range length fields.
	overLong := buildCRX2([]byte{1}, []byte{2}, []byte("payload"))
	binary.LittleEndian.PutUint32(overLong[8:12], uint32(len(overLong))) // pubkey alone past end
	tests = append(tests, struct {
		name string
		buf  []byte
	}{name: "crx2_lengths_exceed_buffer", buf: overLong})

	overLong3 := buildCRX3([]byte{1, 2, 3}, []byte("payload"))
	binary.LittleEndian.PutUint32(overLong3[8:12], uint32(len(overLong3))) // 12+len past end
	tests = append(tests, struct {
		name string
		buf  []byte
	}{name: "crx3_length_exceeds_buffer", buf: overLong3})

	// Lengths whose sum wraps uint32.
	wrap := buildCRX2(nil, nil, []byte("payload"))
	binary.LittleEndian.PutUint32(wrap[8:12], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(wrap[12:16], 0xFFFFFFFF)
	tests = append(tests, struct {
		name string
		buf  []byte
	}{name: "crx2_lengths_wrap_uint32", buf: wrap})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.buf)
			if err == nil {
				t.Fatal("expected error but got none")
			}

			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Errorf("error = %v (%T), want *FormatError", err, err)
			}
		})
	}
}

func TestParseHeaderUnsupportedVersions(t *testing.T) {
	versions := []uint32{0, 1, 4, 4294967295}

	for _, version := range versions {
		buf := make([]byte, 16)
		copy(buf, "Cr24")
		binary.LittleEndian.PutUint32(buf[4:8], version)

		_, err := ParseHeader(buf)
		if err == nil {
			t.Fatalf("version %d: expected error but got none", version)
		}

		var versionErr *UnsupportedVersionError
		if !errors.As(err, &versionErr) {
			t.Fatalf("version %d: error = %v (%T), want *UnsupportedVersionError", version, err, err)
		}
		if versionErr.Version != version {
			t.Errorf("carried version = %d, want %d", versionErr.Version, version)
		}
	}
}

func TestArchiveOffsetBounds(t *testing.T) {
	// Offset must always land inside the buffer, including the
	// degenerate case where the archive payload is empty and the
	// offset equals the buffer length.
	buf := buildCRX3(bytes.Repeat([]byte{0}, 20), nil)

	offset, err := ArchiveOffset(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offset != len(buf) {
		t.Errorf("offset = %d, want %d", offset, len(buf))
	}
}
