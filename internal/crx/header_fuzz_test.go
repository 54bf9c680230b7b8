//go:build go1.18

package crx

import (
	"bytes"
	"testing"
)

func FuzzParseHeader(f *testing.F) {
	f.Add([]byte("Cr24\x02\x00\x00\x00\x03\x00\x00\x00\x02\x00\x00\x00kkkssPK\x03\x04"))
	f.Add([]byte("Cr24\x03\x00\x00\x00\x05\x00\x00\x00hhhhhPK\x03\x04"))
	f.Add([]byte("Cr24"))
	f.Add([]byte("PK\x03\x04"))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, buf []byte) {
		header, err := ParseHeader(buf)
		if err != nil {
			return
		}

		// A successful parse must always yield an in-range offset.
		if header.ArchiveOffset < 0 || header.ArchiveOffset > len(buf) {
			t.Errorf("offset %d out of range for %d-byte buffer", header.ArchiveOffset, len(buf))
		}
	})
}

func FuzzConvert(f *testing.F) {
	f.Add([]byte("Cr24\x03\x00\x00\x00\x02\x00\x00\x00hhPK\x03\x04"))
	f.Add([]byte("Cr24\x02\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00PK\x03\x04"))

	f.Fuzz(func(t *testing.T, buf []byte) {
		payload, err := Convert(buf)
		if err != nil {
			return
		}

		// The payload must be a suffix of the input.
		if !bytes.HasSuffix(buf, payload) {
			t.Errorf("payload is not a suffix of the container")
		}
	})
}
