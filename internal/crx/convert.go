package crx

import (
	"fmt"
	"os"
)

// Convert returns the ZIP archive payload embedded in a CRX container
// buffer. The returned slice aliases buf.
func Convert(buf []byte) ([]byte, error) {
	header, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	return buf[header.ArchiveOffset:], nil
}

// ConvertFile reads the CRX container at containerPath, strips the
// vendor header, and writes the ZIP payload to archivePath.
//
// Containers are modest in size, so the file is read fully into memory
// for header inspection. If the container turns out to be malformed no
// archive file is written; the container file is left in place for
// diagnosis.
func ConvertFile(containerPath, archivePath string) error {
	buf, err := os.ReadFile(containerPath)
	if err != nil {
		return fmt.Errorf("read container: %w", err)
	}

	payload, err := Convert(buf)
	if err != nil {
		return err
	}

	if err := os.WriteFile(archivePath, payload, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	return nil
}
