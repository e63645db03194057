// Package artifact inspects firmware images produced by a successful build.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcinbor85/gohex"
)

// Summary describes the data content of an Intel HEX firmware image.
type Summary struct {
	Segments int
	Bytes    int
	Start    uint32
	End      uint32
}

func (s Summary) String() string {
	return fmt.Sprintf("%d bytes in %d segments, %#08x..%#08x", s.Bytes, s.Segments, s.Start, s.End)
}

// HexPath returns where PlatformIO leaves the Intel HEX image for a board,
// relative to the project directory.
func HexPath(projectDir, board string) string {
	return filepath.Join(projectDir, ".pio", "build", board, "firmware.hex")
}

// ReadHex parses an Intel HEX file and summarizes its data segments.
func ReadHex(path string) (Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer file.Close()

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(file); err != nil {
		return Summary{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	var summary Summary
	for _, segment := range mem.GetDataSegments() {
		if summary.Segments == 0 || segment.Address < summary.Start {
			summary.Start = segment.Address
		}
		if end := segment.Address + uint32(len(segment.Data)); end > summary.End {
			summary.End = end
		}
		summary.Segments++
		summary.Bytes += len(segment.Data)
	}
	return summary, nil
}
