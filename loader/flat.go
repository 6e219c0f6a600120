// Package loader provides flat binary image loading for RV32I
// programs.
//
// The image format is a raw, unstructured little-endian byte stream:
// no header, no metadata, no relocation. The producing toolchain is
// responsible for emitting code already placed at the RAM base
// address.
package loader

import (
	"fmt"
	"os"

	"github.com/brdrrt/rv-emu/emu"
)

// DefaultEntryPoint is where execution of a flat image starts: the RAM
// base address.
const DefaultEntryPoint = emu.RAMBase

// Program represents a loaded flat image ready for execution.
type Program struct {
	// Image is the raw byte image.
	Image []byte

	// EntryPoint is the address execution should begin at.
	EntryPoint uint32
}

// ImageTooLargeError reports an image that exceeds the machine's RAM
// capacity. Loading it would silently drop its tail.
type ImageTooLargeError struct {
	Size int
}

func (e ImageTooLargeError) Error() string {
	return fmt.Sprintf("image is %d bytes, RAM capacity is %d",
		e.Size, emu.MemorySize)
}

func (e ImageTooLargeError) Is(err error) (ok bool) {
	_, ok = err.(ImageTooLargeError)
	return
}

// Load reads a flat binary image from disk and returns a Program
// ready for loading into a machine.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > emu.MemorySize {
		return nil, ImageTooLargeError{Size: len(data)}
	}
	return &Program{
		Image:      data,
		EntryPoint: DefaultEntryPoint,
	}, nil
}
