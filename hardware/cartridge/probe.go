// This file is part of Linkdump.
//
// Linkdump is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Linkdump is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Linkdump.  If not, see <https://www.gnu.org/licenses/>.

package cartridge

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jetsetilly/linkdump/curated"
)

// GameSize is the size of the cartridge ROM in bytes. A probed GameSize is
// always a power of two between MinGameSize and MaxGameSize inclusive.
type GameSize uint32

// The range of sizes that Probe() can return.
const (
	MinGameSize GameSize = 1 << 20
	MaxGameSize GameSize = 1 << 24
)

func (sz GameSize) String() string {
	return fmt.Sprintf("%dMB", uint32(sz)>>20)
}

// Signature is the first word of the logo in the cartridge header. Every
// licensed cartridge has the same logo.
const Signature = uint32(0x51aeff24)

// SignatureOffset is the byte offset of Signature in the image.
const SignatureOffset = 4

// mirrorWords is the number of halfwords that must match the open-bus
// pattern for a candidate size to be accepted.
const mirrorWords = 0x1000

// Sentinel errors returned by Probe() and ProbeSettled().
const (
	NotPresent = "cartridge: not present"
	Abandoned  = "cartridge: probe abandoned: %v"
)

// Present returns true if the image carries the cartridge signature.
func Present(img Image) bool {
	return img.Read32(SignatureOffset) == Signature
}

// Probe discovers the size of the ROM in the image.
//
// For each candidate size, in increasing order, the halfwords following the
// candidate are compared with their own index. A ROM that ends at the
// candidate reads as open bus from that point, and open bus beyond the first
// megabyte looks like a count from zero. The first candidate with that
// pattern is the size of the ROM. If no candidate matches then the result is
// MaxGameSize.
//
// Returns the NotPresent error if the signature is missing. Nothing is read
// beyond the signature in that case.
func Probe(img Image) (GameSize, error) {
	if !Present(img) {
		return 0, curated.Errorf(NotPresent)
	}

	for sz := MinGameSize; sz <= MaxGameSize; sz <<= 1 {
		if mirrored(img, uint32(sz)) {
			return sz, nil
		}
	}

	return MaxGameSize, nil
}

func mirrored(img Image, offset uint32) bool {
	for j := uint32(0); j < mirrorWords; j++ {
		if img.Read16(offset+j*2) != uint16(j) {
			return false
		}
	}
	return true
}

// ProbeSettled waits for a cartridge to be present and then probes it a second
// time, returning the result of the second probe.
//
// On hardware, the first probe after the cartridge settles is sometimes wrong.
// The reason is not known and a delay has not been shown to help, so the
// probe is simply repeated.
//
// If the cartridge is removed between the two probes then the wait starts
// again.
//
// The wait is unbounded but gives up when the context is done. The goroutine
// yields between attempts.
func ProbeSettled(ctx context.Context, img Image) (GameSize, error) {
	for {
		_, err := Probe(img)
		if err == nil {
			// second probe. the first result is discarded
			sz, err := Probe(img)
			if !curated.Is(err, NotPresent) {
				return sz, err
			}
		} else if !curated.Is(err, NotPresent) {
			return 0, err
		}

		select {
		case <-ctx.Done():
			return 0, curated.Errorf(Abandoned, ctx.Err())
		default:
		}
		runtime.Gosched()
	}
}
