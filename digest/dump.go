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

package digest

import (
	"crypto/sha1"
	"fmt"
	"hash"
	"hash/crc32"
)

// Dump is a digest of dumped ROM or save data. It implements io.Writer.
type Dump struct {
	sha  hash.Hash
	crc  hash.Hash32
	size int
}

// NewDump is the preferred method of initialisation for the Dump type.
func NewDump() *Dump {
	return &Dump{
		sha: sha1.New(),
		crc: crc32.NewIEEE(),
	}
}

// Write implements the io.Writer interface. It never fails.
func (dig *Dump) Write(p []byte) (int, error) {
	dig.sha.Write(p)
	dig.crc.Write(p)
	dig.size += len(p)
	return len(p), nil
}

// Hash implements digest.Digest interface. The hash is the SHA1 of the data.
func (dig *Dump) Hash() string {
	return fmt.Sprintf("%x", dig.sha.Sum(nil))
}

// ResetDigest implements digest.Digest interface.
func (dig *Dump) ResetDigest() {
	dig.sha.Reset()
	dig.crc.Reset()
	dig.size = 0
}

// CRC32 returns the IEEE CRC32 of the data.
func (dig *Dump) CRC32() uint32 {
	return dig.crc.Sum32()
}

// Size returns the number of bytes seen.
func (dig *Dump) Size() int {
	return dig.size
}

func (dig *Dump) String() string {
	return fmt.Sprintf("sha1: %s crc32: %08x size: %d", dig.Hash(), dig.CRC32(), dig.size)
}
