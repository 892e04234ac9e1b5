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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/linkdump/digest"
	"github.com/jetsetilly/linkdump/test"
)

func TestDump(t *testing.T) {
	var dig digest.Digest = digest.NewDump()
	d := dig.(*digest.Dump)

	d.Write([]byte("a"))
	d.Write([]byte("bc"))
	test.ExpectEquality(t, dig.Hash(), "a9993e364706816aba3e25717850c26c9cd0d89d")
	test.ExpectEquality(t, d.CRC32(), uint32(0x352441c2))
	test.ExpectEquality(t, d.Size(), 3)

	dig.ResetDigest()
	test.ExpectEquality(t, d.Size(), 0)
	test.ExpectEquality(t, dig.Hash(), "da39a3ee5e6b4b0d3255bfef95601890afd80709")
	test.ExpectEquality(t, d.CRC32(), uint32(0))
}
