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

// Package digest fingerprints dumped data. Fingerprints are used to verify
// that two dumps of a cartridge are the same and can be compared with
// published ROM checksums.
//
// The digest is fed as the data arrives from the link so there is no need
// to hold a second copy of a large ROM.
package digest

// Digest implementations create a fingerprint of the data they have seen.
type Digest interface {
	// the fingerprint as a hex string
	Hash() string

	// forget everything seen so far
	ResetDigest()
}
