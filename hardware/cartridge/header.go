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
	"fmt"
	"strings"

	"github.com/jetsetilly/linkdump/curated"
)

// HeaderSize is the number of bytes in the cartridge header.
const HeaderSize = 0xc0

// layout of the cartridge header
const (
	hdrLogo       = 0x04
	hdrTitle      = 0xa0
	hdrGameCode   = 0xac
	hdrMakerCode  = 0xb0
	hdrFixed      = 0xb2
	hdrUnitCode   = 0xb3
	hdrDeviceType = 0xb4
	hdrVersion    = 0xbc
	hdrComplement = 0xbd
)

// the value at hdrFixed is always 0x96
const fixedValue = 0x96

// Sentinel errors returned by ParseHeader().
const (
	HeaderTooShort = "header: too short (%d bytes)"
	HeaderChecksum = "header: complement check failed (%#02x should be %#02x)"
	HeaderFixed    = "header: fixed value is wrong (%#02x)"
)

// Header is the decoded cartridge header.
type Header struct {
	Title     string
	GameCode  string
	MakerCode string
	Version   uint8

	// the unit code and device type are zero for all commercial games
	UnitCode   uint8
	DeviceType uint8

	// complement check as stored in the header
	Complement uint8
}

func (hdr Header) String() string {
	return fmt.Sprintf("%s [%s] maker %s v%d", hdr.Title, hdr.GameCode, hdr.MakerCode, hdr.Version)
}

// Complement calculates the header complement check for header data.
func Complement(data []byte) uint8 {
	var chk uint8
	for _, b := range data[hdrTitle:hdrComplement] {
		chk -= b
	}
	return chk - 0x19
}

func asciiField(data []byte) string {
	return strings.TrimRight(string(data), "\x00 ")
}

// ParseHeader decodes the header from the first HeaderSize bytes of data.
//
// A header that fails the complement check is still decoded. The returned
// error is HeaderChecksum in that case, and the caller can decide whether to
// trust the fields. A console will not boot a cartridge that fails the check.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, curated.Errorf(HeaderTooShort, len(data))
	}

	hdr := Header{
		Title:      asciiField(data[hdrTitle:hdrGameCode]),
		GameCode:   asciiField(data[hdrGameCode:hdrMakerCode]),
		MakerCode:  asciiField(data[hdrMakerCode:hdrFixed]),
		UnitCode:   data[hdrUnitCode],
		DeviceType: data[hdrDeviceType],
		Version:    data[hdrVersion],
		Complement: data[hdrComplement],
	}

	if data[hdrFixed] != fixedValue {
		return hdr, curated.Errorf(HeaderFixed, data[hdrFixed])
	}

	if chk := Complement(data); chk != hdr.Complement {
		return hdr, curated.Errorf(HeaderChecksum, hdr.Complement, chk)
	}

	return hdr, nil
}

// ReadHeader copies the header bytes out of an image.
func ReadHeader(img Image) []byte {
	data := make([]byte, HeaderSize)
	for i := uint32(0); i < HeaderSize; i += 4 {
		w := img.Read32(i)
		data[i] = byte(w)
		data[i+1] = byte(w >> 8)
		data[i+2] = byte(w >> 16)
		data[i+3] = byte(w >> 24)
	}
	return data
}
