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

//go:build !windows

package link

import (
	"github.com/jetsetilly/linkdump/curated"
	"github.com/pkg/term"
)

// OpenTTY opens a USB CDC bridge. The device is put into raw mode so that no
// byte is interpreted by the line discipline. The baud rate is left alone.
func OpenTTY(device string) (*Stream, error) {
	t, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, curated.Errorf(OpenError, device, err)
	}

	// discard anything left over from a previous session
	_ = t.Flush()

	s := NewStream(t)
	s.name = device
	return s, nil
}
