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

//go:build windows

package link

import (
	"errors"

	"github.com/jetsetilly/linkdump/curated"
)

// OpenTTY is not supported on windows. Use OpenSerial() instead.
func OpenTTY(device string) (*Stream, error) {
	return nil, curated.Errorf(OpenError, device, errors.New("tty driver not supported on this platform"))
}
