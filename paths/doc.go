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

// Package paths contains functions to prepare paths to linkdump resources.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate config directory. For example, the path to the preferences
// file:
//
//	pth, err := paths.ResourcePath("", "preferences")
//
// If the base resource path, ".linkdump", is present in the program's current
// directory then that is the base path. If it is not present then the user's
// config directory is used (see os.UserConfigDir() in the standard library).
// On a modern Linux system that is:
//
//	/home/user/.config/linkdump/preferences
//
// Directories on the way to the resource are created as required. The
// resource itself is never touched.
package paths
