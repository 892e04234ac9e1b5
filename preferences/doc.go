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

// Package preferences collates the preference values used by linkdump.
//
// The values are split by concern. Link preferences describe how the
// transport is opened. Cartridge preferences describe the emulated cartridge
// used by the SERVE mode. Logging preferences control the central logger.
//
// All values are stored in the same preferences file, found with
// paths.ResourcePath(). Values can be overridden on the command line with
// the -prefs flag (see prefs.PushCommandLineStack()).
package preferences
