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

// Package prefs facilitates the storage of preferential values in the
// linkdump system. It is a generic package and is used for both the link
// settings and the emulated cartridge settings.
//
// Values are registered with a Disk instance under a key. The key is the
// name that appears in the preferences file:
//
//	var driver prefs.String
//	dsk, _ := prefs.NewDisk(pth)
//	_ = dsk.Add("link.driver", &driver)
//	_ = dsk.Load(true)
//
// The file is a plain text file with one "key :: value" entry per line,
// sorted by key. Entries in the file that belong to other Disk instances
// sharing the same file are preserved when Save() is called.
//
// Values can be overridden for the lifetime of a command with the command
// line stack. PushCommandLineStack() takes a string of the form
// "key::value; key::value". Load() consults the top of the stack after
// reading the file, so the command line always wins. Values taken from the
// command line are not saved unless Save() is called explicitly.
package prefs
