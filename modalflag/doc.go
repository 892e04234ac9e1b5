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

// Package modalflag wraps the flag package from the standard library so that
// a program can be run in one of several modes, each mode with its own flags.
//
// The linkdump command has a mode for the peripheral (SERVE), for the host
// commands (INFO, DUMP, RESTORE, etc.) and for uploading a program to the
// console (BOOT). Each mode has different flags:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.NewMode()
//	md.AddSubModes("SERVE", "INFO", "DUMP")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "SERVE":
//		md.NewMode()
//		rom := md.AddString("rom", "", "cartridge ROM file")
//		...
//	}
//
// The first sub-mode in the list is the default. Sub-mode comparisons are case
// insensitive. After a sub-mode has been found the caller must call NewMode()
// before adding the flags for that mode and calling Parse() again.
//
// Help is printed automatically when the "-help" flag is given. The Output
// field must be set for the help to be visible.
package modalflag
