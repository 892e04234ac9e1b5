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

// Package dispatcher is the peripheral program. It waits for a cartridge,
// caches the save chip and then serves commands from the host.
//
// Every command starts with a tag word. Apart from HealthCheck, the tag is
// followed by a size word and then that many payload words. The payload is
// always read in full, even by commands that ignore it, so that the framing
// of the link is never lost. The size is clamped (see MaxPayload()) but the
// clamp is silent.
//
// The state of the dispatcher moves through:
//
//	StateInit -> StateAwaitCommand -> StateAwaitSize -> StateAwaitPayload -> StateExecute
//	                    ^                                                        |
//	                    +--------------------------------------------------------+
//
// There is no terminal state. Run() only returns when the link fails.
package dispatcher
