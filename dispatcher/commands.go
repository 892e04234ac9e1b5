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

package dispatcher

import "fmt"

// Command is the tag word at the start of every request.
type Command uint32

// List of commands.
const (
	HealthCheck Command = iota
	GetGameSize
	GetSaveSize
	ReadData
	WriteSave
	Echo
)

func (cmd Command) String() string {
	switch cmd {
	case HealthCheck:
		return "health check"
	case GetGameSize:
		return "get game size"
	case GetSaveSize:
		return "get save size"
	case ReadData:
		return "read data"
	case WriteSave:
		return "write save"
	case Echo:
		return "echo"
	}
	return fmt.Sprintf("unknown (%d)", uint32(cmd))
}

// Replies that are fixed values.
const (
	HealthAck  = uint32(0xc0de)
	BadCommand = uint32(0x0bad)
)

// ScratchWords is the size of the scratch buffer in words.
const ScratchWords = 100

// MaxWriteWords is the largest size accepted by WriteSave. It is larger than
// the save buffer. Words beyond the save buffer are read and discarded.
const MaxWriteWords = 0x20000

// MaxPayload returns the largest payload, in words, accepted for the command.
func MaxPayload(cmd Command) uint32 {
	if cmd == WriteSave {
		return MaxWriteWords
	}
	return ScratchWords
}

// State of the dispatcher.
type State int32

// List of states.
const (
	StateInit State = iota
	StateAwaitCommand
	StateAwaitSize
	StateAwaitPayload
	StateExecute
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAwaitCommand:
		return "await command"
	case StateAwaitSize:
		return "await size"
	case StateAwaitPayload:
		return "await payload"
	case StateExecute:
		return "execute"
	}
	return "unknown"
}
