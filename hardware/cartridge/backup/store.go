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

package backup

import (
	"os"
	"slices"

	"github.com/jetsetilly/linkdump/environment"
	"github.com/jetsetilly/linkdump/logger"
)

// Store is the non-volatile memory of a save chip.
type Store struct {
	env *environment.Environment

	// the file the data is persisted to. an empty filename means the store is
	// never persisted
	Filename string

	// amend Data only through the chip
	Data []uint8

	// the data as it is on disk. Data is mutable and we need a way of
	// comparing what's on disk with what's in memory
	DiskData []uint8
}

// NewStore is the preferred method of initialisation for the Store type. The
// data is initialised to 0xff (erased) and then any existing data is read
// from disk.
func NewStore(env *environment.Environment, filename string, size int) *Store {
	st := &Store{
		env:      env,
		Filename: filename,
		Data:     make([]uint8, size),
		DiskData: make([]uint8, size),
	}

	for i := range st.Data {
		st.Data[i] = 0xff
	}
	copy(st.DiskData, st.Data)

	st.Read()

	return st
}

// Size of the store in bytes.
func (st *Store) Size() int {
	return len(st.Data)
}

// IsSaved returns true if the data in memory matches the data on disk.
func (st *Store) IsSaved() bool {
	return slices.Equal(st.Data, st.DiskData)
}

// Read store data from disk. A missing file is not an error and leaves the
// store unchanged.
func (st *Store) Read() {
	if st.Filename == "" {
		return
	}

	data, err := os.ReadFile(st.Filename)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Logf(st.env, "backup", "could not load save file: %v", err)
		}
		return
	}

	if len(data) != len(st.Data) {
		logger.Logf(st.env, "backup", "save file is of incorrect length. %d should be %d", len(data), len(st.Data))
	}

	copy(st.Data, data)
	copy(st.DiskData, st.Data)

	logger.Logf(st.env, "backup", "save file loaded from %s", st.Filename)
}

// Write store data to disk.
func (st *Store) Write() {
	if st.Filename == "" {
		return
	}

	f, err := os.Create(st.Filename)
	if err != nil {
		logger.Logf(st.env, "backup", "could not write save file: %v", err)
		return
	}
	defer func() {
		err := f.Close()
		if err != nil {
			logger.Logf(st.env, "backup", "could not close save file: %v", err)
		}
	}()

	n, err := f.Write(st.Data)
	if err != nil {
		logger.Logf(st.env, "backup", "could not write save file: %v", err)
		return
	}

	if n != len(st.Data) {
		logger.Logf(st.env, "backup", "save file has been truncated during write. %d should be %d", n, len(st.Data))
		return
	}

	logger.Logf(st.env, "backup", "save file saved to %s", st.Filename)

	// copy of data that's just been written to disk
	copy(st.DiskData, st.Data)
}

// Flush writes the store to disk if it has changed.
func (st *Store) Flush() {
	if !st.IsSaved() {
		st.Write()
	}
}
