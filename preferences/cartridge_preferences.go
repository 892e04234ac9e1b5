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

package preferences

import (
	"github.com/jetsetilly/linkdump/prefs"
)

// List of valid values for the EEPROM preference.
const (
	EEPROMAuto = "auto"
	EEPROM512  = "512"
	EEPROM8K   = "8k"
)

// CartridgePreferences describe the emulated cartridge used when serving.
type CartridgePreferences struct {
	// the size of the EEPROM chip for cartridges that use the EEPROM save
	// library. the ROM doesn't say which size is fitted so "auto" guesses
	// from the ROM size
	EEPROM prefs.String

	// the directory in which emulated save chips are persisted. an empty
	// value means next to the ROM file
	SaveDir prefs.String
}

// SetDefaults reverts all cartridge preferences to their default value.
func (p *CartridgePreferences) SetDefaults() {
	_ = p.EEPROM.Set(EEPROMAuto)
	_ = p.SaveDir.Set("")
}

func (p *CartridgePreferences) add(dsk *prefs.Disk) error {
	if err := dsk.Add("cartridge.eeprom", &p.EEPROM); err != nil {
		return err
	}
	if err := dsk.Add("cartridge.savedir", &p.SaveDir); err != nil {
		return err
	}
	return nil
}
