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
	"github.com/jetsetilly/linkdump/curated"
	"github.com/jetsetilly/linkdump/paths"
	"github.com/jetsetilly/linkdump/prefs"
)

// Preferences defines and collates all the preference values used by
// linkdump.
type Preferences struct {
	dsk *prefs.Disk

	Link      LinkPreferences
	Cartridge CartridgePreferences
	Logging   LoggingPreferences
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. Values are loaded from the preferences file in the resource path.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is like NewPreferences() but loads the values from
// the named file.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := NewDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	if err := p.Link.add(p.dsk); err != nil {
		return nil, err
	}
	if err := p.Cartridge.add(p.dsk); err != nil {
		return nil, err
	}
	if err := p.Logging.add(p.dsk); err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// NewDefaults returns a Preferences instance with default values that is not
// backed by a file. Save() and Load() do nothing. Useful for testing.
func NewDefaults() *Preferences {
	p := &Preferences{}
	p.SetDefaults()
	return p
}

// SetDefaults reverts all preferences to their default value.
func (p *Preferences) SetDefaults() {
	p.Link.SetDefaults()
	p.Cartridge.SetDefaults()
	p.Logging.SetDefaults()
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
