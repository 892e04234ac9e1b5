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
	"os"

	"github.com/jetsetilly/linkdump/logger"
	"github.com/jetsetilly/linkdump/prefs"
)

// LoggingPreferences control the central logger.
type LoggingPreferences struct {
	// echo log entries to stderr as they are created
	Echo prefs.Bool

	// suppress logging for environments that use these preferences
	Quiet prefs.Bool
}

// SetDefaults reverts all logging preferences to their default value.
func (p *LoggingPreferences) SetDefaults() {
	_ = p.Echo.Set(false)
	_ = p.Quiet.Set(false)
}

func (p *LoggingPreferences) add(dsk *prefs.Disk) error {
	p.Echo.SetHookPost(func(v prefs.Value) error {
		if v.(bool) {
			logger.SetEcho(os.Stderr)
		} else {
			logger.SetEcho(nil)
		}
		return nil
	})

	if err := dsk.Add("logging.echo", &p.Echo); err != nil {
		return err
	}
	if err := dsk.Add("logging.quiet", &p.Quiet); err != nil {
		return err
	}
	return nil
}
