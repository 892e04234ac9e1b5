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

package environment

import (
	"github.com/jetsetilly/linkdump/preferences"
)

// Label is used to name the environment.
type Label string

// Environment provides context for one side of the link. The peripheral and
// the host each run with their own environment, which is useful when both
// run in the same process (the LOOPBACK mode and the tests).
type Environment struct {
	Label Label

	// the preferences for this environment
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// The prefs argument can be nil, in which case the default preferences are
// used and nothing is read from or written to disk.
func NewEnvironment(label Label, prefs *preferences.Preferences) *Environment {
	if prefs == nil {
		prefs = preferences.NewDefaults()
	}
	return &Environment{
		Label: label,
		Prefs: prefs,
	}
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	if env == nil || env.Prefs == nil {
		return true
	}
	return !env.Prefs.Logging.Quiet.Get().(bool)
}

// Tag prepends the environment label to a logging tag. The main environment
// has no label and the tag is returned unchanged.
func (env *Environment) Tag(tag string) string {
	if env == nil || env.Label == "" {
		return tag
	}
	return string(env.Label) + ": " + tag
}
