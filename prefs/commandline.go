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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// group is the set of preferences given to one -prefs flag. Entries are
// removed as Disk.Load() consumes them so whatever is left over at the end of
// a run was not recognised.
type group map[string]Value

// parseGroup splits a "key::value; key::value" string. Entries without the
// "::" separator are dropped.
func parseGroup(prefs string) group {
	g := make(group)
	for _, entry := range strings.Split(prefs, ";") {
		key, value, ok := strings.Cut(entry, "::")
		if !ok || strings.Contains(value, "::") {
			continue
		}
		g[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return g
}

// String returns the group in the same form that parseGroup() accepts, with
// the keys sorted.
func (g group) String() string {
	keys := make([]string, 0, len(g))
	for key := range g {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]string, len(keys))
	for i, key := range keys {
		entries[i] = fmt.Sprintf("%s::%v", key, g[key])
	}
	return strings.Join(entries, "; ")
}

// the -prefs groups of nested modes. only the top group is consulted
var commandLineStack []group

// SizeCommandLineStack returns the number of -prefs groups currently pushed.
func SizeCommandLineStack() int {
	return len(commandLineStack)
}

// PushCommandLineStack parses the value of a -prefs flag and makes it the
// group consulted by Disk.Load(). Values in the group take precedence over
// values in the preferences file.
func PushCommandLineStack(prefs string) {
	commandLineStack = append(commandLineStack, parseGroup(prefs))
}

// PopCommandLineStack removes the most recent group. Returns the entries that
// were never consumed, which is useful for warning about misspelled keys.
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}

	top := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]
	return top.String()
}

// GetCommandLinePref returns the value for key in the top group. A value can
// only be taken once.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLineStack) == 0 {
		return false, nil
	}

	top := commandLineStack[len(commandLineStack)-1]
	v, ok := top[key]
	if ok {
		delete(top, key)
	}
	return ok, v
}
