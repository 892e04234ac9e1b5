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

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/linkdump/paths"
	"github.com/jetsetilly/linkdump/test"
)

func TestResourcePath(t *testing.T) {
	// run from a temporary directory containing the base resource path so
	// that the user's config directory is not touched
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	tmp := t.TempDir()
	test.DemandSuccess(t, os.Chdir(tmp))
	defer os.Chdir(wd)

	test.DemandSuccess(t, os.Mkdir(".linkdump", 0700))

	pth, err := paths.ResourcePath("saves", "game.sav")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".linkdump", "saves", "game.sav"))

	// sub-directory has been created
	_, err = os.Stat(filepath.Join(".linkdump", "saves"))
	test.ExpectSuccess(t, err)

	pth, err = paths.ResourcePath("", "preferences")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".linkdump", "preferences"))
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("rom", "POKEMON EMER", "gba")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "rom_POKEMON_EMER_"))
	test.ExpectSuccess(t, strings.HasSuffix(fn, ".gba"))

	fn = paths.UniqueFilename("save", "", ".sav")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "save_2"))
	test.ExpectSuccess(t, strings.HasSuffix(fn, ".sav"))
}
