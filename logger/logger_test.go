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

package logger_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/linkdump/logger"
	"github.com/jetsetilly/linkdump/test"
)

type deny struct{}

func (_ deny) AllowLogging() bool {
	return false
}

func TestLogger(t *testing.T) {
	logger.Clear()
	tw := &test.Writer{}

	test.ExpectFailure(t, logger.Write(tw))
	test.ExpectSuccess(t, tw.Compare(""))

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\n"))

	// clear the test.Writer buffer before continuing, makes comparisons easier
	// to manage
	tw.Clear()

	logger.Log(logger.Allow, "test2", "this is another test")
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\ntest2: this is another test\n"))

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	logger.Tail(tw, 100)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\ntest2: this is another test\n"))

	// asking for fewer entries is okay too
	tw.Clear()
	logger.Tail(tw, 1)
	test.ExpectSuccess(t, tw.Compare("test2: this is another test\n"))

	// and no entries
	tw.Clear()
	logger.Tail(tw, 0)
	test.ExpectSuccess(t, tw.Compare(""))
}

func TestRepeatedEntries(t *testing.T) {
	logger.Clear()
	tw := &test.Writer{}

	logger.Log(logger.Allow, "probe", "no cartridge")
	logger.Log(logger.Allow, "probe", "no cartridge")
	logger.Logf(logger.Allow, "probe", "no %s", "cartridge")
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare("probe: no cartridge (repeat x3)\n"))
	test.ExpectEquality(t, len(logger.Copy()), 1)
}

func TestPermission(t *testing.T) {
	logger.Clear()
	logger.Log(deny{}, "test", "this should not appear")
	test.ExpectEquality(t, len(logger.Copy()), 0)
}

func TestEcho(t *testing.T) {
	logger.Clear()
	tw := &test.Writer{}

	logger.SetEcho(tw)
	defer logger.SetEcho(nil)

	logger.Log(logger.Allow, "dispatcher", "game size 00800000")
	test.ExpectSuccess(t, strings.Contains(tw.String(), "tag=dispatcher"))
	test.ExpectSuccess(t, strings.Contains(tw.String(), "game size 00800000"))

	// echo is stopped with a nil writer
	logger.SetEcho(nil)
	tw.Clear()
	logger.Log(logger.Allow, "dispatcher", "quiet")
	test.ExpectSuccess(t, tw.Compare(""))
}
