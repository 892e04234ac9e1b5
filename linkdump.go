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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jetsetilly/linkdump/curated"
	"github.com/jetsetilly/linkdump/digest"
	"github.com/jetsetilly/linkdump/environment"
	"github.com/jetsetilly/linkdump/hardware/cartridge"
	"github.com/jetsetilly/linkdump/host"
	"github.com/jetsetilly/linkdump/link"
	"github.com/jetsetilly/linkdump/logger"
	"github.com/jetsetilly/linkdump/modalflag"
	"github.com/jetsetilly/linkdump/multiboot"
	"github.com/jetsetilly/linkdump/paths"
	"github.com/jetsetilly/linkdump/preferences"
	"github.com/jetsetilly/linkdump/prefs"
	"github.com/jetsetilly/linkdump/version"
)

func main() {
	// #ctrlc cancels the context. every mode is expected to return promptly
	// once that happens
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	exitVal := launch(ctx, os.Stdout, os.Args[1:])

	stop()
	os.Exit(exitVal)
}

// launch parses the command line and runs the selected mode. returns the
// value to use with os.Exit().
func launch(ctx context.Context, output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("SERVE", "LOOPBACK", "INFO", "DUMP", "RESTORE", "CLEAR", "ECHO", "BOOT", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "SERVE":
		err = serve(ctx, md)

	case "LOOPBACK":
		err = loopback(ctx, md)

	case "INFO":
		err = info(ctx, md)

	case "DUMP":
		err = dump(ctx, md)

	case "RESTORE":
		err = restore(ctx, md)

	case "CLEAR":
		err = clearSave(ctx, md)

	case "ECHO":
		err = echo(ctx, md)

	case "BOOT":
		err = boot(ctx, md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// flags shared by every mode that touches the link or the cartridge.
type common struct {
	prefs *string
	log   *bool
}

func addCommon(md *modalflag.Modes) common {
	return common{
		prefs: md.AddString("prefs", "", "preferences for this run (eg. \"link.driver::tty; link.device::/dev/ttyUSB0\")"),
		log:   md.AddBool("log", false, "echo debugging log to stdout"),
	}
}

// setup loads the preferences, with the -prefs values taking precedence over
// the preferences file.
func (cm common) setup(label environment.Label) (*environment.Environment, error) {
	prefs.PushCommandLineStack(*cm.prefs)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "linkdump", "unused preferences: %s", unused)
		}
	}()

	p, err := preferences.NewPreferences()
	if err != nil {
		return nil, err
	}

	if *cm.log {
		logger.SetEcho(os.Stdout)
	}

	return environment.NewEnvironment(label, p), nil
}

// progress returns a function suitable for host.Client.Progress.
func progress(output io.Writer, label string) func(int, int) {
	return func(done int, total int) {
		if total == 0 {
			return
		}
		fmt.Fprintf(output, "\r%s: %3d%%", label, done*100/total)
		if done == total {
			fmt.Fprintln(output)
		}
	}
}

// connect opens the host side of the link and waits for the peripheral to
// acknowledge a health check.
func connect(ctx context.Context, env *environment.Environment) (*host.Client, link.Conn, error) {
	conn, err := link.Open(ctx, &env.Prefs.Link, link.Host)
	if err != nil {
		return nil, nil, err
	}

	cl := host.NewClient(conn)

	// a blocked Wait() is released by closing the connection
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := cl.Wait(ctx); err != nil {
		conn.Close()
		return nil, nil, err
	}

	return cl, conn, nil
}

func info(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	cm := addCommon(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("no additional arguments required for %s mode", md)
	}

	env, err := cm.setup("")
	if err != nil {
		return err
	}

	cl, conn, err := connect(ctx, env)
	if err != nil {
		return err
	}
	defer conn.Close()

	return printInfo(md.Output, cl)
}

func printInfo(output io.Writer, cl *host.Client) error {
	hdr, _, err := cl.ReadHeader()
	if err != nil && !isHeaderWarning(err) {
		return err
	}
	if err != nil {
		fmt.Fprintf(output, "header warning: %v\n", err)
	}

	gs, err := cl.GameSize()
	if err != nil {
		return err
	}

	ss, err := cl.SaveSize()
	if err != nil {
		return err
	}

	fmt.Fprintln(output, hdr)
	fmt.Fprintf(output, "game size: %s\n", gs)
	fmt.Fprintf(output, "save chip: %s\n", ss)

	return nil
}

// header errors that still leave a decoded header.
func isHeaderWarning(err error) bool {
	return curated.Has(err, cartridge.HeaderChecksum) || curated.Has(err, cartridge.HeaderFixed)
}

func dump(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	cm := addCommon(md)
	rom := md.AddBool("rom", true, "dump the cartridge ROM")
	save := md.AddBool("save", true, "dump the save chip")
	dir := md.AddString("dir", ".", "directory for the dump files")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("no additional arguments required for %s mode", md)
	}

	env, err := cm.setup("")
	if err != nil {
		return err
	}

	cl, conn, err := connect(ctx, env)
	if err != nil {
		return err
	}
	defer conn.Close()

	hdr, _, err := cl.ReadHeader()
	if err != nil && !isHeaderWarning(err) {
		return err
	}

	if *rom {
		cl.Progress = progress(md.Output, "rom")
		data, err := cl.ReadROM()
		if err != nil {
			return err
		}
		fn := filepath.Join(*dir, paths.UniqueFilename("rom", hdr.Title, "gba"))
		if err := os.WriteFile(fn, data, 0644); err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "rom written to %s\n", fn)
		fingerprint(md.Output, data)
	}

	if *save {
		cl.Progress = progress(md.Output, "save")
		data, err := cl.ReadSave()
		if err != nil {
			return err
		}
		if len(data) == 0 {
			fmt.Fprintln(md.Output, "cartridge has no save chip")
			return nil
		}
		fn := filepath.Join(*dir, paths.UniqueFilename("save", hdr.Title, "sav"))
		if err := os.WriteFile(fn, data, 0644); err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "save written to %s\n", fn)
		fingerprint(md.Output, data)
	}

	return nil
}

// fingerprint prints the digest of dumped data.
func fingerprint(output io.Writer, data []byte) {
	dig := digest.NewDump()
	dig.Write(data)
	fmt.Fprintf(output, "  %s\n", dig)
}

func restore(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	cm := addCommon(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("save file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	data, err := os.ReadFile(md.GetArg(0))
	if err != nil {
		return err
	}

	env, err := cm.setup("")
	if err != nil {
		return err
	}

	cl, conn, err := connect(ctx, env)
	if err != nil {
		return err
	}
	defer conn.Close()

	cl.Progress = progress(md.Output, "restore")
	if err := cl.WriteSave(data); err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "save restored from %s\n", md.GetArg(0))
	return nil
}

type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	p[0] = 'y'
	return 1, nil
}

// confirm asks a yes/no question on output and reads the answer from input.
func confirm(output io.Writer, input io.Reader, question string) bool {
	fmt.Fprintf(output, "%s (y/n): ", question)
	var b [1]byte
	if _, err := input.Read(b[:]); err != nil {
		return false
	}
	return b[0] == 'y' || b[0] == 'Y'
}

func clearSave(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	cm := addCommon(md)
	answerYes := md.AddBool("yes", false, "answer yes to confirmation")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("no additional arguments required for %s mode", md)
	}

	// use stdin for confirmation unless "yes" flag has been sent
	var confirmation io.Reader
	if *answerYes {
		confirmation = &yesReader{}
	} else {
		confirmation = os.Stdin
	}

	if !confirm(md.Output, confirmation, "clear the cartridge save") {
		fmt.Fprintln(md.Output, "save not cleared")
		return nil
	}

	env, err := cm.setup("")
	if err != nil {
		return err
	}

	cl, conn, err := connect(ctx, env)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := cl.ClearSave(); err != nil {
		return err
	}

	fmt.Fprintln(md.Output, "save cleared")
	return nil
}

func echo(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	cm := addCommon(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	words, err := parseWords(md.RemainingArgs())
	if err != nil {
		return err
	}

	env, err := cm.setup("")
	if err != nil {
		return err
	}

	cl, conn, err := connect(ctx, env)
	if err != nil {
		return err
	}
	defer conn.Close()

	reply, err := cl.Echo(words)
	if err != nil {
		return err
	}

	s := make([]string, len(reply))
	for i, w := range reply {
		s[i] = fmt.Sprintf("%#08x", w)
	}
	fmt.Fprintln(md.Output, strings.Join(s, " "))

	return nil
}

// parseWords accepts decimal, hex (0x prefix) or octal (0 prefix) numbers.
func parseWords(args []string) ([]uint32, error) {
	words := make([]uint32, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseUint(a, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("not a 32bit word: %s", a)
		}
		words = append(words, uint32(v))
	}
	return words, nil
}

func boot(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	cm := addCommon(md)

	md.AdditionalHelp("The program is sent with the multiboot protocol. The link driver must\nbe tty or serial and the console must be waiting at the boot screen.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("program file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	program, err := os.ReadFile(md.GetArg(0))
	if err != nil {
		return err
	}

	env, err := cm.setup("")
	if err != nil {
		return err
	}

	s, err := link.OpenStream(ctx, &env.Prefs.Link, link.Host)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := multiboot.Upload(ctx, s, program); err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%s uploaded (%d bytes)\n", md.GetArg(0), len(program))
	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information from version control system")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	fmt.Fprintln(md.Output, version.Banner())
	if *revision {
		_, rev, _ := version.Version()
		fmt.Fprintln(md.Output, rev)
	}

	return nil
}
