// Package main is nts, a command line client that keeps a nostr identity and
// saves notes encrypted to it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"

	"github.com/alexflint/go-arg"

	"nts.lol/client"
	"nts.lol/config"
	"nts.lol/errorf"
	"nts.lol/event"
	"nts.lol/keys"
	"nts.lol/note"
	"nts.lol/sharelink"
)

type InitCmd struct{}

type WhoamiCmd struct {
	Nsec bool `arg:"--nsec" help:"also print the secret key"`
}

type TitleCmd struct {
	Text string `arg:"positional" help:"text to make a title from, stdin when empty"`
	Max  int    `arg:"--max" default:"50" help:"maximum title length in characters"`
}

type NoteCmd struct {
	File   string `arg:"positional" help:"file holding the note content, stdin when empty"`
	Title  string `arg:"-t,--title" help:"note title, derived from the content when empty"`
	DryRun bool   `arg:"--dry-run" help:"print the record instead of submitting it"`
}

type OpenCmd struct {
	File string `arg:"positional" help:"file holding the record json, stdin when empty"`
}

type ExportCmd struct {
	Password string `arg:"-p,--password" help:"password protecting the link, read from stdin when empty"`
	URL      string `arg:"--url" help:"attach the link to this address instead of printing it bare"`
}

type ImportCmd struct {
	Link     string `arg:"positional,required" help:"share link, or an address carrying one"`
	Password string `arg:"-p,--password" help:"password of the link, read from stdin when empty"`
}

type ResetCmd struct {
	Yes bool `arg:"--yes" help:"confirm forgetting the stored identity"`
}

type EnvCmd struct {
	Usage bool `arg:"--usage" help:"describe the variables instead of printing their values"`
}

// Args is the command line of nts.
type Args struct {
	EnvFile string     `arg:"--env-file" default:".env" help:"file with NTS_* settings under the environment"`
	Init    *InitCmd   `arg:"subcommand:init" help:"create an identity if there is none"`
	Whoami  *WhoamiCmd `arg:"subcommand:whoami" help:"print the public key of the identity"`
	Title   *TitleCmd  `arg:"subcommand:title" help:"print the title a note would get"`
	Note    *NoteCmd   `arg:"subcommand:note" help:"encrypt and save a note"`
	Open    *OpenCmd   `arg:"subcommand:open" help:"decrypt a saved note record"`
	Export  *ExportCmd `arg:"subcommand:export" help:"make a password protected share link of the identity"`
	Import  *ImportCmd `arg:"subcommand:import" help:"replace the identity with one from a share link"`
	Reset   *ResetCmd  `arg:"subcommand:reset" help:"forget the identity"`
	Env     *EnvCmd    `arg:"subcommand:env" help:"print the configuration"`
}

var args Args

func fail(format string, a ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

func main() {
	p := arg.MustParse(&args)
	if p.Subcommand() == nil {
		p.WriteHelp(os.Stderr)
		os.Exit(1)
	}
	cfg, err := config.New(args.EnvFile)
	if err != nil {
		fail("configuration: %s", err)
	}
	if args.Env != nil {
		if args.Env.Usage {
			config.Usage(os.Stdout)
			return
		}
		cfg.PrintEnv(os.Stdout)
		return
	}
	if args.Title != nil {
		text := args.Title.Text
		if text == "" {
			b, e := io.ReadAll(os.Stdin)
			if e != nil {
				fail("reading stdin: %s", e)
			}
			text = string(b)
		}
		fmt.Println(note.TitleFromContent(text, args.Title.Max))
		return
	}
	s, closer, err := client.NewFromConfig(cfg)
	if err != nil {
		fail("credential store: %s", err)
	}
	c, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(c, &args, s, os.Stdin, os.Stdout, os.Stderr)
	cancel()
	_ = closer()
	if err != nil {
		fail("%s", explain(err))
	}
}

func run(c context.Context, args *Args, s *client.Session, stdin io.Reader,
	stdout, stderr io.Writer) (err error) {
	switch {
	case args.Init != nil:
		var id *keys.Identity
		if id, err = s.Init(); err != nil {
			return
		}
		return printNpub(stdout, id)
	case args.Whoami != nil:
		var id *keys.Identity
		if id, err = s.Holder.Current(); err != nil {
			return
		}
		if err = printNpub(stdout, id); err != nil || !args.Whoami.Nsec {
			return
		}
		var nsec string
		if nsec, err = id.Nsec(); err != nil {
			return
		}
		_, _ = fmt.Fprintln(stdout, nsec)
	case args.Note != nil:
		var content []byte
		if content, err = readSource(args.Note.File, stdin); err != nil {
			return
		}
		var ev *event.T
		if args.Note.DryRun {
			ev, err = s.CreateNote(string(content), args.Note.Title)
		} else {
			ev, err = s.SaveNote(c, string(content), args.Note.Title)
		}
		if err != nil {
			keepInput(stderr, ev, content)
			return
		}
		_, _ = fmt.Fprintf(stdout, "%s\n", ev.Marshal(nil))
	case args.Open != nil:
		var b []byte
		if b, err = readSource(args.Open.File, stdin); err != nil {
			return
		}
		ev := event.New()
		if err = ev.Unmarshal(b); err != nil {
			return
		}
		var n *note.Note
		if n, err = s.OpenNote(ev); err != nil {
			return
		}
		_, _ = fmt.Fprintf(stdout, "# %s\n\n%s\n", n.Title, n.Content)
	case args.Export != nil:
		pw := args.Export.Password
		if pw == "" {
			if pw, err = readPassword(stdin); err != nil {
				return
			}
		}
		if args.Export.URL == "" {
			var link string
			if link, err = s.ExportLink(c, pw); err != nil {
				return
			}
			_, _ = fmt.Fprintln(stdout, link)
			return
		}
		var base, u *url.URL
		if base, err = url.Parse(args.Export.URL); err != nil {
			return
		}
		if u, err = s.ExportURL(c, base, pw); err != nil {
			return
		}
		_, _ = fmt.Fprintln(stdout, u.String())
	case args.Import != nil:
		pw := args.Import.Password
		if pw == "" {
			if pw, err = readPassword(stdin); err != nil {
				return
			}
		}
		var id *keys.Identity
		if u, e := url.Parse(args.Import.Link); e == nil && u.Query().Has(sharelink.Param) {
			id, _, err = s.ImportURL(c, u, pw)
		} else {
			id, err = s.ImportLink(c, args.Import.Link, pw)
		}
		if err != nil {
			return
		}
		return printNpub(stdout, id)
	case args.Reset != nil:
		if !args.Reset.Yes {
			return errorf.E("reset forgets the secret key for good, pass --yes to confirm")
		}
		return s.Reset()
	}
	return
}

// keepInput writes what a failed note command would otherwise lose: the
// record when it was built, else the content as read.
func keepInput(w io.Writer, ev *event.T, content []byte) {
	if ev != nil {
		_, _ = fmt.Fprintf(w, "note not saved, its record:\n%s\n", ev.Marshal(nil))
		return
	}
	if len(content) > 0 {
		_, _ = fmt.Fprintf(w, "note not saved, its content:\n%s\n", content)
	}
}

func printNpub(w io.Writer, id *keys.Identity) (err error) {
	var npub string
	if npub, err = id.Npub(); err != nil {
		return
	}
	_, _ = fmt.Fprintln(w, npub)
	return
}

// explain turns the errors a user can act on into advice.
func explain(err error) string {
	switch {
	case errors.Is(err, errorf.ErrNoCredential):
		return "no identity yet: run 'nts init' or 'nts import <link>'"
	case errors.Is(err, errorf.ErrAuthenticationFailed):
		return "wrong password, or the data was altered: " + err.Error()
	case errors.Is(err, errorf.ErrInvalidEncoding):
		return "not a valid link or key: " + err.Error()
	}
	return err.Error()
}
