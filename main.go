package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/meiraka/mediaremote/internal/log"
	"github.com/meiraka/mediaremote/internal/remote"
	"github.com/meiraka/mediaremote/internal/shell"
	"github.com/spf13/pflag"
)

const (
	configName   = "mediaremote"
	closeTimeout = 5 * time.Second
)

var configDirs = func() []string {
	dirs := []string{"."}
	if d, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(d, configName))
	}
	return append(dirs, filepath.Join("/etc", configName))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	config, rest, err := ParseConfig(configDirs(), configName, args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 2
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 2
	}
	logger := log.New(stderr)
	if config.Debug {
		logger = log.NewDebugLogger(stderr)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := config.ClientOptions()
	opts.Logger = logger
	cl, err := remote.Dial(config.Server.Network, config.Address(), opts)
	if err != nil {
		logger.Errorf("couldn't connect to %s: %v", config.Address(), err)
		return 1
	}
	logger.Printf("connected to %s", config.Address())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := cl.Close(ctx); err != nil {
			logger.Debugf("close: %v", err)
		}
	}()

	s := shell.NewSession(cl, shell.Language(language(config.Lang)), logger)
	if len(rest) != 0 {
		return runOnce(ctx, s, rest, stdout, stderr)
	}
	return runSession(ctx, s, stdin, stdout)
}

func language(lang string) string {
	for _, l := range []string{lang, os.Getenv("LC_ALL"), os.Getenv("LANG")} {
		if len(l) != 0 {
			return l
		}
	}
	return ""
}

func runOnce(ctx context.Context, s *shell.Session, args []string, stdout, stderr io.Writer) int {
	a, ok := parseAction(args[0])
	if !ok || (a != shell.Search && a != shell.Play) {
		fmt.Fprintf(stderr, "unknown command: %s\nusage: %s [flags] [search|play <media name>]\n", args[0], configName)
		return 2
	}
	s.Type(strings.Join(args[1:], " "))
	out, err := s.Handle(ctx, a)
	if err != nil {
		fmt.Fprintln(stderr, s.Describe(err))
		return 1
	}
	fmt.Fprintln(stdout, strings.Trim(out, "\n"))
	return 0
}

// runSession reads commands from stdin until exit or EOF.
// A line is "search [name]", "play [name]", "clear", "reconnect", "exit" or a media name.
func runSession(ctx context.Context, s *shell.Session, stdin io.Reader, stdout io.Writer) int {
	fmt.Fprint(stdout, s.Text())
	sc := bufio.NewScanner(stdin)
	for !s.Done() && sc.Scan() {
		cmd, arg := sc.Text(), ""
		if i := strings.IndexByte(cmd, ' '); i >= 0 {
			cmd, arg = cmd[:i], cmd[i+1:]
		}
		a, ok := parseAction(cmd)
		if !ok {
			s.Type(sc.Text())
			continue
		}
		if len(arg) != 0 {
			s.Type(arg)
		}
		out, err := s.Handle(ctx, a)
		switch {
		case a == shell.Clear:
			fmt.Fprint(stdout, "\n"+s.Text())
		case err != nil && len(out) == 0:
			fmt.Fprintln(stdout, "\n"+s.Describe(err))
		default:
			fmt.Fprint(stdout, out)
		}
		if ctx.Err() != nil {
			return 1
		}
	}
	fmt.Fprintln(stdout)
	return 0
}

func parseAction(s string) (shell.Action, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "search", "print":
		return shell.Search, true
	case "play":
		return shell.Play, true
	case "clear":
		return shell.Clear, true
	case "exit", "quit":
		return shell.Exit, true
	case "reconnect":
		return shell.Reconnect, true
	}
	return 0, false
}
