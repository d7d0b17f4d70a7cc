package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/fatih/color"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/qnkhuat/chessterm/pkg/api"
	"github.com/qnkhuat/chessterm/pkg/client"
	"github.com/qnkhuat/chessterm/pkg/gui"
	"github.com/qnkhuat/chessterm/pkg/logging"
)

func fatal(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, color.RedString(format, args...))
	os.Exit(1)
}

func loadTheme(name, path string) (gui.Theme, error) {
	var extra []gui.ThemeHex
	if path != "" {
		themes, err := gui.LoadThemes(path)
		if err != nil {
			return gui.Theme{}, err
		}
		extra = themes
	}
	return gui.ImportThemes(name, extra)
}

func main() {
	addr := flag.String("addr", api.DefaultAddr, "address of the authority server")
	logPath := flag.String("log", "./chessterm.log", "path to log file")
	level := flag.String("level", "info", "log level")
	themeName := flag.String("theme", gui.ThemeBasic.Name, "board theme")
	themesPath := flag.String("themes", "", "JSON file with extra themes")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fatal("chessterm needs an interactive terminal")
	}

	lvl, err := logging.ParseLevel(*level)
	if err != nil {
		fatal("bad -level: %v", err)
	}
	log, closer, err := logging.Init(*logPath, "client", lvl)
	if err != nil {
		fatal("%v", err)
	}

	err = run(log, *addr, *themeName, *themesPath)
	// fatal exits without running deferred calls, so the log is closed here
	closer.Close()
	if err != nil {
		fatal("%v", err)
	}
}

func run(log zerolog.Logger, addr, themeName, themesPath string) error {
	theme, err := loadTheme(themeName, themesPath)
	if err != nil {
		log.Error().Err(err).Str("theme", themeName).Msg("loading theme")
		return fmt.Errorf("theme %q: %w", themeName, err)
	}

	session := petname.Generate(2, "-")
	authority := api.NewClient(addr)
	log = log.With().Str("session", session).Str("session_id", authority.Session).Logger()
	log.Info().Str("addr", addr).Msg("new client")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := tview.NewApplication()
	renderer := gui.NewRenderer(theme)
	ctl := client.NewController(ctx, authority, renderer, gui.AppScheduler{App: app}, log)
	renderer.SetClickHandler(ctl.OnSquareClick)

	layout := gui.NewLayout(renderer, "chessterm · "+session, func(a gui.Action) {
		switch a {
		case gui.ActionRestart:
			ctl.Restart()
		case gui.ActionQuit:
			app.Stop()
		}
	})

	// Down when receive killed signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		app.Stop()
	}()

	ctl.Refresh()
	if err := app.SetRoot(layout, true).EnableMouse(true).Run(); err != nil {
		log.Error().Err(err).Msg("ui stopped")
		return err
	}
	log.Info().Msg("client closed")
	return nil
}
