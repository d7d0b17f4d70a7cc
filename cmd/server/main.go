package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"github.com/qnkhuat/chessterm/pkg/authority"
	"github.com/qnkhuat/chessterm/pkg/logging"
	"github.com/qnkhuat/chessterm/pkg/sshd"
	"github.com/qnkhuat/chessterm/pkg/store"
)

func fatal(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, color.RedString(format, args...))
	os.Exit(1)
}

func main() {
	listen := flag.String("listen", "127.0.0.1:8000", "HTTP listen address")
	dbDir := flag.String("db", "", "badger directory for the saved game (empty keeps it in memory)")
	origins := flag.String("origins", "*", "CORS allowed origins")
	sshAddr := flag.String("ssh", "", "serve the terminal client over ssh on this address, e.g. :2222")
	hostKey := flag.String("hostkey", "", "ssh host key file")
	clientBin := flag.String("client", "chessterm", "client binary started for ssh sessions")
	computer := flag.String("computer", "", "let the computer play white or black")
	level := flag.String("level", "info", "log level")
	flag.Parse()

	lvl, err := logging.ParseLevel(*level)
	if err != nil {
		fatal("bad -level: %v", err)
	}
	log := logging.Console("server", lvl)

	var side chess.Color
	switch *computer {
	case "":
	case "white":
		side = chess.White
	case "black":
		side = chess.Black
	default:
		fatal("bad -computer %q: want white or black", *computer)
	}

	if err := run(log, *listen, *dbDir, *origins, *sshAddr, *hostKey, *clientBin, side); err != nil {
		fatal("%v", err)
	}
}

// run owns every resource that needs closing, so main only exits once
// the deferred calls here are done.
func run(log zerolog.Logger, listen, dbDir, origins, sshAddr, hostKey, clientBin string, side chess.Color) error {
	var (
		st  store.Store
		err error
	)
	if dbDir != "" {
		st, err = store.OpenBadger(dbDir)
		if err != nil {
			return err
		}
	} else {
		st = store.NewMemory()
	}
	defer st.Close()

	ctx := context.Background()
	srv, err := authority.New(ctx, st, log, authority.Config{AllowOrigins: origins, Computer: side})
	if err != nil {
		return err
	}

	if sshAddr != "" {
		front, err := sshd.New(sshd.Config{
			Addr:    sshAddr,
			HostKey: hostKey,
			Client:  clientBin,
			Args:    []string{"-addr", "http://" + listen, "-log", os.DevNull},
		}, log)
		if err != nil {
			return err
		}
		go func() {
			log.Info().Str("addr", sshAddr).Msg("ssh listening")
			if err := front.ListenAndServe(); err != nil {
				log.Error().Err(err).Msg("ssh server stopped")
			}
		}()
		defer front.Close()
	}

	// Wait for teminate signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		log.Info().Msg("shutting down")
		srv.Shutdown()
	}()

	color.Green("chessterm authority on http://%s", listen)
	return srv.Listen(listen)
}
