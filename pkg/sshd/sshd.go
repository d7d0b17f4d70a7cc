// Package sshd serves the terminal client over ssh: every interactive
// session gets its own client process attached to a pseudo-terminal.
package sshd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"
	gossh "golang.org/x/crypto/ssh"
)

const IdleTimeout = 5 * time.Minute

type Config struct {
	Addr string
	// HostKey is a PEM private key file; a key is generated when empty
	HostKey string
	// Client is the path of the client binary started for each session
	Client string
	// Args are passed to the client, e.g. the authority address
	Args []string
}

type Server struct {
	*ssh.Server
	cfg Config
	log zerolog.Logger
}

func New(cfg Config, log zerolog.Logger) (*Server, error) {
	s := &Server{cfg: cfg, log: log}
	s.Server = &ssh.Server{
		Addr:        cfg.Addr,
		IdleTimeout: IdleTimeout,
		Handler:     s.handle,
	}
	if cfg.HostKey != "" {
		signer, err := loadHostKey(cfg.HostKey)
		if err != nil {
			return nil, err
		}
		s.AddHostKey(signer)
	}
	return s, nil
}

func loadHostKey(path string) (gossh.Signer, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading host key: %w", err)
	}
	signer, err := gossh.ParsePrivateKey(pem)
	if err != nil {
		return nil, fmt.Errorf("parsing host key %s: %w", path, err)
	}
	return signer, nil
}

func (s *Server) handle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}
	log := s.log.With().Str("user", sess.User()).Str("remote", sess.RemoteAddr().String()).Logger()
	log.Info().Msg("session started")

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, s.cfg.Client, s.cfg.Args...)
	cmd.Env = append(sess.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, winsize(ptyReq.Window))
	if err != nil {
		log.Error().Err(err).Msg("starting client")
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, winsize(win)); err != nil {
				log.Debug().Err(err).Msg("resizing pty")
			}
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	if err := cmd.Wait(); err != nil {
		log.Info().Err(err).Msg("client exited")
	}
	log.Info().Msg("session ended")
}

func winsize(w ssh.Window) *pty.Winsize {
	return &pty.Winsize{Rows: uint16(w.Height), Cols: uint16(w.Width)}
}
