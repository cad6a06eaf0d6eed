// blobterm-server serves the blob simulation over SSH. Every connection gets
// its own independent world. Build:
//
//	go build -o blobterm-server ./cmd/server
//
// Usage:
//
//	./blobterm-server [--config blobterm.toml] [--addr :2222] [--key server_host_key]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"unicode"

	"blobterm/internal/config"
	"blobterm/internal/game"
	"blobterm/internal/logging"
	internalssh "blobterm/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "Path to the TOML config")
	addr := flag.String("addr", "", "Listen address, overrides server.addr")
	keyFile := flag.String("key", "", "PEM host key path, overrides server.host_key (generated if absent)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *keyFile != "" {
		cfg.Server.HostKey = *keyFile
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, log)
	if err != nil {
		return err
	}

	srv := &gossh.Server{
		Addr: cfg.Server.Addr,
		Handler: func(s gossh.Session) {
			handleSession(s, cfg, log)
		},
		PtyCallback: func(gossh.Context, gossh.Pty) bool { return true },
		// No authentication: every client gets a private sandbox world.
		HostSigners: []gossh.Signer{signer},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = srv.Close()
	}()

	log.Info("ssh server listening", zap.String("addr", cfg.Server.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// termMu serialises the TERM swap around terminfo screen creation.
var termMu sync.Mutex

// handleSession runs one game for the lifetime of an SSH connection.
func handleSession(s gossh.Session, cfg *config.Config, log *zap.Logger) {
	log = log.With(
		zap.String("user", sanitizeName(s.User())),
		zap.String("remote", s.RemoteAddr().String()),
	)

	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "blobterm needs a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	term := internalssh.Term(s, pty)
	if !internalssh.AllowedTerms[term] {
		log.Warn("terminal type refused", zap.String("term", sanitizeName(term)))
		fmt.Fprintf(s, "Unsupported terminal type %q.\n", sanitizeName(term))
		return
	}

	screen, err := newSessionScreen(internalssh.NewSessionTty(s, pty, winCh), term)
	if err != nil {
		log.Error("screen setup failed", zap.Error(err))
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}

	log.Info("session started", zap.String("term", term))
	if err := playSession(s.Context(), screen, cfg, log); err != nil {
		log.Error("session ended with error", zap.Error(err))
		return
	}
	log.Info("session ended")
}

func newSessionScreen(tty tcell.Tty, term string) (tcell.Screen, error) {
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

// playSession runs a game on screen until ctx ends or the player quits.
// The screen is finalised on return.
func playSession(ctx context.Context, screen tcell.Screen, cfg *config.Config, log *zap.Logger) (err error) {
	defer screen.Fini()

	g, err := game.New(cfg, game.ScreenDeps(screen, cfg, log))
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, g.Close()) }()
	return g.Run(ctx)
}

// sanitizeName strips control characters and limits the result to 16 bytes
// without splitting a rune. It keeps client-supplied strings out of logs and
// terminal output in one piece.
func sanitizeName(s string) string {
	const maxBytes = 16
	out := make([]rune, 0, len(s))
	n := 0
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		size := len(string(r))
		if n+size > maxBytes {
			break
		}
		out = append(out, r)
		n += size
	}
	return string(out)
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key when the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *zap.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", zap.String("path", path))
			return signer, nil
		}
		log.Warn("host key unreadable, generating a new one", zap.String("path", path))
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	pemBlock, err := xssh.MarshalPrivateKey(key, "blobterm server")
	if err != nil {
		return nil, fmt.Errorf("marshal host key: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
		log.Warn("could not persist host key", zap.String("path", path), zap.Error(err))
	} else {
		log.Info("generated host key", zap.String("path", path))
	}
	return signer, nil
}
