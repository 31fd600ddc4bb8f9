package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"

	"github.com/user/fileterm/internal/api"
	"github.com/user/fileterm/internal/config"
	"github.com/user/fileterm/internal/hub"
	"github.com/user/fileterm/internal/platform"
	"github.com/user/fileterm/internal/pty"
	"github.com/user/fileterm/internal/search"
	"github.com/user/fileterm/internal/server"
)

func main() {
	setupLogging()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	shell, err := shellResolver(cfg)
	if err != nil {
		slog.Error("invalid shell configuration", "error", err)
		os.Exit(1)
	}

	manager := pty.NewManager(shell)
	defer manager.Close()

	h := hub.New(cfg.Token, hub.Callbacks{
		OnInput: func(sessionID, data string) {
			if err := manager.Write(sessionID, []byte(data)); err != nil {
				slog.Warn("session input failed", "session", sessionID, "error", err)
			}
		},
		OnResize: func(sessionID string, rows, cols uint16) {
			if err := manager.Resize(sessionID, rows, cols); err != nil {
				slog.Warn("session resize failed", "session", sessionID, "error", err)
			}
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go h.Run(ctx)

	// Single dispatcher: every session pump feeds one channel, and only
	// this goroutine hands events to the transport.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-manager.Events():
				switch ev.Type {
				case pty.EventOutput:
					h.BroadcastOutput(ev.SessionID, ev.Data)
				case pty.EventExit:
					h.BroadcastExit(ev.SessionID)
				}
			}
		}
	}()

	engine := &search.Engine{
		BatchSize:  cfg.SearchBatchSize,
		MaxResults: cfg.SearchMaxResults,
	}

	router := api.NewRouter(api.Deps{
		Sessions: manager,
		Engine:   engine,
		Hub:      h,
		Volumes:  platform.RootVolume{},
		Opener:   platform.DefaultOpener(),
		Trasher:  platform.DefaultTrasher(),
	}, cfg.Token)

	if cfg.PrintToken {
		fmt.Printf("\nfileterm running at http://localhost:%d?token=%s\n\n", cfg.Port, cfg.Token)
	}

	srv := server.New(cfg, h, router)
	if err := srv.Start(ctx); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogging() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// shellResolver prefers the configured shell command, falling back to the
// platform default.
func shellResolver(cfg *config.Config) (pty.ShellResolver, error) {
	if cfg.Shell == "" {
		return platform.DefaultShell, nil
	}
	argv, err := shellquote.Split(cfg.Shell)
	if err != nil {
		return nil, fmt.Errorf("parse shell %q: %w", cfg.Shell, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("shell %q resolves to an empty command", cfg.Shell)
	}
	return func() []string { return argv }, nil
}
