package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/sound"
	"github.com/tomz197/invaders/internal/sound/speaker"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, closeLog, err := newLogger(config.GetEnv("INVADERS_LOG", ""))
	if err != nil {
		return err
	}
	defer closeLog()

	tuning := config.DefaultTuning()
	if path := config.GetEnv("INVADERS_CONFIG", ""); path != "" {
		if tuning, err = config.LoadTuning(path); err != nil {
			return err
		}
		logger.Info("loaded tuning", "path", path)
	}

	var player sound.Player = sound.Nop{}
	if config.GetEnvBool("INVADERS_SOUND", true) {
		sp, err := speaker.New()
		if err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			player = sp
			defer sp.Close()
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	return game.Run(ctx, reader, os.Stdout, game.Options{
		Tuning: tuning,
		Logger: logger,
		Sound:  player,
		Name:   config.GetEnv("USER", game.DefaultName),
	})
}

// newLogger logs to path, or nowhere when path is empty: the terminal
// itself belongs to the game.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "invaders",
	})
	return logger, func() { _ = f.Close() }, nil
}
