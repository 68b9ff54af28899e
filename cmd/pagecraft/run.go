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
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/app"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/input"
	"github.com/Gaurav-Gosain/pagecraft/internal/logging"
	mcpserver "github.com/Gaurav-Gosain/pagecraft/internal/mcp"
	"github.com/Gaurav-Gosain/pagecraft/internal/server"
	"github.com/Gaurav-Gosain/pagecraft/internal/tape"
	"github.com/Gaurav-Gosain/pagecraft/pkg/pagecraft"
)

// loadConfig loads the user config, falling back to defaults, and applies
// the global flags on top of it.
func loadConfig() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config, using defaults: %v\n", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:   asciiOnly,
		BorderStyle: borderStyle,
		HideClock:   hideClock,
		Placement:   placement,
	}, userConfig)
	return userConfig
}

// newLogger builds the logger for a command. The editor logs to a file
// because it owns the terminal; headless commands log to stderr.
func newLogger(cfg *config.UserConfig, stderr bool, prefix string) (*log.Logger, io.Closer, error) {
	level := cfg.Logging.Level
	if debugMode {
		level = "debug"
	}
	return logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
		Stderr: stderr,
		Prefix: prefix,
	})
}

func loadTape(name string) ([]tape.Command, error) {
	path, err := tape.Resolve(name)
	if err != nil {
		return nil, err
	}
	commands, err := tape.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return commands, nil
}

func runLocal() error {
	userConfig := loadConfig()

	logger, closer, err := newLogger(userConfig, false, "")
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	app.SetInputHandler(input.HandleInput)

	opts := []app.Option{
		app.WithKeybindRegistry(config.NewKeybindRegistry(userConfig)),
		app.WithLogger(logger),
	}
	if tapeFile != "" {
		commands, err := loadTape(tapeFile)
		if err != nil {
			return err
		}
		opts = append(opts, app.WithTape(filepath.Base(tapeFile), commands))
	}

	editor := app.NewEditor(opts...)
	if err := editor.SetPlacement(config.Placement); err != nil {
		logger.Warn("ignoring placement", "err", err)
	}

	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Debug("starting editor", "config", configPath, "placement", config.Placement)
	}

	p := tea.NewProgram(
		editor,
		append(pagecraft.ProgramOptions(), tea.WithoutSignalHandler())...,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(sshHost, sshPort, sshKeyPath string) error {
	userConfig := loadConfig()

	logger, closer, err := newLogger(userConfig, true, "ssh")
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	app.SetInputHandler(input.HandleInput)

	cfg := &server.SSHServerConfig{
		Host:     firstNonEmpty(sshHost, userConfig.SSH.Host),
		Port:     firstNonEmpty(sshPort, strconv.Itoa(userConfig.SSH.Port)),
		KeyPath:  firstNonEmpty(sshKeyPath, userConfig.SSH.KeyPath),
		Version:  version,
		Keybinds: config.NewKeybindRegistry(userConfig),
		Logger:   logger,
	}
	logger.Info("starting pagecraft SSH server", "addr", cfg.Addr())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runMCPServer(tapeName string) error {
	userConfig := loadConfig()

	// Stdout carries the protocol.
	logger, closer, err := newLogger(userConfig, true, "mcp")
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	page := pagecraft.NewPage(
		pagecraft.PageWithPlacement(config.Placement),
		pagecraft.PageWithLogger(logger),
	)
	if tapeName != "" {
		commands, err := loadTape(tapeName)
		if err != nil {
			return err
		}
		if err := page.Run(commands); err != nil {
			return fmt.Errorf("tape %s: %w", tapeName, err)
		}
		logger.Info("tape loaded", "tape", tapeName, "components", page.Canvas().Len())
	}

	s := mcpserver.New(
		mcpserver.WithCanvas(page.Canvas()),
		mcpserver.WithPlacement(page.Placement()),
		mcpserver.WithLogger(logger),
		mcpserver.WithVersion(version),
	)
	return s.ServeStdio()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
