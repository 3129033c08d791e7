package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sstrand/romdeck/internal/backend"
	"github.com/sstrand/romdeck/internal/config"
	"github.com/sstrand/romdeck/internal/log"
	"github.com/sstrand/romdeck/internal/ratelimit"
	"github.com/sstrand/romdeck/internal/service"
	"github.com/sstrand/romdeck/internal/store"
	"github.com/sstrand/romdeck/internal/thumbs"
	"github.com/sstrand/romdeck/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// The device rejects bursts beyond this; stay inside its window.
const (
	requestBurst  = 3
	requestWindow = time.Second
)

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("romdeck %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting romdeck", "version", Version)

	// Open the settings and thumbnail store
	st, err := store.Open(config.DefaultDataPath())
	if err != nil {
		logger.Warn("persistent store unavailable, running in memory", "error", err)
		if st, err = store.Open(""); err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
	}
	defer st.Close()

	// Create the backend client behind the rate limiter
	limiter := ratelimit.New(requestBurst, requestWindow)
	client := backend.NewClient(cfg.Device.Address, limiter, logger)

	// Create services
	sessionSvc := service.NewSessionService(st, client, cfg.Device.Address, logger)
	gameSvc := service.NewGameService(client, logger)
	thumbCache := thumbs.NewCache(st, logger)

	// First run on an interactive terminal: offer to set the device address,
	// then write the config file so the remaining knobs are discoverable.
	if !sessionSvc.HasStoredAddress() && cfg.Device.Address == config.DefaultAddress {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			if err := promptForAddress(sessionSvc); err != nil {
				return err
			}
			cfg.Device.Address = sessionSvc.Address()
			if err := config.SaveConfig(cfg); err != nil {
				logger.Warn("failed to write config file", "error", err)
			}
		}
	}

	// Create TUI model
	model := tui.NewModel(gameSvc, sessionSvc, thumbCache, cfg.UI.GridColumns, cfg.UI.PageSize, logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// promptForAddress asks for the device address on first launch. Enter keeps
// the well-known default.
func promptForAddress(sessionSvc *service.SessionService) error {
	fmt.Println()
	fmt.Println("Welcome to romdeck!")
	fmt.Println()
	fmt.Printf("Enter your device address (hostname or IP, default %q): ", config.DefaultAddress)

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	address := strings.TrimSpace(input)
	if address == "" {
		return nil
	}
	if err := sessionSvc.SetAddress(address); err != nil {
		return fmt.Errorf("failed to save address: %w", err)
	}

	fmt.Printf("✓ Using device at %s\n", address)
	return nil
}
