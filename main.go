package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"moviecompare/internal/config"
	"moviecompare/internal/eventbus"
	"moviecompare/internal/lookup"
	"moviecompare/internal/omdb"
	"moviecompare/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "moviecompare",
	Short: "Compare two movies side by side",
	Long: `moviecompare searches OMDb as you type in two search boxes and, once a
movie is picked on both sides, marks which one did better on awards, box
office, Metascore, IMDb rating and IMDb votes.

The OMDb API key is read from the config file, the --api-key flag or the
MOVIECOMPARE_API_KEY environment variable.`,
	SilenceUsage: true,
	RunE:         run,
}

var (
	configPath string
	apiKey     string
	baseURL    string
	debug      bool
	logPath    string
)

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default "+config.DefaultPath()+")")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "OMDb API key")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "OMDb base URL")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Log at debug level")
	rootCmd.Flags().StringVar(&logPath, "log-file", "", "Log file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	configSvc := config.NewConfigServiceWithBus(path, bus)
	cfg, err := loadOrCreateConfig(configSvc)
	if err != nil {
		return err
	}
	if apiKey != "" {
		cfg.API.APIKey = apiKey
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if logPath != "" {
		cfg.Log.File = logPath
	}

	// Set up logging; the terminal belongs to the UI
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetReportTimestamp(true)
	setLogLevel(cfg.Log.Level)
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	if cfg.API.APIKey == "" {
		return fmt.Errorf("no OMDb API key: set api.api_key in %s, pass --api-key or export %s", configSvc.Path(), config.APIKeyEnv)
	}

	// Initialize services
	client := omdb.NewHTTPClient(cfg.API)
	lookupSvc := lookup.NewService(bus, client, cfg.API.Timeout())
	defer lookupSvc.Stop()

	uiModel := ui.NewModel(bus, cfg, client.Search)
	defer uiModel.Close()

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.UISettings.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Warn("event channel full, dropping event", "event", e.Type())
		}
	}
	unsubscribe := []func(){
		bus.Subscribe(eventbus.EventDetailsLoaded, forwardEvent),
		bus.Subscribe(eventbus.EventError, forwardEvent),
	}
	defer func() {
		for _, u := range unsubscribe {
			u()
		}
	}()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			case <-done:
				return
			}
		}
	}()

	log.Info("starting", "config", configSvc.Path(), "baseURL", cfg.API.BaseURL)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	log.Info("exiting")
	return nil
}

// loadOrCreateConfig loads the config file, writing the defaults first when
// there is none
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, error) {
	if _, err := os.Stat(configSvc.Path()); errors.Is(err, fs.ErrNotExist) {
		if err := configSvc.Save(config.DefaultConfig()); err != nil {
			// Not fatal: run on defaults
			fmt.Fprintf(os.Stderr, "Could not write default config: %v\n", err)
		}
	}

	cfg, err := configSvc.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func setLogLevel(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
