package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"vitrine/internal/shared"
	"vitrine/internal/store"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	store  *store.Store
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	Store  *store.Store
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		store:  opts.Store,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, usersCommand, contentsCommand, engageCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openStore opens and migrates the configured database. An unopenable
// database degrades to the read-only fallback store; a failed migration is
// fatal and propagates.
func (r *Runner) openStore() (*store.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	s, err := store.Open(r.config.Database.Path, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns, r.logger)
	if err != nil {
		if errors.Is(err, shared.ErrMigrationFailed) {
			return nil, err
		}
		r.logger.Warn("database unavailable, serving fallback data", "error", err)
		return store.Unavailable(r.logger), nil
	}
	return s, nil
}

// closeStore closes a store obtained from openStore unless it was injected.
func (r *Runner) closeStore(s *store.Store) {
	if s != r.store {
		if err := s.Close(); err != nil {
			r.logger.Warn("failed to close store", "error", err)
		}
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	encoder := json.NewEncoder(r.output)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func (r *Runner) writeLine(format string, args ...any) {
	fmt.Fprintf(r.output, format+"\n", args...)
}
