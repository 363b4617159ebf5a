package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/GabrielMeirinho/mash4gelt/internal/app"
	"github.com/GabrielMeirinho/mash4gelt/internal/audio"
	"github.com/GabrielMeirinho/mash4gelt/internal/audio/ebitenaudio"
	"github.com/GabrielMeirinho/mash4gelt/internal/config"
	"github.com/GabrielMeirinho/mash4gelt/internal/game"
	"github.com/GabrielMeirinho/mash4gelt/internal/random"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type options struct {
	config  string
	logFile string
	mute    bool
	seed    uint64
	strict  bool
	verbose bool
	version bool
}

// apply lets command-line values override the file.
func (o *options) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("seed") {
		cfg.Game.Seed = o.seed
	}
	if o.strict {
		cfg.Game.EmptyOptions = config.PolicyStrict
	}
}

func newCmd(opts *options) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MASH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "mash",
		Short:         "The MASH fortune-telling game, in your terminal.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&opts.config, "config", "c", "mash.yaml", "path to the game config file (env: MASH_CONFIG)")
	fs.StringVar(&opts.logFile, "log-file", "", "write logs to this file; logs are discarded otherwise (env: MASH_LOG_FILE)")
	fs.BoolVarP(&opts.mute, "mute", "m", false, "start with music off (env: MASH_MUTE)")
	fs.Uint64Var(&opts.seed, "seed", 0, "seed for reproducible spins, 0 picks one (env: MASH_SEED)")
	fs.BoolVar(&opts.strict, "strict", false, "refuse to spin with blank options (env: MASH_STRICT)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log every game event and audio command (env: MASH_VERBOSE)")
	fs.BoolVarP(&opts.version, "version", "V", false, "display version and exit (env: MASH_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("mash v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.LoadOrDefault(opts.config)
	if err != nil {
		return err
	}
	opts.apply(cmd.Flags(), cfg)

	if opts.logFile != "" {
		f, err := tea.LogToFile(opts.logFile, "mash")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	defaults, err := cfg.Categories()
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	rng, seed, err := random.New(cfg.Game.Seed)
	if err != nil {
		return err
	}
	log.Printf("starting mash v%s seed=%d policy=%s", releaseVersion, seed, cfg.Game.EmptyOptions)

	session := game.NewSession(
		game.WithDefaults(defaults),
		game.WithRand(rng),
		game.WithPolicy(cfg.Policy()),
	)

	var backend audio.Backend = audio.NullBackend{}
	if cfg.Audio.Enabled {
		backend = ebitenaudio.New(cfg.Audio.SampleRate, "")
	}
	ctrl := audio.NewController(backend, cfg.CueSpecs(), cfg.Audio.Enabled && !opts.mute)
	defer func() {
		if err := ctrl.Close(); err != nil {
			log.Printf("audio: close: %v", err)
		}
	}()

	m := app.New(session, ctrl, app.Settings{
		StepInterval:   cfg.Game.StepInterval,
		LetterInterval: cfg.Game.LetterInterval,
		Seed:           seed,
		Verbose:        opts.verbose,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
