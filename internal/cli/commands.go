package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moosemarche/moosebot/backend/internal/config"
	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
	"github.com/moosemarche/moosebot/backend/pkg/log"
)

type options struct {
	configPath string
	brandPath  string
	delay      time.Duration
	debug      bool
	logLevel   string
}

// NewRootCmd builds the moosebot command tree. Flag defaults come from the environment.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	var store catalog.Store

	root := &cobra.Command{
		Use:   "moosebot",
		Short: "Moosebot - rule-based marketplace assistant",
		Long: `Moosebot answers vendor and consumer questions about the Moosemarche marketplace
simulation: ad campaign quotes, local vendor search, waitlist sign-up and brand policy.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := log.Init(log.Options{Level: opts.logLevel, Output: cmd.ErrOrStderr()}); err != nil {
				return err
			}
			loaded, err := catalog.Load(opts.configPath, opts.brandPath)
			if err != nil {
				return fmt.Errorf("CRITICAL ERROR: data files not found or invalid: %w", err)
			}
			store = loaded
			return nil
		},
	}

	defaults := defaultOptions()
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "catalog", defaults.configPath, "path to simulation_config.json")
	flags.StringVar(&opts.brandPath, "brand", defaults.brandPath, "path to brand_data.txt")
	flags.DurationVar(&opts.delay, "delay", defaults.delay, "artificial typing delay before each reply")
	flags.BoolVar(&opts.debug, "debug", defaults.debug, "show the internal logic panel after each reply")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	storeFn := func() catalog.Store { return store }
	root.AddCommand(newChatCmd(opts, storeFn))
	root.AddCommand(newAskCmd(opts, storeFn))
	return root
}

func defaultOptions() options {
	opts := options{
		configPath: "data/simulation_config.json",
		brandPath:  "data/brand_data.txt",
		delay:      500 * time.Millisecond,
	}
	cfg, err := config.Load()
	if err != nil {
		return opts
	}
	opts.configPath = cfg.Catalog.ConfigPath
	opts.brandPath = cfg.Catalog.BrandPath
	opts.delay = cfg.Chat.ResponseDelay
	opts.debug = cfg.Chat.Debug
	return opts
}

func newChatCmd(opts *options, store func() catalog.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newREPL(cmd.Context(), store(), cmd.OutOrStdout(), opts.delay, opts.debug)
			if err != nil {
				return err
			}
			return r.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

func newAskCmd(opts *options, store func() catalog.Store) *cobra.Command {
	return &cobra.Command{
		Use:     "ask [PROMPT]",
		Short:   "Answer a single prompt with an empty history",
		Example: `  moosebot ask "Quote for 30k views"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newREPL(cmd.Context(), store(), cmd.OutOrStdout(), 0, opts.debug)
			if err != nil {
				return err
			}
			return r.turn(cmd.Context(), strings.Join(args, " "))
		},
	}
}
