// Package cmd implements the easecli command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yhkl-dev/EaseCLI/cache"
	"github.com/yhkl-dev/EaseCLI/config"
	"github.com/yhkl-dev/EaseCLI/coverart"
	"github.com/yhkl-dev/EaseCLI/device"
	"github.com/yhkl-dev/EaseCLI/engine"
	"github.com/yhkl-dev/EaseCLI/library"
	"github.com/yhkl-dev/EaseCLI/logging"
	"github.com/yhkl-dev/EaseCLI/netease"
	"github.com/yhkl-dev/EaseCLI/player"
	"github.com/yhkl-dev/EaseCLI/ui"
	"github.com/yhkl-dev/EaseCLI/where"
	"go.uber.org/multierr"
	"golang.org/x/term"
)

func init() {
	rootCmd.Flags().String("config", "", "Path to a config.toml (default $HOME/.config/easecli/config.toml)")

	rootCmd.Flags().Int("tick-rate", 1000, "Tick cadence in milliseconds")
	lo.Must0(viper.BindPFlag("player.tick_rate", rootCmd.Flags().Lookup("tick-rate")))

	rootCmd.Flags().Bool("enhanced-graphics", true, "Use colours and block glyphs for the progress bar")
	lo.Must0(viper.BindPFlag("ui.enhanced_graphics", rootCmd.Flags().Lookup("enhanced-graphics")))

	rootCmd.Flags().String("backend", config.BackendBeep, "Audio backend: beep or mpv")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("backend", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{config.BackendBeep, config.BackendMPV}, cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag("player.backend", rootCmd.Flags().Lookup("backend")))
}

var rootCmd = &cobra.Command{
	Use:          "easecli",
	Short:        "A terminal music player for NetEase Cloud Music",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("easecli needs an interactive terminal")
		}

		cfg, err := config.Load(viper.GetViper(), lo.Must(cmd.Flags().GetString("config")))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return run(ctx, cfg)
	},
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	cc.Init(&cc.Config{
		RootCmd:       rootCmd,
		Headings:      cc.HiCyan + cc.Bold + cc.Underline,
		Commands:      cc.HiYellow + cc.Bold,
		Example:       cc.Italic,
		ExecName:      cc.Bold,
		Flags:         cc.Bold,
		FlagsDataType: cc.Italic + cc.HiBlue,
	})

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) (err error) {
	logFile, err := logging.Setup(cfg.Log, where.Logs())
	if err != nil {
		return err
	}
	log := logging.For("main")
	defer func() {
		err = multierr.Append(err, logFile.Close())
	}()

	client, err := netease.Init(cfg.API.BaseURL, cfg.API.GetTimeout())
	if err != nil {
		return err
	}
	catalog := library.NewNeteaseLibrary(client)
	media := cache.New(afero.NewOsFs(), cfg.Cache.Dir, client.MediaClient())

	sinks, err := player.NewFactory(cfg.Player.Backend)
	if err != nil {
		return err
	}

	app := ui.NewApp(cfg.UI, cfg.Player.GetTickRate(), coverart.NewConverter(nil))
	eng, err := engine.New(engine.Options{
		Catalog:  catalog,
		Media:    media,
		Sinks:    sinks,
		TickRate: cfg.Player.GetTickRate(),
		Volume:   cfg.Player.Volume,
		OnChange: app.Publish,
	})
	if err != nil {
		return errors.Wrap(err, "start engine")
	}
	defer eng.Close()

	monitor := device.NewAudioMonitor(func() {
		app.Send(engine.Of(engine.Pause))
	})
	app.AddWorker(monitor.Run)

	if cfg.Account.HasCredentials() {
		app.PrefillLogin(cfg.Account.Phone)
		app.Send(engine.LoginWith(cfg.Account.Phone, cfg.Account.Password))
	}

	log.WithField("backend", cfg.Player.Backend).Info("starting")
	if err := app.Run(ctx, eng); err != nil {
		log.WithError(err).Error("exited with error")
		return err
	}
	log.Info("bye")
	return nil
}
