package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/asset"
	"github.com/gogpu/compose/internal/config"
	"github.com/gogpu/compose/text"
)

type rootFlags struct {
	configPath string
	assetRoot  string
	logLevel   string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "composer",
		Short:         "Render layout documents and card thumbnails",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := flags.logLevel
			if flags.verbose {
				level = "debug"
			}
			logger, err := newLogger(cmd.ErrOrStderr(), level)
			if err != nil {
				return err
			}
			compose.SetLogger(logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file (.yaml or .toml)")
	cmd.PersistentFlags().StringVar(&flags.assetRoot, "assets", ".", "Root directory of images, fonts and offset tables")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Shorthand for --log-level debug")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newThumbCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// session is what every subcommand needs: the validated configuration file
// and the collaborators built from it.
type session struct {
	file  *config.File
	store *asset.Store
	fonts *text.Library
}

func (f *rootFlags) session() (*session, error) {
	file := &config.File{}
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		file = loaded
	}
	store := asset.DirStore(f.assetRoot)
	var srcOpts []text.SourceOption
	if file.Shaping {
		srcOpts = append(srcOpts, text.WithShaping(true))
	}
	fonts := text.NewLibrary(
		text.WithFontFiles(store, file.FontDir),
		text.WithSourceOptions(srcOpts...),
	)
	compose.Logger().Debug("composer: environment",
		slog.String("assets", f.assetRoot), slog.String("config", f.configPath))
	return &session{file: file, store: store, fonts: fonts}, nil
}

// engine creates the layout engine described by the configuration.
func (e *session) engine() (*compose.Engine, error) {
	cfg, err := e.file.Engine()
	if err != nil {
		return nil, err
	}
	opts := []compose.Option{
		compose.WithConfig(cfg),
		compose.WithAssets(e.store),
		compose.WithFonts(e.fonts),
		compose.WithWorkers(e.file.Workers),
	}
	if e.file.RenderCache > 0 {
		opts = append(opts, compose.WithRenderCache(e.file.RenderCache))
	}
	return compose.New(opts...)
}
