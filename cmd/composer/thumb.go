package main

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/text"
	"github.com/gogpu/compose/thumb"
)

type thumbOptions struct {
	output string
	card   thumb.Card
	pair   string
	font   string
	fontPx float64
}

func newThumbCmd(root *rootFlags) *cobra.Command {
	opts := thumbOptions{}

	cmd := &cobra.Command{
		Use:   "thumb",
		Short: "Compose a card thumbnail or a paired-character badge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.pair == "" && opts.card.Base == "" {
				return fmt.Errorf("one of --base or --pair is required")
			}
			env, err := root.session()
			if err != nil {
				return err
			}
			c, err := newCompositor(env, opts)
			if err != nil {
				return err
			}
			defer c.Close()

			var img image.Image
			if opts.pair != "" {
				a, b, ok := strings.Cut(opts.pair, ",")
				if !ok {
					return fmt.Errorf("--pair wants two names separated by a comma, got %q", opts.pair)
				}
				img, err = c.PairBadge(cmd.Context(), strings.TrimSpace(a), strings.TrimSpace(b))
			} else {
				img, err = c.Compose(cmd.Context(), opts.card)
			}
			if err != nil {
				return err
			}
			if err := writePNG(cmd.OutOrStdout(), opts.output, img); err != nil {
				return err
			}
			compose.Logger().Info("composer: thumbnail written", "output", opts.output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "thumb.png", "Output PNG file, - for stdout")
	f.StringVar(&opts.card.Base, "base", "", "Base image path")
	f.StringVar(&opts.card.Rarity, "rarity", "", "Rarity tier: 1-6 or anniversary")
	f.StringVar(&opts.card.Attribute, "attribute", "", "Attribute icon name")
	f.IntVar(&opts.card.TrainingRank, "rank", 0, "Training rank badge")
	f.BoolVar(&opts.card.Owned, "owned", false, "Draw the caption band")
	f.StringVar(&opts.card.Caption, "caption", "", "Caption text for owned cards")
	f.StringVar(&opts.pair, "pair", "", "Compose a paired badge for two characters, e.g. kasumi,arisa")
	f.StringVar(&opts.font, "font", text.Bold, "Caption font")
	f.Float64Var(&opts.fontPx, "font-size", 14, "Caption font size in pixels")

	return cmd
}

func newCompositor(env *session, opts thumbOptions) (*thumb.Compositor, error) {
	cfg := env.file.Thumb
	var topts []thumb.Option
	if cfg.Size > 0 {
		topts = append(topts, thumb.WithSize(cfg.Size))
	}
	if cfg.Radius > 0 {
		topts = append(topts, thumb.WithRadius(cfg.Radius))
	}
	if cfg.Supersample > 0 {
		topts = append(topts, thumb.WithSupersample(cfg.Supersample))
	}
	if cfg.Dir != "" {
		topts = append(topts, thumb.WithAssetDir(cfg.Dir))
	}
	if env.file.Workers > 0 {
		topts = append(topts, thumb.WithWorkers(env.file.Workers))
	}
	if cfg.Offsets != "" {
		data, err := env.store.ReadFile("", cfg.Offsets)
		if err != nil {
			return nil, err
		}
		table, err := thumb.ParseOffsetTable(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		topts = append(topts, thumb.WithOffsets(table))
	}
	if opts.card.Owned && opts.card.Caption != "" {
		face, err := env.fonts.Face(opts.font, opts.fontPx)
		if err != nil {
			return nil, err
		}
		topts = append(topts, thumb.WithCaptionFace(face))
	}
	return thumb.New(env.store, topts...)
}
