package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/layoutdoc"
)

type renderOptions struct {
	output string
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <layout.yaml>",
		Short: "Render a layout document to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open layout: %w", err)
			}
			defer f.Close()
			doc, err := layoutdoc.Parse(f)
			if err != nil {
				return err
			}

			env, err := root.session()
			if err != nil {
				return err
			}
			engine, err := env.engine()
			if err != nil {
				return err
			}
			defer engine.Close()

			img, err := layoutdoc.Render(cmd.Context(), engine, doc)
			if err != nil {
				return err
			}
			if err := writePNG(cmd.OutOrStdout(), opts.output, img); err != nil {
				return err
			}
			compose.Logger().Info("composer: rendered",
				"layout", args[0], "output", opts.output,
				"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "out.png", "Output PNG file, - for stdout")

	return cmd
}
