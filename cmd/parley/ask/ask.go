package askcmder

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/parley/cmd/parley/clientopts"
	"github.com/papercomputeco/parley/pkg/render"
)

const askLongDesc string = `Send a single prompt, optionally with an image, and print the reply.

The image may be a local file or a URL. A local file with the given
name always takes precedence over URL treatment.

Examples:
  parley ask "Summarise the theory of relativity in one line"
  parley ask --image ./chart.png "What trend does this chart show?"
  parley ask --image https://example.com/cat.jpg --raw "Describe this"`

const askShortDesc string = "Send one prompt and print the reply"

type askCommander struct {
	opts  *clientopts.Options
	image string
	raw   bool
}

// NewAskCmd returns the ask command. opts carries the root's persistent
// client flags.
func NewAskCmd(opts *clientopts.Options) *cobra.Command {
	cmder := &askCommander{opts: opts}

	cmd := &cobra.Command{
		Use:          "ask [flags] <prompt...>",
		Short:        askShortDesc,
		Long:         askLongDesc,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&cmder.image, "image", "i", "", "Image path or URL to send with the prompt")
	cmd.Flags().BoolVar(&cmder.raw, "raw", false, "Print the reply verbatim instead of rendering markdown")

	return cmd
}

func (c *askCommander) run(ctx context.Context, cmd *cobra.Command, prompt string) error {
	client, log, err := c.opts.NewClient(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	reply, err := client.Send(ctx, prompt, c.image)
	if err != nil {
		return err
	}

	renderer, err := render.New(cmd.OutOrStdout(), c.raw)
	if err != nil {
		return err
	}
	return renderer.Reply(reply)
}
