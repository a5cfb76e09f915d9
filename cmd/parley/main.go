package main

import (
	"os"

	"github.com/spf13/cobra"

	askcmder "github.com/papercomputeco/parley/cmd/parley/ask"
	chatcmder "github.com/papercomputeco/parley/cmd/parley/chat"
	"github.com/papercomputeco/parley/cmd/parley/clientopts"
)

const rootLongDesc string = `parley sends prompts, optionally with an image, to the Anthropic
Messages API and prints the replies.

Settings are read from ~/.parley/config.toml (or --config), then a .env
file in the working directory, then the environment
(ANTHROPIC_API_KEY, ANTHROPIC_BASE_URL, PARLEY_MODEL), then flags.`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parley",
		Short: "Minimal Messages API client",
		Long:  rootLongDesc,
	}

	opts := &clientopts.Options{}
	opts.AddFlags(cmd)

	cmd.AddCommand(askcmder.NewAskCmd(opts))
	cmd.AddCommand(chatcmder.NewChatCmd(opts))

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
