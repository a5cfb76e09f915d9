package chatcmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/parley/cmd/parley/clientopts"
	"github.com/papercomputeco/parley/pkg/anthropic"
	"github.com/papercomputeco/parley/pkg/render"
)

const chatLongDesc string = `Prompt for messages in a loop and print each reply.

Every message is sent on its own; no conversation history is kept.
After each message you are asked whether to attach an image, given as
a local path or a URL. Type 'quit' to exit.

Examples:
  parley chat
  parley chat --model claude-3-haiku-20240307 --temperature 0.7`

const chatShortDesc string = "Interactive prompt loop"

const (
	messagePrompt = "Enter your message to Claude (or 'quit' to exit): "
	imagePrompt   = "Do you want to include an image? (yes/no): "
	pathPrompt    = "Enter the image path or URL: "
	replyLabel    = "Claude's response:"
)

type chatCommander struct {
	opts *clientopts.Options
	raw  bool
}

// NewChatCmd returns the chat command. opts carries the root's persistent
// client flags.
func NewChatCmd(opts *clientopts.Options) *cobra.Command {
	cmder := &chatCommander{opts: opts}

	cmd := &cobra.Command{
		Use:          "chat",
		Short:        chatShortDesc,
		Long:         chatLongDesc,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().BoolVar(&cmder.raw, "raw", false, "Print replies verbatim instead of rendering markdown")

	return cmd
}

func (c *chatCommander) run(ctx context.Context, cmd *cobra.Command) error {
	client, log, err := c.opts.NewClient(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	out := cmd.OutOrStdout()
	renderer, err := render.New(out, c.raw)
	if err != nil {
		return err
	}

	styles := lipgloss.NewRenderer(out)
	promptStyle := styles.NewStyle().Foreground(lipgloss.Color("12"))
	labelStyle := styles.NewStyle().Bold(true)
	errorStyle := styles.NewStyle().Foreground(lipgloss.Color("9"))

	fmt.Fprintln(out, styles.NewStyle().Faint(true).Render("Using "+clientopts.Describe(client)))

	lines := bufio.NewReader(cmd.InOrStdin())
	ask := func(prompt string) (string, bool, error) {
		fmt.Fprint(out, promptStyle.Render(prompt))
		return readLine(lines)
	}

	for {
		message, ok, err := ask(messagePrompt)
		if err != nil {
			return err
		}
		if !ok || strings.EqualFold(strings.TrimSpace(message), "quit") {
			break
		}

		choice, ok, err := ask(imagePrompt)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		var res anthropic.Result
		if strings.EqualFold(strings.TrimSpace(choice), "yes") {
			ref, ok, err := ask(pathPrompt)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			res = client.SendMessageWithImage(ctx, message, strings.TrimSpace(ref))
		} else {
			res = client.SendMessage(ctx, message)
		}

		fmt.Fprintln(out, labelStyle.Render(replyLabel))
		if err := printResult(out, renderer, errorStyle, res); err != nil {
			return err
		}
	}

	// Terminate the dangling prompt on EOF.
	fmt.Fprintln(out)
	return nil
}

// readLine returns the next line without its line terminator, of any
// length. ok is false once the input is exhausted.
func readLine(r *bufio.Reader) (line string, ok bool, err error) {
	line, err = r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if err != nil && line == "" {
		return "", false, nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}

func printResult(out io.Writer, renderer *render.Renderer, errorStyle lipgloss.Style, res anthropic.Result) error {
	if !res.OK() {
		_, err := fmt.Fprintln(out, errorStyle.Render(res.String()))
		return err
	}
	return renderer.Reply(res.Text)
}
