package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csheth/insightlens/internal/console"
	"github.com/csheth/insightlens/internal/view"
)

const askRenderWidth = 100

var errBlankQuestion = errors.New("question must not be blank")

func newAskCommand() *cobra.Command {
	var viewFlag string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question and print the answer",
		Long: `Ask submits a single question to the backend and prints the chosen view.

Every argument is joined into the question, so quoting is optional:

  insightlens ask --view table top five portfolios by value`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := view.ParseMode(viewFlag)
			if err != nil {
				return err
			}
			client, _, err := newBackend(cmd.Context())
			if err != nil {
				return err
			}

			ctrl := console.New(console.WithLogger(GetLogger(cmd.Context())))
			ctrl.SetMode(mode)
			req, ok := ctrl.Submit(strings.Join(args, " "))
			if !ok {
				return errBlankQuestion
			}
			ctrl.Complete(console.Execute(cmd.Context(), client, req))
			ctrl.Teardown()

			state := ctrl.Snapshot()
			if state.Err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), state.ErrorMessage())
				return state.Err
			}

			out := cmd.OutOrStdout()
			if rendered := view.Render(state.Output(), view.Options{Width: askRenderWidth}); rendered != "" {
				fmt.Fprintln(out, rendered)
			}
			if len(state.History) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, view.RenderHistory(state.History[:1], view.Options{Width: askRenderWidth}))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&viewFlag, "view", view.ModeText.String(), "view to print (text|table|chart)")
	_ = cmd.RegisterFlagCompletionFunc("view", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(view.Modes))
		for _, m := range view.Modes {
			names = append(names, m.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
