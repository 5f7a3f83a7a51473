package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriMail/internal/backend"
	"github.com/Rorical/RoriMail/internal/config"
	"github.com/Rorical/RoriMail/internal/core"
	"github.com/Rorical/RoriMail/internal/logging"
	"github.com/Rorical/RoriMail/internal/models"
	"github.com/Rorical/RoriMail/ui/components"
)

// errRequestFailed signals exit code 1 after the failure was already shown.
var errRequestFailed = errors.New("request failed")

var askProfile string

var askCmd = &cobra.Command{
	Use:   "ask <query...>",
	Short: "Send one request without the full-screen UI",
	Long: `Send a single request to the email assistant and print the result.
If the assistant wants to run an action, you are asked to approve it first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if askProfile != "" {
			if err := cfg.UseProfile(askProfile); err != nil {
				return err
			}
		}

		logger, closer, err := logging.New(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		r := &askRunner{confirm: confirmAction, spinner: true}
		controller := core.NewController(
			backend.New(cfg.GetBaseURL(), backend.WithLogger(logger)),
			core.WithNotifier(core.NotifierFunc(r.collect)),
			core.WithLogger(logger),
		)
		return r.run(ctx, controller, strings.Join(args, " "))
	},
}

type askRunner struct {
	confirm func(p *models.PendingApproval) bool
	spinner bool
	notices []lineNotice
}

type lineNotice struct {
	kind    models.NotificationKind
	message string
}

// collect buffers notices so they don't interleave with the spinner.
func (r *askRunner) collect(kind models.NotificationKind, message string) {
	r.notices = append(r.notices, lineNotice{kind, message})
}

func (r *askRunner) flush() {
	for _, n := range r.notices {
		switch n.kind {
		case models.NotifySuccess:
			pterm.Success.Println(n.message)
		case models.NotifyError:
			pterm.Error.Println(n.message)
		default:
			pterm.Info.Println(n.message)
		}
	}
	r.notices = nil
}

func (r *askRunner) withSpinner(text string, fn func() core.Outcome) core.Outcome {
	if !r.spinner {
		return fn()
	}
	sp, err := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(text)
	outcome := fn()
	if err == nil {
		_ = sp.Stop()
	}
	return outcome
}

func (r *askRunner) run(ctx context.Context, controller *core.Controller, query string) error {
	seen := len(controller.Snapshot().Messages)

	outcome := r.withSpinner("Processing...", func() core.Outcome {
		return controller.SubmitQuery(ctx, query)
	})
	r.flush()

	switch outcome {
	case core.OutcomeIgnored:
		return errors.New("query is empty")
	case core.OutcomeAwaitingApproval:
		pending := controller.Snapshot().PendingApproval
		if !pending.Valid() {
			pterm.Warning.Println("The assistant asked for approval without naming an action")
			return errRequestFailed
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint("Approval Required")).
			WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).
			Println("Action: " + pending.ToolName + "\n\n" + components.FormatArgs(pending.Args))

		approved := r.confirm(pending)
		wait := "Executing action..."
		if !approved {
			wait = "Cancelling..."
		}
		outcome = r.withSpinner(wait, func() core.Outcome {
			return controller.ResolveApproval(ctx, approved)
		})
		r.flush()
	}

	for _, msg := range controller.Snapshot().Messages[seen:] {
		if msg.Type == models.Response {
			pterm.Println(msg.Content)
		}
	}

	if outcome == core.OutcomeFailed {
		return errRequestFailed
	}
	return nil
}

// confirmAction asks on the terminal. Anything but an explicit yes rejects.
func confirmAction(p *models.PendingApproval) bool {
	prompt := promptui.Prompt{
		Label:     "Run " + p.ToolName,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

func init() {
	askCmd.Flags().StringVarP(&askProfile, "profile", "p", "", "use this profile for the request without switching to it")
	rootCmd.AddCommand(askCmd)
}
