package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriMail/internal/app"
	"github.com/Rorical/RoriMail/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "rorimail",
	Short:         "Terminal client for the email assistant",
	Long:          `RoriMail sends your requests to the email assistant and asks before it sends anything on your behalf.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		return runApp(cfg)
	},
}

func runApp(cfg *config.Config) error {
	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}
	defer application.Stop()

	return application.Start()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if err != errRequestFailed {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
