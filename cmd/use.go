package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriMail/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the mail assistant",
	Long:  `Switch to the specified profile and immediately start the terminal UI.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		if err := cfg.UseProfile(args[0]); err != nil {
			return err
		}

		// Save config with new active profile
		if err := cfg.Save(); err != nil {
			return err
		}

		return runApp(cfg)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
