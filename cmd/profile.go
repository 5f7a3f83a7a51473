package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriMail/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage backend profiles",
	Long:  `Manage profiles pointing at different email assistant deployments.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		pterm.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		pterm.Println("Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			pterm.Printf("  %s%s\n", name, marker)
			pterm.Printf("    Base URL: %s\n\n", baseURLOrDefault(cfg.Profiles[name]))
		}
		return nil
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		profileName := config.NormalizeProfileName(args[0])
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			return fmt.Errorf("profile '%s' does not exist", profileName)
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Profile " + profileName)).
			WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).
			Println("Base URL: " + baseURLOrDefault(profile))
		return nil
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label:    "Profile name",
				Validate: validateProfileName,
			}
			profileName, err = prompt.Run()
			if err != nil {
				return fmt.Errorf("prompt failed: %w", err)
			}
		}
		profileName = config.NormalizeProfileName(profileName)
		if err := validateProfileName(profileName); err != nil {
			return err
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			return fmt.Errorf("profile '%s' already exists", profileName)
		}

		baseURL, err := promptBaseURL(config.DefaultBaseURL)
		if err != nil {
			return err
		}

		cfg.Profiles[profileName] = config.Profile{BaseURL: baseURL}
		if err := cfg.Save(); err != nil {
			return err
		}

		pterm.Success.Printf("Profile '%s' added\n", profileName)
		return nil
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		profileName, err := pickProfile(cfg, args, "Select profile to edit", "")
		if err != nil {
			return err
		}

		profile, exists := cfg.Profiles[profileName]
		if !exists {
			return fmt.Errorf("profile '%s' does not exist", profileName)
		}

		profile.BaseURL, err = promptBaseURL(baseURLOrDefault(profile))
		if err != nil {
			return err
		}

		cfg.Profiles[profileName] = profile
		if err := cfg.Save(); err != nil {
			return err
		}

		pterm.Success.Printf("Profile '%s' updated\n", profileName)
		return nil
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		profileName, err := pickProfile(cfg, args, "Select profile to delete", "")
		if err != nil {
			return err
		}

		if _, exists := cfg.Profiles[profileName]; !exists {
			return fmt.Errorf("profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}

		deleteProfile(cfg, profileName)
		if err := cfg.Save(); err != nil {
			return err
		}

		pterm.Success.Printf("Profile '%s' deleted\n", profileName)
		return nil
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		if len(args) == 0 && len(cfg.Profiles) < 2 {
			pterm.Info.Println("No other profiles available to switch to")
			return nil
		}

		profileName, err := pickProfile(cfg, args, "Select profile to switch to", cfg.ActiveProfile)
		if err != nil {
			return err
		}

		if err := cfg.UseProfile(profileName); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}

		pterm.Success.Printf("Switched to profile '%s'\n", cfg.ActiveProfile)
		return nil
	},
}

// pickProfile returns the name from args or lets the user select one,
// leaving out exclude.
func pickProfile(cfg *config.Config, args []string, label, exclude string) (string, error) {
	if len(args) > 0 {
		return config.NormalizeProfileName(args[0]), nil
	}

	var names []string
	for _, name := range cfg.ProfileNames() {
		if name != exclude {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no profiles available")
	}

	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection failed: %w", err)
	}
	return name, nil
}

func promptBaseURL(current string) (string, error) {
	prompt := promptui.Prompt{
		Label:    "Base URL",
		Default:  current,
		Validate: config.ValidateBaseURL,
	}
	baseURL, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return baseURL, nil
}

// deleteProfile removes name. If it was active another profile takes over,
// and deleting the last one recreates the default.
func deleteProfile(cfg *config.Config, name string) {
	delete(cfg.Profiles, name)

	if len(cfg.Profiles) == 0 {
		cfg.Profiles[config.DefaultProfile] = config.Profile{BaseURL: config.DefaultBaseURL}
	}
	if cfg.ActiveProfile == name {
		cfg.ActiveProfile = cfg.ProfileNames()[0]
	}
}

func validateProfileName(name string) error {
	if config.NormalizeProfileName(name) == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	return nil
}

func baseURLOrDefault(p config.Profile) string {
	if p.BaseURL == "" {
		return config.DefaultBaseURL
	}
	return p.BaseURL
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
