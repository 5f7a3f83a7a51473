package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/RoriMail/internal/config"
)

func TestDeleteProfile(t *testing.T) {
	tests := []struct {
		name       string
		profiles   []string
		active     string
		remove     string
		wantActive string
		wantNames  []string
	}{
		{
			name:       "inactive profile",
			profiles:   []string{"default", "work"},
			active:     "default",
			remove:     "work",
			wantActive: "default",
			wantNames:  []string{"default"},
		},
		{
			name:       "active profile hands over",
			profiles:   []string{"default", "staging", "work"},
			active:     "work",
			remove:     "work",
			wantActive: "default",
			wantNames:  []string{"default", "staging"},
		},
		{
			name:       "last profile recreates default",
			profiles:   []string{"work"},
			active:     "work",
			remove:     "work",
			wantActive: config.DefaultProfile,
			wantNames:  []string{config.DefaultProfile},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Profiles: map[string]config.Profile{}, ActiveProfile: tt.active}
			for _, p := range tt.profiles {
				cfg.Profiles[p] = config.Profile{BaseURL: "http://" + p + ".example.com"}
			}

			deleteProfile(cfg, tt.remove)

			assert.Equal(t, tt.wantActive, cfg.ActiveProfile)
			assert.Equal(t, tt.wantNames, cfg.ProfileNames())
		})
	}
}

func TestPickProfileFromArgs(t *testing.T) {
	name, err := pickProfile(&config.Config{}, []string{"  Work "}, "", "")
	assert.NoError(t, err)
	assert.Equal(t, "work", name)
}

func TestValidateProfileName(t *testing.T) {
	assert.Error(t, validateProfileName("   "))
	assert.NoError(t, validateProfileName("work"))
}

func TestBaseURLOrDefault(t *testing.T) {
	assert.Equal(t, config.DefaultBaseURL, baseURLOrDefault(config.Profile{}))
	assert.Equal(t, "https://mail.example.com", baseURLOrDefault(config.Profile{BaseURL: "https://mail.example.com"}))
}
