package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	fs "github.com/strandworks/lumibot/configs"
	"github.com/strandworks/lumibot/internal/config"
	"github.com/strandworks/lumibot/pkg/env"
)

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}

	// Perform save synchronously (fast operation)
	path := config.GetRuntimePath()

	if err := os.MkdirAll(path, 0755); err != nil {
		s.err = fmt.Errorf("failed to create runtime directory: %w", err)
		return s, nil
	}

	envPath := filepath.Join(path, ".env")

	// Check if .env already exists
	if _, err := os.Stat(envPath); err == nil {
		s.err = fmt.Errorf(".env file already exists at %s", envPath)
		return s, nil
	}

	content, err := env.MarshalEnv(state)
	if err != nil {
		s.err = fmt.Errorf("failed to serialize configuration: %w", err)
		return s, nil
	}

	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil // Signal completion
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// SeedContentStep writes the embedded default content files to the runtime directory
type SeedContentStep struct {
	err  error
	done bool
}

func NewSeedContentStep() Step {
	return &SeedContentStep{}
}

func (s *SeedContentStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SeedContentStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.done {
		return nil, nil
	}

	path := config.GetRuntimePath()

	if err := os.MkdirAll(filepath.Join(path, "assets"), 0755); err != nil {
		s.err = fmt.Errorf("failed to create runtime directory: %w", err)
		return s, nil
	}

	files := []string{"texts.json", "files.json", "questions.json"}

	for _, name := range files {
		dst := filepath.Join(path, name)

		// Existing content survives re-installs
		if _, err := os.Stat(dst); err == nil {
			continue
		}

		data, err := fs.FS.ReadFile(name)
		if err != nil {
			s.err = fmt.Errorf("failed to read embedded %s: %w", name, err)
			return s, nil
		}

		if err := os.WriteFile(dst, data, 0644); err != nil {
			s.err = fmt.Errorf("failed to write %s: %w", dst, err)
			return s, nil
		}
	}

	s.done = true
	return nil, nil
}

func (s *SeedContentStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.done {
		return "Default content files initialized!\n"
	}
	return "Initializing content files...\n"
}
