package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Strings
const (
	txtKeyPlaceholder = "mdlm_..."
	txtKeyPrompt      = "Enter your API key"
	txtKeyInfo        = "Find it on the markdownlm dashboard under Settings. Input is hidden."
	txtInvalidKey     = "Invalid key: must start with 'mdlm_'"
	txtConfigureHelp  = "Press 'Enter' to submit. 'Esc' or 'Ctrl+C' to quit."
)

// Styles
var (
	focusedStyle     = green
	helpStyle        = gray
	errorTextStyle   = red
	errorHeaderStyle = red.Bold(true)
	placeholderStyle = gray
	titleStyle       = cyan.Bold(true)
)

type ConfigureTUIOpts struct {
	APIURL       string
	ConfigPath   string
	KeyValidator func(key string) bool
}

// configureModel holds the prompt state.
type configureModel struct {
	opts *ConfigureTUIOpts

	keyInput     textinput.Model
	errorMessage string

	key       string // set once a valid key is submitted
	cancelled bool
}

func newConfigureModel(opts *ConfigureTUIOpts) configureModel {
	input := textinput.New()
	input.Placeholder = txtKeyPlaceholder
	input.Focus()
	input.CharLimit = 128
	input.Width = 64
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.PromptStyle = focusedStyle
	input.TextStyle = focusedStyle
	input.PlaceholderStyle = placeholderStyle

	return configureModel{
		opts:     opts,
		keyInput: input,
	}
}

func (m configureModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m configureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			return m.submitKey()
		}

		// Clear the error once the user types again.
		m.errorMessage = ""
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

func (m configureModel) submitKey() (tea.Model, tea.Cmd) {
	keyVal := strings.TrimSpace(m.keyInput.Value())
	if !m.opts.KeyValidator(keyVal) {
		m.errorMessage = txtInvalidKey
		return m, nil
	}

	m.key = keyVal
	return m, tea.Quit
}

func (m configureModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("mdlm configure"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s%s\n", gray.Render("Server  "), green.Render(m.opts.APIURL)))
	b.WriteString(fmt.Sprintf("%s%s\n", gray.Render("Config  "), green.Render(m.opts.ConfigPath)))
	b.WriteString("\n")

	b.WriteString(txtKeyPrompt)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(txtKeyInfo))
	b.WriteString("\n\n")
	b.WriteString(m.keyInput.View())

	if m.errorMessage != "" {
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s %s", errorHeaderStyle.Render("ERROR:"), errorTextStyle.Render(m.errorMessage)))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(txtConfigureHelp))
	b.WriteString("\n")
	return b.String()
}

// RunConfigureTUI prompts for the API key with hidden input and returns it.
func RunConfigureTUI(opts ConfigureTUIOpts) (string, error) {
	model, err := tea.NewProgram(newConfigureModel(&opts)).Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	fm, ok := model.(configureModel)
	if !ok || fm.cancelled || fm.key == "" {
		return "", fmt.Errorf("configure cancelled")
	}

	return fm.key, nil
}
