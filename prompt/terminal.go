package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

//nolint:gochecknoglobals // shared styles
var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	markStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

// Terminal asks questions with interactive Bubble Tea prompts.
// Questions are serialised: one program owns the terminal at a time.
type Terminal struct {
	mu  sync.Mutex
	in  io.Reader
	out io.Writer
}

// NewTerminal returns a provider reading keys from in and drawing on out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// RequestText shows a single-line text input.
func (t *Terminal) RequestText(ctx context.Context, prompt string) (string, error) {
	final, err := t.run(ctx, newTextModel(prompt))
	if err != nil {
		return "", err
	}

	m, _ := final.(textModel)
	if m.canceled {
		return "", ErrCanceled
	}

	return m.value, nil
}

// RequestChoice shows options as a list navigated with the arrow keys.
func (t *Terminal) RequestChoice(ctx context.Context, prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}

	final, err := t.run(ctx, newChoiceModel(prompt, options))
	if err != nil {
		return "", err
	}

	m, _ := final.(choiceModel)
	if m.canceled {
		return "", ErrCanceled
	}

	return m.options[m.cursor], nil
}

func (t *Terminal) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	program := tea.NewProgram(model,
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, fmt.Errorf("prompt: %w", ctx.Err())
		}

		return nil, fmt.Errorf("prompt: %w", err)
	}

	return final, nil
}

type textModel struct {
	prompt   string
	input    textinput.Model
	value    string
	done     bool
	canceled bool
}

func newTextModel(prompt string) textModel {
	input := textinput.New()
	input.Prompt = "› "
	input.Focus()

	return textModel{prompt: prompt, input: input}
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type { //nolint:exhaustive // other keys go to the input
		case tea.KeyEnter:
			m.value = m.input.Value()
			m.done = true

			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m textModel) View() string {
	header := markStyle.Render("?") + " " + questionStyle.Render(m.prompt)

	switch {
	case m.done:
		return header + " " + answerStyle.Render(m.value) + "\n"
	case m.canceled:
		return header + " " + hintStyle.Render("(canceled)") + "\n"
	default:
		return header + "\n" + m.input.View() + "\n"
	}
}

type choiceModel struct {
	prompt   string
	options  []string
	cursor   int
	done     bool
	canceled bool
}

func newChoiceModel(prompt string, options []string) choiceModel {
	return choiceModel{prompt: prompt, options: options}
}

func (m choiceModel) Init() tea.Cmd {
	return nil
}

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.options)
	case "enter":
		m.done = true

		return m, tea.Quit
	case "ctrl+c", "esc":
		m.canceled = true

		return m, tea.Quit
	}

	return m, nil
}

func (m choiceModel) View() string {
	header := markStyle.Render("?") + " " + questionStyle.Render(m.prompt)

	if m.done {
		return header + " " + answerStyle.Render(m.options[m.cursor]) + "\n"
	}

	if m.canceled {
		return header + " " + hintStyle.Render("(canceled)") + "\n"
	}

	var b strings.Builder

	b.WriteString(header)
	b.WriteString(" ")
	b.WriteString(hintStyle.Render("(use arrow keys)"))
	b.WriteString("\n")

	for i, option := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("❯ " + option))
		} else {
			b.WriteString("  " + option)
		}

		b.WriteString("\n")
	}

	return b.String()
}
