// Package tui implements the interactive chat session over an indexed
// repository.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
	"github.com/bhumika152/GitAssistant-Ollama/internal/core/ports/driving"
)

// role identifies who produced a chat message.
type role int

const (
	roleUser role = iota
	roleAssistant
	roleError
)

// message is one entry in the chat transcript.
type message struct {
	id      uuid.UUID
	role    role
	text    string
	sources []domain.RetrievedDocument
}

// answerMsg carries the assistant's reply back into the update loop.
type answerMsg struct {
	id     uuid.UUID
	answer domain.Answer
	err    error
}

// App is the chat TUI model following the Elm architecture.
type App struct {
	assistant driving.Assistant
	ctx       context.Context
	repo      string
	styles    *Styles

	input    textinput.Model
	spin     spinner.Model
	viewport viewport.Model

	transcript []message
	waiting    bool
	ready      bool
	width      int
	height     int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the chat model for an already-attached repository.
func NewApp(ctx context.Context, assistant driving.Assistant, repo string) *App {
	styles := DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask about " + repo + "..."
	input.Prompt = "> "
	input.CharLimit = 500
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner

	return &App{
		assistant: assistant,
		ctx:       ctx,
		repo:      repo,
		styles:    styles,
		input:     input,
		spin:      spin,
	}
}

// Init starts the cursor blink.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles terminal events and answer completions.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		headerHeight := 2
		footerHeight := 3
		a.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
		a.viewport.SetContent(a.renderTranscript())
		a.viewport.GotoBottom()
		a.input.Width = msg.Width - 4
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			if a.waiting {
				return a, nil
			}
			question := strings.TrimSpace(a.input.Value())
			if question == "" {
				return a, nil
			}
			if question == "/quit" || question == "/exit" {
				return a, tea.Quit
			}
			a.input.Reset()
			a.append(message{id: uuid.New(), role: roleUser, text: question})
			a.waiting = true
			return a, tea.Batch(a.spin.Tick, a.ask(question))
		}

	case answerMsg:
		a.waiting = false
		if msg.err != nil {
			a.append(message{id: msg.id, role: roleError, text: msg.err.Error()})
		} else {
			a.append(message{
				id:      msg.id,
				role:    roleAssistant,
				text:    msg.answer.Text,
				sources: msg.answer.Sources,
			})
		}
		return a, nil

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// View renders the transcript, the spinner while waiting, and the
// input line.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Header.Render("gitassist chat - "+a.repo) + "\n\n")
	b.WriteString(a.viewport.View() + "\n")

	if a.waiting {
		b.WriteString(a.spin.View() + " thinking...\n")
	} else {
		b.WriteString(a.input.View() + "\n")
	}
	b.WriteString(a.styles.Help.Render("enter: send • esc: quit"))
	return b.String()
}

func (a *App) append(m message) {
	a.transcript = append(a.transcript, m)
	if a.ready {
		a.viewport.SetContent(a.renderTranscript())
		a.viewport.GotoBottom()
	}
}

func (a *App) renderTranscript() string {
	var parts []string
	for _, m := range a.transcript {
		switch m.role {
		case roleUser:
			parts = append(parts, a.styles.User.Render("you: ")+m.text)
		case roleAssistant:
			text := a.styles.Assistant.Render("assistant: ") + m.text
			if len(m.sources) > 0 {
				var refs []string
				for _, src := range m.sources {
					refs = append(refs, fmt.Sprintf("%s (%.2f)", src.Document.FilePath, src.Similarity))
				}
				text += "\n" + a.styles.Sources.Render("sources: "+strings.Join(refs, ", "))
			}
			parts = append(parts, text)
		case roleError:
			parts = append(parts, a.styles.Error.Render("error: "+m.text))
		}
	}
	return strings.Join(parts, "\n\n")
}

// ask runs the question off the update loop.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.assistant.Ask(a.ctx, question)
		return answerMsg{id: uuid.New(), answer: answer, err: err}
	}
}

// Run attaches the repository and blocks until the chat session ends.
func Run(ctx context.Context, assistant driving.Assistant, repo string) error {
	if err := assistant.Attach(ctx, repo); err != nil {
		return fmt.Errorf("attaching %s: %w", repo, err)
	}

	app := NewApp(ctx, assistant, repo)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat session: %w", err)
	}
	return nil
}
