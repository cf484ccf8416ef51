package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lexiqai/ttsdesk/internal/catalog"
	"github.com/lexiqai/ttsdesk/internal/converter"
)

const (
	appTitle       = "Text to Speech Converter"
	readyStatus    = "Ready"
	busyStatus     = "Converting..."
	textareaHeight = 10
	minWidth       = 40
)

type keyMap struct {
	Quit      key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Submit    key.Binding
	Activate  key.Binding
	Toggle    key.Binding
	PrevLang  key.Binding
	NextLang  key.Binding
	FirstLang key.Binding
	LastLang  key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc")),
	NextFocus: key.NewBinding(key.WithKeys("tab")),
	PrevFocus: key.NewBinding(key.WithKeys("shift+tab")),
	Submit:    key.NewBinding(key.WithKeys("ctrl+s")),
	Activate:  key.NewBinding(key.WithKeys("enter")),
	Toggle:    key.NewBinding(key.WithKeys(" ", "space", "enter")),
	PrevLang:  key.NewBinding(key.WithKeys("up", "left")),
	NextLang:  key.NewBinding(key.WithKeys("down", "right")),
	FirstLang: key.NewBinding(key.WithKeys("home")),
	LastLang:  key.NewBinding(key.WithKeys("end")),
}

// Model is the bubbletea model of the converter window
type Model struct {
	ctx        context.Context
	form       Form
	converter  Converter
	state      State
	focus      focusArea
	textarea   textarea.Model
	spinner    spinner.Model
	status     string
	statusKind statusKind
	width      int
	quitting   bool
}

// NewModel creates the view over cat with the entry at langIndex preselected.
// Conversions run under ctx and are cancelled with it.
func NewModel(ctx context.Context, cat *catalog.Catalog, langIndex int, conv Converter) Model {
	ta := textarea.New()
	ta.Placeholder = "Type the text to speak..."
	ta.CharLimit = 0 // No limit
	ta.MaxHeight = 0 // No limit
	ta.ShowLineNumbers = false
	ta.SetHeight(textareaHeight)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(busyStyle))

	return Model{
		ctx:       ctx,
		form:      NewForm(cat, langIndex),
		converter: conv,
		state:     StateIdle,
		focus:     focusText,
		textarea:  ta,
		spinner:   sp,
		status:    readyStatus,
	}
}

// State returns the current conversion state
func (m Model) State() State {
	return m.state
}

// Form returns the current form values
func (m Model) Form() Form {
	return m.form
}

// Status returns the status line text
func (m Model) Status() string {
	return m.status
}

// Init returns the initial command
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles incoming messages on the UI loop. It is the only place
// model state changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 4
		if w < minWidth {
			w = minWidth
		}
		m.textarea.SetWidth(w)
		return m, nil

	case spinner.TickMsg:
		if m.state != StateConverting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ConversionDoneMsg:
		return m.finishConversion(msg.Result), nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.NextFocus):
		return m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, keys.PrevFocus):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, keys.Submit):
		return m.submit()
	}

	switch m.focus {
	case focusText:
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		m.form.SetText(m.textarea.Value())
		return m, cmd

	case focusLanguage:
		switch {
		case key.Matches(msg, keys.PrevLang):
			m.form.MoveLanguage(-1)
		case key.Matches(msg, keys.NextLang):
			m.form.MoveLanguage(1)
		case key.Matches(msg, keys.FirstLang):
			m.form.SelectLanguage(0)
		case key.Matches(msg, keys.LastLang):
			m.form.SelectLanguage(m.form.catalog.Len() - 1)
		case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
			m.form.JumpToLanguage(msg.Runes[0])
		}
		return m, nil

	case focusSlow:
		if key.Matches(msg, keys.Toggle) {
			m.form.ToggleSlow()
		}
		return m, nil

	case focusConvert:
		if key.Matches(msg, keys.Activate) {
			return m.submit()
		}
	}

	return m, nil
}

func (m Model) setFocus(f focusArea) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == focusText {
		return m, m.textarea.Focus()
	}
	m.textarea.Blur()
	return m, nil
}

// submit moves Idle -> Converting and starts the worker
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.state.CanSubmit() {
		return m, nil
	}

	req := m.form.Request()
	m.state = StateConverting
	m.status = busyStatus
	m.statusKind = statusBusy

	return m, tea.Batch(convertCmd(m.ctx, m.converter, req), m.spinner.Tick)
}

// finishConversion moves Converting -> Idle regardless of the outcome
func (m Model) finishConversion(res converter.Result) Model {
	m.state = StateIdle

	var vErr *converter.ValidationError
	switch {
	case res.OK():
		m.status = fmt.Sprintf("✅ Saved as: %s", res.FilePath)
		m.statusKind = statusSuccess
	case errors.As(res.Err, &vErr):
		m.status = res.Message
		m.statusKind = statusError
	default:
		m.status = fmt.Sprintf("❌ Error: %s", res.Message)
		m.statusKind = statusError
	}
	return m
}

// View renders the window
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(appTitle))
	sb.WriteString("\n\n")

	sb.WriteString(sectionStyle.Render("Voice Settings"))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel(focusLanguage, "Select Language\n"+m.languageView()),
		" ",
		m.panel(focusSlow, "Speech Speed\n"+m.slowView()),
	))
	sb.WriteString("\n\n")

	sb.WriteString(sectionStyle.Render("Enter Text"))
	sb.WriteString("\n")
	sb.WriteString(m.panel(focusText, m.textarea.View()))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("Characters: %d", m.form.CharCount())))
	sb.WriteString("\n\n")

	sb.WriteString(m.statusView())
	sb.WriteString("   ")
	sb.WriteString(m.buttonView())
	sb.WriteString("\n\n")

	sb.WriteString(mutedStyle.Render("tab: next field • ctrl+s: convert • esc: quit"))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) panel(f focusArea, content string) string {
	if m.focus == f {
		return focusedPanelStyle.Render(content)
	}
	return panelStyle.Render(content)
}

func (m Model) languageView() string {
	label := m.form.Language().Label()
	if m.focus == focusLanguage {
		return fmt.Sprintf("‹ %s › %d/%d", label, m.form.LanguageIndex()+1, m.form.catalog.Len())
	}
	return label
}

func (m Model) slowView() string {
	box := "[ ]"
	if m.form.Slow() {
		box = "[x]"
	}
	return box + " Slow Mode"
}

func (m Model) statusView() string {
	switch m.statusKind {
	case statusBusy:
		return m.spinner.View() + " " + busyStyle.Render(m.status)
	case statusSuccess:
		return successStyle.Render(m.status)
	case statusError:
		return errorStyle.Render(m.status)
	default:
		return mutedStyle.Render(m.status)
	}
}

func (m Model) buttonView() string {
	const label = "Convert to Speech"
	switch {
	case !m.state.CanSubmit():
		return disabledButtonStyle.Render(label)
	case m.focus == focusConvert:
		return focusedButtonStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}
