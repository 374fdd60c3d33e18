// Package tui implements the Bubble Tea terminal front end for a game session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguess/internal/game"
)

const defaultFetchTimeout = 30 * time.Second

// wordMsg carries the result of an asynchronous word fetch.
type wordMsg struct {
	word string
	err  error
}

// Model is the top-level Bubble Tea model. The session is only touched from
// Update; fetches run as commands and report back through wordMsg.
type Model struct {
	session  *game.Session
	provider game.WordProvider
	input    textinput.Model

	loading bool
	notice  string
	err     error

	fetchTimeout time.Duration
}

// New creates a model over s, fetching words from p.
func New(s *game.Session, p game.WordProvider) Model {
	in := textinput.New()
	in.Placeholder = fmt.Sprintf("%d-letter word", s.WordLength())
	in.CharLimit = s.WordLength()
	in.Prompt = "> "
	in.Focus()

	return Model{
		session:      s,
		provider:     p,
		input:        in,
		loading:      true,
		fetchTimeout: defaultFetchTimeout,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch())
}

// fetch requests one word for the session settings.
func (m Model) fetch() tea.Cmd {
	p, settings, timeout := m.provider, m.session.Settings(), m.fetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		w, err := p.FetchWord(ctx, settings.Language, settings.Difficulty.WordLength())
		return wordMsg{word: w, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case wordMsg:
		m.loading = false
		err := msg.err
		if err == nil {
			err = m.session.BeginWith(msg.word)
		} else if !errors.Is(err, game.ErrWordFetchFailed) {
			err = fmt.Errorf("%w: %w", game.ErrWordFetchFailed, err)
		}
		if err != nil {
			log.Warn().Err(err).Msg("fetch word")
			m.err = err
			return m, nil
		}
		m.err = nil
		m.notice = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.NewRound):
			if m.loading {
				return m, nil
			}
			m.session.Clear()
			m.loading = true
			m.err = nil
			m.notice = ""
			m.input.SetValue("")
			return m, m.fetch()

		case key.Matches(msg, keys.Submit):
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() {
	m.err = nil
	m.notice = ""
	if m.loading {
		return
	}
	eg, err := m.session.SubmitGuess(m.input.Value())
	switch {
	case errors.Is(err, game.ErrInvalidGuessLength):
		m.err = fmt.Errorf("the word must have %d letters", m.session.WordLength())
		return
	case errors.Is(err, game.ErrInvalidLetters):
		m.err = errors.New("letters only")
		return
	case errors.Is(err, game.ErrSessionNotActive) && m.session.Status() == game.StatusAwaitingWord:
		m.err = errors.New("no word yet, press ctrl+r to retry")
		return
	case errors.Is(err, game.ErrSessionNotActive):
		m.err = errors.New("round over, press ctrl+r for a new word")
		return
	case err != nil:
		m.err = err
		return
	}
	m.input.SetValue("")

	target, _ := m.session.Target()
	switch m.session.Status() {
	case game.StatusWon:
		m.notice = "You guessed it: " + target.String()
	case game.StatusLost:
		m.notice = "The word was: " + target.String()
	}
	log.Debug().Str("guess", eg.Word.String()).Str("status", string(m.session.Status())).Msg("guess")
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	settings := m.session.Settings()

	b.WriteString(titleStyle.Render("Wordle"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s · %s · %d letters · %s scoring",
		settings.Language, settings.Difficulty, m.session.WordLength(), m.session.Scoring())))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if m.session.Status() != game.StatusAwaitingWord {
		b.WriteString(m.board())
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d attempts left", m.session.AttemptsRemaining())))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(helpLine()))
	return b.String()
}

// board renders every guess followed by empty rows for remaining attempts.
func (m Model) board() string {
	guesses := m.session.Guesses()
	_, latest, _ := m.session.Latest()
	won := m.session.Status() == game.StatusWon

	rows := make([]string, 0, m.session.MaxAttempts())
	for i, g := range guesses {
		rows = append(rows, renderGuess(g, won && i == latest))
	}
	empty := strings.Repeat(emptyTileStyle.Render("·"), m.session.WordLength())
	for i := len(guesses); i < m.session.MaxAttempts(); i++ {
		rows = append(rows, empty)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderGuess(g game.EvaluatedGuess, winning bool) string {
	var b strings.Builder
	for i, r := range g.Word.Letters() {
		style := tileStyle.Background(tileColor(g.Statuses[i]))
		if winning {
			style = winTileStyle
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

func tileColor(s game.LetterStatus) lipgloss.Color {
	switch s {
	case game.Correct:
		return colorCorrect
	case game.Present:
		return colorPresent
	default:
		return colorAbsent
	}
}

func helpLine() string {
	parts := make([]string, 0, 3)
	for _, b := range []key.Binding{keys.Submit, keys.NewRound, keys.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// Run starts the program on the terminal and blocks until the player quits.
func Run(s *game.Session, p game.WordProvider) error {
	_, err := tea.NewProgram(New(s, p), tea.WithAltScreen()).Run()
	return err
}
