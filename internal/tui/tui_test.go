package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/words"
)

type downProvider struct{}

func (downProvider) FetchWord(context.Context, string, int) (string, error) {
	return "", errors.New("no route to host")
}

// setupModel returns a model whose first word fetch has completed.
func setupModel(t *testing.T, p game.WordProvider, settings game.Settings) Model {
	t.Helper()
	m := New(game.NewSession(settings), p)
	msg := m.fetch()()
	newM, _ := m.Update(msg)
	return newM.(Model)
}

func typeAndSubmit(m Model, word string) Model {
	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(word)})
	newM, _ = newM.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return newM.(Model)
}

func TestLoadingUntilWordArrives(t *testing.T) {
	m := New(game.NewSession(game.DefaultSettings()), words.NewFixed("apple"))
	if !m.loading || !strings.Contains(m.View(), "Loading") {
		t.Fatalf("expected loading view, got %q", m.View())
	}
	m = typeAndSubmit(m, "apple")
	if m.session.AttemptsUsed() != 0 {
		t.Fatalf("guess accepted while loading")
	}
}

func TestPlayToWin(t *testing.T) {
	m := setupModel(t, words.NewFixed("apple"), game.DefaultSettings())
	if m.loading || m.session.Status() != game.StatusInProgress {
		t.Fatalf("loading=%v status=%s", m.loading, m.session.Status())
	}

	m = typeAndSubmit(m, "crane")
	if m.session.AttemptsUsed() != 1 || m.input.Value() != "" {
		t.Fatalf("used=%d input=%q", m.session.AttemptsUsed(), m.input.Value())
	}
	m = typeAndSubmit(m, "apple")
	if m.session.Status() != game.StatusWon {
		t.Fatalf("status = %s", m.session.Status())
	}
	if !strings.Contains(m.View(), "You guessed it: APPLE") {
		t.Fatalf("view missing win notice:\n%s", m.View())
	}
}

func TestPlayToLossRevealsWord(t *testing.T) {
	m := setupModel(t, words.NewFixed("pear"), game.Settings{Language: "en", Difficulty: game.Easy})
	for i := 0; i < 5; i++ {
		m = typeAndSubmit(m, "lamp")
	}
	if m.session.Status() != game.StatusLost {
		t.Fatalf("status = %s", m.session.Status())
	}
	if !strings.Contains(m.View(), "The word was: PEAR") {
		t.Fatalf("view missing reveal:\n%s", m.View())
	}

	m = typeAndSubmit(m, "pear")
	if m.err == nil || !strings.Contains(m.err.Error(), "round over") || m.session.AttemptsUsed() != 5 {
		t.Fatalf("guess after loss: err=%v used=%d", m.err, m.session.AttemptsUsed())
	}
}

func TestShortGuessShowsError(t *testing.T) {
	m := setupModel(t, words.NewFixed("apple"), game.DefaultSettings())
	m = typeAndSubmit(m, "ab")
	if m.err == nil || !strings.Contains(m.err.Error(), "5 letters") {
		t.Fatalf("err = %v", m.err)
	}
	if m.session.AttemptsUsed() != 0 {
		t.Fatalf("short guess counted")
	}
}

func TestNewRoundKey(t *testing.T) {
	m := setupModel(t, words.NewFixed("apple", "ghost"), game.DefaultSettings())
	m = typeAndSubmit(m, "apple")

	newM, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = newM.(Model)
	if !m.loading || cmd == nil || m.session.Status() != game.StatusAwaitingWord {
		t.Fatalf("loading=%v status=%s", m.loading, m.session.Status())
	}

	// A second ctrl+r while loading does not start another fetch.
	if _, cmd2 := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR}); cmd2 != nil {
		t.Fatalf("expected no second fetch while loading")
	}

	newM, _ = m.Update(cmd())
	m = newM.(Model)
	if w, _ := m.session.Target(); w != "GHOST" || m.session.AttemptsUsed() != 0 {
		t.Fatalf("target=%s used=%d", w, m.session.AttemptsUsed())
	}
}

func TestFetchFailureThenRetry(t *testing.T) {
	m := setupModel(t, downProvider{}, game.DefaultSettings())
	if !errors.Is(m.err, game.ErrWordFetchFailed) || m.session.Status() != game.StatusAwaitingWord {
		t.Fatalf("err=%v status=%s", m.err, m.session.Status())
	}

	m = typeAndSubmit(m, "apple")
	if m.err == nil || !strings.Contains(m.err.Error(), "no word yet") {
		t.Fatalf("enter while awaiting: err=%v", m.err)
	}

	m.provider = words.NewFixed("apple")
	newM, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	newM, _ = newM.Update(cmd())
	m = newM.(Model)
	if m.err != nil || m.session.Status() != game.StatusInProgress {
		t.Fatalf("err=%v status=%s", m.err, m.session.Status())
	}
}

func TestQuit(t *testing.T) {
	m := setupModel(t, words.NewFixed("apple"), game.DefaultSettings())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}
