// Package tui is the bubbletea front end: a search mode over the tag dataset
// and a random mode card game, sharing one loaded record list.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tagdeck-go/internal/game"
	"tagdeck-go/internal/search"
	"tagdeck-go/internal/tags"
)

// Mode is the top-level view.
type Mode int

const (
	ModeRandom Mode = iota
	ModeSearch
)

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "random":
		return ModeRandom, nil
	case "search":
		return ModeSearch, nil
	default:
		return ModeRandom, fmt.Errorf("unknown mode %q", s)
	}
}

// DataLoader fetches the dataset.
type DataLoader interface {
	Load(ctx context.Context, source string) ([]tags.Record, error)
}

// Options configures a Model.
type Options struct {
	Source         string
	Loader         DataLoader
	Rounds         RoundLog
	Logger         *zap.Logger
	StartMode      Mode
	ResultLimit    int
	RandomExcluded []string
	SearchExcluded []string
	FetchTimeout   time.Duration
	RevealInterval time.Duration
	ScoreAnimation time.Duration
	GameOptions    []game.Option
	Now            func() time.Time
}

// dataLoadedMsg reports the outcome of the one-shot dataset load.
type dataLoadedMsg struct {
	status tags.Status
}

// Model is the root bubbletea model.
type Model struct {
	opts    Options
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	status tags.Status
	mode   Mode
	width  int
	height int

	search *searchView
	game   *gameView
}

// New creates the model in the loading state.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ResultLimit <= 0 {
		opts.ResultLimit = search.DefaultLimit
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		opts:    opts,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		status:  tags.Loading(),
		mode:    opts.StartMode,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m *Model) loadCmd() tea.Cmd {
	loader, source, timeout := m.opts.Loader, m.opts.Source, m.opts.FetchTimeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		records, err := loader.Load(ctx, source)
		return dataLoadedMsg{status: tags.StatusOf(records, err)}
	}
}

// setData builds both views over a freshly loaded record list.
func (m *Model) setData(status tags.Status) {
	m.status = status
	if status.Phase != tags.PhaseLoaded {
		m.opts.Logger.Error("Tag data unavailable", zap.String("message", status.Message))
		return
	}

	labels := tags.Groups(status.Records)
	m.search = newSearchView(status.Records, labels, m.opts.SearchExcluded, m.opts.ResultLimit, m.keys)
	m.game = newGameView(gameViewConfig{
		records:        status.Records,
		labels:         labels,
		excluded:       m.opts.RandomExcluded,
		revealInterval: m.opts.RevealInterval,
		scoreAnimation: m.opts.ScoreAnimation,
		gameOptions:    m.opts.GameOptions,
		rounds:         m.opts.Rounds,
		logger:         m.opts.Logger,
		now:            m.opts.Now,
		keys:           m.keys,
	})
	if m.mode != ModeSearch {
		m.search.input.Blur()
	}
	m.resize()
}

func (m *Model) resize() {
	if m.search == nil || m.height == 0 {
		return
	}
	// Header, tabs, filters and footer take roughly this many lines.
	m.search.setHeight(m.height - 16)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case dataLoadedMsg:
		m.setData(msg.status)
		return m, nil

	case spinner.TickMsg:
		if m.status.Phase != tags.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case revealMsg, scoreFrameMsg, ledgerStatsMsg:
		// Round timers keep running while the search mode is on screen.
		if m.game == nil {
			return m, nil
		}
		return m, m.game.Update(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.status.Phase != tags.PhaseLoaded {
			if key.Matches(msg, m.keys.Quit) || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.mode == ModeRandom && m.game.confirm.IsOpen() {
			return m, m.game.Update(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.SwitchMode):
			m.toggleMode()
			return m, nil
		}
	}

	if m.status.Phase != tags.PhaseLoaded {
		return m, nil
	}
	switch m.mode {
	case ModeSearch:
		return m, m.search.Update(msg)
	default:
		return m, m.game.Update(msg)
	}
}

func (m *Model) toggleMode() {
	if m.mode == ModeRandom {
		m.mode = ModeSearch
		m.search.input.Focus()
		return
	}
	m.mode = ModeRandom
	m.search.input.Blur()
}

func (m *Model) View() string {
	switch m.status.Phase {
	case tags.PhaseLoading:
		return fmt.Sprintf("\n  %s Loading data...\n", m.spinner.View())
	case tags.PhaseFailed:
		return styleError.Render("Error: " + m.status.Message)
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Tag Database Explorer"))
	b.WriteString(styleSubtle.Render("Search tags or play the random tag game"))
	b.WriteString("\n\n")
	b.WriteString(m.tabs())
	b.WriteString("\n\n")

	var bindings []key.Binding
	switch m.mode {
	case ModeSearch:
		b.WriteString(m.search.View(m.width))
		bindings = m.keys.searchHelp()
	default:
		b.WriteString(m.game.View(m.width))
		bindings = m.keys.randomHelp()
		if m.game.confirm.IsOpen() {
			bindings = m.keys.dialogHelp()
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(bindings))
	return b.String()
}

func (m *Model) tabs() string {
	randomTab, searchTab := styleTabOff, styleTabOff
	if m.mode == ModeRandom {
		randomTab = styleTabOn
	} else {
		searchTab = styleTabOn
	}
	return randomTab.Render("⇄ Random") + searchTab.Render("⌕ Search")
}

// Mode reports the active view.
func (m *Model) Mode() Mode { return m.mode }

// Status reports the dataset load status.
func (m *Model) Status() tags.Status { return m.status }
