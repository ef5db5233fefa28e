package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/socialfi-app/trader/internal/quote"
	"github.com/socialfi-app/trader/internal/token"
	"github.com/socialfi-app/trader/internal/trading"
)

// Model is the swap screen. It is a thin driver over the trading session:
// all quoting and execution rules live in the session's components.
type Model struct {
	ctx     context.Context
	session *trading.Session
	events  chan tea.Msg

	keys   KeyMap
	amount textinput.Model
	spin   spinner.Model

	popular []token.Token
	inIdx   int
	outIdx  int

	snap      quote.Snapshot
	executing bool
	lastSig   string
	errText   string
	statusMsg string
}

// New creates the swap screen bound to a trading session.
func New(ctx context.Context, session *trading.Session) Model {
	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 24
	amount.Width = 20
	amount.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		session: session,
		events:  make(chan tea.Msg, 16),
		keys:    DefaultKeyMap(),
		amount:  amount,
		spin:    spin,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spin.Tick,
		m.loadTokensCmd(),
		m.waitForEvent(),
	)
}

// waitForEvent forwards asynchronous session events into the tea loop.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m Model) loadTokensCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.session.LoadTokens(m.ctx); err != nil {
			return TokensLoadedMsg{Err: err}
		}
		return TokensLoadedMsg{}
	}
}

func (m Model) refreshBalancesCmd() tea.Cmd {
	return func() tea.Msg {
		return BalancesMsg{Err: m.session.RefreshBalances(m.ctx)}
	}
}

func (m Model) executeCmd() tea.Cmd {
	return func() tea.Msg {
		sig, err := m.session.ExecuteSwap(m.ctx)
		return SwapResultMsg{Signature: sig, Err: err}
	}
}

// requestQuote pushes the current amount into the engine; snapshots come
// back through the events channel.
func (m *Model) requestQuote() {
	events := m.events
	m.session.RequestQuoteAsync(m.ctx, m.amount.Value(), func(s quote.Snapshot) {
		events <- QuoteMsg{Snapshot: s}
	})
}

func (m *Model) applySelection() {
	if len(m.popular) == 0 {
		m.session.Registry().SelectInput(nil)
		m.session.Registry().SelectOutput(nil)
		return
	}
	in := m.popular[m.inIdx]
	out := m.popular[m.outIdx]
	m.session.Registry().SelectInput(&in)
	m.session.Registry().SelectOutput(&out)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.FlipTokens):
			m.inIdx, m.outIdx = m.outIdx, m.inIdx
			m.applySelection()
			m.requestQuote()
			return m, nil

		case key.Matches(msg, m.keys.NextOutput), key.Matches(msg, m.keys.PrevOutput):
			if len(m.popular) > 0 {
				step := 1
				if key.Matches(msg, m.keys.PrevOutput) {
					step = len(m.popular) - 1
				}
				m.outIdx = (m.outIdx + step) % len(m.popular)
				if m.outIdx == m.inIdx {
					m.outIdx = (m.outIdx + 1) % len(m.popular)
				}
				m.applySelection()
				m.requestQuote()
			}
			return m, nil

		case key.Matches(msg, m.keys.Swap):
			if m.executing {
				return m, nil
			}
			m.executing = true
			m.errText = ""
			m.statusMsg = "submitting swap..."
			return m, m.executeCmd()

		case key.Matches(msg, m.keys.Refresh):
			return m, m.refreshBalancesCmd()
		}

		var cmd tea.Cmd
		before := m.amount.Value()
		m.amount, cmd = m.amount.Update(msg)
		if m.amount.Value() != before {
			m.requestQuote()
		}
		return m, cmd

	case TokensLoadedMsg:
		if msg.Err != nil {
			m.errText = fmt.Sprintf("token list unavailable: %v", msg.Err)
			return m, nil
		}
		m.popular = m.session.Registry().Popular()
		// Default direction mirrors the common first trade: stable in,
		// native out.
		m.inIdx, m.outIdx = 0, 0
		for i, t := range m.popular {
			if t.Symbol == "USDC" {
				m.inIdx = i
			}
			if t.Symbol == "SOL" {
				m.outIdx = i
			}
		}
		m.applySelection()
		return m, m.refreshBalancesCmd()

	case BalancesMsg:
		if msg.Err != nil {
			m.errText = fmt.Sprintf("balance refresh failed: %v", msg.Err)
		} else {
			m.popular = m.session.Registry().Popular()
		}
		return m, nil

	case QuoteMsg:
		m.snap = msg.Snapshot
		return m, m.waitForEvent()

	case SwapResultMsg:
		m.executing = false
		m.statusMsg = ""
		if msg.Err != nil {
			m.errText = msg.Err.Error()
		} else {
			m.lastSig = msg.Signature
			m.errText = ""
		}
		return m, m.refreshBalancesCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Swap"))
	b.WriteString("\n")

	var in, out *token.Token
	if len(m.popular) > 0 {
		inTok := m.popular[m.inIdx]
		outTok := m.popular[m.outIdx]
		in, out = &inTok, &outTok
	}

	var form strings.Builder
	form.WriteString(labelStyle.Render("You pay    "))
	if in != nil {
		form.WriteString(valueStyle.Render(fmt.Sprintf("%-6s", in.Symbol)))
		form.WriteString(labelStyle.Render(" balance " + token.FormatBalance(*in)))
	} else {
		form.WriteString(labelStyle.Render("loading..."))
	}
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("Amount     "))
	form.WriteString(m.amount.View())
	form.WriteString("\n\n")
	form.WriteString(labelStyle.Render("You get    "))
	if out != nil {
		form.WriteString(valueStyle.Render(fmt.Sprintf("%-6s", out.Symbol)))
	}
	form.WriteString(" ")
	form.WriteString(m.renderQuote())

	b.WriteString(boxStyle.Render(form.String()))
	b.WriteString("\n")

	if m.snap.Warning != "" {
		b.WriteString(warningStyle.Render(m.snap.Warning))
		b.WriteString("\n")
	}
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}
	if m.statusMsg != "" {
		b.WriteString(m.spin.View() + " " + m.statusMsg)
		b.WriteString("\n")
	}
	if m.lastSig != "" {
		b.WriteString(successStyle.Render("submitted: " + m.lastSig))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab flip · ↑/↓ token · enter swap · ctrl+r balances · esc quit"))
	return b.String()
}

func (m Model) renderQuote() string {
	switch m.snap.State {
	case quote.StateRequesting:
		return m.spin.View() + " fetching quote"
	case quote.StateQuoted:
		return valueStyle.Render(m.snap.OutputAmount)
	case quote.StateEmpty, quote.StateFailed, quote.StateUnsupported:
		return errorStyle.Render(m.snap.Message)
	default:
		return labelStyle.Render("-")
	}
}
