package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rocketops/internal/flight"
)

// Replay pacing: the player advances simulated time at replayRate per wall
// second (at 1x speed), redrawing on every tick.
const (
	replayFPS  = 10
	replayRate = 1.0
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/replayFPS, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// replay plays a recorded sample series back against the wall clock, with
// pause, seek, and speed control.
type replay struct {
	source  string
	samples []flight.State
	firings []flight.Firing

	head    int     // index of the sample currently shown
	clock   float64 // s, simulated time of the playhead
	speed   float64 // playback multiplier
	playing bool
}

// NewReplay builds the player. Samples must be in ascending time order, the
// order every flight CSV is written in.
func NewReplay(source string, samples []flight.State, firings []flight.Firing) *replay {
	return &replay{
		source:  source,
		samples: samples,
		firings: firings,
		speed:   1.0,
		playing: true,
	}
}

func (m replay) Init() tea.Cmd { return tick() }

func (m replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.head = 0
			m.clock = 0
			m.playing = true
		case "left", "h":
			m.seek(m.clock - 1.0)
		case "right", "l":
			m.seek(m.clock + 1.0)
		case "+", "=":
			if m.speed < 8 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 0.25 {
				m.speed /= 2
			}
		}
		return m, nil

	case tickMsg:
		if m.playing && len(m.samples) > 0 {
			m.clock += replayRate * m.speed / replayFPS
			m.advance()
			if m.head == len(m.samples)-1 {
				m.playing = false
			}
		}
		return m, tick()
	}
	return m, nil
}

// seek jumps the playhead to simulated time t, clamped to the recording.
func (m *replay) seek(t float64) {
	if t < 0 {
		t = 0
	}
	if n := len(m.samples); n > 0 && t > m.samples[n-1].Time {
		t = m.samples[n-1].Time
	}
	m.clock = t
	m.head = 0
	m.advance()
}

// advance moves head forward to the last sample at or before the clock.
func (m *replay) advance() {
	for m.head < len(m.samples)-1 && m.samples[m.head+1].Time <= m.clock {
		m.head++
	}
}

func (m replay) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if len(m.samples) == 0 {
		b.WriteString("      " + magenta.Render("no samples to replay") + "\n\n")
		b.WriteString(dim.Render("      q quit") + "\n")
		return b.String()
	}

	s := m.samples[m.head]

	status := green.Render("playing")
	if !m.playing {
		status = yellow.Render("paused")
		if m.head == len(m.samples)-1 {
			status = dim.Render("end of recording")
		}
	}
	b.WriteString("      " + cyan.Render(m.source) + "  " + status +
		dim.Render(fmt.Sprintf("  %.2gx", m.speed)) + "\n\n")

	alts := make([]float64, m.head+1)
	for i := 0; i <= m.head; i++ {
		alts[i] = m.samples[i].Altitude
	}
	chart := asciigraph.Plot(alts, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("altitude (m)"))
	for _, line := range strings.Split(chart, "\n") {
		b.WriteString("   " + line + "\n")
	}
	b.WriteString("\n")

	rows := []struct {
		label string
		value float64
		unit  string
	}{
		{"time", s.Time, "s"},
		{"altitude", s.Altitude, "m"},
		{"velocity", s.Velocity, "m/s"},
		{"acceleration", s.Acceleration, "m/s²"},
	}
	for _, row := range rows {
		b.WriteString("      " + dim.Render(fmt.Sprintf("%-14s", row.label)) +
			white.Render(fmt.Sprintf("%9.2f %s", row.value, row.unit)) + "\n")
	}

	if fired := m.firedSoFar(); len(fired) > 0 {
		b.WriteString("\n      " + dim.Render("events") + "\n")
		for _, f := range fired {
			b.WriteString("        " + yellow.Render(fmt.Sprintf("t+%-6.2f %s", f.Time, f.Type)) + "\n")
		}
	}

	b.WriteString("\n      " + dimmer.Render(fmt.Sprintf("sample %d/%d", m.head+1, len(m.samples))) + "\n")
	b.WriteString(dim.Render("      space pause  ←/→ seek  +/- speed  r restart  q quit") + "\n")
	return b.String()
}

func (m replay) firedSoFar() []flight.Firing {
	var out []flight.Firing
	for _, f := range m.firings {
		if f.Time <= m.samples[m.head].Time {
			out = append(out, f)
		}
	}
	return out
}

// RunReplay plays the recording until the user quits.
func RunReplay(source string, samples []flight.State, firings []flight.Firing) error {
	p := tea.NewProgram(NewReplay(source, samples, firings))
	_, err := p.Run()
	return err
}
