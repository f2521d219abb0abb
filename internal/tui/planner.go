package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rocketops/internal/config"
	"github.com/san-kum/rocketops/internal/flight"
	"github.com/san-kum/rocketops/internal/metrics"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type screen int

const (
	screenMenu screen = iota
	screenParams
	screenMotor
	screenEvents
	screenEventEdit
	screenResult
)

var menuItems = []struct{ name, desc string }{
	{"parameters", "airframe and motor numbers"},
	{"motor", "pick a preset or go custom"},
	{"events", "scripted flight actions"},
	{"fly", "run the simulation"},
	{"save", "write the mission file"},
	{"quit", ""},
}

var eventFields = []string{"time", "type", "altitude_gt", "altitude_lt", "time_gt", "time_lt"}

type planner struct {
	screen screen
	cursor int

	mission     *config.Mission
	missionsDir string

	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string

	editingName bool

	motorNames  []string
	motorCursor int

	eventCursor int
	fieldCursor int
	editEvent   config.EventConfig
	editIndex   int

	result *flight.Result
	runErr error
	status string

	width  int
	height int
}

// NewPlanner builds the mission planning app around an existing mission, or
// the default one when nil.
func NewPlanner(mission *config.Mission, missionsDir string) *planner {
	if mission == nil {
		mission = config.DefaultMission()
	}
	p := &planner{
		mission:     mission,
		missionsDir: missionsDir,
		motorNames:  append(config.ListMotors(), "custom"),
		width:       80,
		height:      24,
	}
	p.setParams()
	return p
}

func (m planner) Init() tea.Cmd { return nil }

func (m planner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m planner) handleKey(msg tea.KeyMsg) (planner, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		return m.menuKey(msg)
	case screenParams:
		return m.paramsKey(msg)
	case screenMotor:
		return m.motorKey(msg)
	case screenEvents:
		return m.eventsKey(msg)
	case screenEventEdit:
		return m.eventEditKey(msg)
	case screenResult:
		switch msg.String() {
		case "q", "escape", "enter":
			m.screen = screenMenu
			return m, tea.ClearScreen
		}
	}
	return m, nil
}

func (m planner) menuKey(msg tea.KeyMsg) (planner, tea.Cmd) {
	if m.editingName {
		switch msg.String() {
		case "enter":
			if buf := strings.TrimSpace(m.editBuf); buf != "" {
				m.mission.Name = buf
			}
			m.editingName = false
			m.editBuf = ""
		case "escape":
			m.editingName = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && s[0] >= ' ' && s[0] <= '~' {
				m.editBuf += s
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "n":
		m.editingName = true
		m.editBuf = m.mission.Name
	case "enter", " ":
		switch menuItems[m.cursor].name {
		case "parameters":
			m.screen = screenParams
			m.paramCursor = 0
		case "motor":
			m.screen = screenMotor
			m.motorCursor = m.currentMotorIndex()
		case "events":
			m.screen = screenEvents
			m.eventCursor = 0
		case "fly":
			m.fly()
			m.screen = screenResult
			return m, tea.ClearScreen
		case "save":
			m.save()
		case "quit":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m planner) paramsKey(msg tea.KeyMsg) (planner, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			if val, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				if p := m.paramPtr(m.paramNames[m.paramCursor]); p != nil {
					*p = val
				}
			}
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "escape":
		m.screen = screenMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = strconv.FormatFloat(*m.paramPtr(m.paramNames[m.paramCursor]), 'f', -1, 64)
	case "left", "h":
		if p := m.paramPtr(m.paramNames[m.paramCursor]); p != nil && *p > 0.01 {
			*p -= 0.01
		}
	case "right", "l":
		if p := m.paramPtr(m.paramNames[m.paramCursor]); p != nil {
			*p += 0.01
		}
	}
	return m, nil
}

func (m planner) motorKey(msg tea.KeyMsg) (planner, tea.Cmd) {
	switch msg.String() {
	case "q", "escape":
		m.screen = screenMenu
	case "up", "k":
		if m.motorCursor > 0 {
			m.motorCursor--
		}
	case "down", "j":
		if m.motorCursor < len(m.motorNames)-1 {
			m.motorCursor++
		}
	case "enter", " ":
		name := m.motorNames[m.motorCursor]
		if name == "custom" {
			m.mission.Motor.Preset = ""
			if m.mission.Motor.AvgThrust == 0 {
				m.mission.Motor = config.MotorConfig{AvgThrust: 7.5, BurnTime: 1.6, Mass: 0.024, TotalImpulse: 12}
			}
		} else {
			m.mission.Motor = config.MotorConfig{Preset: name}
		}
		m.setParams()
		m.screen = screenMenu
	}
	return m, nil
}

func (m planner) eventsKey(msg tea.KeyMsg) (planner, tea.Cmd) {
	switch msg.String() {
	case "q", "escape":
		m.screen = screenMenu
	case "up", "k":
		if m.eventCursor > 0 {
			m.eventCursor--
		}
	case "down", "j":
		if m.eventCursor < len(m.mission.Events)-1 {
			m.eventCursor++
		}
	case "a":
		m.editIndex = -1
		m.editEvent = config.EventConfig{Type: "deploy_parachute"}
		m.fieldCursor = 0
		m.screen = screenEventEdit
	case "d":
		if len(m.mission.Events) > 0 {
			i := m.eventCursor
			m.mission.Events = append(m.mission.Events[:i], m.mission.Events[i+1:]...)
			if m.eventCursor >= len(m.mission.Events) && m.eventCursor > 0 {
				m.eventCursor--
			}
		}
	case "enter", " ":
		if len(m.mission.Events) > 0 {
			m.editIndex = m.eventCursor
			m.editEvent = m.mission.Events[m.eventCursor]
			if m.editEvent.Condition != nil {
				cond := *m.editEvent.Condition
				m.editEvent.Condition = &cond
			}
			m.fieldCursor = 0
			m.screen = screenEventEdit
		}
	}
	return m, nil
}

func (m planner) eventEditKey(msg tea.KeyMsg) (planner, tea.Cmd) {
	field := eventFields[m.fieldCursor]

	if m.editing {
		switch msg.String() {
		case "enter":
			m.commitField(field, m.editBuf)
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				numeric := (c >= '0' && c <= '9') || c == '.' || c == '-'
				wordy := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
				if field == "type" && (numeric || wordy) {
					m.editBuf += s
				} else if field != "type" && numeric {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "escape":
		m.screen = screenEvents
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(eventFields)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = m.fieldValue(field)
	case "s":
		if m.editIndex == -1 {
			m.mission.Events = append(m.mission.Events, m.editEvent)
			m.eventCursor = len(m.mission.Events) - 1
		} else {
			m.mission.Events[m.editIndex] = m.editEvent
		}
		m.screen = screenEvents
	}
	return m, nil
}

func (m *planner) setParams() {
	m.paramNames = []string{"dry_mass", "diameter", "drag_coefficient", "payload_mass"}
	if m.mission.Motor.Preset == "" {
		m.paramNames = append(m.paramNames, "avg_thrust", "burn_time", "motor_mass", "total_impulse")
	}
}

func (m *planner) paramPtr(name string) *float64 {
	switch name {
	case "dry_mass":
		return &m.mission.Vehicle.DryMass
	case "diameter":
		return &m.mission.Vehicle.Diameter
	case "drag_coefficient":
		return &m.mission.Vehicle.DragCoefficient
	case "payload_mass":
		return &m.mission.Vehicle.PayloadMass
	case "avg_thrust":
		return &m.mission.Motor.AvgThrust
	case "burn_time":
		return &m.mission.Motor.BurnTime
	case "motor_mass":
		return &m.mission.Motor.Mass
	case "total_impulse":
		return &m.mission.Motor.TotalImpulse
	}
	return nil
}

func (m *planner) currentMotorIndex() int {
	if m.mission.Motor.Preset == "" {
		return len(m.motorNames) - 1
	}
	for i, name := range m.motorNames {
		if name == m.mission.Motor.Preset {
			return i
		}
	}
	return 0
}

func (m *planner) fieldValue(field string) string {
	switch field {
	case "time":
		return strconv.FormatFloat(m.editEvent.Time, 'f', -1, 64)
	case "type":
		return m.editEvent.Type
	default:
		if p := condField(m.editEvent.Condition, field); p != nil {
			return strconv.FormatFloat(*p, 'f', -1, 64)
		}
		return ""
	}
}

func (m *planner) commitField(field, buf string) {
	switch field {
	case "time":
		if val, err := strconv.ParseFloat(buf, 64); err == nil {
			m.editEvent.Time = val
		}
	case "type":
		if buf != "" {
			m.editEvent.Type = buf
		}
	default:
		if buf == "" {
			clearCondField(m.editEvent.Condition, field)
			return
		}
		val, err := strconv.ParseFloat(buf, 64)
		if err != nil {
			return
		}
		if m.editEvent.Condition == nil {
			m.editEvent.Condition = &config.ConditionConfig{}
		}
		switch field {
		case "altitude_gt":
			m.editEvent.Condition.AltitudeGT = &val
		case "altitude_lt":
			m.editEvent.Condition.AltitudeLT = &val
		case "time_gt":
			m.editEvent.Condition.TimeGT = &val
		case "time_lt":
			m.editEvent.Condition.TimeLT = &val
		}
	}
}

func condField(c *config.ConditionConfig, field string) *float64 {
	if c == nil {
		return nil
	}
	switch field {
	case "altitude_gt":
		return c.AltitudeGT
	case "altitude_lt":
		return c.AltitudeLT
	case "time_gt":
		return c.TimeGT
	case "time_lt":
		return c.TimeLT
	}
	return nil
}

func clearCondField(c *config.ConditionConfig, field string) {
	if c == nil {
		return
	}
	switch field {
	case "altitude_gt":
		c.AltitudeGT = nil
	case "altitude_lt":
		c.AltitudeLT = nil
	case "time_gt":
		c.TimeGT = nil
	case "time_lt":
		c.TimeLT = nil
	}
}

func (m *planner) fly() {
	m.result = nil
	motor, err := m.mission.ToMotor()
	if err != nil {
		m.runErr = err
		return
	}
	sim := flight.New(m.mission.ToVehicle(), motor, m.mission.ToEvents())
	for _, metric := range metrics.Standard() {
		sim.AddMetric(metric)
	}
	m.result, m.runErr = sim.Run(context.Background(), flight.DefaultRunConfig())
}

func (m *planner) save() {
	if err := os.MkdirAll(m.missionsDir, 0755); err != nil {
		m.status = err.Error()
		return
	}
	path := filepath.Join(m.missionsDir, strings.ReplaceAll(m.mission.Name, " ", "_")+".yaml")
	if err := config.Save(path, m.mission); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + path
}

func (m planner) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenParams:
		return m.viewParams()
	case screenMotor:
		return m.viewMotor()
	case screenEvents:
		return m.viewEvents()
	case screenEventEdit:
		return m.viewEventEdit()
	case screenResult:
		return m.viewResult()
	}
	return ""
}

func (m planner) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("         " + cyan.Render("r o c k e t o p s") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	name := m.mission.Name
	if m.editingName {
		name = m.editBuf + "▋"
	}
	b.WriteString("      " + dim.Render("mission  ") + white.Render(name) + "\n")
	b.WriteString("      " + dim.Render("motor    ") + white.Render(m.motorLabel()) + "\n\n")

	for i, item := range menuItems {
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", item.name)) + dim.Render(item.desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", item.name)) + dimmer.Render(item.desc) + "\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("      " + green.Render(m.status) + "\n")
	}
	b.WriteString(dim.Render("      ↑↓ select   enter choose   n rename   q quit") + "\n")

	return b.String()
}

func (m planner) motorLabel() string {
	if m.mission.Motor.Preset == "" {
		return fmt.Sprintf("custom (%.1f N avg, %.1fs)", m.mission.Motor.AvgThrust, m.mission.Motor.BurnTime)
	}
	return m.mission.Motor.Preset
}

func (m planner) viewParams() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render("parameters") + "  " + dim.Render(m.mission.Name) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, name := range m.paramNames {
		val := fmt.Sprintf("%8.3f", *m.paramPtr(name))
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-18s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ nudge  enter edit  esc back") + "\n")

	return b.String()
}

func (m planner) viewMotor() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render("motor") + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, name := range m.motorNames {
		desc := ""
		if motor := config.GetMotor(name); motor != nil {
			desc = fmt.Sprintf("%.0f N·s  burn %.1fs  %.0fg", motor.TotalImpulse, motor.BurnTime, motor.Mass*1000)
		} else {
			desc = "enter your own numbers"
		}
		if i == m.motorCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter choose   esc back") + "\n")

	return b.String()
}

func (m planner) viewEvents() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render("events") + "  " + dim.Render(fmt.Sprintf("%d scripted", len(m.mission.Events))) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 34)) + "\n\n")

	if len(m.mission.Events) == 0 {
		b.WriteString("        " + dimmer.Render("none yet") + "\n")
	}
	for i, e := range m.mission.Events {
		line := fmt.Sprintf("t+%-6.2f %-20s %s", e.Time, e.Type, condSummary(e.Condition))
		if i == m.eventCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(line) + "\n")
		} else {
			b.WriteString("        " + dim.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  a add  enter edit  d delete  esc back") + "\n")

	return b.String()
}

func condSummary(c *config.ConditionConfig) string {
	if c == nil {
		return ""
	}
	var parts []string
	if c.AltitudeGT != nil {
		parts = append(parts, fmt.Sprintf("alt>%.0f", *c.AltitudeGT))
	}
	if c.AltitudeLT != nil {
		parts = append(parts, fmt.Sprintf("alt<%.0f", *c.AltitudeLT))
	}
	if c.TimeGT != nil {
		parts = append(parts, fmt.Sprintf("t>%.1f", *c.TimeGT))
	}
	if c.TimeLT != nil {
		parts = append(parts, fmt.Sprintf("t<%.1f", *c.TimeLT))
	}
	return strings.Join(parts, " ")
}

func (m planner) viewEventEdit() string {
	var b strings.Builder

	title := "edit event"
	if m.editIndex == -1 {
		title = "new event"
	}
	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(title) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, field := range eventFields {
		val := m.fieldValueForView(field)
		if m.editing && i == m.fieldCursor {
			val = m.editBuf + "▋"
		}
		if i == m.fieldCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", field)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", field)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ field  enter edit  s save  esc discard") + "\n")

	return b.String()
}

func (m planner) fieldValueForView(field string) string {
	v := (&m).fieldValue(field)
	if v == "" && field != "type" && field != "time" {
		return dimmer.Render("unset")
	}
	return v
}

func (m planner) viewResult() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.runErr != nil {
		b.WriteString("      " + magenta.Render("run failed") + "\n\n")
		b.WriteString("      " + white.Render(m.runErr.Error()) + "\n\n")
		b.WriteString(dim.Render("      esc back") + "\n")
		return b.String()
	}

	outcome := string(m.result.Outcome)
	style := green
	switch m.result.Outcome {
	case flight.OutcomeTimeout:
		style = yellow
	case flight.OutcomeAborted:
		style = magenta
	}
	b.WriteString("      " + cyan.Render(m.mission.Name) + "  " + style.Render(outcome) + "\n\n")

	if len(m.result.Samples) > 1 {
		alts := make([]float64, len(m.result.Samples))
		for i, s := range m.result.Samples {
			alts[i] = s.Altitude
		}
		chart := asciigraph.Plot(alts, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("altitude (m)"))
		for _, line := range strings.Split(chart, "\n") {
			b.WriteString("   " + line + "\n")
		}
		b.WriteString("\n")
	}

	order := []struct{ key, label, unit string }{
		{"apogee", "apogee", "m"},
		{"max_velocity", "max velocity", "m/s"},
		{"max_acceleration", "max acceleration", "m/s²"},
		{"flight_time", "flight time", "s"},
	}
	for _, row := range order {
		if v, ok := m.result.Metrics[row.key]; ok {
			b.WriteString("      " + dim.Render(fmt.Sprintf("%-18s", row.label)) + white.Render(fmt.Sprintf("%8.2f %s", v, row.unit)) + "\n")
		}
	}

	if len(m.result.Firings) > 0 {
		b.WriteString("\n      " + dim.Render("events fired") + "\n")
		for _, f := range m.result.Firings {
			b.WriteString("        " + yellow.Render(fmt.Sprintf("t+%-6.2f %s", f.Time, f.Type)) + "\n")
		}
	}

	b.WriteString("\n" + dim.Render("      esc back") + "\n")
	return b.String()
}

// RunPlanner runs the interactive mission planner until the user quits.
func RunPlanner(mission *config.Mission, missionsDir string) error {
	p := tea.NewProgram(NewPlanner(mission, missionsDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
