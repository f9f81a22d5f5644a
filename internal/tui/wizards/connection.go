package wizards

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/relload/internal/db"
	"github.com/vvka-141/relload/pkg/relload"
)

// ConnectionTester tests database connectivity.
type ConnectionTester interface {
	TestConnection(ctx context.Context, cfg relload.ConnectionConfig) (info string, err error)
}

type pgxTester struct{}

func (pgxTester) TestConnection(ctx context.Context, cfg relload.ConnectionConfig) (string, error) {
	if cfg.AuthMethod != relload.AuthMethodStandard {
		return fmt.Sprintf("Configuration ready for %s authentication", cfg.AuthMethod.String()), nil
	}

	conn, err := pgx.Connect(ctx, db.BuildConnectionString(&cfg))
	if err != nil {
		return "", err
	}
	defer conn.Close(ctx)

	var version string
	if err := conn.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", err
	}

	if idx := strings.Index(version, ","); idx > 0 {
		version = version[:idx]
	}
	return version, nil
}

// WizardOption configures a ConnectionWizard.
type WizardOption func(*ConnectionWizard)

// WithTester injects a ConnectionTester (for testing/mocking).
func WithTester(t ConnectionTester) WizardOption {
	return func(w *ConnectionWizard) {
		w.tester = t
	}
}

// AuthOption represents an authentication method choice.
type AuthOption struct {
	Name        string
	Description string
	AuthMethod  relload.AuthMethod
}

var authOptions = []AuthOption{
	{Name: "Username and Password", Description: "Standard PostgreSQL authentication", AuthMethod: relload.AuthMethodStandard},
	{Name: "Azure Entra ID", Description: "Uses az login, managed identity, or environment variables", AuthMethod: relload.AuthMethodAzureEntraID},
	{Name: "AWS IAM", Description: "Uses AWS credentials for RDS token authentication", AuthMethod: relload.AuthMethodAWSIAM},
	{Name: "Google Cloud SQL IAM", Description: "Uses Google Cloud credentials and the Cloud SQL dialer", AuthMethod: relload.AuthMethodGoogleIAM},
}

// ConnectionResult holds the outcome of the connection wizard.
type ConnectionResult struct {
	Cancelled bool
	Config    relload.ConnectionConfig
	Tested    bool
}

type wizardStep int

const (
	stepAuthMethod wizardStep = iota
	stepFields
	stepTesting
	stepDone
)

// Field indexes within the form step. Cloud-specific fields are appended
// after the shared ones depending on the chosen auth method.
const (
	fieldHost = iota
	fieldPort
	fieldDatabase
	fieldUser
	fieldExtra // password, Azure tenant, AWS region, or Google instance
	fieldCount
)

// ConnectionWizard collects database connection parameters interactively.
type ConnectionWizard struct {
	step       wizardStep
	authCursor int
	authChoice AuthOption

	fields  [fieldCount]textinput.Model
	focused int

	spinner  spinner.Model
	testInfo string
	testErr  error

	result ConnectionResult
	tester ConnectionTester

	keys wizardKeyMap
}

type wizardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var (
	wizardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1)
	wizardHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	wizardErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	wizardOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	unselectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(4)
)

// NewConnectionWizard creates a wizard pre-filled with the given defaults.
func NewConnectionWizard(defaults relload.ConnectionConfig, opts ...WizardOption) *ConnectionWizard {
	w := &ConnectionWizard{
		tester: pgxTester{},
		keys: wizardKeyMap{
			Up:     key.NewBinding(key.WithKeys("up", "k")),
			Down:   key.NewBinding(key.WithKeys("down", "j")),
			Next:   key.NewBinding(key.WithKeys("tab", "down")),
			Prev:   key.NewBinding(key.WithKeys("shift+tab", "up")),
			Select: key.NewBinding(key.WithKeys("enter")),
			Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c")),
		},
	}

	host := defaults.Host
	if host == "" {
		host = relload.DefaultHost
	}
	port := defaults.Port
	if port == 0 {
		port = relload.DefaultPort
	}
	database := defaults.Database
	if database == "" {
		database = relload.DefaultDatabase
	}
	user := defaults.Username
	if user == "" {
		user = relload.DefaultUser
	}

	labels := [fieldCount]struct{ placeholder, value string }{
		{relload.DefaultHost, host},
		{strconv.Itoa(relload.DefaultPort), strconv.Itoa(port)},
		{relload.DefaultDatabase, database},
		{relload.DefaultUser, user},
		{"", ""},
	}
	for i := range w.fields {
		ti := textinput.New()
		ti.Placeholder = labels[i].placeholder
		ti.SetValue(labels[i].value)
		ti.CharLimit = 256
		ti.Width = 40
		w.fields[i] = ti
	}
	w.fields[fieldExtra].EchoMode = textinput.EchoPassword
	w.fields[fieldExtra].EchoCharacter = '*'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	w.spinner = sp

	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Result returns the wizard outcome after the program finishes.
func (w *ConnectionWizard) Result() ConnectionResult {
	return w.result
}

// Init implements tea.Model.
func (w *ConnectionWizard) Init() tea.Cmd {
	return textinput.Blink
}

type testResultMsg struct {
	info string
	err  error
}

// Update implements tea.Model.
func (w *ConnectionWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, w.keys.Quit) {
			w.result.Cancelled = true
			return w, tea.Quit
		}
		switch w.step {
		case stepAuthMethod:
			return w.updateAuthMethod(msg)
		case stepFields:
			return w.updateFields(msg)
		case stepDone:
			return w, tea.Quit
		}
	case testResultMsg:
		w.testInfo = msg.info
		w.testErr = msg.err
		w.result.Tested = msg.err == nil
		w.step = stepDone
		return w, tea.Quit
	case spinner.TickMsg:
		if w.step == stepTesting {
			var cmd tea.Cmd
			w.spinner, cmd = w.spinner.Update(msg)
			return w, cmd
		}
	}
	return w, nil
}

func (w *ConnectionWizard) updateAuthMethod(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.authCursor > 0 {
			w.authCursor--
		}
	case key.Matches(msg, w.keys.Down):
		if w.authCursor < len(authOptions)-1 {
			w.authCursor++
		}
	case key.Matches(msg, w.keys.Select):
		w.authChoice = authOptions[w.authCursor]
		w.configureExtraField()
		w.step = stepFields
		w.focused = fieldHost
		return w, w.fields[fieldHost].Focus()
	}
	return w, nil
}

// configureExtraField repurposes the last field for whatever the chosen
// auth method needs beyond host/port/database/user.
func (w *ConnectionWizard) configureExtraField() {
	extra := &w.fields[fieldExtra]
	extra.EchoMode = textinput.EchoNormal
	extra.SetValue("")

	switch w.authChoice.AuthMethod {
	case relload.AuthMethodStandard:
		extra.Placeholder = "password (empty uses $DB_PASSWORD or the default)"
		extra.EchoMode = textinput.EchoPassword
	case relload.AuthMethodAzureEntraID:
		extra.Placeholder = "tenant ID (empty uses the default credential chain)"
	case relload.AuthMethodAWSIAM:
		extra.Placeholder = "AWS region, e.g. eu-west-1"
	case relload.AuthMethodGoogleIAM:
		extra.Placeholder = "instance connection name: project:region:instance"
	}
}

func (w *ConnectionWizard) updateFields(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		if w.focused < fieldCount-1 {
			return w, w.focusField(w.focused + 1)
		}
		return w.startTest()
	case key.Matches(msg, w.keys.Next):
		return w, w.focusField((w.focused + 1) % fieldCount)
	case key.Matches(msg, w.keys.Prev):
		return w, w.focusField((w.focused + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	w.fields[w.focused], cmd = w.fields[w.focused].Update(msg)
	return w, cmd
}

func (w *ConnectionWizard) focusField(i int) tea.Cmd {
	w.fields[w.focused].Blur()
	w.focused = i
	return w.fields[i].Focus()
}

func (w *ConnectionWizard) startTest() (tea.Model, tea.Cmd) {
	config, err := w.buildConfig()
	if err != nil {
		w.testErr = err
		return w, nil
	}

	w.result.Config = config
	w.testErr = nil
	w.step = stepTesting

	test := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		info, err := w.tester.TestConnection(ctx, config)
		return testResultMsg{info: info, err: err}
	}
	return w, tea.Batch(w.spinner.Tick, test)
}

func (w *ConnectionWizard) buildConfig() (relload.ConnectionConfig, error) {
	port, err := strconv.Atoi(strings.TrimSpace(w.fields[fieldPort].Value()))
	if err != nil {
		return relload.ConnectionConfig{}, fmt.Errorf("port %q must be an integer", w.fields[fieldPort].Value())
	}

	config := relload.ConnectionConfig{
		Host:       strings.TrimSpace(w.fields[fieldHost].Value()),
		Port:       port,
		Database:   strings.TrimSpace(w.fields[fieldDatabase].Value()),
		Username:   strings.TrimSpace(w.fields[fieldUser].Value()),
		SSLMode:    relload.DefaultSSLMode,
		AuthMethod: w.authChoice.AuthMethod,
	}

	extra := strings.TrimSpace(w.fields[fieldExtra].Value())
	switch w.authChoice.AuthMethod {
	case relload.AuthMethodStandard:
		config.Password = extra
		if config.Password == "" {
			config.Password = relload.DefaultPassword
		}
	case relload.AuthMethodAzureEntraID:
		config.AzureTenantID = extra
	case relload.AuthMethodAWSIAM:
		config.AWSRegion = extra
	case relload.AuthMethodGoogleIAM:
		config.GoogleInstance = extra
	}

	if err := config.Validate(); err != nil {
		return relload.ConnectionConfig{}, err
	}
	return config, nil
}

var fieldLabels = [fieldCount]string{"Host", "Port", "Database", "User", ""}

// View implements tea.Model.
func (w *ConnectionWizard) View() string {
	var b strings.Builder

	switch w.step {
	case stepAuthMethod:
		b.WriteString(wizardTitleStyle.Render("How do you authenticate to PostgreSQL?"))
		b.WriteString("\n\n")
		for i, opt := range authOptions {
			style := unselectedStyle
			symbol := "○"
			if i == w.authCursor {
				style = selectedStyle
				symbol = "●"
			}
			b.WriteString(style.Render(symbol + " " + opt.Name))
			b.WriteString("\n")
			b.WriteString(descriptionStyle.Render(opt.Description))
			b.WriteString("\n")
		}
		b.WriteString(wizardHelpStyle.Render("↑/↓ navigate • enter select • esc cancel"))

	case stepFields:
		b.WriteString(wizardTitleStyle.Render("Connection parameters"))
		b.WriteString("\n\n")
		for i, field := range w.fields {
			label := fieldLabels[i]
			if label == "" {
				label = w.extraLabel()
			}
			b.WriteString(label)
			b.WriteString("\n")
			b.WriteString(field.View())
			b.WriteString("\n")
		}
		if w.testErr != nil {
			b.WriteString(wizardErrStyle.Render(w.testErr.Error()))
			b.WriteString("\n")
		}
		b.WriteString(wizardHelpStyle.Render("tab next field • enter on the last field tests the connection • esc cancel"))

	case stepTesting:
		b.WriteString(w.spinner.View())
		b.WriteString(" Testing connection...")

	case stepDone:
		if w.testErr != nil {
			b.WriteString(wizardErrStyle.Render("✗ " + w.testErr.Error()))
		} else {
			b.WriteString(wizardOKStyle.Render("✓ " + w.testInfo))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (w *ConnectionWizard) extraLabel() string {
	switch w.authChoice.AuthMethod {
	case relload.AuthMethodAzureEntraID:
		return "Azure tenant ID"
	case relload.AuthMethodAWSIAM:
		return "AWS region"
	case relload.AuthMethodGoogleIAM:
		return "Cloud SQL instance"
	default:
		return "Password"
	}
}

// Run executes the wizard to completion on the terminal.
func (w *ConnectionWizard) Run() (ConnectionResult, error) {
	program := tea.NewProgram(w)
	if _, err := program.Run(); err != nil {
		return ConnectionResult{Cancelled: true}, fmt.Errorf("connection wizard failed: %w", err)
	}
	return w.result, nil
}
