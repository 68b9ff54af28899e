// Package pagecraft provides the terminal page builder as a reusable Bubble
// Tea model, plus a headless page API for scripts and tools.
//
// # Basic Usage
//
// Create an editor with default options:
//
//	model := pagecraft.New()
//	p := tea.NewProgram(model, pagecraft.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model := pagecraft.New(
//		pagecraft.WithPlacement("freeform"),
//		pagecraft.WithBorderStyle("double"),
//		pagecraft.WithASCIIOnly(true),
//	)
//
// # Headless Pages
//
// A Page runs tape scripts without a terminal and turns the result into
// code:
//
//	page := pagecraft.NewPage()
//	if err := page.Play("NewSection \"Top\"\nAdd Hero\n"); err != nil {
//		log.Fatal(err)
//	}
//	code, err := page.Generate(ctx)
package pagecraft

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/app"
	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/codegen"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/gesture"
	"github.com/Gaurav-Gosain/pagecraft/internal/input"
	"github.com/Gaurav-Gosain/pagecraft/internal/logging"
	"github.com/Gaurav-Gosain/pagecraft/internal/render"
	"github.com/Gaurav-Gosain/pagecraft/internal/tape"
)

// Model is the editor model that implements tea.Model.
type Model = app.Editor

// Placement modes.
const (
	// PlacementFlow stacks components in page order.
	PlacementFlow = config.PlacementFlow
	// PlacementFreeform uses explicit component positions.
	PlacementFreeform = config.PlacementFreeform
)

// Options configures an editor.
type Options struct {
	// Placement is flow or freeform. Empty uses the user config.
	Placement string

	// BorderStyle sets the component border style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// ASCIIOnly uses ASCII characters instead of Unicode icons.
	ASCIIOnly bool

	// HideClock hides the clock in the status bar.
	HideClock bool

	// Width is the initial width (set by the first resize if 0).
	Width int

	// Height is the initial height (set by the first resize if 0).
	Height int

	// SSHMode copies generated code through OSC 52.
	SSHMode bool

	// Logger receives editor logs. Nil discards them.
	Logger *log.Logger

	// Tape is played once the program starts.
	Tape     []tape.Command
	TapeName string

	// UserConfig is a custom user configuration. If nil, the config file
	// is loaded, falling back to defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring an editor.
type Option func(*Options)

// WithPlacement sets the placement mode.
func WithPlacement(mode string) Option {
	return func(o *Options) {
		o.Placement = mode
	}
}

// WithBorderStyle sets the component border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithASCIIOnly enables ASCII-only mode.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithHideClock hides the status bar clock.
func WithHideClock(hide bool) Option {
	return func(o *Options) {
		o.HideClock = hide
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithSSHMode enables SSH mode.
func WithSSHMode(enabled bool) Option {
	return func(o *Options) {
		o.SSHMode = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithTape plays commands when the program starts.
func WithTape(name string, commands []tape.Command) Option {
	return func(o *Options) {
		o.TapeName = name
		o.Tape = commands
	}
}

// WithConfig sets a custom user configuration.
func WithConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// New creates a new editor with the given options.
// This is the main entry point for using pagecraft as a library.
func New(opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY reports the size of a terminal session.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates an editor sized for a PTY session.
func NewForPTY(pty PTY, opts ...Option) *Model {
	return New(append(opts, WithSize(pty.Width(), pty.Height()))...)
}

func newModel(options Options) *Model {
	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}
	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:   options.ASCIIOnly,
		BorderStyle: options.BorderStyle,
		HideClock:   options.HideClock,
		Placement:   options.Placement,
	}, userConfig)

	editorOpts := []app.Option{
		app.WithKeybindRegistry(config.NewKeybindRegistry(userConfig)),
		app.WithLogger(options.Logger),
		app.WithOSC52(options.SSHMode),
	}
	if options.Width > 0 && options.Height > 0 {
		editorOpts = append(editorOpts, app.WithSize(options.Width, options.Height))
	}
	if len(options.Tape) > 0 {
		editorOpts = append(editorOpts, app.WithTape(options.TapeName, options.Tape))
	}

	m := app.NewEditor(editorOpts...)
	if err := m.SetPlacement(config.Placement); err != nil {
		m.LogWarn("Ignoring placement: %v", err)
	}
	return m
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// the editor:
//
//	model := pagecraft.New()
//	p := tea.NewProgram(model, pagecraft.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops pointer motion
// unless a drag or gesture is running.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	return app.FilterMouseMotion(model, msg)
}

// Page is a canvas edited without a terminal.
type Page struct {
	exec *tape.CanvasExecutor
}

// PageOption configures a Page.
type PageOption func(*pageOptions)

type pageOptions struct {
	placement string
	logger    *log.Logger
}

// PageWithPlacement sets the placement mode of a page.
func PageWithPlacement(mode string) PageOption {
	return func(o *pageOptions) {
		o.placement = mode
	}
}

// PageWithLogger sets the logger of a page.
func PageWithLogger(l *log.Logger) PageOption {
	return func(o *pageOptions) {
		o.logger = l
	}
}

// NewPage returns an empty page.
func NewPage(opts ...PageOption) *Page {
	o := pageOptions{placement: PlacementFlow, logger: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	c := canvas.New()
	exec := tape.NewCanvasExecutor(c, gesture.NewController(c, gesture.ConfiguredLimits()), o.logger)
	if err := exec.SetPlacement(o.placement); err != nil {
		o.logger.Warn("ignoring placement", "err", err)
	}
	return &Page{exec: exec}
}

// Canvas returns the page document.
func (p *Page) Canvas() *canvas.Canvas {
	return p.exec.Canvas()
}

// Placement returns the placement mode.
func (p *Page) Placement() string {
	return p.exec.Placement()
}

// Play parses and runs a tape script. It stops at the first failing
// command; commands before it stay applied.
func (p *Page) Play(script string) error {
	commands, err := tape.Parse(script)
	if err != nil {
		return err
	}
	return p.Run(commands)
}

// PlayFile runs the tape at path, or the saved tape of that name.
func (p *Page) PlayFile(name string) error {
	path, err := tape.Resolve(name)
	if err != nil {
		return err
	}
	commands, err := tape.Load(path)
	if err != nil {
		return err
	}
	return p.Run(commands)
}

// Run executes parsed commands.
func (p *Page) Run(commands []tape.Command) error {
	return tape.NewCommandExecutor(p.exec).Run(commands)
}

// Generate renders the page as a React MyPage component.
func (p *Page) Generate(ctx context.Context) (string, error) {
	c := p.Canvas()
	gen := codegen.ForCanvas(c, p.Placement() == PlacementFreeform)
	return gen.Generate(ctx, c.Components())
}

// Prompt returns the model prompt describing the page.
func (p *Page) Prompt() string {
	return codegen.FrontendPrompt(p.Canvas().Components())
}

// Render draws the page as terminal text at the given width.
func (p *Page) Render(width int) string {
	return render.Render(p.Canvas(), width)
}

// Config re-exports the config package for customization.
// This allows users to access configuration types without importing internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
