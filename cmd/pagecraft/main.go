// Package main implements pagecraft, a terminal page builder.
// Pages are assembled from sections and components with the keyboard and
// mouse, then turned into a React + Tailwind component.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode   bool
	asciiOnly   bool
	borderStyle string
	hideClock   bool
	placement   string
	tapeFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pagecraft",
		Short: "Terminal page builder",
		Long: `pagecraft - Terminal page builder

Build landing pages from sections and components in the terminal, then
generate a React + Tailwind component from the result. Drag components
from the palette, reorder or move them on the canvas, resize them by their
handles and edit their properties in the side panel.`,
		Example: `  # Run pagecraft
  pagecraft

  # Run with debug logging
  pagecraft --debug

  # Start in freeform placement
  pagecraft --placement freeform

  # Open the editor and play a tape
  pagecraft --tape demo.tape

  # Run as SSH server
  pagecraft ssh --port 2222

  # Serve the canvas to AI agents over MCP
  pagecraft mcp

  # Generate code from a tape without opening the editor
  pagecraft generate demo.tape

  # Edit configuration
  pagecraft config edit

  # List all keybindings
  pagecraft keybinds list`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Unicode icons")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Component border style: rounded, normal, thick, double, hidden, block, ascii, outer-half-block, inner-half-block (default: from config or rounded)")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the clock in the status bar")
	rootCmd.PersistentFlags().StringVar(&placement, "placement", "", "Placement mode: flow, freeform (default: from config or flow)")
	rootCmd.Flags().StringVar(&tapeFile, "tape", "", "Play a tape file once the editor starts")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run pagecraft as SSH server",
		Long: `Run pagecraft as an SSH server

Every SSH session gets its own editor and canvas. Generated code is copied
to the client clipboard over OSC 52. The server generates a host key
automatically if not specified.`,
		Example: `  # Start SSH server on default port
  pagecraft ssh

  # Start on custom port
  pagecraft ssh --port 2222

  # Specify custom host key
  pagecraft ssh --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "", "SSH server port (default: from config or 2222)")
	sshCmd.Flags().StringVar(&sshHost, "host", "", "SSH server host (default: from config or localhost)")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve a canvas over the Model Context Protocol",
		Long: `Serve a canvas to AI agents over the Model Context Protocol

The server speaks MCP on stdin and stdout. Tools create sections, add and
edit components, resize them and generate code. The pagecraft://canvas
resource returns the whole page as JSON. Logs go to stderr.`,
		Example: `  # Register with an MCP client
  claude mcp add pagecraft -- pagecraft mcp

  # Start from a tape
  pagecraft mcp --tape landing.tape`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMCPServer(tapeFile)
		},
	}
	mcpCmd.Flags().StringVar(&tapeFile, "tape", "", "Play a tape into the canvas before serving")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pagecraft configuration",
		Long:  `Manage pagecraft configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the pagecraft configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the pagecraft configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the pagecraft configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return resetConfigToDefaults(cmd.InOrStdin(), cmd.OutOrStdout(), resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")

	configValidateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file",
		Long:  `Load the configuration file and report errors and warnings`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return validateConfigFile(cmd.OutOrStdout())
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configValidateCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect pagecraft keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listKeybindings(cmd.OutOrStdout())
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the component kinds",
		Long:  `Display every component kind with its description and default properties`,
		Args:  cobra.MaximumNArgs(1),
		ValidArgs: func() []string {
			var names []string
			for _, k := range catalog.Kinds() {
				names = append(names, string(k))
			}
			return names
		}(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := ""
			if len(args) > 0 {
				kind = args[0]
			}
			return printCatalog(cmd.OutOrStdout(), kind)
		},
	}

	tapeCmd := &cobra.Command{
		Use:   "tape",
		Short: "Manage and run .tape automation scripts",
		Long: `Manage and execute .tape automation scripts for pagecraft

Tape files build pages from commands like NewSection, Add, SetProp, Drag
and Resize, and check the result with Expect commands. Play them in the
editor to watch each step, or render the final page without a terminal.`,
		Example: `  # Run tape with visible editor (watch it happen)
  pagecraft tape play demo.tape

  # Validate tape file syntax
  pagecraft tape validate demo.tape

  # Print the final page
  pagecraft tape render demo.tape`,
	}

	tapePlayCmd := &cobra.Command{
		Use:   "play <file.tape>",
		Short: "Run a tape file in the editor",
		Long: `Execute a tape script while displaying the editor

Each command runs after a short delay so you can follow along. The
editor stays open once the tape finishes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tapeFile = args[0]
			return runLocal()
		},
	}

	tapeValidateCmd := &cobra.Command{
		Use:   "validate <file.tape>",
		Short: "Validate a tape file without running it",
		Long:  `Check if a tape file is syntactically correct`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateTapeFile(cmd.OutOrStdout(), args[0])
		},
	}

	var renderWidth int
	tapeRenderCmd := &cobra.Command{
		Use:   "render <file.tape>",
		Short: "Run a tape headlessly and print the page",
		Long: `Run a tape without the editor and draw the resulting canvas

Expect commands are checked; the first failure stops the tape and is
reported after the partial page is drawn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderTapeFile(cmd.OutOrStdout(), args[0], renderWidth)
		},
	}
	tapeRenderCmd.Flags().IntVarP(&renderWidth, "width", "w", 0, "Render width in columns (default: terminal width or 80)")

	tapeListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all saved tapes",
		Long:  `Display all tape files in the pagecraft data directory`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listTapeFiles(cmd.OutOrStdout())
		},
	}

	tapeDirCmd := &cobra.Command{
		Use:   "dir",
		Short: "Show the tape directory path",
		Long:  `Print the path where tapes are stored`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showTapeDirectory(cmd.OutOrStdout())
		},
	}

	tapeShowCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Display the contents of a tape file",
		Long:  `Print the contents of a tape to stdout`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTapeFile(cmd.OutOrStdout(), args[0])
		},
	}

	tapeCmd.AddCommand(tapePlayCmd, tapeValidateCmd, tapeRenderCmd, tapeListCmd, tapeDirCmd, tapeShowCmd)

	var generateFormat string
	var generateCopy bool
	generateCmd := &cobra.Command{
		Use:   "generate <file.tape>",
		Short: "Generate code from a tape",
		Long: `Run a tape headlessly and print the generated page

The tsx format prints a React MyPage component using Tailwind classes. The
prompt format prints the description a model needs to write one.`,
		Example: `  # Print the component
  pagecraft generate landing.tape

  # Copy it to the clipboard
  pagecraft generate landing.tape --copy

  # Print the model prompt instead
  pagecraft generate landing.tape --format prompt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateFromTape(cmd.Context(), cmd.OutOrStdout(), args[0], generateFormat, generateCopy)
		},
	}
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "tsx", "Output format: tsx, prompt")
	generateCmd.Flags().BoolVarP(&generateCopy, "copy", "c", false, "Copy the output to the system clipboard")

	rootCmd.AddCommand(sshCmd, mcpCmd, configCmd, keybindsCmd, catalogCmd, tapeCmd, generateCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
