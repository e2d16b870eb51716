// Package cli implements the audiobook command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dgallion1/paperdesk/internal/tui"
)

var configPath string

// isTerminal reports whether the reader can take over the terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var errNoTerminal = errors.New("the reader needs an interactive terminal; use `audiobook export` for scripted use")

var rootCmd = &cobra.Command{
	Use:   "audiobook [file]",
	Short: "Listen to documents with text-to-speech",
	Long: `Open a PDF (or .txt, .md, .html, .docx) and listen to it page by page.

Controls:
  o           - Open a document
  space/p     - Play the current page
  s           - Stop
  n/→, b/←    - Next / previous page
  +/-         - Speech rate up / down
  ]/[         - Volume up / down
  tab         - Edit the page text
  e           - Export audio (.wav or .mp3)
  q           - Quit`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReader,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (yaml, json or toml)")
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runReader(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return errNoTerminal
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	model := tui.New(a.player, a.open, a.log)
	if len(args) == 1 {
		model.WithFile(args[0])
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
