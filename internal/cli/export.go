package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/paperdesk/internal/player"
	"github.com/dgallion1/paperdesk/internal/session"
)

var (
	exportRate   int
	exportVolume float64
	exportPage   int
)

var exportCmd = &cobra.Command{
	Use:   "export <input> <output.wav|output.mp3>",
	Short: "Render a document to an audio file",
	Long: `Render a document to WAV, or to MP3 when the output ends in .mp3.

All non-blank pages are read, joined by blank lines, unless --page selects one.
If MP3 conversion fails the audio is kept as a WAV file and its path printed.`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntVar(&exportRate, "rate", 0, "speech rate in words per minute (80-300)")
	exportCmd.Flags().Float64Var(&exportVolume, "volume", -1, "volume from 0.0 to 1.0")
	exportCmd.Flags().IntVar(&exportPage, "page", 0, "export only this page (1-based, counting non-blank pages)")
	rootCmd.AddCommand(exportCmd)
}

type exportResult struct {
	path string
	err  error
}

func runExport(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	doc, err := a.open(in)
	if err != nil {
		return err
	}
	s := session.New()
	if s.Load(doc) == 0 {
		return errors.New("no text to export")
	}

	text := s.All()
	if exportPage != 0 {
		if !s.Goto(exportPage - 1) {
			return fmt.Errorf("page %d out of range: document has %d non-blank pages", exportPage, s.Len())
		}
		text = s.Current()
	}

	if cmd.Flags().Changed("rate") {
		a.player.SetRate(exportRate)
	}
	if cmd.Flags().Changed("volume") {
		a.player.SetVolume(exportVolume)
	}

	done := make(chan exportResult, 1)
	err = a.player.Save(text, out, func(path string, err error) {
		done <- exportResult{path: path, err: err}
	})
	if err != nil {
		return err
	}

	var res exportResult
	select {
	case res = <-done:
	case <-cmd.Context().Done():
		a.player.CancelExport()
		res = <-done
	}

	var fallback *player.FallbackError
	switch {
	case res.err == nil:
		format := strings.ToUpper(strings.TrimPrefix(filepath.Ext(res.path), "."))
		cmd.Printf("Saved %s to: %s\n", format, res.path)
		return nil
	case errors.As(res.err, &fallback):
		cmd.PrintErrf("warning: could not convert to MP3 automatically: %v\n", fallback.Err)
		cmd.Printf("Saved WAV at: %s\n", fallback.WAVPath)
		return nil
	}
	return fmt.Errorf("export %s: %w", out, res.err)
}
