package cli

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/paperdesk/internal/session"
)

var pagesCmd = &cobra.Command{
	Use:   "pages <input>",
	Short: "Print the extracted non-blank pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		doc, err := a.open(args[0])
		if err != nil {
			return err
		}
		s := session.New()
		n := s.Load(doc)
		for i, text := range s.Pages() {
			cmd.Printf("--- Page %d / %d ---\n%s\n\n", i+1, n, text)
		}
		if n == 0 {
			cmd.Println("No text found.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
