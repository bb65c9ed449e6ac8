package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/mypcnow/internal/catalog"
	"github.com/lakshaymaurya-felt/mypcnow/internal/ui"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cleanup categories and items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(catalog.Categories())
		}
		printCatalog(cmd.OutOrStdout(), catalog.Categories())
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output the catalog as JSON")
}

func printCatalog(w io.Writer, categories []catalog.Category) {
	for i, c := range categories {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", ui.TitleStyle.Render(c.Name), ui.MutedStyle.Render("("+c.Key+")"))
		for _, it := range c.Items {
			line := fmt.Sprintf("  %-20s %s", it.Key, it.Label)
			if it.RequiresAdmin {
				line += ui.WarnStyle.Render("  [admin]")
			}
			if it.Recoverable {
				line += ui.DoneStyle.Render("  [recoverable]")
			}
			fmt.Fprintln(w, line)
			if it.Warning != "" {
				fmt.Fprintf(w, "  %-20s %s\n", "", ui.MutedStyle.Render(ui.IconWarning+" "+it.Warning))
			}
		}
	}
}
