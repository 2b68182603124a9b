package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/kerbaras/guya/pkg/data"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the books in the catalogue",
	Long:  "Display the catalogue in a formatted table, with the last position read in each book",
	Run: func(cmd *cobra.Command, args []string) {
		c := mustController()
		defer closeController(c)

		refresh, _ := cmd.Flags().GetBool("refresh")
		books, err := c.Catalog.Books(cmd.Context(), !refresh)
		cobra.CheckErr(err)

		if len(books) == 0 {
			fmt.Println("📚 The catalogue is empty.")
			return
		}

		read := make(map[string]*data.Progress)
		progress, err := c.Repo.ListProgress()
		cobra.CheckErr(err)
		for _, p := range progress {
			read[p.BookID] = p
		}

		columns := []table.Column{
			{Title: "Title", Width: 40},
			{Title: "Slug", Width: 30},
			{Title: "Volumes", Width: 8},
			{Title: "Chapters", Width: 9},
			{Title: "Groups", Width: 7},
			{Title: "Last read", Width: 14},
		}

		rows := []table.Row{}
		for _, book := range books {
			last := "-"
			if p, ok := read[book.ID]; ok {
				last = fmt.Sprintf("ch %s p %d", data.FormatNumber(p.Chapter), p.Page)
			}
			rows = append(rows, table.Row{
				truncateString(book.Title, 38),
				truncateString(book.ID, 28),
				fmt.Sprintf("%d", len(book.Volumes())),
				fmt.Sprintf("%d", len(book.Chapters())),
				fmt.Sprintf("%d", len(book.Groups())),
				last,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n📚 Catalogue (%d books)\n\n", len(books))
		fmt.Println(t.View())
	},
}

func init() {
	listCmd.Flags().BoolP("refresh", "r", false, "Fetch the catalogue again instead of using the cached copy")
}

func truncateString(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "...")
}
