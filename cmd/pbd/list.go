package pbd

import (
	"fmt"

	"github.com/Gavin1937/pbd-epub-builder/pkg/data"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all built books",
	Long:  "Display every EPUB recorded in the library in a formatted table",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		repo := data.NewDuckDBRepository(cfg.LibraryPath)

		books, err := repo.ListBooks()
		if err != nil {
			cobra.CheckErr(err)
		}

		if len(books) == 0 {
			fmt.Println("📚 No books built yet. Use 'pbd-epub-builder build' to create one.")
			return
		}

		// Create table columns
		columns := []table.Column{
			{Title: "Title", Width: 36},
			{Title: "Author", Width: 18},
			{Title: "Novels", Width: 7},
			{Title: "Built", Width: 17},
			{Title: "File", Width: 40},
		}

		rows := []table.Row{}
		for _, book := range books {
			rows = append(rows, table.Row{
				truncateString(book.Title, 34),
				truncateString(book.Author, 16),
				fmt.Sprintf("%d", book.NovelCount),
				book.BuiltAt.Format("2006-01-02 15:04"),
				truncateString(book.FilePath, 38),
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

		fmt.Printf("\n📚 Library (%d books)\n\n", len(books))
		fmt.Println(t.View())
	},
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
