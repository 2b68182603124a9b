package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/navigation"
	"github.com/kerbaras/guya/pkg/services"
)

var pageCmd = &cobra.Command{
	Use:   "page <book> <chapter> [page]",
	Short: "Show a page and its links",
	Long: `Resolve a page of a chapter and print where it lives.

Without a page number the first page of the chapter is shown. The preferred
group picks the release unless --group asks for another one.

Examples:
  guya page kaguya-wants-to-be-confessed-to 21
  guya page kaguya-wants-to-be-confessed-to 21 7 --group 2`,
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		c := mustController()
		defer closeController(c)

		group, _ := cmd.Flags().GetString("group")
		book, page := locate(cmd.Context(), c, args, group)
		printPage(c, book, page)
	},
}

var nextCmd = &cobra.Command{
	Use:   "next <book> <chapter> <page>",
	Short: "Show the page after the given one",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		stepCommand(cmd, args, navigation.NextPage{})
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev <book> <chapter> <page>",
	Short: "Show the page before the given one",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		stepCommand(cmd, args, navigation.PreviousPage{})
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume <book>",
	Short: "Show the page where reading stopped",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := mustController()
		defer closeController(c)

		book, err := c.Catalog.Book(cmd.Context(), args[0])
		cobra.CheckErr(err)

		session := c.NewSession(book)
		if !session.Resume() {
			cobra.CheckErr(fmt.Errorf("%s has no readable chapters", book.Title))
		}
		printPage(c, book, session.Current())
	},
}

func init() {
	for _, cmd := range []*cobra.Command{pageCmd, nextCmd, prevCmd} {
		cmd.Flags().StringP("group", "g", "", "Group whose release to show")
	}
}

// locate resolves <book> <chapter> [page] to a page. A named group must have
// released that page itself.
func locate(ctx context.Context, c *services.Controller, args []string, group string) (*data.Book, data.PageID) {
	book, err := c.Catalog.Book(ctx, args[0])
	cobra.CheckErr(err)

	chapter, err := parseChapter(args[1])
	cobra.CheckErr(err)

	var intent navigation.Intent = navigation.JumpToChapter{Chapter: chapter}
	if len(args) > 2 {
		page, err := parsePage(args[2])
		cobra.CheckErr(err)
		intent = navigation.JumpToPage{Chapter: chapter, Page: page}
	}

	if group != "" {
		pid, ok := navigation.ResolveInGroup(book, data.NoPage, intent, group)
		if !ok {
			cobra.CheckErr(fmt.Errorf("group %s has no %s", group, intent))
		}
		return book, pid
	}

	pid, ok := navigation.Resolve(book, data.NoPage, intent, c.Prefs.PreferredGroup())
	if !ok {
		cobra.CheckErr(fmt.Errorf("%s has no %s", book.Title, intent))
	}
	return book, pid
}

func stepCommand(cmd *cobra.Command, args []string, intent navigation.Intent) {
	c := mustController()
	defer closeController(c)

	group, _ := cmd.Flags().GetString("group")
	book, from := locate(cmd.Context(), c, args, group)

	preferred := c.Prefs.PreferredGroup()
	if group != "" {
		preferred = group
	}
	pid, ok := navigation.Resolve(book, from, intent, preferred)
	if !ok {
		loc, _ := navigation.Locate(book, from)
		cobra.CheckErr(fmt.Errorf("no %s from chapter %s page %d", intent, data.FormatNumber(loc.Chapter), loc.Page))
	}
	printPage(c, book, pid)
}

func printPage(c *services.Controller, book *data.Book, page data.PageID) {
	loc, ok := navigation.Locate(book, page)
	if !ok {
		return
	}
	group, ok := book.Group(loc.Group)
	if !ok {
		group.Name = loc.Group
	}
	chapter := book.Chapter(book.PageChapter(page))

	fmt.Printf("📖 %s\n", book.Title)
	fmt.Printf("   Chapter %s", data.FormatNumber(loc.Chapter))
	if chapter.Title != "" {
		fmt.Printf(" - %s", chapter.Title)
	}
	fmt.Printf("\n   Page %d of %d by %s\n", loc.Page, book.NumberOfPages(book.Page(page).Release), group.Name)

	if url, ok := c.Links.PageImage(book, page); ok {
		fmt.Printf("🖼  %s\n", url)
	}
	if url, ok := c.Links.WebPage(book, page); ok {
		fmt.Printf("🔗 %s\n", url)
	}
}
