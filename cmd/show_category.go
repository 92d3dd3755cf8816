package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"drive-portfolio/pkg/portfolio"
)

// newShowCategoryCmd creates a new command for showing category details
func newShowCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-category [id or name]",
		Short: "Show media items in a specific category",
		Long:  `Show the grid cards of a category, identified by its folder ID or name, with the links the modal viewer would open.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			idx := loadIndex(cmd.Context())
			showCategory(idx, args[0])
		},
	}
}

// showCategory displays the cards of one category
func showCategory(idx portfolio.Index, ref string) {
	var found bool
	var id, name string
	for _, c := range idx.Categories {
		if c.ID == ref || strings.EqualFold(c.Name, ref) {
			id, name, found = c.ID, c.Name, true
			break
		}
	}
	if !found {
		fmt.Printf("Error: category %q not found\n", ref)
		os.Exit(1)
	}

	cards := portfolio.BuildCards(idx.Items[id])
	fmt.Printf("Category: %s\n", name)
	fmt.Printf("Items: %d\n", len(cards))
	fmt.Println("================")

	if len(cards) == 0 {
		fmt.Println(portfolio.EmptyMessage)
		return
	}

	for _, card := range cards {
		item := card.Item
		fmt.Printf("%d. %s [%s]\n", card.Position+1, card.Title, item.Kind)
		fmt.Printf("   %s\n", card.Caption)
		if card.ThumbnailURL != "" {
			fmt.Printf("   Thumbnail: %s\n", card.ThumbnailURL)
		}
		switch {
		case item.Kind == portfolio.KindVideo && item.ViewURL != "":
			fmt.Printf("   Player: %s\n", portfolio.EmbedURL(item.ViewURL))
		case item.PreviewURL != "":
			fmt.Printf("   Image: %s\n", portfolio.ModalImageURL(item.PreviewURL))
		default:
			fmt.Printf("   %s\n", portfolio.UnavailableMessage)
		}
		fmt.Println()
	}
}
