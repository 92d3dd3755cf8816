package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"drive-portfolio/pkg/portfolio"
	"drive-portfolio/pkg/services"
)

// newListCategoriesCmd creates a new command for listing categories
func newListCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-categories",
		Short: "List all portfolio categories",
		Long:  `List all portfolio categories with the number of media items in each.`,
		Run: func(cmd *cobra.Command, args []string) {
			idx := loadIndex(cmd.Context())
			listCategories(idx)
		},
	}
}

// loadIndex lists the portfolio straight from the storage backend
func loadIndex(ctx context.Context) portfolio.Index {
	cfg, err := LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	services.InitService(cfg)

	listing, err := services.ListPortfolio(ctx)
	if err != nil {
		logrus.Fatalf("Failed to list portfolio: %v", err)
	}
	return portfolio.Normalize(listing)
}

// listCategories displays all categories and their item counts
func listCategories(idx portfolio.Index) {
	fmt.Println("Portfolio Categories:")
	fmt.Println("=====================")

	for _, category := range idx.Categories {
		fmt.Printf("%s (%s)\n", category.Name, category.ID)
		fmt.Printf("  Items: %d\n", len(idx.Items[category.ID]))
		fmt.Println()
	}

	fmt.Printf("Total: %d categories\n", len(idx.Categories))
}
