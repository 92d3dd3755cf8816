package handlers

import (
	"net/http"

	"github.com/eknkc/pug"
	"github.com/sirupsen/logrus"

	"drive-portfolio/pkg/portfolio"
)

// PageCategory is one section of the portfolio page
type PageCategory struct {
	ID    string
	Name  string
	Cards []portfolio.Card
	Empty string
}

// Page is the data handed to the portfolio template
type Page struct {
	Title      string
	Categories []PageCategory
}

// PortfolioPageHandler renders every category and its grid with the pug template at templatePath
func PortfolioPageHandler(lister Lister, templatePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Println("Generating Portfolio Page")

		template, err := pug.CompileFile(templatePath, pug.Options{})
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			logrus.Errorf("Template error: %v", err)
			return
		}

		listing, err := lister.ListPortfolio(r.Context())
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			logrus.Errorf("Portfolio listing failed: %v", err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := template.Execute(w, buildPage(portfolio.Normalize(listing))); err != nil {
			logrus.Errorf("Template execution error: %v", err)
		}
	}
}

func buildPage(idx portfolio.Index) Page {
	page := Page{Title: "Portfolio"}
	for _, c := range idx.Categories {
		section := PageCategory{
			ID:    c.ID,
			Name:  c.Name,
			Cards: portfolio.BuildCards(idx.Items[c.ID]),
		}
		if len(section.Cards) == 0 {
			section.Empty = portfolio.EmptyMessage
		}
		page.Categories = append(page.Categories, section)
	}
	return page
}
