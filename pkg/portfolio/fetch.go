package portfolio

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"drive-portfolio/pkg/models"
)

// Fetcher retrieves the raw portfolio listing
type Fetcher interface {
	Fetch(ctx context.Context) (*models.Listing, error)
}

var errNoFetcher = errors.New("no listing source configured")

// FetchIndex fetches and normalizes the listing. Any failure other than
// cancellation of ctx is absorbed by returning FallbackIndex.
func FetchIndex(ctx context.Context, fetcher Fetcher) (Index, error) {
	var (
		listing *models.Listing
		err     = errNoFetcher
	)
	if fetcher != nil {
		listing, err = fetcher.Fetch(ctx)
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Index{}, ctxErr
		}
		logrus.Warnf("Could not fetch portfolio listing, falling back to demo data: %v", err)
		return FallbackIndex(), nil
	}

	return Normalize(listing), nil
}
