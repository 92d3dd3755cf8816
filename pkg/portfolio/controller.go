// Package portfolio holds the presentation state machine of the portfolio:
// fetching the listing (or demo data), category selection, the media grid
// and the modal viewer. Rendering is delegated to a View.
package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"drive-portfolio/pkg/models"
)

// User-visible messages
const (
	LoadingMessage      = "Loading Content..."
	ModalLoadingMessage = "Loading..."
	ErrorMessage        = "Failed to load portfolio."
	EmptyMessage        = "No items in this category."
	UnavailableMessage  = "Media not available"
	DefaultCaption      = "View Project"
)

const (
	// CardRevealStep is the reveal delay added per grid position
	CardRevealStep = 100 * time.Millisecond

	// ClearDelay is how long modal content survives a close, so the close transition can finish
	ClearDelay = 300 * time.Millisecond
)

// ErrAlreadyInitialized is returned by a second call to Initialize
var ErrAlreadyInitialized = errors.New("portfolio already initialized")

// View renders controller state. All methods are called on the UI goroutine.
type View interface {
	RenderLoading(message string)
	RenderError(message string)
	RenderFilters(categories []models.Category)
	SetActiveFilter(id string)
	RenderEmpty(message string)
	RenderGrid(cards []Card)
	ShowModal()
	HideModal()
	SetModalContent(content ModalContent)
	ClearModalContent()
	SetCursorHover(on bool)
}

// Scheduler runs work on behalf of the controller. Go runs task off the UI
// goroutine and then runs the continuation it returns on the UI goroutine.
// After runs fn on the UI goroutine once d has elapsed.
type Scheduler interface {
	Go(task func() func())
	After(d time.Duration, fn func())
}

// Preloader fetches an image completely before it is shown
type Preloader interface {
	Preload(ctx context.Context, url string) error
}

// ScrollLock pauses page scrolling while the modal is open
type ScrollLock interface {
	Suspend()
	Resume()
}

// Card is one rendered grid entry
type Card struct {
	Position     int
	Title        string
	Caption      string
	ThumbnailURL string
	Delay        time.Duration
	Item         MediaItem
}

// Params holds the collaborators of a Controller. Fetcher, Preloader and
// ScrollLock may be nil.
type Params struct {
	View       View
	Fetcher    Fetcher
	Scheduler  Scheduler
	Preloader  Preloader
	ScrollLock ScrollLock
}

// Controller owns the portfolio state. It is not safe for concurrent use;
// every method must be called on the UI goroutine.
type Controller struct {
	view      View
	fetcher   Fetcher
	sched     Scheduler
	preloader Preloader
	scroll    ScrollLock

	ctx         context.Context
	initialized bool
	index       Index
	active      string
	cards       []Card

	modal     ModalState
	modalItem *MediaItem
	token     uint64
}

// New creates a Controller
func New(p Params) *Controller {
	return &Controller{
		view:      p.View,
		fetcher:   p.Fetcher,
		sched:     p.Scheduler,
		preloader: p.Preloader,
		scroll:    p.ScrollLock,
		ctx:       context.Background(),
		index:     Index{Items: map[string][]MediaItem{}},
	}
}

// Initialize fetches the index and selects the first category. It may be
// called once.
func (c *Controller) Initialize(ctx context.Context) error {
	if c.initialized {
		return ErrAlreadyInitialized
	}
	c.initialized = true
	c.ctx = ctx

	logrus.Debug("Initializing portfolio")
	c.view.RenderLoading(LoadingMessage)

	fetcher := c.fetcher
	c.sched.Go(func() func() {
		idx, err := FetchIndex(ctx, fetcher)
		return func() { c.populate(idx, err) }
	})
	return nil
}

func (c *Controller) populate(idx Index, err error) {
	if err != nil {
		logrus.Errorf("Portfolio initialization failed: %v", err)
		c.view.RenderError(ErrorMessage)
		return
	}

	c.index = idx
	c.view.RenderFilters(idx.Categories)

	if len(idx.Categories) == 0 {
		c.RenderGrid(nil)
		return
	}
	c.SelectCategory(idx.Categories[0].ID)
}

// SelectCategory makes id the active category and renders its items.
// Selecting the active category again does nothing and returns false.
func (c *Controller) SelectCategory(id string) bool {
	if c.active == id {
		return false
	}
	c.active = id

	c.view.SetActiveFilter(id)
	c.view.RenderLoading(LoadingMessage)
	c.RenderGrid(c.index.Items[id])
	return true
}

// RenderGrid renders one card per item, in order, or the empty-state message
func (c *Controller) RenderGrid(items []MediaItem) {
	c.cards = BuildCards(items)
	if len(c.cards) == 0 {
		c.view.RenderEmpty(EmptyMessage)
		return
	}
	c.view.RenderGrid(c.cards)
}

// BuildCards derives the grid cards for items
func BuildCards(items []MediaItem) []Card {
	cards := make([]Card, 0, len(items))
	for i, item := range items {
		caption := item.Description
		if caption == "" {
			caption = DefaultCaption
		}
		cards = append(cards, Card{
			Position:     i,
			Title:        item.Name,
			Caption:      caption,
			ThumbnailURL: GridThumbnailURL(item.PreviewURL),
			Delay:        time.Duration(i) * CardRevealStep,
			Item:         item,
		})
	}
	return cards
}

// ClickCard opens the modal for the card at position i
func (c *Controller) ClickCard(i int) bool {
	if i < 0 || i >= len(c.cards) {
		return false
	}
	c.OpenModal(c.cards[i].Item)
	return true
}

// HoverCard toggles the cursor hover affordance
func (c *Controller) HoverCard(on bool) {
	c.view.SetCursorHover(on)
}

// Index returns the current index
func (c *Controller) Index() Index {
	return c.index
}

// ActiveCategory returns the active category ID, or "" when none is active
func (c *Controller) ActiveCategory() string {
	return c.active
}

// Cards returns the cards of the last grid render
func (c *Controller) Cards() []Card {
	return c.cards
}
