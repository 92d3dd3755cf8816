package portfolio

import "github.com/sirupsen/logrus"

// ModalState is the state of the modal viewer
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalLoading
	ModalReady
)

func (s ModalState) String() string {
	switch s {
	case ModalLoading:
		return "loading"
	case ModalReady:
		return "ready"
	default:
		return "closed"
	}
}

// ContentKind selects what the modal shows
type ContentKind int

const (
	ContentLoading ContentKind = iota
	ContentImage
	ContentEmbed
	ContentUnavailable
)

// ModalContent is the body of the modal
type ModalContent struct {
	Kind    ContentKind
	URL     string
	Message string
}

// OpenModal shows item in the modal. Videos with a view link are embedded
// immediately; images are preloaded and swapped in once loaded.
func (c *Controller) OpenModal(item MediaItem) {
	wasClosed := c.modal == ModalClosed

	c.token++
	token := c.token
	c.modal = ModalLoading
	c.modalItem = &item

	c.view.SetModalContent(ModalContent{Kind: ContentLoading, Message: ModalLoadingMessage})
	c.view.ShowModal()
	if wasClosed && c.scroll != nil {
		c.scroll.Suspend()
	}

	if item.Kind == KindVideo && item.ViewURL != "" {
		c.resolve(ModalContent{Kind: ContentEmbed, URL: EmbedURL(item.ViewURL)})
		return
	}

	imageURL := ModalImageURL(item.PreviewURL)
	if imageURL == "" {
		c.resolve(ModalContent{Kind: ContentUnavailable, Message: UnavailableMessage})
		return
	}

	if c.preloader == nil {
		c.resolve(ModalContent{Kind: ContentImage, URL: imageURL})
		return
	}

	ctx, preloader := c.ctx, c.preloader
	c.sched.Go(func() func() {
		err := preloader.Preload(ctx, imageURL)
		return func() { c.imageLoaded(token, imageURL, err) }
	})
}

func (c *Controller) imageLoaded(token uint64, imageURL string, err error) {
	if token != c.token || c.modal != ModalLoading {
		logrus.Debugf("Discarding stale preload of %s", imageURL)
		return
	}
	if err != nil {
		logrus.Warnf("Could not preload %s: %v", imageURL, err)
		c.resolve(ModalContent{Kind: ContentUnavailable, Message: UnavailableMessage})
		return
	}
	c.resolve(ModalContent{Kind: ContentImage, URL: imageURL})
}

func (c *Controller) resolve(content ModalContent) {
	c.modal = ModalReady
	c.view.SetModalContent(content)
}

// CloseModal hides the modal and clears its content after ClearDelay.
// Pending preloads are invalidated. Closing a closed modal does nothing.
func (c *Controller) CloseModal() {
	if c.modal == ModalClosed {
		return
	}

	c.token++
	token := c.token
	c.modal = ModalClosed
	c.modalItem = nil

	c.view.HideModal()
	if c.scroll != nil {
		c.scroll.Resume()
	}

	c.sched.After(ClearDelay, func() {
		if c.token == token && c.modal == ModalClosed {
			c.view.ClearModalContent()
		}
	})
}

// ClickBackdrop closes the modal when the click landed outside its content
func (c *Controller) ClickBackdrop(insideContent bool) {
	if !insideContent {
		c.CloseModal()
	}
}

// KeyPress handles a key while the portfolio has focus. Escape closes an
// open modal; it reports whether the key was consumed.
func (c *Controller) KeyPress(key string) bool {
	if (key == "esc" || key == "Escape") && c.modal != ModalClosed {
		c.CloseModal()
		return true
	}
	return false
}

// ModalState returns the state of the modal viewer
func (c *Controller) ModalState() ModalState {
	return c.modal
}

// ModalItem returns the item shown in the modal, if it is open
func (c *Controller) ModalItem() (MediaItem, bool) {
	if c.modalItem == nil {
		return MediaItem{}, false
	}
	return *c.modalItem, true
}
