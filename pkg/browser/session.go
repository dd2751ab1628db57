package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/vapvarun/docshot/pkg/annotate"
)

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageGotoOptions{}

	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	_, err := s.Page.Goto(url, playwrightOpts)
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// WaitForLoad waits until the page reaches network-idle.
func (s *Session) WaitForLoad() error {
	s.UpdateLastUsed()

	state := playwright.LoadStateNetworkidle
	err := s.Page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: state,
	})
	if err != nil {
		return fmt.Errorf("wait for load failed: %w", err)
	}
	return nil
}

// Reload reloads the current page and waits for it to settle.
func (s *Session) Reload() error {
	s.UpdateLastUsed()

	if _, err := s.Page.Reload(); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	return s.WaitForLoad()
}

// Click clicks an element matching the selector.
func (s *Session) Click(opts ClickOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageClickOptions{}
	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Click(opts.Selector, playwrightOpts); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	// Update current URL in case click caused navigation
	s.CurrentURL = s.Page.URL()
	return nil
}

// SelectOption selects a value in a <select> element.
func (s *Session) SelectOption(selector, value string) error {
	s.UpdateLastUsed()

	_, err := s.Page.SelectOption(selector, playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	if err != nil {
		return fmt.Errorf("select option failed: %w", err)
	}
	return nil
}

// Screenshot captures the page to the given file path.
func (s *Session) Screenshot(opts ScreenshotOptions) error {
	s.UpdateLastUsed()

	_, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(opts.Path),
		FullPage: playwright.Bool(opts.FullPage),
	})
	if err != nil {
		return fmt.Errorf("screenshot failed: %w", err)
	}
	return nil
}

// ElementBounds resolves a selector to the first matching element's
// bounding box in integer pixels. A nil Rect with nil error means the
// element was not found or not visible; the caller records this as a
// soft "not found" outcome rather than a failure.
func (s *Session) ElementBounds(selector string) (*annotate.Rect, error) {
	s.UpdateLastUsed()

	locator := s.Page.Locator(selector).First()

	visible, err := locator.IsVisible()
	if err != nil {
		return nil, fmt.Errorf("visibility check failed for %q: %w", selector, err)
	}
	if !visible {
		return nil, nil
	}

	box, err := locator.BoundingBox()
	if err != nil {
		return nil, fmt.Errorf("bounding box failed for %q: %w", selector, err)
	}
	if box == nil {
		return nil, nil
	}

	return &annotate.Rect{
		X:      int(box.X),
		Y:      int(box.Y),
		Width:  int(box.Width),
		Height: int(box.Height),
	}, nil
}

// GetAttribute returns an attribute of the first element matching the
// selector, or empty string when absent.
func (s *Session) GetAttribute(selector, name string) (string, error) {
	s.UpdateLastUsed()

	value, err := s.Page.Locator(selector).First().GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("get attribute failed for %q: %w", selector, err)
	}
	return value, nil
}

// IsVisible reports whether the first element matching the selector is
// visible on the page.
func (s *Session) IsVisible(selector string) (bool, error) {
	s.UpdateLastUsed()
	return s.Page.Locator(selector).First().IsVisible()
}

// Title returns the current page title.
func (s *Session) Title() (string, error) {
	s.UpdateLastUsed()
	return s.Page.Title()
}

// URL returns the current page URL.
func (s *Session) URL() string {
	return s.Page.URL()
}

// Content returns the full HTML of the current page.
func (s *Session) Content() (string, error) {
	s.UpdateLastUsed()
	return s.Page.Content()
}
