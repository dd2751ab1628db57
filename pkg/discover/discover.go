package discover

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vapvarun/docshot/pkg/browser"
	"github.com/vapvarun/docshot/pkg/logging"
)

// Page is the browser surface discovery drives. *browser.Session
// satisfies it; tests substitute a fake.
type Page interface {
	Navigate(url string, opts browser.NavigateOptions) error
	WaitForLoad() error
	Click(opts browser.ClickOptions) error
	IsVisible(selector string) (bool, error)
	Content() (string, error)
	Title() (string, error)
	URL() string
}

// Discoverer walks a plugin's admin pages and builds its Structure.
type Discoverer struct {
	session Page
	out     io.Writer
	log     *logging.Logger
	sleep   func(time.Duration)
}

// NewDiscoverer creates a discoverer driving the given browser page.
// out receives progress output (default os.Stdout).
func NewDiscoverer(session Page, out io.Writer) *Discoverer {
	if out == nil {
		out = os.Stdout
	}
	log, _ := logging.NewLogger("discover")
	return &Discoverer{
		session: session,
		out:     out,
		log:     log,
		sleep:   time.Sleep,
	}
}

// Discover logs in, loads the plugin settings page, and walks every
// discovered tab collecting its form elements.
func (d *Discoverer) Discover(siteURL, adminPage string, userID int) (*Structure, error) {
	structure := &Structure{
		SiteURL:    siteURL,
		AdminPage:  adminPage,
		TabDetails: make(map[string]FormElements),
	}

	fmt.Fprintf(d.out, "\n--- Logging in as user %d ---\n", userID)
	if err := d.login(siteURL, userID); err != nil {
		return nil, err
	}

	fmt.Fprintf(d.out, "\n--- Loading plugin page ---\n")
	pageURL := fmt.Sprintf("%s/wp-admin/admin.php?page=%s", siteURL, adminPage)
	if err := d.session.Navigate(pageURL, browser.NavigateOptions{WaitUntil: "networkidle"}); err != nil {
		return nil, fmt.Errorf("failed to load plugin page: %w", err)
	}
	d.sleep(2 * time.Second)

	if !strings.Contains(d.session.URL(), "page=") {
		return nil, fmt.Errorf("plugin page not found, check slug %q", adminPage)
	}

	fmt.Fprintf(d.out, "\n--- Discovering tabs ---\n")
	content, err := d.session.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}

	tabs, err := ParseTabs(content)
	if err != nil {
		return nil, err
	}
	structure.Tabs = tabs

	if len(tabs) == 0 {
		fmt.Fprintf(d.out, "No tabs found (single-page settings)\n")
		elements, err := ParseFormElements(content)
		if err != nil {
			return nil, err
		}
		structure.TabDetails["main"] = elements
		return structure, nil
	}

	fmt.Fprintf(d.out, "Found %d tabs:\n", len(tabs))
	for _, tab := range tabs {
		fmt.Fprintf(d.out, "  - %s: %s\n", tab.ID, tab.Name)
	}

	fmt.Fprintf(d.out, "\n--- Analyzing each tab ---\n")
	for _, tab := range tabs {
		fmt.Fprintf(d.out, "\n  Tab: %s (%s)\n", tab.Name, tab.ID)

		if err := d.openTab(siteURL, adminPage, tab.ID); err != nil {
			fmt.Fprintf(d.out, "    Could not load tab: %s\n", tab.ID)
			d.log.Warnf("tab %s: %v", tab.ID, err)
			continue
		}

		tabContent, err := d.session.Content()
		if err != nil {
			d.log.Warnf("tab %s content: %v", tab.ID, err)
			continue
		}

		elements, err := ParseFormElements(tabContent)
		if err != nil {
			d.log.Warnf("tab %s parse: %v", tab.ID, err)
			continue
		}
		structure.TabDetails[tab.ID] = elements

		fmt.Fprintf(d.out, "    Dropdowns: %d\n", len(elements.Dropdowns))
		fmt.Fprintf(d.out, "    Checkboxes: %d\n", len(elements.Checkboxes))
		for _, dd := range elements.Dropdowns {
			if strings.Contains(strings.ToLower(dd.ID), "editor") || strings.Contains(strings.ToLower(dd.Name), "editor") {
				fmt.Fprintf(d.out, "    >> EDITOR FOUND: #%s (%d options)\n", dd.ID, len(dd.Options))
			}
		}
	}

	return structure, nil
}

func (d *Discoverer) login(siteURL string, userID int) error {
	url := fmt.Sprintf("%s/wp-admin/?dev_login=%d", siteURL, userID)
	if err := d.session.Navigate(url, browser.NavigateOptions{WaitUntil: "networkidle"}); err != nil {
		return fmt.Errorf("login navigation failed: %w", err)
	}
	d.sleep(time.Second)

	title, err := d.session.Title()
	if err != nil {
		return fmt.Errorf("failed to read page title: %w", err)
	}
	if !strings.Contains(title, "Dashboard") && strings.Contains(title, "Log In") {
		return fmt.Errorf("login failed, check the dev-login mu-plugin installation")
	}
	return nil
}

// openTab activates a tab by clicking it, falling back to direct
// navigation with a tab= query parameter.
func (d *Discoverer) openTab(siteURL, adminPage, tabID string) error {
	selector := fmt.Sprintf(".nav-tab-wrapper li#%s a.nav-tab", tabID)
	if visible, err := d.session.IsVisible(selector); err == nil && visible {
		if err := d.session.Click(browser.ClickOptions{Selector: selector}); err == nil {
			d.sleep(time.Second)
			return nil
		}
	}

	url := fmt.Sprintf("%s/wp-admin/admin.php?page=%s&tab=%s", siteURL, adminPage, tabID)
	if err := d.session.Navigate(url, browser.NavigateOptions{WaitUntil: "networkidle"}); err != nil {
		return err
	}
	d.sleep(time.Second)
	return nil
}
