package capture

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/vapvarun/docshot/pkg/annotate"
	"github.com/vapvarun/docshot/pkg/browser"
	"github.com/vapvarun/docshot/pkg/logging"
)

// Metadata is the per-image record written next to each capture's
// renderer command file, including annotation requests whose elements
// were not found.
type Metadata struct {
	Filename    string            `json:"filename"`
	Filepath    string            `json:"filepath"`
	Viewport    browser.Viewport  `json:"viewport"`
	FullPage    bool              `json:"full_page"`
	URL         string            `json:"url"`
	Title       string            `json:"title"`
	Annotations []annotate.Record `json:"annotations"`
}

// Page is the browser surface the runner drives. *browser.Session
// satisfies it; tests substitute a fake.
type Page interface {
	Navigate(url string, opts browser.NavigateOptions) error
	WaitForLoad() error
	Reload() error
	Click(opts browser.ClickOptions) error
	SelectOption(selector, value string) error
	Screenshot(opts browser.ScreenshotOptions) error
	ElementBounds(selector string) (*annotate.Rect, error)
	GetAttribute(selector, name string) (string, error)
	IsVisible(selector string) (bool, error)
	Title() (string, error)
	URL() string
}

// Runner executes a capture plan against a live browser session.
type Runner struct {
	plan    *Plan
	session Page
	results *Results
	log     *logging.Logger
	out     io.Writer
	only    glob.Glob
	retry   RetryPolicy
	role    string
	sleep   func(time.Duration)
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	// Only filters captures to filenames matching a glob pattern,
	// e.g. "admin-*". Empty captures everything.
	Only string

	// Out receives progress output (default os.Stdout)
	Out io.Writer

	// Log receives structured run logs. Nil creates a session logger.
	Log *logging.Logger

	// RetryDelay overrides the pause between capture attempts
	// (default 2s). Mainly for tests.
	RetryDelay time.Duration
}

// NewRunner creates a runner for the given plan and browser session.
func NewRunner(plan *Plan, session Page, opts RunnerOptions) (*Runner, error) {
	var only glob.Glob
	if opts.Only != "" {
		compiled, err := glob.Compile(opts.Only)
		if err != nil {
			return nil, fmt.Errorf("invalid capture filter %q: %w", opts.Only, err)
		}
		only = compiled
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	log := opts.Log
	if log == nil {
		// NewLogger falls back to stderr on error, never nil
		log, _ = logging.NewLogger("capture")
	}

	delay := opts.RetryDelay
	if delay == 0 {
		delay = 2 * time.Second
	}

	return &Runner{
		plan:    plan,
		session: session,
		results: NewResults(),
		log:     log,
		out:     out,
		only:    only,
		retry:   RetryPolicy{MaxAttempts: plan.Browser.MaxRetries, Delay: delay},
		role:    DefaultAdminRole,
		sleep:   time.Sleep,
	}, nil
}

// Results exposes the session's accumulated outcomes.
func (r *Runner) Results() *Results {
	return r.results
}

// Run executes the full capture workflow: admin login, admin tab
// captures, frontend pages, editor variations and role comparisons,
// then writes the aggregate batch file. Individual capture failures are
// recorded and do not stop the run; only login failure is fatal.
func (r *Runner) Run() error {
	r.results.Reset()

	if err := r.loginAs(DefaultAdminRole); err != nil {
		return fmt.Errorf("admin login failed: %w", err)
	}
	r.role = DefaultAdminRole

	r.captureAdminTabs()
	r.captureFrontendPages()
	r.captureEditorVariations()
	r.captureRoleComparisons()

	if err := r.writeBatchFile(); err != nil {
		r.log.Errorf("batch file write failed: %v", err)
		return err
	}

	return nil
}

// loginAs logs in through the dev-login mu-plugin and verifies the
// resulting page is an admin screen rather than the login form.
func (r *Runner) loginAs(role string) error {
	cfg, ok := r.plan.Roles[role]
	if !ok {
		return fmt.Errorf("undefined role %q", role)
	}

	fmt.Fprintf(r.out, "  Switching to %s (user ID: %d)...\n", role, cfg.UserID)
	r.log.Infof("logging in as %s (user %d)", role, cfg.UserID)

	url := fmt.Sprintf("%s/wp-admin/?dev_login=%d", r.plan.Site.URL, cfg.UserID)
	if err := r.session.Navigate(url, browser.NavigateOptions{WaitUntil: "networkidle"}); err != nil {
		return err
	}
	r.sleep(time.Second)

	title, err := r.session.Title()
	if err != nil {
		return fmt.Errorf("failed to read page title: %w", err)
	}

	if strings.Contains(title, "Dashboard") || strings.Contains(title, "Profile") || !strings.Contains(title, "Log In") {
		return nil
	}
	return fmt.Errorf("login failed for %s: still on %q (is the dev-login mu-plugin installed?)", role, title)
}

// clickPluginTab clicks a plugin admin tab by its id and verifies the
// click took effect. An empty tab id is a no-op.
func (r *Runner) clickPluginTab(tabID string) error {
	if tabID == "" {
		return nil
	}

	selector := fmt.Sprintf(".nav-tab-wrapper li#%s a.nav-tab", tabID)
	visible, err := r.session.IsVisible(selector)
	if err != nil {
		return fmt.Errorf("tab %q lookup failed: %w", tabID, err)
	}
	if !visible {
		return fmt.Errorf("tab %q not visible", tabID)
	}

	if err := r.session.Click(browser.ClickOptions{Selector: selector}); err != nil {
		return fmt.Errorf("tab %q click failed: %w", tabID, err)
	}
	r.wait()

	// Best effort: tabs that swap content without reloading may not
	// toggle the active class, so a missing class is not a failure.
	if class, err := r.session.GetAttribute(selector, "class"); err == nil && !strings.Contains(class, "nav-tab-active") {
		r.log.Debugf("tab %q clicked but nav-tab-active not set", tabID)
	}

	return nil
}

func (r *Runner) captureAdminTabs() {
	if len(r.plan.AdminTabs) == 0 {
		return
	}

	fmt.Fprintf(r.out, "\n=== Admin Tab Screenshots ===\n\n")

	url := fmt.Sprintf("%s/wp-admin/admin.php?page=%s", r.plan.Site.URL, r.plan.Site.PluginPage)
	if err := r.session.Navigate(url, browser.NavigateOptions{WaitUntil: "networkidle"}); err != nil {
		r.log.Errorf("could not load admin page: %v", err)
		fmt.Fprintf(r.out, "  ERROR: Could not load admin page: %v\n", err)
		return
	}
	r.wait()

	for _, capture := range r.plan.AdminTabs {
		if !r.wantCapture(capture.Filename) {
			continue
		}

		fmt.Fprintf(r.out, "  Capturing: %s\n", capture.Filename)

		if err := r.clickPluginTab(capture.Tab); err != nil {
			fmt.Fprintf(r.out, "    SKIPPED: %v\n", err)
			r.log.Warnf("skipping %s: %v", capture.Filename, err)
			r.results.RecordSkipped(capture.Filename)
			continue
		}

		r.captureWithRetry(capture.Filename, capture.FullPage, capture.Annotations)
	}
}

func (r *Runner) captureFrontendPages() {
	if len(r.plan.FrontendPages) == 0 {
		return
	}

	fmt.Fprintf(r.out, "\n=== Frontend Screenshots ===\n\n")
	for _, capture := range r.plan.FrontendPages {
		if !r.wantCapture(capture.Filename) {
			continue
		}
		r.navigateAndCapture(capture.URL, capture.Filename, capture.FullPage, capture.Annotations)
	}
}

func (r *Runner) captureEditorVariations() {
	if len(r.plan.EditorTypes) == 0 || r.plan.Editor == nil {
		return
	}

	fmt.Fprintf(r.out, "\n=== Editor Type Screenshots ===\n\n")
	for _, editor := range r.plan.EditorTypes {
		if !r.wantCapture(editor.Filename) {
			continue
		}

		fmt.Fprintf(r.out, "\n--- %s editor ---\n", editor.Type)
		if err := r.setEditorType(editor.Type); err != nil {
			fmt.Fprintf(r.out, "    Warning: Could not set editor type: %v\n", err)
			r.log.Warnf("editor type %s: %v", editor.Type, err)
			r.results.RecordSkipped(editor.Filename)
			continue
		}

		r.navigateAndCapture(r.plan.Editor.FormURL, editor.Filename, true, editor.Annotations)
	}
}

func (r *Runner) captureRoleComparisons() {
	if len(r.plan.RoleCaptures) == 0 {
		return
	}

	fmt.Fprintf(r.out, "\n=== Role Comparison Screenshots ===\n\n")
	for _, capture := range r.plan.RoleCaptures {
		for _, role := range capture.Roles {
			filename := strings.ReplaceAll(capture.FilenamePattern, "{role}", role)
			if !r.wantCapture(filename) {
				continue
			}

			fmt.Fprintf(r.out, "\n--- As %s ---\n", role)
			if err := r.loginAs(role); err != nil {
				fmt.Fprintf(r.out, "    Login failed for %s: %v\n", role, err)
				r.log.Warnf("role %s login failed: %v", role, err)
				r.results.RecordFailed(filename)
				continue
			}
			r.role = role

			r.navigateAndCapture(capture.URL, filename, capture.FullPage, capture.Annotations)
		}
	}
}

// setEditorType switches the plugin's editor type through its settings
// dropdown and saves the form.
func (r *Runner) setEditorType(editorType string) error {
	fmt.Fprintf(r.out, "  Setting editor to: %s\n", editorType)

	url := fmt.Sprintf("%s/wp-admin/admin.php?page=%s", r.plan.Site.URL, r.plan.Site.PluginPage)
	if err := r.session.Navigate(url, browser.NavigateOptions{WaitUntil: "networkidle"}); err != nil {
		return err
	}
	r.sleep(time.Second)

	if err := r.clickPluginTab(r.plan.Editor.Tab); err != nil {
		return err
	}

	if err := r.session.SelectOption(r.plan.Editor.Selector, editorType); err != nil {
		return err
	}
	r.sleep(500 * time.Millisecond)

	if err := r.session.Click(browser.ClickOptions{Selector: "input[type='submit']"}); err != nil {
		return err
	}
	if err := r.session.WaitForLoad(); err != nil {
		return err
	}
	r.sleep(time.Second)

	return nil
}

// navigateAndCapture navigates to a site-relative URL, substituting the
// current role's {username}, and captures it with retry.
func (r *Runner) navigateAndCapture(url, filename string, fullPage bool, annotations []annotate.Request) {
	if role, ok := r.plan.Roles[r.role]; ok {
		url = strings.ReplaceAll(url, "{username}", role.Username)
	}

	fmt.Fprintf(r.out, "  Capturing: %s\n", filename)

	if err := r.session.Navigate(r.plan.Site.URL+url, browser.NavigateOptions{WaitUntil: "networkidle"}); err != nil {
		fmt.Fprintf(r.out, "    Navigation failed: %v\n", err)
		r.log.Errorf("navigation to %s failed: %v", url, err)
		r.results.RecordFailed(filename)
		return
	}
	r.wait()

	r.captureWithRetry(filename, fullPage, annotations)
}

// captureWithRetry captures one screenshot, reloading the page between
// failed attempts, and records the final outcome.
func (r *Runner) captureWithRetry(filename string, fullPage bool, annotations []annotate.Request) {
	err := r.retry.Do(
		func() error {
			return r.capture(filename, fullPage, annotations)
		},
		func(attempt int, err error) {
			fmt.Fprintf(r.out, "    Attempt %d/%d failed: %v\n", attempt, r.retry.MaxAttempts, err)
			r.log.Warnf("%s attempt %d failed: %v", filename, attempt, err)
			if reloadErr := r.session.Reload(); reloadErr != nil {
				r.log.Warnf("reload before retry failed: %v", reloadErr)
			}
		},
	)
	if err != nil {
		fmt.Fprintf(r.out, "    FAILED: %s\n", filename)
		r.log.Errorf("%s: %v", filename, err)
		r.results.RecordFailed(filename)
		return
	}

	r.results.RecordSuccess(filename)
}

// capture takes the screenshot, resolves annotation requests against the
// live page, and writes the per-image metadata and renderer command files.
func (r *Runner) capture(filename string, fullPage bool, annotations []annotate.Request) error {
	path := filepath.Join(r.plan.Output.ImagesDir, filename)
	if err := r.session.Screenshot(browser.ScreenshotOptions{Path: path, FullPage: fullPage}); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "    Saved: %s\n", path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	title, _ := r.session.Title()
	metadata := Metadata{
		Filename: filename,
		Filepath: absPath,
		Viewport: r.plan.Browser.Viewport,
		FullPage: fullPage,
		URL:      r.session.URL(),
		Title:    title,
	}

	if len(annotations) == 0 {
		return nil
	}

	records, commands, err := annotate.Resolve(r.session, annotations)
	if err != nil {
		return err
	}
	metadata.Annotations = records

	for _, record := range records {
		if !record.Found {
			fmt.Fprintf(r.out, "    Warning: Element not found: %s\n", record.Selector)
			r.log.Warnf("%s: element not found: %s", filename, record.Selector)
		}
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	metadataPath := filepath.Join(r.plan.Output.MetadataDir, base+".json")
	if err := annotate.WriteJSON(metadataPath, metadata); err != nil {
		return err
	}

	if len(commands) == 0 {
		return nil
	}

	annotatedDir, err := filepath.Abs(r.plan.Output.AnnotatedDir)
	if err != nil {
		annotatedDir = r.plan.Output.AnnotatedDir
	}
	outputPath := filepath.Join(annotatedDir, filename)

	imageCmd := annotate.NewImageCommand(absPath, outputPath, commands)
	commandPath := filepath.Join(r.plan.Output.MetadataDir, base+"_command.json")
	if err := annotate.WriteJSON(commandPath, imageCmd); err != nil {
		return err
	}

	r.results.AddCommands(annotate.BatchEntry{
		InputPath:   absPath,
		OutputPath:  outputPath,
		Annotations: commands,
	})

	return nil
}

// writeBatchFile writes the session's aggregate batch file for bulk
// processing by the external renderer.
func (r *Runner) writeBatchFile() error {
	entries := r.results.BatchEntries()
	if len(entries) == 0 {
		return nil
	}

	annotatedDir, err := filepath.Abs(r.plan.Output.AnnotatedDir)
	if err != nil {
		annotatedDir = r.plan.Output.AnnotatedDir
	}

	batch := annotate.NewBatch(annotatedDir, entries)
	path := filepath.Join(r.plan.Output.MetadataDir, "_batch_annotate.json")
	if err := annotate.WriteJSON(path, batch); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "\n  Batch file: %s\n", path)
	return nil
}

// wantCapture applies the --only filename filter.
func (r *Runner) wantCapture(filename string) bool {
	if r.only == nil {
		return true
	}
	if r.only.Match(filename) {
		return true
	}
	r.log.Debugf("filtered out %s", filename)
	return false
}

func (r *Runner) wait() {
	r.sleep(time.Duration(r.plan.Browser.WaitSeconds) * time.Second)
}
