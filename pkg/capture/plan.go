// Package capture drives the WordPress screenshot workflow: auto-login,
// admin tab and frontend page navigation, screenshot capture with bounded
// retry, and translation of annotation requests into renderer commands.
package capture

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vapvarun/docshot/pkg/annotate"
	"github.com/vapvarun/docshot/pkg/browser"
)

// Plan is the YAML capture plan describing a full documentation
// screenshot session for one plugin or theme.
type Plan struct {
	// Site identifies the WordPress install and plugin under capture
	Site SiteConfig `yaml:"site"`

	// Roles maps role names to auto-login users. Login uses the
	// dev-login mu-plugin, so no passwords are needed.
	Roles map[string]Role `yaml:"roles"`

	// Output configures where screenshots and metadata land
	Output OutputConfig `yaml:"output"`

	// Browser configures the capture browser
	Browser BrowserConfig `yaml:"browser"`

	// Editor configures the plugin's editor-type settings dropdown,
	// required when editor_types captures are present
	Editor *EditorConfig `yaml:"editor"`

	// Capture sequences
	AdminTabs     []AdminTabCapture `yaml:"admin_tabs"`
	FrontendPages []PageCapture     `yaml:"frontend_pages"`
	EditorTypes   []EditorCapture   `yaml:"editor_types"`
	RoleCaptures  []RoleCapture     `yaml:"role_captures"`
}

// SiteConfig identifies the target WordPress install.
type SiteConfig struct {
	// URL is the site base URL, e.g. http://your-site.local
	URL string `yaml:"url"`

	// PluginPage is the admin page slug of the plugin settings screen
	PluginPage string `yaml:"plugin_page"`
}

// Role is an auto-login user for role-based captures.
type Role struct {
	UserID   int    `yaml:"user_id"`
	Username string `yaml:"username"`
}

// OutputConfig configures output locations.
type OutputConfig struct {
	// ImagesDir receives plain screenshots (default docs/images)
	ImagesDir string `yaml:"images_dir"`

	// AnnotatedDir is where the external renderer writes annotated
	// copies (default docs/images/annotated)
	AnnotatedDir string `yaml:"annotated_dir"`

	// MetadataDir receives per-image metadata and renderer command
	// JSON. Empty means a unique temp directory per run.
	MetadataDir string `yaml:"metadata_dir"`
}

// BrowserConfig configures the capture browser.
type BrowserConfig struct {
	Viewport browser.Viewport `yaml:"viewport"`

	// Headless runs the browser without a window (enable for CI)
	Headless bool `yaml:"headless"`

	// WaitSeconds is the settle time after each page load
	WaitSeconds int `yaml:"wait_seconds"`

	// MaxRetries bounds capture attempts per screenshot
	MaxRetries int `yaml:"max_retries"`

	// SessionDir holds the persistent browser profile. Empty means a
	// unique temp directory per run.
	SessionDir string `yaml:"session_dir"`
}

// EditorConfig locates the editor-type dropdown in the plugin settings.
type EditorConfig struct {
	// Tab is the settings tab id holding the dropdown
	Tab string `yaml:"tab"`

	// Selector targets the editor <select> element
	Selector string `yaml:"selector"`

	// FormURL is the frontend form page captured per editor type
	FormURL string `yaml:"form_url"`
}

// AdminTabCapture captures one plugin settings tab.
type AdminTabCapture struct {
	// Tab is the tab id to click before capturing. Empty captures the
	// settings page as loaded.
	Tab string `yaml:"tab"`

	Filename    string             `yaml:"filename"`
	FullPage    bool               `yaml:"full_page"`
	Annotations []annotate.Request `yaml:"annotations"`
}

// PageCapture captures one frontend page. The URL may contain a
// {username} placeholder resolved against the current role.
type PageCapture struct {
	URL         string             `yaml:"url"`
	Filename    string             `yaml:"filename"`
	FullPage    bool               `yaml:"full_page"`
	Annotations []annotate.Request `yaml:"annotations"`
}

// EditorCapture captures the frontend form under one editor type.
type EditorCapture struct {
	Type        string             `yaml:"type"`
	Filename    string             `yaml:"filename"`
	Annotations []annotate.Request `yaml:"annotations"`
}

// RoleCapture captures the same URL as several roles. FilenamePattern
// must contain a {role} placeholder.
type RoleCapture struct {
	URL             string             `yaml:"url"`
	Roles           []string           `yaml:"roles"`
	FilenamePattern string             `yaml:"filename_pattern"`
	FullPage        bool               `yaml:"full_page"`
	Annotations     []annotate.Request `yaml:"annotations"`
}

// Defaults applied by ApplyDefaults.
const (
	DefaultImagesDir    = "docs/images"
	DefaultAnnotatedDir = "docs/images/annotated"
	DefaultWaitSeconds  = 2
	DefaultMaxRetries   = 3
	DefaultFormURL      = "/add-new-post/"
	DefaultAdminRole    = "admin"
)

// LoadPlan reads and parses a capture plan from a YAML file, applying
// defaults and validating it.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}

	plan.ApplyDefaults()
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return &plan, nil
}

// ApplyDefaults fills unset fields with their defaults. Temp directories
// get a per-run unique suffix so parallel runs never collide.
func (p *Plan) ApplyDefaults() {
	if p.Output.ImagesDir == "" {
		p.Output.ImagesDir = DefaultImagesDir
	}
	if p.Output.AnnotatedDir == "" {
		p.Output.AnnotatedDir = DefaultAnnotatedDir
	}

	runID := uuid.New().String()[:8]
	if p.Output.MetadataDir == "" {
		p.Output.MetadataDir = fmt.Sprintf("%s/screenshot-metadata-%s", os.TempDir(), runID)
	}
	if p.Browser.SessionDir == "" {
		p.Browser.SessionDir = fmt.Sprintf("%s/docshot-wp-session-%s", os.TempDir(), runID)
	}

	if p.Browser.Viewport.Width == 0 {
		p.Browser.Viewport.Width = browser.DefaultViewportWidth
	}
	if p.Browser.Viewport.Height == 0 {
		p.Browser.Viewport.Height = browser.DefaultViewportHeight
	}
	if p.Browser.WaitSeconds == 0 {
		p.Browser.WaitSeconds = DefaultWaitSeconds
	}
	if p.Browser.MaxRetries == 0 {
		p.Browser.MaxRetries = DefaultMaxRetries
	}

	if p.Editor != nil && p.Editor.FormURL == "" {
		p.Editor.FormURL = DefaultFormURL
	}
}

// Validate checks the plan for problems that would only surface mid-run:
// missing site settings, undefined roles, unknown annotation types and
// malformed filename patterns are all rejected up front.
func (p *Plan) Validate() error {
	if p.Site.URL == "" {
		return fmt.Errorf("site url is required")
	}

	if (len(p.AdminTabs) > 0 || len(p.EditorTypes) > 0) && p.Site.PluginPage == "" {
		return fmt.Errorf("site plugin_page is required for admin tab and editor captures")
	}

	if _, ok := p.Roles[DefaultAdminRole]; !ok {
		return fmt.Errorf("roles must include %q", DefaultAdminRole)
	}

	if len(p.EditorTypes) > 0 && p.Editor == nil {
		return fmt.Errorf("editor config is required for editor_types captures")
	}

	for _, capture := range p.RoleCaptures {
		for _, role := range capture.Roles {
			if _, ok := p.Roles[role]; !ok {
				return fmt.Errorf("role capture %q references undefined role %q", capture.FilenamePattern, role)
			}
		}
		if !strings.Contains(capture.FilenamePattern, "{role}") {
			return fmt.Errorf("role capture filename pattern %q must contain {role}", capture.FilenamePattern)
		}
	}

	for _, reqs := range p.allAnnotations() {
		for _, req := range reqs {
			if err := validateRequest(req); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *Plan) allAnnotations() [][]annotate.Request {
	var all [][]annotate.Request
	for _, c := range p.AdminTabs {
		all = append(all, c.Annotations)
	}
	for _, c := range p.FrontendPages {
		all = append(all, c.Annotations)
	}
	for _, c := range p.EditorTypes {
		all = append(all, c.Annotations)
	}
	for _, c := range p.RoleCaptures {
		all = append(all, c.Annotations)
	}
	return all
}

func validateRequest(req annotate.Request) error {
	if req.Selector == "" {
		return fmt.Errorf("annotation request is missing a selector")
	}

	switch req.Type {
	case annotate.TypeBox, annotate.TypeNumber, annotate.TypeArrow,
		annotate.TypeCircle, annotate.TypeHighlight, annotate.TypeCallout,
		annotate.TypeLabel, annotate.TypeBlur:
	default:
		return fmt.Errorf("annotation %q uses unknown annotation type %q", req.Selector, req.Type)
	}

	switch req.Position {
	case annotate.PositionTop, annotate.PositionBottom, annotate.PositionLeft,
		annotate.PositionRight, annotate.PositionAuto, "":
	default:
		return fmt.Errorf("annotation %q uses unknown position %q", req.Selector, req.Position)
	}

	if req.Number < 0 {
		return fmt.Errorf("annotation %q has negative number %d", req.Selector, req.Number)
	}

	return nil
}

// PrepareDirs creates output directories and resets the browser session
// directory so each run starts with a clean profile.
func (p *Plan) PrepareDirs() error {
	for _, dir := range []string{p.Output.ImagesDir, p.Output.AnnotatedDir, p.Output.MetadataDir} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	if err := os.RemoveAll(p.Browser.SessionDir); err != nil {
		return fmt.Errorf("failed to clear session dir: %w", err)
	}
	if err := os.MkdirAll(p.Browser.SessionDir, 0750); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	return nil
}

// CleanupMetadata removes the temporary metadata directory. Intended to
// run after the external renderer has consumed the batch file.
func (p *Plan) CleanupMetadata() error {
	return os.RemoveAll(p.Output.MetadataDir)
}
