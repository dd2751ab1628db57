package capture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vapvarun/docshot/pkg/annotate"
)

const samplePlan = `
site:
  url: http://demo.local
  plugin_page: bp-member-blog
roles:
  admin:
    user_id: 1
    username: admin
  subscriber:
    user_id: 2
    username: test_member
editor:
  tab: editor
  selector: "select#bp_member_blog_editor_type"
admin_tabs:
  - tab: general
    filename: admin-general-tab.png
    annotations:
      - selector: ".nav-tab-wrapper"
        label: Settings Tabs
        type: box
        position: top
      - selector: "input[type='submit']"
        label: Save Changes
        type: arrow
        position: left
frontend_pages:
  - url: /members/{username}/blog/
    filename: member-blog-tab.png
    annotations:
      - selector: ".post-list"
        label: Your Published Posts
        type: box
        position: right
editor_types:
  - type: editorjs
    filename: form-editorjs.png
role_captures:
  - url: /dashboard/
    roles: [admin, subscriber]
    filename_pattern: dashboard-{role}.png
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadPlan_ParsesAndAppliesDefaults(t *testing.T) {
	plan, err := LoadPlan(writePlan(t, samplePlan))
	require.NoError(t, err)

	assert.Equal(t, "http://demo.local", plan.Site.URL)
	assert.Equal(t, "bp-member-blog", plan.Site.PluginPage)

	// Defaults
	assert.Equal(t, DefaultImagesDir, plan.Output.ImagesDir)
	assert.Equal(t, DefaultAnnotatedDir, plan.Output.AnnotatedDir)
	assert.NotEmpty(t, plan.Output.MetadataDir)
	assert.NotEmpty(t, plan.Browser.SessionDir)
	assert.Equal(t, 1680, plan.Browser.Viewport.Width)
	assert.Equal(t, 1100, plan.Browser.Viewport.Height)
	assert.Equal(t, DefaultWaitSeconds, plan.Browser.WaitSeconds)
	assert.Equal(t, DefaultMaxRetries, plan.Browser.MaxRetries)
	assert.Equal(t, DefaultFormURL, plan.Editor.FormURL)

	require.Len(t, plan.AdminTabs, 1)
	require.Len(t, plan.AdminTabs[0].Annotations, 2)
	assert.Equal(t, annotate.TypeBox, plan.AdminTabs[0].Annotations[0].Type)
	assert.Equal(t, annotate.PositionTop, plan.AdminTabs[0].Annotations[0].Position)
	assert.Equal(t, annotate.TypeArrow, plan.AdminTabs[0].Annotations[1].Type)

	require.Len(t, plan.RoleCaptures, 1)
	assert.Equal(t, []string{"admin", "subscriber"}, plan.RoleCaptures[0].Roles)
}

func TestLoadPlan_MetadataDirsUniquePerRun(t *testing.T) {
	first, err := LoadPlan(writePlan(t, samplePlan))
	require.NoError(t, err)
	second, err := LoadPlan(writePlan(t, samplePlan))
	require.NoError(t, err)

	assert.NotEqual(t, first.Output.MetadataDir, second.Output.MetadataDir)
	assert.NotEqual(t, first.Browser.SessionDir, second.Browser.SessionDir)
}

func TestPlanValidate_RequiresSiteURL(t *testing.T) {
	plan := &Plan{Roles: map[string]Role{"admin": {UserID: 1}}}
	plan.ApplyDefaults()

	err := plan.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "site url")
}

func TestPlanValidate_RequiresAdminRole(t *testing.T) {
	plan := &Plan{Site: SiteConfig{URL: "http://demo.local"}}
	plan.ApplyDefaults()

	err := plan.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `"admin"`)
}

func TestPlanValidate_RejectsUnknownAnnotationType(t *testing.T) {
	plan := &Plan{
		Site:  SiteConfig{URL: "http://demo.local", PluginPage: "demo"},
		Roles: map[string]Role{"admin": {UserID: 1}},
		AdminTabs: []AdminTabCapture{{
			Filename: "a.png",
			Annotations: []annotate.Request{
				{Selector: "#x", Type: "sparkle"},
			},
		}},
	}
	plan.ApplyDefaults()

	err := plan.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown annotation type")
	assert.Contains(t, err.Error(), "sparkle")
}

func TestPlanValidate_RejectsUndefinedRole(t *testing.T) {
	plan := &Plan{
		Site:  SiteConfig{URL: "http://demo.local"},
		Roles: map[string]Role{"admin": {UserID: 1}},
		RoleCaptures: []RoleCapture{{
			URL:             "/dashboard/",
			Roles:           []string{"editor"},
			FilenamePattern: "dash-{role}.png",
		}},
	}
	plan.ApplyDefaults()

	err := plan.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined role")
}

func TestPlanValidate_RejectsPatternWithoutRolePlaceholder(t *testing.T) {
	plan := &Plan{
		Site:  SiteConfig{URL: "http://demo.local"},
		Roles: map[string]Role{"admin": {UserID: 1}},
		RoleCaptures: []RoleCapture{{
			URL:             "/dashboard/",
			Roles:           []string{"admin"},
			FilenamePattern: "dash.png",
		}},
	}
	plan.ApplyDefaults()

	err := plan.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{role}")
}

func TestPlanValidate_EditorTypesRequireEditorConfig(t *testing.T) {
	plan := &Plan{
		Site:        SiteConfig{URL: "http://demo.local", PluginPage: "demo"},
		Roles:       map[string]Role{"admin": {UserID: 1}},
		EditorTypes: []EditorCapture{{Type: "classic", Filename: "form-classic.png"}},
	}
	plan.ApplyDefaults()

	err := plan.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "editor config")
}

func TestPlanPrepareDirs(t *testing.T) {
	dir := t.TempDir()
	plan := &Plan{
		Output: OutputConfig{
			ImagesDir:    filepath.Join(dir, "images"),
			AnnotatedDir: filepath.Join(dir, "images", "annotated"),
			MetadataDir:  filepath.Join(dir, "meta"),
		},
		Browser: BrowserConfig{SessionDir: filepath.Join(dir, "session")},
	}

	// A stale session profile should be cleared.
	require.NoError(t, os.MkdirAll(plan.Browser.SessionDir, 0750))
	stale := filepath.Join(plan.Browser.SessionDir, "stale-cookie")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0600))

	require.NoError(t, plan.PrepareDirs())

	for _, d := range []string{plan.Output.ImagesDir, plan.Output.AnnotatedDir, plan.Output.MetadataDir, plan.Browser.SessionDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}
