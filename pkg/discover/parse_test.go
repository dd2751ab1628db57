package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const navTabPage = `
<html><body>
<div class="wrap">
  <ul class="nav-tab-wrapper">
    <li id="general"><a class="nav-tab nav-tab-active" href="admin.php?page=demo&tab=general">General Settings</a></li>
    <li id="editor"><a class="nav-tab" href="admin.php?page=demo&tab=editor">Editor</a></li>
  </ul>
</div>
</body></html>`

const listTabPage = `
<html><body>
<div class="wp-tab-bar">
  <ul>
    <li id="welcome"><a href="#welcome">Welcome</a></li>
    <li><a href="admin.php?page=demo&tab=support">Support</a></li>
  </ul>
</div>
</body></html>`

const ariaTabPage = `
<html><body>
<div role="tablist">
  <a role="tab" href="#display">Display</a>
  <a role="tab" href="#advanced">Advanced</a>
</div>
</body></html>`

const settingsFormPage = `
<html><body>
<form method="post">
  <select id="bp_member_blog_editor_type" name="editor_type">
    <option value="">Select...</option>
    <option value="classic">Classic Editor</option>
    <option value="editorjs">Editor.js</option>
    <option value="gutenberg">Block Editor</option>
  </select>
  <select name="posts_per_page">
    <option value="10">10</option>
  </select>
  <select></select>
  <input type="checkbox" id="enable_featured" name="enable_featured">
  <input type="checkbox" name="enable_comments">
  <input type="text" name="blog_title">
  <input type="submit" id="save" value="Save Changes">
  <button type="submit" id="reset">Reset Settings</button>
  <button type="button">Preview</button>
</form>
</body></html>`

func TestParseTabs_NavTabStyle(t *testing.T) {
	tabs, err := ParseTabs(navTabPage)
	require.NoError(t, err)
	require.Len(t, tabs, 2)

	assert.Equal(t, "general", tabs[0].ID)
	assert.Equal(t, "General Settings", tabs[0].Name)
	assert.Equal(t, "editor", tabs[1].ID)
	assert.Equal(t, "Editor", tabs[1].Name)
}

func TestParseTabs_ListStyle(t *testing.T) {
	tabs, err := ParseTabs(listTabPage)
	require.NoError(t, err)
	require.Len(t, tabs, 2)

	// First tab id comes from the parent li, second from the href.
	assert.Equal(t, "welcome", tabs[0].ID)
	assert.Equal(t, "support", tabs[1].ID)
	assert.Equal(t, "Support", tabs[1].Name)
}

func TestParseTabs_AriaStyle(t *testing.T) {
	tabs, err := ParseTabs(ariaTabPage)
	require.NoError(t, err)
	require.Len(t, tabs, 2)

	assert.Equal(t, "display", tabs[0].ID)
	assert.Equal(t, "advanced", tabs[1].ID)
}

func TestParseTabs_NoTabs(t *testing.T) {
	tabs, err := ParseTabs(`<html><body><form></form></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, tabs)
}

func TestParseFormElements(t *testing.T) {
	elements, err := ParseFormElements(settingsFormPage)
	require.NoError(t, err)

	// The select without id or name is dropped.
	require.Len(t, elements.Dropdowns, 2)
	editor := elements.Dropdowns[0]
	assert.Equal(t, "bp_member_blog_editor_type", editor.ID)
	assert.Equal(t, "editor_type", editor.Name)

	// The empty-value placeholder option is dropped.
	require.Len(t, editor.Options, 3)
	assert.Equal(t, Option{Value: "classic", Text: "Classic Editor"}, editor.Options[0])

	require.Len(t, elements.Checkboxes, 2)
	assert.Equal(t, "enable_featured", elements.Checkboxes[0].ID)
	assert.Equal(t, "enable_comments", elements.Checkboxes[1].Name)

	// Only submit buttons count.
	require.Len(t, elements.Buttons, 2)
	assert.Equal(t, "Save Changes", elements.Buttons[0].Text)
	assert.Equal(t, "Reset Settings", elements.Buttons[1].Text)
}

func TestParseFormElements_DropdownOptionLimit(t *testing.T) {
	page := `<select id="big" name="big">`
	for i := 0; i < 30; i++ {
		page += `<option value="v">x</option>`
	}
	page += `</select>`

	elements, err := ParseFormElements(page)
	require.NoError(t, err)
	require.Len(t, elements.Dropdowns, 1)
	assert.Len(t, elements.Dropdowns[0].Options, maxDropdownOptions)
}

func TestFindEditorDropdown(t *testing.T) {
	s := &Structure{
		Tabs: []Tab{{ID: "general"}, {ID: "editor"}},
		TabDetails: map[string]FormElements{
			"general": {Dropdowns: []Dropdown{{ID: "posts_per_page"}}},
			"editor": {Dropdowns: []Dropdown{{
				ID:      "bp_member_blog_editor_type",
				Options: []Option{{Value: "classic", Text: "Classic"}},
			}}},
		},
	}

	tabID, dd := s.FindEditorDropdown()
	assert.Equal(t, "editor", tabID)
	require.NotNil(t, dd)
	assert.Equal(t, "bp_member_blog_editor_type", dd.ID)
}

func TestFindEditorDropdown_SinglePagePlugin(t *testing.T) {
	s := &Structure{
		TabDetails: map[string]FormElements{
			"main": {Dropdowns: []Dropdown{{Name: "editor_mode"}}},
		},
	}

	tabID, dd := s.FindEditorDropdown()
	assert.Equal(t, "main", tabID)
	require.NotNil(t, dd)
}

func TestFindEditorDropdown_NotFound(t *testing.T) {
	s := &Structure{
		Tabs:       []Tab{{ID: "general"}},
		TabDetails: map[string]FormElements{"general": {}},
	}

	tabID, dd := s.FindEditorDropdown()
	assert.Empty(t, tabID)
	assert.Nil(t, dd)
}
