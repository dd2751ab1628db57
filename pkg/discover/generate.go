package discover

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vapvarun/docshot/pkg/capture"
)

// GeneratePlan builds a starter capture plan from a discovered plugin
// structure: one admin tab capture per tab, the default role set, and
// editor variations when an editor-type dropdown was found.
func GeneratePlan(structure *Structure) *capture.Plan {
	plan := &capture.Plan{
		Site: capture.SiteConfig{
			URL:        structure.SiteURL,
			PluginPage: structure.AdminPage,
		},
		Roles: map[string]capture.Role{
			"admin": {UserID: 1, Username: "admin"},
		},
	}

	for _, tab := range structure.Tabs {
		plan.AdminTabs = append(plan.AdminTabs, capture.AdminTabCapture{
			Tab:      tab.ID,
			Filename: tabFilename(tab.ID),
		})
	}
	if len(structure.Tabs) == 0 {
		plan.AdminTabs = append(plan.AdminTabs, capture.AdminTabCapture{
			Filename: fmt.Sprintf("admin-%s.png", slugify(structure.AdminPage)),
		})
	}

	if tabID, dropdown := structure.FindEditorDropdown(); dropdown != nil {
		editorTab := tabID
		if editorTab == "main" {
			editorTab = ""
		}
		plan.Editor = &capture.EditorConfig{
			Tab:      editorTab,
			Selector: dropdownSelector(dropdown),
		}
		for _, opt := range dropdown.Options {
			plan.EditorTypes = append(plan.EditorTypes, capture.EditorCapture{
				Type:     opt.Value,
				Filename: fmt.Sprintf("form-%s.png", slugify(opt.Value)),
			})
		}
	}

	return plan
}

// WritePlan writes the plan as YAML, creating parent directories.
func WritePlan(path string, plan *capture.Plan) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}

// WriteStructure dumps the raw discovered structure as indented JSON so
// the generated plan can be hand-tuned against it.
func WriteStructure(path string, structure *Structure) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write structure: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(structure); err != nil {
		return fmt.Errorf("failed to encode structure: %w", err)
	}
	return nil
}

func tabFilename(tabID string) string {
	return fmt.Sprintf("admin-%s-tab.png", slugify(tabID))
}

// dropdownSelector prefers the element id, falling back to a name
// attribute selector.
func dropdownSelector(dd *Dropdown) string {
	if dd.ID != "" {
		return "#" + dd.ID
	}
	return fmt.Sprintf("[name='%s']", dd.Name)
}

func slugify(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", "-"))
}
