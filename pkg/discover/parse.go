package discover

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ParseTabs extracts settings tabs from a plugin admin page. Tab markup
// varies across plugin frameworks, so candidates are tried in priority
// order: WP nav-tab anchors first, then list-based tab bars, then ARIA
// tablists. The first style that yields tabs wins.
func ParseTabs(pageHTML string) ([]Tab, error) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, extract := range []func(*html.Node) []Tab{
		extractNavTabs,
		extractListTabs,
		extractAriaTabs,
	} {
		if tabs := extract(doc); len(tabs) > 0 {
			return tabs, nil
		}
	}

	return nil, nil
}

// extractNavTabs finds <a class="nav-tab"> anchors, the standard WP and
// Wbcom settings tab style.
func extractNavTabs(doc *html.Node) []Tab {
	var tabs []Tab
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" || !hasClass(n, "nav-tab") {
			return
		}
		if tab, ok := tabFromAnchor(n, ".nav-tab-wrapper a.nav-tab"); ok {
			tabs = append(tabs, tab)
		}
	})
	return tabs
}

// extractListTabs finds anchors inside <li> elements of wp-tab-bar or
// generic settings-tabs containers.
func extractListTabs(doc *html.Node) []Tab {
	var tabs []Tab
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || !hasClass(n, "wp-tab-bar") && !hasClass(n, "settings-tabs") {
			return
		}
		walk(n, func(inner *html.Node) {
			if inner.Type != html.ElementNode || inner.Data != "a" {
				return
			}
			if inner.Parent == nil || inner.Parent.Data != "li" {
				return
			}
			if tab, ok := tabFromAnchor(inner, ".wp-tab-bar li a"); ok {
				tabs = append(tabs, tab)
			}
		})
	})
	return tabs
}

// extractAriaTabs finds role="tab" elements inside a role="tablist".
func extractAriaTabs(doc *html.Node) []Tab {
	var tabs []Tab
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || attr(n, "role") != "tablist" {
			return
		}
		walk(n, func(inner *html.Node) {
			if inner.Type != html.ElementNode || attr(inner, "role") != "tab" {
				return
			}
			if tab, ok := tabFromAnchor(inner, "[role='tablist'] [role='tab']"); ok {
				tabs = append(tabs, tab)
			}
		})
	})
	return tabs
}

// tabFromAnchor derives a tab id and name from an anchor-like element.
// The id comes from the parent <li> id, a tab= query parameter, or a
// fragment, in that order.
func tabFromAnchor(n *html.Node, selector string) (Tab, bool) {
	name := strings.TrimSpace(textContent(n))

	id := ""
	if n.Parent != nil && n.Parent.Data == "li" {
		id = attr(n.Parent, "id")
	}
	if id == "" {
		href := attr(n, "href")
		if i := strings.Index(href, "tab="); i >= 0 {
			id = href[i+len("tab="):]
			if j := strings.IndexByte(id, '&'); j >= 0 {
				id = id[:j]
			}
		} else if i := strings.IndexByte(href, '#'); i >= 0 {
			id = href[i+1:]
		}
	}

	if name == "" || id == "" {
		return Tab{}, false
	}
	return Tab{ID: id, Name: name, Selector: selector}, true
}

// ParseFormElements extracts dropdowns, checkboxes and submit buttons
// from a settings page.
func ParseFormElements(pageHTML string) (FormElements, error) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return FormElements{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var elements FormElements
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}

		switch n.Data {
		case "select":
			id, name := attr(n, "id"), attr(n, "name")
			if id == "" && name == "" {
				return
			}
			elements.Dropdowns = append(elements.Dropdowns, Dropdown{
				ID:      id,
				Name:    name,
				Options: parseOptions(n),
			})

		case "input":
			switch attr(n, "type") {
			case "checkbox":
				if len(elements.Checkboxes) >= maxCheckboxes {
					return
				}
				id, name := attr(n, "id"), attr(n, "name")
				if id == "" && name == "" {
					return
				}
				elements.Checkboxes = append(elements.Checkboxes, Checkbox{ID: id, Name: name})
			case "submit":
				if len(elements.Buttons) >= maxButtons {
					return
				}
				elements.Buttons = append(elements.Buttons, Button{
					ID:   attr(n, "id"),
					Text: strings.TrimSpace(attr(n, "value")),
				})
			}

		case "button":
			if attr(n, "type") != "submit" || len(elements.Buttons) >= maxButtons {
				return
			}
			text := strings.TrimSpace(attr(n, "value"))
			if text == "" {
				text = strings.TrimSpace(textContent(n))
			}
			elements.Buttons = append(elements.Buttons, Button{
				ID:   attr(n, "id"),
				Text: text,
			})
		}
	})

	return elements, nil
}

func parseOptions(selectNode *html.Node) []Option {
	var options []Option
	walk(selectNode, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "option" || len(options) >= maxDropdownOptions {
			return
		}
		value := attr(n, "value")
		if value == "" {
			return
		}
		options = append(options, Option{
			Value: value,
			Text:  strings.TrimSpace(textContent(n)),
		})
	})
	return options
}

// FindEditorDropdown returns the first dropdown whose id or name
// mentions "editor", along with the tab it was found on.
func (s *Structure) FindEditorDropdown() (tabID string, dropdown *Dropdown) {
	for _, tab := range s.orderedTabIDs() {
		details := s.TabDetails[tab]
		for i := range details.Dropdowns {
			dd := &details.Dropdowns[i]
			if strings.Contains(strings.ToLower(dd.ID), "editor") ||
				strings.Contains(strings.ToLower(dd.Name), "editor") {
				return tab, dd
			}
		}
	}
	return "", nil
}

// orderedTabIDs walks tab details in discovery order, covering the
// "main" pseudo-tab used by single-page plugins.
func (s *Structure) orderedTabIDs() []string {
	var ids []string
	for _, tab := range s.Tabs {
		if _, ok := s.TabDetails[tab.ID]; ok {
			ids = append(ids, tab.ID)
		}
	}
	if _, ok := s.TabDetails["main"]; ok {
		ids = append(ids, "main")
	}
	return ids
}

// walk visits every node in depth-first order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// attr returns the value of the named attribute, or empty string.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether the node's class attribute contains the
// given class name.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// textContent returns the concatenated text of a node's subtree.
func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
	})
	return sb.String()
}
