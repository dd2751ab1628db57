// Package discover walks a WordPress plugin's admin pages to find its
// settings tabs and form elements, and generates a ready-to-edit capture
// plan from the discovered structure.
package discover

// Structure is the discovered admin layout of one plugin.
type Structure struct {
	SiteURL    string                  `json:"site_url"`
	AdminPage  string                  `json:"admin_page"`
	Tabs       []Tab                   `json:"tabs"`
	TabDetails map[string]FormElements `json:"tab_details"`
}

// Tab is one discovered settings tab.
type Tab struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selector string `json:"selector"`
}

// FormElements are the interactive elements found on one settings tab.
type FormElements struct {
	Dropdowns  []Dropdown `json:"dropdowns"`
	Checkboxes []Checkbox `json:"checkboxes"`
	Buttons    []Button   `json:"buttons"`
}

// Dropdown is a <select> element with a sample of its options.
type Dropdown struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

// Option is one <option> value/text pair.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// Checkbox is a checkbox input identified by id or name.
type Checkbox struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Button is a submit button.
type Button struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Discovery limits keep the generated config readable on plugins with
// very large settings forms.
const (
	maxDropdownOptions = 10
	maxCheckboxes      = 20
	maxButtons         = 5
)
