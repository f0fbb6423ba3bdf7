package planner

// Capabilities the planner drives on the rendered page. Every field of the
// *View structs that hold them is optional: a nil capability means the
// matching markup is absent and the feature it backs stays silent.

// Dialog is a container that can be shown and hidden.
type Dialog interface {
	Open()
	Close()
}

// Text receives display text.
type Text interface {
	SetText(s string)
}

// Value is a form value holder, typically a hidden input.
type Value interface {
	SetValue(s string)
}

// Select is a <select> whose options the planner can rebuild.
type Select interface {
	SetOptions(options []string, selected string)
	SetValue(s string)
}

// Choice is a pre-rendered <select> whose first option is the empty
// placeholder.
type Choice interface {
	ResetToPlaceholder()
}

// Toggle is a control that can be enabled or disabled.
type Toggle interface {
	SetDisabled(disabled bool)
}

// Form submits synchronously, handing off to a full page load.
type Form interface {
	Submit()
}

// DeleteControl is the button that carries the displayed appointment's
// instants and accessible label.
type DeleteControl interface {
	SetInstants(start, end string)
	SetLabel(label string)
}

// ModeButtons marks which planner mode button is active.
type ModeButtons interface {
	SetActive(mode Mode)
}

// ColumnSurface reflects column visibility on the page.
type ColumnSurface interface {
	SetColumnVisible(index int, visible bool)
	SetSingle(single bool)
}

// WeekNavigator performs a full page navigation to another week.
type WeekNavigator interface {
	NavigateWeek(offset int)
}

// PriceFormatter renders a numeric price as currency.
type PriceFormatter interface {
	FormatPrice(amount float64) string
}
