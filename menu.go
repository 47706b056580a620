package buttons

import (
	"encoding/json"
	"fmt"
)

// MenuOption is one selectable entry of a select menu. Options belong to
// their menu by list membership; order is display order.
type MenuOption struct {
	Label       string
	Value       string
	Description string
	Emoji       *Emoji
	Default     bool

	err error
}

// NewMenuOption returns an empty menu option builder.
func NewMenuOption() *MenuOption {
	return &MenuOption{}
}

// SetLabel sets the visible option text.
func (o *MenuOption) SetLabel(label string) *MenuOption {
	o.Label = label
	return o
}

// SetValue sets the opaque value reported back when the option is selected.
func (o *MenuOption) SetValue(value string) *MenuOption {
	o.Value = value
	return o
}

// SetDescription sets the secondary option text.
func (o *MenuOption) SetDescription(description string) *MenuOption {
	o.Description = description
	return o
}

// SetDefault marks the option pre-selected. No argument means true.
func (o *MenuOption) SetDefault(def ...bool) *MenuOption {
	o.Default = true
	if len(def) > 0 {
		o.Default = def[0]
	}
	return o
}

// SetEmoji sets the option emoji from a unicode glyph, a custom emoji ID, or
// a structured emoji value.
func (o *MenuOption) SetEmoji(emoji any) *MenuOption {
	e, err := ResolveEmoji(emoji)
	if err != nil {
		o.fail(err)
		return o
	}
	o.Emoji = e
	return o
}

// Kind implements Component.
func (o *MenuOption) Kind() Kind { return KindSelectMenuOption }

// Err returns the first setter error recorded on the builder, if any.
func (o *MenuOption) Err() error { return o.err }

// Validate checks that the option carries a label and a value.
func (o *MenuOption) Validate() error {
	if o.err != nil {
		return o.err
	}
	if o.Label == "" {
		return fmt.Errorf("buttons: menu option requires a label: %w", ErrStyleConstraint)
	}
	if o.Value == "" {
		return fmt.Errorf("buttons: menu option requires a value: %w", ErrStyleConstraint)
	}
	return nil
}

// MarshalJSON emits the exact wire shape.
func (o *MenuOption) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Label       string `json:"label,omitempty"`
		Value       string `json:"value,omitempty"`
		Description string `json:"description,omitempty"`
		Emoji       *Emoji `json:"emoji,omitempty"`
		Default     bool   `json:"default,omitempty"`
	}{o.Label, o.Value, o.Description, o.Emoji, o.Default})
}

func (o *MenuOption) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

// Menu is a select menu component holding an ordered, never-sparse option
// list.
type Menu struct {
	CustomID    string
	Placeholder string
	MinValues   int
	MaxValues   int
	Options     []*MenuOption

	err error
}

// NewMenu returns a menu builder with the platform defaults of one required
// and one allowed selection.
func NewMenu() *Menu {
	return &Menu{MinValues: 1, MaxValues: 1}
}

// SetID sets the custom_id reported back when a selection is made.
func (m *Menu) SetID(id string) *Menu {
	m.CustomID = id
	return m
}

// SetPlaceholder sets the text shown before any selection.
func (m *Menu) SetPlaceholder(placeholder string) *Menu {
	m.Placeholder = placeholder
	return m
}

// SetMinValues sets the minimum number of selected options.
func (m *Menu) SetMinValues(n int) *Menu {
	if n < 0 {
		m.fail(fmt.Errorf("buttons: menu min_values cannot be negative: %w", ErrStyleConstraint))
		return m
	}
	m.MinValues = n
	return m
}

// SetMaxValues sets the maximum number of selected options.
func (m *Menu) SetMaxValues(n int) *Menu {
	if n < 1 {
		m.fail(fmt.Errorf("buttons: menu max_values must be at least 1: %w", ErrStyleConstraint))
		return m
	}
	m.MaxValues = n
	return m
}

// AddOption appends one option.
func (m *Menu) AddOption(option *MenuOption) *Menu {
	m.Options = append(m.Options, option)
	return m
}

// AddOptions appends options in order.
func (m *Menu) AddOptions(options ...*MenuOption) *Menu {
	m.Options = append(m.Options, options...)
	return m
}

// RemoveOptions splices the option list: it removes deleteCount options
// starting at index and inserts the replacements in their place.
func (m *Menu) RemoveOptions(index, deleteCount int, replacements ...*MenuOption) *Menu {
	if index < 0 || index > len(m.Options) {
		m.fail(fmt.Errorf("buttons: menu option index %d out of range", index))
		return m
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if index+deleteCount > len(m.Options) {
		deleteCount = len(m.Options) - index
	}
	spliced := make([]*MenuOption, 0, len(m.Options)-deleteCount+len(replacements))
	spliced = append(spliced, m.Options[:index]...)
	spliced = append(spliced, replacements...)
	spliced = append(spliced, m.Options[index+deleteCount:]...)
	m.Options = spliced
	return m
}

// Kind implements Component.
func (m *Menu) Kind() Kind { return KindSelectMenu }

// Err returns the first setter error recorded on the builder, if any.
func (m *Menu) Err() error { return m.err }

// Validate checks the menu against the platform rules: a custom_id is
// required, selection bounds must be ordered, and every option must validate.
func (m *Menu) Validate() error {
	if m.err != nil {
		return m.err
	}
	if m.CustomID == "" {
		return fmt.Errorf("buttons: menu requires a custom_id: %w", ErrStyleConstraint)
	}
	if m.MinValues > m.MaxValues {
		return fmt.Errorf("buttons: menu min_values %d exceeds max_values %d: %w",
			m.MinValues, m.MaxValues, ErrStyleConstraint)
	}
	for i, opt := range m.Options {
		if err := opt.Validate(); err != nil {
			return fmt.Errorf("buttons: menu option %d: %w", i, err)
		}
	}
	return nil
}

// MarshalJSON emits the exact wire shape. The option list always serializes
// as an array, never null.
func (m *Menu) MarshalJSON() ([]byte, error) {
	options := m.Options
	if options == nil {
		options = []*MenuOption{}
	}
	return json.Marshal(struct {
		Type        Kind          `json:"type"`
		CustomID    string        `json:"custom_id,omitempty"`
		Placeholder string        `json:"placeholder,omitempty"`
		MinValues   int           `json:"min_values"`
		MaxValues   int           `json:"max_values,omitempty"`
		Options     []*MenuOption `json:"options"`
	}{KindSelectMenu, m.CustomID, m.Placeholder, m.MinValues, m.MaxValues, options})
}

func (m *Menu) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}
