// Package buttons retrofits interactive message components (buttons, select
// menus, action rows) onto discordgo sessions that predate native component
// support. Applications build components with fluent builders, send them
// through the shim's message surface, and receive click/select interactions
// as typed envelopes via Attach.
package buttons

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a component variant. The numeric values for action rows,
// buttons and select menus are the platform's wire discriminators.
type Kind int

const (
	// KindSelectMenuOption is not part of the wire discriminator space; it
	// exists only so menu options can flow through the factory.
	KindSelectMenuOption Kind = -1

	KindActionRow  Kind = 1
	KindButton     Kind = 2
	KindSelectMenu Kind = 3
)

var kindNames = map[string]Kind{
	"ACTION_ROW":         KindActionRow,
	"BUTTON":             KindButton,
	"SELECT_MENU":        KindSelectMenu,
	"SELECT_MENU_OPTION": KindSelectMenuOption,
}

// String returns the canonical member name for k, or a numeric form for
// unknown values.
func (k Kind) String() string {
	switch k {
	case KindActionRow:
		return "ACTION_ROW"
	case KindButton:
		return "BUTTON"
	case KindSelectMenu:
		return "SELECT_MENU"
	case KindSelectMenuOption:
		return "SELECT_MENU_OPTION"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ResolveKind normalizes a component kind given as a member name
// (case-sensitive), a numeric code (including JSON-decoded float64), or an
// already-typed Kind. Numeric codes pass through unchanged; unknown strings
// fail with ErrInvalidComponentType.
func ResolveKind(v any) (Kind, error) {
	switch t := v.(type) {
	case Kind:
		return t, nil
	case int:
		return Kind(t), nil
	case int64:
		return Kind(t), nil
	case float64:
		return Kind(int(t)), nil
	case string:
		if k, ok := kindNames[t]; ok {
			return k, nil
		}
		return 0, fmt.Errorf("buttons: unresolvable kind %q: %w", t, ErrInvalidComponentType)
	}
	return 0, fmt.Errorf("buttons: unresolvable kind value of type %T: %w", v, ErrInvalidComponentType)
}

// Component is any wire-serializable interactive unit: a button, select menu,
// menu option, or action row.
type Component interface {
	Kind() Kind
	json.Marshaler
}

// New is the single dispatch point for polymorphic component construction.
// Already-typed components pass through; raw maps (decoded wire JSON or
// shorthand literals) are dispatched on their "type" discriminator, with the
// SELECT_MENU_OPTION pseudo-kind handled before generic resolution. Adding a
// new component kind means adding one branch here and one value-object type.
func New(raw any) (Component, error) {
	switch c := raw.(type) {
	case *Button:
		return c, nil
	case *Menu:
		return c, nil
	case *MenuOption:
		return c, nil
	case *ActionRow:
		return c, nil
	case Component:
		return c, nil
	case map[string]any:
		return fromMap(c)
	}
	return nil, fmt.Errorf("buttons: cannot build component from %T: %w", raw, ErrInvalidComponentType)
}

// FromJSON decodes a single serialized component through the factory.
func FromJSON(data []byte) (Component, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("buttons: decode component: %w", err)
	}
	return fromMap(m)
}

func fromMap(m map[string]any) (Component, error) {
	rawType, ok := m["type"]
	if !ok {
		return nil, fmt.Errorf("buttons: component data has no type: %w", ErrInvalidComponentType)
	}

	// Menu options are not addressable through the numeric enum space.
	if s, ok := rawType.(string); ok && s == "SELECT_MENU_OPTION" {
		return parseMenuOption(m)
	}

	kind, err := ResolveKind(rawType)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindActionRow:
		return parseActionRow(m)
	case KindButton:
		return parseButton(m)
	case KindSelectMenu:
		return parseMenu(m)
	case KindSelectMenuOption:
		return parseMenuOption(m)
	}
	return nil, fmt.Errorf("buttons: unknown component type %v: %w", rawType, ErrInvalidComponentType)
}

func parseButton(m map[string]any) (*Button, error) {
	b := &Button{
		Label:    stringField(m, "label"),
		URL:      stringField(m, "url"),
		CustomID: stringField(m, "custom_id", "id"),
		Disabled: boolField(m, "disabled"),
	}
	if raw, ok := m["style"]; ok && raw != nil {
		style, err := ResolveStyle(raw)
		if err != nil {
			return nil, err
		}
		b.Style = style
	}
	if raw, ok := m["emoji"]; ok && raw != nil {
		emoji, err := ResolveEmoji(raw)
		if err != nil {
			return nil, err
		}
		b.Emoji = emoji
	}
	return b, nil
}

func parseMenu(m map[string]any) (*Menu, error) {
	menu := &Menu{
		CustomID:    stringField(m, "custom_id", "id"),
		Placeholder: stringField(m, "placeholder"),
		MinValues:   intField(m, "min_values", 1),
		MaxValues:   intField(m, "max_values", 1),
	}
	if raw, ok := m["options"]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("buttons: menu options must be a list, got %T: %w", raw, ErrInvalidComponentType)
		}
		for _, entry := range list {
			opt, err := resolveMenuOption(entry)
			if err != nil {
				return nil, err
			}
			menu.Options = append(menu.Options, opt)
		}
	}
	return menu, nil
}

func parseMenuOption(m map[string]any) (*MenuOption, error) {
	opt := &MenuOption{
		Label:       stringField(m, "label"),
		Value:       stringField(m, "value"),
		Description: stringField(m, "description"),
		Default:     boolField(m, "default"),
	}
	if raw, ok := m["emoji"]; ok && raw != nil {
		emoji, err := ResolveEmoji(raw)
		if err != nil {
			return nil, err
		}
		opt.Emoji = emoji
	}
	return opt, nil
}

func parseActionRow(m map[string]any) (*ActionRow, error) {
	row := NewActionRow()
	if raw, ok := m["components"]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("buttons: action row components must be a list, got %T: %w", raw, ErrInvalidComponentType)
		}
		for _, entry := range list {
			child, err := New(entry)
			if err != nil {
				return nil, err
			}
			row.Components = append(row.Components, child)
		}
	}
	return row, nil
}

func resolveMenuOption(raw any) (*MenuOption, error) {
	switch o := raw.(type) {
	case *MenuOption:
		return o, nil
	case map[string]any:
		return parseMenuOption(o)
	}
	return nil, fmt.Errorf("buttons: cannot build menu option from %T: %w", raw, ErrInvalidComponentType)
}

func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func intField(m map[string]any, key string, def int) int {
	switch n := m[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}
