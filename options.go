package buttons

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Clear is the explicit clearing signal for the component shorthand fields of
// SendOptions. Setting a shorthand field to Clear strips all components from
// the message, which is distinct from leaving the field unset (no components
// key is sent at all).
var Clear any = clearSignal{}

type clearSignal struct{}

// SendOptions is the message-send options bag. The component shorthand fields
// (Type, Component, Components, Button, Buttons) accept the same overlapping
// shapes the historical API accepted: typed builders, raw maps, slices of
// either, or Clear.
type SendOptions struct {
	Content string
	TTS     bool
	Embed   *discordgo.MessageEmbed

	// Ephemeral marks an interaction reply visible only to the clicker.
	// It forces the ephemeral message flag and is only meaningful on the
	// interaction reply surface.
	Ephemeral bool
	Flags     int

	// Shorthand component fields, reconciled by ResolveComponents.
	Type       any
	Component  any
	Components any
	Button     any
	Buttons    any
}

// ephemeralFlag is the platform message flag for ephemeral replies.
const ephemeralFlag = 64

// bag lowers the typed options to the raw map form the resolver operates on.
// A Clear value becomes a present key with a nil value, the bag's explicit
// null.
func (o *SendOptions) bag() map[string]any {
	m := make(map[string]any, 5)
	set := func(key string, v any) {
		if v == nil {
			return
		}
		if v == Clear {
			m[key] = nil
			return
		}
		m[key] = v
	}
	set("type", o.Type)
	set("component", o.Component)
	set("components", o.Components)
	set("button", o.Button)
	set("buttons", o.Buttons)
	return m
}

// ResolveComponents reconciles the mutually-exclusive component shorthand
// fields of a raw message-options bag into one canonical action-row list.
// The returned present flag distinguishes "no shorthand field at all" (omit
// the components key) from "explicitly cleared" (send an empty list).
//
// Resolution order, with later matches appending unless noted:
//  1. a top-level type: ACTION_ROW wraps the sibling components list as one
//     row; any other kind treats the whole bag as a single component.
//  2. component: an action row contributes its children as a new row; a
//     single component is wrapped in a new row.
//  3. components: a list contributes one row per entry's children, but only
//     when step 1 did not already produce an explicit action row; a single
//     object contributes its children as one row.
//  4. buttons, then button: wrapped (list or singleton) into one row each.
//  5. an explicit null on any shorthand field clears everything.
func ResolveComponents(opts map[string]any) ([]*ActionRow, bool, error) {
	var rows []*ActionRow
	present := false
	hasActionRow := false

	if rawType, ok := opts["type"]; ok && rawType != nil {
		kind, err := ResolveKind(rawType)
		if err != nil {
			return nil, false, err
		}
		present = true
		if kind == KindActionRow {
			row, err := rowFromEntry(opts["components"])
			if err != nil {
				return nil, false, err
			}
			rows = append(rows, row)
			hasActionRow = true
		} else {
			c, err := New(opts)
			if err != nil {
				return nil, false, err
			}
			row, err := rowOf(c)
			if err != nil {
				return nil, false, err
			}
			rows = append(rows, row)
		}
	}

	if raw, ok := opts["component"]; ok && raw != nil {
		present = true
		row, err := rowFromSingle(raw)
		if err != nil {
			return nil, false, err
		}
		rows = append(rows, row)
	}

	if raw, ok := opts["components"]; ok && raw != nil {
		present = true
		expanded, err := rowsFromComponents(raw, hasActionRow)
		if err != nil {
			return nil, false, err
		}
		rows = append(rows, expanded...)
	}

	for _, key := range []string{"buttons", "button"} {
		raw, ok := opts[key]
		if !ok || raw == nil {
			continue
		}
		present = true
		row, err := rowFromEntries(raw)
		if err != nil {
			return nil, false, err
		}
		rows = append(rows, row)
	}

	// An explicit null on any shorthand field wins over everything above.
	for _, key := range []string{"components", "component", "buttons", "button"} {
		if raw, ok := opts[key]; ok && raw == nil {
			present = true
			rows = nil
			break
		}
	}

	if !present {
		return nil, false, nil
	}
	if rows == nil {
		rows = []*ActionRow{}
	}
	return rows, true, nil
}

// rowFromSingle handles the component field: an action row is flattened into
// a fresh row, anything else is wrapped alone.
func rowFromSingle(raw any) (*ActionRow, error) {
	if ar, ok := raw.(*ActionRow); ok {
		return rowOfChildren(ar.Components)
	}
	c, err := New(raw)
	if err != nil {
		return nil, err
	}
	if ar, ok := c.(*ActionRow); ok {
		return rowOfChildren(ar.Components)
	}
	return rowOf(c)
}

// rowsFromComponents handles the components field. A list expands to one row
// per entry's own children unless an explicit top-level action row already
// won; a single object contributes its children as one row.
func rowsFromComponents(raw any, hasActionRow bool) ([]*ActionRow, error) {
	var entries []any
	switch v := raw.(type) {
	case []*ActionRow:
		entries = make([]any, len(v))
		for i, e := range v {
			entries[i] = e
		}
	case []any:
		entries = v
	case []*Button:
		entries = make([]any, len(v))
		for i, e := range v {
			entries[i] = e
		}
	case []Component:
		entries = make([]any, len(v))
		for i, e := range v {
			entries[i] = e
		}
	case *ActionRow:
		row, err := rowOfChildren(v.Components)
		if err != nil {
			return nil, err
		}
		return []*ActionRow{row}, nil
	case map[string]any:
		row, err := rowFromEntryChildren(v)
		if err != nil {
			return nil, err
		}
		return []*ActionRow{row}, nil
	default:
		return nil, fmt.Errorf("buttons: cannot resolve components from %T: %w", raw, ErrInvalidComponentType)
	}

	if hasActionRow {
		return nil, nil
	}
	rows := make([]*ActionRow, 0, len(entries))
	for _, entry := range entries {
		row, err := rowFromEntryChildren(entry)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// rowFromEntryChildren builds one row from a row-descriptor entry's own
// children.
func rowFromEntryChildren(entry any) (*ActionRow, error) {
	switch e := entry.(type) {
	case *ActionRow:
		return rowOfChildren(e.Components)
	case map[string]any:
		return rowFromEntry(e["components"])
	}
	c, err := New(entry)
	if err != nil {
		return nil, err
	}
	return rowOf(c)
}

// rowFromEntries wraps a singleton or a list of components into one row.
func rowFromEntries(raw any) (*ActionRow, error) {
	switch v := raw.(type) {
	case []any:
		return rowOf(v...)
	case []*Button:
		entries := make([]any, len(v))
		for i, b := range v {
			entries[i] = b
		}
		return rowOf(entries...)
	case []Component:
		entries := make([]any, len(v))
		for i, c := range v {
			entries[i] = c
		}
		return rowOf(entries...)
	case []map[string]any:
		entries := make([]any, len(v))
		for i, m := range v {
			entries[i] = m
		}
		return rowOf(entries...)
	case nil:
		return rowOf()
	}
	return rowOf(raw)
}

// rowFromEntry builds one row from a raw children list (or nil).
func rowFromEntry(raw any) (*ActionRow, error) {
	if raw == nil {
		return rowOf()
	}
	return rowFromEntries(raw)
}

// rowOf builds a row from children, normalizing every child through the
// component factory.
func rowOf(children ...any) (*ActionRow, error) {
	row := NewActionRow()
	if len(children) > 0 {
		row.AddComponents(children...)
	}
	if row.Err() != nil {
		return nil, row.Err()
	}
	return row, nil
}

// rowOfChildren is rowOf for an already-typed child list.
func rowOfChildren(children []Component) (*ActionRow, error) {
	entries := make([]any, len(children))
	for i, c := range children {
		entries[i] = c
	}
	return rowOf(entries...)
}

// messageBody is the REST message-create/edit body extension carrying the
// canonical component tree. The Components pointer distinguishes an omitted
// key from an explicitly empty list.
type messageBody struct {
	Content    string                    `json:"content,omitempty"`
	TTS        bool                      `json:"tts,omitempty"`
	Embed      *discordgo.MessageEmbed   `json:"embed,omitempty"`
	Embeds     []*discordgo.MessageEmbed `json:"embeds,omitempty"`
	Flags      int                       `json:"flags,omitempty"`
	Components *[]*ActionRow             `json:"components,omitempty"`
}

// buildMessageBody resolves the options bag into an outgoing REST body,
// validating every resolved row so invalid wire payloads are never produced.
func buildMessageBody(opts *SendOptions) (*messageBody, error) {
	if opts == nil {
		opts = &SendOptions{}
	}
	rows, present, err := ResolveComponents(opts.bag())
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("buttons: row %d: %w", i, err)
		}
	}

	body := &messageBody{
		Content: opts.Content,
		TTS:     opts.TTS,
		Flags:   opts.Flags,
	}
	if opts.Embed != nil {
		body.Embed = opts.Embed
		body.Embeds = []*discordgo.MessageEmbed{opts.Embed}
	}
	if opts.Ephemeral {
		body.Flags = ephemeralFlag
	}
	if present {
		body.Components = &rows
	}
	return body, nil
}
