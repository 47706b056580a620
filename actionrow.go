package buttons

import (
	"encoding/json"
	"fmt"
)

// ActionRow is the top-level horizontal grouping of interactive components in
// one message. Rows hold buttons or exactly one select menu, never both, and
// never nest.
type ActionRow struct {
	Components []Component

	err error
}

// NewActionRow returns an empty action row builder.
func NewActionRow() *ActionRow {
	return &ActionRow{}
}

// AddComponent appends one child component. Raw maps are accepted and routed
// through the component factory.
func (r *ActionRow) AddComponent(component any) *ActionRow {
	return r.AddComponents(component)
}

// AddComponents appends child components in order, normalizing each through
// the component factory.
func (r *ActionRow) AddComponents(components ...any) *ActionRow {
	for _, raw := range components {
		c, err := New(raw)
		if err != nil {
			r.fail(err)
			return r
		}
		r.Components = append(r.Components, c)
	}
	return r
}

// RemoveComponents splices the child list: it removes deleteCount components
// starting at index and inserts the replacements in their place.
func (r *ActionRow) RemoveComponents(index, deleteCount int, replacements ...any) *ActionRow {
	if index < 0 || index > len(r.Components) {
		r.fail(fmt.Errorf("buttons: action row component index %d out of range", index))
		return r
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if index+deleteCount > len(r.Components) {
		deleteCount = len(r.Components) - index
	}
	inserted := make([]Component, 0, len(replacements))
	for _, raw := range replacements {
		c, err := New(raw)
		if err != nil {
			r.fail(err)
			return r
		}
		inserted = append(inserted, c)
	}
	spliced := make([]Component, 0, len(r.Components)-deleteCount+len(inserted))
	spliced = append(spliced, r.Components[:index]...)
	spliced = append(spliced, inserted...)
	spliced = append(spliced, r.Components[index+deleteCount:]...)
	r.Components = spliced
	return r
}

// Kind implements Component.
func (r *ActionRow) Kind() Kind { return KindActionRow }

// Err returns the first builder error recorded on the row, if any.
func (r *ActionRow) Err() error { return r.err }

// Validate checks the row against the platform composition rules: children
// must be buttons or menus (rows never nest), a menu must be the row's only
// child, and every child must validate.
func (r *ActionRow) Validate() error {
	if r.err != nil {
		return r.err
	}
	menus := 0
	for i, child := range r.Components {
		switch c := child.(type) {
		case *Button:
			if err := c.Validate(); err != nil {
				return fmt.Errorf("buttons: action row component %d: %w", i, err)
			}
		case *Menu:
			menus++
			if err := c.Validate(); err != nil {
				return fmt.Errorf("buttons: action row component %d: %w", i, err)
			}
		default:
			return fmt.Errorf("buttons: action row cannot hold a %s: %w", child.Kind(), ErrStyleConstraint)
		}
	}
	if menus > 0 && len(r.Components) > 1 {
		return fmt.Errorf("buttons: action row holds buttons or exactly one menu, never both: %w", ErrStyleConstraint)
	}
	return nil
}

// MarshalJSON emits the exact wire shape. The child list always serializes as
// an array, never null.
func (r *ActionRow) MarshalJSON() ([]byte, error) {
	components := r.Components
	if components == nil {
		components = []Component{}
	}
	return json.Marshal(struct {
		Type       Kind        `json:"type"`
		Components []Component `json:"components"`
	}{KindActionRow, components})
}

func (r *ActionRow) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
