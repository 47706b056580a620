package buttons

import "fmt"

// Emoji is the wire shape of a component emoji. Custom guild emoji carry an
// ID (with an optional name and animated flag); unicode glyphs carry only the
// glyph in Name.
type Emoji struct {
	Name     string `json:"name,omitempty"`
	ID       string `json:"id,omitempty"`
	Animated bool   `json:"animated,omitempty"`
}

// ResolveEmoji normalizes an emoji given as a literal unicode string, an
// all-digit custom emoji ID, a raw {name,id,animated} map, or an
// already-typed Emoji.
func ResolveEmoji(v any) (*Emoji, error) {
	switch e := v.(type) {
	case *Emoji:
		return e, nil
	case Emoji:
		return &e, nil
	case string:
		if e == "" {
			return nil, fmt.Errorf("buttons: empty emoji")
		}
		if isSnowflake(e) {
			return &Emoji{ID: e}, nil
		}
		return &Emoji{Name: e}, nil
	case map[string]any:
		return &Emoji{
			Name:     stringField(e, "name"),
			ID:       stringField(e, "id"),
			Animated: boolField(e, "animated"),
		}, nil
	}
	return nil, fmt.Errorf("buttons: cannot resolve emoji from %T", v)
}

// isSnowflake reports whether s looks like a platform snowflake ID.
func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
