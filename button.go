package buttons

import (
	"encoding/json"
	"fmt"
)

// Button is an interactive message button. Build it fluently; setters return
// the receiver and record the first failure, which Err and Validate surface.
type Button struct {
	Style    ButtonStyle
	Label    string
	Emoji    *Emoji
	URL      string
	CustomID string
	Disabled bool

	err error
}

// NewButton returns an empty button builder.
func NewButton() *Button {
	return &Button{}
}

// SetStyle sets the button style from a member name, lowercase alias, numeric
// code, or ButtonStyle. Unknown tokens are recorded as a builder error.
func (b *Button) SetStyle(style any) *Button {
	s, err := ResolveStyle(style)
	if err != nil {
		b.fail(err)
		return b
	}
	b.Style = s
	return b
}

// SetLabel sets the visible button text.
func (b *Button) SetLabel(label string) *Button {
	b.Label = label
	return b
}

// SetEmoji sets the button emoji from a unicode glyph, a custom emoji ID, or
// a structured emoji value.
func (b *Button) SetEmoji(emoji any) *Button {
	e, err := ResolveEmoji(emoji)
	if err != nil {
		b.fail(err)
		return b
	}
	b.Emoji = e
	return b
}

// SetURL sets the link target. Only valid together with StyleLink.
func (b *Button) SetURL(url string) *Button {
	b.URL = url
	return b
}

// SetID sets the custom_id reported back when the button is clicked.
func (b *Button) SetID(id string) *Button {
	b.CustomID = id
	return b
}

// SetDisabled sets the disabled flag. Calling it with no argument disables
// the button; this default-true convenience mirrors the historical API.
func (b *Button) SetDisabled(disabled ...bool) *Button {
	b.Disabled = true
	if len(disabled) > 0 {
		b.Disabled = disabled[0]
	}
	return b
}

// Kind implements Component.
func (b *Button) Kind() Kind { return KindButton }

// Err returns the first setter error recorded on the builder, if any.
func (b *Button) Err() error { return b.err }

// Validate checks the button against the platform's composition rules:
// a style is required, a label or emoji is required, LINK buttons carry a url
// and no custom_id, all other styles carry a custom_id and no url.
func (b *Button) Validate() error {
	if b.err != nil {
		return b.err
	}
	if b.Style == 0 {
		return fmt.Errorf("buttons: button requires a style: %w", ErrStyleConstraint)
	}
	if b.Label == "" && b.Emoji == nil {
		return fmt.Errorf("buttons: button requires a label or an emoji: %w", ErrStyleConstraint)
	}
	if b.Style == StyleLink {
		if b.URL == "" {
			return fmt.Errorf("buttons: LINK button requires a url: %w", ErrStyleConstraint)
		}
		if b.CustomID != "" {
			return fmt.Errorf("buttons: LINK button cannot carry a custom_id: %w", ErrStyleConstraint)
		}
		return nil
	}
	if b.CustomID == "" {
		return fmt.Errorf("buttons: %s button requires a custom_id: %w", styleName(b.Style), ErrStyleConstraint)
	}
	if b.URL != "" {
		return fmt.Errorf("buttons: %s button cannot carry a url: %w", styleName(b.Style), ErrStyleConstraint)
	}
	return nil
}

// MarshalJSON emits the exact wire shape. It is pure and never fails for a
// populated button; use Validate for constraint checking.
func (b *Button) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     Kind        `json:"type"`
		Style    ButtonStyle `json:"style,omitempty"`
		Label    string      `json:"label,omitempty"`
		Emoji    *Emoji      `json:"emoji,omitempty"`
		CustomID string      `json:"custom_id,omitempty"`
		URL      string      `json:"url,omitempty"`
		Disabled bool        `json:"disabled,omitempty"`
	}{KindButton, b.Style, b.Label, b.Emoji, b.CustomID, b.URL, b.Disabled})
}

func (b *Button) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func styleName(s ButtonStyle) string {
	switch s {
	case StylePrimary:
		return "PRIMARY"
	case StyleSecondary:
		return "SECONDARY"
	case StyleSuccess:
		return "SUCCESS"
	case StyleDestructive:
		return "DESTRUCTIVE"
	case StyleLink:
		return "LINK"
	}
	return fmt.Sprintf("ButtonStyle(%d)", int(s))
}
