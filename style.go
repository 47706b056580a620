package buttons

import "fmt"

// ButtonStyle is the platform's numeric button style code.
type ButtonStyle int

const (
	StylePrimary     ButtonStyle = 1 // blurple
	StyleSecondary   ButtonStyle = 2 // grey
	StyleSuccess     ButtonStyle = 3 // green
	StyleDestructive ButtonStyle = 4 // red
	StyleLink        ButtonStyle = 5 // url
)

// styleNames maps canonical member names and the historical lowercase aliases
// to their numeric codes.
var styleNames = map[string]ButtonStyle{
	"PRIMARY":     StylePrimary,
	"SECONDARY":   StyleSecondary,
	"SUCCESS":     StyleSuccess,
	"DESTRUCTIVE": StyleDestructive,
	"LINK":        StyleLink,

	"blurple": StylePrimary,
	"grey":    StyleSecondary,
	"gray":    StyleSecondary,
	"green":   StyleSuccess,
	"red":     StyleDestructive,
	"url":     StyleLink,
}

// ResolveStyle normalizes a button style given as a member name, a lowercase
// alias, a numeric code 1-5, or an already-typed ButtonStyle.
func ResolveStyle(v any) (ButtonStyle, error) {
	switch t := v.(type) {
	case ButtonStyle:
		return validStyle(int(t))
	case int:
		return validStyle(t)
	case int64:
		return validStyle(int(t))
	case float64:
		return validStyle(int(t))
	case string:
		if s, ok := styleNames[t]; ok {
			return s, nil
		}
		return 0, fmt.Errorf("buttons: unknown button style %q: %w", t, ErrStyleConstraint)
	}
	return 0, fmt.Errorf("buttons: unknown button style value of type %T: %w", v, ErrStyleConstraint)
}

func validStyle(n int) (ButtonStyle, error) {
	if n < int(StylePrimary) || n > int(StyleLink) {
		return 0, fmt.Errorf("buttons: button style code %d out of range: %w", n, ErrStyleConstraint)
	}
	return ButtonStyle(n), nil
}
