package buttons

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestActionRow_AddComponents(t *testing.T) {
	row := NewActionRow().AddComponents(
		testButton("a", "A"),
		map[string]any{"type": float64(2), "style": float64(3), "label": "B", "custom_id": "b"},
	)
	if row.Err() != nil {
		t.Fatalf("builder error: %v", row.Err())
	}
	if err := row.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(row.Components) != 2 {
		t.Fatalf("len = %d, want 2", len(row.Components))
	}
}

func TestActionRow_MenuMustBeOnlyChild(t *testing.T) {
	menu := NewMenu().SetID("m").AddOption(testOption("a", "a"))
	row := NewActionRow().AddComponents(menu, testButton("b", "B"))
	if err := row.Validate(); !errors.Is(err, ErrStyleConstraint) {
		t.Fatalf("Validate = %v, want ErrStyleConstraint", err)
	}

	solo := NewActionRow().AddComponent(menu)
	if err := solo.Validate(); err != nil {
		t.Fatalf("single menu row should validate: %v", err)
	}
}

func TestActionRow_RejectsNestedRow(t *testing.T) {
	row := NewActionRow().AddComponent(NewActionRow())
	if err := row.Validate(); !errors.Is(err, ErrStyleConstraint) {
		t.Fatalf("Validate = %v, want ErrStyleConstraint", err)
	}
}

func TestActionRow_RemoveComponents(t *testing.T) {
	row := NewActionRow().AddComponents(
		testButton("a", "A"), testButton("b", "B"), testButton("c", "C"))

	row.RemoveComponents(0, 2, testButton("z", "Z"))
	if row.Err() != nil {
		t.Fatalf("builder error: %v", row.Err())
	}
	if len(row.Components) != 2 {
		t.Fatalf("len = %d, want 2", len(row.Components))
	}
	if row.Components[0].(*Button).CustomID != "z" || row.Components[1].(*Button).CustomID != "c" {
		t.Errorf("unexpected children after splice")
	}
}

func TestActionRow_MarshalAlwaysEmitsComponentsArray(t *testing.T) {
	raw, err := json.Marshal(NewActionRow())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":1,"components":[]}`
	if string(raw) != want {
		t.Errorf("marshal = %s, want %s", raw, want)
	}
}
