package buttons

import (
	"encoding/json"
	"strings"
	"testing"
)

func testButton(id, label string) *Button {
	return NewButton().SetStyle("blurple").SetID(id).SetLabel(label)
}

func TestResolveComponents_Absent(t *testing.T) {
	rows, present, err := ResolveComponents(map[string]any{"content": "hi"})
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if present {
		t.Error("no shorthand field given, want present=false")
	}
	if rows != nil {
		t.Errorf("rows = %v, want nil", rows)
	}
}

func TestResolveComponents_ButtonsList(t *testing.T) {
	rows, present, err := ResolveComponents(map[string]any{
		"buttons": []*Button{testButton("a", "A"), testButton("b", "B")},
	})
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if !present {
		t.Fatal("want present=true")
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if len(rows[0].Components) != 2 {
		t.Fatalf("row has %d children, want 2", len(rows[0].Components))
	}
}

func TestResolveComponents_ButtonSingleton(t *testing.T) {
	rows, present, err := ResolveComponents(map[string]any{
		"button": testButton("only", "Only"),
	})
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if !present || len(rows) != 1 || len(rows[0].Components) != 1 {
		t.Fatalf("rows = %v present = %v, want one row with one child", rows, present)
	}
}

func TestResolveComponents_ComponentActionRow(t *testing.T) {
	row := NewActionRow().AddComponents(testButton("a", "A"), testButton("b", "B"))
	rows, present, err := ResolveComponents(map[string]any{"component": row})
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if !present || len(rows) != 1 {
		t.Fatalf("rows = %v, want one row", rows)
	}
	if len(rows[0].Components) != 2 {
		t.Fatalf("row has %d children, want 2", len(rows[0].Components))
	}
}

func TestResolveComponents_ComponentSingle(t *testing.T) {
	menu := NewMenu().SetID("m").AddOption(
		NewMenuOption().SetLabel("l").SetValue("v"))
	rows, _, err := ResolveComponents(map[string]any{"component": menu})
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if len(rows) != 1 || len(rows[0].Components) != 1 {
		t.Fatalf("rows = %v, want one row wrapping the menu", rows)
	}
	if rows[0].Components[0].Kind() != KindSelectMenu {
		t.Errorf("child kind = %v, want %v", rows[0].Components[0].Kind(), KindSelectMenu)
	}
}

func TestResolveComponents_ComponentsListOfRows(t *testing.T) {
	rows, _, err := ResolveComponents(map[string]any{
		"components": []*ActionRow{
			NewActionRow().AddComponent(testButton("a", "A")),
			NewActionRow().AddComponent(testButton("b", "B")),
		},
	})
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
}

func TestResolveComponents_TopLevelActionRowSuppressesList(t *testing.T) {
	// A bag that is itself an action row: the components key is its child
	// list, not a second list of rows.
	rows, present, err := ResolveComponents(map[string]any{
		"type": "ACTION_ROW",
		"components": []any{
			testButton("a", "A"),
			testButton("b", "B"),
		},
	})
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if !present {
		t.Fatal("want present=true")
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want exactly 1 (no duplicate expansion)", len(rows))
	}
	if len(rows[0].Components) != 2 {
		t.Fatalf("row has %d children, want 2", len(rows[0].Components))
	}
}

func TestResolveComponents_TopLevelButtonBag(t *testing.T) {
	rows, _, err := ResolveComponents(map[string]any{
		"type":      "BUTTON",
		"style":     "green",
		"label":     "go",
		"custom_id": "go",
	})
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if len(rows) != 1 || len(rows[0].Components) != 1 {
		t.Fatalf("rows = %v, want one row with one button", rows)
	}
	b, ok := rows[0].Components[0].(*Button)
	if !ok || b.Style != StyleSuccess {
		t.Fatalf("child = %#v, want success button", rows[0].Components[0])
	}
}

func TestResolveComponents_TypeActionRowNoChildren(t *testing.T) {
	rows, present, err := ResolveComponents(map[string]any{"type": "ACTION_ROW"})
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if !present || len(rows) != 1 {
		t.Fatalf("rows = %v present = %v, want one empty row", rows, present)
	}
	if len(rows[0].Components) != 0 {
		t.Errorf("row has %d children, want 0", len(rows[0].Components))
	}
}

func TestResolveComponents_ButtonsMapList(t *testing.T) {
	rows, _, err := ResolveComponents(map[string]any{
		"buttons": []map[string]any{
			{"type": "BUTTON", "style": "blurple", "label": "A", "custom_id": "a"},
			{"type": "BUTTON", "style": "grey", "label": "B", "custom_id": "b"},
		},
	})
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if len(rows) != 1 || len(rows[0].Components) != 2 {
		t.Fatalf("rows = %v, want one row with two buttons", rows)
	}
	if _, ok := rows[0].Components[0].(*Button); !ok {
		t.Errorf("child = %T, want *Button", rows[0].Components[0])
	}
}

func TestResolveComponents_ExplicitNullClears(t *testing.T) {
	rows, present, err := ResolveComponents(map[string]any{
		"buttons":    []*Button{testButton("a", "A")},
		"components": nil,
	})
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if !present {
		t.Fatal("explicit null must still mark components present")
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("rows = %v, want empty non-nil slice", rows)
	}
}

func TestResolveComponents_InvalidType(t *testing.T) {
	_, _, err := ResolveComponents(map[string]any{"type": "WIDGET"})
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestSendOptions_BagClear(t *testing.T) {
	opts := &SendOptions{Components: Clear}
	rows, present, err := ResolveComponents(opts.bag())
	if err != nil {
		t.Fatalf("ResolveComponents: %v", err)
	}
	if !present || len(rows) != 0 {
		t.Fatalf("rows = %v present = %v, want present empty", rows, present)
	}
}

func TestBuildMessageBody_OmitsAbsentComponents(t *testing.T) {
	body, err := buildMessageBody(&SendOptions{Content: "plain"})
	if err != nil {
		t.Fatalf("buildMessageBody: %v", err)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "components") {
		t.Errorf("body %s should not carry a components key", raw)
	}
}

func TestBuildMessageBody_EmitsClearedComponents(t *testing.T) {
	body, err := buildMessageBody(&SendOptions{Content: "strip", Components: Clear})
	if err != nil {
		t.Fatalf("buildMessageBody: %v", err)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"components":[]`) {
		t.Errorf("body %s should carry an explicit empty components list", raw)
	}
}

func TestBuildMessageBody_Ephemeral(t *testing.T) {
	body, err := buildMessageBody(&SendOptions{Content: "secret", Ephemeral: true})
	if err != nil {
		t.Fatalf("buildMessageBody: %v", err)
	}
	if body.Flags != ephemeralFlag {
		t.Errorf("Flags = %d, want %d", body.Flags, ephemeralFlag)
	}
}

func TestBuildMessageBody_RejectsInvalidRow(t *testing.T) {
	bad := NewButton().SetStyle("blurple").SetLabel("no id")
	_, err := buildMessageBody(&SendOptions{Button: bad})
	if err == nil {
		t.Fatal("expected validation error for button without custom_id")
	}
}

func TestBuildMessageBody_Deterministic(t *testing.T) {
	opts := &SendOptions{
		Content: "hi",
		Buttons: []*Button{testButton("a", "A"), testButton("b", "B")},
	}
	first, err := buildMessageBody(opts)
	if err != nil {
		t.Fatalf("buildMessageBody: %v", err)
	}
	second, err := buildMessageBody(opts)
	if err != nil {
		t.Fatalf("buildMessageBody: %v", err)
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("resolution not deterministic:\n%s\n%s", a, b)
	}
}
