package buttons

import (
	"encoding/json"
	"testing"
)

const menuPayloadJSON = `{
	"id": "d",
	"application_id": "app",
	"type": 3,
	"guild_id": "g",
	"channel_id": "c",
	"token": "T",
	"version": 1,
	"message": {"id": "msg"},
	"member": {"user": {"id": "u1", "username": "clicker"}},
	"data": {"component_type": 3, "custom_id": "hey", "values": ["reload"]}
}`

func TestNewInteraction_MenuEnvelope(t *testing.T) {
	var p interactionPayload
	if err := json.Unmarshal([]byte(menuPayloadJSON), &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	sess := &mockSession{}
	ic := newInteraction(sess, &p, true)

	if ic.ID != "d" || ic.Token != "T" || ic.ApplicationID != "app" {
		t.Errorf("identity fields: %+v", ic)
	}
	if ic.CustomID != "hey" {
		t.Errorf("CustomID = %q, want %q", ic.CustomID, "hey")
	}
	if ic.GuildID != "g" || ic.ChannelID != "c" {
		t.Errorf("location fields: guild %q channel %q", ic.GuildID, ic.ChannelID)
	}
	if ic.Message == nil || ic.Message.ID != "msg" {
		t.Error("origin message not carried over")
	}
	if !ic.IsMenu() {
		t.Error("IsMenu() = false, want true")
	}
	if len(ic.Values) != 1 || ic.Values[0] != "reload" {
		t.Errorf("Values = %v, want [reload]", ic.Values)
	}
	if ic.Reply == nil {
		t.Fatal("Reply surface not attached")
	}
}

func TestNewInteraction_ClickerFromMember(t *testing.T) {
	var p interactionPayload
	if err := json.Unmarshal([]byte(menuPayloadJSON), &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	ic := newInteraction(&mockSession{}, &p, true)

	if ic.Clicker.ID != "u1" {
		t.Errorf("Clicker.ID = %q, want %q", ic.Clicker.ID, "u1")
	}
	if ic.Clicker.User == nil || ic.Clicker.User.Username != "clicker" {
		t.Error("Clicker.User not resolved from member")
	}
	if ic.Clicker.Member == nil {
		t.Error("Clicker.Member missing for guild interaction")
	}
}

func TestNewInteraction_ButtonOmitsValues(t *testing.T) {
	var p interactionPayload
	if err := json.Unmarshal([]byte(menuPayloadJSON), &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	p.Data.ComponentType = int(KindButton)
	ic := newInteraction(&mockSession{}, &p, false)

	if ic.IsMenu() {
		t.Error("IsMenu() = true, want false")
	}
	if ic.Values != nil {
		t.Errorf("Values = %v, want nil for button click", ic.Values)
	}
}
