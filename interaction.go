package buttons

import (
	"github.com/bwmarrin/discordgo"
)

// interactionPayload is the inbound wire shape of a component interaction as
// delivered by the raw INTERACTION_CREATE gateway event.
type interactionPayload struct {
	ID            string             `json:"id"`
	ApplicationID string             `json:"application_id"`
	Type          int                `json:"type"`
	GuildID       string             `json:"guild_id"`
	ChannelID     string             `json:"channel_id"`
	Token         string             `json:"token"`
	Version       int                `json:"version"`
	Message       *discordgo.Message `json:"message"`
	Member        *discordgo.Member  `json:"member"`
	User          *discordgo.User    `json:"user"`
	Data          struct {
		ComponentType int      `json:"component_type"`
		CustomID      string   `json:"custom_id"`
		Values        []string `json:"values"`
	} `json:"data"`
}

// Clicker identifies the user who triggered a component interaction. Member
// is set for guild interactions, User always when the gateway provides one.
type Clicker struct {
	ID     string
	User   *discordgo.User
	Member *discordgo.Member
}

// Interaction wraps one inbound component interaction. It is created per
// gateway event and short-lived: the platform's interaction token expires a
// few seconds after delivery if not acknowledged through Reply.
type Interaction struct {
	ID            string
	ApplicationID string
	Token         string
	Version       int

	// CustomID is the clicked component's application-chosen identifier.
	CustomID string

	GuildID   string
	ChannelID string
	Clicker   Clicker
	Message   *discordgo.Message

	// Values holds the selected option values, in selection order. Only
	// populated for select-menu interactions.
	Values []string

	// Reply is this interaction's acknowledgement surface.
	Reply *Reply

	menu bool
	sess session
}

// newInteraction populates an envelope from a raw payload. The menu flag
// selects whether the payload's selected values are carried over.
func newInteraction(sess session, p *interactionPayload, menu bool) *Interaction {
	ic := &Interaction{
		ID:            p.ID,
		ApplicationID: p.ApplicationID,
		Token:         p.Token,
		Version:       p.Version,
		CustomID:      p.Data.CustomID,
		GuildID:       p.GuildID,
		ChannelID:     p.ChannelID,
		Message:       p.Message,
		menu:          menu,
		sess:          sess,
	}
	if menu {
		ic.Values = p.Data.Values
	}

	user := p.User
	if user == nil && p.Member != nil {
		user = p.Member.User
	}
	ic.Clicker = Clicker{User: user, Member: p.Member}
	if user != nil {
		ic.Clicker.ID = user.ID
	}

	ic.Reply = newReply(sess, ic)
	return ic
}

// IsMenu reports whether this interaction is a select-menu selection rather
// than a button click.
func (ic *Interaction) IsMenu() bool { return ic.menu }

// Guild resolves the interaction's guild from the host state cache.
func (ic *Interaction) Guild() (*discordgo.Guild, error) {
	return ic.sess.Guild(ic.GuildID)
}

// Channel resolves the interaction's channel from the host state cache.
func (ic *Interaction) Channel() (*discordgo.Channel, error) {
	return ic.sess.Channel(ic.ChannelID)
}
