package buttons

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Interaction callback types understood by the platform.
const (
	callbackChannelMessageWithSource         = 4
	callbackDeferredChannelMessageWithSource = 5
	callbackDeferredUpdateMessage            = 6
)

// replyState tracks acknowledgement of one interaction token.
type replyState int

const (
	stateUnacknowledged replyState = iota
	stateDeferred
	stateReplied
)

// interactionResponse is the wire body of an interaction callback.
type interactionResponse struct {
	Type int          `json:"type"`
	Data *messageBody `json:"data,omitempty"`
}

// Reply is the acknowledgement surface of one interaction. The platform
// allows each interaction token exactly one acknowledgement: Defer or Think
// move to a deferred state without content, Send delivers content, and Edit,
// Fetch and Delete operate on the acknowledged reply. A second
// acknowledgement without edit semantics fails with
// ErrAcknowledgementConflict.
type Reply struct {
	mu        sync.Mutex
	state     replyState
	ephemeral bool
	sess      session
	ic        *Interaction
}

func newReply(sess session, ic *Interaction) *Reply {
	return &Reply{sess: sess, ic: ic}
}

// Defer acknowledges the interaction with no visible response, leaving the
// origin message untouched. The reply can then be delivered with Send or
// Edit.
func (r *Reply) Defer(ctx context.Context, ephemeral bool) error {
	return r.acknowledge(ctx, callbackDeferredUpdateMessage, ephemeral)
}

// Think acknowledges the interaction and shows the clicker a processing
// indicator until the reply is delivered with Send or Edit.
func (r *Reply) Think(ctx context.Context, ephemeral bool) error {
	return r.acknowledge(ctx, callbackDeferredChannelMessageWithSource, ephemeral)
}

func (r *Reply) acknowledge(ctx context.Context, callbackType int, ephemeral bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != stateUnacknowledged {
		return fmt.Errorf("buttons: interaction %s: %w", r.ic.ID, ErrAcknowledgementConflict)
	}
	resp := &interactionResponse{Type: callbackType}
	if ephemeral {
		resp.Data = &messageBody{Flags: ephemeralFlag}
	}
	if err := r.request(ctx, http.MethodPost, r.callbackURL(), resp, nil); err != nil {
		return fmt.Errorf("buttons: acknowledge interaction: %w", err)
	}
	r.state = stateDeferred
	r.ephemeral = ephemeral
	return nil
}

// Send delivers the reply content. On an unacknowledged interaction it
// acknowledges and replies in one callback; after Defer or Think it edits the
// deferred reply into place. Sending twice is an acknowledgement conflict.
func (r *Reply) Send(ctx context.Context, opts *SendOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == stateReplied {
		return fmt.Errorf("buttons: interaction %s: %w", r.ic.ID, ErrAcknowledgementConflict)
	}

	body, err := buildMessageBody(opts)
	if err != nil {
		return err
	}
	if r.ephemeral && body.Flags == 0 {
		body.Flags = ephemeralFlag
	}

	if r.state == stateUnacknowledged {
		resp := &interactionResponse{Type: callbackChannelMessageWithSource, Data: body}
		if err := r.request(ctx, http.MethodPost, r.callbackURL(), resp, nil); err != nil {
			return fmt.Errorf("buttons: send reply: %w", err)
		}
	} else {
		if err := r.request(ctx, http.MethodPatch, r.originalURL(), body, nil); err != nil {
			return fmt.Errorf("buttons: send deferred reply: %w", err)
		}
	}
	r.state = stateReplied
	return nil
}

// Edit rewrites the delivered (or deferred) reply. Editing before any
// acknowledgement is a usage error.
func (r *Reply) Edit(ctx context.Context, opts *SendOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == stateUnacknowledged {
		return fmt.Errorf("buttons: edit: interaction %s not acknowledged", r.ic.ID)
	}
	body, err := buildMessageBody(opts)
	if err != nil {
		return err
	}
	if err := r.request(ctx, http.MethodPatch, r.originalURL(), body, nil); err != nil {
		return fmt.Errorf("buttons: edit reply: %w", err)
	}
	r.state = stateReplied
	return nil
}

// Fetch retrieves the delivered reply message.
func (r *Reply) Fetch(ctx context.Context) (*discordgo.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == stateUnacknowledged {
		return nil, fmt.Errorf("buttons: fetch: interaction %s not acknowledged", r.ic.ID)
	}
	var msg *discordgo.Message
	if err := r.request(ctx, http.MethodGet, r.originalURL(), nil, &msg); err != nil {
		return nil, fmt.Errorf("buttons: fetch reply: %w", err)
	}
	return msg, nil
}

// Delete removes the delivered reply message.
func (r *Reply) Delete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == stateUnacknowledged {
		return fmt.Errorf("buttons: delete: interaction %s not acknowledged", r.ic.ID)
	}
	if err := r.request(ctx, http.MethodDelete, r.originalURL(), nil, nil); err != nil {
		return fmt.Errorf("buttons: delete reply: %w", err)
	}
	return nil
}

func (r *Reply) callbackURL() string {
	return discordgo.EndpointInteractionResponse(r.ic.ID, r.ic.Token)
}

func (r *Reply) originalURL() string {
	return discordgo.EndpointInteractionResponseActions(r.ic.ApplicationID, r.ic.Token)
}

// request performs one REST round-trip with rate-limit retry, decoding the
// response into out when non-nil.
func (r *Reply) request(ctx context.Context, method, url string, body, out any) error {
	return retryOnRateLimit(ctx, func() error {
		resp, err := r.sess.Request(method, url, body)
		if err != nil {
			return err
		}
		if out == nil || len(resp) == 0 {
			return nil
		}
		return json.Unmarshal(resp, out)
	})
}
