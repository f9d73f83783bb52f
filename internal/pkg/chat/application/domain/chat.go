package chat

import "time"

// Chat is the domain aggregate for a conversation.
//
// Membership and the per-user notification toggle are deliberately separate
// fields: Members answers "who is in this chat", NotifyEnabled answers "who
// wants a notification record when someone else posts". A username missing
// from NotifyEnabled defaults to disabled.
//
// The application layer hydrates the aggregate from the repository before
// invoking its behaviors; persistence stays outside the domain.
type Chat struct {
	ID              string
	Name            string
	IsCommunityChat bool
	CommunityID     *string
	CreatedAt       time.Time

	Members       []string
	NotifyEnabled map[string]bool

	// Messages is populated only when the caller asked for a full snapshot
	// (e.g. before broadcasting a chatUpdate). Soft-deleted messages are
	// excluded at the repository.
	Messages []Message
}

// HasMember reports whether username belongs to this chat.
func (c *Chat) HasMember(username string) bool {
	if c == nil {
		return false
	}
	for _, m := range c.Members {
		if m == username {
			return true
		}
	}
	return false
}

// IsDirect reports whether this is a 2-person (non-community) chat.
func (c *Chat) IsDirect() bool {
	return c != nil && !c.IsCommunityChat && len(c.Members) == 2
}

// DisplayName is the conversation title used in notifications and digests.
func (c *Chat) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.IsDirect() {
		return "Direct Message"
	}
	return "Group Chat"
}

// OtherMembers returns every member except username, in membership order.
func (c *Chat) OtherMembers(username string) []string {
	others := make([]string, 0, len(c.Members))
	for _, m := range c.Members {
		if m != username {
			others = append(others, m)
		}
	}
	return others
}

// EligibleRecipients returns the members who must receive a notification
// record for a message sent by sender: everyone but the sender whose
// notification toggle is on.
func (c *Chat) EligibleRecipients(sender string) []string {
	recipients := make([]string, 0, len(c.Members))
	for _, m := range c.Members {
		if m == sender {
			continue
		}
		if c.NotifyEnabled[m] {
			recipients = append(recipients, m)
		}
	}
	return recipients
}
