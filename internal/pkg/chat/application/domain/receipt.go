package chat

import "fmt"

// Receipt labels rendered under the current user's latest sent message.
const (
	ReceiptDelivered = "Delivered"
	ReceiptRead      = "Read"
	ReceiptReadByAll = "Read by all"
)

// LatestOwnMessage returns the most recent non-deleted message sent by
// username, or nil when they have not sent one. Messages are expected in
// log order (oldest first), as loaded by the repository.
func (c *Chat) LatestOwnMessage(username string) *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		m := &c.Messages[i]
		if m.IsDeleted {
			continue
		}
		if m.MsgFrom == username {
			return m
		}
	}
	return nil
}

// ReceiptLabel computes the delivered/read status for a message the current
// user sent, against the chat's present membership. The rule is recomputed on
// every readBy update rather than cached:
//
//	direct chat: "Read" once the other member acknowledged, else "Delivered"
//	group chat:  "Read by all" / "Read by K/N" / "Delivered"
func (c *Chat) ReceiptLabel(m *Message) string {
	others := c.OtherMembers(m.MsgFrom)
	if len(others) == 0 {
		return ReceiptDelivered
	}

	read := 0
	for _, u := range others {
		if m.ReadByUser(u) {
			read++
		}
	}

	if c.IsDirect() {
		if read > 0 {
			return ReceiptRead
		}
		return ReceiptDelivered
	}

	switch {
	case read == 0:
		return ReceiptDelivered
	case read == len(others):
		return ReceiptReadByAll
	default:
		return fmt.Sprintf("Read by %d/%d", read, len(others))
	}
}
