package testutil

// conversationData holds all data for a conversation to be saved.
type conversationData struct {
	id           string
	parentID     string
	author       string
	authorPubkey string
	lastActivity uint64
}

// defaultConversation returns a conversationData with sensible defaults.
func defaultConversation(id string) conversationData {
	return conversationData{
		id:           id,
		author:       "agent-" + id, // Default author derives from the ID
		authorPubkey: "pk-" + id,
	}
}

// ConversationOption configures a conversation during builder setup.
type ConversationOption func(*conversationData)

// Parent sets the parent conversation ID.
func Parent(id string) ConversationOption {
	return func(c *conversationData) { c.parentID = id }
}

// Author sets the author display name.
func Author(name string) ConversationOption {
	return func(c *conversationData) { c.author = name }
}

// AuthorPubkey sets the author pubkey.
func AuthorPubkey(pk string) ConversationOption {
	return func(c *conversationData) { c.authorPubkey = pk }
}

// LastActivity sets the last activity timestamp in seconds.
func LastActivity(seconds uint64) ConversationOption {
	return func(c *conversationData) { c.lastActivity = seconds }
}
