package slack

// Channel represents a Slack conversation as returned by conversations.list.
type Channel struct {
	ID         string // Channel ID (C..., G...)
	Name       string // Human-readable name, unique per workspace
	IsChannel  bool   // Public channel
	IsGroup    bool   // Private channel
	IsIM       bool   // Direct message
	IsMPIM     bool   // Multi-party IM
	IsPrivate  bool   // Private flag
	IsArchived bool   // Archived flag
	IsMember   bool   // Bot is a member
}
