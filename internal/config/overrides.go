package config

// Overrides carries per-run values given on the command line. A nil field
// means the flag was not given and the stored value stays in effect.
type Overrides struct {
	SlackToken    *string
	OpenAIToken   *string
	RequestURL    *string
	Model         *string
	MaxTokens     *int
	NumMessages   *int
	ChannelsCache *string
}

// WithOverrides returns the effective settings for a run: each overridden
// field takes the command-line value, the rest keep their stored values.
// The result remembers the config file the receiver was loaded from.
func (s *Settings) WithOverrides(o Overrides) Settings {
	eff := *s
	if o.SlackToken != nil {
		eff.SlackToken = *o.SlackToken
	}
	if o.OpenAIToken != nil {
		eff.OpenAIToken = *o.OpenAIToken
	}
	if o.RequestURL != nil {
		eff.RequestURL = *o.RequestURL
	}
	if o.Model != nil {
		eff.Model = *o.Model
	}
	if o.MaxTokens != nil {
		eff.MaxTokens = *o.MaxTokens
	}
	if o.NumMessages != nil {
		eff.NumMessages = *o.NumMessages
	}
	if o.ChannelsCache != nil {
		eff.ChannelsCache = *o.ChannelsCache
	}
	return eff
}
