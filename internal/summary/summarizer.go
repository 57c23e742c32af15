// Package summary orchestrates one summarization run: channel lookup,
// message fetch, completion and cleanup.
package summary

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chrisedwards/slack-summarizer/internal/channels"
)

// Directory resolves channel names to IDs.
type Directory interface {
	Entries(ctx context.Context, forceRefill bool) (map[string]string, error)
	Resolve(ctx context.Context, name string, forceRefill bool) (string, error)
}

// Fetcher returns the text of a channel's most recent messages.
type Fetcher interface {
	FetchMessages(ctx context.Context, channelID string, count int) ([]string, error)
}

// Completer turns message texts into a summary.
type Completer interface {
	Summarize(ctx context.Context, messages []string) (string, error)
}

// Result describes a finished run.
type Result struct {
	// Channel is the requested channel name, empty when none was given.
	Channel string

	// ChannelID is the resolved ID, empty when the channel was not found.
	ChannelID string

	// Messages is how many messages were summarized.
	Messages int

	// NotFound is set when Channel was missing from the directory and the
	// run continued with no messages.
	NotFound *channels.NotFoundError

	// Summary is the cleaned model reply, ending in a newline.
	Summary string
}

// Summarizer drives the lookup, fetch and completion steps.
type Summarizer struct {
	directory   Directory
	fetcher     Fetcher
	completer   Completer
	numMessages int
	log         *slog.Logger
}

// NewSummarizer creates a Summarizer fetching numMessages per run.
func NewSummarizer(directory Directory, fetcher Fetcher, completer Completer,
	numMessages int, log *slog.Logger) *Summarizer {

	if log == nil {
		log = slog.Default()
	}
	return &Summarizer{
		directory:   directory,
		fetcher:     fetcher,
		completer:   completer,
		numMessages: numMessages,
		log:         log.With("component", "summary"),
	}
}

// Run summarizes the most recent messages of channel. With an empty
// channel the model is asked to summarize an empty message set. A channel
// missing from the directory is reported in Result.NotFound and the run
// carries on with no messages; every other error aborts the run.
func (s *Summarizer) Run(ctx context.Context, channel string, refill bool) (*Result, error) {
	res := &Result{Channel: channel}

	var messages []string
	switch {
	case channel == "":
		s.log.Info("No channel given, summarizing an empty message set")
		if refill {
			if _, err := s.directory.Entries(ctx, true); err != nil {
				return nil, err
			}
		}

	default:
		id, err := s.directory.Resolve(ctx, channel, refill)
		var nf *channels.NotFoundError
		switch {
		case errors.As(err, &nf):
			s.log.Warn("Channel not found, summarizing no messages",
				"channel", channel, "suggestions", nf.Suggestions)
			res.NotFound = nf

		case err != nil:
			return nil, err

		default:
			res.ChannelID = id
			messages, err = s.fetcher.FetchMessages(ctx, id, s.numMessages)
			if err != nil {
				return nil, err
			}
		}
	}
	res.Messages = len(messages)

	reply, err := s.completer.Summarize(ctx, messages)
	if err != nil {
		return nil, err
	}
	res.Summary = Clean(reply)

	return res, nil
}
