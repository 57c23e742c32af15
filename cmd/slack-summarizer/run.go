package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/chrisedwards/slack-summarizer/internal/channels"
	"github.com/chrisedwards/slack-summarizer/internal/config"
	"github.com/chrisedwards/slack-summarizer/internal/openai"
	"github.com/chrisedwards/slack-summarizer/internal/slack"
	"github.com/chrisedwards/slack-summarizer/internal/summary"
)

// runOptions is what the command line contributes to a run.
type runOptions struct {
	configPath string
	overrides  config.Overrides
	refill     bool
}

// session holds the effective settings for one run and the Slack side
// wired from them.
type session struct {
	settings  config.Settings
	overrides config.Overrides
	slack     *slack.Client
	directory *channels.Directory
	log       *slog.Logger
}

// openSession loads stored settings, applies the command-line overrides
// and checks them with validate before anything touches the network.
func openSession(opts runOptions, validate func(*config.Settings) error,
	log *slog.Logger) (*session, error) {

	stored, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	eff := stored.WithOverrides(opts.overrides)
	if err := validate(&eff); err != nil {
		return nil, err
	}
	log.Debug("Loaded settings", "config", eff.ConfigFile(),
		"model", eff.Model, "num_messages", eff.NumMessages)

	cachePath, err := eff.ChannelsCachePath()
	if err != nil {
		return nil, err
	}

	sc := slack.NewClient(eff.SlackToken, log).WithAPIURL(eff.SlackAPIURL)
	return &session{
		settings:  eff,
		overrides: opts.overrides,
		slack:     sc,
		directory: channels.NewDirectory(cachePath, sc, log),
		log:       log,
	}, nil
}

// persist writes the command-line overrides back to the config file so
// they stick. Values taken from the environment stay out of the file.
func (s *session) persist() error {
	if err := s.settings.Persist(s.overrides); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// runSummarize performs a full summarization run for channel (empty for
// none), prints the cleaned summary to out and stores the settings.
func runSummarize(ctx context.Context, opts runOptions, channel string,
	out io.Writer, log *slog.Logger) error {

	sess, err := openSession(opts, (*config.Settings).Validate, log)
	if err != nil {
		return err
	}
	eff := sess.settings

	completer := openai.NewClient(eff.OpenAIToken, eff.RequestURL, eff.Model, eff.MaxTokens, log)
	summarizer := summary.NewSummarizer(sess.directory, sess.slack, completer, eff.NumMessages, log)

	res, err := summarizer.Run(ctx, channel, opts.refill)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, res.Summary); err != nil {
		return err
	}

	return sess.persist()
}
