package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/btcsuite/btclog"
	btclogv2 "github.com/btcsuite/btclog/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/chrisedwards/slack-summarizer/internal/config"
)

// Version information, injected at build time via ldflags.
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = "unknown"
)

// Global flags. Every settings flag overrides the stored value for this
// run and becomes the new stored default.
var (
	configPath     string
	slackToken     string
	openAIToken    string
	requestURL     string
	model          string
	maxTokens      int
	numMessages    int
	channelsRefill bool
	channelsCache  string
	debug          bool
)

var rootCmd = &cobra.Command{
	Use:   "slack-summarizer",
	Short: "Summarize recent Slack channel messages with a language model",
	Long: `slack-summarizer fetches the most recent messages of a Slack channel and asks
an OpenAI-compatible chat-completion endpoint to summarize them.

Tokens and defaults given as flags are stored in the config file, so they
only need to be passed once. Values may also come from SLACK_SUMMARIZER_*
environment variables or a .env file in the working directory.

Run without a subcommand to store settings; the model is then asked to
summarize an empty message set.`,
	Version:       fmt.Sprintf("%s (build %s, %s)", Version, Build, BuildTime),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummarize(cmd.Context(), optionsFromFlags(cmd), "",
			cmd.OutOrStdout(), newLogger(cmd.ErrOrStderr(), debug))
	},
}

func init() {
	// Load .env file if present (for SLACK_SUMMARIZER_* tokens)
	_ = godotenv.Load()

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default "+defaultConfigHelp()+")")
	flags.StringVar(&slackToken, "slack-token", "", "Slack bot token")
	flags.StringVar(&openAIToken, "openai-token", "", "OpenAI API token")
	flags.StringVar(&requestURL, "request-url", "", "chat-completion request URL")
	flags.StringVar(&model, "model", "", "model name")
	flags.IntVar(&maxTokens, "tokens", 0, "maximum number of output tokens")
	flags.IntVar(&numMessages, "num-messages", 0, "number of messages to summarize")
	flags.BoolVar(&channelsRefill, "channels-refill", false, "rebuild the channel directory cache from Slack")
	flags.StringVar(&channelsCache, "channels-cache", "", "channel directory cache file (default: next to the config file)")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
}

func defaultConfigHelp() string {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return "<user config dir>/" + config.AppName + "/" + config.AppName + ".yaml"
	}
	return path
}

// optionsFromFlags collects the flags the user actually set.
func optionsFromFlags(cmd *cobra.Command) runOptions {
	flags := cmd.Flags()
	var o config.Overrides
	if flags.Changed("slack-token") {
		o.SlackToken = &slackToken
	}
	if flags.Changed("openai-token") {
		o.OpenAIToken = &openAIToken
	}
	if flags.Changed("request-url") {
		o.RequestURL = &requestURL
	}
	if flags.Changed("model") {
		o.Model = &model
	}
	if flags.Changed("tokens") {
		o.MaxTokens = &maxTokens
	}
	if flags.Changed("num-messages") {
		o.NumMessages = &numMessages
	}
	if flags.Changed("channels-cache") {
		o.ChannelsCache = &channelsCache
	}

	return runOptions{
		configPath: configPath,
		overrides:  o,
		refill:     channelsRefill,
	}
}

// newLogger returns a slog.Logger backed by a btclog handler on w.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	handler := btclogv2.NewDefaultHandler(w).SubSystem("SUMR")
	level := btclog.LevelInfo
	if debug {
		level = btclog.LevelDebug
	}
	handler.SetLevel(level)
	return slog.New(handler)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
