package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chrisedwards/slack-summarizer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Config prints where settings and the channel cache are stored and the
settings a run would use, with tokens masked. It makes no network calls and
does not write the config file (beyond seeding it on first use).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(optionsFromFlags(cmd), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func showConfig(opts runOptions, out io.Writer) error {
	stored, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	eff := stored.WithOverrides(opts.overrides)
	m := eff.Masked()
	cachePath, err := eff.ChannelsCachePath()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "config file:\t%s\n", eff.ConfigFile())
	fmt.Fprintf(w, "channels cache:\t%s\n", cachePath)
	fmt.Fprintf(w, "slack_token:\t%s%s\n", m.SlackToken, placeholderNote(eff.SlackToken == config.PlaceholderSlackToken))
	fmt.Fprintf(w, "openai_token:\t%s%s\n", m.OpenAIToken, placeholderNote(eff.OpenAIToken == config.PlaceholderOpenAIToken))
	fmt.Fprintf(w, "request_url:\t%s\n", eff.RequestURL)
	fmt.Fprintf(w, "model:\t%s\n", eff.Model)
	fmt.Fprintf(w, "max_tokens:\t%d\n", eff.MaxTokens)
	fmt.Fprintf(w, "num_messages:\t%d\n", eff.NumMessages)
	fmt.Fprintf(w, "slack_api_url:\t%s\n", eff.SlackAPIURL)
	return w.Flush()
}

func placeholderNote(isPlaceholder bool) string {
	if isPlaceholder {
		return " (not configured)"
	}
	return ""
}
