package main

import (
	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <channel>",
	Short: "Summarize the most recent messages sent in a Slack channel",
	Long: `Summarize fetches the most recent messages (--num-messages, default 20) of the
named channel and prints the model's summary.

The channel name is matched case-sensitively against the channel directory,
which is cached locally; pass --channels-refill to rebuild it from Slack. A
channel that is not in the directory is reported and an empty message set is
summarized instead.`,
	Example: `  slack-summarizer summarize general
  slack-summarizer --num-messages 50 --channels-refill summarize team-infra`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummarize(cmd.Context(), optionsFromFlags(cmd), args[0],
			cmd.OutOrStdout(), newLogger(cmd.ErrOrStderr(), debug))
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}
