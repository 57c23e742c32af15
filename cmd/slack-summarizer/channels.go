package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chrisedwards/slack-summarizer/internal/channels"
	"github.com/chrisedwards/slack-summarizer/internal/config"
)

var excludePatterns []string

var channelsCmd = &cobra.Command{
	Use:   "channels [pattern...]",
	Short: "List the channel directory",
	Long: `Channels prints the cached channel directory as name and ID pairs.

Optional glob patterns (case-insensitive, matched against name or ID) limit the
listing; --exclude removes matches. With --channels-refill, or when no cache
exists yet, the directory is rebuilt from Slack first.`,
	Example: `  slack-summarizer channels
  slack-summarizer channels 'team-*' --exclude '*-archive'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChannels(cmd.Context(), optionsFromFlags(cmd), args, excludePatterns,
			cmd.OutOrStdout(), newLogger(cmd.ErrOrStderr(), debug))
	},
}

func init() {
	channelsCmd.Flags().StringSliceVar(&excludePatterns, "exclude", nil, "glob patterns to leave out")
	rootCmd.AddCommand(channelsCmd)
}

func runChannels(ctx context.Context, opts runOptions, include, exclude []string,
	out io.Writer, log *slog.Logger) error {

	sess, err := openSession(opts, (*config.Settings).ValidateSlack, log)
	if err != nil {
		return err
	}

	entries, err := sess.directory.Entries(ctx, opts.refill)
	if err != nil {
		return err
	}

	listed := channels.NewFilter(include, exclude).Apply(channels.Sorted(entries))
	fmt.Fprintf(out, "%d of %d channels (include %s, exclude %s)\n",
		len(listed), len(entries), formatPatterns(include), formatPatterns(exclude))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, ch := range listed {
		fmt.Fprintf(w, "%s\t%s\n", ch.Name, ch.ID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return sess.persist()
}

// formatPatterns renders a pattern list for display.
func formatPatterns(patterns []string) string {
	if len(patterns) == 0 {
		return "(none)"
	}
	return "[" + strings.Join(patterns, ", ") + "]"
}
