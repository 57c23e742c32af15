package channels

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/chrisedwards/slack-summarizer/internal/slack"
)

// maxSuggestions caps the names offered when a lookup misses.
const maxSuggestions = 5

// ErrChannelNotFound matches any *NotFoundError via errors.Is.
var ErrChannelNotFound = errors.New("channel not found")

// NotFoundError reports a channel name absent from the directory.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("channel %q not found", e.Name)
	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
	}
	return msg
}

// Is makes errors.Is(err, ErrChannelNotFound) true for a *NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrChannelNotFound
}

// Lister lists every channel visible to the workspace token.
type Lister interface {
	ListChannels(ctx context.Context) ([]slack.Channel, error)
}

// Directory resolves channel names to IDs, backed by a local cache file
// and refilled from the remote listing on request.
type Directory struct {
	cache  *Cache
	lister Lister
	log    *slog.Logger
}

// NewDirectory creates a Directory caching to cachePath.
func NewDirectory(cachePath string, lister Lister, log *slog.Logger) *Directory {
	if log == nil {
		log = slog.Default()
	}
	return &Directory{
		cache:  NewCache(cachePath),
		lister: lister,
		log:    log.With("component", "channels"),
	}
}

// Entries returns the full name to ID mapping. The cache file is used when
// it exists and forceRefill is false; otherwise the directory is refilled.
func (d *Directory) Entries(ctx context.Context, forceRefill bool) (map[string]string, error) {
	if !forceRefill {
		entries, ok, err := d.cache.Load()
		if err != nil {
			return nil, fmt.Errorf("loading channel cache: %w", err)
		}
		if ok {
			d.log.Debug("Using cached channel directory",
				"path", d.cache.Path(), "entries", len(entries))
			return entries, nil
		}
	}
	return d.Refill(ctx)
}

// Refill rebuilds the mapping from the remote listing and overwrites the
// cache file with it.
func (d *Directory) Refill(ctx context.Context) (map[string]string, error) {
	chans, err := d.lister.ListChannels(ctx)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]string, len(chans))
	for _, ch := range chans {
		entries[ch.Name] = ch.ID
	}

	if err := d.cache.Save(entries); err != nil {
		return nil, fmt.Errorf("saving channel cache: %w", err)
	}
	d.log.Info("Refilled channel directory",
		"path", d.cache.Path(), "entries", len(entries))

	return entries, nil
}

// Resolve returns the ID of the channel called name. Names match
// case-sensitively; a miss returns a *NotFoundError.
func (d *Directory) Resolve(ctx context.Context, name string, forceRefill bool) (string, error) {
	entries, err := d.Entries(ctx, forceRefill)
	if err != nil {
		return "", err
	}

	if id, ok := entries[name]; ok {
		return id, nil
	}
	return "", &NotFoundError{Name: name, Suggestions: Suggest(entries, name)}
}

// Suggest returns up to maxSuggestions directory names that contain name,
// ignoring case, sorted alphabetically.
func Suggest(entries map[string]string, name string) []string {
	if name == "" {
		return nil
	}
	pattern := "*" + name + "*"

	var matches []string
	for candidate := range entries {
		if MatchPattern(pattern, candidate) {
			matches = append(matches, candidate)
		}
	}
	sort.Strings(matches)

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return matches
}

// Sorted turns a mapping into channels ordered by name, for listing.
func Sorted(entries map[string]string) []slack.Channel {
	chans := make([]slack.Channel, 0, len(entries))
	for name, id := range entries {
		chans = append(chans, slack.Channel{ID: id, Name: name})
	}
	sort.Slice(chans, func(i, j int) bool {
		return chans[i].Name < chans[j].Name
	})
	return chans
}
