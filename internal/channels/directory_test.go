package channels

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/chrisedwards/slack-summarizer/internal/slack"
)

// stubLister returns a fixed channel list and counts calls.
type stubLister struct {
	channels []slack.Channel
	err      error
	calls    int
}

func (s *stubLister) ListChannels(ctx context.Context) ([]slack.Channel, error) {
	s.calls++
	return s.channels, s.err
}

func writeCache(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "channels.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolve_CacheHitSkipsRemote(t *testing.T) {
	path := writeCache(t, `{"general": "C123"}`)
	lister := &stubLister{}
	dir := NewDirectory(path, lister, nil)

	id, err := dir.Resolve(context.Background(), "general", false)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if id != "C123" {
		t.Errorf("Resolve() = %q, want C123", id)
	}
	if lister.calls != 0 {
		t.Errorf("ListChannels called %d times, want 0", lister.calls)
	}
}

func TestResolve_MissingName(t *testing.T) {
	path := writeCache(t, `{"general": "C123", "team-general": "C9", "random": "C7"}`)
	lister := &stubLister{}
	dir := NewDirectory(path, lister, nil)

	_, err := dir.Resolve(context.Background(), "missing", false)
	if !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrChannelNotFound", err)
	}
	if lister.calls != 0 {
		t.Errorf("a miss must not trigger a refill, ListChannels called %d times", lister.calls)
	}

	_, err = dir.Resolve(context.Background(), "GENERAL", false)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Resolve() error = %v, want *NotFoundError", err)
	}
	if nf.Name != "GENERAL" {
		t.Errorf("NotFoundError.Name = %q, want GENERAL", nf.Name)
	}
	if want := []string{"general", "team-general"}; !reflect.DeepEqual(nf.Suggestions, want) {
		t.Errorf("Suggestions = %v, want %v", nf.Suggestions, want)
	}
}

func TestResolve_NoCacheRefills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "channels.json")
	lister := &stubLister{channels: []slack.Channel{
		{ID: "1", Name: "a"},
		{ID: "2", Name: "b"},
	}}
	dir := NewDirectory(path, lister, nil)

	id, err := dir.Resolve(context.Background(), "b", false)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if id != "2" {
		t.Errorf("Resolve() = %q, want 2", id)
	}

	cached, ok, err := NewCache(path).Load()
	if err != nil || !ok {
		t.Fatalf("cache not written: ok=%v err=%v", ok, err)
	}
	if want := map[string]string{"a": "1", "b": "2"}; !reflect.DeepEqual(cached, want) {
		t.Errorf("cache = %v, want %v", cached, want)
	}

	// Second lookup is served from the cache.
	if _, err := dir.Resolve(context.Background(), "a", false); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if lister.calls != 1 {
		t.Errorf("ListChannels called %d times, want 1", lister.calls)
	}
}

func TestResolve_ForceRefillReplacesCache(t *testing.T) {
	path := writeCache(t, `{"stale": "C0"}`)
	lister := &stubLister{channels: []slack.Channel{{ID: "C1", Name: "fresh"}}}
	dir := NewDirectory(path, lister, nil)

	id, err := dir.Resolve(context.Background(), "fresh", true)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if id != "C1" {
		t.Errorf("Resolve() = %q, want C1", id)
	}
	if lister.calls != 1 {
		t.Errorf("ListChannels called %d times, want 1", lister.calls)
	}

	cached, _, _ := NewCache(path).Load()
	if _, ok := cached["stale"]; ok {
		t.Error("refill should overwrite previous cache contents")
	}
}

func TestRefill_ListerError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.json")
	wantErr := errors.New("boom")
	dir := NewDirectory(path, &stubLister{err: wantErr}, nil)

	if _, err := dir.Refill(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("Refill() error = %v, want %v", err, wantErr)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cache must not be written when listing fails")
	}
}

func TestEntries_CorruptCache(t *testing.T) {
	path := writeCache(t, `not json`)
	dir := NewDirectory(path, &stubLister{}, nil)

	if _, err := dir.Entries(context.Background(), false); err == nil {
		t.Error("Entries() expected error for corrupt cache")
	}
}

func TestSuggest_Cap(t *testing.T) {
	entries := map[string]string{}
	for _, n := range []string{"ops-a", "ops-b", "ops-c", "ops-d", "ops-e", "ops-f"} {
		entries[n] = "C"
	}
	got := Suggest(entries, "ops")
	if len(got) != maxSuggestions {
		t.Fatalf("Suggest() returned %d names, want %d", len(got), maxSuggestions)
	}
	if got[0] != "ops-a" {
		t.Errorf("Suggest()[0] = %q, want ops-a", got[0])
	}
	if Suggest(entries, "") != nil {
		t.Error("Suggest(\"\") should be nil")
	}
}

func TestNotFoundError_Message(t *testing.T) {
	err := &NotFoundError{Name: "gen", Suggestions: []string{"general"}}
	want := `channel "gen" not found; did you mean general?`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestSorted(t *testing.T) {
	got := Sorted(map[string]string{"b": "2", "a": "1"})
	want := []slack.Channel{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %+v, want %+v", got, want)
	}
}

func TestRefill_PaginatedSlackListing(t *testing.T) {
	pages := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/conversations.list" {
			t.Errorf("unexpected request to %s", r.URL.Path)
			return
		}
		pages++
		w.Header().Set("Content-Type", "application/json")
		switch r.FormValue("cursor") {
		case "":
			_, _ = w.Write([]byte(`{"ok": true, "channels": [{"name": "a", "id": "1"}], "response_metadata": {"next_cursor": "X"}}`))
		case "X":
			_, _ = w.Write([]byte(`{"ok": true, "channels": [{"name": "b", "id": "2"}], "response_metadata": {}}`))
		}
	}))
	defer server.Close()

	client := slack.NewClient("xoxb-test", nil).WithAPIURL(server.URL)
	dir := NewDirectory(filepath.Join(t.TempDir(), "channels.json"), client, nil)

	entries, err := dir.Entries(context.Background(), true)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if want := map[string]string{"a": "1", "b": "2"}; !reflect.DeepEqual(entries, want) {
		t.Errorf("Entries() = %v, want %v", entries, want)
	}
	if pages != 2 {
		t.Errorf("fetched %d pages, want 2", pages)
	}
}
