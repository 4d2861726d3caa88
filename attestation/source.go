package attestation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nbd-wtf/go-nostr"
)

// matches reports whether an event passes the filter: attestation kind,
// tagged with the topic, authored by one of the wanted identities.
func matches(event nostr.Event, filter Filter) bool {
	if event.Kind != EventKind {
		return false
	}
	if event.Tags.GetFirst([]string{"t", filter.Topic}) == nil {
		return false
	}
	for _, author := range filter.Authors {
		if event.PubKey == author {
			return true
		}
	}
	return false
}

// StaticSource serves a fixed set of events. It is meant for tests.
type StaticSource []nostr.Event

var _ Source = StaticSource(nil)

func (s StaticSource) Query(ctx context.Context, filter Filter) ([]nostr.Event, error) {
	var events []nostr.Event
	for _, event := range s {
		if matches(event, filter) {
			events = append(events, event)
		}
	}
	return events, nil
}

// FileSource serves signed events exported to a JSON file (an array of
// events), re-read on every query.
type FileSource struct {
	Path string
}

var _ Source = FileSource{}

func (s FileSource) Query(ctx context.Context, filter Filter) ([]nostr.Event, error) {
	bz, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read attestation file: %w", err)
	}
	var all []nostr.Event
	if err := json.Unmarshal(bz, &all); err != nil {
		return nil, fmt.Errorf("decode attestation file %s: %w", s.Path, err)
	}

	var events []nostr.Event
	for _, event := range all {
		if matches(event, filter) {
			events = append(events, event)
		}
	}
	return events, nil
}
