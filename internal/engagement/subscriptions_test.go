package engagement

import (
	"context"
	"testing"

	"github.com/streamhive/backend/internal/faults"
	"github.com/streamhive/backend/internal/ids"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

func newSubscriptionFixture() (*SubscriptionService, *fakeSubscriptionRepo, *fakeUserRepo) {
	subs := newFakeSubscriptionRepo()
	users := newFakeUserRepo()
	svc := NewSubscriptionService(subs, users)
	return svc, subs, users
}

func TestSubscriptionServiceToggleCycle(t *testing.T) {
	svc, subs, users := newSubscriptionFixture()

	actor := ids.New()
	channel := ids.New()
	users.users[channel] = models.User{ID: channel}

	state, err := svc.Toggle(context.Background(), actor, channel)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if state != models.ToggleCreated {
		t.Fatalf("first toggle = %q, want created", state)
	}
	if len(subs.edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(subs.edges))
	}

	state, err = svc.Toggle(context.Background(), actor, channel)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if state != models.ToggleRemoved {
		t.Fatalf("second toggle = %q, want removed", state)
	}
	if len(subs.edges) != 0 {
		t.Fatalf("edge count = %d, want 0", len(subs.edges))
	}
}

func TestSubscriptionServiceToggleSelf(t *testing.T) {
	svc, _, users := newSubscriptionFixture()

	actor := ids.New()
	users.users[actor] = models.User{ID: actor}

	_, err := svc.Toggle(context.Background(), actor, actor)
	if !faults.Is(err, faults.KindConflict) {
		t.Fatalf("expected conflict fault for self-subscription, got %v", err)
	}
}

func TestSubscriptionServiceToggleMissingChannel(t *testing.T) {
	svc, _, _ := newSubscriptionFixture()

	_, err := svc.Toggle(context.Background(), ids.New(), ids.New())
	if !faults.Is(err, faults.KindNotFound) {
		t.Fatalf("expected not found fault, got %v", err)
	}
}

func TestSubscriptionServiceListings(t *testing.T) {
	svc, subs, users := newSubscriptionFixture()

	channel := ids.New()
	users.users[channel] = models.User{ID: channel}

	var subscribers []string
	for i := 0; i < 3; i++ {
		sub := ids.New()
		subscribers = append(subscribers, sub)
		subs.users[sub] = models.OwnerSummary{ID: sub}
		subs.edges[subKey{sub, channel}] = models.Subscription{SubscriberID: sub, ChannelID: channel}
	}
	subs.users[channel] = models.OwnerSummary{ID: channel}

	got, meta, err := svc.Subscribers(context.Background(), channel, pipeline.Page{})
	if err != nil {
		t.Fatalf("Subscribers returned error: %v", err)
	}
	if len(got) != 3 || meta.TotalCount != 3 {
		t.Fatalf("subscribers = %d, meta = %+v", len(got), meta)
	}

	channels, meta, err := svc.Channels(context.Background(), subscribers[0], pipeline.Page{})
	if err != nil {
		t.Fatalf("Channels returned error: %v", err)
	}
	if len(channels) != 1 || channels[0].ID != channel {
		t.Fatalf("channels = %+v", channels)
	}
	if meta.TotalCount != 1 {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestSubscriptionServiceToggleInvalidatesChannelStats(t *testing.T) {
	svc, _, users := newSubscriptionFixture()
	recorder := &recordingInvalidator{}
	svc.Stats = recorder

	actor := ids.New()
	channel := ids.New()
	users.users[channel] = models.User{ID: channel}

	if _, err := svc.Toggle(context.Background(), actor, channel); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if _, err := svc.Toggle(context.Background(), actor, channel); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if len(recorder.owners) != 2 || recorder.owners[0] != channel || recorder.owners[1] != channel {
		t.Fatalf("invalidated channels = %v, want [%s %s]", recorder.owners, channel, channel)
	}
}
