package engagement

import (
	"context"
	"time"

	"github.com/streamhive/backend/internal/faults"
	"github.com/streamhive/backend/internal/ids"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
	"github.com/streamhive/backend/internal/repositories"
)

// SubscriptionService toggles subscription edges between users.
type SubscriptionService struct {
	subs  repositories.SubscriptionRepository
	users repositories.UserRepository

	// Stats, when set, is invalidated for the channel after a toggle.
	Stats StatsInvalidator

	NewID func() string
	Now   func() time.Time
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(subs repositories.SubscriptionRepository, users repositories.UserRepository) *SubscriptionService {
	if subs == nil || users == nil {
		panic("engagement: subscription service requires subscription and user repositories")
	}
	return &SubscriptionService{
		subs:  subs,
		users: users,
		NewID: ids.New,
		Now:   utcNow,
	}
}

// Toggle flips the actor's subscription to the channel. Subscribing to
// oneself is rejected before any lookup.
func (s *SubscriptionService) Toggle(ctx context.Context, actorID, channelID string) (models.ToggleState, error) {
	if err := requireID("channel", channelID); err != nil {
		return "", err
	}
	if actorID == channelID {
		return "", faults.Conflict("cannot subscribe to your own channel")
	}
	if _, err := s.users.FindByID(ctx, channelID); err != nil {
		return "", storeFault("load channel", "channel", err)
	}

	removed, err := s.subs.DeleteIfPresent(ctx, actorID, channelID)
	if err != nil {
		return "", storeFault("remove subscription", "subscription", err)
	}
	if removed {
		s.invalidateStats(channelID)
		return models.ToggleRemoved, nil
	}

	if _, err := s.subs.CreateIfAbsent(ctx, models.Subscription{
		ID:           s.NewID(),
		SubscriberID: actorID,
		ChannelID:    channelID,
		CreatedAt:    s.Now(),
	}); err != nil {
		return "", storeFault("create subscription", "subscription", err)
	}
	s.invalidateStats(channelID)
	return models.ToggleCreated, nil
}

func (s *SubscriptionService) invalidateStats(channelID string) {
	if s.Stats != nil {
		s.Stats.Invalidate(channelID)
	}
}

// Subscribed reports whether the actor currently subscribes to the channel.
func (s *SubscriptionService) Subscribed(ctx context.Context, actorID, channelID string) (bool, error) {
	if err := requireID("channel", channelID); err != nil {
		return false, err
	}
	subscribed, err := s.subs.Exists(ctx, actorID, channelID)
	if err != nil {
		return false, storeFault("check subscription", "subscription", err)
	}
	return subscribed, nil
}

// Subscribers returns a page of the users subscribed to the channel.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID string, page pipeline.Page) ([]models.OwnerSummary, pipeline.Meta, error) {
	if err := requireID("channel", channelID); err != nil {
		return nil, pipeline.Meta{}, err
	}
	page = pipeline.NormalizePage(page)
	users, total, err := s.subs.Subscribers(ctx, pipeline.Subscribers(channelID), page)
	if err != nil {
		return nil, pipeline.Meta{}, storeFault("list subscribers", "subscription", err)
	}
	return users, pipeline.NewMeta(total, page), nil
}

// Channels returns a page of the channels the user subscribes to.
func (s *SubscriptionService) Channels(ctx context.Context, subscriberID string, page pipeline.Page) ([]models.OwnerSummary, pipeline.Meta, error) {
	if err := requireID("subscriber", subscriberID); err != nil {
		return nil, pipeline.Meta{}, err
	}
	page = pipeline.NormalizePage(page)
	users, total, err := s.subs.Channels(ctx, pipeline.SubscribedChannels(subscriberID), page)
	if err != nil {
		return nil, pipeline.Meta{}, storeFault("list channels", "subscription", err)
	}
	return users, pipeline.NewMeta(total, page), nil
}
