package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"suplient/config"
	bookingRepo "suplient/database/repository/booking"
	integrationRepo "suplient/database/repository/integration"
	rosterRepo "suplient/database/repository/roster"
	"suplient/models"
	"suplient/utils"
)

const calendarFeedTimeout = 5 * time.Second

// DefaultIntegrationService implements Service over the integration records,
// the registered providers, and a short-lived Redis cache for the feed.
type DefaultIntegrationService struct {
	Bookings     bookingRepo.Repository
	Integrations integrationRepo.Repository
	Roster       rosterRepo.Repository
	Providers    map[string]Provider
	Cache        *redis.Client
}

func NewIntegrationService(
	bookings bookingRepo.Repository,
	integrations integrationRepo.Repository,
	roster rosterRepo.Repository,
	cache *redis.Client,
	providers ...Provider,
) *DefaultIntegrationService {
	byPlatform := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byPlatform[p.Platform()] = p
	}
	return &DefaultIntegrationService{
		Bookings:     bookings,
		Integrations: integrations,
		Roster:       roster,
		Providers:    byPlatform,
		Cache:        cache,
	}
}

// cachedFeed is the Redis representation of one feed lookup, including the
// negative "not connected" answer so disconnected coaches do not hammer Mongo.
type cachedFeed struct {
	Events    []models.CalendarEvent `json:"events"`
	Connected bool                   `json:"connected"`
}

// EventsAround returns the coach's external calendar events covering the local
// date plus a day on both sides, so midnight-crossing conversions never miss
// an entry. Results may be up to the configured cache TTL stale.
func (s *DefaultIntegrationService) EventsAround(ctx context.Context, coachID, localDate, zone string) ([]models.CalendarEvent, bool, error) {
	logger := utils.GetLogger()

	cacheKey := fmt.Sprintf("calendar_feed:%s:%s:%s", coachID, localDate, zone)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var feed cachedFeed
			if err := json.Unmarshal([]byte(raw), &feed); err == nil {
				return feed.Events, feed.Connected, nil
			}
		}
	}

	integ, err := s.Integrations.GetActive(ctx, coachID, models.PlatformGoogleCalendar)
	if err != nil {
		if err == integrationRepo.ErrNotConnected {
			// No connection is an answer, not an error.
			s.storeFeed(ctx, cacheKey, cachedFeed{Connected: false})
			return nil, false, nil
		}
		return nil, false, err
	}

	provider, ok := s.Providers[models.PlatformGoogleCalendar]
	if !ok {
		return nil, false, fmt.Errorf("no calendar provider registered")
	}

	from, to := feedWindow(localDate, zone)
	callCtx, cancel := context.WithTimeout(ctx, calendarFeedTimeout)
	defer cancel()
	events, err := provider.ListBusyEvents(callCtx, integ, from, to)
	if err != nil {
		if errors.Is(err, ErrTokenRejected) {
			s.deactivate(ctx, coachID, models.PlatformGoogleCalendar)
			s.storeFeed(ctx, cacheKey, cachedFeed{Connected: false})
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	s.storeFeed(ctx, cacheKey, cachedFeed{Events: events, Connected: true})
	logger.Debug("calendar feed fetched",
		zap.String("coachID", coachID), zap.String("date", localDate), zap.Int("events", len(events)))
	return events, true, nil
}

// deactivate marks the integration unusable after a token rejection, so the
// coach is asked to reconnect rather than every request replaying a dead token.
func (s *DefaultIntegrationService) deactivate(ctx context.Context, coachID, platform string) {
	utils.GetLogger().Warn("access token rejected, deactivating integration",
		zap.String("coachID", coachID), zap.String("platform", platform))
	if err := s.Integrations.Deactivate(ctx, coachID, platform); err != nil {
		utils.GetLogger().Error("failed to deactivate integration",
			zap.String("coachID", coachID), zap.String("platform", platform), zap.Error(err))
	}
}

func (s *DefaultIntegrationService) storeFeed(ctx context.Context, key string, feed cachedFeed) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(feed)
	if err != nil {
		return
	}
	ttl := time.Duration(config.AppConfig.CalendarCacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if err := s.Cache.Set(ctx, key, raw, ttl).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache calendar feed", zap.Error(err))
	}
}

// feedWindow maps a local calendar date to the absolute window that can
// contain its events: local midnight minus a day through local midnight plus
// two days. An unknown zone degrades to UTC.
func feedWindow(localDate, zone string) (time.Time, time.Time) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation(models.DateLayout, localDate, loc)
	if err != nil {
		day = time.Now().In(loc).Truncate(24 * time.Hour)
	}
	return day.AddDate(0, 0, -1).UTC(), day.AddDate(0, 0, 2).UTC()
}
