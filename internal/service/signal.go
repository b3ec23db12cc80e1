package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/vitrineapp/vitrine"
)

// SignalService fans mutation events out to live preview surfaces through
// redis pub/sub, one channel per store.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func storeChannel(storeID string) string {
	return "vitrine:store:" + storeID
}

func (s *SignalService) Publish(ctx context.Context, event vitrine.Event) error {
	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, storeChannel(event.StoreID), jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime pumps events for the store IDs received on input into output
// until the context is canceled. Each input message replaces the previous
// subscription set.
func (s *SignalService) Realtime(ctx context.Context, input chan []string, output chan vitrine.Event) {
	pubsub := s.rdb.Subscribe(ctx)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case storeIDs, ok := <-input:
			if !ok {
				return
			}
			if err := pubsub.Unsubscribe(ctx); err != nil {
				slog.ErrorContext(
					ctx, "Failed to reset subscriptions",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
			}
			channels := make([]string, 0, len(storeIDs))
			for _, id := range storeIDs {
				channels = append(channels, storeChannel(id))
			}
			if len(channels) == 0 {
				continue
			}
			if err := pubsub.Subscribe(ctx, channels...); err != nil {
				slog.ErrorContext(
					ctx, "Failed to subscribe",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
			}
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event vitrine.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.ErrorContext(
					ctx, "Malformed event payload",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
