// Package lookup loads the full record of every movie the user selects.
package lookup

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"moviecompare/internal/domain"
	"moviecompare/internal/eventbus"
)

// DetailFetcher fetches the full record of a title
type DetailFetcher interface {
	Details(ctx context.Context, imdbID string) (domain.MovieDetail, error)
}

// Service answers MovieSelected events with DetailsLoaded or Error events
type Service struct {
	bus         eventbus.EventBus
	fetcher     DetailFetcher
	timeout     time.Duration
	unsubscribe func()
}

// NewService creates the service and subscribes it to selections
func NewService(bus eventbus.EventBus, fetcher DetailFetcher, timeout time.Duration) *Service {
	s := &Service{
		bus:     bus,
		fetcher: fetcher,
		timeout: timeout,
	}

	s.unsubscribe = bus.Subscribe(eventbus.EventMovieSelected, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.MovieSelectedEvent); ok {
			s.Load(context.Background(), event)
		}
	})

	return s
}

// Load fetches the details for one selection and publishes the outcome
func (s *Service) Load(ctx context.Context, event domain.MovieSelectedEvent) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.Info("lookup: loading details", "side", event.Side, "imdbID", event.Movie.IMDbID, "title", event.Movie.Title)
	detail, err := s.fetcher.Details(ctx, event.Movie.IMDbID)
	if err != nil {
		log.Error("lookup: details failed", "side", event.Side, "imdbID", event.Movie.IMDbID, "err", err)
		s.bus.Publish(eventbus.ErrorEvent{
			Side:    event.Side,
			Seq:     event.Seq,
			Message: "Could not load " + event.Movie.Title,
			Err:     err,
		})
		return
	}

	s.bus.Publish(eventbus.DetailsLoadedEvent{
		Side:   event.Side,
		Seq:    event.Seq,
		Detail: detail,
	})
}

// Stop unsubscribes the service from the bus
func (s *Service) Stop() {
	s.unsubscribe()
}
