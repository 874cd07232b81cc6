package poller

import (
	"context"
	"log"
	"time"

	"github.com/Santiii02/GoalStatsPro/internal/sportdata"
	"github.com/Santiii02/GoalStatsPro/internal/views"
	"github.com/Santiii02/GoalStatsPro/pkg/models"
)

// LiveSource is the slice of the data service the poller consumes.
type LiveSource interface {
	LiveMatchesResult(ctx context.Context) ([]models.Match, sportdata.Outcome)
}

// Broadcaster receives shaped live updates for fan-out.
type Broadcaster interface {
	Broadcast(update models.LiveUpdate)
	ClientCount() int
}

// Poller refreshes the live-match feed on a fixed interval and pushes
// shaped updates through the hub. The data service's live TTL decides
// how often a tick actually reaches the network.
type Poller struct {
	source   LiveSource
	hub      Broadcaster
	interval time.Duration
}

// New creates a live-score poller.
func New(source LiveSource, hub Broadcaster, interval time.Duration) *Poller {
	return &Poller{
		source:   source,
		hub:      hub,
		interval: interval,
	}
}

// Run starts the polling loop. It returns when ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	log.Printf("[poller] starting, interval %s", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[poller] stopping")
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// pollOnce performs one refresh cycle. Only genuinely fresh data is
// broadcast; cache hits and failed fetches produce no message.
func (p *Poller) pollOnce(ctx context.Context) {
	if p.hub.ClientCount() == 0 {
		return
	}

	matches, outcome := p.source.LiveMatchesResult(ctx)
	if outcome != sportdata.OutcomeFetched {
		log.Printf("[poller] no fresh data (outcome=%s)", outcome)
		return
	}

	shown, message := views.PrioritizeLive(matches)
	log.Printf("[poller] broadcasting %d live matches", len(shown))

	p.hub.Broadcast(models.LiveUpdate{
		Type:      models.MessageTypeLiveUpdate,
		Message:   message,
		Matches:   shown,
		UpdatedAt: time.Now().UTC(),
	})
}
