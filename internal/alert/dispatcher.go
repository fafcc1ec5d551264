package alert

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/post"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/savedsearch"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/search"
)

// SearchSource provides the saved searches to replay against a new post.
type SearchSource interface {
	ForAllUsers(ctx context.Context) ([]savedsearch.SavedSearch, error)
}

// Dispatcher replays every saved search against each freshly created
// post and alerts the owners of the ones that match. It implements the
// post service's Notifier.
type Dispatcher struct {
	hub      *Hub
	searches SearchSource
}

type Notification struct {
	Type            string    `json:"type"`
	SavedSearchID   string    `json:"saved_search_id"`
	SavedSearchName string    `json:"saved_search_name"`
	Post            post.Post `json:"post"`
}

func NewDispatcher(hub *Hub, searches SearchSource) *Dispatcher {
	return &Dispatcher{hub: hub, searches: searches}
}

// PostCreated runs the matching on its own goroutine; post creation
// never waits for alert delivery.
func (d *Dispatcher) PostCreated(p post.Post) {
	go d.dispatch(p)
}

func (d *Dispatcher) dispatch(p post.Post) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	searches, err := d.searches.ForAllUsers(ctx)
	if err != nil {
		log.Printf("alert: load saved searches: %v", err)
		return
	}

	notified := map[string]bool{}
	for _, saved := range searches {
		if saved.UserID == p.UserID || notified[saved.UserID] {
			continue
		}
		if !search.Matches(p, saved.Filters.Replay()) {
			continue
		}

		payload, err := json.Marshal(Notification{
			Type:            "saved_search_match",
			SavedSearchID:   saved.ID,
			SavedSearchName: saved.Name,
			Post:            p,
		})
		if err != nil {
			continue
		}
		d.hub.Notify(saved.UserID, payload)
		notified[saved.UserID] = true
	}
}
