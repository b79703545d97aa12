package events

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/akfactory/planning/pkg/domain/entities"
	"github.com/akfactory/planning/pkg/planning"
)

// AuditLog is an in-memory, append-only record of applied ledger
// transitions, streamed per item. It implements the ledger's
// TransitionRecorder so every committed transition lands here with its
// delta and the resulting counters.
type AuditLog struct {
	mu      sync.RWMutex
	streams map[entities.ItemCode][]planning.TransitionEvent
	all     []planning.TransitionEvent
	log     zerolog.Logger
}

// NewAuditLog creates an empty audit log
func NewAuditLog(log zerolog.Logger) *AuditLog {
	return &AuditLog{
		streams: make(map[entities.ItemCode][]planning.TransitionEvent),
		log:     log,
	}
}

// Verify interface compliance
var _ planning.TransitionRecorder = (*AuditLog)(nil)

// RecordTransition appends an applied transition to the item's stream
func (a *AuditLog) RecordTransition(event planning.TransitionEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.streams[event.Item] = append(a.streams[event.Item], event)
	a.all = append(a.all, event)

	a.log.Debug().
		Str("event_id", event.ID.String()).
		Str("item", string(event.Item)).
		Str("kind", event.Kind.String()).
		Msg("transition recorded")
}

// ItemHistory returns the item's transitions in application order
func (a *AuditLog) ItemHistory(item entities.ItemCode) []planning.TransitionEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()

	history := make([]planning.TransitionEvent, len(a.streams[item]))
	copy(history, a.streams[item])
	return history
}

// AllEvents returns every recorded transition in application order
func (a *AuditLog) AllEvents() []planning.TransitionEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()

	all := make([]planning.TransitionEvent, len(a.all))
	copy(all, a.all)
	return all
}

// Len returns the number of recorded transitions
func (a *AuditLog) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.all)
}
