package pubsub

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Op string

const (
	OpUpsert Op = "upsert"
	OpDelete Op = "delete"

	// OpReset is kind-wide: Key is empty and every
	// subscriber of the kind must re-read.
	OpReset Op = "reset"
)

// Event is a "changed(key)" notification. Payload carries the new
// record for upserts so other replicas can apply the change.
type Event struct {
	ID      uuid.UUID       `json:"id"`
	Kind    string          `json:"kind"`
	Key     string          `json:"key,omitempty"`
	Op      Op              `json:"op"`
	Origin  string          `json:"origin"`
	At      time.Time       `json:"at"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewEvent(kind string, key string, op Op, origin string) Event {
	return Event{
		ID:     uuid.New(),
		Kind:   kind,
		Key:    key,
		Op:     op,
		Origin: origin,
		At:     time.Now().UTC(),
	}
}
