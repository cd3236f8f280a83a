package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event kinds held by the outbox.
const (
	KindCompletion = "completion"
	KindDigest     = "digest"
)

// Item is an event that could not be delivered and waits for the next drain.
type Item struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

// NewItem marshals payload into an outbox item of the given kind.
func NewItem(kind string, payload interface{}) (Item, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Item{}, err
	}
	return Item{Kind: kind, Payload: raw}, nil
}

func (i *Item) normalize(now time.Time) {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = now
	}
}
