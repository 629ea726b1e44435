package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record kinds carried on the sync queue.
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// RecordSyncMessage asks the worker to push one locally saved row to the
// hosted table store.
type RecordSyncMessage struct {
	Kind       string    `json:"kind"`
	ID         int64     `json:"id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

func NewRecordSyncMessage(kind string, id int64) *RecordSyncMessage {
	return &RecordSyncMessage{
		Kind:       kind,
		ID:         id,
		EnqueuedAt: time.Now().UTC(),
	}
}

func (m *RecordSyncMessage) Validate() error {
	if m.Kind != KindIncome && m.Kind != KindExpense {
		return fmt.Errorf("unknown record kind: %q", m.Kind)
	}
	if m.ID <= 0 {
		return fmt.Errorf("invalid record id: %d", m.ID)
	}
	return nil
}

func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordSyncMessageFromJSON(b []byte) (*RecordSyncMessage, error) {
	var m RecordSyncMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal sync message: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
