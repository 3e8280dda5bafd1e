package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReminderFire asks the worker to fire reminder ID for the occurrence At.
type ReminderFire struct {
	ID int64     `json:"id"`
	At time.Time `json:"at"`
}

func (r *ReminderFire) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *ReminderFire) Unmarshal(data []byte) error {
	if err := json.Unmarshal(data, r); err != nil {
		return err
	}
	if r.ID <= 0 || r.At.IsZero() {
		return fmt.Errorf("incomplete reminder fire message: %s", string(data))
	}
	return nil
}
