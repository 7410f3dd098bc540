package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ItemID identifies an item for its whole lifetime.
type ItemID string

// UnmarshalJSON accepts strings and, for lists written by the browser
// version of the app, numeric millisecond timestamps.
func (id *ItemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// Item is one checklist entry.
type Item struct {
	ID       ItemID `json:"id"`
	Text     string `json:"text"`
	Complete bool   `json:"complete"`
}
