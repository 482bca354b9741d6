package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Placeholder shown for any field the gateway did not provide.
const Placeholder = "-"

// CollectRefKind discriminates the shapes the gateway uses for collect_id.
type CollectRefKind int

const (
	CollectRefNone CollectRefKind = iota
	CollectRefString
	CollectRefObject
)

// CollectRef ties a transaction to a payment-collection request. The gateway
// sends it either as a bare identifier string or as an expanded object
// carrying a nested school identifier.
type CollectRef struct {
	Kind     CollectRefKind
	ID       string
	SchoolID string
}

// UnmarshalJSON never fails: unrecognized shapes decode to CollectRefNone so
// one odd record cannot take down the whole list.
func (c *CollectRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = CollectRef{Kind: CollectRefString, ID: s}
		return nil
	}

	var obj struct {
		ID       string `json:"_id"`
		SchoolID string `json:"school_id"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && string(data) != "null" {
		*c = CollectRef{Kind: CollectRefObject, ID: obj.ID, SchoolID: obj.SchoolID}
		return nil
	}

	*c = CollectRef{Kind: CollectRefNone}
	return nil
}

// DisplayID returns the collect identifier for the table cell.
func (c CollectRef) DisplayID() string {
	if c.Kind == CollectRefNone || c.ID == "" {
		return Placeholder
	}
	return c.ID
}

// DisplaySchoolID returns the school identifier for the table cell. Only the
// expanded object shape carries one.
func (c CollectRef) DisplaySchoolID() string {
	if c.Kind == CollectRefObject && c.SchoolID != "" {
		return c.SchoolID
	}
	return Placeholder
}

// Transaction is a remote-owned record; the dashboard never mutates it.
type Transaction struct {
	ID            string      `json:"_id"`
	CollectRef    CollectRef  `json:"collect_id"`
	OrderAmount   json.Number `json:"order_amount"`
	Status        string      `json:"status"`
	CustomOrderID string      `json:"custom_order_id"`
	PaymentTime   string      `json:"payment_time"`
	CreatedAt     string      `json:"createdAt"`
}

// StatusBucket classifies a status string case-insensitively into
// success/pending/other. Presentation only, nothing branches on it.
func StatusBucket(status string) string {
	switch strings.ToLower(status) {
	case "success":
		return "success"
	case "pending":
		return "pending"
	default:
		return "other"
	}
}

// Layouts the gateway has been observed to use for timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DisplayTime prefers payment time, falls back to creation time, then to a
// placeholder. A non-empty value that fits no known layout is shown verbatim.
func (t Transaction) DisplayTime() string {
	for _, raw := range []string{t.PaymentTime, t.CreatedAt} {
		if raw == "" {
			continue
		}
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts.Format("Jan 2, 2006 3:04 PM")
			}
		}
		return raw
	}
	return Placeholder
}
