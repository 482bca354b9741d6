package models

import (
	"bytes"
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultPageSize is the fixed page size of the transaction table.
	DefaultPageSize = 5
	DefaultSort     = "payment_time"
	DefaultOrder    = "desc"

	sortRule  = "oneof=payment_time status order_amount"
	orderRule = "oneof=asc desc"
)

var validate = validator.New()

// PageRequest carries the ephemeral query for one transaction-list fetch.
// It is never persisted.
type PageRequest struct {
	Page  int    `validate:"min=1"`
	Limit int    `validate:"min=1"`
	Sort  string `validate:"oneof=payment_time status order_amount"`
	Order string `validate:"oneof=asc desc"`
}

// DefaultPageRequest is the view's initial state: newest payments first.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: 1, Limit: DefaultPageSize, Sort: DefaultSort, Order: DefaultOrder}
}

// Normalize replaces each invalid field with its default, field by field, so
// a bad sort value does not reset the page the user is on.
func (r PageRequest) Normalize() PageRequest {
	if err := validate.Struct(r); err == nil {
		return r
	}

	out := DefaultPageRequest()
	if r.Page >= 1 {
		out.Page = r.Page
	}
	if r.Limit >= 1 {
		out.Limit = r.Limit
	}
	if validate.Var(r.Sort, sortRule) == nil {
		out.Sort = r.Sort
	}
	if validate.Var(r.Order, orderRule) == nil {
		out.Order = r.Order
	}
	return out
}

// TransactionPage is the displayed result of one fetch, regenerated on every
// request. TotalPages is only as fresh as the fetch that produced it.
type TransactionPage struct {
	Transactions []Transaction
	TotalPages   int
}

// The gateway's list endpoint is not guaranteed a uniform envelope; these are
// the shapes it has been observed to return.
type listEnvelopeKind int

const (
	envelopeBare    listEnvelopeKind = iota // raw JSON array of transactions
	envelopeWrapped                         // {"data": [...], "totalPages": N}
	envelopeUnknown                         // anything else
)

type listEnvelope struct {
	kind       listEnvelopeKind
	items      []Transaction
	totalPages int
}

func decodeListEnvelope(data []byte) listEnvelope {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Transaction
		if err := json.Unmarshal(trimmed, &items); err == nil {
			return listEnvelope{kind: envelopeBare, items: items}
		}
		return listEnvelope{kind: envelopeUnknown}
	}

	var wrapped struct {
		Data       json.RawMessage `json:"data"`
		TotalPages int             `json:"totalPages"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err == nil {
		inner := bytes.TrimSpace(wrapped.Data)
		if len(inner) > 0 && inner[0] == '[' {
			var items []Transaction
			if err := json.Unmarshal(inner, &items); err == nil {
				return listEnvelope{kind: envelopeWrapped, items: items, totalPages: wrapped.TotalPages}
			}
		}
	}

	return listEnvelope{kind: envelopeUnknown}
}

// UnmarshalTransactionPage decodes a transaction-list payload. A raw array is
// the full result set with a single page; a wrapped object contributes its
// own page count (defaulting to 1); any other shape yields an empty page.
func UnmarshalTransactionPage(data []byte) TransactionPage {
	switch env := decodeListEnvelope(data); env.kind {
	case envelopeBare:
		return TransactionPage{Transactions: env.items, TotalPages: 1}
	case envelopeWrapped:
		totalPages := env.totalPages
		if totalPages < 1 {
			totalPages = 1
		}
		return TransactionPage{Transactions: env.items, TotalPages: totalPages}
	default:
		return TransactionPage{Transactions: []Transaction{}, TotalPages: 1}
	}
}
