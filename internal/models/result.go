package models

// QueryResult is the outcome of one pipeline pass. It lives for a single
// request/response exchange and is never persisted.
type QueryResult struct {
	Category Category `json:"category"`
	Response string   `json:"response"`
}
