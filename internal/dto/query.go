package dto

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	Category string `json:"category"`
	Response string `json:"response"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
