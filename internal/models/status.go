package models

type StatusResponse struct {
	Status string `json:"Status"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
