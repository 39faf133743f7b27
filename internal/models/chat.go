package models

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message            string `json:"message"`
	IsFirstUserMessage bool   `json:"isFirstUserMessage"`
	ChatID             string `json:"chatId"`
}

// ChatResponse is the composed reply. NewTitle is only set for the first
// user message of a conversation and serialises as null otherwise.
type ChatResponse struct {
	ResponseText string   `json:"responseText"`
	Citations    []string `json:"citations"`
	NewTitle     *string  `json:"newTitle"`
	ChatID       string   `json:"chatId"`
}
