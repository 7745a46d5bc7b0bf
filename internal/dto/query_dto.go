package dto

// PreviousMessage is one turn of earlier conversation, oldest first.
type PreviousMessage struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

type QueryRequest struct {
	Query            string            `json:"query" validate:"required"`
	TopK             int               `json:"top_k" validate:"omitempty,min=1,max=50"`
	PreviousMessages []PreviousMessage `json:"previous_messages"`
}

type QueryResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}
