package models

type SubmitResponse struct {
	OK     bool   `json:"ok"`
	ID     string `json:"id"`
	Stored int    `json:"stored"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	OK      bool `json:"ok"`
	DB      bool `json:"db"`
	Storage bool `json:"storage"`
}
