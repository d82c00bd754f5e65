package dto

import "time"

type UploadResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Status    string    `json:"status"`
	Size      int64     `json:"size"`
	Badges    []string  `json:"badges"`
	CreatedAt time.Time `json:"created_at"`
}

type BadgeResultResponse struct {
	Type   string `json:"type"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type StatusResponse struct {
	ID      string                `json:"id"`
	Status  string                `json:"status"`
	Results []BadgeResultResponse `json:"results,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
