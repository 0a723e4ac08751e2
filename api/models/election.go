package models

import (
	"time"

	"github.com/miracool-ctrl/backend-voteapp/storage"
)

// ElectionRequest is bound from multipart form fields on create and from a
// form or JSON body on update. The thumbnail file is read separately.
type ElectionRequest struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description" binding:"required"`
}

type ElectionResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Candidates  []string  `json:"candidates"`
	Voters      []string  `json:"voters"`
	CreatedAt   time.Time `json:"createdAt"`
}

func TransformElectionFromStorage(e *storage.Election) ElectionResponse {
	return ElectionResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Thumbnail:   e.Thumbnail,
		Candidates:  nonNil(e.Candidates),
		Voters:      nonNil(e.Voters),
		CreatedAt:   e.CreatedAt,
	}
}
