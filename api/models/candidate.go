package models

import (
	"time"

	"github.com/miracool-ctrl/backend-voteapp/storage"
)

type CandidateCreateRequest struct {
	FullName        string `form:"fullName" binding:"required"`
	Motto           string `form:"motto" binding:"required"`
	CurrentElection string `form:"currentElection" binding:"required"`
}

type CandidateResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Motto     string    `json:"motto"`
	Image     string    `json:"image"`
	VoteCount int       `json:"voteCount"`
	Election  string    `json:"election"`
	CreatedAt time.Time `json:"createdAt"`
}

type CandidateCreateResponse struct {
	Message   string            `json:"message"`
	Candidate CandidateResponse `json:"candidate"`
}

func TransformCandidateFromStorage(c *storage.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:        c.ID,
		FullName:  c.FullName,
		Motto:     c.Motto,
		Image:     c.Image,
		VoteCount: c.VoteCount,
		Election:  c.Election,
		CreatedAt: c.CreatedAt,
	}
}
