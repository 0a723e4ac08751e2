package models

import (
	"time"

	"github.com/miracool-ctrl/backend-voteapp/storage"
)

type RegisterVoterRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"password2" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token          string   `json:"token"`
	ID             string   `json:"id"`
	VotedElections []string `json:"votedElections"`
	IsAdmin        bool     `json:"isAdmin"`
}

// VoterResponse never carries the password hash.
type VoterResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	IsAdmin        bool      `json:"isAdmin"`
	VotedElections []string  `json:"votedElections"`
	CreatedAt      time.Time `json:"createdAt"`
}

func TransformVoterFromStorage(v *storage.Voter) VoterResponse {
	return VoterResponse{
		ID:             v.ID,
		FullName:       v.FullName,
		Email:          v.Email,
		IsAdmin:        v.IsAdmin,
		VotedElections: nonNil(v.VotedElections),
		CreatedAt:      v.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
