package models

// VoteRequest identifies the election being voted in. CurrentVoterID is
// optional and, when sent, must match the authenticated voter.
type VoteRequest struct {
	SelectedElection string `json:"selectedElection" binding:"required"`
	CurrentVoterID   string `json:"currentVoterId"`
}
