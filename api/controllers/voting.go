package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/miracool-ctrl/backend-voteapp/api/models"
	"github.com/miracool-ctrl/backend-voteapp/api/transport"
	"github.com/miracool-ctrl/backend-voteapp/logging"
	"github.com/miracool-ctrl/backend-voteapp/storage"
)

type VotingController struct {
	votes      storage.VoteStorage
	candidates storage.CandidateStorage
	voters     storage.VoterStorage
	elections  storage.ElectionStorage
}

func NewVotingController(votes storage.VoteStorage, candidates storage.CandidateStorage, voters storage.VoterStorage, elections storage.ElectionStorage) *VotingController {
	return &VotingController{
		votes:      votes,
		candidates: candidates,
		voters:     voters,
		elections:  elections,
	}
}

func (c *VotingController) RegisterRoutes(engine *gin.Engine, authenticate gin.HandlerFunc) {
	group := engine.Group("/api/candidates", authenticate)

	group.POST("/:id/vote", c.vote)
}

// vote godoc
// @Summary Vote for a candidate
// @Description Records one vote for the authenticated voter. A voter can vote once per election.
// @Tags voting
// @Accept json
// @Produce json
// @Security BearerToken
// @Param id path string true "Candidate ID"
// @Param vote body models.VoteRequest true "Election being voted in"
// @Success 200 {array} string "Elections the voter has voted in"
// @Failure 403 {object} models.ErrorResponse "Already voted"
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Write conflict, retry the vote"
// @Failure 422 {object} models.ErrorResponse "Candidate does not belong to the election"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/candidates/{id}/vote [post]
func (c *VotingController) vote(g *gin.Context) {
	var req models.VoteRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		respondError(g, bindErrorStatus(err), "selectedElection is required")
		return
	}

	voterID := g.GetString(transport.ContextVoterID)
	if req.CurrentVoterID != "" && req.CurrentVoterID != voterID {
		respondError(g, http.StatusForbidden, "You can only vote for yourself")
		return
	}

	ctx := g.Request.Context()
	candidateID := g.Param("id")

	candidate, err := c.candidates.Get(ctx, candidateID)
	if err != nil {
		c.respondLookupError(g, err, "Candidate not found")
		return
	}
	voter, err := c.voters.Get(ctx, voterID)
	if err != nil {
		c.respondLookupError(g, err, "Voter not found")
		return
	}
	if _, err := c.elections.Get(ctx, req.SelectedElection); err != nil {
		c.respondLookupError(g, err, "Election not found")
		return
	}
	if candidate.Election != req.SelectedElection {
		respondError(g, http.StatusUnprocessableEntity, "Candidate does not belong to this election")
		return
	}
	for _, e := range voter.VotedElections {
		if e == req.SelectedElection {
			respondError(g, http.StatusForbidden, "You have already voted in this election")
			return
		}
	}

	// The checks above give friendly errors; CastVote enforces the same
	// rules atomically for requests that race past them.
	history, err := c.votes.CastVote(ctx, voterID, candidateID, req.SelectedElection)
	switch {
	case errors.Is(err, storage.ErrAlreadyVoted):
		respondError(g, http.StatusForbidden, "You have already voted in this election")
		return
	case errors.Is(err, storage.ErrCandidateNotInElection):
		respondError(g, http.StatusUnprocessableEntity, "Candidate does not belong to this election")
		return
	case errors.Is(err, storage.ErrNotFound):
		respondError(g, http.StatusNotFound, "Candidate or election not found")
		return
	case errors.Is(err, storage.ErrTransactionConflict):
		logging.Log.Warnf("VOTE: vote by %s kept conflicting: %v", voterID, err)
		respondError(g, http.StatusConflict, "Too many votes at once, please try again")
		return
	case err != nil:
		logging.Log.Errorf("VOTE: failed to cast vote by %s: %v", voterID, err)
		respondError(g, http.StatusInternalServerError, "Failed to cast vote, please try again later.")
		return
	}

	logging.Log.Infof("VOTE: voter %s voted in election %s", voterID, req.SelectedElection)
	if history == nil {
		history = []string{}
	}
	g.JSON(http.StatusOK, history)
}

func (c *VotingController) respondLookupError(g *gin.Context, err error, notFound string) {
	if errors.Is(err, storage.ErrNotFound) {
		respondError(g, http.StatusNotFound, notFound)
		return
	}
	logging.Log.Errorf("VOTE: lookup failed: %v", err)
	respondError(g, http.StatusInternalServerError, "Failed to cast vote, please try again later.")
}
