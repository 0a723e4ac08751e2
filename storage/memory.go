package storage

import (
	"context"
	"sort"
	"sync"
)

// memoryDB is an in-process stand-in for the DynamoDB tables, used for
// local runs (storage.Driver=memory) and tests. One mutex serializes every
// operation, which gives the same all-or-nothing guarantees as the
// transactional Dynamo paths.
type memoryDB struct {
	mu         sync.Mutex
	voters     map[string]*Voter
	emails     map[string]string
	elections  map[string]*Election
	candidates map[string]*Candidate
}

type MemoryVoterStorage struct{ db *memoryDB }
type MemoryElectionStorage struct{ db *memoryDB }
type MemoryCandidateStorage struct{ db *memoryDB }
type MemoryVoteStorage struct{ db *memoryDB }

func NewMemoryStorages() *Storages {
	db := &memoryDB{
		voters:     make(map[string]*Voter),
		emails:     make(map[string]string),
		elections:  make(map[string]*Election),
		candidates: make(map[string]*Candidate),
	}
	return &Storages{
		Voters:     &MemoryVoterStorage{db: db},
		Elections:  &MemoryElectionStorage{db: db},
		Candidates: &MemoryCandidateStorage{db: db},
		Votes:      &MemoryVoteStorage{db: db},
	}
}

func copyVoter(v *Voter) *Voter {
	c := *v
	c.VotedElections = append([]string(nil), v.VotedElections...)
	return &c
}

func copyElection(e *Election) *Election {
	c := *e
	c.Candidates = append([]string(nil), e.Candidates...)
	c.Voters = append([]string(nil), e.Voters...)
	return &c
}

func copyCandidate(c *Candidate) *Candidate {
	cp := *c
	return &cp
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

func without(set []string, value string) []string {
	out := make([]string, 0, len(set))
	for _, v := range set {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

func (s *MemoryVoterStorage) Get(_ context.Context, id string) (*Voter, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	v, ok := s.db.voters[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyVoter(v), nil
}

func (s *MemoryVoterStorage) GetByEmail(_ context.Context, email string) (*Voter, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id, ok := s.db.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	return copyVoter(s.db.voters[id]), nil
}

func (s *MemoryVoterStorage) GetMany(_ context.Context, ids []string) ([]*Voter, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	voters := make([]*Voter, 0, len(ids))
	for _, id := range ids {
		if v, ok := s.db.voters[id]; ok {
			voters = append(voters, copyVoter(v))
		}
	}
	return voters, nil
}

func (s *MemoryVoterStorage) Create(_ context.Context, voter *Voter) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.emails[voter.Email]; ok {
		return ErrEmailAlreadyRegistered
	}
	if _, ok := s.db.voters[voter.ID]; ok {
		return ErrItemWithIDAlreadyExists
	}
	s.db.voters[voter.ID] = copyVoter(voter)
	s.db.emails[voter.Email] = voter.ID
	return nil
}

func (s *MemoryVoterStorage) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	v, ok := s.db.voters[id]
	if !ok {
		return ErrNotFound
	}
	v.IsAdmin = isAdmin
	return nil
}

func (s *MemoryElectionStorage) Get(_ context.Context, id string) (*Election, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	e, ok := s.db.elections[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyElection(e), nil
}

func (s *MemoryElectionStorage) GetAll(_ context.Context) ([]*Election, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	elections := make([]*Election, 0, len(s.db.elections))
	for _, e := range s.db.elections {
		elections = append(elections, copyElection(e))
	}
	return elections, nil
}

func (s *MemoryElectionStorage) Create(_ context.Context, election *Election) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.elections[election.ID]; ok {
		return ErrItemWithIDAlreadyExists
	}
	s.db.elections[election.ID] = copyElection(election)
	return nil
}

func (s *MemoryElectionStorage) Update(_ context.Context, id string, update ElectionUpdate) (*Election, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	e, ok := s.db.elections[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.Title = update.Title
	e.Description = update.Description
	if update.Thumbnail != "" {
		e.Thumbnail = update.Thumbnail
		e.ThumbnailID = update.ThumbnailID
	}
	return copyElection(e), nil
}

func (s *MemoryElectionStorage) Delete(_ context.Context, id string) ([]*Candidate, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.elections[id]; !ok {
		return nil, ErrNotFound
	}
	delete(s.db.elections, id)

	deleted := make([]*Candidate, 0)
	for cid, c := range s.db.candidates {
		if c.Election == id {
			deleted = append(deleted, copyCandidate(c))
			delete(s.db.candidates, cid)
		}
	}
	return deleted, nil
}

func (s *MemoryCandidateStorage) Get(_ context.Context, id string) (*Candidate, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.candidates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyCandidate(c), nil
}

func (s *MemoryCandidateStorage) GetByElection(_ context.Context, electionID string) ([]*Candidate, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	candidates := make([]*Candidate, 0)
	for _, c := range s.db.candidates {
		if c.Election == electionID {
			candidates = append(candidates, copyCandidate(c))
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})
	return candidates, nil
}

func (s *MemoryCandidateStorage) Create(_ context.Context, candidate *Candidate) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	e, ok := s.db.elections[candidate.Election]
	if !ok {
		return ErrNotFound
	}
	if _, ok := s.db.candidates[candidate.ID]; ok {
		return ErrItemWithIDAlreadyExists
	}
	s.db.candidates[candidate.ID] = copyCandidate(candidate)
	e.Candidates = append(e.Candidates, candidate.ID)
	return nil
}

func (s *MemoryCandidateStorage) Delete(_ context.Context, candidate *Candidate) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.candidates[candidate.ID]; !ok {
		return ErrNotFound
	}
	if e, ok := s.db.elections[candidate.Election]; ok {
		e.Candidates = without(e.Candidates, candidate.ID)
	}
	delete(s.db.candidates, candidate.ID)
	return nil
}

func (s *MemoryVoteStorage) CastVote(_ context.Context, voterID, candidateID, electionID string) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	voter, ok := s.db.voters[voterID]
	if !ok {
		return nil, ErrNotFound
	}
	if contains(voter.VotedElections, electionID) {
		return nil, ErrAlreadyVoted
	}
	candidate, ok := s.db.candidates[candidateID]
	if !ok {
		return nil, ErrNotFound
	}
	if candidate.Election != electionID {
		return nil, ErrCandidateNotInElection
	}
	election, ok := s.db.elections[electionID]
	if !ok {
		return nil, ErrNotFound
	}

	candidate.VoteCount++
	voter.VotedElections = append(voter.VotedElections, electionID)
	if !contains(election.Voters, voterID) {
		election.Voters = append(election.Voters, voterID)
	}
	return append([]string(nil), voter.VotedElections...), nil
}
