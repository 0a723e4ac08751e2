package storage

import "time"

type Voter struct {
	ID             string    `dynamodbav:"PK"`
	FullName       string    `dynamodbav:"FullName"`
	Email          string    `dynamodbav:"Email"`
	Password       string    `dynamodbav:"Password"`
	IsAdmin        bool      `dynamodbav:"IsAdmin"`
	VotedElections []string  `dynamodbav:"VotedElections,stringset,omitempty"`
	CreatedAt      time.Time `dynamodbav:"CreatedAt"`
}

// VoterEmail reserves a lowercased email for exactly one voter.
type VoterEmail struct {
	Email   string `dynamodbav:"PK"`
	VoterID string `dynamodbav:"VoterID"`
}

type Election struct {
	ID          string    `dynamodbav:"PK"`
	Title       string    `dynamodbav:"Title"`
	Description string    `dynamodbav:"Description"`
	Thumbnail   string    `dynamodbav:"Thumbnail"`
	ThumbnailID string    `dynamodbav:"ThumbnailID"`
	Candidates  []string  `dynamodbav:"Candidates,stringset,omitempty"`
	Voters      []string  `dynamodbav:"Voters,stringset,omitempty"`
	CreatedAt   time.Time `dynamodbav:"CreatedAt"`
}

type Candidate struct {
	ID        string    `dynamodbav:"PK"`
	FullName  string    `dynamodbav:"FullName"`
	Motto     string    `dynamodbav:"Motto"`
	Image     string    `dynamodbav:"Image"`
	ImageID   string    `dynamodbav:"ImageID"`
	VoteCount int       `dynamodbav:"VoteCount"`
	Election  string    `dynamodbav:"Election"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

// ElectionUpdate carries the mutable election fields. Thumbnail fields are
// left untouched when Thumbnail is empty.
type ElectionUpdate struct {
	Title       string
	Description string
	Thumbnail   string
	ThumbnailID string
}
