package storage

import "github.com/aws/aws-sdk-go-v2/service/dynamodb"

// Storages bundles every store the controllers need, backed by one driver.
type Storages struct {
	Voters     VoterStorage
	Elections  ElectionStorage
	Candidates CandidateStorage
	Votes      VoteStorage
}

type TableNames struct {
	Voters                  string
	VoterEmails             string
	Elections               string
	Candidates              string
	CandidatesElectionIndex string
}

func NewDynamoStorages(client *dynamodb.Client, tables TableNames) *Storages {
	voters := &DynamoVoterStorage{
		Client:         client,
		TableName:      tables.Voters,
		EmailTableName: tables.VoterEmails,
	}
	return &Storages{
		Voters: voters,
		Elections: &DynamoElectionStorage{
			Client:                  client,
			TableName:               tables.Elections,
			CandidatesTableName:     tables.Candidates,
			CandidatesElectionIndex: tables.CandidatesElectionIndex,
		},
		Candidates: &DynamoCandidateStorage{
			Client:             client,
			TableName:          tables.Candidates,
			ElectionsTableName: tables.Elections,
			ElectionIndex:      tables.CandidatesElectionIndex,
		},
		Votes: &DynamoVoteStorage{
			Client:              client,
			VoterStorage:        voters,
			CandidatesTableName: tables.Candidates,
			ElectionsTableName:  tables.Elections,
		},
	}
}
