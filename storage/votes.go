package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/miracool-ctrl/backend-voteapp/logging"
)

type VoteStorage interface {
	// CastVote records one vote and returns the voter's updated history.
	// A voter that already voted in the election gets ErrAlreadyVoted, even
	// when two calls race.
	CastVote(ctx context.Context, voterID, candidateID, electionID string) ([]string, error)
}

type DynamoVoteStorage struct {
	Client              *dynamodb.Client
	VoterStorage        *DynamoVoterStorage
	CandidatesTableName string
	ElectionsTableName  string
}

// Item order inside the vote transaction, used to read cancellation reasons.
const (
	voteItemCandidate = iota
	voteItemVoter
	voteItemElection
)

func (s *DynamoVoteStorage) CastVote(ctx context.Context, voterID, candidateID, electionID string) ([]string, error) {
	electionSet := &types.AttributeValueMemberSS{Value: []string{electionID}}
	allOld := types.ReturnValuesOnConditionCheckFailureAllOld

	err := transactWrite(ctx, s.Client, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			voteItemCandidate: {Update: &types.Update{
				TableName:           &s.CandidatesTableName,
				Key:                 keyOf(candidateID),
				UpdateExpression:    aws.String("ADD VoteCount :one"),
				ConditionExpression: aws.String("attribute_exists(PK) AND Election = :election"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":one":      &types.AttributeValueMemberN{Value: "1"},
					":election": &types.AttributeValueMemberS{Value: electionID},
				},
				ReturnValuesOnConditionCheckFailure: allOld,
			}},
			voteItemVoter: {Update: &types.Update{
				TableName:           &s.VoterStorage.TableName,
				Key:                 keyOf(voterID),
				UpdateExpression:    aws.String("ADD VotedElections :elections"),
				ConditionExpression: aws.String("attribute_exists(PK) AND NOT contains(VotedElections, :election)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":elections": electionSet,
					":election":  &types.AttributeValueMemberS{Value: electionID},
				},
				ReturnValuesOnConditionCheckFailure: allOld,
			}},
			voteItemElection: {Update: &types.Update{
				TableName:           &s.ElectionsTableName,
				Key:                 keyOf(electionID),
				UpdateExpression:    aws.String("ADD Voters :voters"),
				ConditionExpression: aws.String("attribute_exists(PK)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":voters": &types.AttributeValueMemberSS{Value: []string{voterID}},
				},
			}},
		},
	})
	if err != nil {
		reasons := cancellationReasons(err)
		switch {
		case conditionFailedAt(reasons, voteItemVoter) && itemExistedAt(reasons, voteItemVoter):
			logging.Log.Warnf("VOTE: voter %s already voted in election %s", voterID, electionID)
			return nil, ErrAlreadyVoted
		case conditionFailedAt(reasons, voteItemCandidate) && itemExistedAt(reasons, voteItemCandidate):
			return nil, ErrCandidateNotInElection
		case conditionFailedAt(reasons, voteItemCandidate),
			conditionFailedAt(reasons, voteItemVoter),
			conditionFailedAt(reasons, voteItemElection):
			return nil, ErrNotFound
		}
		logging.Log.Errorf("VOTE: transaction failed for voter %s: %v", voterID, err)
		return nil, err
	}

	voter, err := s.VoterStorage.Get(ctx, voterID)
	if err != nil {
		return nil, err
	}
	logging.Log.Infof("VOTE: voter %s voted for candidate %s in election %s", voterID, candidateID, electionID)
	return voter.VotedElections, nil
}
