package storage

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/miracool-ctrl/backend-voteapp/logging"
)

type CandidateStorage interface {
	Get(ctx context.Context, id string) (*Candidate, error)
	GetByElection(ctx context.Context, electionID string) ([]*Candidate, error)
	// Create stores the candidate and attaches it to its election atomically.
	Create(ctx context.Context, candidate *Candidate) error
	// Delete detaches the candidate from its election and deletes it atomically.
	Delete(ctx context.Context, candidate *Candidate) error
}

// DynamoCandidateStorage expects a global secondary index named
// ElectionIndex with partition key Election and an ALL projection.
type DynamoCandidateStorage struct {
	Client             *dynamodb.Client
	TableName          string
	ElectionsTableName string
	ElectionIndex      string
}

func (s *DynamoCandidateStorage) Get(ctx context.Context, id string) (*Candidate, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            keyOf(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("CANDIDATE: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var candidate Candidate
	if err := attributevalue.UnmarshalMap(out.Item, &candidate); err != nil {
		logging.Log.Errorf("CANDIDATE: failed to unmarshal candidate: %v", err)
		return nil, err
	}
	return &candidate, nil
}

func (s *DynamoCandidateStorage) GetByElection(ctx context.Context, electionID string) ([]*Candidate, error) {
	return queryCandidatesByElection(ctx, s.Client, s.TableName, s.ElectionIndex, electionID)
}

func (s *DynamoCandidateStorage) Create(ctx context.Context, candidate *Candidate) error {
	item, err := attributevalue.MarshalMap(candidate)
	if err != nil {
		logging.Log.Errorf("CANDIDATE: failed to marshal candidate: %v", err)
		return err
	}

	err = transactWrite(ctx, s.Client, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           &s.TableName,
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
			{Update: &types.Update{
				TableName:           &s.ElectionsTableName,
				Key:                 keyOf(candidate.Election),
				UpdateExpression:    aws.String("ADD Candidates :candidate"),
				ConditionExpression: aws.String("attribute_exists(PK)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":candidate": &types.AttributeValueMemberSS{Value: []string{candidate.ID}},
				},
			}},
		},
	})
	if err != nil {
		reasons := cancellationReasons(err)
		switch {
		case conditionFailedAt(reasons, 1):
			logging.Log.Warnf("CANDIDATE: election %s not found while attaching %s", candidate.Election, candidate.ID)
			return ErrNotFound
		case conditionFailedAt(reasons, 0):
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("CANDIDATE: failed to create candidate: %v", err)
		return err
	}
	return nil
}

func (s *DynamoCandidateStorage) Delete(ctx context.Context, candidate *Candidate) error {
	err := transactWrite(ctx, s.Client, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:           &s.ElectionsTableName,
				Key:                 keyOf(candidate.Election),
				UpdateExpression:    aws.String("DELETE Candidates :candidate"),
				ConditionExpression: aws.String("attribute_exists(PK)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":candidate": &types.AttributeValueMemberSS{Value: []string{candidate.ID}},
				},
			}},
			{Delete: &types.Delete{
				TableName:           &s.TableName,
				Key:                 keyOf(candidate.ID),
				ConditionExpression: aws.String("attribute_exists(PK)"),
			}},
		},
	})
	if err == nil {
		logging.Log.Infof("CANDIDATE: deleted candidate %s from election %s", candidate.ID, candidate.Election)
		return nil
	}

	reasons := cancellationReasons(err)
	switch {
	case conditionFailedAt(reasons, 1):
		return ErrNotFound
	case conditionFailedAt(reasons, 0):
		// The owning election is already gone, there is nothing to detach from.
		logging.Log.Warnf("CANDIDATE: election %s missing, deleting candidate %s alone", candidate.Election, candidate.ID)
		return s.deleteDetached(ctx, candidate.ID)
	}
	logging.Log.Errorf("CANDIDATE: failed to delete candidate %s: %v", candidate.ID, err)
	return err
}

func (s *DynamoCandidateStorage) deleteDetached(ctx context.Context, id string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           &s.TableName,
		Key:                 keyOf(id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrNotFound
		}
		logging.Log.Errorf("CANDIDATE: failed to delete detached candidate %s: %v", id, err)
		return err
	}
	return nil
}

func queryCandidatesByElection(ctx context.Context, client *dynamodb.Client, tableName, indexName, electionID string) ([]*Candidate, error) {
	candidates := make([]*Candidate, 0)
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		out, err := client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &tableName,
			IndexName:              &indexName,
			KeyConditionExpression: aws.String("Election = :election"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":election": &types.AttributeValueMemberS{Value: electionID},
			},
			ExclusiveStartKey: lastEvaluatedKey,
		})
		if err != nil {
			logging.Log.Errorf("CANDIDATE: query by election %s failed: %v", electionID, err)
			return nil, err
		}

		var page []*Candidate
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			logging.Log.Errorf("CANDIDATE: failed to unmarshal candidates for election %s: %v", electionID, err)
			return nil, err
		}
		candidates = append(candidates, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}
	return candidates, nil
}
