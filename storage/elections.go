package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/miracool-ctrl/backend-voteapp/logging"
)

type ElectionStorage interface {
	Get(ctx context.Context, id string) (*Election, error)
	GetAll(ctx context.Context) ([]*Election, error)
	Create(ctx context.Context, election *Election) error
	Update(ctx context.Context, id string, update ElectionUpdate) (*Election, error)
	// Delete removes the election and every candidate that references it,
	// returning the deleted candidates.
	Delete(ctx context.Context, id string) ([]*Candidate, error)
}

type DynamoElectionStorage struct {
	Client                  *dynamodb.Client
	TableName               string
	CandidatesTableName     string
	CandidatesElectionIndex string
}

func (s *DynamoElectionStorage) Get(ctx context.Context, id string) (*Election, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            keyOf(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("ELECTION: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var election Election
	if err := attributevalue.UnmarshalMap(out.Item, &election); err != nil {
		logging.Log.Errorf("ELECTION: failed to unmarshal election: %v", err)
		return nil, err
	}
	return &election, nil
}

func (s *DynamoElectionStorage) GetAll(ctx context.Context) ([]*Election, error) {
	var elections []*Election
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         &s.TableName,
			ExclusiveStartKey: lastEvaluatedKey,
		})
		if err != nil {
			logging.Log.Errorf("ELECTION: scan failed: %v", err)
			return nil, err
		}

		var page []*Election
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			logging.Log.Errorf("ELECTION: failed to unmarshal election list: %v", err)
			return nil, err
		}
		elections = append(elections, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}
	return elections, nil
}

func (s *DynamoElectionStorage) Create(ctx context.Context, election *Election) error {
	item, err := attributevalue.MarshalMap(election)
	if err != nil {
		logging.Log.Errorf("ELECTION: failed to marshal election: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("ELECTION: item with ID %s already exists", election.ID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("ELECTION: failed to create election: %v", err)
		return err
	}
	return nil
}

// Update writes only the editable fields so candidate and voter sets that
// change concurrently are preserved.
func (s *DynamoElectionStorage) Update(ctx context.Context, id string, update ElectionUpdate) (*Election, error) {
	expression := "SET Title = :title, Description = :description"
	values := map[string]types.AttributeValue{
		":title":       &types.AttributeValueMemberS{Value: update.Title},
		":description": &types.AttributeValueMemberS{Value: update.Description},
	}
	if update.Thumbnail != "" {
		expression += ", Thumbnail = :thumbnail, ThumbnailID = :thumbnailID"
		values[":thumbnail"] = &types.AttributeValueMemberS{Value: update.Thumbnail}
		values[":thumbnailID"] = &types.AttributeValueMemberS{Value: update.ThumbnailID}
	}

	out, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &s.TableName,
		Key:                       keyOf(id),
		UpdateExpression:          aws.String(expression),
		ConditionExpression:       aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return nil, ErrNotFound
		}
		logging.Log.Errorf("ELECTION: failed to update election %s: %v", id, err)
		return nil, err
	}

	var election Election
	if err := attributevalue.UnmarshalMap(out.Attributes, &election); err != nil {
		logging.Log.Errorf("ELECTION: failed to unmarshal updated election: %v", err)
		return nil, err
	}
	return &election, nil
}

// Delete removes the candidates of an election and then the election.
// The election delete is conditional on its candidate set being unchanged
// since it was read, so a candidate attached meanwhile restarts the round
// instead of being orphaned. A failure leaves the election in place and
// Delete can be called again.
func (s *DynamoElectionStorage) Delete(ctx context.Context, id string) ([]*Candidate, error) {
	for attempt := 0; ; attempt++ {
		election, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		candidates, err := s.candidatesOf(ctx, election)
		if err != nil {
			return nil, err
		}

		err = s.deleteWithCandidates(ctx, election, candidates)
		if errors.Is(err, errElectionChanged) && attempt < maxTransactRetries {
			logging.Log.Warnf("ELECTION: candidates of %s changed during delete, retrying", id)
			continue
		}
		if errors.Is(err, errElectionChanged) {
			return nil, fmt.Errorf("%w: candidates of election %s kept changing", ErrTransactionConflict, id)
		}
		if err != nil {
			return nil, err
		}

		logging.Log.Infof("ELECTION: deleted election %s with %d candidates", id, len(candidates))
		return candidates, nil
	}
}

// candidatesOf merges the index query with the election's own candidate set.
// The index is eventually consistent and may miss a candidate attached a
// moment ago; the set may name a candidate whose row is already gone.
func (s *DynamoElectionStorage) candidatesOf(ctx context.Context, election *Election) ([]*Candidate, error) {
	candidates, err := queryCandidatesByElection(ctx, s.Client, s.CandidatesTableName, s.CandidatesElectionIndex, election.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		seen[c.ID] = true
	}
	for _, cid := range election.Candidates {
		if seen[cid] {
			continue
		}
		seen[cid] = true

		out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName:      &s.CandidatesTableName,
			Key:            keyOf(cid),
			ConsistentRead: aws.Bool(true),
		})
		if err != nil {
			logging.Log.Errorf("ELECTION: failed to read candidate %s of %s: %v", cid, election.ID, err)
			return nil, err
		}
		if out.Item == nil {
			continue
		}
		var candidate Candidate
		if err := attributevalue.UnmarshalMap(out.Item, &candidate); err != nil {
			return nil, err
		}
		candidates = append(candidates, &candidate)
	}
	return candidates, nil
}

// electionDeleteCondition holds the election delete to the candidate set
// that was read.
func electionDeleteCondition(election *Election) (*string, map[string]types.AttributeValue) {
	if len(election.Candidates) == 0 {
		return aws.String("attribute_exists(PK) AND attribute_not_exists(Candidates)"), nil
	}
	return aws.String("attribute_exists(PK) AND Candidates = :candidates"), map[string]types.AttributeValue{
		":candidates": &types.AttributeValueMemberSS{Value: election.Candidates},
	}
}

func (s *DynamoElectionStorage) deleteWithCandidates(ctx context.Context, election *Election, candidates []*Candidate) error {
	condition, values := electionDeleteCondition(election)

	if len(candidates) < maxTransactItems {
		items := make([]types.TransactWriteItem, 0, len(candidates)+1)
		for _, c := range candidates {
			items = append(items, types.TransactWriteItem{Delete: &types.Delete{
				TableName: &s.CandidatesTableName,
				Key:       keyOf(c.ID),
			}})
		}
		last := len(items)
		items = append(items, types.TransactWriteItem{Delete: &types.Delete{
			TableName:                           &s.TableName,
			Key:                                 keyOf(election.ID),
			ConditionExpression:                 condition,
			ExpressionAttributeValues:           values,
			ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
		}})

		err := transactWrite(ctx, s.Client, &dynamodb.TransactWriteItemsInput{TransactItems: items})
		if err == nil {
			return nil
		}
		reasons := cancellationReasons(err)
		if conditionFailedAt(reasons, last) {
			if itemExistedAt(reasons, last) {
				return errElectionChanged
			}
			return ErrNotFound
		}
		logging.Log.Errorf("ELECTION: delete transaction for %s failed: %v", election.ID, err)
		return err
	}

	// Too many for one transaction. Candidates go first so the election
	// survives any failure here and the delete can be retried.
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	if err := batchDelete(ctx, s.Client, s.CandidatesTableName, ids); err != nil {
		logging.Log.Errorf("ELECTION: cascade delete of candidates for %s failed: %v", election.ID, err)
		return err
	}

	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 &s.TableName,
		Key:                       keyOf(election.ID),
		ConditionExpression:       condition,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			if _, getErr := s.Get(ctx, election.ID); errors.Is(getErr, ErrNotFound) {
				return ErrNotFound
			}
			return errElectionChanged
		}
		logging.Log.Errorf("ELECTION: failed to delete election %s: %v", election.ID, err)
		return err
	}
	return nil
}
