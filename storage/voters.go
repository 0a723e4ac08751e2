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

type VoterStorage interface {
	Get(ctx context.Context, id string) (*Voter, error)
	GetByEmail(ctx context.Context, email string) (*Voter, error)
	GetMany(ctx context.Context, ids []string) ([]*Voter, error)
	Create(ctx context.Context, voter *Voter) error
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
}

// DynamoVoterStorage keeps voters in TableName and the email reservations
// in EmailTableName. Both tables are keyed by a string PK.
type DynamoVoterStorage struct {
	Client         *dynamodb.Client
	TableName      string
	EmailTableName string
}

func (s *DynamoVoterStorage) Get(ctx context.Context, id string) (*Voter, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            keyOf(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("VOTER: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var voter Voter
	if err := attributevalue.UnmarshalMap(out.Item, &voter); err != nil {
		logging.Log.Errorf("VOTER: failed to unmarshal voter: %v", err)
		return nil, err
	}
	return &voter, nil
}

func (s *DynamoVoterStorage) GetByEmail(ctx context.Context, email string) (*Voter, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.EmailTableName,
		Key:            keyOf(email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("VOTER: email lookup failed: %v", err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var reservation VoterEmail
	if err := attributevalue.UnmarshalMap(out.Item, &reservation); err != nil {
		logging.Log.Errorf("VOTER: failed to unmarshal email reservation: %v", err)
		return nil, err
	}
	return s.Get(ctx, reservation.VoterID)
}

// GetMany returns the voters that exist among ids, in the order of ids.
func (s *DynamoVoterStorage) GetMany(ctx context.Context, ids []string) ([]*Voter, error) {
	found := make(map[string]*Voter, len(ids))

	for i := 0; i < len(ids); i += 100 {
		end := i + 100
		if end > len(ids) {
			end = len(ids)
		}

		keys := make([]map[string]types.AttributeValue, 0, end-i)
		for _, id := range ids[i:end] {
			keys = append(keys, keyOf(id))
		}

		pending := map[string]types.KeysAndAttributes{
			s.TableName: {Keys: keys, ConsistentRead: aws.Bool(true)},
		}
		for len(pending) > 0 {
			out, err := s.Client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: pending})
			if err != nil {
				logging.Log.Errorf("VOTER: BatchGetItem failed: %v", err)
				return nil, err
			}

			var voters []*Voter
			if err := attributevalue.UnmarshalListOfMaps(out.Responses[s.TableName], &voters); err != nil {
				logging.Log.Errorf("VOTER: failed to unmarshal voter batch: %v", err)
				return nil, err
			}
			for _, v := range voters {
				found[v.ID] = v
			}
			pending = out.UnprocessedKeys
		}
	}

	voters := make([]*Voter, 0, len(found))
	for _, id := range ids {
		if v, ok := found[id]; ok {
			voters = append(voters, v)
		}
	}
	return voters, nil
}

// Create stores the voter and reserves its email in one transaction.
func (s *DynamoVoterStorage) Create(ctx context.Context, voter *Voter) error {
	item, err := attributevalue.MarshalMap(voter)
	if err != nil {
		logging.Log.Errorf("VOTER: failed to marshal voter: %v", err)
		return err
	}
	reservation, err := attributevalue.MarshalMap(&VoterEmail{Email: voter.Email, VoterID: voter.ID})
	if err != nil {
		logging.Log.Errorf("VOTER: failed to marshal email reservation: %v", err)
		return err
	}

	err = transactWrite(ctx, s.Client, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           &s.TableName,
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
			{Put: &types.Put{
				TableName:           &s.EmailTableName,
				Item:                reservation,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
		},
	})
	if err != nil {
		reasons := cancellationReasons(err)
		switch {
		case conditionFailedAt(reasons, 1):
			logging.Log.Warnf("VOTER: email %s already registered", voter.Email)
			return ErrEmailAlreadyRegistered
		case conditionFailedAt(reasons, 0):
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("VOTER: failed to create voter: %v", err)
		return err
	}
	return nil
}

func (s *DynamoVoterStorage) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &s.TableName,
		Key:                 keyOf(id),
		UpdateExpression:    aws.String("SET IsAdmin = :val"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":val": &types.AttributeValueMemberBOOL{Value: isAdmin},
		},
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrNotFound
		}
		logging.Log.Errorf("VOTER: failed to set admin flag for %s: %v", id, err)
		return err
	}
	return nil
}
