package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/miracool-ctrl/backend-voteapp/logging"
)

const (
	maxTransactRetries = 3
	maxTransactItems   = 100
	transactBackoff    = 50 * time.Millisecond

	reasonConditionalCheckFailed = "ConditionalCheckFailed"
	reasonTransactionConflict    = "TransactionConflict"
)

func keyOf(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: id},
	}
}

// cancellationReasons returns one reason per transaction item, in request
// order, or nil when err is not a cancelled transaction.
func cancellationReasons(err error) []types.CancellationReason {
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		return tce.CancellationReasons
	}
	return nil
}

func conditionFailedAt(reasons []types.CancellationReason, i int) bool {
	return i < len(reasons) && aws.ToString(reasons[i].Code) == reasonConditionalCheckFailed
}

// itemExistedAt reports whether the item behind a failed condition was
// present. Requires ReturnValuesOnConditionCheckFailure=ALL_OLD.
func itemExistedAt(reasons []types.CancellationReason, i int) bool {
	return i < len(reasons) && len(reasons[i].Item) > 0
}

func hasConflict(reasons []types.CancellationReason) bool {
	for _, r := range reasons {
		if aws.ToString(r.Code) == reasonTransactionConflict {
			return true
		}
	}
	return false
}

// transactWrite runs TransactWriteItems and retries when DynamoDB cancels it
// because another transaction touched the same items. Condition failures are
// returned untouched so callers can inspect the cancellation reasons.
func transactWrite(ctx context.Context, client *dynamodb.Client, input *dynamodb.TransactWriteItemsInput) error {
	for attempt := 0; ; attempt++ {
		_, err := client.TransactWriteItems(ctx, input)
		if err == nil {
			return nil
		}

		reasons := cancellationReasons(err)
		if !hasConflict(reasons) {
			return err
		}
		if attempt >= maxTransactRetries {
			logging.Log.Warnf("TRANSACTION: conflict persisted after %d retries", attempt)
			return fmt.Errorf("%w: %v", ErrTransactionConflict, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(transactBackoff * time.Duration(attempt+1)):
		}
	}
}

// batchDelete removes items by primary key, 25 per request, resubmitting
// whatever DynamoDB reports as unprocessed.
func batchDelete(ctx context.Context, client *dynamodb.Client, tableName string, ids []string) error {
	var writeRequests []types.WriteRequest
	for _, id := range ids {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: keyOf(id)},
		})
	}

	for i := 0; i < len(writeRequests); i += 25 {
		end := i + 25
		if end > len(writeRequests) {
			end = len(writeRequests)
		}

		pending := map[string][]types.WriteRequest{tableName: writeRequests[i:end]}
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt > maxTransactRetries {
				return fmt.Errorf("batch delete on %s left %d unprocessed items", tableName, len(pending[tableName]))
			}
			out, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return err
			}
			pending = out.UnprocessedItems
		}
		logging.Log.Infof("BATCH: deleted %d items from %s", end-i, tableName)
	}
	return nil
}
