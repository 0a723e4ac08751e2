package storage

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElectionDeleteCondition(t *testing.T) {
	condition, values := electionDeleteCondition(&Election{ID: "e1"})
	assert.Equal(t, "attribute_exists(PK) AND attribute_not_exists(Candidates)", *condition)
	assert.Nil(t, values)

	condition, values = electionDeleteCondition(&Election{ID: "e1", Candidates: []string{"c1", "c2"}})
	assert.Equal(t, "attribute_exists(PK) AND Candidates = :candidates", *condition)
	require.Contains(t, values, ":candidates")
	assert.Equal(t, &types.AttributeValueMemberSS{Value: []string{"c1", "c2"}}, values[":candidates"])
}
