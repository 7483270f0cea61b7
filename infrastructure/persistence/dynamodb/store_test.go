package dynamodb

import (
	"context"
	"testing"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fermentlog-backend/pkg/errors"
)

type mockClient struct {
	getItem    func(*awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error)
	putItem    func(*awsdynamodb.PutItemInput) (*awsdynamodb.PutItemOutput, error)
	updateItem func(*awsdynamodb.UpdateItemInput) (*awsdynamodb.UpdateItemOutput, error)
	deleteItem func(*awsdynamodb.DeleteItemInput) (*awsdynamodb.DeleteItemOutput, error)
	query      func(*awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error)
}

func (m *mockClient) GetItem(_ context.Context, input *awsdynamodb.GetItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error) {
	return m.getItem(input)
}

func (m *mockClient) PutItem(_ context.Context, input *awsdynamodb.PutItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error) {
	return m.putItem(input)
}

func (m *mockClient) UpdateItem(_ context.Context, input *awsdynamodb.UpdateItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.UpdateItemOutput, error) {
	return m.updateItem(input)
}

func (m *mockClient) DeleteItem(_ context.Context, input *awsdynamodb.DeleteItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error) {
	return m.deleteItem(input)
}

func (m *mockClient) Query(_ context.Context, input *awsdynamodb.QueryInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error) {
	return m.query(input)
}

type testRecord struct {
	PK   string `dynamodbav:"PK"`
	SK   string `dynamodbav:"SK"`
	Name string `dynamodbav:"Name"`
}

func newTestStore(client *mockClient) *Store {
	return NewStore(client, "fermentlog-test", "GSI1", zap.NewNop())
}

func TestGetMissReturnsFoundFalse(t *testing.T) {
	client := &mockClient{
		getItem: func(input *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			assert.Equal(t, "fermentlog-test", *input.TableName)
			return &awsdynamodb.GetItemOutput{}, nil
		},
	}
	store := newTestStore(client)

	var out testRecord
	found, err := store.Get(context.Background(), "USER#u1", "BATCH#b1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetSendsCompositeKey(t *testing.T) {
	client := &mockClient{
		getItem: func(input *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			pk := input.Key["PK"].(*types.AttributeValueMemberS)
			sk := input.Key["SK"].(*types.AttributeValueMemberS)
			assert.Equal(t, "USER#u1", pk.Value)
			assert.Equal(t, "BATCH#b1", sk.Value)
			return &awsdynamodb.GetItemOutput{
				Item: map[string]types.AttributeValue{
					"PK":   &types.AttributeValueMemberS{Value: "USER#u1"},
					"SK":   &types.AttributeValueMemberS{Value: "BATCH#b1"},
					"Name": &types.AttributeValueMemberS{Value: "Ginger Beer"},
				},
			}, nil
		},
	}
	store := newTestStore(client)

	var out testRecord
	found, err := store.Get(context.Background(), "USER#u1", "BATCH#b1", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Ginger Beer", out.Name)
}

func TestUpdateRequiresExistingRecord(t *testing.T) {
	client := &mockClient{
		updateItem: func(input *awsdynamodb.UpdateItemInput) (*awsdynamodb.UpdateItemOutput, error) {
			require.NotNil(t, input.ConditionExpression)
			return nil, &types.ConditionalCheckFailedException{}
		},
	}
	store := newTestStore(client)

	err := store.Update(context.Background(), "USER#u1", "BATCH#missing", map[string]interface{}{"Name": "x"})
	assert.True(t, errors.IsNotFound(err))
}

func TestUpdateSetsOnlyNamedFields(t *testing.T) {
	var captured *awsdynamodb.UpdateItemInput
	client := &mockClient{
		updateItem: func(input *awsdynamodb.UpdateItemInput) (*awsdynamodb.UpdateItemOutput, error) {
			captured = input
			return &awsdynamodb.UpdateItemOutput{}, nil
		},
	}
	store := newTestStore(client)

	err := store.Update(context.Background(), "USER#u1", "BATCH#b1", map[string]interface{}{"Name": "new name"})
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Contains(t, *captured.UpdateExpression, "SET")

	names := make([]string, 0, len(captured.ExpressionAttributeNames))
	for _, n := range captured.ExpressionAttributeNames {
		names = append(names, n)
	}
	assert.Contains(t, names, "Name")
}

func TestUpdateWithNoFieldsIsNoOp(t *testing.T) {
	store := newTestStore(&mockClient{})
	err := store.Update(context.Background(), "USER#u1", "BATCH#b1", nil)
	assert.NoError(t, err)
}

func TestDeleteMissingKeyIsNotAnError(t *testing.T) {
	client := &mockClient{
		deleteItem: func(input *awsdynamodb.DeleteItemInput) (*awsdynamodb.DeleteItemOutput, error) {
			return &awsdynamodb.DeleteItemOutput{}, nil
		},
	}
	store := newTestStore(client)
	assert.NoError(t, store.Delete(context.Background(), "USER#u1", "DEVICE#gone"))
}

func TestQueryPrefixAndOrdering(t *testing.T) {
	var captured *awsdynamodb.QueryInput
	client := &mockClient{
		query: func(input *awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error) {
			captured = input
			return &awsdynamodb.QueryOutput{}, nil
		},
	}
	store := newTestStore(client)

	var out []testRecord
	err := store.Query(context.Background(), "USER#u1", QueryOptions{
		SKPrefix:   "BATCH#",
		Limit:      25,
		Descending: true,
	}, &out)
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Nil(t, captured.IndexName)
	assert.Equal(t, int32(25), *captured.Limit)
	assert.False(t, *captured.ScanIndexForward, "descending requests reverse the scan")
	assert.Contains(t, *captured.KeyConditionExpression, "begins_with")
}

func TestQueryOnSecondaryIndex(t *testing.T) {
	var captured *awsdynamodb.QueryInput
	client := &mockClient{
		query: func(input *awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error) {
			captured = input
			return &awsdynamodb.QueryOutput{}, nil
		},
	}
	store := newTestStore(client)

	var out []testRecord
	err := store.Query(context.Background(), "BATCH#b1", QueryOptions{UseGSI1: true, Limit: 1}, &out)
	require.NoError(t, err)
	require.NotNil(t, captured)
	require.NotNil(t, captured.IndexName)
	assert.Equal(t, "GSI1", *captured.IndexName)
	assert.True(t, *captured.ScanIndexForward)
}

func TestQueryDefaultsToAscendingWithoutLimit(t *testing.T) {
	var captured *awsdynamodb.QueryInput
	client := &mockClient{
		query: func(input *awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error) {
			captured = input
			return &awsdynamodb.QueryOutput{}, nil
		},
	}
	store := newTestStore(client)

	var out []testRecord
	err := store.Query(context.Background(), "BATCH#b1", QueryOptions{SKPrefix: "EVENT#"}, &out)
	require.NoError(t, err)
	assert.Nil(t, captured.Limit)
	assert.True(t, *captured.ScanIndexForward)
}

func TestPutMarshalsFullRecord(t *testing.T) {
	var captured *awsdynamodb.PutItemInput
	client := &mockClient{
		putItem: func(input *awsdynamodb.PutItemInput) (*awsdynamodb.PutItemOutput, error) {
			captured = input
			return &awsdynamodb.PutItemOutput{}, nil
		},
	}
	store := newTestStore(client)

	err := store.Put(context.Background(), testRecord{PK: "USER#u1", SK: "BATCH#b1", Name: "Kvass"})
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Nil(t, captured.ConditionExpression, "put is an unconditional upsert")
	assert.Equal(t, "Kvass", captured.Item["Name"].(*types.AttributeValueMemberS).Value)
}
