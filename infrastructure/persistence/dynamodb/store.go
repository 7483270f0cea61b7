// Package dynamodb implements the entity store and accessors over the
// single-table design.
package dynamodb

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"fermentlog-backend/domain/keys"
	"fermentlog-backend/pkg/errors"
)

// DynamoDBClient is the subset of the DynamoDB API the store uses.
type DynamoDBClient interface {
	GetItem(ctx context.Context, input *awsdynamodb.GetItemInput, opts ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, input *awsdynamodb.PutItemInput, opts ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, input *awsdynamodb.UpdateItemInput, opts ...func(*awsdynamodb.Options)) (*awsdynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, input *awsdynamodb.DeleteItemInput, opts ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, input *awsdynamodb.QueryInput, opts ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error)
}

// Store provides the generic storage primitives over the single table.
// Transient backend errors pass through to the caller; the store never
// retries internally, and no operation spans more than one item.
type Store struct {
	client    DynamoDBClient
	tableName string
	gsi1Name  string
	logger    *zap.Logger
}

// NewStore creates a Store for the given table and its GSI1 index.
func NewStore(client DynamoDBClient, tableName, gsi1Name string, logger *zap.Logger) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		gsi1Name:  gsi1Name,
		logger:    logger,
	}
}

// Put unconditionally upserts a full record. Last writer wins.
func (s *Store) Put(ctx context.Context, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}
	return nil
}

// Get performs a point lookup. A miss returns found=false, never an error.
func (s *Store) Get(ctx context.Context, pk, sk string, out interface{}) (bool, error) {
	result, err := s.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       primaryKey(pk, sk),
	})
	if err != nil {
		return false, fmt.Errorf("failed to get item: %w", err)
	}
	if result.Item == nil {
		return false, nil
	}

	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return true, nil
}

// Update merges the named fields into an existing record. Callers never
// resend unchanged fields. Updating an absent key is rejected with a
// not-found error rather than creating the record.
func (s *Store) Update(ctx context.Context, pk, sk string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	update := expression.UpdateBuilder{}
	for name, value := range fields {
		update = update.Set(expression.Name(name), expression.Value(value))
	}
	cond := expression.AttributeExists(expression.Name(keys.AttrPK))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	_, err = s.client.UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       primaryKey(pk, sk),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if stderrors.As(err, &condFailed) {
			return errors.NewNotFoundError("record")
		}
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

// Delete unconditionally removes a record. Deleting a non-existent key is
// not an error.
func (s *Store) Delete(ctx context.Context, pk, sk string) error {
	_, err := s.client.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       primaryKey(pk, sk),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// QueryOptions controls a partition range scan.
type QueryOptions struct {
	// SKPrefix selects items whose sort key begins with the prefix.
	SKPrefix string
	// SKEquals selects an exact sort-key match. Takes precedence over
	// SKPrefix; used for secondary-index lookups.
	SKEquals string
	// Limit caps the number of returned items; zero means no cap.
	Limit int32
	// Descending returns most-recent-first within the partition.
	Descending bool
	// UseGSI1 queries the secondary index instead of the primary key.
	UseGSI1 bool
}

// Query scans a partition and unmarshals the result into out, a pointer to a
// slice of item structs.
func (s *Store) Query(ctx context.Context, pk string, opts QueryOptions, out interface{}) error {
	pkAttr, skAttr := keys.AttrPK, keys.AttrSK
	if opts.UseGSI1 {
		pkAttr, skAttr = keys.AttrGSI1PK, keys.AttrGSI1SK
	}

	keyCond := expression.Key(pkAttr).Equal(expression.Value(pk))
	switch {
	case opts.SKEquals != "":
		keyCond = expression.KeyAnd(keyCond, expression.Key(skAttr).Equal(expression.Value(opts.SKEquals)))
	case opts.SKPrefix != "":
		keyCond = expression.KeyAnd(keyCond, expression.Key(skAttr).BeginsWith(opts.SKPrefix))
	}

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return fmt.Errorf("failed to build query expression: %w", err)
	}

	input := &awsdynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(!opts.Descending),
	}
	if opts.UseGSI1 {
		input.IndexName = aws.String(s.gsi1Name)
	}
	if opts.Limit > 0 {
		input.Limit = aws.Int32(opts.Limit)
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to query items: %w", err)
	}

	if err := attributevalue.UnmarshalListOfMaps(result.Items, out); err != nil {
		return fmt.Errorf("failed to unmarshal query result: %w", err)
	}
	return nil
}

func primaryKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		keys.AttrPK: &types.AttributeValueMemberS{Value: pk},
		keys.AttrSK: &types.AttributeValueMemberS{Value: sk},
	}
}
