package archive

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrRunExists is returned when a manifest for the run ID was already
// committed.
var ErrRunExists = errors.New("run manifest already exists")

// RunManifest is one completed benchmark run, keyed by run ID.
type RunManifest struct {
	RunID       string
	StartedAt   time.Time
	DatasetSize int
	Seed        int64
	Records     int
	MetricsKey  string // archive object key of the metrics file, if uploaded
}

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// ManifestStore records run manifests in a DynamoDB table.
//
// Table schema:
//   - Partition key: run_id (string)
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name seekbench-runs \
//	  --attribute-definitions AttributeName=run_id,AttributeType=S \
//	  --key-schema AttributeName=run_id,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
type ManifestStore struct {
	client    DDBClient
	tableName string
}

// NewManifestStore creates a DynamoDB-backed manifest store.
func NewManifestStore(client DDBClient, tableName string) *ManifestStore {
	return &ManifestStore{
		client:    client,
		tableName: tableName,
	}
}

// Commit writes the manifest. A conditional put keeps run IDs unique:
// re-committing an existing run fails with ErrRunExists instead of
// silently overwriting history.
func (s *ManifestStore) Commit(ctx context.Context, m RunManifest) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"run_id":       &types.AttributeValueMemberS{Value: m.RunID},
			"started_at":   &types.AttributeValueMemberS{Value: m.StartedAt.UTC().Format(time.RFC3339Nano)},
			"dataset_size": &types.AttributeValueMemberN{Value: strconv.Itoa(m.DatasetSize)},
			"seed":         &types.AttributeValueMemberN{Value: strconv.FormatInt(m.Seed, 10)},
			"records":      &types.AttributeValueMemberN{Value: strconv.Itoa(m.Records)},
			"metrics_key":  &types.AttributeValueMemberS{Value: m.MetricsKey},
		},
		ConditionExpression: aws.String("attribute_not_exists(run_id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("%w: %s", ErrRunExists, m.RunID)
		}
		return fmt.Errorf("failed to commit run manifest: %w", err)
	}
	return nil
}

// Get fetches the manifest for runID, or ErrNotFound semantics via a
// nil manifest and false.
func (s *ManifestStore) Get(ctx context.Context, runID string) (*RunManifest, bool, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"run_id": &types.AttributeValueMemberS{Value: runID},
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get run manifest: %w", err)
	}
	if len(resp.Item) == 0 {
		return nil, false, nil
	}

	m := &RunManifest{RunID: runID}
	if v, ok := resp.Item["started_at"].(*types.AttributeValueMemberS); ok {
		m.StartedAt, _ = time.Parse(time.RFC3339Nano, v.Value)
	}
	if v, ok := resp.Item["dataset_size"].(*types.AttributeValueMemberN); ok {
		m.DatasetSize, _ = strconv.Atoi(v.Value)
	}
	if v, ok := resp.Item["seed"].(*types.AttributeValueMemberN); ok {
		m.Seed, _ = strconv.ParseInt(v.Value, 10, 64)
	}
	if v, ok := resp.Item["records"].(*types.AttributeValueMemberN); ok {
		m.Records, _ = strconv.Atoi(v.Value)
	}
	if v, ok := resp.Item["metrics_key"].(*types.AttributeValueMemberS); ok {
		m.MetricsKey = v.Value
	}
	return m, true, nil
}
