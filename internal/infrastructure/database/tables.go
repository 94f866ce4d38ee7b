package database

import (
	"context"
	"errors"
	"fmt"

	appconfig "findoc_service/internal/config"
	"findoc_service/internal/infrastructure/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableAPI is the subset of the DynamoDB client needed to bootstrap tables.
type TableAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// TableSpec describes one table: its hash key and the string-keyed GSIs on it.
type TableSpec struct {
	Name    string
	Key     string
	Indexes []string
}

// Tables lists every table the service needs. Each GSI is named "<attr>-index" with projection ALL.
func Tables(cfg *appconfig.Config) []TableSpec {
	return []TableSpec{
		{Name: cfg.EstimationsTable, Key: "id", Indexes: []string{"uuid", "order_ref"}},
		{Name: cfg.InvoicesTable, Key: "id", Indexes: []string{"uuid", "order_ref", "estimation_ref"}},
		{Name: cfg.PaymentsTable, Key: "id", Indexes: []string{"invoice_id"}},
		{Name: cfg.CountersTable, Key: "scope"},
	}
}

// EnsureTables creates every missing table. Tables that already exist are left untouched.
func EnsureTables(ctx context.Context, ddb TableAPI, specs []TableSpec) error {
	log := logger.WithComponent("dynamodb")
	for _, spec := range specs {
		_, err := ddb.CreateTable(ctx, createTableInput(spec))
		var inUse *types.ResourceInUseException
		switch {
		case errors.As(err, &inUse):
			log.Info().Str("table", spec.Name).Msg("table already exists")
		case err != nil:
			return fmt.Errorf("create table %s: %w", spec.Name, err)
		default:
			log.Info().Str("table", spec.Name).Int("indexes", len(spec.Indexes)).Msg("table created")
		}
	}
	return nil
}

func createTableInput(spec TableSpec) *dynamodb.CreateTableInput {
	attrs := []types.AttributeDefinition{{AttributeName: aws.String(spec.Key), AttributeType: types.ScalarAttributeTypeS}}
	var gsis []types.GlobalSecondaryIndex
	for _, attr := range spec.Indexes {
		attrs = append(attrs, types.AttributeDefinition{AttributeName: aws.String(attr), AttributeType: types.ScalarAttributeTypeS})
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName:  aws.String(attr + "-index"),
			KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String(attr), KeyType: types.KeyTypeHash}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	in := &dynamodb.CreateTableInput{
		TableName:            aws.String(spec.Name),
		AttributeDefinitions: attrs,
		KeySchema:            []types.KeySchemaElement{{AttributeName: aws.String(spec.Key), KeyType: types.KeyTypeHash}},
		BillingMode:          types.BillingModePayPerRequest,
	}
	if len(gsis) > 0 {
		in.GlobalSecondaryIndexes = gsis
	}
	return in
}
