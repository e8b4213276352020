package storage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"energycoach/internal/model"
)

// dynamoStore persists one item per (customerId, month). The table's key
// schema predates this service: the sort key attribute is named "timestamp"
// and holds the month key.
type dynamoStore struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoDB(client *dynamodb.Client, table string) SummaryStore {
	return &dynamoStore{client: client, table: table}
}

func (s *dynamoStore) Init(ctx context.Context) error {
	// Table provisioning is external infrastructure.
	return nil
}

func (s *dynamoStore) Close() error { return nil }

func (s *dynamoStore) Get(ctx context.Context, customerID, month string) (*model.StoredSummaryRecord, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		ConsistentRead: aws.Bool(true),
		Key: map[string]types.AttributeValue{
			"customerId": &types.AttributeValueMemberS{Value: customerID},
			"timestamp":  &types.AttributeValueMemberS{Value: month},
		},
	})
	if err != nil {
		return nil, readErr(err)
	}
	if out.Item == nil {
		return nil, nil
	}
	return decodeItem(customerID, month, out.Item)
}

// Put writes the full record with a statically declared field-to-attribute
// mapping; every value is an explicit S attribute.
func (s *dynamoStore) Put(ctx context.Context, rec model.StoredSummaryRecord) error {
	item := map[string]types.AttributeValue{
		"customerId":   &types.AttributeValueMemberS{Value: rec.CustomerID},
		"timestamp":    &types.AttributeValueMemberS{Value: rec.Month},
		"computedAt":   &types.AttributeValueMemberS{Value: rec.ComputedAt.UTC().Format(time.RFC3339Nano)},
		"customerName": &types.AttributeValueMemberS{Value: rec.CustomerName},
		"locationId":   &types.AttributeValueMemberS{Value: rec.Location.LocationID},
		"address":      &types.AttributeValueMemberS{Value: rec.Location.Address},
		"city":         &types.AttributeValueMemberS{Value: rec.Location.City},
		"state":        &types.AttributeValueMemberS{Value: rec.Location.State},
		"postalCode":   &types.AttributeValueMemberS{Value: rec.Location.PostalCode},
		"summary":      &types.AttributeValueMemberS{Value: encodeJSON(rec.Summary)},
		"rawData":      &types.AttributeValueMemberS{Value: string(rec.RawData)},
	}
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return writeErr(err)
	}
	return nil
}

func decodeItem(customerID, month string, item map[string]types.AttributeValue) (*model.StoredSummaryRecord, error) {
	rec := model.StoredSummaryRecord{CustomerID: customerID, Month: month}
	rec.CustomerName = strAttr(item, "customerName")
	rec.Location = model.Location{
		LocationID: strAttr(item, "locationId"),
		Address:    strAttr(item, "address"),
		City:       strAttr(item, "city"),
		State:      strAttr(item, "state"),
		PostalCode: strAttr(item, "postalCode"),
	}
	if v := strAttr(item, "computedAt"); v != "" {
		ts, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, readErr(err)
		}
		rec.ComputedAt = ts
	}
	if v := strAttr(item, "summary"); v != "" {
		if err := decodeJSON(v, &rec.Summary); err != nil {
			return nil, readErr(err)
		}
	}
	rec.RawData = []byte(strAttr(item, "rawData"))
	return &rec, nil
}

func strAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
