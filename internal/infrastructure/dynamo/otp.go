package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/flexibill/internal/domain"
)

const (
	attrMobileNumber = "mobile_number"
	attrExpiresAt    = "expires_at"
)

type itemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// OTPStore keeps one item per mobile number.
// PK: mobile_number. expires_at is a Unix timestamp used as DynamoDB TTL;
// DynamoDB deletes lazily, so Peek also ignores items past expires_at.
type OTPStore struct {
	client    itemAPI
	tableName string
	ttl       time.Duration
	gen       domain.OTPCodeGenerator
	now       func() time.Time
}

func NewOTPStore(client itemAPI, tableName string, ttl time.Duration, gen domain.OTPCodeGenerator) *OTPStore {
	if gen == nil {
		gen = domain.FixedOTPCode
	}
	return &OTPStore{client: client, tableName: tableName, ttl: ttl, gen: gen, now: time.Now}
}

func (s *OTPStore) Put(ctx context.Context, mobileNumber string) (string, error) {
	rec := domain.OTPRecord{MobileNumber: mobileNumber, Code: s.gen(mobileNumber)}
	if s.ttl > 0 {
		rec.ExpiresAt = s.now().Add(s.ttl).Unix()
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return "", fmt.Errorf("marshal otp record: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return "", err
	}
	return rec.Code, nil
}

func (s *OTPStore) Peek(ctx context.Context, mobileNumber string) (string, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            strKey(attrMobileNumber, mobileNumber),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, err
	}
	if out.Item == nil {
		return "", false, nil
	}
	var rec domain.OTPRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return "", false, fmt.Errorf("unmarshal otp record: %w", err)
	}
	if rec.ExpiresAt != 0 && rec.ExpiresAt <= s.now().Unix() {
		return "", false, nil
	}
	return rec.Code, true, nil
}

func (s *OTPStore) Expire(ctx context.Context, mobileNumber string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey(attrMobileNumber, mobileNumber),
	})
	return err
}
