package repository

import (
	"context"
	"sort"

	"adyen_classic/internal/domain/entities"
	"adyen_classic/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	PaymentsReferenceIndex   = "reference-index"
)

// dynamoAPI is the subset of *dynamodb.Client the repository calls.
type dynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type paymentItem struct {
	ID            string `dynamodbav:"id"`
	ParentID      string `dynamodbav:"parent_id,omitempty"`
	Reference     string `dynamodbav:"reference"`
	PSPReference  string `dynamodbav:"psp_reference,omitempty"`
	AuthCode      string `dynamodbav:"auth_code,omitempty"`
	Operation     string `dynamodbav:"operation"`
	PaymentMethod string `dynamodbav:"payment_method,omitempty"`
	Currency      string `dynamodbav:"currency"`
	Value         int64  `dynamodbav:"value"`
	ResultCode    string `dynamodbav:"result_code"`
	Successful    bool   `dynamodbav:"successful"`
	Redirect      bool   `dynamodbav:"redirect"`
	Message       string `dynamodbav:"message,omitempty"`
	ErrorCode     string `dynamodbav:"error_code,omitempty"`
	BoletoURL     string `dynamodbav:"boleto_url,omitempty"`
	BoletoBarcode string `dynamodbav:"boleto_barcode,omitempty"`
	BoletoExpires string `dynamodbav:"boleto_expiration_date,omitempty"`
	Date          string `dynamodbav:"date"`
	RawResponse   string `dynamodbav:"raw_response,omitempty"`
}

// PaymentDynamoRepository persists PaymentRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: reference-index (PK: reference)

type PaymentDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

// NewPaymentDynamoRepository falls back to PAYMENTS_TABLE, then "payments",
// when tableName is empty.
func NewPaymentDynamoRepository(ddb *dynamodb.Client, tableName string) *PaymentDynamoRepository {
	return newPaymentDynamoRepository(ddb, tableName)
}

func newPaymentDynamoRepository(ddb dynamoAPI, tableName string) *PaymentDynamoRepository {
	if tableName == "" {
		tableName = getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName)
	}
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.PaymentRecord{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentItem(it), nil
}

// ListByReference returns every record of a merchant reference, oldest first.
func (r *PaymentDynamoRepository) ListByReference(ctx context.Context, reference string) ([]entities.PaymentRecord, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(PaymentsReferenceIndex),
		KeyConditionExpression: aws.String("#ref = :ref"),
		ExpressionAttributeNames: map[string]string{
			"#ref": "reference",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: reference},
		},
	}

	items := make([]entities.PaymentRecord, 0)
	for {
		out, err := r.ddb.Query(ctx, in)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it paymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromPaymentItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

func toPaymentItem(p entities.PaymentRecord) paymentItem {
	it := paymentItem{
		ID:            p.ID,
		ParentID:      p.ParentID,
		Reference:     p.Reference,
		PSPReference:  p.PSPReference,
		AuthCode:      p.AuthCode,
		Operation:     string(p.Operation),
		PaymentMethod: string(p.PaymentMethod),
		Currency:      p.Amount.Currency,
		Value:         p.Amount.MinorUnits,
		ResultCode:    string(p.ResultCode),
		Successful:    p.Successful,
		Redirect:      p.Redirect,
		Message:       p.Message,
		ErrorCode:     p.ErrorCode,
		Date:          formatDate(p.Date),
		RawResponse:   string(p.RawResponse),
	}
	if p.Boleto != nil {
		it.BoletoURL = p.Boleto.URL
		it.BoletoBarcode = p.Boleto.Barcode
		it.BoletoExpires = p.Boleto.ExpirationDate
	}
	return it
}

func fromPaymentItem(it paymentItem) entities.PaymentRecord {
	p := entities.PaymentRecord{
		ID:            it.ID,
		ParentID:      it.ParentID,
		Reference:     it.Reference,
		PSPReference:  it.PSPReference,
		AuthCode:      it.AuthCode,
		Operation:     entities.PaymentOperation(it.Operation),
		PaymentMethod: entities.PaymentMethod(it.PaymentMethod),
		Amount:        entities.Money{Currency: it.Currency, MinorUnits: it.Value},
		ResultCode:    entities.OutcomeCode(it.ResultCode),
		Successful:    it.Successful,
		Redirect:      it.Redirect,
		Message:       it.Message,
		ErrorCode:     it.ErrorCode,
		Date:          parseDate(it.Date),
	}
	if it.BoletoURL != "" {
		p.Boleto = &entities.Boleto{URL: it.BoletoURL, Barcode: it.BoletoBarcode, ExpirationDate: it.BoletoExpires}
	}
	p.RawResponse = rawJSON(it.RawResponse)
	return p
}
