package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

// feedPartition todas las entradas comparten partición; la clave de orden es timestamp#id.
const feedPartition = "recent"

// API subconjunto del cliente usado por el repositorio.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var (
	_ API                           = (*dynamodb.Client)(nil)
	_ repository.ActivityRepository = (*ActivityRepo)(nil)
)

type activityItem struct {
	Feed        string `dynamodbav:"feed"`
	SortKey     string `dynamodbav:"sk"`
	ID          string `dynamodbav:"id"`
	Activity    string `dynamodbav:"activity"`
	Description string `dynamodbav:"description"`
	ActorUID    string `dynamodbav:"actor_uid,omitempty"`
	Timestamp   string `dynamodbav:"timestamp"`
}

// ActivityRepo feed de actividad en una tabla DynamoDB.
//
// Requisitos de la tabla:
//   - PK: feed (string)
//   - SK: sk (string), "RFC3339Nano#id"
type ActivityRepo struct {
	ddb   API
	table string
}

// NewActivityRepository construye el adaptador.
func NewActivityRepository(ddb API, table string) *ActivityRepo {
	return &ActivityRepo{ddb: ddb, table: table}
}

// Append agrega una entrada. Un id repetido no sobrescribe.
func (r *ActivityRepo) Append(ctx context.Context, a *entity.RecentActivity) error {
	av, err := attributevalue.MarshalMap(toItem(a))
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#sk)"),
		ExpressionAttributeNames: map[string]string{"#sk": "sk"},
	})
	if err != nil {
		return fmt.Errorf("put activity: %w", err)
	}
	return nil
}

// ListRecent últimas entradas, más recientes primero.
func (r *ActivityRepo) ListRecent(ctx context.Context, limit int) ([]*entity.RecentActivity, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.table),
		KeyConditionExpression:   aws.String("#feed = :feed"),
		ExpressionAttributeNames: map[string]string{"#feed": "feed"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":feed": &types.AttributeValueMemberS{Value: feedPartition},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}

	var items []activityItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("unmarshal activities: %w", err)
	}
	list := make([]*entity.RecentActivity, 0, len(items))
	for _, it := range items {
		list = append(list, fromItem(it))
	}
	return list, nil
}

func toItem(a *entity.RecentActivity) activityItem {
	ts := a.Timestamp.UTC().Format(time.RFC3339Nano)
	return activityItem{
		Feed:        feedPartition,
		SortKey:     ts + "#" + a.ID,
		ID:          a.ID,
		Activity:    a.Activity,
		Description: a.Description,
		ActorUID:    a.ActorUID,
		Timestamp:   ts,
	}
}

func fromItem(it activityItem) *entity.RecentActivity {
	ts, _ := time.Parse(time.RFC3339Nano, it.Timestamp)
	return &entity.RecentActivity{
		ID:          it.ID,
		Activity:    it.Activity,
		Description: it.Description,
		ActorUID:    it.ActorUID,
		Timestamp:   ts,
	}
}
