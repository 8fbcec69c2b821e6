package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"movieinfo/errs"
	"movieinfo/movieinfo"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const movieInfoKeyAttr = "movieInfoId"

// MovieInfoAPI is the subset of the DynamoDB client used by MovieInfoRepository.
type MovieInfoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	dynamodb.ScanAPIClient
}

// MovieInfoRepository implements movieinfo.Repository on a DynamoDB table
// whose hash key is the string attribute movieInfoId.
type MovieInfoRepository struct {
	client MovieInfoAPI
	table  string
	newID  func() string
}

type movieInfoItem struct {
	ID          string   `dynamodbav:"movieInfoId"`
	Name        string   `dynamodbav:"name"`
	Year        int      `dynamodbav:"year"`
	Cast        []string `dynamodbav:"cast"`
	ReleaseDate string   `dynamodbav:"release_date,omitempty"`
}

func NewMovieInfoRepository(client MovieInfoAPI, table string) *MovieInfoRepository {
	return &MovieInfoRepository{
		client: client,
		table:  table,
		newID:  uuid.NewString,
	}
}

func (r *MovieInfoRepository) Create(ctx context.Context, m movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	if err := validateTable(r.table); err != nil {
		return movieinfo.MovieInfo{}, err
	}

	m.ID = r.newID()
	av, err := attributevalue.MarshalMap(toMovieInfoItem(m))
	if err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: marshal movie info: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(" + movieInfoKeyAttr + ")"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return movieinfo.MovieInfo{}, errs.Errorf(errs.ECONFLICT, "movie info %s already exists", m.ID)
		}
		return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: put movie info: %w", err)
	}

	return m, nil
}

func (r *MovieInfoRepository) FindByID(ctx context.Context, id string) (movieinfo.MovieInfo, error) {
	if err := validateTable(r.table); err != nil {
		return movieinfo.MovieInfo{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            movieInfoKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: get movie info: %w", err)
	}
	if len(out.Item) == 0 {
		return movieinfo.MovieInfo{}, movieinfo.ErrNotFound
	}

	var item movieInfoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: unmarshal movie info: %w", err)
	}

	return item.toMovieInfo()
}

// FindAll scans the table one page at a time; the next page is only
// requested once the consumer has taken every item of the current one.
func (r *MovieInfoRepository) FindAll(ctx context.Context) iter.Seq2[movieinfo.MovieInfo, error] {
	return func(yield func(movieinfo.MovieInfo, error) bool) {
		if err := validateTable(r.table); err != nil {
			yield(movieinfo.MovieInfo{}, err)
			return
		}

		paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
			TableName: &r.table,
		})
		for paginator.HasMorePages() {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				yield(movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: scan movie infos: %w", err))
				return
			}

			var items []movieInfoItem
			if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
				yield(movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: unmarshal movie infos: %w", err))
				return
			}

			for _, item := range items {
				m, err := item.toMovieInfo()
				if !yield(m, err) || err != nil {
					return
				}
			}
		}
	}
}

func (r *MovieInfoRepository) Save(ctx context.Context, m movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	if err := validateTable(r.table); err != nil {
		return movieinfo.MovieInfo{}, err
	}

	if m.ID == "" {
		m.ID = r.newID()
	}
	av, err := attributevalue.MarshalMap(toMovieInfoItem(m))
	if err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: marshal movie info: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      av,
	})
	if err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: put movie info: %w", err)
	}

	return m, nil
}

func (r *MovieInfoRepository) DeleteByID(ctx context.Context, id string) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.table,
		Key:       movieInfoKey(id),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: delete movie info: %w", err)
	}

	return nil
}

func movieInfoKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		movieInfoKeyAttr: &types.AttributeValueMemberS{Value: id},
	}
}

func toMovieInfoItem(m movieinfo.MovieInfo) movieInfoItem {
	return movieInfoItem{
		ID:          m.ID,
		Name:        m.Name,
		Year:        m.Year,
		Cast:        m.Cast,
		ReleaseDate: m.ReleaseDate.String(),
	}
}

func (item movieInfoItem) toMovieInfo() (movieinfo.MovieInfo, error) {
	m := movieinfo.MovieInfo{
		ID:   item.ID,
		Name: item.Name,
		Year: item.Year,
		Cast: item.Cast,
	}

	if item.ReleaseDate != "" {
		d, err := movieinfo.ParseDate(item.ReleaseDate)
		if err != nil {
			return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: parse release_date of %s: %w", item.ID, err)
		}
		m.ReleaseDate = d
	}

	return m, nil
}
