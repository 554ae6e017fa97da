// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tomtom215/cinemapulse/internal/config"
	"github.com/tomtom215/cinemapulse/internal/models"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoGateway.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Tables names the three DynamoDB tables.
type Tables struct {
	Movies  string
	Users   string
	Reviews string
}

// DynamoGateway implements Gateway on DynamoDB.
//
// Table keys: movies(movie_id), users(email), reviews(review_id). The reviews
// table has no secondary index, so per-movie and per-user listings are
// filtered scans.
type DynamoGateway struct {
	client DynamoAPI
	tables Tables
}

// legacyTimeLayouts are the offset-less timestamps written by the legacy
// deployment. They are read as UTC.
var legacyTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// decodeTimeS accepts RFC 3339, the legacy layouts and the empty string.
func decodeTimeS(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
}

func withLegacyTimes(o *attributevalue.DecoderOptions) {
	o.DecodeTime.S = decodeTimeS
}

// NewDynamoClient builds a DynamoDB client from the default AWS credential
// chain. A non-empty Endpoint points the client at DynamoDB Local.
func NewDynamoClient(ctx context.Context, cfg config.DynamoDBConfig) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewDynamoGateway returns a gateway over client.
func NewDynamoGateway(client DynamoAPI, tables Tables) *DynamoGateway {
	return &DynamoGateway{client: client, tables: tables}
}

// fail classifies an SDK error.
func (d *DynamoGateway) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return err
	}
	return unavailable(op, err)
}

func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{name: &types.AttributeValueMemberS{Value: value}}
}

// GetMovie implements MovieStore.
func (d *DynamoGateway) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tables.Movies),
		Key:       stringKey("movie_id", id),
	})
	if err != nil {
		return nil, d.fail("get movie", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var m models.Movie
	if err := attributevalue.UnmarshalMapWithOptions(out.Item, &m, withLegacyTimes); err != nil {
		return nil, fmt.Errorf("unmarshal movie %s: %w", id, err)
	}
	return &m, nil
}

// ListActiveMovies implements MovieStore.
func (d *DynamoGateway) ListActiveMovies(ctx context.Context) ([]models.Movie, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("active").Equal(expression.Value(true))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build movie filter: %w", err)
	}

	movies := make([]models.Movie, 0)
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName:                 aws.String(d.tables.Movies),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, d.fail("list movies", err)
		}
		var batch []models.Movie
		if err := attributevalue.UnmarshalListOfMapsWithOptions(page.Items, &batch, withLegacyTimes); err != nil {
			return nil, fmt.Errorf("unmarshal movies: %w", err)
		}
		movies = append(movies, batch...)
	}
	models.SortMoviesByID(movies)
	return movies, nil
}

// PutMovie implements MovieStore.
func (d *DynamoGateway) PutMovie(ctx context.Context, m *models.Movie) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal movie: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tables.Movies),
		Item:      item,
	})
	return d.fail("put movie", err)
}

// InsertMovie implements MovieStore.
func (d *DynamoGateway) InsertMovie(ctx context.Context, m *models.Movie) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal movie: %w", err)
	}
	return d.putIfAbsent(ctx, "insert movie", d.tables.Movies, "movie_id", item)
}

func (d *DynamoGateway) putIfAbsent(ctx context.Context, op, table, keyAttr string, item map[string]types.AttributeValue) error {
	cond, err := expression.NewBuilder().
		WithCondition(expression.Name(keyAttr).AttributeNotExists()).
		Build()
	if err != nil {
		return fmt.Errorf("build condition: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(table),
		Item:                     item,
		ConditionExpression:      cond.Condition(),
		ExpressionAttributeNames: cond.Names(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrAlreadyExists
		}
		return d.fail(op, err)
	}
	return nil
}

// update applies a SET expression to an existing item. A missing item
// yields ErrNotFound rather than an upsert.
func (d *DynamoGateway) update(ctx context.Context, op, table, keyAttr, key string, set expression.UpdateBuilder) error {
	expr, err := expression.NewBuilder().
		WithUpdate(set).
		WithCondition(expression.Name(keyAttr).AttributeExists()).
		Build()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       stringKey(keyAttr, key),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrNotFound
		}
		return d.fail(op, err)
	}
	return nil
}

// SetMovieActive implements MovieStore.
func (d *DynamoGateway) SetMovieActive(ctx context.Context, id string, active bool) error {
	set := expression.Set(expression.Name("active"), expression.Value(active))
	return d.update(ctx, "set movie active", d.tables.Movies, "movie_id", id, set)
}

// UpdateMovieStats implements MovieStore.
func (d *DynamoGateway) UpdateMovieStats(ctx context.Context, id string, stats models.MovieStats) error {
	set := expression.
		Set(expression.Name("total_reviews"), expression.Value(stats.TotalReviews)).
		Set(expression.Name("avg_rating"), expression.Value(stats.AvgRating)).
		Set(expression.Name("last_updated"), expression.Value(stats.LastUpdated))
	return d.update(ctx, "update movie stats", d.tables.Movies, "movie_id", id, set)
}

// GetUser implements UserStore.
func (d *DynamoGateway) GetUser(ctx context.Context, email string) (*models.User, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tables.Users),
		Key:       stringKey("email", email),
	})
	if err != nil {
		return nil, d.fail("get user", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var u models.User
	if err := attributevalue.UnmarshalMapWithOptions(out.Item, &u, withLegacyTimes); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &u, nil
}

// CreateUser implements UserStore.
func (d *DynamoGateway) CreateUser(ctx context.Context, u *models.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return d.putIfAbsent(ctx, "create user", d.tables.Users, "email", item)
}

// UpdateUserStats implements UserStore.
func (d *DynamoGateway) UpdateUserStats(ctx context.Context, email string, stats models.UserStats) error {
	set := expression.
		Set(expression.Name("total_reviews"), expression.Value(stats.TotalReviews)).
		Set(expression.Name("avg_rating"), expression.Value(stats.AvgRating)).
		Set(expression.Name("last_review_date"), expression.Value(stats.LastReviewDate))
	return d.update(ctx, "update user stats", d.tables.Users, "email", email, set)
}

// PutReview implements ReviewStore.
func (d *DynamoGateway) PutReview(ctx context.Context, r *models.Review) error {
	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tables.Reviews),
		Item:      item,
	})
	return d.fail("put review", err)
}

// ListReviewsByMovie implements ReviewStore.
func (d *DynamoGateway) ListReviewsByMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	return d.scanReviews(ctx, "list movie reviews", expression.Name("movie_id").Equal(expression.Value(movieID)))
}

// ListReviewsByUser implements ReviewStore.
func (d *DynamoGateway) ListReviewsByUser(ctx context.Context, email string) ([]models.Review, error) {
	return d.scanReviews(ctx, "list user reviews", expression.Name("user_email").Equal(expression.Value(email)))
}

func (d *DynamoGateway) scanReviews(ctx context.Context, op string, filter expression.ConditionBuilder) ([]models.Review, error) {
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("build review filter: %w", err)
	}

	reviews := make([]models.Review, 0)
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName:                 aws.String(d.tables.Reviews),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, d.fail(op, err)
		}
		var batch []models.Review
		if err := attributevalue.UnmarshalListOfMapsWithOptions(page.Items, &batch, withLegacyTimes); err != nil {
			return nil, fmt.Errorf("unmarshal reviews: %w", err)
		}
		reviews = append(reviews, batch...)
	}
	return reviews, nil
}

// CountReviews implements ReviewStore.
func (d *DynamoGateway) CountReviews(ctx context.Context) (int, error) {
	count := 0
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(d.tables.Reviews),
		Select:    types.SelectCount,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, d.fail("count reviews", err)
		}
		count += int(page.Count)
	}
	return count, nil
}

// Ping implements Gateway by describing the movies table.
func (d *DynamoGateway) Ping(ctx context.Context) error {
	_, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(d.tables.Movies),
	})
	return d.fail("ping", err)
}

// EnsureTables creates any missing table with on-demand billing. It is used
// against DynamoDB Local; production tables are provisioned out of band.
func (d *DynamoGateway) EnsureTables(ctx context.Context) error {
	specs := []struct{ table, key string }{
		{d.tables.Movies, "movie_id"},
		{d.tables.Users, "email"},
		{d.tables.Reviews, "review_id"},
	}
	for _, s := range specs {
		_, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
		if err == nil {
			continue
		}
		var rnf *types.ResourceNotFoundException
		if !errors.As(err, &rnf) {
			return d.fail("describe table", err)
		}

		_, err = d.client.CreateTable(ctx, &dynamodb.CreateTableInput{
			TableName:   aws.String(s.table),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String(s.key), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(s.key), KeyType: types.KeyTypeHash},
			},
		})
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return d.fail("create table", err)
		}
	}
	return nil
}

// Name implements Gateway.
func (d *DynamoGateway) Name() string { return "dynamodb" }

// Close implements Gateway. The SDK client holds no resources to release.
func (d *DynamoGateway) Close() error { return nil }
