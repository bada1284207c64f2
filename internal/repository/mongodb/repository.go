package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/goatherd/internal/domain/models"
)

// ErrNoReport is returned when no herd report has been stored yet.
var ErrNoReport = errors.New("no herd report stored")

const herdReportsCollection = "herd_reports"

// Repository defines the interface for herd report storage.
type Repository interface {
	SaveHerdReport(ctx context.Context, report models.HerdReport) error
	LatestHerdReport(ctx context.Context) (models.HerdReport, error)
}

// MongoDBRepository implements Repository on MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository connects, verifies the connection and makes sure the
// report index exists.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: herdReportsCollection,
	}

	index := mongo.IndexModel{Keys: bson.D{{Key: "as_of", Value: -1}, {Key: "generated_at", Value: -1}}}
	if _, err := repo.collection().Indexes().CreateOne(ctx, index); err != nil {
		return nil, fmt.Errorf("failed to create herd report index: %w", err)
	}

	return repo, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveHerdReport stores a generated herd report.
func (r *MongoDBRepository) SaveHerdReport(ctx context.Context, report models.HerdReport) error {
	if _, err := r.collection().InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert herd report: %w", err)
	}
	return nil
}

// LatestHerdReport returns the most recent stored report.
func (r *MongoDBRepository) LatestHerdReport(ctx context.Context) (models.HerdReport, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "as_of", Value: -1}, {Key: "generated_at", Value: -1}})

	var report models.HerdReport
	err := r.collection().FindOne(ctx, bson.D{}, opts).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.HerdReport{}, ErrNoReport
	}
	if err != nil {
		return models.HerdReport{}, fmt.Errorf("failed to load latest herd report: %w", err)
	}
	return report, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
