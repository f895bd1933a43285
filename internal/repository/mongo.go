package repository

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
	applog "github.com/pyoniverse/etl-transform/pkg/log"
)

// MongoRepository MongoDB 기반 수집 저장소 구현체입니다.
// 배치는 읽기 전용이므로 모든 조회는 secondary-preferred로 수행합니다.
type MongoRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ Repository = (*MongoRepository)(nil)

// NewMongoRepository 수집 저장소에 연결하고 접속 가능 여부를 확인합니다.
func NewMongoRepository(ctx context.Context, uri, dbName string) (*MongoRepository, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "수집 저장소 연결에 실패했습니다")
	}

	if err := client.Ping(ctx, readpref.SecondaryPreferred()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperrors.Wrap(err, apperrors.System, "수집 저장소 응답 확인에 실패했습니다")
	}

	db := client.Database(dbName, options.Database().SetReadPreference(readpref.SecondaryPreferred()))

	applog.WithComponent("repository.mongo").Debugf("수집 저장소에 연결되었습니다. (db:%s)", dbName)

	return &MongoRepository{client: client, db: db}, nil
}

// Find 지정된 릴레이션에서 조건에 맞는 문서 전체를 조회합니다.
// 정렬 조건이 없으면 _id 오름차순으로 조회해 실행 간 순서를 안정시킵니다.
func (r *MongoRepository) Find(ctx context.Context, relName string, opts FindOptions) ([]map[string]any, error) {
	findOpts := options.Find()
	if opts.Projection != nil {
		findOpts.SetProjection(bson.M(opts.Projection))
	}
	findOpts.SetSort(sortDocument(opts.Sort))
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	filter := bson.M{}
	if opts.Filter != nil {
		filter = bson.M(opts.Filter)
	}

	cursor, err := r.db.Collection(relName).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("'%s' 릴레이션 조회에 실패했습니다", relName))
	}

	var docs []map[string]any
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("'%s' 릴레이션 문서 디코딩에 실패했습니다", relName))
	}

	if len(docs) == 0 {
		applog.WithComponent("repository.mongo").Debugf("'%s' 릴레이션에서 조회된 문서가 없습니다", relName)
	}

	return docs, nil
}

// Close 저장소 연결을 해제합니다.
func (r *MongoRepository) Close(ctx context.Context) error {
	if err := r.client.Disconnect(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.System, "수집 저장소 연결 해제에 실패했습니다")
	}
	return nil
}

// sortDocument 정렬 조건 맵을 키 기준으로 정렬된 bson.D로 변환합니다.
// 맵 순회 순서에 따라 조회 결과가 흔들리지 않도록 하기 위함입니다.
func sortDocument(sortMap map[string]int) bson.D {
	if len(sortMap) == 0 {
		return bson.D{{Key: "_id", Value: 1}}
	}

	keys := make([]string, 0, len(sortMap))
	for key := range sortMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	doc := make(bson.D, 0, len(keys))
	for _, key := range keys {
		doc = append(doc, bson.E{Key: key, Value: sortMap[key]})
	}
	return doc
}
