package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"

	"cihai_ugc_202508/internal/model"
)

// SubmissionCollection MongoDB 集合名
const SubmissionCollection = "submissions"

// isoLayout 与 JS Date.toISOString() 输出一致，保证字符串排序即时间排序
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// submissionDoc 集合中的文档结构
// 历史数据的 _id 为 ObjectID、时间为 ISO 字符串，这里两种都能读
type submissionDoc struct {
	ID               any                    `bson:"_id"`
	PostLink         string                 `bson:"postLink"`
	Name             string                 `bson:"name,omitempty"`
	Email            string                 `bson:"email,omitempty"`
	ImageURL         string                 `bson:"imageUrl,omitempty"`
	GeneratedContent model.GeneratedContent `bson:"generatedContent"`
	Status           string                 `bson:"status"`
	IP               string                 `bson:"ip"`
	UserAgent        string                 `bson:"userAgent"`
	Timestamp        any                    `bson:"timestamp"`
	UpdatedAt        any                    `bson:"updatedAt,omitempty"`
}

type submissionMongoRepo struct {
	coll *mongo.Collection
}

// NewSubmissionMongoRepository 创建基于 MongoDB 的提交记录仓储
func NewSubmissionMongoRepository(db *mongo.Database) SubmissionRepository {
	return &submissionMongoRepo{coll: db.Collection(SubmissionCollection)}
}

func (r *submissionMongoRepo) Create(ctx context.Context, s *model.Submission) error {
	doc := submissionDoc{
		ID:               s.ID,
		PostLink:         s.PostLink,
		Name:             s.Name,
		Email:            s.Email,
		ImageURL:         s.ImageURL,
		GeneratedContent: s.GeneratedContent.Data(),
		Status:           s.Status,
		IP:               s.IP,
		UserAgent:        s.UserAgent,
		Timestamp:        s.Timestamp.UTC().Format(isoLayout),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("写入提交记录失败: %w", err)
	}
	return nil
}

func (r *submissionMongoRepo) List(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("查询提交记录失败: %w", err)
	}
	defer cur.Close(ctx)

	var docs []submissionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("解析提交记录失败: %w", err)
	}

	list := make([]model.Submission, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toModel())
	}
	return list, nil
}

func (r *submissionMongoRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var doc submissionDoc
	err := r.coll.FindOne(ctx, idFilter(id)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("查询提交记录失败: %w", err)
	}
	s := doc.toModel()
	return &s, nil
}

func (r *submissionMongoRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, idFilter(id), bson.M{
		"$set": bson.M{"status": status, "updatedAt": at.UTC().Format(isoLayout)},
	})
	if err != nil {
		return 0, fmt.Errorf("更新提交状态失败: %w", err)
	}
	if res.MatchedCount == 0 {
		return 0, ErrSubmissionNotFound
	}
	return res.ModifiedCount, nil
}

func (r *submissionMongoRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// idFilter 同时匹配字符串 id 和历史 ObjectID
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func (d submissionDoc) toModel() model.Submission {
	s := model.Submission{
		PostLink:         d.PostLink,
		Name:             d.Name,
		Email:            d.Email,
		ImageURL:         d.ImageURL,
		GeneratedContent: datatypes.NewJSONType(d.GeneratedContent),
		Status:           d.Status,
		IP:               d.IP,
		UserAgent:        d.UserAgent,
		Timestamp:        decodeTime(d.Timestamp),
	}

	switch v := d.ID.(type) {
	case string:
		s.ID = v
	case primitive.ObjectID:
		s.ID = v.Hex()
	default:
		s.ID = fmt.Sprint(v)
	}

	if t := decodeTime(d.UpdatedAt); !t.IsZero() {
		s.UpdatedAt = &t
	}
	return s
}

func decodeTime(v any) time.Time {
	switch t := v.(type) {
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case primitive.DateTime:
		return t.Time()
	case time.Time:
		return t
	}
	return time.Time{}
}
