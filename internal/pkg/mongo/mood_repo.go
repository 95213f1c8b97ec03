package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 心情事件分散在三个来源集合里，字段命名和时间编码各不相同：
// mood_logs  为当前客户端写入的主集合（mood + createdAt）
// mood_entries 为旧版客户端的变体集合（emotion + timestamp）
// emotion_logs 为一次性迁移遗留的兜底集合（mood + created_at_ms）
// 拉取顺序即合并去重时的来源优先级。
const (
	ColMoodLogs    = "mood_logs"
	ColMoodEntries = "mood_entries"
	ColEmotionLogs = "emotion_logs"
)

// SourceCollections 固定的来源拉取顺序
var SourceCollections = []string{ColMoodLogs, ColMoodEntries, ColEmotionLogs}

// MoodLog 主集合的写入模型
type MoodLog struct {
	UserID    uint64    `bson:"user_id"`
	Mood      string    `bson:"mood"`
	CreatedAt time.Time `bson:"createdAt"`
}

type MoodRepo interface {
	InsertMood(ctx context.Context, userID uint64, rawLabel string, at time.Time) error
	FetchRawEvents(ctx context.Context, collection string, userID uint64) ([]bson.M, error)
}

type moodRepoImpl struct {
	db *mongo.Database
}

func NewMoodRepo(db *mongo.Database) MoodRepo {
	return &moodRepoImpl{db: db}
}

// InsertMood 原样保存用户的一次心情打点，规范化在聚合读取侧做
func (s *moodRepoImpl) InsertMood(ctx context.Context, userID uint64, rawLabel string, at time.Time) error {
	_, err := s.db.Collection(ColMoodLogs).InsertOne(ctx, &MoodLog{
		UserID:    userID,
		Mood:      rawLabel,
		CreatedAt: at,
	})
	return errors.Wrap(err, "insert mood log")
}

// FetchRawEvents 拉取某个来源集合里该用户的全部原始文档。
// 记录形状不可控，按 bson.M 原样返回，交给聚合引擎做归一。
func (s *moodRepoImpl) FetchRawEvents(ctx context.Context, collection string, userID uint64) ([]bson.M, error) {
	cursor, err := s.db.Collection(collection).Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetLimit(5000),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", collection)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "decode %s", collection)
	}
	return docs, nil
}
