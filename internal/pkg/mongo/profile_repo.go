package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const colUserProfiles = "user_profiles"

// UserAggregate 每次聚合整体重算后合并进用户画像文档的汇总块。
// 始终全量覆盖而不是增量修补，对同样的输入重复聚合结果一致。
type UserAggregate struct {
	UserID         uint64         `bson:"user_id" json:"userId"`
	TotalMoodCount int            `bson:"total_mood_count" json:"totalMoodCount"`
	MoodCounts     map[string]int `bson:"mood_counts" json:"moodCounts"`
	MostCommonMood string         `bson:"most_common_mood" json:"mostCommonMood"`
	OverallStatus  string         `bson:"overall_status" json:"overallStatus"`
	AvgQuizScore   float64        `bson:"avg_quiz_score" json:"avgQuizScore"`
	AvgMoodScore   float64        `bson:"avg_mood_score" json:"avgMoodScore"`
	MoodCount7d    int            `bson:"mood_count_7d" json:"moodCount7d"`
	ChatCount7d    int            `bson:"chat_count_7d" json:"chatCount7d"`
	LastUpdated    time.Time      `bson:"last_updated" json:"lastUpdated"`
}

type ProfileRepo interface {
	UpsertAggregate(ctx context.Context, agg *UserAggregate) error
	GetAggregate(ctx context.Context, userID uint64) (*UserAggregate, error)
}

type profileRepoImpl struct {
	col *mongo.Collection
}

func NewProfileRepo(db *mongo.Database) ProfileRepo {
	return &profileRepoImpl{col: db.Collection(colUserProfiles)}
}

// UpsertAggregate 以 $set 合并写入画像文档，不覆盖文档里的其他字段
func (s *profileRepoImpl) UpsertAggregate(ctx context.Context, agg *UserAggregate) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": agg.UserID},
		bson.M{"$set": bson.M{"aggregate": agg}},
		options.Update().SetUpsert(true),
	)
	return errors.Wrap(err, "upsert user aggregate")
}

func (s *profileRepoImpl) GetAggregate(ctx context.Context, userID uint64) (*UserAggregate, error) {
	var doc struct {
		Aggregate *UserAggregate `bson:"aggregate"`
	}
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get user aggregate")
	}
	return doc.Aggregate, nil
}
