package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stressease/internal/model"
)

type QuizCycleRepo interface {
	GetState(ctx context.Context, userID uint64) (*model.QuizCycleState, error)
	IncrementAndGet(ctx context.Context, userID uint64) (int, error)
}

type QuizCycleRepoImpl struct {
	db *gorm.DB
}

func NewQuizCycleRepo(db *gorm.DB) QuizCycleRepo {
	return &QuizCycleRepoImpl{db: db}
}

func (s *QuizCycleRepoImpl) GetState(ctx context.Context, userID uint64) (*model.QuizCycleState, error) {
	state := &model.QuizCycleState{}
	result := s.db.WithContext(ctx).First(state, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return state, nil
}

// IncrementAndGet 原子地把用户的提交计数 +1 并返回新值。
// 行上加悲观锁，避免同一用户并发提交时计数丢失。
func (s *QuizCycleRepoImpl) IncrementAndGet(ctx context.Context, userID uint64) (int, error) {
	var newCount int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state := &model.QuizCycleState{}
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(state, "user_id = ?", userID).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			state = &model.QuizCycleState{UserID: userID, SubmissionCount: 0}
			if err = tx.Create(state).Error; err != nil {
				return err
			}
		}

		state.SubmissionCount++
		newCount = state.SubmissionCount
		return tx.Save(state).Error
	})
	if err != nil {
		return 0, err
	}
	return newCount, nil
}
