package service

import (
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"stressease/internal/api/dto"
	"stressease/internal/model"
	"stressease/internal/pkg/consts"
	"stressease/internal/pkg/redis"
	"stressease/internal/pkg/wellness"
	"stressease/internal/repository"

	"github.com/goccy/go-json"
)

// dass21Scale DASS-21 刻度映射：1-5 原始分逐题映射后求和再 ×2
var dass21Scale = map[int]int{1: 0, 2: 1, 3: 1, 4: 2, 5: 3}

type QuizService interface {
	SubmitDaily(ctx context.Context, userID uint64, dto *dto.DailyQuizDTO) (*dto.QuizResultDTO, error)
	GetRollups(ctx context.Context, userID uint64) ([]*dto.RollupDTO, error)
}

type QuizServiceImpl struct {
	quizRepo   repository.QuizRepo
	cycleRepo  repository.QuizCycleRepo
	rollupRepo repository.RollupRepo
}

func NewQuizService(
	quizRepo repository.QuizRepo,
	cycleRepo repository.QuizCycleRepo,
	rollupRepo repository.RollupRepo,
) QuizService {
	return &QuizServiceImpl{
		quizRepo:   quizRepo,
		cycleRepo:  cycleRepo,
		rollupRepo: rollupRepo,
	}
}

func (s *QuizServiceImpl) SubmitDaily(ctx context.Context, userID uint64, quizDTO *dto.DailyQuizDTO) (*dto.QuizResultDTO, error) {
	if _, err := time.Parse(wellness.DateLayout, quizDTO.Date); err != nil {
		return nil, ErrQuizDateInvalid
	}

	answers := collectAnswers(quizDTO)
	if len(answers) != consts.TotalQuestionCount {
		return nil, ErrParamInvalid
	}
	for _, v := range answers {
		if v < 1 || v > 5 {
			return nil, ErrQuizScoreInvalid
		}
	}

	coreSum := 0
	for _, v := range answers[:consts.CoreQuestionCount] {
		coreSum += v
	}
	rotatingSum := 0
	for _, v := range answers[consts.CoreQuestionCount : consts.CoreQuestionCount+consts.RotatingQuestionCount] {
		rotatingSum += v
	}

	highIdx, lowIdx := extremeAnswers(answers)

	rotatingJSON, err := json.Marshal(quizDTO.RotatingScores.Scores)
	if err != nil {
		return nil, err
	}

	sub := &model.QuizSubmission{
		UserID:         userID,
		QuizDate:       quizDTO.Date,
		CoreMood:       quizDTO.CoreScores.Mood,
		CoreEnergy:     quizDTO.CoreScores.Energy,
		CoreSleep:      quizDTO.CoreScores.Sleep,
		CoreStress:     quizDTO.CoreScores.Stress,
		RotatingDomain: quizDTO.RotatingScores.DomainName,
		RotatingScores: string(rotatingJSON),
		DassDepression: quizDTO.DassToday[0],
		DassAnxiety:    quizDTO.DassToday[1],
		DassStress:     quizDTO.DassToday[2],
		CoreAvg:        float64(coreSum) / float64(consts.CoreQuestionCount),
		RotatingAvg:    float64(rotatingSum) / float64(consts.RotatingQuestionCount),
		HighPointQID:   questionID(highIdx),
		HighPointScore: answers[highIdx],
		LowPointQID:    questionID(lowIdx),
		LowPointScore:  answers[lowIdx],
		SubmittedAt:    time.Now(),
	}
	if quizDTO.DayKey != nil {
		sub.DayKey = *quizDTO.DayKey
	}
	if quizDTO.AdditionalNotes != nil {
		sub.AdditionalNotes = *quizDTO.AdditionalNotes
	}

	existing, err := s.quizRepo.GetByUserAndDate(ctx, userID, quizDTO.Date)
	if err != nil {
		return nil, err
	}

	created := false
	if existing != nil {
		// 同日重复提交覆盖更新，提交序号不变，不推进周期
		sub.ID = existing.ID
		sub.SubmissionIndex = existing.SubmissionIndex
		sub.CreatedAt = existing.CreatedAt
		if err = s.quizRepo.UpdateSubmission(ctx, sub); err != nil {
			return nil, err
		}
	} else {
		newIndex, err := s.cycleRepo.IncrementAndGet(ctx, userID)
		if err != nil {
			return nil, err
		}
		sub.SubmissionIndex = newIndex
		if err = s.quizRepo.CreateSubmission(ctx, sub); err != nil {
			return nil, err
		}
		created = true
	}

	result := &dto.QuizResultDTO{
		SubmissionIndex: sub.SubmissionIndex,
		CoreAvg:         sub.CoreAvg,
		RotatingAvg:     sub.RotatingAvg,
		HighPoint:       dto.QuestionPointDTO{QuestionID: sub.HighPointQID, Score: sub.HighPointScore},
		LowPoint:        dto.QuestionPointDTO{QuestionID: sub.LowPointQID, Score: sub.LowPointScore},
	}

	if created && sub.SubmissionIndex > 0 && sub.SubmissionIndex%consts.WeeklyCycleLength == 0 {
		cycle := sub.SubmissionIndex / consts.WeeklyCycleLength
		generated, err := s.generateRollup(ctx, userID, cycle, sub.SubmissionIndex)
		if err != nil {
			log.ErrorContext(ctx, "weekly rollup generation failed",
				"err", err, "user_id", userID, "cycle", cycle)
		} else if generated {
			result.RollupGenerated = true
			result.CycleNumber = cycle
		}
	}

	if err = redis.SAdd(ctx, consts.AggregateDirtyKey, strconv.FormatUint(userID, 10)); err != nil {
		log.WarnContext(ctx, "mark user dirty failed", "err", err, "user_id", userID)
	}
	return result, nil
}

func (s *QuizServiceImpl) GetRollups(ctx context.Context, userID uint64) ([]*dto.RollupDTO, error) {
	rollups, err := s.rollupRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.RollupDTO, 0, len(rollups))
	for _, r := range rollups {
		list = append(list, &dto.RollupDTO{
			CycleNumber:     r.CycleNumber,
			AvgDepression:   r.AvgDepression,
			AvgAnxiety:      r.AvgAnxiety,
			AvgStress:       r.AvgStress,
			DepressionTotal: r.DepressionTotal,
			AnxietyTotal:    r.AnxietyTotal,
			StressTotal:     r.StressTotal,
			SampleCount:     r.SampleCount,
			Incomplete:      r.Incomplete,
			WeekStart:       r.WeekStart,
			WeekEnd:         r.WeekEnd,
			GeneratedAt:     r.GeneratedAt.Format(time.RFC3339),
		})
	}
	return list, nil
}

// generateRollup 汇总一个周期（7 次提交）的 DASS 数据，幂等：同周期只生成一次
func (s *QuizServiceImpl) generateRollup(ctx context.Context, userID uint64, cycle, endIndex int) (bool, error) {
	exists, err := s.rollupRepo.ExistsByCycle(ctx, userID, cycle)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	from := endIndex - consts.WeeklyCycleLength + 1
	subs, err := s.quizRepo.GetByIndexRange(ctx, userID, from, endIndex)
	if err != nil {
		return false, err
	}
	if len(subs) == 0 {
		return false, fmt.Errorf("no submissions found for cycle %d", cycle)
	}

	var depSum, anxSum, strSum int
	var depTotal, anxTotal, strTotal int
	for _, sub := range subs {
		depSum += sub.DassDepression
		anxSum += sub.DassAnxiety
		strSum += sub.DassStress
		depTotal += dass21Scale[sub.DassDepression]
		anxTotal += dass21Scale[sub.DassAnxiety]
		strTotal += dass21Scale[sub.DassStress]
	}

	n := float64(len(subs))
	rollup := &model.WeeklyRollup{
		UserID:          userID,
		CycleNumber:     cycle,
		AvgDepression:   float64(depSum) / n,
		AvgAnxiety:      float64(anxSum) / n,
		AvgStress:       float64(strSum) / n,
		DepressionTotal: depTotal * 2,
		AnxietyTotal:    anxTotal * 2,
		StressTotal:     strTotal * 2,
		SampleCount:     len(subs),
		Incomplete:      len(subs) < consts.WeeklyCycleLength,
		WeekStart:       subs[0].QuizDate,
		WeekEnd:         subs[len(subs)-1].QuizDate,
		GeneratedAt:     time.Now(),
	}
	if err = s.rollupRepo.CreateRollup(ctx, rollup); err != nil {
		return false, err
	}
	return true, nil
}

// collectAnswers 平铺 12 题答案，顺序固定：核心 q1-q4、轮换 q5-q9、DASS q10-q12
func collectAnswers(quizDTO *dto.DailyQuizDTO) []int {
	if len(quizDTO.RotatingScores.Scores) != consts.RotatingQuestionCount ||
		len(quizDTO.DassToday) != consts.DassQuestionCount {
		return nil
	}
	answers := make([]int, 0, consts.TotalQuestionCount)
	answers = append(answers,
		quizDTO.CoreScores.Mood,
		quizDTO.CoreScores.Energy,
		quizDTO.CoreScores.Sleep,
		quizDTO.CoreScores.Stress,
	)
	answers = append(answers, quizDTO.RotatingScores.Scores...)
	answers = append(answers, quizDTO.DassToday...)
	return answers
}

// extremeAnswers 返回最高分与最低分的题目下标，同分取靠前的题目
func extremeAnswers(answers []int) (highIdx, lowIdx int) {
	for i, v := range answers {
		if v > answers[highIdx] {
			highIdx = i
		}
		if v < answers[lowIdx] {
			lowIdx = i
		}
	}
	return highIdx, lowIdx
}

func questionID(idx int) string {
	return "q" + strconv.Itoa(idx+1)
}
