package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserUsernameExist       = errors.New("用户名已存在")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrMoodInvalid             = errors.New("情绪内容无效")
	ErrQuizDateInvalid         = errors.New("问卷日期无效")
	ErrQuizScoreInvalid        = errors.New("问卷分数超出范围")
	ErrRollupNotFound          = errors.New("周期汇总不存在")
	ErrSummaryNotFound         = errors.New("聚合数据不存在")
	ErrPredictFeatureInvalid   = errors.New("预测特征超出范围")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserUsernameExist:       BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrMoodInvalid:             BadRequest,
	ErrQuizDateInvalid:         BadRequest,
	ErrQuizScoreInvalid:        BadRequest,
	ErrRollupNotFound:          NotFound,
	ErrSummaryNotFound:         NotFound,
	ErrPredictFeatureInvalid:   BadRequest,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}
