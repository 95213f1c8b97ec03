package consts

// 每日问卷固定结构：4 道核心题 + 5 道轮换题 + 3 道 DASS 题
const (
	CoreQuestionCount     = 4
	RotatingQuestionCount = 5
	DassQuestionCount     = 3
	TotalQuestionCount    = 12
)

// WeeklyCycleLength 每满多少次问卷提交触发一次周期汇总
const WeeklyCycleLength = 7

const (
	DassDepression = "depression"
	DassAnxiety    = "anxiety"
	DassStress     = "stress"
)

const (
	EventTypeInsert = "INSERT"
	EventTypeUpdate = "UPDATE"
	EventTypeDelete = "DELETE"
)
