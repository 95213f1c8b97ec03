package handler

import (
	"context"
	log "log/slog"
	"net/http"
	"strconv"
	"time"

	"stressease/internal/pkg/consts"
	"stressease/internal/pkg/redis"
	"stressease/internal/pkg/response"
	"stressease/internal/pkg/security"
	"stressease/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct {
	aggregateSvc service.AggregateService
}

func NewWsHandler(aggregateSvc service.AggregateService) *WsHandler {
	return &WsHandler{aggregateSvc: aggregateSvc}
}

// LiveSummary 建立 WS 连接，用户数据变更时推送重算后的聚合视图
func (s *WsHandler) LiveSummary(c *gin.Context) {
	// 鉴权
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("WS 鉴权失败", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}
	userID := claims.UserID

	// 升级 Websocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	channel := consts.UserSummaryChannel + strconv.FormatUint(userID, 10)
	pubsub := redis.Subscribe(context.Background(), channel)
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("用户 WS 连接已建立", "userID", userID)

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：变更通知到达即重算并推送
	redisCh := pubsub.Channel()
	for {
		select {
		case <-redisCh:
			summary, err := s.aggregateSvc.Recompute(context.Background(), userID)
			if err != nil {
				log.Error("WS 聚合重算失败", "userID", userID, "err", err)
				continue
			}
			payload, err := json.Marshal(summary)
			if err != nil {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err = conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Error("WS 推送失败", "userID", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("用户 WS 连接已断开", "userID", userID)
			return
		}
	}
}
