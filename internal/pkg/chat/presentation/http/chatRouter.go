package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	qport "github.com/shuerry/Connectify-sub000/internal/infrastructure/queue/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/presentation/controller"
	"github.com/shuerry/Connectify-sub000/internal/pkg/presence"
)

// RegisterRoutes registers chat-related HTTP endpoints under the given router group
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(
	g *gin.RouterGroup,
	pool *pgxpool.Pool,
	cache cacheport.Cache,
	client qport.Client,
	router *realtime.Router,
	tracker *presence.Tracker,
) {
	createCtl := controller.NewCreateChatController(pool, router)
	getChatCtl := controller.NewGetChatController(pool)
	sendMsgCtl := controller.NewSendMessageController(pool, cache, client, router)
	getMsgCtl := controller.NewGetMessageController(pool)
	editMsgCtl := controller.NewEditMessageController(pool, router)
	deleteMsgCtl := controller.NewDeleteMessageController(pool, router)
	markReadCtl := controller.NewMarkChatReadController(pool, router)
	toggleCtl := controller.NewToggleChatNotificationsController(pool)
	addMemberCtl := controller.NewAddParticipantController(pool, router)
	removeMemberCtl := controller.NewRemoveParticipantController(pool)
	socketCtl := controller.NewChatSocketController(pool, cache, client, router, tracker)

	// POST /api/v1/chat -> create a chat
	g.POST("/chat", createCtl.Handle())

	// GET /api/v1/chat/:chatId -> chat snapshot with receipt label
	g.GET("/chat/:chatId", getChatCtl.Handle())

	// POST /api/v1/chat/:chatId -> send a message into a chat
	g.POST("/chat/:chatId", sendMsgCtl.Handle())

	// GET /api/v1/chat/:chatId/messages -> fetch messages by chat id
	g.GET("/chat/:chatId/messages", getMsgCtl.Handle())

	// POST /api/v1/chat/:chatId/read -> mark every message read for a member
	g.POST("/chat/:chatId/read", markReadCtl.Handle())

	// PUT /api/v1/chat/:chatId/notifications -> flip a member's notify toggle
	g.PUT("/chat/:chatId/notifications", toggleCtl.Handle())

	// POST /api/v1/chat/:chatId/members -> invite a user (group chats only)
	g.POST("/chat/:chatId/members", addMemberCtl.Handle())

	// DELETE /api/v1/chat/:chatId/members/:username -> leave a chat
	g.DELETE("/chat/:chatId/members/:username", removeMemberCtl.Handle())

	// PUT /api/v1/message/:messageId -> edit a message body (author only)
	g.PUT("/message/:messageId", editMsgCtl.Handle())

	// DELETE /api/v1/message/:messageId -> soft-delete a message (author only)
	g.DELETE("/message/:messageId", deleteMsgCtl.Handle())

	// GET /api/v1/chat/ws -> websocket endpoint for realtime chat
	g.GET("/chat/ws", socketCtl.Handle())
}
