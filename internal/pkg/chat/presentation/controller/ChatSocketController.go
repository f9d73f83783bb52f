package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	queueport "github.com/shuerry/Connectify-sub000/internal/infrastructure/queue/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/adapter"
	notifUsecase "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/usecase"
	notifAdapter "github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/adapter"
	"github.com/shuerry/Connectify-sub000/internal/pkg/presence"
	userAdapter "github.com/shuerry/Connectify-sub000/internal/repository/adapter"
)

// ChatSocketController handles the websocket endpoint for realtime chat traffic.
type ChatSocketController struct {
	router          *realtime.Router
	tracker         *presence.Tracker
	joinChatUC      *usecase.JoinChatUseCase
	sendMessageUC   *usecase.SendMessageUseCase
	fanOutUC        *usecase.FanOutMessageUseCase
	markReadUC      *usecase.MarkChatReadUseCase
	inflightTimeout time.Duration
}

func NewChatSocketController(
	pool *pgxpool.Pool,
	cache cacheport.Cache,
	client queueport.Client,
	router *realtime.Router,
	tracker *presence.Tracker,
) *ChatSocketController {
	repo := repoAdapter.NewPgChatRepository(pool)
	users := userAdapter.NewPgUserRepository(pool)
	notifRepo := notifAdapter.NewPgNotificationRepository(pool)
	createNotif := notifUsecase.NewCreateNotificationUseCase(notifRepo, cache, router)
	return &ChatSocketController{
		router:          router,
		tracker:         tracker,
		joinChatUC:      usecase.NewJoinChatUseCase(repo),
		sendMessageUC:   usecase.NewSendMessageUseCase(repo, users),
		fanOutUC:        usecase.NewFanOutMessageUseCase(repo, users, createNotif, client, router),
		markReadUC:      usecase.NewMarkChatReadUseCase(repo, router),
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when auth is added.
		return true
	},
}

type inboundFrame struct {
	Type    string  `json:"type"`
	ChatID  string  `json:"chatId,omitempty"`
	Body    string  `json:"body,omitempty"`
	MsgType string  `json:"msgType,omitempty"`
	To      *string `json:"to,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type   string `json:"type"`
	ChatID string `json:"chatId,omitempty"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and processes frames until the client disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Query("username")
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just log and return.
			return
		}

		conn := realtime.NewConnection(username, ws)
		ctl.router.Attach(conn)
		ctl.tracker.SetOnline(context.Background(), username, true)
		defer func() {
			ctl.router.Detach(conn)
			// Typing cleanup has to outlive the request context.
			ctl.tracker.Disconnect(context.Background(), conn.ID, username)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		handshakeAck := ackFrame{Type: "connected"}
		if payload, err := json.Marshal(handshakeAck); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.replyError(conn, "read_error", err.Error())
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "join":
				ctl.handleJoin(c, conn, frame)
			case "leave":
				ctl.handleLeave(conn, frame)
			case "message":
				ctl.handleMessage(c, conn, username, frame)
			case "typingStart":
				ctl.handleTyping(conn, username, frame, true)
			case "typingStop":
				ctl.handleTyping(conn, username, frame, false)
			case "markRead":
				ctl.handleMarkRead(c, conn, username, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *ChatSocketController) handleJoin(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	if frame.ChatID == "" {
		ctl.replyError(conn, "bad_request", "chatId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	err := ctl.joinChatUC.Execute(ctx, usecase.JoinChatInput{
		ChatID:   frame.ChatID,
		Username: conn.Username,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	ctl.router.Join(frame.ChatID, conn)

	ack := ackFrame{Type: "joined", ChatID: frame.ChatID}
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleLeave(conn *realtime.Connection, frame inboundFrame) {
	if frame.ChatID == "" {
		ctl.replyError(conn, "bad_request", "chatId is required")
		return
	}
	// Leaving the room must drop any lit typing indicator with it.
	ctl.tracker.ClearChat(conn.ID, frame.ChatID)
	ctl.router.Leave(frame.ChatID, conn)

	ack := ackFrame{Type: "left", ChatID: frame.ChatID}
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleMessage(c *gin.Context, conn *realtime.Connection, username string, frame inboundFrame) {
	if frame.ChatID == "" {
		ctl.replyError(conn, "bad_request", "chatId is required")
		return
	}

	// A sent message implies the sender stopped typing.
	ctl.tracker.StopTyping(conn.ID, frame.ChatID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	msg, err := ctl.sendMessageUC.Execute(ctx, usecase.SendMessageInput{
		ChatID:  frame.ChatID,
		Sender:  username,
		Body:    frame.Body,
		MsgType: chat.MessageType(frame.MsgType),
		MsgTo:   frame.To,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	go func() {
		fctx, fcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer fcancel()
		if err := ctl.fanOutUC.Execute(fctx, usecase.FanOutMessageInput{ChatID: frame.ChatID, MessageID: msg.ID}); err != nil {
			log.Printf("chat: fan-out message %s: %v", msg.ID, err)
		}
	}()

	ack := ackFrame{Type: "sent", ChatID: frame.ChatID}
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleTyping(conn *realtime.Connection, username string, frame inboundFrame, start bool) {
	if frame.ChatID == "" {
		ctl.replyError(conn, "bad_request", "chatId is required")
		return
	}
	if start {
		ctl.tracker.StartTyping(conn.ID, frame.ChatID, username)
	} else {
		ctl.tracker.StopTyping(conn.ID, frame.ChatID)
	}
}

func (ctl *ChatSocketController) handleMarkRead(c *gin.Context, conn *realtime.Connection, username string, frame inboundFrame) {
	if frame.ChatID == "" {
		ctl.replyError(conn, "bad_request", "chatId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	if _, err := ctl.markReadUC.Execute(ctx, usecase.MarkChatReadInput{ChatID: frame.ChatID, Username: username}); err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	ack := ackFrame{Type: "read", ChatID: frame.ChatID}
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		ctl.replyError(conn, "internal_error", "unexpected persistence error")
	case errors.Is(err, chat.ErrNotParticipant):
		ctl.replyError(conn, "forbidden", "user is not a participant in this chat")
	case errors.Is(err, chat.ErrChatNotFound):
		ctl.replyError(conn, "not_found", "chat not found")
	default:
		ctl.replyError(conn, "bad_request", err.Error())
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{
		Type:  "error",
		Code:  code,
		Error: message,
	}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
