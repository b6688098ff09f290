package server

import (
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"strings"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/storage"
	"github.com/biopanel-ai/biopanel/app/panel/internal/conf"
	"github.com/biopanel-ai/biopanel/app/panel/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.PanelService, logger log.Logger) *khttp.Server {
	var opts = []khttp.ServerOption{
		khttp.Middleware(
			recovery.Recovery(),
		),
		// SSE 是长连接，不能套全局请求超时
		khttp.Timeout(0),
	}
	if c.Http.Addr != "" {
		opts = append(opts, khttp.Address(c.Http.Addr))
	}

	srv := khttp.NewServer(opts...)

	// authUser 从 Authorization 头或 token 查询参数取 JWT。
	// EventSource 无法自定义请求头，SSE 只能走查询参数。
	authUser := func(ctx khttp.Context) (string, error) {
		token := strings.TrimPrefix(ctx.Header().Get("Authorization"), "Bearer ")
		if token == "" {
			token = ctx.Query().Get("token")
		}
		if token == "" {
			return "", kerrors.Unauthorized("AUTH_FAILED", "missing token")
		}
		return s.Authenticate(token)
	}

	r := srv.Route("/api")

	r.POST("/auth/register", func(ctx khttp.Context) error {
		var req service.RegisterReq
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := s.Register(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.JSON(nethttp.StatusOK, reply)
	})

	r.POST("/auth/login", func(ctx khttp.Context) error {
		var req service.LoginReq
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := s.Login(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.JSON(nethttp.StatusOK, reply)
	})

	r.POST("/analysis/start", func(ctx khttp.Context) error {
		username, err := authUser(ctx)
		if err != nil {
			return err
		}
		var req service.StartAnalysisReq
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		session, err := s.StartAnalysis(ctx, username, &req)
		if err != nil {
			return err
		}
		return ctx.JSON(nethttp.StatusOK, session)
	})

	r.GET("/analysis", func(ctx khttp.Context) error {
		username, err := authUser(ctx)
		if err != nil {
			return err
		}
		sessions, err := s.ListAnalyses(ctx, username)
		if err != nil {
			return err
		}
		return ctx.JSON(nethttp.StatusOK, sessions)
	})

	r.GET("/analysis/{id}", func(ctx khttp.Context) error {
		username, err := authUser(ctx)
		if err != nil {
			return err
		}
		session, err := s.GetAnalysis(ctx, username, ctx.Vars().Get("id"))
		if err != nil {
			return err
		}
		return ctx.JSON(nethttp.StatusOK, session)
	})

	r.GET("/analysis/{id}/messages", func(ctx khttp.Context) error {
		username, err := authUser(ctx)
		if err != nil {
			return err
		}
		msgs, err := s.GetMessages(ctx, username, ctx.Vars().Get("id"))
		if err != nil {
			return err
		}
		return ctx.JSON(nethttp.StatusOK, msgs)
	})

	r.GET("/analysis/{id}/events", func(ctx khttp.Context) error {
		return serveEvents(ctx, s, authUser)
	})

	r.GET("/sectors", func(ctx khttp.Context) error {
		return ctx.JSON(nethttp.StatusOK, model.Sectors)
	})

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
		w.Write([]byte("ok"))
	})

	return srv
}

// serveEvents SSE 事件流。先推一条当前会话快照，再持续转发 Hub 事件。
// 客户端断线后重连即可拿到新快照，丢失的中间事件通过 messages 接口补齐。
func serveEvents(ctx khttp.Context, s *service.PanelService, authUser func(khttp.Context) (string, error)) error {
	username, err := authUser(ctx)
	if err != nil {
		return err
	}
	id := ctx.Vars().Get("id")

	session, ch, cancel, err := s.SubscribeAnalysis(ctx, username, id)
	if err != nil {
		return err
	}
	defer cancel()

	w := ctx.Response()
	flusher, ok := w.(nethttp.Flusher)
	if !ok {
		return kerrors.InternalServer("SSE_UNSUPPORTED", "streaming unsupported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	writeEvent := func(ev storage.Event) {
		data, err := json.Marshal(ev)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	writeEvent(storage.Event{Type: "snapshot", SessionID: id, Payload: session})

	// 终态会话不会再产生事件
	if session.Status == model.StatusCompleted || session.Status == model.StatusFailed {
		return nil
	}

	keepalive := time.NewTicker(15 * time.Second)
	defer keepalive.Stop()

	reqCtx := ctx.Request().Context()
	for {
		select {
		case <-reqCtx.Done():
			return nil
		case ev, open := <-ch:
			if !open {
				return nil
			}
			writeEvent(ev)
			if ev.Type == "error" || isCompleted(ev) {
				return nil
			}
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}

func isCompleted(ev storage.Event) bool {
	if ev.Type != "phase" {
		return false
	}
	payload, ok := ev.Payload.(map[string]any)
	if !ok {
		return false
	}
	return payload["phase"] == model.PhaseCompleted
}
