package search

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
)

// LiveRequest is one keystroke-level query sent over the live socket.
type LiveRequest struct {
	Seq   int64  `json:"seq"`
	Query string `json:"query"`
}

type liveError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type liveResult struct {
	Type string `json:"type"`
	Result
}

// LiveHandler serves search-as-you-type over a WebSocket. Each message
// supersedes the previous one: the older query is cancelled and its result,
// if it still arrives, is dropped.
type LiveHandler struct {
	service  *Service
	upgrader websocket.Upgrader
}

// NewLiveHandler accepts connections from allowedOrigins; an empty list
// accepts any origin.
func NewLiveHandler(service *Service, allowedOrigins []string) *LiveHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &LiveHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// liveConn serializes writes; gorilla connections allow one writer at a time.
type liveConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (lc *liveConn) write(v any) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	_ = lc.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return lc.conn.WriteJSON(v)
}

// writeLatest writes v only if seq is still the newest request of seqr.
// The check holds the write lock, so a superseded result can never be
// written after a newer one has started.
func (lc *liveConn) writeLatest(seqr *Sequencer, seq int64, v any) (bool, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if !seqr.IsLatest(seq) {
		return false, nil
	}
	_ = lc.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return true, lc.conn.WriteJSON(v)
}

func (lc *liveConn) ping() error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Handle GET /api/v1/search/live
func (h *LiveHandler) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("search: websocket_upgrade_failed err=%v", err)
		return
	}
	defer conn.Close()

	lc := &liveConn{conn: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go h.pingLoop(ctx, lc)

	var seqr Sequencer
	defer seqr.Stop()
	h.readLoop(ctx, lc, &seqr)
}

func (h *LiveHandler) pingLoop(ctx context.Context, lc *liveConn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := lc.ping(); err != nil {
				return
			}
		}
	}
}

func (h *LiveHandler) readLoop(ctx context.Context, lc *liveConn, seqr *Sequencer) {
	for {
		_, raw, err := lc.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("search: websocket_read_failed err=%v", err)
			}
			return
		}

		var req LiveRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			_ = lc.write(liveError{Type: "error", Code: "INVALID_JSON", Message: "Failed to parse message"})
			continue
		}

		qctx, ok := seqr.Begin(ctx, req.Seq)
		if !ok {
			// Older than something already asked for; nobody is waiting on it.
			continue
		}
		go h.answer(qctx, lc, seqr, req)
	}
}

func (h *LiveHandler) answer(ctx context.Context, lc *liveConn, seqr *Sequencer, req LiveRequest) {
	res := h.service.Search(ctx, req.Query, req.Seq)
	if ctx.Err() != nil {
		return
	}
	defer seqr.Finish(req.Seq)
	if _, err := lc.writeLatest(seqr, req.Seq, liveResult{Type: "result", Result: res}); err != nil {
		log.Printf("search: websocket_write_failed seq=%d err=%v", req.Seq, err)
	}
}
