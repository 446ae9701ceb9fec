package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"MaskBoard/internal/export"
	"MaskBoard/internal/logging"
	"MaskBoard/internal/state"
)

const (
	FeedPath  = "/feed"
	writeWait = 5 * time.Second
	sendQueue = 8
)

// Frame is one snapshot of the mask as sent to viewers. Polygons uses the
// same shape format as the JSON export.
type Frame struct {
	Type     string         `json:"type"`
	Polygons []export.Shape `json:"polygons"`
	Current  *export.Shape  `json:"current"`
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// Feed streams mask snapshots to read-only WebSocket viewers. It is a
// control.Surface: the session fills it like any renderer and every Draw
// becomes a broadcast. Viewers cannot edit; anything they send is dropped.
type Feed struct {
	upgrader websocket.Upgrader

	// pending is only touched from the editor goroutine.
	pending Frame

	mu      sync.Mutex
	viewers map[*viewer]struct{}
	last    []byte
}

func NewFeed() *Feed {
	return &Feed{
		// nil CheckOrigin rejects browser pages from other hosts.
		upgrader: websocket.Upgrader{},
		viewers: make(map[*viewer]struct{}),
		pending: Frame{Type: "frame"},
	}
}

func (f *Feed) Clear() {
	f.pending = Frame{Type: "frame", Polygons: []export.Shape{}}
}

func (f *Feed) AddShape(p state.Polygon) {
	s := export.ShapeOf(p)
	if p.Closed {
		f.pending.Polygons = append(f.pending.Polygons, s)
		return
	}
	f.pending.Current = &s
}

func (f *Feed) Draw() {
	if f.pending.Polygons == nil {
		f.pending.Polygons = []export.Shape{}
	}
	data, err := json.Marshal(f.pending)
	if err != nil {
		log.Printf("[FEED] Encoding frame failed: %v", err)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = data
	for v := range f.viewers {
		select {
		case v.send <- data:
		default:
			logging.Debugf("[FEED] Viewer %s is behind, dropping frame", v.conn.RemoteAddr())
		}
	}
}

// Viewers returns the number of connected viewers.
func (f *Feed) Viewers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.viewers)
}

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[FEED] Upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	v := &viewer{conn: conn, send: make(chan []byte, sendQueue)}

	f.mu.Lock()
	f.viewers[v] = struct{}{}
	if f.last != nil {
		v.send <- f.last
	}
	f.mu.Unlock()
	log.Printf("[FEED] Viewer connected from %s", conn.RemoteAddr())

	go v.writeLoop()
	go f.readLoop(v)
}

// readLoop discards inbound messages and unregisters the viewer when the
// connection goes away.
func (f *Feed) readLoop(v *viewer) {
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			log.Printf("[FEED] Viewer %s disconnected: %v", v.conn.RemoteAddr(), err)
			f.remove(v)
			return
		}
	}
}

func (v *viewer) writeLoop() {
	defer v.conn.Close()
	for msg := range v.send {
		v.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := v.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	v.conn.SetWriteDeadline(time.Now().Add(writeWait))
	v.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (f *Feed) remove(v *viewer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.viewers[v]; ok {
		delete(f.viewers, v)
		close(v.send)
	}
}

// Close disconnects every viewer.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for v := range f.viewers {
		delete(f.viewers, v)
		close(v.send)
	}
}

// Serve runs the feed on port until ctx is cancelled.
func (f *Feed) Serve(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle(FeedPath, f)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		f.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[FEED] Listening on port %d", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("feed server: %w", err)
	}
	return nil
}
