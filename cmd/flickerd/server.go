package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Neumenon/flicker/anim"
	"github.com/Neumenon/flicker/flicker"
)

//go:embed index.html
var indexHTML []byte

// server holds the live sessions and their frame hubs.
type server struct {
	sched anim.Scheduler
	reg   *anim.Registry
	store anim.StateStore

	mu   sync.Mutex
	hubs map[uuid.UUID]*frameHub
}

func newServer(store anim.StateStore) *server {
	return &server{
		sched: anim.NewTickerScheduler(),
		reg:   anim.NewRegistry(),
		store: store,
		hubs:  make(map[uuid.UUID]*frameHub),
	}
}

func (s *server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/layout", s.handleLayout).Methods("GET")
	r.HandleFunc("/state", s.handleGetState).Methods("GET")
	r.HandleFunc("/state", s.handlePutState).Methods("PUT")
	r.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	r.HandleFunc("/sessions/{id}/frames", s.handleFrames).Methods("GET")
	r.HandleFunc("/sessions/{id}/delay", s.handleSetDelay).Methods("PUT")
	r.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")
	return r
}

// shutdown stops every session and disconnects all watchers.
func (s *server) shutdown() {
	s.reg.StopAll()
	s.mu.Lock()
	hubs := s.hubs
	s.hubs = make(map[uuid.UUID]*frameHub)
	s.mu.Unlock()
	for _, h := range hubs {
		h.close()
	}
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

type layoutResponse struct {
	Bars    []flicker.Rect      `json:"bars"`
	Markers [2]flicker.Triangle `json:"markers"`
	Height  int                 `json:"height"`
}

// handleLayout computes bar and marker geometry for the page:
// GET /layout?width=640&barwidth=44. The browser draws rectangles; all
// placement math stays on this side.
func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	width := intQuery(r, "width", 640)
	barWidth := intQuery(r, "barwidth", flicker.DefaultBarWidth)

	l := flicker.NewLayout(width, barWidth)
	resp := layoutResponse{
		Markers: l.Markers(),
		Height:  l.Height(),
	}
	for i := 0; i < flicker.BarCount; i++ {
		resp.Bars = append(resp.Bars, l.BarRect(i))
	}
	writeJSON(w, resp)
}

func intQuery(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return def
	}
	return n
}

type stateResponse struct {
	BarWidth int   `json:"barwidth"`
	DelayMS  int64 `json:"delay_ms"`
}

func (s *server) handleGetState(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, stateResponse{BarWidth: cfg.BarWidth, DelayMS: cfg.Delay.Milliseconds()})
}

func (s *server) handlePutState(w http.ResponseWriter, r *http.Request) {
	var req stateResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	cfg := anim.Config{
		BarWidth: req.BarWidth,
		Delay:    time.Duration(req.DelayMS) * time.Millisecond,
	}
	if err := cfg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := s.store.Save(cfg); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, stateResponse{BarWidth: cfg.BarWidth, DelayMS: cfg.Delay.Milliseconds()})
}

type createSessionRequest struct {
	Challenge string `json:"challenge"`
	BarWidth  int    `json:"barwidth"`
	DelayMS   int64  `json:"delay_ms"`
}

type createSessionResponse struct {
	ID       string `json:"id"`
	Symbols  int    `json:"symbols"`
	BarWidth int    `json:"barwidth"`
	DelayMS  int64  `json:"delay_ms"`
}

func (s *server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if req.Challenge == "" {
		http.Error(w, "missing challenge", http.StatusBadRequest)
		return
	}

	// Stored settings fill in whatever the request left out.
	cfg, err := s.store.Load()
	if err != nil {
		log.Printf("flickerd: load state: %v (using defaults)", err)
		cfg = anim.DefaultConfig()
	}
	if req.BarWidth != 0 {
		cfg.BarWidth = req.BarWidth
	}
	if req.DelayMS != 0 {
		cfg.Delay = time.Duration(req.DelayMS) * time.Millisecond
	}
	if err := cfg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	hub := newFrameHub()
	session, err := anim.StartSession(req.Challenge, cfg, s.sched, hub.broadcast)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.reg.Add(session)
	s.mu.Lock()
	s.hubs[session.ID()] = hub
	s.mu.Unlock()

	log.Printf("flickerd: session %s started (%d symbols, delay %v)",
		session.ID(), session.Table().Len(), cfg.Delay)

	writeJSON(w, createSessionResponse{
		ID:       session.ID().String(),
		Symbols:  session.Table().Len(),
		BarWidth: cfg.BarWidth,
		DelayMS:  cfg.Delay.Milliseconds(),
	})
}

// handleFrames streams frames as server-sent events, one event per tick,
// the five bits as '0'/'1' text (clock first).
func (s *server) handleFrames(w http.ResponseWriter, r *http.Request) {
	_, hub, ok := s.lookup(w, r)
	if !ok {
		return
	}
	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := hub.subscribe()
	defer hub.unsubscribe(sub)

	for {
		select {
		case <-r.Context().Done():
			return
		case frame, open := <-sub:
			if !open {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", frame.String()); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

type setDelayRequest struct {
	DelayMS int64 `json:"delay_ms"`
}

func (s *server) handleSetDelay(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req setDelayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if err := session.SetDelay(time.Duration(req.DelayMS) * time.Millisecond); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	session, hub, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id := session.ID()
	s.reg.Remove(id)
	s.mu.Lock()
	delete(s.hubs, id)
	s.mu.Unlock()
	hub.close()

	log.Printf("flickerd: session %s stopped", id)
	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the {id} path variable to a session and its hub,
// answering the request itself on failure.
func (s *server) lookup(w http.ResponseWriter, r *http.Request) (*anim.Session, *frameHub, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "bad session id", http.StatusBadRequest)
		return nil, nil, false
	}
	session := s.reg.Get(id)
	s.mu.Lock()
	hub := s.hubs[id]
	s.mu.Unlock()
	if session == nil || hub == nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, nil, false
	}
	return session, hub, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("flickerd: write response: %v", err)
	}
}
