package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/assetiq/internal/llm"
)

// DefaultContext is the system prompt used when no context file is configured.
const DefaultContext = `You are AssetIQ, the AI research companion inside the FinMatrix platform.
You help retail investors compare Indian financial instruments (mutual funds, ETFs and listed stocks).
Answer in concise markdown. Compare instruments on the metrics that matter for their type,
state clearly when figures may be out of date, and never give personalised investment advice.`

const banner = "AI research companion inside the FinMatrix platform"

// LoadContext reads the system prompt from path, or returns DefaultContext
// when path is empty.
func LoadContext(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultContext, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load context: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Server answers the chat API. Every request is independent: the system
// context plus the user message, nothing remembered in between.
type Server struct {
	Provider     llm.Provider
	Context      string
	Origins      []string
	Logger       *log.Logger
	NewSessionID func() string
}

type chatRequest struct {
	Message   *string `json:"message"`
	SessionID string  `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/{$}", s.handleRoot)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	return s.logRequests(s.cors(mux))
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": banner})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "invalid request body: " + err.Error()})
		return
	}
	if req.Message == nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "field required: message"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.newSessionID()
	}

	answer, err := s.Provider.Chat(r.Context(), llm.ChatRequest{System: s.Context, User: *req.Message})
	if err != nil {
		s.logf("chat %s: %v", sessionID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: answer, SessionID: sessionID})
}

func (s *Server) newSessionID() string {
	if s.NewSessionID != nil {
		return s.NewSessionID()
	}
	return uuid.NewString()
}

const corsMethods = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"

func (s *Server) allowedOrigin(origin string) bool {
	for _, o := range s.Origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// cors allows the configured origins with credentials, any method and any
// header, and answers preflight requests itself.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		allowed := s.allowedOrigin(origin)
		if preflight {
			if !allowed {
				http.Error(w, "Disallowed CORS origin", http.StatusBadRequest)
				return
			}
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", corsMethods)
			if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				h.Set("Access-Control-Allow-Headers", reqHeaders)
			}
			h.Set("Access-Control-Max-Age", "600")
			h.Add("Vary", "Origin")
			w.WriteHeader(http.StatusOK)
			return
		}
		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"detail":"encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// ErrNoProvider is returned by New when provider is nil.
var ErrNoProvider = errors.New("server: llm provider required")

// New builds a Server after checking its collaborators.
func New(provider llm.Provider, systemPrompt string, origins []string, logger *log.Logger) (*Server, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}
	return &Server{Provider: provider, Context: systemPrompt, Origins: origins, Logger: logger}, nil
}
