package api

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
	"mediscreen.com/prescreen/archive"
	"mediscreen.com/prescreen/screening"
	"mediscreen.com/prescreen/session"
	"mediscreen.com/prescreen/types"
	"net/http"
	"sync"
	"time"
)

const (
	serviceName    = "MediScreen Voice Agent"
	serviceVersion = "1.0.0"
)

// Archiver is the persistence side of a finished call.
type Archiver interface {
	Archive(ctx context.Context, sess *session.Session) (types.CallRecord, error)
	Lookup(ctx context.Context, callSid string) (types.CallRecord, error)
	Backends(ctx context.Context) map[string]bool
}

type Handler struct {
	sessions       *session.Registry
	archiver       Archiver
	metrics        *Metrics
	archiveTimeout time.Duration
	callLimiter    *rate.Limiter
	pending        sync.WaitGroup
}

func NewHandler(sessions *session.Registry, archiver Archiver, metrics *Metrics) *Handler {
	return &Handler{
		sessions:       sessions,
		archiver:       archiver,
		metrics:        metrics,
		archiveTimeout: 30 * time.Second,
	}
}

// LimitNewCalls caps how many calls per second are answered. Calls over
// the limit hear an apology and are hung up.
func (h *Handler) LimitNewCalls(perSecond float64, burst int) {
	if perSecond <= 0 {
		h.callLimiter = nil
		return
	}
	h.callLimiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

func (h *Handler) HandleCall(w http.ResponseWriter, r *http.Request) {
	logger := makeRequestLogger(r)
	callSid := r.FormValue("CallSid")
	from := r.FormValue("From")
	if callSid == "" {
		logger.Error().Msg("Incoming call without CallSid")
		writeTwiML(w, speechResponse(technicalDifficulties, false))
		return
	}
	if h.callLimiter != nil && !h.callLimiter.Allow() {
		h.metrics.CallsRejected.Inc()
		logger.Warn().Str("call_sid", callSid).Msg("Too many new calls, rejecting")
		writeTwiML(w, speechResponse(technicalDifficulties, false))
		return
	}

	sess := h.sessions.Create(callSid, from)
	h.metrics.CallsStarted.Inc()
	logger.Info().Str("call_sid", callSid).Str("from", from).Msg("Incoming call")
	writeTwiML(w, greetingResponse(sess.Start()))
}

func (h *Handler) ProcessSpeech(w http.ResponseWriter, r *http.Request) {
	logger := makeRequestLogger(r)
	callSid := r.FormValue("CallSid")
	speech := r.FormValue("SpeechResult")

	sess, err := h.sessions.Get(callSid)
	if err != nil {
		logger.Error().Err(err).Str("call_sid", callSid).Msg("No active conversation for call")
		writeTwiML(w, speechResponse(unknownCall, false))
		return
	}

	turn := sess.Submit(speech)
	h.metrics.Turns.WithLabelValues(string(turn.Outcome)).Inc()
	logger.Debug().Str("call_sid", callSid).Str("outcome", string(turn.Outcome)).Msg("Processed speech")

	if !turn.Concluded {
		writeTwiML(w, speechResponse(turn.Reply, true))
		return
	}
	// A retry racing the concluding turn only repeats the closing.
	if turn.Outcome == screening.OutcomeConcluded {
		h.metrics.observeConclusion(sess.Summary().Eligible)
		h.finish(sess)
	}
	writeTwiML(w, speechResponse(turn.Reply, false))
}

func (h *Handler) CallStatus(w http.ResponseWriter, r *http.Request) {
	logger := makeRequestLogger(r)
	callSid := r.FormValue("CallSid")
	status := r.FormValue("CallStatus")
	logger.Info().Str("call_sid", callSid).Str("call_status", status).Msg("Call status")

	if isFinalStatus(status) {
		if sess, err := h.sessions.Get(callSid); err == nil {
			logger.Info().Str("call_sid", callSid).Msg("Call ended before the screening finished")
			h.finish(sess)
		}
	}
	w.WriteHeader(http.StatusOK)
}

func isFinalStatus(status string) bool {
	switch status {
	case "completed", "failed", "busy", "no-answer", "canceled":
		return true
	}
	return false
}

// finish drops the live session and archives it in the background.
func (h *Handler) finish(sess *session.Session) {
	h.sessions.Remove(sess.CallSid)
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), h.archiveTimeout)
		defer cancel()
		if _, err := h.archiver.Archive(ctx, sess); err != nil {
			h.metrics.ArchiveErrors.Inc()
			defaultLogger.Error().Err(err).Str("call_sid", sess.CallSid).Msg("Failed to archive call")
		}
	}()
}

// Wait blocks until background archiving is done.
func (h *Handler) Wait() {
	h.pending.Wait()
}

type healthResponse struct {
	Status              string          `json:"status"`
	Service             string          `json:"service"`
	Version             string          `json:"version"`
	ActiveConversations int             `json:"active_conversations"`
	Components          map[string]bool `json:"components"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:              "healthy",
		Service:             serviceName,
		Version:             serviceVersion,
		ActiveConversations: h.sessions.Count(),
		Components:          h.archiver.Backends(r.Context()),
	})
}

func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	callSid := chi.URLParam(r, "callSid")
	if sess, err := h.sessions.Get(callSid); err == nil {
		writeJSON(w, http.StatusOK, sess.Summary())
		return
	}
	record, err := h.archiver.Lookup(r.Context(), callSid)
	if err == nil {
		writeJSON(w, http.StatusOK, record.Summary)
		return
	}
	if !errors.Is(err, archive.ErrRecordNotFound) {
		logger := makeRequestLogger(r)
		logger.Warn().Err(err).Str("call_sid", callSid).Msg("Lookup failed")
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Conversation not found"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
