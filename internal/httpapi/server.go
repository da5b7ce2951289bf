// Package httpapi exposes the REST control surface of the voice daemon:
// profile management, processing lifecycle and settings. It only talks to the
// registry and the pipeline's control operations, never to the realtime block
// path.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/pipeline"
	"github.com/cwbudde/algo-voice/voice"
)

// Server handles the control API for one pipeline instance.
type Server struct {
	registry *voice.Registry
	pipe     *pipeline.Pipeline
	logger   *log.Logger

	mu     sync.Mutex
	staged core.ProcessorConfig
}

// New creates a server over the given registry and pipeline.
func New(registry *voice.Registry, pipe *pipeline.Pipeline, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		registry: registry,
		pipe:     pipe,
		logger:   logger,
		staged:   pipe.Config(),
	}
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/profiles", s.handleListProfiles)
	mux.HandleFunc("POST /api/profiles", s.handleCreateProfile)
	mux.HandleFunc("GET /api/profiles/search", s.handleSearchProfiles)
	mux.HandleFunc("GET /api/profiles/{name}", s.handleGetProfile)
	mux.HandleFunc("DELETE /api/profiles/{name}", s.handleDeleteProfile)
	mux.HandleFunc("POST /api/processing/start", s.handleStart)
	mux.HandleFunc("POST /api/processing/stop", s.handleStop)
	mux.HandleFunc("GET /api/processing/status", s.handleStatus)
	mux.HandleFunc("POST /api/processing/profile", s.handleChangeProfile)
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("POST /api/settings", s.handleUpdateSettings)
	mux.HandleFunc("GET /api/export/profiles", s.handleExportProfiles)
	mux.HandleFunc("POST /api/import/profiles", s.handleImportProfiles)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("httpapi: failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleListProfiles(w http.ResponseWriter, _ *http.Request) {
	profiles := make(map[string]*voice.Profile)
	for _, p := range s.registry.All() {
		profiles[p.Name] = p
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"profiles":        profiles,
		"categories":      s.registry.Categories(),
		"current_profile": s.pipe.ActiveProfile().Name,
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	profile, err := s.registry.Get(name)
	if err != nil {
		if errors.Is(err, voice.ErrProfileNotFound) {
			s.writeError(w, http.StatusNotFound, "profile '"+name+"' not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile voice.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if profile.Name == "" || profile.DisplayName == "" || profile.Description == "" {
		s.writeError(w, http.StatusBadRequest, "'name', 'display_name' and 'description' are required")
		return
	}
	if profile.PitchShift == 0 {
		profile.PitchShift = 1.0
	}
	if profile.FormantShift == 0 {
		profile.FormantShift = 1.0
	}

	if err := s.registry.Add(&profile); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Profile created successfully",
		"profile": &profile,
	})
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "original" {
		s.writeError(w, http.StatusBadRequest, "Cannot delete the original profile")
		return
	}

	s.registry.Remove(name)

	// Fall back to the identity profile when the active one goes away.
	if s.pipe.ActiveProfile().Name == name {
		if original, err := s.registry.Get("original"); err == nil {
			if err := s.pipe.Configure(original); err != nil {
				s.logger.Printf("httpapi: failed to reset profile: %v", err)
			}
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Profile '" + name + "' deleted successfully",
	})
}

func (s *Server) handleSearchProfiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "Search query 'q' is required")
		return
	}

	results := s.registry.Search(query)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if s.pipe.Running() {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"message": "Processing is already running",
		})
		return
	}

	var body struct {
		Profile string `json:"profile"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	if body.Profile == "" {
		body.Profile = "original"
	}

	profile, err := s.registry.Get(body.Profile)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "profile '"+body.Profile+"' not found")
		return
	}
	if err := s.pipe.Configure(profile); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.pipe.Start(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Voice processing started",
		"profile":   body.Profile,
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleStop(w http.ResponseWriter, _ *http.Request) {
	if !s.pipe.Running() {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"message": "Processing is not running",
		})
		return
	}
	if err := s.pipe.Stop(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Voice processing stopped",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	stats := s.pipe.Stats()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"is_processing":   s.pipe.Running(),
		"current_profile": s.pipe.ActiveProfile().Name,
		"latency_ms":      s.pipe.BlockDuration().Seconds() * 1000,
		"processed":       stats.Processed,
		"input_dropped":   stats.InputDropped,
		"output_dropped":  stats.OutputDropped,
		"silence_blocks":  stats.SilenceBlocks,
		"timestamp":       time.Now().Unix(),
	})
}

func (s *Server) handleChangeProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Profile string `json:"profile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Profile == "" {
		s.writeError(w, http.StatusBadRequest, "profile name is required")
		return
	}

	profile, err := s.registry.Get(body.Profile)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "profile '"+body.Profile+"' not found")
		return
	}
	if err := s.pipe.Configure(profile); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Voice profile changed to '" + body.Profile + "'",
		"profile":   body.Profile,
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	cfg := s.staged
	s.mu.Unlock()
	active := s.pipe.ActiveProfile()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"sample_rate":   cfg.SampleRate,
		"block_size":    cfg.BlockSize,
		"pitch_shift":   active.PitchShift,
		"formant_shift": active.FormantShift,
		"voice_profile": active.Name,
	})
}

// handleUpdateSettings stages sample-rate and block-size changes. The running
// pipeline keeps its configuration; staged values take effect when the daemon
// rebuilds it.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SampleRate *float64 `json:"sample_rate"`
		BlockSize  *int     `json:"block_size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.SampleRate != nil && *body.SampleRate <= 0 {
		s.writeError(w, http.StatusBadRequest, "sample_rate must be positive")
		return
	}
	if body.BlockSize != nil && *body.BlockSize <= 0 {
		s.writeError(w, http.StatusBadRequest, "block_size must be positive")
		return
	}

	s.mu.Lock()
	if body.SampleRate != nil {
		s.staged.SampleRate = *body.SampleRate
	}
	if body.BlockSize != nil {
		s.staged.BlockSize = *body.BlockSize
	}
	s.mu.Unlock()

	restart := s.pipe.Running()
	msg := "Settings updated successfully"
	if restart {
		msg = "Settings updated (restart processing to apply changes)"
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":          msg,
		"restart_required": restart,
	})
}

func (s *Server) handleExportProfiles(w http.ResponseWriter, _ *http.Request) {
	profiles := make(map[string]*voice.Profile)
	for _, p := range s.registry.All() {
		profiles[p.Name] = p
	}
	w.Header().Set("Content-Disposition", `attachment; filename="voice_profiles.json"`)
	s.writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleImportProfiles(w http.ResponseWriter, r *http.Request) {
	var profiles map[string]*voice.Profile
	if err := json.NewDecoder(r.Body).Decode(&profiles); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	imported := 0
	for name, p := range profiles {
		if p == nil {
			continue
		}
		if p.Name == "" {
			p.Name = name
		}
		if err := s.registry.Add(p); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		imported++
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Profiles imported successfully",
		"imported": imported,
	})
}
