package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ishitzzz/playlist-forge/internal/engine"
)

const (
	maxSubjectLen      = 200
	maxTopics          = 100
	maxSyllabusTextLen = 20000
	listLimit          = 50
)

// handleCreateBuild resolves a syllabus into a playlist and persists it.
// Topics come either directly from the request or from the extractor when
// the caller uploads raw syllabus text or an image.
func (s *Server) handleCreateBuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		Subject       string             `json:"subject"`
		Topics        []string           `json:"topics"`
		SyllabusText  string             `json:"syllabusText"`
		SyllabusImage string             `json:"syllabusImage"` // base64
		ImageMimeType string             `json:"imageMimeType"`
		Preferences   engine.Preferences `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	subject := strings.TrimSpace(body.Subject)
	if len(subject) > maxSubjectLen {
		writeError(w, http.StatusBadRequest, "subject is too long")
		return
	}
	if len(body.SyllabusText) > maxSyllabusTextLen {
		writeError(w, http.StatusBadRequest, "syllabusText is too long")
		return
	}

	topics := make([]string, 0, len(body.Topics))
	for _, t := range body.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) > maxTopics {
		writeError(w, http.StatusBadRequest, "too many topics")
		return
	}

	if len(topics) == 0 && (body.SyllabusText != "" || body.SyllabusImage != "") {
		extractedSubject, extracted, err := s.extractTopics(ctx, body.SyllabusText, body.SyllabusImage, body.ImageMimeType)
		if err != nil {
			var he *httpError
			if errors.As(err, &he) {
				writeError(w, he.status, he.msg)
				return
			}
			log.Printf("playlist-forge: extract syllabus: %v", err)
			writeError(w, http.StatusBadGateway, "syllabus extraction failed")
			return
		}
		topics = extracted
		if subject == "" {
			subject = extractedSubject
		}
	}

	if subject == "" {
		writeError(w, http.StatusBadRequest, "subject is required")
		return
	}
	if len(topics) == 0 {
		writeError(w, http.StatusBadRequest, "topics, syllabusText or syllabusImage is required")
		return
	}

	result, err := s.builder.BuildFromTopics(ctx, subject, topics, body.Preferences)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNoTopics):
			writeError(w, http.StatusBadRequest, "topics are required")
		case errors.Is(err, engine.ErrEmptyPlaylist):
			writeError(w, http.StatusUnprocessableEntity, "no suitable videos found for this syllabus")
		default:
			log.Printf("playlist-forge: build playlist: %v", err)
			writeError(w, http.StatusInternalServerError, "build failed")
		}
		return
	}

	rec := &BuildRecord{
		ID:                   uuid.NewString(),
		Subject:              result.Subject,
		Topics:               topics,
		Preferences:          result.Preferences,
		Entries:              result.Entries,
		TotalDurationSeconds: result.TotalDurationSeconds,
		GapsFailed:           result.GapsFailed,
		Anchor:               result.Anchor,
		CreatedAt:            result.CreatedAt,
	}
	if err := s.insertBuild(ctx, rec); err != nil {
		log.Printf("playlist-forge: insert build: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.publishEvent(ctx, "build.created", map[string]any{
		"id":         rec.ID,
		"subject":    rec.Subject,
		"entryCount": len(rec.Entries),
	})

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetBuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid build id")
		return
	}

	rec, err := s.getBuild(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "build not found")
		return
	}
	if err != nil {
		log.Printf("playlist-forge: get build: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListBuilds(w http.ResponseWriter, r *http.Request) {
	builds, err := s.listBuilds(r.Context(), listLimit)
	if err != nil {
		log.Printf("playlist-forge: list builds: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, builds)
}

// httpError lets extractTopics pick the response status for request-shaped
// failures without writing to the ResponseWriter itself.
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func (s *Server) extractTopics(ctx context.Context, text, image, mimeType string) (string, []string, error) {
	if s.extractor == nil {
		return "", nil, &httpError{http.StatusServiceUnavailable, "syllabus extraction is not configured"}
	}

	if text != "" {
		return s.extractor.ExtractText(ctx, text)
	}

	data, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return "", nil, &httpError{http.StatusBadRequest, "syllabusImage must be base64-encoded"}
	}
	if mimeType == "" {
		return "", nil, &httpError{http.StatusBadRequest, "imageMimeType is required with syllabusImage"}
	}
	return s.extractor.ExtractImage(ctx, data, mimeType)
}
