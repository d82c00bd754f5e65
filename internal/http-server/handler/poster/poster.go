package poster

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"poster-badger/internal/domain"
	"poster-badger/internal/http-server/handler/poster/dto"
	poster_uc "poster-badger/internal/usecase/poster"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

const maxMemory = 32 << 20

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".tiff": true, ".tif": true,
}

type PosterHandler struct {
	usecase  posterUsecase
	validate *validator.Validate
	logger   *zlog.Zerolog
}

func NewPosterHandler(usecase posterUsecase, logger *zlog.Zerolog) *PosterHandler {
	return &PosterHandler{
		usecase:  usecase,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *PosterHandler) UploadPoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, domain.DefaultMaxUploadSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to parse multipart form")
		h.respondError(w, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn().Err(err).Msg("File not found in request")
		h.respondError(w, http.StatusBadRequest, "File is required", nil)
		return
	}
	defer file.Close()

	if err := h.validateFile(handler); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	badgeTypes, err := parseBadgeTypes(r.FormValue("badges"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	media, err := parseMedia(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	settings, err := parseSettings(r.FormValue("settings"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", handler.Filename).Msg("Failed to read file")
		h.respondError(w, http.StatusInternalServerError, "Failed to read file", err)
		return
	}

	p, err := h.usecase.UploadPoster(
		ctx,
		bytes.NewReader(fileBytes),
		handler.Filename,
		handler.Header.Get("Content-Type"),
		int64(len(fileBytes)),
		badgeTypes,
		media,
		settings,
	)
	if err != nil {
		h.handleUploadError(w, err, handler.Filename)
		return
	}

	badges := make([]string, 0, len(badgeTypes))
	for _, t := range badgeTypes {
		badges = append(badges, string(t))
	}

	h.respondJSON(w, http.StatusAccepted, dto.UploadResponse{
		ID:        p.ID,
		Filename:  p.OriginalFilename,
		Status:    string(p.Status),
		Size:      p.OriginalSize,
		Badges:    badges,
		CreatedAt: p.CreatedAt,
	})

	h.logger.Info().
		Str("poster_id", p.ID).
		Str("filename", p.OriginalFilename).
		Strs("badges", badges).
		Msg("Poster upload accepted")
}

func (h *PosterHandler) GetPoster(w http.ResponseWriter, r *http.Request) {
	req := dto.GetPosterRequest{
		ID:       chi.URLParam(r, "id"),
		Enhanced: r.URL.Query().Get("variant") != "original",
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid poster id", nil)
		return
	}

	_, path, reader, err := h.usecase.GetPoster(r.Context(), req.ID, req.Enhanced)
	if err != nil {
		switch {
		case errors.Is(err, poster_uc.ErrNotEnhanced):
			h.respondError(w, http.StatusConflict, "Poster is not enhanced yet", nil)
		case isNotFound(err):
			h.respondError(w, http.StatusNotFound, "Poster not found", nil)
		default:
			h.logger.Error().Err(err).Str("poster_id", req.ID).Msg("Failed to get poster")
			h.respondError(w, http.StatusInternalServerError, "Failed to get poster", err)
		}
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", domain.ContentTypeForPath(path))
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error().Err(err).Str("poster_id", req.ID).Msg("Failed to stream poster")
	}
}

func (h *PosterHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	req := dto.StatusRequest{ID: chi.URLParam(r, "id")}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid poster id", nil)
		return
	}

	status, results, err := h.usecase.GetStatus(r.Context(), req.ID)
	if err != nil {
		if isNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Poster not found", nil)
			return
		}
		h.logger.Error().Err(err).Str("poster_id", req.ID).Msg("Failed to get status")
		h.respondError(w, http.StatusInternalServerError, "Failed to get status", err)
		return
	}

	resp := dto.StatusResponse{ID: req.ID, Status: string(status)}
	for _, res := range results {
		resp.Results = append(resp.Results, dto.BadgeResultResponse{
			Type:   string(res.Type),
			Status: string(res.Status),
			Error:  res.Error,
		})
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *PosterHandler) DeletePoster(w http.ResponseWriter, r *http.Request) {
	req := dto.DeleteRequest{ID: chi.URLParam(r, "id")}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid poster id", nil)
		return
	}

	if err := h.usecase.DeletePoster(r.Context(), req.ID); err != nil {
		if isNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Poster not found", nil)
			return
		}
		h.logger.Error().Err(err).Str("poster_id", req.ID).Msg("Failed to delete poster")
		h.respondError(w, http.StatusInternalServerError, "Failed to delete poster", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PosterHandler) validateFile(handler *multipart.FileHeader) error {
	if handler.Size > domain.DefaultMaxUploadSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(handler.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrInvalidFileFormat, ext)
	}

	return nil
}

func (h *PosterHandler) handleUploadError(w http.ResponseWriter, err error, filename string) {
	h.logger.Error().Err(err).Str("filename", filename).Msg("Upload failed")

	switch {
	case errors.Is(err, poster_uc.ErrMessageQueueError):
		h.respondError(w, http.StatusServiceUnavailable, "Enhancement queue unavailable", err)
	case errors.Is(err, poster_uc.ErrStorageError):
		h.respondError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
	default:
		h.respondError(w, http.StatusInternalServerError, "Upload failed", err)
	}
}

func (h *PosterHandler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *PosterHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	resp := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
	if err != nil {
		resp.Details = err.Error()
	}
	h.respondJSON(w, status, resp)
}

func isNotFound(err error) bool {
	return errors.Is(err, poster_uc.ErrPosterNotFound)
}

func parseBadgeTypes(raw string) ([]domain.BadgeType, error) {
	parts := strings.Split(raw, ",")
	types := make([]domain.BadgeType, 0, len(parts))

	for _, part := range parts {
		name := strings.TrimSpace(strings.ToLower(part))
		if name == "" {
			continue
		}
		switch t := domain.BadgeType(name); t {
		case domain.BadgeAudio, domain.BadgeResolution, domain.BadgeReview, domain.BadgeAwards:
			types = append(types, t)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownBadgeType, name)
		}
	}

	if len(types) == 0 {
		return nil, ErrNoBadgeTypes
	}
	return types, nil
}

func parseMedia(r *http.Request) (domain.MediaInfo, error) {
	media := domain.MediaInfo{
		Title:      r.FormValue("title"),
		AudioCodec: r.FormValue("audio_codec"),
		Resolution: r.FormValue("resolution"),
		Awards:     r.FormValue("awards"),
	}

	if raw := r.FormValue("reviews"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &media.Reviews); err != nil {
			return media, fmt.Errorf("invalid reviews payload: %w", err)
		}
	}

	return media, nil
}

func parseSettings(raw string) (map[domain.BadgeType]map[string]interface{}, error) {
	if raw == "" {
		return nil, nil
	}

	var settings map[domain.BadgeType]map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("invalid settings payload: %w", err)
	}
	return settings, nil
}
