package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/gradletree/pkg/buildinfo"
	gterrors "github.com/matzehuels/gradletree/pkg/errors"
	"github.com/matzehuels/gradletree/pkg/pipeline"
)

// Response headers set by /v1/parse.
const (
	HeaderCache      = "X-Cache"
	HeaderReportHash = "X-Report-Hash"
)

type errorResponse struct {
	Code    gterrors.Code `json:"code"`
	Message string        `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"formats": pipeline.ValidFormats,
		"default": s.opts.Format,
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Source:         "http",
		Configurations: q["configuration"],
		Format:         q.Get("format"),
		Lenient:        s.opts.Lenient,
		Logger:         loggerFromContext(r.Context(), s.logger),
	}
	if opts.Format == "" {
		opts.Format = s.opts.Format
	}
	for name, dst := range map[string]*bool{"lenient": &opts.Lenient, "flat": &opts.Flat, "detailed": &opts.Detailed} {
		if err := boolParam(q.Get(name), dst); err != nil {
			writeError(w, http.StatusBadRequest, gterrors.ErrCodeInvalidInput, "query parameter "+name+" must be a boolean")
			return
		}
	}

	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	result, err := s.runner.ExecuteReader(r.Context(), body, opts)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, gterrors.ErrCodeTooLarge,
				"report exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
			return
		}
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			opts.Logger.Error("parse failed", "err", err)
		}
		writeError(w, status, codeOf(err), gterrors.UserMessage(err))
		return
	}

	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set(HeaderReportHash, result.ReportHash)
	w.Header().Set(HeaderCache, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifact)
}

func boolParam(v string, dst *bool) error {
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch gterrors.GetCode(err) {
	case gterrors.ErrCodeInvalidInput, gterrors.ErrCodeInvalidFormat,
		gterrors.ErrCodeInvalidConfiguration, gterrors.ErrCodeIO:
		return http.StatusBadRequest
	case gterrors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case gterrors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func codeOf(err error) gterrors.Code {
	if code := gterrors.GetCode(err); code != "" {
		return code
	}
	return gterrors.ErrCodeInternal
}

func writeError(w http.ResponseWriter, status int, code gterrors.Code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
