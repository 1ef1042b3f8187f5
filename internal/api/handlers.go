package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/lead-agent/internal/campaign"
	"github.com/sells-group/lead-agent/internal/export"
	"github.com/sells-group/lead-agent/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

type catalogResponse struct {
	Count      int                    `json:"count"`
	Industries map[model.Industry]int `json:"industries"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Count:      s.catalog.Len(),
		Industries: s.catalog.IndustryCounts(),
	})
}

func (s *Server) handlePrioritize(w http.ResponseWriter, r *http.Request) {
	result, ok := s.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}
	if format != export.FormatCSV && format != export.FormatXLSX {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format %q", format))
		return
	}

	result, ok := s.run(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, result.Leads); err != nil {
		zap.L().Error("api: export failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	filename := fmt.Sprintf("lead-agent-%d.%s", s.now().Unix(), format)
	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// run decodes the campaign from the request body and runs the pipeline. On
// failure it writes the error response and returns false.
func (s *Server) run(w http.ResponseWriter, r *http.Request) (*model.Result, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	c, err := campaign.Parse(body)
	if err != nil {
		if campaign.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	result, err := s.pipeline.Run(c)
	if err != nil {
		zap.L().Error("api: pipeline run failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("campaign", c.CampaignName),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	return result, true
}
