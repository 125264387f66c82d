package edge

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ksysoev/traceid/pkg/edge/middleware"
	"github.com/ksysoev/traceid/pkg/traceid"
	"github.com/mileusna/useragent"
)

type userAgentInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	OS      string `json:"os"`
	Device  string `json:"device,omitempty"`
	Bot     bool   `json:"bot"`
	Mobile  bool   `json:"mobile"`
}

type inspectResponse struct {
	Headers     map[string][]string `json:"headers"`
	UserAgent   *userAgentInfo      `json:"user_agent,omitempty"`
	TraceID     string              `json:"trace_id"`
	Header      string              `json:"header,omitempty"`
	HeaderValue string              `json:"header_value,omitempty"`
	ClientIP    string              `json:"client_ip"`
	Method      string              `json:"method"`
	Path        string              `json:"path"`
}

func (s *HTTPServer) handleTraceID(w http.ResponseWriter, _ *http.Request, id traceid.TraceID[string]) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	_, _ = w.Write([]byte("TraceId=" + id.String()))
}

// handleInspect describes the request as the handler sees it after the trace id layer ran.
func (s *HTTPServer) handleInspect(w http.ResponseWriter, r *http.Request, id traceid.TraceID[string]) {
	resp := inspectResponse{
		TraceID:  id.String(),
		Method:   r.Method,
		Path:     r.URL.Path,
		Headers:  r.Header,
		ClientIP: middleware.ClientIPFromRequest(r),
	}

	if name := s.layer.Header(); name != "" {
		resp.Header = name
		resp.HeaderValue = r.Header.Get(name)
	}

	if raw := r.UserAgent(); raw != "" {
		ua := useragent.Parse(raw)
		resp.UserAgent = &userAgentInfo{
			Name:    ua.Name,
			Version: ua.Version,
			OS:      ua.OS,
			Device:  ua.Device,
			Bot:     ua.Bot,
			Mobile:  ua.Mobile,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode inspect response", slog.Any("error", err))
	}
}
