package server

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/urfave/negroni"

	"github.com/siegeai/schemalike/apispec"
	"github.com/siegeai/schemalike/infer"
	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/schema"
	"github.com/siegeai/schemalike/validate"
)

const requestIDHeader = "X-Request-Id"

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/infer", s.handleInfer()).Methods("POST")
	s.router.HandleFunc("/validate", s.handleValidate()).Methods("POST")
	s.router.HandleFunc("/samples", s.handleSample()).Methods("POST")
	s.router.HandleFunc("/openapi.json", s.handleOpenAPI()).Methods("GET")
	s.router.HandleFunc("/healthz", s.handleHealth()).Methods("GET")
	s.router.Handle("/metrics", s.metrics.handler()).Methods("GET")
	s.router.Use(s.logMiddleware)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		route := r.URL.Path
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.metrics.requests.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		s.metrics.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		slog.Info("handled request",
			"id", id,
			"method", r.Method,
			"uri", r.RequestURI,
			"status", ww.Status(),
			"bytes", ww.Size(),
			"duration", elapsed)
	})
}

func (s *Server) handleInfer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := s.readBody(w, r)
		if !ok {
			return
		}

		var sc schema.Schema
		var err error
		if isYAML(r.Header.Get("Content-Type")) {
			sc, err = infer.ParseSampleYAMLBytes(body)
		} else {
			sc, err = infer.ParseSampleBodyBytes(body)
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.metrics.inferred.WithLabelValues(sc.Kind().String()).Inc()

		switch format := r.URL.Query().Get("format"); format {
		case "", "json":
			writeJSON(w, http.StatusOK, sc)
		case "openapi":
			writeJSON(w, http.StatusOK, apispec.ToOpenAPI(sc))
		case "yaml":
			out, err := jsontype.EncodeYAML(sc)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			w.Header().Set("Content-Type", "application/yaml")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(out)
		default:
			writeError(w, http.StatusBadRequest, errors.Newf("unknown format %q", format))
		}
	}
}

type validateRequest struct {
	Schema json.RawMessage `json:"schema"`
	Data   json.RawMessage `json:"data"`
}

func (s *Server) handleValidate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := s.readBody(w, r)
		if !ok {
			return
		}

		var req validateRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, errors.Wrap(err, "decode request"))
			return
		}
		if len(req.Schema) == 0 {
			writeError(w, http.StatusBadRequest, errors.New("missing schema"))
			return
		}

		v, err := validate.CompileDocument(req.Schema)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		var data any = jsontype.Undefined
		if len(req.Data) > 0 {
			if data, err = infer.DecodeSampleBodyBytes(req.Data); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
		}

		res := v(data)
		result := "invalid"
		if res.IsValid {
			result = "valid"
		}
		s.metrics.validations.WithLabelValues(result).Inc()
		writeJSON(w, http.StatusOK, res)
	}
}

type sampleResponse struct {
	Path    string        `json:"path"`
	Samples int           `json:"samples"`
	Schema  schema.Schema `json:"schema"`
}

func (s *Server) handleSample() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			writeError(w, http.StatusBadRequest, errors.New("missing path"))
			return
		}

		body, ok := s.readBody(w, r)
		if !ok {
			return
		}
		sc, err := infer.ParseSampleBodyBytes(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		merged, err := s.learner.Observe(path, sc)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		tpl, _ := apispec.TemplatePath(path)
		s.metrics.samples.WithLabelValues(tpl).Inc()

		writeJSON(w, http.StatusOK, sampleResponse{
			Path:    tpl,
			Samples: s.learner.Samples(path),
			Schema:  merged,
		})
	}
}

func (s *Server) handleOpenAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.learner.Document(s.opts.Title, s.opts.Version))
	}
}

func (*Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// readBody reads the request body, decoding its Content-Encoding. Both the encoded
// and the decoded body are capped at MaxBodyBytes.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	raw := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	d, err := newEncodedReader(r.Header.Get("Content-Encoding"), raw)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, errUnsupportedEncoding) {
			code = http.StatusUnsupportedMediaType
		}
		writeError(w, code, errors.Wrap(err, "decode body"))
		return nil, false
	}
	defer func() {
		if err := d.Close(); err != nil {
			slog.Warn("could not close reader", "err", err)
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, d, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return nil, false
		}
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "read body"))
		return nil, false
	}
	return body, true
}

func isYAML(contentType string) bool {
	return strings.Contains(contentType, "yaml")
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, err error) {
	slog.Warn("request failed", "status", code, "err", err)
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	bs, err := json.Marshal(v)
	if err != nil {
		slog.Error("could not encode response", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(bs)
}
