package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/photonlab/go-optical-bench/pkg/core"
	"github.com/photonlab/go-optical-bench/pkg/scene"
	"github.com/photonlab/go-optical-bench/pkg/sensor"
	"github.com/photonlab/go-optical-bench/pkg/tracer"
	"github.com/photonlab/go-optical-bench/pkg/viz"
)

// Server handles web requests for the optical bench tracer
type Server struct {
	port   int
	logger core.Logger
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port, logger: core.NewDefaultLogger()}
}

// TraceRequest represents a trace request from the client
type TraceRequest struct {
	Bench    string // Bench preset ID (e.g. "spectrometer")
	Mode     sensor.Mode
	GridSize int
	Rays     int // seed ray count override; 0 keeps the preset default
}

// TraceResponse is the JSON reply for a completed trace
type TraceResponse struct {
	Bench        string  `json:"bench"`
	SensorData   string  `json:"sensorData,omitempty"` // Base64 encoded PNG
	LayoutData   string  `json:"layoutData"`           // Base64 encoded PNG
	Paths        int     `json:"paths"`
	DetectorHits int     `json:"detectorHits"`
	Collimation  float64 `json:"collimation,omitempty"`
	ElapsedMs    int64   `json:"elapsedMs"`
}

// Start starts the web server
func (s *Server) Start() error {
	// Serve static files
	http.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	http.HandleFunc("/api/benches", s.handleBenches)
	http.HandleFunc("/api/trace", s.handleTrace)
	http.HandleFunc("/api/render", s.handleRender)
	http.HandleFunc("/api/layout", s.handleLayout)
	http.HandleFunc("/api/health", s.handleHealth)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, nil)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleBenches lists the available bench presets
func (s *Server) handleBenches(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(scene.List())
}

// handleTrace runs one full trace of the requested bench and returns
// the sensor readout and layout diagram as base64 PNGs. Each request
// builds its own bench and accumulator, so requests may run in
// parallel.
func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseTraceRequest(r)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	startTime := time.Now()
	bench, result, acc, err := s.runBench(req)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	layoutData, err := s.imageToBase64PNG(viz.RenderLayout(result, bench.Elements, viz.DefaultConfig()))
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode layout: %v", err))
		return
	}

	resp := TraceResponse{
		Bench:        bench.Name,
		LayoutData:   layoutData,
		Paths:        len(result.Polylines),
		DetectorHits: result.DetectorHits,
		ElapsedMs:    time.Since(startTime).Milliseconds(),
	}

	if acc != nil {
		resp.SensorData, err = s.imageToBase64PNG(acc.Image(req.Mode))
		if err != nil {
			s.sendError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode sensor image: %v", err))
			return
		}
	} else {
		// NaN (fewer than two emergent rays) is not representable in JSON
		if q := tracer.CollimationQuality(result.FinalRays, bench.Source.Direction); !math.IsNaN(q) {
			resp.Collimation = q
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// handleRender runs a trace and returns the sensor readout directly as
// a PNG.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseTraceRequest(r)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, _, acc, err := s.runBench(req)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	if acc == nil {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("bench %s has no detector", req.Bench))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, acc.Image(req.Mode)); err != nil {
		log.Printf("render: failed to write PNG: %v", err)
	}
}

// handleLayout runs a trace and returns the bench diagram as a PNG.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseTraceRequest(r)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	bench, result, _, err := s.runBench(req)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	img := viz.RenderLayout(result, bench.Elements, viz.DefaultConfig())
	if err := png.Encode(w, img); err != nil {
		log.Printf("layout: failed to write PNG: %v", err)
	}
}

// runBench builds the requested bench and performs one trace.
func (s *Server) runBench(req *TraceRequest) (*scene.Bench, tracer.Result, *sensor.Accumulator, error) {
	bench, err := scene.New(req.Bench, scene.Options{GridSize: req.GridSize})
	if err != nil {
		return nil, tracer.Result{}, nil, err
	}
	if req.Rays > 0 && bench.Source.Kind != tracer.PatternObjectGrid {
		bench.Source.Count = req.Rays
	}

	result, acc, err := bench.Run(s.logger)
	if err != nil {
		return nil, tracer.Result{}, nil, err
	}
	return bench, result, acc, nil
}

// parseTraceRequest parses request parameters
func (s *Server) parseTraceRequest(r *http.Request) (*TraceRequest, error) {
	req := &TraceRequest{}

	// Parse bench ID (string parameter, validated by scene.New)
	if bench := r.URL.Query().Get("bench"); bench != "" {
		req.Bench = bench
	} else {
		req.Bench = "spectrometer" // Default bench
	}

	req.Mode = sensor.ParseMode(r.URL.Query().Get("mode"))

	var err error
	if req.GridSize, err = parseIntParam(r.URL.Query(), "size", scene.DefaultGridSize, 8, 1024); err != nil {
		return nil, err
	}
	if req.Rays, err = parseIntParam(r.URL.Query(), "rays", 0, 0, 100000); err != nil {
		return nil, err
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendError writes a JSON error response
func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
