// Package server exposes the valuation engine over a small HTTP JSON API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/valuation-kernel/internal/config"
	"github.com/iwvelando/valuation-kernel/internal/valuation"
	"github.com/iwvelando/valuation-kernel/pkg/constants"
	"github.com/iwvelando/valuation-kernel/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the valuation API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Valuation API endpoint (YAML config upload)
	mux.HandleFunc("/api/valuation", h.handleValuation)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type valuationResponse struct {
	Scenarios     []scenarioResult `json:"scenarios,omitempty"`
	Bonds         []bondResult     `json:"bonds,omitempty"`
	ExpectedValue float64          `json:"expectedValue"`
	CSV           string           `json:"csv"`
	Warnings      []string         `json:"warnings,omitempty"`
	Duration      string           `json:"duration"`
	ConfigYAML    string           `json:"configYaml,omitempty"`
}

type scenarioResult struct {
	Name        string   `json:"name"`
	Probability float64  `json:"probability"`
	PVExplicit  float64  `json:"pvExplicit"`
	PVTerminal  float64  `json:"pvTerminal"`
	Value       float64  `json:"value"`
	IRR         *float64 `json:"irr,omitempty"`
	IRRPhase    string   `json:"irrPhase,omitempty"`
	IRRNote     string   `json:"irrNote,omitempty"`
}

type bondResult struct {
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	MacaulayDuration float64 `json:"macaulayDuration"`
	ModifiedDuration float64 `json:"modifiedDuration"`
}

func (h *handler) handleValuation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, fmt.Sprintf("config exceeds upload limit of %d bytes", h.maxUploadSize), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		http.Error(w, "request body must contain a YAML valuation config", http.StatusBadRequest)
		return
	}

	conf, err := config.LoadConfigurationBytes(body)
	if err != nil {
		h.logger.Warn("rejected config upload",
			zap.String("op", "server.handleValuation"),
			zap.Error(err),
		)
		http.Error(w, fmt.Sprintf("invalid config: %v", err), http.StatusBadRequest)
		return
	}

	validator := config.Validator{Conf: conf}
	warnings := validator.ValidateAll()

	engine := valuation.NewEngine(h.logger)
	report, err := engine.Run(*conf)
	if err != nil {
		h.logger.Warn("valuation failed",
			zap.String("op", "server.handleValuation"),
			zap.Error(err),
		)
		http.Error(w, fmt.Sprintf("valuation failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	resp := valuationResponse{
		ExpectedValue: report.ExpectedValue,
		CSV:           output.CsvString(report),
		Warnings:      warnings,
		Duration:      time.Since(start).String(),
	}
	for _, sc := range report.Scenarios {
		resp.Scenarios = append(resp.Scenarios, scenarioResult{
			Name:        sc.Name,
			Probability: sc.Probability,
			PVExplicit:  sc.PVExplicit,
			PVTerminal:  sc.PVTerminal,
			Value:       sc.Value,
			IRR:         sc.IRR,
			IRRPhase:    sc.IRRPhase,
			IRRNote:     sc.IRRNote,
		})
	}
	for _, b := range report.Bonds {
		resp.Bonds = append(resp.Bonds, bondResult{
			Name:             b.Name,
			Price:            b.Price,
			MacaulayDuration: b.MacaulayDuration,
			ModifiedDuration: b.ModifiedDuration,
		})
	}

	if echo, err := yaml.Marshal(conf); err == nil {
		resp.ConfigYAML = string(echo)
	}

	h.logger.Info("served valuation",
		zap.String("op", "server.handleValuation"),
		zap.Int("scenarios", len(resp.Scenarios)),
		zap.Int("bonds", len(resp.Bonds)),
		zap.String("duration", resp.Duration),
	)

	writeJSON(w, h.logger, resp)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.logger, map[string]string{"version": h.version})
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
