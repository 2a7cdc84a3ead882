// Copyright 2025 AdScope, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main is the entry point for the ad-media analysis server.
//
// The server exposes the analyzer registry over a small REST API built on
// Gin: list the available analyzers, run one against a media path, and
// fetch a previously persisted report. Requests are traced with the otelgin
// middleware and the server shuts down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/adscope/ad-media-analysis/internal/core/workflow"
	"github.com/adscope/ad-media-analysis/internal/telemetry"
)

func main() {
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := GetConfig()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, cfg)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState(ctx)
	slog.Info("Initialized State")

	r := gin.Default()
	r.Use(otelgin.Middleware(cfg.Application.Name))
	r.Use(cors.Default())

	apiV1 := r.Group("/api/v1")
	{
		AnalysisRouter(apiV1)
		Dashboard(apiV1)
	}

	port := cfg.Application.Port
	if port == 0 {
		port = 8080
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      r,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen", "error", err)
		}
	}()
	slog.Info("Server ready", "port", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed", "error", err)
	}

	log.Println("Server exiting")
}

// AnalysisRequest is the body of POST /api/v1/analyses.
type AnalysisRequest struct {
	Path      string `json:"path" binding:"required"`
	Feature   string `json:"feature" binding:"required"`
	OutputDir string `json:"output_dir"`
}

// AnalysisRouter sets up the analyzer API routes.
//
// Endpoints:
//   - GET  /analyzers: lists the registered analyzer features.
//   - POST /analyses: runs one analyzer against a server-local media path.
//   - GET  /reports/:feature/:stem: serves a previously persisted report.
func AnalysisRouter(r *gin.RouterGroup) {
	r.GET("/analyzers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"analyzers": state.analyzers.Features()})
	})

	r.POST("/analyses", func(c *gin.Context) {
		var req AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		analyzer := state.analyzers.Get(req.Feature)
		if analyzer == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown feature: " + req.Feature})
			return
		}
		if _, err := os.Stat(req.Path); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "media file not found: " + req.Path})
			return
		}

		report, err := analyzer.Run(c.Request.Context(), req.Path, req.OutputDir)
		if err != nil {
			slog.Error("analysis failed", "feature", req.Feature, "path", req.Path, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"feature": req.Feature,
			"path":    req.Path,
			"report":  report,
		})
	})

	r.GET("/reports/:feature/:stem", func(c *gin.Context) {
		feature := c.Param("feature")
		stem := filepath.Base(c.Param("stem"))

		dir := workflow.ResultsDir(feature)
		if dir == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown feature: " + feature})
			return
		}

		// The stems analyzer persists a per-video manifest instead of a
		// flat {stem}.txt.
		var reportPath string
		if feature == workflow.FeatureStems {
			reportPath = filepath.Join(state.config.Output.ResultsRoot, dir, stem, "manifest.txt")
		} else {
			reportPath = filepath.Join(state.config.Output.ResultsRoot, dir, stem+".txt")
		}

		if _, err := os.Stat(reportPath); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		c.File(reportPath)
	})
}
