// Copyright 2025 AdScope, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file holds the server's shared state: the loaded configuration, the
// generative model clients, and the analyzer registry. State is initialized
// once at startup and read by the route handlers.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/adscope/ad-media-analysis/internal/config"
	"github.com/adscope/ad-media-analysis/internal/core/workflow"
	"github.com/adscope/ad-media-analysis/internal/insight"
)

// StateManager holds the shared dependencies for the server.
type StateManager struct {
	config    *config.Config
	analyzers *workflow.Registry
}

// state is the single StateManager instance for this process.
var state = &StateManager{}

// SetupOS points the configuration loader at the local configuration files.
func SetupOS() (err error) {
	err = os.Setenv(config.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(config.EnvConfigRuntime, "local")
	return err
}

// GetConfig is the singleton accessor for the server configuration.
func GetConfig() *config.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment: %v\n", err)
		}
		cfg := config.NewConfig()
		config.Load(cfg)
		state.config = cfg
	}
	return state.config
}

// InitState builds the analyzer registry. A missing or unauthenticated
// generative model only disables the insight analyzer; everything else
// still serves.
func InitState(ctx context.Context) {
	cfg := GetConfig()

	insightClients, err := insight.NewClients(ctx, cfg)
	if err != nil {
		slog.Warn("generative model unavailable, insight analyzer disabled", "error", err)
		insightClients = nil
	}

	state.analyzers = workflow.NewRegistry(cfg, insightClients)
}
