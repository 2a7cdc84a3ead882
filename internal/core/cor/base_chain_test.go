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

// Package cor_test exercises the chain-of-responsibility plumbing the
// analyzer pipelines are built from: output-to-input piping between
// commands, skip-on-missing-input semantics, and error handling.
package cor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adscope/ad-media-analysis/internal/core/cor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appendCommand reads a string input, appends its suffix, and emits the
// result. It records whether it ran so tests can assert skip behavior.
type appendCommand struct {
	cor.BaseCommand
	suffix   string
	executed bool
}

func newAppendCommand(name, suffix string) *appendCommand {
	return &appendCommand{BaseCommand: *cor.NewBaseCommand(name), suffix: suffix}
}

func (c *appendCommand) IsExecutable(ctx cor.Context) bool {
	_, ok := ctx.Get(c.GetInputParam()).(string)
	return ok
}

func (c *appendCommand) Execute(ctx cor.Context) {
	c.executed = true
	in := ctx.Get(c.GetInputParam()).(string)
	ctx.Add(c.GetOutputParam(), in+c.suffix)
}

// silentCommand consumes its input without producing any output, modeling an
// extractor that found no result.
type silentCommand struct {
	cor.BaseCommand
}

func (c *silentCommand) Execute(ctx cor.Context) {}

// markerCommand needs no input; it only records that it ran.
type markerCommand struct {
	cor.BaseCommand
	executed bool
}

func (c *markerCommand) IsExecutable(ctx cor.Context) bool { return true }

func (c *markerCommand) Execute(ctx cor.Context) { c.executed = true }

// failingCommand records an error on the context.
type failingCommand struct {
	cor.BaseCommand
	err error
}

func (c *failingCommand) IsExecutable(ctx cor.Context) bool { return true }

func (c *failingCommand) Execute(ctx cor.Context) {
	ctx.AddError(c.GetName(), c.err)
}

func newChainContext(initial interface{}) cor.Context {
	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	if initial != nil {
		ctx.Add(cor.CtxIn, initial)
	}
	return ctx
}

// TestChainPipesOutputToInput verifies the core piping rule: each command's
// CtxOut becomes the next command's CtxIn, and the final output is left in
// CtxIn with CtxOut cleared.
func TestChainPipesOutputToInput(t *testing.T) {
	chain := cor.NewBaseChain("pipe-test")
	chain.AddCommand(newAppendCommand("first", "-a"))
	chain.AddCommand(newAppendCommand("second", "-b"))

	ctx := newChainContext("seed")
	defer ctx.Close()
	chain.Execute(ctx)

	require.False(t, ctx.HasErrors())
	assert.Equal(t, "seed-a-b", ctx.Get(cor.CtxIn))
	assert.Nil(t, ctx.Get(cor.CtxOut))
}

// TestChainSkipsDownstreamWhenNoOutput verifies that a command which runs
// but emits nothing starves everything after it: the piping step clears
// CtxIn, the downstream precondition fails, and the chain completes without
// errors. That is how "no result" terminates an analyzer run cleanly.
func TestChainSkipsDownstreamWhenNoOutput(t *testing.T) {
	silent := &silentCommand{BaseCommand: *cor.NewBaseCommand("silent")}
	downstream := newAppendCommand("downstream", "-x")

	chain := cor.NewBaseChain("skip-test")
	chain.AddCommand(newAppendCommand("first", "-a"))
	chain.AddCommand(silent)
	chain.AddCommand(downstream)

	ctx := newChainContext("seed")
	defer ctx.Close()
	chain.Execute(ctx)

	require.False(t, ctx.HasErrors())
	assert.False(t, downstream.executed)
	assert.Nil(t, ctx.Get(cor.CtxIn))
	assert.Nil(t, ctx.Get(cor.CtxOut))
}

// TestChainSkipsWhenSeedMissing verifies that with no initial input at all,
// every input-requiring command is skipped and the chain still completes
// without errors.
func TestChainSkipsWhenSeedMissing(t *testing.T) {
	first := newAppendCommand("first", "-a")
	chain := cor.NewBaseChain("no-seed-test")
	chain.AddCommand(first)

	ctx := newChainContext(nil)
	defer ctx.Close()
	chain.Execute(ctx)

	assert.False(t, first.executed)
	assert.False(t, ctx.HasErrors())
}

// TestChainStopsOnError verifies the default failure mode: once a command
// records an error, subsequent commands do not run.
func TestChainStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	downstream := newAppendCommand("downstream", "-x")

	chain := cor.NewBaseChain("error-test")
	chain.AddCommand(&failingCommand{BaseCommand: *cor.NewBaseCommand("failing"), err: boom})
	chain.AddCommand(downstream)

	ctx := newChainContext("seed")
	defer ctx.Close()
	chain.Execute(ctx)

	require.True(t, ctx.HasErrors())
	assert.ErrorIs(t, ctx.GetErrors()["failing"], boom)
	assert.False(t, downstream.executed)
}

// TestChainContinueOnFailure verifies the opt-in mode where the chain keeps
// executing after an error, used by batch-style flows that want partial
// results.
func TestChainContinueOnFailure(t *testing.T) {
	downstream := &markerCommand{BaseCommand: *cor.NewBaseCommand("downstream")}

	chain := cor.NewBaseChain("continue-test")
	chain.ContinueOnFailure(true)
	chain.AddCommand(&failingCommand{BaseCommand: *cor.NewBaseCommand("failing"), err: errors.New("boom")})
	chain.AddCommand(downstream)

	ctx := newChainContext("seed")
	defer ctx.Close()
	chain.Execute(ctx)

	assert.True(t, ctx.HasErrors())
	assert.True(t, downstream.executed)
}
