// Copyright (c) 2025, SecEnum Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/harvexz/secenum/pkg/defaults"
	"github.com/harvexz/secenum/pkg/errors"
)

// Result holds the captured output of one external command invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs an external program with arguments and a bounded wait.
// A non-zero exit code is reported through Result, not as an error; errors
// are reserved for commands that could not run or did not finish in time.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// Option configures a LocalExecutor.
type Option func(*LocalExecutor)

// WithTimeout sets the per-invocation timeout applied when the caller's
// context carries no deadline. Default is defaults.CommandTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(e *LocalExecutor) {
		e.timeout = timeout
	}
}

// WithRateLimiter bounds the rate at which commands are spawned. Useful when
// per-item analysis fans out over thousands of packages. Nil disables limiting.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(e *LocalExecutor) {
		e.limiter = limiter
	}
}

// LocalExecutor runs commands on the local host with a normalized locale
// environment so textual output is parse-stable across machines.
type LocalExecutor struct {
	timeout time.Duration
	limiter *rate.Limiter
}

// NewLocalExecutor creates an executor with the provided options.
func NewLocalExecutor(opts ...Option) *LocalExecutor {
	e := &LocalExecutor{
		timeout: defaults.CommandTimeout,
		limiter: rate.NewLimiter(rate.Limit(defaults.CommandRateLimit), defaults.CommandRateBurst),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes name with args and returns its captured output.
// The wait is bounded: if ctx has no deadline, the executor applies its
// configured timeout. An expired deadline yields a TIMEOUT error; a command
// that cannot be started yields EXECUTION_FAILED.
func (e *LocalExecutor) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeExecution, "command name cannot be empty")
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "rate limit wait canceled", err)
		}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = normalizedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctxErr := ctx.Err(); stderrors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, errors.WrapWithContext(errors.ErrCodeTimeout, "command timed out", ctxErr,
				map[string]any{"command": name, "args": strings.Join(args, " ")})
		}

		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			// Command ran to completion with a non-zero status.
			return &Result{
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}, nil
		}

		return nil, errors.WrapWithContext(errors.ErrCodeExecution, "failed to execute command", err,
			map[string]any{"command": name})
	}

	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}, nil
}

// normalizedEnv returns the process environment with the locale pinned to C
// so command output stays parse-stable regardless of host configuration.
func normalizedEnv() []string {
	env := make([]string, 0, len(os.Environ())+2)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "LC_ALL=") || strings.HasPrefix(kv, "LANG=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, "LC_ALL=C", "LANG=C")
}
