// Package agent defines the contract with the external AI coding agent.
// The agent is a black box to the engine: it consumes a prompt, mutates the
// workspace on its own, and reports success or failure plus a cost metric.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Request describes a single agent invocation.
type Request struct {
	// RunID identifies this invocation in results and logs
	RunID string

	// Prompt is the fully rendered instruction text
	Prompt string

	// Dir is the working directory the agent operates in
	Dir string
}

// Result is the outcome of a successful agent invocation.
type Result struct {
	// RunID echoes the request's run ID
	RunID string

	// Cost is the reported cost of the run in USD (0 when unreported)
	Cost float64

	// Output is the agent's final output text
	Output string
}

// Runner invokes the external coding agent.
type Runner interface {
	Run(ctx context.Context, req Request) (*Result, error)
}

// ExecRunner runs the agent as a subprocess, feeding the prompt on stdin.
type ExecRunner struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// NewExecRunner creates an ExecRunner for the given command line.
func NewExecRunner(command string, args []string, timeout time.Duration) *ExecRunner {
	return &ExecRunner{Command: command, Args: args, Timeout: timeout}
}

// Run executes the agent command and waits for it to finish.
func (r *ExecRunner) Run(ctx context.Context, req Request) (*Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Command, r.Args...)
	cmd.Dir = req.Dir
	cmd.Stdin = strings.NewReader(req.Prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("agent run %s failed: %w\nstderr: %s", req.RunID, err, stderr.String())
	}

	output := strings.TrimSpace(stdout.String())
	return &Result{
		RunID:  req.RunID,
		Cost:   parseCost(output),
		Output: output,
	}, nil
}

// parseCost extracts a cost metric from the agent's final output line when
// the agent reports JSON with a total_cost_usd field. Absent or unparsable
// output yields zero; cost is advisory only.
func parseCost(output string) float64 {
	lines := strings.Split(output, "\n")
	last := lines[len(lines)-1]

	var report struct {
		TotalCostUSD float64 `json:"total_cost_usd"`
	}
	if err := json.Unmarshal([]byte(last), &report); err != nil {
		return 0
	}
	return report.TotalCostUSD
}

// ScriptedRunner is a test fake that records requests and returns scripted
// results in order.
type ScriptedRunner struct {
	Requests []Request
	Results  []*Result
	Err      error

	// OnRun, when set, runs before each result to simulate the agent's
	// side effects on the workspace.
	OnRun func(req Request) error
}

// Run returns the next scripted result, or Err when set.
func (s *ScriptedRunner) Run(_ context.Context, req Request) (*Result, error) {
	s.Requests = append(s.Requests, req)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.OnRun != nil {
		if err := s.OnRun(req); err != nil {
			return nil, err
		}
	}
	if len(s.Results) == 0 {
		return &Result{RunID: req.RunID}, nil
	}
	res := s.Results[0]
	s.Results = s.Results[1:]
	return res, nil
}
