// Package assist runs the model-backed operations: smart log removal with count
// reconciliation, and the advisory analyze/generate/quality requests.
package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/logsweep/internal/llm"
	"github.com/dshills/logsweep/internal/profile"
	"github.com/dshills/logsweep/internal/prompt"
	"github.com/dshills/logsweep/internal/redact"
	"github.com/dshills/logsweep/internal/strip"
)

// CallFunc sends a prompt to the model and returns the response text.
type CallFunc func(ctx context.Context, prompt string) (string, error)

// Result is the outcome of smart removal.
//
// RemovedCount and KeptCount are computed from the original code, not from Code:
// they describe what the heuristic says should happen, whatever the model did.
type Result struct {
	Code         string `json:"code"`
	RemovedCount int    `json:"removed_count"`
	KeptCount    int    `json:"kept_count"`
	// Extracted is false when the response held no fenced block and Code is the input.
	Extracted bool   `json:"extracted"`
	Response  string `json:"-"`
}

// Reconcile asks the model to remove unneeded log statements from code and reconciles
// its answer with the original text.
func Reconcile(ctx context.Context, code, language string, call CallFunc) (Result, error) {
	return reconcile(ctx, request{code: code, language: language}, call)
}

type request struct {
	code     string
	language string
	fileName string
	redact   bool
}

func reconcile(ctx context.Context, req request, call CallFunc) (Result, error) {
	prof, err := profile.LoadBuiltin(profile.SmartRemove)
	if err != nil {
		return Result{}, fmt.Errorf("assist.Reconcile: %w", err)
	}

	sent, vault := req.code, (*redact.Vault)(nil)
	if req.redact {
		sent, vault = redact.Redact(req.code)
	}

	text := prompt.Build(prompt.BuildOpts{
		Profile:  prof,
		Code:     sent,
		Language: req.language,
		FileName: req.fileName,
	})

	resp, err := call(ctx, text)
	if err != nil {
		return Result{}, wrap(OpSmartRemove, err)
	}

	res := Apply(req.code, resp)
	if res.Extracted {
		res.Code = vault.Restore(res.Code)
	}
	return res, nil
}

// Apply reconciles a model response with the code it was asked to clean. The first fenced
// block of response becomes the new code; without one the code is returned unchanged.
func Apply(code, response string) Result {
	res := Result{Code: code, Response: response}
	if block, ok := llm.ExtractCodeBlock(response); ok {
		res.Code = block
		res.Extracted = true
	}
	res.RemovedCount, res.KeptCount = Tally(code)
	return res
}

// Tally splits the log statements in code into those to remove and those to keep.
// A statement is kept when it is an error-level call.
func Tally(code string) (removed, kept int) {
	for _, s := range strip.Statements(code) {
		if strings.Contains(s, strip.PreserveMarker) {
			kept++
		} else {
			removed++
		}
	}
	return removed, kept
}
