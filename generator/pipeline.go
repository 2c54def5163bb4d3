package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DocumentTitle is the fixed first line of every combined document.
const DocumentTitle = "# Artificial Intelligence Usage Policy"

// ErrLimitReached reports normal quota exhaustion. It is an outcome, not an
// infrastructure failure; callers render it as an upgrade prompt, not an error.
var ErrLimitReached = errors.New("generation limit reached")

// QuotaError wraps a quota-store infrastructure failure so callers can tell
// it apart from model failures and from ErrLimitReached.
type QuotaError struct {
	Op  string // "read" or "increment"
	Err error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota %s: %v", e.Op, e.Err)
}

func (e *QuotaError) Unwrap() error { return e.Err }

// FinalizeResult is the outcome of a successful proofing pass.
type FinalizeResult struct {
	// Document is the annotated policy document.
	Document string
	// QuotaWarning is set when the document was generated but the quota
	// increment failed afterwards. The document must still reach the caller.
	QuotaWarning string
}

// Agent runs the generation pipeline: nine concurrent section completions,
// assembly into one document, and the quota-gated proofing pass.
type Agent struct {
	llm    LLMClient
	quota  QuotaStore
	logger *zap.Logger
}

func NewAgent(llm LLMClient, quota QuotaStore, logger *zap.Logger) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if quota == nil {
		return nil, errors.New("quota store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{llm: llm, quota: quota, logger: logger}, nil
}

// GenerateSections fires all nine section calls concurrently and waits for
// every one to settle. A failed call degrades its own slot to a synthetic
// error string; it never aborts the others. Results are in declaration
// order, not completion order.
func (a *Agent) GenerateSections(ctx context.Context, answers SurveyAnswers, uploads []UploadedDocument) []GeneratedSection {
	prompts := BuildSectionPrompts(answers, uploads)
	results := make([]GeneratedSection, len(prompts))

	var wg sync.WaitGroup
	for i := range prompts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			name := Sections[idx].Name
			content, err := a.llm.Complete(ctx, prompts[idx])
			switch {
			case err != nil:
				a.logger.Warn("section generation failed", zap.String("section", name), zap.Error(err))
				content = fmt.Sprintf("Error in %s section: %s", name, err.Error())
			case strings.TrimSpace(content) == "":
				a.logger.Warn("section generation returned empty content", zap.String("section", name))
				content = fmt.Sprintf("No valid response received for %s section.", name)
			}
			results[idx] = GeneratedSection{Name: name, Content: content}
		}(i)
	}
	wg.Wait()
	return results
}

// Combine assembles sections into the combined markdown document: the fixed
// title line, then each section under its ## heading in section order.
func Combine(sections []GeneratedSection) string {
	var sb strings.Builder
	sb.WriteString(DocumentTitle)
	sb.WriteString("\n")
	for _, sec := range sections {
		sb.WriteString("\n## ")
		sb.WriteString(sec.Name)
		sb.WriteString("\n\n")
		sb.WriteString(stripOwnHeading(sec.Content, sec.Name))
		sb.WriteString("\n")
	}
	return sb.String()
}

// stripOwnHeading drops a leading "## <name>" line the model may have echoed
// from the example template, so Combine's heading is not duplicated.
func stripOwnHeading(content, name string) string {
	trimmed := strings.TrimSpace(content)
	first, rest, found := strings.Cut(trimmed, "\n")
	if !found {
		return trimmed
	}
	line := strings.TrimSpace(first)
	if strings.HasPrefix(line, "## ") && strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(line, "## ")), name) {
		return strings.TrimSpace(rest)
	}
	return trimmed
}

// Generate is the full pre-annotation pipeline: fan out, join, combine.
func (a *Agent) Generate(ctx context.Context, answers SurveyAnswers, uploads []UploadedDocument) string {
	return Combine(a.GenerateSections(ctx, answers, uploads))
}

// Finalize runs the proofing/annotation pass over the combined document.
//
// Outcomes, in the order they are decided:
//   - userID empty: precondition failure, error.
//   - quota read fails: *QuotaError (fatal for this request).
//   - no remaining quota: ErrLimitReached, the model is never called.
//   - model call fails: the call's error (no partial document is kept).
//   - increment fails after success: result with QuotaWarning set.
func (a *Agent) Finalize(ctx context.Context, userID, combined string, uploads []UploadedDocument) (FinalizeResult, error) {
	if userID == "" {
		return FinalizeResult{}, errors.New("user identity is required for final generation")
	}

	q, err := a.quota.Read(ctx, userID)
	if err != nil {
		return FinalizeResult{}, &QuotaError{Op: "read", Err: err}
	}
	if q.Remaining <= 0 {
		return FinalizeResult{}, ErrLimitReached
	}

	annotated, err := a.llm.Complete(ctx, BuildProofingPrompt(combined, uploads))
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("proofing pass: %w", err)
	}

	result := FinalizeResult{Document: annotated}
	if err := a.quota.Increment(ctx, userID); err != nil {
		// The generation succeeded; losing the document over a counter
		// write would be worse than an inaccurate counter.
		a.logger.Error("quota increment failed after successful generation",
			zap.String("user", userID), zap.Error(err))
		result.QuotaWarning = fmt.Sprintf("generation succeeded but quota update failed: %v", err)
	}
	return result, nil
}
