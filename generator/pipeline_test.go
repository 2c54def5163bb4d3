package generator_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ai_policy_builder/generator"
)

func newAgent(t *testing.T, llm generator.LLMClient, quota generator.QuotaStore) *generator.Agent {
	t.Helper()
	agent, err := generator.NewAgent(llm, quota, zap.NewNop())
	require.NoError(t, err)
	return agent
}

// sectionOf extracts which section a prompt targets, or "" for the proofing
// pass.
func sectionOf(p generator.Prompt) string {
	for _, name := range generator.SectionNames() {
		if strings.Contains(p.System, `"`+name+`"`) {
			return name
		}
	}
	return ""
}

func TestGenerateSectionsAllSucceed(t *testing.T) {
	llm := &generator.MockLLM{Reply: func(p generator.Prompt) (string, error) {
		return "Content for " + sectionOf(p), nil
	}}
	agent := newAgent(t, llm, generator.NewMemoryQuotaStore(1))

	sections := agent.GenerateSections(context.Background(), generator.SurveyAnswers{}, nil)
	require.Len(t, sections, 9)
	for i, sec := range sections {
		assert.Equal(t, generator.SectionNames()[i], sec.Name)
		assert.Equal(t, "Content for "+sec.Name, sec.Content)
	}
	assert.Len(t, llm.Calls(), 9)
}

func TestGenerateSectionsPartialFailure(t *testing.T) {
	failing := map[string]bool{"Prohibited Use": true, "Environmental Impact": true}
	llm := &generator.MockLLM{Reply: func(p generator.Prompt) (string, error) {
		name := sectionOf(p)
		if failing[name] {
			return "", errors.New("upstream timeout")
		}
		return "Content for " + name, nil
	}}
	agent := newAgent(t, llm, generator.NewMemoryQuotaStore(1))

	sections := agent.GenerateSections(context.Background(), generator.SurveyAnswers{}, nil)
	require.Len(t, sections, 9)

	var failures, successes int
	for i, sec := range sections {
		assert.Equal(t, generator.SectionNames()[i], sec.Name)
		if failing[sec.Name] {
			failures++
			assert.Equal(t, fmt.Sprintf("Error in %s section: upstream timeout", sec.Name), sec.Content)
		} else {
			successes++
			assert.Equal(t, "Content for "+sec.Name, sec.Content)
		}
	}
	assert.Equal(t, 2, failures)
	assert.Equal(t, 7, successes)
}

func TestGenerateSectionsEmptyResponse(t *testing.T) {
	llm := &generator.MockLLM{Reply: func(p generator.Prompt) (string, error) {
		if sectionOf(p) == "Conclusion" {
			return "   \n", nil
		}
		return "ok", nil
	}}
	agent := newAgent(t, llm, generator.NewMemoryQuotaStore(1))

	sections := agent.GenerateSections(context.Background(), generator.SurveyAnswers{}, nil)
	assert.Equal(t, "No valid response received for Conclusion section.", sections[8].Content)
}

func TestCombineOrderAndHeadings(t *testing.T) {
	sections := make([]generator.GeneratedSection, 9)
	for i, name := range generator.SectionNames() {
		sections[i] = generator.GeneratedSection{Name: name, Content: "Body of " + name}
	}
	combined := generator.Combine(sections)

	require.True(t, strings.HasPrefix(combined, generator.DocumentTitle+"\n"))
	lastIdx := -1
	for _, name := range generator.SectionNames() {
		idx := strings.Index(combined, "\n## "+name+"\n")
		require.GreaterOrEqual(t, idx, 0, "missing heading for %s", name)
		assert.Greater(t, idx, lastIdx, "section %s out of order", name)
		lastIdx = idx
	}
}

func TestCombineDropsEchoedHeading(t *testing.T) {
	sections := []generator.GeneratedSection{
		{Name: "Introduction", Content: "## Introduction\n\nThe body."},
	}
	combined := generator.Combine(sections)
	assert.Equal(t, 1, strings.Count(combined, "## Introduction"))
	assert.Contains(t, combined, "The body.")
}

func TestFinalizeDeniedBeforeModelCall(t *testing.T) {
	store := generator.NewMemoryQuotaStore(1)
	require.NoError(t, store.Increment(context.Background(), "u1")) // used: 1, limit: 1

	llm := &generator.MockLLM{}
	agent := newAgent(t, llm, store)

	_, err := agent.Finalize(context.Background(), "u1", "# Doc", nil)
	assert.ErrorIs(t, err, generator.ErrLimitReached)
	assert.Empty(t, llm.Calls(), "model must not be called when quota is exhausted")
}

func TestFinalizeRequiresIdentity(t *testing.T) {
	llm := &generator.MockLLM{}
	agent := newAgent(t, llm, generator.NewMemoryQuotaStore(1))

	_, err := agent.Finalize(context.Background(), "", "# Doc", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, generator.ErrLimitReached)
	assert.Empty(t, llm.Calls())
}

func TestFinalizeSuccessIncrementsQuota(t *testing.T) {
	store := generator.NewMemoryQuotaStore(2)
	llm := &generator.MockLLM{Reply: func(generator.Prompt) (string, error) {
		return "# Annotated", nil
	}}
	agent := newAgent(t, llm, store)

	result, err := agent.Finalize(context.Background(), "u1", "# Doc", nil)
	require.NoError(t, err)
	assert.Equal(t, "# Annotated", result.Document)
	assert.Empty(t, result.QuotaWarning)

	q, err := store.Read(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, generator.Quota{Used: 1, Limit: 2, Remaining: 1}, q)
}

func TestFinalizeModelFailure(t *testing.T) {
	store := generator.NewMemoryQuotaStore(2)
	llm := &generator.MockLLM{Reply: func(generator.Prompt) (string, error) {
		return "", errors.New("bad gateway")
	}}
	agent := newAgent(t, llm, store)

	_, err := agent.Finalize(context.Background(), "u1", "# Doc", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, generator.ErrLimitReached)
	var qerr *generator.QuotaError
	assert.False(t, errors.As(err, &qerr))

	// A failed proofing pass does not consume quota.
	q, _ := store.Read(context.Background(), "u1")
	assert.Equal(t, 0, q.Used)
}

type faultyQuota struct {
	readErr error
	incErr  error
	quota   generator.Quota
}

func (f *faultyQuota) Read(context.Context, string) (generator.Quota, error) {
	if f.readErr != nil {
		return generator.Quota{}, f.readErr
	}
	return f.quota, nil
}

func (f *faultyQuota) Increment(context.Context, string) error { return f.incErr }

func TestFinalizeQuotaReadFailureIsFatal(t *testing.T) {
	llm := &generator.MockLLM{}
	agent := newAgent(t, llm, &faultyQuota{readErr: errors.New("store down")})

	_, err := agent.Finalize(context.Background(), "u1", "# Doc", nil)
	var qerr *generator.QuotaError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, "read", qerr.Op)
	assert.NotErrorIs(t, err, generator.ErrLimitReached)
	assert.Empty(t, llm.Calls())
}

func TestFinalizeIncrementFailureKeepsDocument(t *testing.T) {
	store := &faultyQuota{
		quota:  generator.Quota{Used: 0, Limit: 3, Remaining: 3},
		incErr: errors.New("write failed"),
	}
	llm := &generator.MockLLM{Reply: func(generator.Prompt) (string, error) {
		return "# Annotated", nil
	}}
	agent := newAgent(t, llm, store)

	result, err := agent.Finalize(context.Background(), "u1", "# Doc", nil)
	require.NoError(t, err, "increment failure must not lose the document")
	assert.Equal(t, "# Annotated", result.Document)
	assert.Contains(t, result.QuotaWarning, "quota update failed")
}
