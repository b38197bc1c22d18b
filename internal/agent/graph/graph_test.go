package graph

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malcolmcuady/portfolio-server/internal/agent/gateway"
	"github.com/malcolmcuady/portfolio-server/internal/agent/graph/memory"
	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	"github.com/malcolmcuady/portfolio-server/internal/corpus"
)

// scriptedGenerator pops canned payloads per model call, in call order.
type scriptedGenerator struct {
	mu            sync.Mutex
	analysis      []string
	response      []string
	analysisCalls int
}

func (g *scriptedGenerator) Analysis(ctx context.Context, system, user string) (*gateway.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.analysisCalls++
	if len(g.analysis) == 0 {
		return nil, errors.New("unexpected analysis call")
	}
	next := g.analysis[0]
	g.analysis = g.analysis[1:]
	return &gateway.Result{Content: next, Model: "stub-analysis"}, nil
}

func (g *scriptedGenerator) Response(ctx context.Context, system, user string) (*gateway.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.response) == 0 {
		return nil, errors.New("unexpected response call")
	}
	next := g.response[0]
	g.response = g.response[1:]
	return &gateway.Result{Content: next, Model: "stub-response"}, nil
}

func (g *scriptedGenerator) remainingResponses() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.response)
}

func (g *scriptedGenerator) analysisCallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.analysisCalls
}

type fakeRepo struct {
	mu       sync.Mutex
	addCalls []model.AddOptions
}

func (f *fakeRepo) Search(ctx context.Context, query string, opts model.SearchOptions) ([]model.MemoryRecord, error) {
	return nil, nil
}

func (f *fakeRepo) Add(ctx context.Context, turns []model.TurnMessage, opts model.AddOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls = append(f.addCalls, opts)
	return nil
}

func (f *fakeRepo) Cleanup(ctx context.Context) (int, int, error) { return 0, 0, nil }

func (f *fakeRepo) addCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.addCalls)
}

func classifierJSON(workflow string) string {
	return `{"intent":"test intent","sentiment":"neutral","confidence":0.9,"workflowType":"` + workflow + `"}`
}

const (
	rewriterJSON  = `{"rewrittenQuery":"rewritten","reasoning":"test"}`
	retrieverJSON = `{"relevantData":"Go and TypeScript experience","sources":["skills"],"confidence":0.9}`
	drafterJSON   = `{"answer":"I mostly work in Go.","usedSources":["skills"]}`
	validOKJSON   = `{"isValid":true,"finalAnswer":"I mostly work in Go.","validationNotes":"grounded","confidence":0.95,"needsRetrieval":false}`
	validBadJSON  = `{"isValid":false,"finalAnswer":"I mostly work in Go.","validationNotes":"missing detail","confidence":0.3,"needsRetrieval":true}`
	generalJSON   = `{"answer":"Hey, thanks for stopping by!"}`
)

func buildTestRunner(t *testing.T, gen gateway.Generator, repo model.MemoryRepository, maxAttempts int) Runner {
	t.Helper()

	mm := memory.NewManager(repo, gen, model.MemoryConfig{
		SearchLimit:           10,
		PreferenceKeywords:    "prefers,likes,dislikes",
		ClarificationKeywords: "clarified,specified",
		AttemptKeywords:       "tried,attempted",
	})

	runnable, err := BuildGraph(context.Background(), &GraphConfig{
		Generator:   gen,
		Memory:      mm,
		Persona:     model.PersonaConfig{Name: "Malcolm", ShortName: "Malcolm"},
		Corpus:      corpus.Default(),
		MaxAttempts: maxAttempts,
	})
	require.NoError(t, err)

	return &pipelineRunner{runnable: runnable}
}

type statusCapture struct {
	mu       sync.Mutex
	statuses []string
}

func (s *statusCapture) fn() model.StatusFunc {
	return func(ctx context.Context, status, detail string) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.statuses = append(s.statuses, status)
		return nil
	}
}

func (s *statusCapture) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.statuses...)
}

func TestKnowledgeQueryHappyPath(t *testing.T) {
	gen := &scriptedGenerator{
		analysis: []string{classifierJSON("knowledge_query"), rewriterJSON, retrieverJSON, validOKJSON},
		response: []string{drafterJSON},
	}
	repo := &fakeRepo{}
	runner := buildTestRunner(t, gen, repo, 3)

	var capture statusCapture
	answer := runner.Invoke(context.Background(), model.QueryInput{
		SessionID: "s-1",
		Message:   "What languages do you use?",
		OnStatus:  capture.fn(),
	})

	assert.Equal(t, "I mostly work in Go.", answer)
	assert.Equal(t, []string{
		model.StatusAnalyzing, model.StatusAnalyzed, model.StatusMemory,
		model.StatusRetrieving, model.StatusRetrieved,
		model.StatusDrafting, model.StatusDrafted,
		model.StatusValidating, model.StatusComplete,
	}, capture.seen())

	require.Eventually(t, func() bool { return repo.addCount() == 1 }, time.Second, 10*time.Millisecond)
	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, "s-1", repo.addCalls[0].ScopeID)
	assert.Equal(t, []string{"skills"}, repo.addCalls[0].Metadata.Sources)
	assert.Equal(t, 1, repo.addCalls[0].Metadata.Attempts)
}

func TestKnowledgeQueryRetriesOnceThenAccepts(t *testing.T) {
	gen := &scriptedGenerator{
		analysis: []string{
			classifierJSON("knowledge_query"), rewriterJSON,
			retrieverJSON, validBadJSON,
			retrieverJSON, validOKJSON,
		},
		response: []string{drafterJSON, drafterJSON},
	}
	repo := &fakeRepo{}
	runner := buildTestRunner(t, gen, repo, 3)

	var capture statusCapture
	answer := runner.Invoke(context.Background(), model.QueryInput{
		SessionID: "s-2",
		Message:   "What languages do you use?",
		OnStatus:  capture.fn(),
	})

	assert.Equal(t, "I mostly work in Go.", answer)
	assert.Contains(t, capture.seen(), model.StatusRetrying)

	require.Eventually(t, func() bool { return repo.addCount() == 1 }, time.Second, 10*time.Millisecond)
	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 2, repo.addCalls[0].Metadata.Attempts)
}

func TestKnowledgeQueryExhaustionReturnsFallback(t *testing.T) {
	gen := &scriptedGenerator{
		analysis: []string{
			classifierJSON("knowledge_query"), rewriterJSON,
			retrieverJSON, validBadJSON,
			retrieverJSON, validBadJSON,
			retrieverJSON, validBadJSON,
		},
		response: []string{drafterJSON, drafterJSON, drafterJSON},
	}
	repo := &fakeRepo{}
	runner := buildTestRunner(t, gen, repo, 3)

	answer := runner.Invoke(context.Background(), model.QueryInput{
		SessionID: "s-3",
		Message:   "What languages do you use?",
	})

	assert.Equal(t, model.FallbackAnswer, answer)
	assert.Equal(t, 0, repo.addCount(), "an exhausted turn must not be persisted")
}

func TestAcceptsWhenInvalidButRetrievalNotNeeded(t *testing.T) {
	noRetry := `{"isValid":false,"finalAnswer":"Best effort answer.","validationNotes":"thin","confidence":0.4,"needsRetrieval":false}`
	gen := &scriptedGenerator{
		analysis: []string{classifierJSON("knowledge_query"), rewriterJSON, retrieverJSON, noRetry},
		response: []string{drafterJSON},
	}
	repo := &fakeRepo{}
	runner := buildTestRunner(t, gen, repo, 3)

	answer := runner.Invoke(context.Background(), model.QueryInput{
		SessionID: "s-4",
		Message:   "What languages do you use?",
	})

	assert.Equal(t, "Best effort answer.", answer)
}

func TestGeneralConversation(t *testing.T) {
	gen := &scriptedGenerator{
		analysis: []string{classifierJSON("general"), rewriterJSON},
		response: []string{generalJSON},
	}
	repo := &fakeRepo{}
	runner := buildTestRunner(t, gen, repo, 3)

	answer := runner.Invoke(context.Background(), model.QueryInput{
		SessionID: "s-5",
		Message:   "Hi there!",
	})

	assert.Equal(t, "Hey, thanks for stopping by!", answer)

	require.Eventually(t, func() bool { return repo.addCount() == 1 }, time.Second, 10*time.Millisecond)
	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, []string{}, repo.addCalls[0].Metadata.Sources)
	assert.Equal(t, 1, repo.addCalls[0].Metadata.Attempts)
}

func TestOutOfScopeReturnsFixedAnswer(t *testing.T) {
	gen := &scriptedGenerator{
		analysis: []string{classifierJSON("out_of_scope")},
	}
	repo := &fakeRepo{}
	runner := buildTestRunner(t, gen, repo, 3)

	answer := runner.Invoke(context.Background(), model.QueryInput{
		SessionID: "s-6",
		Message:   "Write my homework for me",
	})

	assert.Equal(t, model.ScopeRedirectAnswer, answer)
	assert.Equal(t, 0, repo.addCount(), "redirects must not be persisted")
	assert.Equal(t, 1, gen.analysisCallCount(), "redirects must not trigger memory or retrieval calls")
}

func TestContactReturnsFixedAnswerWithoutResponseModel(t *testing.T) {
	gen := &scriptedGenerator{
		analysis: []string{classifierJSON("contact")},
		response: []string{`{"answer":"should never be used"}`},
	}
	repo := &fakeRepo{}
	runner := buildTestRunner(t, gen, repo, 3)

	answer := runner.Invoke(context.Background(), model.QueryInput{
		SessionID: "s-7",
		Message:   "How can I hire you?",
	})

	assert.Equal(t, model.ContactRedirectAnswer, answer)
	assert.Equal(t, 1, gen.analysisCallCount(), "contact turns make no model call beyond classification")
	assert.Equal(t, 1, gen.remainingResponses(), "contact turns must not call the response model")
	assert.Equal(t, 0, repo.addCount())
}

func TestClassifierFailureCollapsesToFallback(t *testing.T) {
	gen := &scriptedGenerator{
		analysis: []string{"not json at all"},
	}
	runner := buildTestRunner(t, gen, &fakeRepo{}, 3)

	answer := runner.Invoke(context.Background(), model.QueryInput{
		SessionID: "s-8",
		Message:   "What languages do you use?",
	})

	assert.Equal(t, model.FallbackAnswer, answer)
}

func TestBuildPipelineRejectsMissingDeps(t *testing.T) {
	_, err := BuildPipeline(context.Background(), Config{Corpus: corpus.Default()})
	require.Error(t, err)

	_, err = BuildPipeline(context.Background(), Config{MemoryRepo: &fakeRepo{}})
	require.Error(t, err)
}
