package engine

import (
	"context"
	"sync"
)

// mockCatalog implements Catalog with overridable funcs. Search may be hit
// from parallel gap workers, so call recording is guarded.
type mockCatalog struct {
	SearchFunc             func(ctx context.Context, query string) ([]CandidateItem, error)
	SearchSequencesFunc    func(ctx context.Context, query string) ([]SequenceHit, error)
	FetchSequenceItemsFunc func(ctx context.Context, sequenceID string) ([]AnchorItem, error)

	mu                 sync.Mutex
	SearchCalls        []string
	FetchSequenceCalls []string
}

func (m *mockCatalog) Search(ctx context.Context, query string) ([]CandidateItem, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, query)
	m.mu.Unlock()
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockCatalog) SearchSequences(ctx context.Context, query string) ([]SequenceHit, error) {
	if m.SearchSequencesFunc != nil {
		return m.SearchSequencesFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockCatalog) FetchSequenceItems(ctx context.Context, sequenceID string) ([]AnchorItem, error) {
	m.FetchSequenceCalls = append(m.FetchSequenceCalls, sequenceID)
	if m.FetchSequenceItemsFunc != nil {
		return m.FetchSequenceItemsFunc(ctx, sequenceID)
	}
	return nil, nil
}

// mockReranker implements Reranker.
type mockReranker struct {
	RerankFunc func(ctx context.Context, candidates []CandidateItem, rc RerankContext) (string, error)

	Calls int
}

func (m *mockReranker) Rerank(ctx context.Context, candidates []CandidateItem, rc RerankContext) (string, error) {
	m.Calls++
	if m.RerankFunc != nil {
		return m.RerankFunc(ctx, candidates, rc)
	}
	return "", nil
}
