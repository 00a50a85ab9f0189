package service

import (
	"context"
	"sort"
	"sync"

	"localmart_go/internal/domain"
)

// ProxyAPI is the slice of the REST client this service depends on.
type ProxyAPI interface {
	ListProxyRequests(ctx context.Context, status string) ([]domain.ProxyRequest, error)
	GetProxyRequest(ctx context.Context, id string) (*domain.ProxyRequest, error)
	ApproveProposal(ctx context.Context, id string) (*domain.ProxyRequest, error)
	RejectProposal(ctx context.Context, id string) (*domain.ProxyRequest, error)
	CancelRequest(ctx context.Context, id string) (*domain.ProxyRequest, error)
	ConfirmDelivery(ctx context.Context, id string) (*domain.ProxyRequest, error)
}

// ProxyService keeps the local snapshot of proxy requests. The backend owns
// every transition; this service only triggers them and stores whatever
// state comes back, last write wins. Pushed WS updates land on the updates
// channel and overwrite the snapshot the same way.
type ProxyService struct {
	mu       sync.RWMutex
	requests map[string]domain.ProxyRequest
	api      ProxyAPI
	updates  chan domain.ProxyRequest
}

// NewProxyService creates a new ProxyService instance
func NewProxyService(api ProxyAPI) *ProxyService {
	return &ProxyService{
		requests: make(map[string]domain.ProxyRequest),
		api:      api,
		updates:  make(chan domain.ProxyRequest, 256),
	}
}

// Updates returns the channel for pushed status updates.
func (s *ProxyService) Updates() chan<- domain.ProxyRequest {
	return s.updates
}

// StartUpdateProcessor consumes pushed updates in the background.
func (s *ProxyService) StartUpdateProcessor(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case req := <-s.updates:
				s.store(req)
			}
		}
	}()
}

func (s *ProxyService) store(req domain.ProxyRequest) {
	s.mu.Lock()
	s.requests[req.ID] = req
	s.mu.Unlock()
}

// Refresh refetches the full request list and replaces the snapshot.
func (s *ProxyService) Refresh(ctx context.Context) error {
	reqs, err := s.api.ListProxyRequests(ctx, "")
	if err != nil {
		return err
	}

	next := make(map[string]domain.ProxyRequest, len(reqs))
	for _, r := range reqs {
		next[r.ID] = r
	}

	s.mu.Lock()
	s.requests = next
	s.mu.Unlock()
	return nil
}

// Get returns a request snapshot by id.
func (s *ProxyService) Get(id string) (domain.ProxyRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	return r, ok
}

// All returns all request snapshots, newest first.
func (s *ProxyService) All() []domain.ProxyRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ProxyRequest, 0, len(s.requests))
	for _, r := range s.requests {
		result = append(result, r)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result
}

// Phase returns the display descriptor for a request snapshot.
func (s *ProxyService) Phase(id string) domain.PhaseDisplay {
	s.mu.RLock()
	r, ok := s.requests[id]
	s.mu.RUnlock()
	if !ok {
		return domain.UnknownPhase
	}
	return domain.DisplayPhase(&r)
}

// applyTransition runs a transition call and stores the authoritative
// state the backend returns.
func (s *ProxyService) applyTransition(call func() (*domain.ProxyRequest, error)) (*domain.ProxyRequest, error) {
	req, err := call()
	if err != nil {
		return nil, err
	}
	s.store(*req)
	return req, nil
}

// Approve accepts the shopper's proposal for a request.
func (s *ProxyService) Approve(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	return s.applyTransition(func() (*domain.ProxyRequest, error) {
		return s.api.ApproveProposal(ctx, id)
	})
}

// Reject declines the shopper's proposal for a request.
func (s *ProxyService) Reject(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	return s.applyTransition(func() (*domain.ProxyRequest, error) {
		return s.api.RejectProposal(ctx, id)
	})
}

// Cancel cancels a request.
func (s *ProxyService) Cancel(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	return s.applyTransition(func() (*domain.ProxyRequest, error) {
		return s.api.CancelRequest(ctx, id)
	})
}

// ConfirmDelivery confirms receipt of the purchased items.
func (s *ProxyService) ConfirmDelivery(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	return s.applyTransition(func() (*domain.ProxyRequest, error) {
		return s.api.ConfirmDelivery(ctx, id)
	})
}

// DashboardStats are per-status request counts for the admin dashboard.
type DashboardStats struct {
	Open      int
	Locked    int
	Completed int
	Cancelled int
}

// Stats fetches per-status counts. The four list calls run concurrently
// and are joined before returning; they are independent, so no ordering
// is assumed between them.
func (s *ProxyService) Stats(ctx context.Context) (*DashboardStats, error) {
	statuses := []string{
		domain.RequestStatusOpen,
		domain.RequestStatusLocked,
		domain.RequestStatusCompleted,
		domain.RequestStatusCancelled,
	}

	counts := make([]int, len(statuses))
	errs := make([]error, len(statuses))

	var wg sync.WaitGroup
	for i, status := range statuses {
		wg.Add(1)
		go func(i int, status string) {
			defer wg.Done()
			reqs, err := s.api.ListProxyRequests(ctx, status)
			if err != nil {
				errs[i] = err
				return
			}
			counts[i] = len(reqs)
		}(i, status)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &DashboardStats{
		Open:      counts[0],
		Locked:    counts[1],
		Completed: counts[2],
		Cancelled: counts[3],
	}, nil
}
