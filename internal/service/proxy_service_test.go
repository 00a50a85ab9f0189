package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"localmart_go/internal/domain"
)

// fakeProxyAPI simulates the backend-owned state machine: every transition
// just swaps in the next canned state.
type fakeProxyAPI struct {
	mu       sync.Mutex
	requests map[string]domain.ProxyRequest
	listErr  error
	calls    []string
}

func newFakeProxyAPI(reqs ...domain.ProxyRequest) *fakeProxyAPI {
	m := make(map[string]domain.ProxyRequest)
	for _, r := range reqs {
		m[r.ID] = r
	}
	return &fakeProxyAPI{requests: m}
}

func (f *fakeProxyAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeProxyAPI) ListProxyRequests(ctx context.Context, status string) ([]domain.ProxyRequest, error) {
	f.record("list:" + status)
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ProxyRequest
	for _, r := range f.requests {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProxyAPI) GetProxyRequest(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (f *fakeProxyAPI) mutate(id, status, orderStatus string) (*domain.ProxyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.Status = status
	if orderStatus != "" {
		r.HasOrder = true
		r.OrderStatus = orderStatus
	}
	f.requests[id] = r
	return &r, nil
}

func (f *fakeProxyAPI) ApproveProposal(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	f.record("approve")
	return f.mutate(id, domain.RequestStatusLocked, domain.OrderStatusPaid)
}

func (f *fakeProxyAPI) RejectProposal(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	f.record("reject")
	return f.mutate(id, domain.RequestStatusOpen, "")
}

func (f *fakeProxyAPI) CancelRequest(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	f.record("cancel")
	return f.mutate(id, domain.RequestStatusCancelled, "")
}

func (f *fakeProxyAPI) ConfirmDelivery(ctx context.Context, id string) (*domain.ProxyRequest, error) {
	f.record("confirm")
	return f.mutate(id, domain.RequestStatusCompleted, domain.OrderStatusCompleted)
}

func TestProxyService_RefreshAndGet(t *testing.T) {
	api := newFakeProxyAPI(
		domain.ProxyRequest{ID: "r1", Status: domain.RequestStatusOpen},
		domain.ProxyRequest{ID: "r2", Status: domain.RequestStatusLocked},
	)
	svc := NewProxyService(api)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if len(svc.All()) != 2 {
		t.Errorf("Expected 2 requests, got %d", len(svc.All()))
	}

	r, ok := svc.Get("r1")
	if !ok || r.Status != domain.RequestStatusOpen {
		t.Errorf("Get(r1) = %+v, %v", r, ok)
	}
}

func TestProxyService_TransitionStoresBackendState(t *testing.T) {
	api := newFakeProxyAPI(domain.ProxyRequest{ID: "r1", Status: domain.RequestStatusOpen})
	svc := NewProxyService(api)
	svc.Refresh(context.Background())

	req, err := svc.Approve(context.Background(), "r1")
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	// Whatever the backend said is now the local truth
	if req.OrderStatus != domain.OrderStatusPaid {
		t.Errorf("OrderStatus = %q", req.OrderStatus)
	}
	local, _ := svc.Get("r1")
	if local.Status != domain.RequestStatusLocked {
		t.Errorf("Snapshot not updated: %+v", local)
	}
}

func TestProxyService_TransitionErrorLeavesSnapshot(t *testing.T) {
	api := newFakeProxyAPI(domain.ProxyRequest{ID: "r1", Status: domain.RequestStatusOpen})
	svc := NewProxyService(api)
	svc.Refresh(context.Background())

	if _, err := svc.Cancel(context.Background(), "missing"); err == nil {
		t.Fatal("Expected error for unknown request")
	}

	r, _ := svc.Get("r1")
	if r.Status != domain.RequestStatusOpen {
		t.Errorf("Failed transition must not touch the snapshot: %+v", r)
	}
}

func TestProxyService_Phase(t *testing.T) {
	api := newFakeProxyAPI(domain.ProxyRequest{ID: "r1", CurrentPhase: "Chờ duyệt"})
	svc := NewProxyService(api)
	svc.Refresh(context.Background())

	if d := svc.Phase("r1"); d.Text != "Chờ duyệt" {
		t.Errorf("Phase text = %q", d.Text)
	}
	if d := svc.Phase("missing"); d != domain.UnknownPhase {
		t.Errorf("Missing request should map to UnknownPhase, got %+v", d)
	}
}

func TestProxyService_PushedUpdates(t *testing.T) {
	api := newFakeProxyAPI()
	svc := NewProxyService(api)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.StartUpdateProcessor(ctx)

	svc.Updates() <- domain.ProxyRequest{ID: "r9", Status: domain.RequestStatusLocked, CurrentPhase: "Đang mua hàng"}

	// The processor applies updates asynchronously
	deadline := time.After(time.Second)
	for {
		if r, ok := svc.Get("r9"); ok {
			if r.CurrentPhase != "Đang mua hàng" {
				t.Errorf("Unexpected update: %+v", r)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("Timeout waiting for pushed update")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestProxyService_Stats(t *testing.T) {
	api := newFakeProxyAPI(
		domain.ProxyRequest{ID: "r1", Status: domain.RequestStatusOpen},
		domain.ProxyRequest{ID: "r2", Status: domain.RequestStatusOpen},
		domain.ProxyRequest{ID: "r3", Status: domain.RequestStatusCompleted},
	)
	svc := NewProxyService(api)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.Open != 2 || stats.Completed != 1 || stats.Locked != 0 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestProxyService_StatsError(t *testing.T) {
	api := newFakeProxyAPI()
	api.listErr = errors.New("backend down")
	svc := NewProxyService(api)

	if _, err := svc.Stats(context.Background()); err == nil {
		t.Error("Expected error when a stats fetch fails")
	}
}
