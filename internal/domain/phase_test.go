package domain

import "testing"

func TestDisplayPhase_CurrentPhasePreferred(t *testing.T) {
	// currentPhase wins even when legacy fields disagree
	req := &ProxyRequest{
		Status:       RequestStatusOpen,
		HasOrder:     true,
		OrderStatus:  OrderStatusDraft,
		CurrentPhase: "Chờ duyệt",
	}

	d := DisplayPhase(req)
	if d.Text != "Chờ duyệt" {
		t.Errorf("Text = %q, want pending-approval label", d.Text)
	}
	if d.ColorTag != "gold" {
		t.Errorf("ColorTag = %q, want gold", d.ColorTag)
	}
}

func TestDisplayPhase_LegacyOrderFallback(t *testing.T) {
	req := &ProxyRequest{
		Status:      RequestStatusLocked,
		HasOrder:    true,
		OrderStatus: OrderStatusInProgress,
	}

	d := DisplayPhase(req)
	if d.Text != "Đang mua hàng" {
		t.Errorf("Text = %q, want in-progress label", d.Text)
	}
}

func TestDisplayPhase_LegacyRequestFallback(t *testing.T) {
	req := &ProxyRequest{Status: RequestStatusOpen}

	d := DisplayPhase(req)
	if d.Text != "Chờ đề xuất" {
		t.Errorf("Text = %q, want waiting-for-proposal label", d.Text)
	}
}

func TestDisplayPhase_UnknownNeverFails(t *testing.T) {
	t.Run("unknown request status", func(t *testing.T) {
		d := DisplayPhase(&ProxyRequest{Status: "UnknownFutureStatus"})
		if d != UnknownPhase {
			t.Errorf("Expected UnknownPhase, got %+v", d)
		}
	})

	t.Run("unknown order status", func(t *testing.T) {
		d := DisplayPhase(&ProxyRequest{HasOrder: true, OrderStatus: "Shipped2026"})
		if d != UnknownPhase {
			t.Errorf("Expected UnknownPhase, got %+v", d)
		}
	})

	t.Run("unknown current phase", func(t *testing.T) {
		d := DisplayPhase(&ProxyRequest{CurrentPhase: "Trạng thái mới"})
		if d != UnknownPhase {
			t.Errorf("Expected UnknownPhase, got %+v", d)
		}
	})

	t.Run("nil request", func(t *testing.T) {
		if d := DisplayPhase(nil); d != UnknownPhase {
			t.Errorf("Expected UnknownPhase for nil, got %+v", d)
		}
	})

	t.Run("empty request", func(t *testing.T) {
		if d := DisplayPhase(&ProxyRequest{}); d != UnknownPhase {
			t.Errorf("Expected UnknownPhase for empty, got %+v", d)
		}
	})
}

func TestDisplayPhase_TerminalStates(t *testing.T) {
	cancelled := DisplayPhase(&ProxyRequest{HasOrder: true, OrderStatus: OrderStatusCancelled})
	if cancelled.ColorTag != "red" {
		t.Errorf("Cancelled ColorTag = %q, want red", cancelled.ColorTag)
	}

	done := DisplayPhase(&ProxyRequest{Status: RequestStatusCompleted})
	if done.ColorTag != "green" {
		t.Errorf("Completed ColorTag = %q, want green", done.ColorTag)
	}
}
