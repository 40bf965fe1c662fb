package audiopred

import "testing"

func TestPredictOrders(t *testing.T) {
	var h History
	h.Push(10)
	h.Push(20) // h = [20,10,0]

	if got := h.Predict(0); got != 0 {
		t.Errorf("order0 = %d, want 0", got)
	}
	if got := h.Predict(1); got != 20 {
		t.Errorf("order1 = %d, want 20", got)
	}
	if got := h.Predict(2); got != 2*20-10 {
		t.Errorf("order2 = %d, want %d", got, 2*20-10)
	}
	if got := h.Predict(3); got != 3*20-3*10+0 {
		t.Errorf("order3 = %d, want %d", got, 3*20-3*10)
	}
}

func TestPredictClamps(t *testing.T) {
	var h History
	h.Push(0)
	h.Push(32767) // 2*32767 - 0 = 65534
	if got := h.Predict(2); got != 32767 {
		t.Errorf("order2 should clamp to 32767, got %d", got)
	}

	var h2 History
	h2.Push(0)
	h2.Push(-32768) // 2*(-32768) - 0 = -65536
	if got := h2.Predict(2); got != -32768 {
		t.Errorf("order2 should clamp to -32768, got %d", got)
	}
}

func TestZeroHistoryAllOrders(t *testing.T) {
	var h History
	for order := 0; order <= 3; order++ {
		if got := h.Predict(order); got != 0 {
			t.Errorf("order%d with zero history = %d, want 0", order, got)
		}
	}
}

func TestMidSideRoundTrip(t *testing.T) {
	samples := []struct{ l, r int16 }{
		{0, 0}, {100, -100}, {32767, 32767}, {-32768, -32768},
		{32767, -32768}, {-32768, 32767}, {1, 2}, {-1, -2},
	}
	for _, s := range samples {
		mid, side := ForwardMidSide(s.l, s.r)
		l, r := InverseMidSide(mid, side)
		if l != s.l || r != s.r {
			t.Errorf("ForwardMidSide(%d,%d)=(%d,%d); InverseMidSide -> (%d,%d), want (%d,%d)",
				s.l, s.r, mid, side, l, r, s.l, s.r)
		}
	}
}
