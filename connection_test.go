package pac

import "testing"

func TestConnection_DisconnectIdempotent(t *testing.T) {
	sig := NewSignal[int, int]("conn-idempotent")
	conn := sig.ConnectFunc(func(x int) int { return x })

	if err := conn.Disconnect(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := conn.Disconnect(); err != nil {
		t.Fatalf("second Disconnect should be a no-op, got: %v", err)
	}
	if got := sig.Emit(1); len(got) != 0 {
		t.Fatalf("expected no results after disconnect, got %v", got)
	}
}

func TestConnection_CloseIsDisconnectAlias(t *testing.T) {
	sig := NewSignal[int, int]("conn-close")
	conn := sig.ConnectFunc(func(x int) int { return x })

	if err := conn.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sig.Emit(1); len(got) != 0 {
		t.Fatalf("expected no results after Close, got %v", got)
	}
}

func TestConnection_BlockUnblock(t *testing.T) {
	sig := NewSignal[int, int]("conn-block")
	conn := sig.ConnectFunc(func(x int) int { return x })

	conn.Block()
	if got := sig.Emit(1); len(got) != 0 {
		t.Fatalf("expected no results while blocked, got %v", got)
	}

	conn.Unblock()
	if got := sig.Emit(1); len(got) != 1 {
		t.Fatalf("expected one result after unblock, got %v", got)
	}
}

func TestConnection_DetachSuppressesDisconnect(t *testing.T) {
	sig := NewSignal[int, int]("conn-detach")
	conn := sig.ConnectFunc(func(x int) int { return x })

	conn.Detach()
	if err := conn.Disconnect(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sig.Emit(1); len(got) != 1 {
		t.Fatalf("expected the slot to remain connected after a detached Disconnect, got %v", got)
	}
}

func TestConnection_ScopedBlockFreeFunction(t *testing.T) {
	sig := NewSignal[int, int]("conn-scoped")
	conn := sig.ConnectFunc(func(x int) int { return x })

	func() {
		unblock := ScopedBlock(conn)
		defer unblock()
		if got := sig.Emit(1); len(got) != 0 {
			t.Fatalf("expected no results inside the scoped block, got %v", got)
		}
	}()

	if got := sig.Emit(1); len(got) != 1 {
		t.Fatalf("expected the slot restored after the scope exits, got %v", got)
	}
}

func TestConnection_BlockUnblockOnUnknownSlotIsNoop(t *testing.T) {
	sig := NewSignal[int, int]("conn-removed")
	conn := sig.ConnectFunc(func(x int) int { return x })
	conn.Disconnect()

	conn.Block()
	conn.Unblock()
}
