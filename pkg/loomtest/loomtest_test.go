package loomtest

import (
	"testing"

	"github.com/loomui/loom/pkg/loom"
)

func TestHostRendersAndTracksInvalidations(t *testing.T) {
	host := NewHost()
	defer host.Close()

	var cell *loom.StateCell[int]
	host.Render(t, func() {
		cell = loom.UseState(0)
	})
	host.ExpectInvalidations(t, 0)

	cell.Set(1)
	cell.Set(2)
	host.ExpectInvalidations(t, 2)
	host.ExpectNoErrors(t)
}

func TestHostCapturesSinkErrors(t *testing.T) {
	host := NewHost()
	defer host.Close()

	host.Render(t, func() {
		loom.UseEffect(func() loom.Cleanup {
			panic("boom")
		}, nil)
	})

	host.ExpectError(t, "E020")
	if len(host.Errors()) != 1 {
		t.Errorf("expected 1 captured error, got %d", len(host.Errors()))
	}
}

func TestHostRenderTimes(t *testing.T) {
	host := NewHost()
	defer host.Close()

	runs := 0
	host.RenderTimes(t, 3, func() {
		loom.UseEffect(func() loom.Cleanup {
			runs++
			return nil
		}, loom.Always)
	})

	if runs != 3 {
		t.Errorf("expected 3 effect runs, got %d", runs)
	}
}

func TestHostCloseIdempotent(t *testing.T) {
	host := NewHost()
	host.Unmount(t)
	if err := host.Close(); err != nil {
		t.Errorf("Close after Unmount should be a no-op, got %v", err)
	}
}
