package toast

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dfdavila2/workingWithDataInLWC/pkg/ctypes"
	"github.com/dfdavila2/workingWithDataInLWC/pkg/uierr"
)

// Channel is the bus channel toasts travel on between publishers and the
// SSE fan-out.
const Channel = "toasts"

// Publisher is the injected notification capability handed to modules that
// want to raise toasts.
type Publisher interface {
	Publish(ctx context.Context, t ctypes.Toast) error
}

// Bus is the pub/sub transport the publisher writes to.
type Bus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// BusPublisher publishes toasts as JSON onto the bus.
type BusPublisher struct {
	bus Bus
}

func NewBusPublisher(bus Bus) *BusPublisher {
	return &BusPublisher{bus: bus}
}

func (p *BusPublisher) Publish(ctx context.Context, t ctypes.Toast) error {
	stamp(&t)
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return p.bus.Publish(ctx, Channel, payload)
}

func stamp(t *ctypes.Toast) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Variant == "" {
		t.Variant = ctypes.VariantInfo
	}
	if t.Mode == "" {
		t.Mode = ctypes.ModeDismissible
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
}

// Success builds a success toast.
func Success(title, message string) ctypes.Toast {
	return ctypes.Toast{
		Title:   title,
		Message: message,
		Variant: ctypes.VariantSuccess,
		Mode:    ctypes.ModeDismissible,
	}
}

// Error builds an error toast from any failure payload: the payload is
// reduced to display strings and joined, so callers never leak raw error
// structures to the user.
func Error(title string, err any) ctypes.Toast {
	return ctypes.Toast{
		Title:   title,
		Message: strings.Join(uierr.Reduce(err), "; "),
		Variant: ctypes.VariantError,
		Mode:    ctypes.ModeSticky,
	}
}
