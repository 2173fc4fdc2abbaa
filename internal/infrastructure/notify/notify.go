// Package notify implementa el sumidero de avisos al usuario (toasts).
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/pkg/logger"
)

// LogNotifier registra cada aviso en el log estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador sobre el logger de la aplicación.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, message string, kind ports.NotifyKind) {
	if kind == ports.NotifyError {
		n.log.Warn().Str("kind", string(kind)).Msg(message)
		return
	}
	n.log.Info().Str("kind", string(kind)).Msg(message)
}

// Notification aviso almacenado por Recorder.
type Notification struct {
	Seq     uint64           `json:"seq"`
	Message string           `json:"message"`
	Kind    ports.NotifyKind `json:"kind"`
	At      time.Time        `json:"at"`
}

// DefaultCapacity avisos retenidos por Recorder cuando no se indica otro tamaño.
const DefaultCapacity = 100

// Recorder guarda los últimos avisos en un buffer circular para que la UI los consulte.
type Recorder struct {
	mu    sync.Mutex
	buf   []Notification
	next  int
	full  bool
	seq   uint64
	clock func() time.Time
}

// NewRecorder crea un Recorder con la capacidad indicada (<=0 usa DefaultCapacity).
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{buf: make([]Notification, capacity), clock: time.Now}
}

func (r *Recorder) Notify(_ context.Context, message string, kind ports.NotifyKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.buf[r.next] = Notification{Seq: r.seq, Message: message, Kind: kind, At: r.clock()}
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
}

// Since devuelve, del más antiguo al más nuevo, los avisos con Seq > after.
func (r *Recorder) Since(after uint64) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, 0, len(r.buf))
	for _, n := range r.ordered() {
		if n.Seq > after {
			out = append(out, n)
		}
	}
	return out
}

// Last devuelve el aviso más reciente.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq == 0 {
		return Notification{}, false
	}
	i := (r.next - 1 + len(r.buf)) % len(r.buf)
	return r.buf[i], true
}

func (r *Recorder) ordered() []Notification {
	if !r.full {
		return r.buf[:r.next]
	}
	out := make([]Notification, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}

// Multi reenvía cada aviso a todos los notificadores.
type Multi []ports.Notifier

func (m Multi) Notify(ctx context.Context, message string, kind ports.NotifyKind) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, message, kind)
		}
	}
}
