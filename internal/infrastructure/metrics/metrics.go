// Package metrics expone contadores Prometheus del motor de inventario.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	appinventory "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

var _ appinventory.MetricsRecorder = (*Recorder)(nil)

// Recorder implementa inventory.MetricsRecorder con contadores Prometheus.
type Recorder struct {
	registered *prometheus.CounterVec
	rejected   *prometheus.CounterVec
}

// NewRecorder registra los contadores en el registry dado (nil = registry por
// defecto) y devuelve el recorder.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Recorder{
		registered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_movements_total",
			Help: "Movimientos de inventario confirmados, por tipo.",
		}, []string{"type"}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_movements_rejected_total",
			Help: "Movimientos rechazados, por motivo.",
		}, []string{"reason"}),
	}
}

// MovementRegistered incrementa el contador de movimientos confirmados.
func (r *Recorder) MovementRegistered(movementType entity.MovementType) {
	r.registered.WithLabelValues(string(movementType)).Inc()
}

// MovementRejected incrementa el contador de rechazos.
func (r *Recorder) MovementRejected(reason string) {
	r.rejected.WithLabelValues(reason).Inc()
}
