package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the core bidding operations. A nil *Metrics is valid and
// records nothing, which keeps service tests free of a registry.
type Metrics struct {
	bidsSubmitted     prometheus.Counter
	dispatchEvents    *prometheus.CounterVec
	commissionRecalcs *prometheus.CounterVec
}

// Dispatch event results.
const (
	DispatchApplied  = "applied"
	DispatchConflict = "conflict"
	DispatchRejected = "rejected"
)

// Commission recalculation outcomes.
const (
	CommissionUpdated = "updated"
	CommissionSkipped = "skipped"
)

// New registers the bidding collectors on the provided registerer. If reg is
// nil, the default registerer is used. Already registered collectors are
// reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	bidsSubmitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bids_submitted_total",
		Help: "Total number of bids accepted by the ledger",
	})
	dispatchEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_events_total",
		Help: "Total number of dispatch recordings by result",
	}, []string{"result"})
	commissionRecalcs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "commission_recalculations_total",
		Help: "Total number of commission recalculations by outcome",
	}, []string{"outcome"})

	if err := reg.Register(bidsSubmitted); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			bidsSubmitted = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(dispatchEvents); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dispatchEvents = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(commissionRecalcs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			commissionRecalcs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &Metrics{
		bidsSubmitted:     bidsSubmitted,
		dispatchEvents:    dispatchEvents,
		commissionRecalcs: commissionRecalcs,
	}, nil
}

func (m *Metrics) IncBidsSubmitted() {
	if m == nil {
		return
	}
	m.bidsSubmitted.Inc()
}

func (m *Metrics) IncDispatchEvent(result string) {
	if m == nil {
		return
	}
	m.dispatchEvents.WithLabelValues(result).Inc()
}

func (m *Metrics) IncCommissionRecalc(outcome string) {
	if m == nil {
		return
	}
	m.commissionRecalcs.WithLabelValues(outcome).Inc()
}
