package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes use-case events through logger. Rejected
// input is logged at warn level, anything else that failed at error level.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		if isUserError(event.Err) {
			o.logger.WarnContext(ctx, "flow_use_case", attrs...)
			return
		}
		o.logger.ErrorContext(ctx, "flow_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "flow_use_case", attrs...)
}

func isUserError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrInvalidTransition)
}

// MetricsUseCaseObserver counts flow steps by name, outcome and source.
type MetricsUseCaseObserver struct {
	steps *prometheus.CounterVec
}

// NewMetricsUseCaseObserver registers the flow step counter on reg.
func NewMetricsUseCaseObserver(namespace string, reg prometheus.Registerer) (*MetricsUseCaseObserver, error) {
	steps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flow_steps_total",
		Help:      "Flow use cases executed, by step, status and result source.",
	}, []string{"step", "status", "source"})
	if err := reg.Register(steps); err != nil {
		return nil, err
	}
	return &MetricsUseCaseObserver{steps: steps}, nil
}

func (o *MetricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	status := "ok"
	switch {
	case event.Err != nil && isUserError(event.Err):
		status = "rejected"
	case event.Err != nil:
		status = "error"
	}
	source, _ := event.Fields["source"].(string)
	o.steps.WithLabelValues(event.Name, status, source).Inc()
}

type multiUseCaseObserver []UseCaseObserver

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, o := range m {
		o.ObserveUseCase(ctx, event)
	}
}

// useCaseObserverOrNoop fans out to every non-nil observer.
func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live multiUseCaseObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}
