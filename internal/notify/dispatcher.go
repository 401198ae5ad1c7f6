package notify

import (
	"log/slog"

	"github.com/panjf2000/ants/v2"

	"github.com/Experiencepwunkr/globomail/internal/domain/request"
)

// Mailer delivers a composed message through an external channel
type Mailer interface {
	Send(msg Message) error
}

// Dispatcher composes outcome notifications and runs deliveries on a bounded
// worker pool so a slow mail round-trip never blocks a fulfillment response
type Dispatcher struct {
	mailer Mailer
	pool   *ants.Pool
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher with a worker pool of the given size
func NewDispatcher(logger *slog.Logger, mailer Mailer, poolSize int) (*Dispatcher, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		mailer: mailer,
		pool:   pool,
		logger: logger,
	}, nil
}

// NotifyOutcome composes and dispatches the notification for a terminal
// request. Delivery failures are logged and swallowed; an agent without an
// email address is skipped with a warning.
func (d *Dispatcher) NotifyOutcome(req *request.Request, agentName, agentEmail string) {
	if agentEmail == "" {
		d.logger.Warn("Skipping notification, agent has no email address",
			"request_id", req.ID.String(),
			"status", string(req.Status),
		)
		return
	}

	msg := Compose(req, agentName, agentEmail)
	requestID := req.ID.String()
	status := string(req.Status)

	err := d.pool.Submit(func() {
		if err := d.mailer.Send(msg); err != nil {
			d.logger.Error("Failed to deliver notification",
				"request_id", requestID,
				"status", status,
				"recipient", msg.To,
				"error", err,
			)
			return
		}
		d.logger.Info("Notification delivered",
			"request_id", requestID,
			"status", status,
			"recipient", msg.To,
		)
	})
	if err != nil {
		// Submission failure is as non-fatal as delivery failure
		d.logger.Error("Failed to submit notification to worker pool",
			"request_id", requestID,
			"error", err,
		)
	}
}

// Shutdown gracefully releases the worker pool
func (d *Dispatcher) Shutdown() {
	d.logger.Info("Shutting down notification dispatcher", "running_workers", d.pool.Running())
	d.pool.Release()
}

// Running returns the number of in-flight deliveries
func (d *Dispatcher) Running() int {
	return d.pool.Running()
}
