package messaging

import (
	"context"

	"github.com/jwalitptl/doctor-api/pkg/circuitbreaker"
)

type guardedBroker struct {
	Broker
	breaker *circuitbreaker.CircuitBreaker
}

// NewGuardedBroker routes Publish through a circuit breaker so an unreachable
// broker fails fast instead of retrying on every write.
func NewGuardedBroker(b Broker, cb *circuitbreaker.CircuitBreaker) Broker {
	return &guardedBroker{Broker: b, breaker: cb}
}

func (g *guardedBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	return g.breaker.Execute(func() error {
		return g.Broker.Publish(ctx, channel, message)
	})
}
