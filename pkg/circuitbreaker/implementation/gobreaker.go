package implementation

import (
	"github.com/mbellotti/go-visit-counter/pkg/circuitbreaker"
	"github.com/sony/gobreaker/v2"
)

type gobreakerCircuitBreaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

func NewCircuitBreaker[T any](settings gobreaker.Settings) circuitbreaker.CircuitBreaker[T] {
	return &gobreakerCircuitBreaker[T]{
		cb: gobreaker.NewCircuitBreaker[T](settings),
	}
}

func (g *gobreakerCircuitBreaker[T]) Execute(fn func() (T, error)) (T, error) {
	return g.cb.Execute(fn)
}

func (g *gobreakerCircuitBreaker[T]) State() circuitbreaker.State {
	switch g.cb.State() {
	case gobreaker.StateClosed:
		return circuitbreaker.Closed
	case gobreaker.StateHalfOpen:
		return circuitbreaker.HalfOpen
	case gobreaker.StateOpen:
		return circuitbreaker.Open
	default:
		return circuitbreaker.Closed
	}
}
