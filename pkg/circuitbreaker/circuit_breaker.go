package circuitbreaker

type State int

const (
	Closed State = iota
	HalfOpen
	Open
)

type CircuitBreaker[T any] interface {
	Execute(fn func() (T, error)) (T, error)
	State() State
}
