// Package smacross generates the trade list for a moving-average crossover
// strategy: long while the close sits above its moving average, flat
// otherwise.
package smacross

import (
	talib "github.com/markcheno/go-talib"
)

// Indicator maps a close-price series to an indicator series of the same
// length. Warmup indices (before the indicator has enough history) hold zero.
type Indicator func(series []float64, period int) []float64

// Registry is an explicit, ordered indicator registry: names are iterated
// in registration order, never discovered by reflection.
type Registry struct {
	names []string
	fns   map[string]Indicator
}

func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Indicator)}
}

// Register adds an indicator under name. Re-registering a name replaces the
// function but keeps its original position.
func (r *Registry) Register(name string, fn Indicator) {
	if _, exists := r.fns[name]; !exists {
		r.names = append(r.names, name)
	}
	r.fns[name] = fn
}

func (r *Registry) Lookup(name string) (Indicator, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}

// Names returns the registered indicator names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// DefaultRegistry registers the stock moving averages.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("sma", talib.Sma)
	r.Register("ema", talib.Ema)
	r.Register("wma", talib.Wma)
	r.Register("trima", talib.Trima)
	return r
}
