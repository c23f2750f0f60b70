package indicator

import (
	"sync"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Registry manages the calculators a provider runs.
type Registry interface {
	RegisterIndicator(calculator Calculator) error
	GetIndicator(name string) (Calculator, error)
	// ListIndicators returns the names in registration order.
	ListIndicators() []string
	RemoveIndicator(name string) error
}

// RegistryV1 is a mutex-guarded Registry.
type RegistryV1 struct {
	calculators map[string]Calculator
	order       []string
	mu          sync.RWMutex
}

// NewIndicatorRegistry creates an empty registry.
func NewIndicatorRegistry() Registry {
	return &RegistryV1{
		calculators: make(map[string]Calculator),
		order:       []string{},
		mu:          sync.RWMutex{},
	}
}

// RegisterIndicator adds a calculator to the registry.
func (r *RegistryV1) RegisterIndicator(calculator Calculator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := calculator.Name()
	if _, exists := r.calculators[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "RegisterIndicator: indicator with name %s already registered", name)
	}

	r.calculators[name] = calculator
	r.order = append(r.order, name)

	return nil
}

// GetIndicator retrieves a calculator by name.
func (r *RegistryV1) GetIndicator(name string) (Calculator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	calculator, exists := r.calculators[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "GetIndicator: indicator with name %s not found", name)
	}

	return calculator, nil
}

// ListIndicators returns all registered names in registration order.
func (r *RegistryV1) ListIndicators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)

	return names
}

// RemoveIndicator removes a calculator from the registry.
func (r *RegistryV1) RemoveIndicator(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.calculators[name]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "RemoveIndicator: indicator with name %s not found", name)
	}

	delete(r.calculators, name)

	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}
