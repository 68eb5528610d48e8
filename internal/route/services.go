package route

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/symbol"
)

// Binding is one interface+key -> implementation registration. An empty
// Key is the unkeyed binding.
type Binding struct {
	Interface      symbol.Declaration
	Key            string
	Implementation symbol.Declaration
	Singleton      bool
}

// ConflictError is returned when two implementations claim the same
// interface+key pair.
type ConflictError struct {
	Interface string
	Key       string
	Existing  string
	Incoming  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("interface %s has multiple implementations for key %q:\n  1. %s\n  2. %s",
		e.Interface, e.Key, e.Existing, e.Incoming)
}

// InvalidKeyError is returned for keys containing the reserved ':' separator.
type InvalidKeyError struct {
	Implementation string
	Key            string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("%s: service key %q must not contain ':'", e.Implementation, e.Key)
}

// ServiceRegistry holds one binding table per interface.
type ServiceRegistry struct {
	byInterface map[string]map[string]*Binding
}

func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{byInterface: make(map[string]map[string]*Binding)}
}

// ValidateKeys rejects any key containing ':'.
func ValidateKeys(impl string, keys []string) error {
	for _, k := range keys {
		if strings.Contains(k, ":") {
			return &InvalidKeyError{Implementation: impl, Key: k}
		}
	}
	return nil
}

// Register adds b. Registering the same implementation twice under one key
// is a no-op; a different implementation is a *ConflictError.
func (r *ServiceRegistry) Register(b *Binding) error {
	iface := b.Interface.QualifiedName()
	table, ok := r.byInterface[iface]
	if !ok {
		table = make(map[string]*Binding)
		r.byInterface[iface] = table
	}
	if prev, ok := table[b.Key]; ok {
		if prev.Implementation.QualifiedName() == b.Implementation.QualifiedName() {
			return nil
		}
		return &ConflictError{
			Interface: iface,
			Key:       b.Key,
			Existing:  prev.Implementation.QualifiedName(),
			Incoming:  b.Implementation.QualifiedName(),
		}
	}
	table[b.Key] = b
	return nil
}

// Interfaces returns the bound interface names in ascending order.
func (r *ServiceRegistry) Interfaces() []string {
	return common.SortedKeys(r.byInterface)
}

// Bindings returns the bindings of iface ordered by key.
func (r *ServiceRegistry) Bindings(iface string) []*Binding {
	table := r.byInterface[iface]
	out := make([]*Binding, 0, len(table))
	for _, b := range table {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len returns the number of bindings across all interfaces.
func (r *ServiceRegistry) Len() int {
	n := 0
	for _, t := range r.byInterface {
		n += len(t)
	}
	return n
}
