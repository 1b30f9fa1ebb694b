package mappers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/padshift/padshift/forcefeedback"
	"github.com/padshift/padshift/padapi"
)

// namedMappers holds mappers registered by name for lookup at controller
// creation time. The empty name is the default mapper.
var namedMappers = xsync.NewMapOf[string, *Mapper]()

// RegisterNamed makes a mapper retrievable by its name. Re-registering a
// name replaces the previous mapper; newly created controllers see the
// replacement, existing controllers keep the instance they hold.
func RegisterNamed(m *Mapper) {
	namedMappers.Store(m.Name(), m)
}

// GetByName retrieves a registered mapper.
func GetByName(name string) (*Mapper, error) {
	m, ok := namedMappers.Load(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", padapi.ErrUnknownMapper, name)
	}
	return m, nil
}

// GetDefault retrieves the mapper registered under the empty name.
func GetDefault() (*Mapper, error) {
	return GetByName("")
}

// IsNameKnown reports whether a mapper is registered under the name.
func IsNameKnown(name string) bool {
	_, ok := namedMappers.Load(name)
	return ok
}

// RegisteredNames returns the sorted names of all registered mappers.
func RegisteredNames() []string {
	var names []string
	namedMappers.Range(func(name string, _ *Mapper) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

var nullMapperOnce = sync.OnceValue(func() *Mapper {
	m, err := NewMapper("null", ElementMap{}, forcefeedback.ActuatorMap{})
	if err != nil {
		panic(err)
	}
	return m
})

// GetNull returns a mapper that affects no controller elements. Usable as
// a fall-back when a configured mapper cannot be resolved.
func GetNull() *Mapper {
	return nullMapperOnce()
}
