package modeling

import "sort"

// PortOwner is anything that communicates through named ports.
type PortOwner interface {
	AddPort(name string, port Port)
	GetPortByName(name string) Port
	Ports() []Port
}

// PortOwnerBase implements PortOwner.
type PortOwnerBase struct {
	ports map[string]Port
}

// MakePortOwnerBase creates a ready-to-use PortOwnerBase.
func MakePortOwnerBase() PortOwnerBase {
	return PortOwnerBase{ports: make(map[string]Port)}
}

// AddPort registers port under name.
func (o *PortOwnerBase) AddPort(name string, port Port) {
	if o.ports == nil {
		o.ports = make(map[string]Port)
	}

	if _, found := o.ports[name]; found {
		panic("port " + name + " already exists")
	}

	o.ports[name] = port
}

// GetPortByName looks up a previously added port, panicking if it is
// missing.
func (o PortOwnerBase) GetPortByName(name string) Port {
	port, found := o.ports[name]
	if !found {
		panic("port " + name + " not found")
	}

	return port
}

// Ports returns every port owned, sorted by name for determinism.
func (o PortOwnerBase) Ports() []Port {
	names := make([]string, 0, len(o.ports))
	for n := range o.ports {
		names = append(names, n)
	}

	sort.Strings(names)

	list := make([]Port, 0, len(names))
	for _, n := range names {
		list = append(list, o.ports[n])
	}

	return list
}
