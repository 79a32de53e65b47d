package types

import "fmt"

// An Invariant is a function which tests a particular invariant.
// The invariant returns a descriptive message about what happened
// and a boolean indicating whether the invariant has been broken.
// The simulator will then halt and print the logs.
type Invariant func(ctx Context) (string, bool)

// Invariants defines a group of invariants
type Invariants []Invariant

// expected interface for registering invariants
type InvariantRegistry interface {
	RegisterRoute(moduleName, route string, invar Invariant)
}

// FormatInvariant returns a standardized invariant message.
func FormatInvariant(module, name, msg string) string {
	return fmt.Sprintf("%s: %s invariant\n%s\n", module, name, msg)
}

// InvarRoute is an invariant registered under a module route
type InvarRoute struct {
	ModuleName string
	Route      string
	Invar      Invariant
}

// FullRoute returns "module/route"
func (i InvarRoute) FullRoute() string {
	return i.ModuleName + "/" + i.Route
}

// InvarRoutes collects invariants and asserts them all at once.
type InvarRoutes struct {
	routes []InvarRoute
}

var _ InvariantRegistry = (*InvarRoutes)(nil)

func (ir *InvarRoutes) RegisterRoute(moduleName, route string, invar Invariant) {
	ir.routes = append(ir.routes, InvarRoute{ModuleName: moduleName, Route: route, Invar: invar})
}

func (ir *InvarRoutes) Routes() []InvarRoute {
	return ir.routes
}

// AssertInvariants runs every registered invariant and returns the message of
// the first broken one.
func (ir *InvarRoutes) AssertInvariants(ctx Context) (string, bool) {
	for _, r := range ir.routes {
		if msg, broken := r.Invar(ctx); broken {
			return fmt.Sprintf("invariant broken %s: %s", r.FullRoute(), msg), true
		}
	}
	return "", false
}
