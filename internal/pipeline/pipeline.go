// Package pipeline collects the message-pipeline behavior registrations
// contributed by features during Setup.
//
// Behaviors are opaque to the activation engine. The hosting messaging
// framework consumes the ordered registrations when it assembles its
// incoming and outgoing pipelines.
package pipeline

// Registration is one behavior contributed to a named pipeline stage.
type Registration struct {
	Stage    string
	Name     string
	Behavior any
}

// Config accumulates behavior registrations in contribution order.
type Config struct {
	regs []Registration
}

// New creates an empty pipeline configuration.
func New() *Config {
	return &Config{}
}

// Register appends a behavior registration for the given stage.
func (c *Config) Register(stage, name string, behavior any) {
	c.regs = append(c.regs, Registration{Stage: stage, Name: name, Behavior: behavior})
}

// Registrations returns the accumulated registrations in contribution order.
func (c *Config) Registrations() []Registration {
	return append([]Registration(nil), c.regs...)
}
