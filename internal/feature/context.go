package feature

import "github.com/vk/featbus/internal/settings"

// Context is the activation context handed to CheckPrerequisites and Setup.
// It binds the settings store and the component and pipeline collaborators,
// and accumulates the startup tasks a feature contributes during Setup.
type Context struct {
	settings   settings.Settings
	components ComponentRegistrar
	pipeline   PipelineConfigurer

	taskNames     []string
	taskFactories []TaskFactory
}

// NewContext creates an activation context bound to the given collaborators.
func NewContext(s settings.Settings, c ComponentRegistrar, p PipelineConfigurer) *Context {
	return &Context{
		settings:   s,
		components: c,
		pipeline:   p,
	}
}

// Settings returns the settings store.
func (c *Context) Settings() settings.Settings {
	return c.settings
}

// Components returns the component-registration capability.
func (c *Context) Components() ComponentRegistrar {
	return c.components
}

// Pipeline returns the pipeline-configuration capability.
func (c *Context) Pipeline() PipelineConfigurer {
	return c.pipeline
}

// RegisterStartupTask records a (factory, name) pair. The name appears in the
// Features Report; the factory is invoked at process startup.
func (c *Context) RegisterStartupTask(name string, factory TaskFactory) {
	c.taskNames = append(c.taskNames, name)
	c.taskFactories = append(c.taskFactories, factory)
}

// TaskNames returns the registered task names in registration order.
func (c *Context) TaskNames() []string {
	return c.taskNames
}

// TaskFactories returns the registered factories in registration order.
func (c *Context) TaskFactories() []TaskFactory {
	return c.taskFactories
}
