// Package app is the composition root a hosting messaging framework embeds.
//
// It wires the settings store, the feature catalog, and the component and
// pipeline collaborators, then drives the three phases of the engine:
//
//  1. Configure: apply HCL overrides, sort, resolve enablement to a fixed
//     point, activate, lock settings, publish the Features Report.
//  2. StartFeatures: sequentially start the tasks of active features.
//  3. StopFeatures: sequentially stop them again.
//
// Configuration is single-threaded and one-shot; the App is not safe for
// concurrent use during that phase.
package app
