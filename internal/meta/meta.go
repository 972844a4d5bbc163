// Package meta carries the driver release metadata the build planner
// passes through. The version string is consumed verbatim from the driver
// distribution and handed unmodified to the packaging command.
package meta

// Version is the driver version the plan targets.
var Version = "3.29.2"
