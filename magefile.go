//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

// Build compiles the extplan command.
func Build() error {
	return sh.RunV("go", "build", "./...")
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet across the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Plan builds and runs the planner against the current host.
func Plan() error {
	mg.Deps(Build)
	return sh.RunV("go", "run", "./cmd/extplan")
}
