//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package's tests.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the engine tests again with the race detector.
func (Test) Race() error {
	mg.Deps(Test.All)
	_, err := executeCmd("go", withArgs("test", "-race", "-count=1", "./engine/..."), withStream())
	return err
}
