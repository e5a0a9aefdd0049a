//go:build mage

// Package main provides build targets for the measures project using Mage.
//
// Usage:
//
//	mage build    Compile the measures binary to bin/
//	mage test     Run all tests
//	mage cover    Run tests with a coverage profile in bin/coverage.out
//	mage lint     Run golangci-lint
//	mage smoke    Build, then run a few conversions against temp directories
//	mage clean    Remove build artifacts
//	mage install  Install measures to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "measures"
	binaryDir  = "bin"
	cmdDir     = "./cmd/measures"
	modulePath = "github.com/mesh-intelligence/measures"
)

// ldflags stamps the commit into internal/buildinfo when git is available.
func ldflags() string {
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil || commit == "" {
		return ""
	}
	return fmt.Sprintf("-X %s/internal/buildinfo.Commit=%s", modulePath, strings.TrimSpace(commit))
}

// Build compiles the measures binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Cover runs all tests and writes a coverage profile.
func Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV("go", "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func", profile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Smoke builds the binary and runs standard and smart conversions with
// throwaway config and data directories.
func Smoke() error {
	mg.Deps(Build)

	tmp, err := os.MkdirTemp("", "measures-smoke-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	bin := filepath.Join(binaryDir, binaryName)
	base := []string{"--config-dir", filepath.Join(tmp, "config"), "--data-dir", filepath.Join(tmp, "data")}
	runs := [][]string{
		{"init"},
		{"convert", "length", "kilometer", "mile", "10"},
		{"smart", "100 celsius to fahrenheit"},
		{"history"},
	}
	for _, args := range runs {
		if err := sh.RunV(bin, append(base, args...)...); err != nil {
			return fmt.Errorf("measures %s: %w", strings.Join(args, " "), err)
		}
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
