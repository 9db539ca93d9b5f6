//go:build mage
// +build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir  = "bin"
	tmpDir  = "tmp"
	appName = "portal"
)

var Default = Run

type Build mg.Namespace

// Web builds the web target into bin/web/portal.
func (Build) Web() error {
	return buildTarget("web")
}

// Mobile builds the mobile target into bin/mobile/portal.
func (Build) Mobile() error {
	return buildTarget("mobile")
}

// Prod builds the production target into bin/prod/portal.
func (Build) Prod() error {
	return buildTarget("prod")
}

// buildTarget compiles portal-<target> and then renames it to the
// canonical binary name in the target's output dir.
func buildTarget(target string) error {
	mg.Deps(Tidy, Gen)

	dir := filepath.Join(binDir, target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	built := filepath.Join(dir, appName+"-"+target+exeSuffix())
	fmt.Println("Building:", built)
	env := map[string]string{"CGO_ENABLED": "0"}
	ldflags := "-s -w -X main.buildTarget=" + target
	if err := sh.RunWithV(env, "go", "build", "-trimpath", "-ldflags", ldflags, "-o", built, "./cmd/web"); err != nil {
		return err
	}
	return postBuild(dir, target)
}

func postBuild(dir, target string) error {
	from := filepath.Join(dir, appName+"-"+target+exeSuffix())
	to := filepath.Join(dir, appName+exeSuffix())
	if _, err := os.Stat(from); err != nil {
		return fmt.Errorf("post-build: %w", err)
	}
	if err := os.Remove(to); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	fmt.Printf("Renaming %s -> %s\n", from, to)
	return os.Rename(from, to)
}

// Gen compiles the .templ components under templates/ into Go.
func Gen() error {
	if _, err := exec.LookPath("templ"); err != nil {
		return fmt.Errorf("templ not found. Install with: mage Tools")
	}
	fmt.Println("Generating templ components...")
	return sh.RunV("templ", "generate", "-path", "./templates")
}

func Run() error {
	mg.Deps(Gen)
	fmt.Println("Running (go run) on :8080 ...")
	return sh.RunV("go", "run", "./cmd/web")
}

// Mock starts the fixture backends the local config points at.
func Mock() error {
	services := map[string]string{"clients": ":3001", "products": ":3004", "orders": ":3005"}
	errc := make(chan error, len(services))
	for svc, addr := range services {
		go func(svc, addr string) {
			errc <- sh.RunV("go", "run", "./cmd/tools/mockbackend", "-service", svc, "-addr", addr)
		}(svc, addr)
	}
	return <-errc
}

func Test() error {
	mg.Deps(Gen)
	fmt.Println("Testing...")
	return sh.RunV("go", "test", "./...", "-count=1")
}

func TestRace() error {
	mg.Deps(Gen)
	fmt.Println("Testing with -race...")
	if runtime.GOOS == "windows" {
		fmt.Println("Note: -race on Windows may be unsupported/unstable depending on your Go toolchain.")
	}
	return sh.RunV("go", "test", "./...", "-race", "-count=1")
}

func Fmt() error {
	fmt.Println("Formatting...")
	if err := sh.RunV("gofmt", "-w", "./cmd", "./internal", "./pkg", "./templates", "./magefile.go"); err != nil {
		return err
	}
	if _, err := exec.LookPath("templ"); err != nil {
		return nil
	}
	return sh.RunV("templ", "fmt", "./templates")
}

func Lint() error {
	mg.Deps(Gen)
	fmt.Println("Linting (golangci-lint)...")
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		return fmt.Errorf("golangci-lint not found. Install with: mage Tools")
	}
	return sh.RunV("golangci-lint", "run", "--timeout=3m", "./...")
}

func Check() error {
	mg.Deps(Fmt, Lint, Test)
	fmt.Println("Check OK.")
	return nil
}

func Tidy() error {
	fmt.Println("Tidying go.mod/go.sum...")
	return sh.RunV("go", "mod", "tidy")
}

// CreateTable creates the sessions table for SESSION_STORE=gorm.
func CreateTable() error {
	return sh.RunV("go", "run", "./cmd/tools/createtable")
}

// ResolveEnv substitutes deployment placeholders in .env.production.
func ResolveEnv() error {
	return sh.RunV("go", "run", "./cmd/tools/resolveenv", "-in", ".env.production")
}

func Clean() error {
	fmt.Println("Cleaning...")
	_ = os.RemoveAll(binDir)
	_ = os.RemoveAll(tmpDir)
	return nil
}

// Tools installs templ and golangci-lint.
func Tools() error {
	fmt.Println("Installing tools (templ, golangci-lint)...")
	if err := sh.RunV("go", "install", "github.com/a-h/templ/cmd/templ@v0.3.906"); err != nil {
		return err
	}
	if err := sh.RunV("go", "install", "github.com/golangci/golangci-lint/v2/cmd/golangci-lint@latest"); err != nil {
		return err
	}
	for _, bin := range []string{"templ", "golangci-lint"} {
		if _, err := exec.LookPath(bin); err != nil && !errors.Is(err, exec.ErrNotFound) {
			return err
		}
	}
	fmt.Println("Tools installed. Ensure GOBIN/GOPATH/bin is in PATH.")
	return nil
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
