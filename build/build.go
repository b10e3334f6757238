// Build program for quill. Run tasks with: go run ./build [task]
package main

import (
	"github.com/goyek/goyek/v3"
	"github.com/goyek/x/boot"
	"github.com/goyek/x/cmd"
)

var format = goyek.Define(goyek.Task{
	Name:  "fmt",
	Usage: "format Go code",
	Action: func(a *goyek.A) {
		cmd.Exec(a, "go fmt ./...")
	},
})

var tidy = goyek.Define(goyek.Task{
	Name:  "tidy",
	Usage: "go mod tidy",
	Action: func(a *goyek.A) {
		cmd.Exec(a, "go mod tidy")
	},
})

var lint = goyek.Define(goyek.Task{
	Name:  "lint",
	Usage: "run golangci-lint",
	Action: func(a *goyek.A) {
		cmd.Exec(a, "golangci-lint run ./...")
	},
})

var test = goyek.Define(goyek.Task{
	Name:  "test",
	Usage: "run Go tests with race detection and coverage",
	Action: func(a *goyek.A) {
		cmd.Exec(a, "go test -race -coverprofile=coverage.out ./...")
	},
})

var build = goyek.Define(goyek.Task{
	Name:  "build",
	Usage: "build the quill binary",
	Action: func(a *goyek.A) {
		cmd.Exec(a, "go build -o quill .")
	},
})

var all = goyek.Define(goyek.Task{
	Name:  "all",
	Usage: "run all tasks",
	Deps:  goyek.Deps{format, tidy, lint, test, build},
})

func main() {
	goyek.SetDefault(all)
	boot.Main()
}
