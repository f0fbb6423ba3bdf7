//go:build js && wasm

// Command plannerwasm is the browser bundle behind the dashboard planner.
//
//	GOOS=js GOARCH=wasm go build -o assets/planner.wasm ./cmd/plannerwasm
package main

import (
	"syscall/js"

	"kitplanner/internal/dom"
)

func main() {
	if dom.Bind(js.Global().Get("document")) == nil {
		return
	}
	select {}
}
