package main

import (
	"github.com/Gavin1937/pbd-epub-builder/cmd/pbd"
)

func main() {
	pbd.Execute()
}
