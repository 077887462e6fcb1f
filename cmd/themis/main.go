package main

import (
	"github.com/NVIDIA/fleet-policy/pkg/cli"
)

func main() {
	cli.Execute()
}
