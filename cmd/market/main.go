package main

import (
	"github.com/fairlane/marketplace/cmd/market/cmd"
)

func main() {
	cmd.Execute()
}
