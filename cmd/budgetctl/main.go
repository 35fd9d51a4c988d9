package main

import (
	"os"

	"github.com/dafibh/zerobudget/cmd/budgetctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
