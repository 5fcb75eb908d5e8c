package main

import (
	"context"
	"os"

	"github.com/bernhaaard/mental-math-trainer-sub002/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
