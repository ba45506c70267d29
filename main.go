package main

import (
	"log"

	"github.com/nzgridlab/gridsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
