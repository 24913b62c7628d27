package main

import (
	"fmt"
	"os"

	"github.com/mobius-scheduler/vrptwgen/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
