package main

import (
	"github.com/apimon/apimon/cmd"
	"github.com/sirupsen/logrus"
)

func main() {
	err := cmd.NewRootCmd().Execute()
	if err != nil {
		logrus.Fatalf("Error executing command: %v", err)
	}
}
