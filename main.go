package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/cmd/root"
)

func main() {
	err := root.GetRootCmd().Execute()
	if err != nil {
		log.Fatalf("Could not run command %s", err.Error())
	}
}
