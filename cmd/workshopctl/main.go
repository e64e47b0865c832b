package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sangkips/aluworks-api/internal/cli"
	"github.com/sangkips/aluworks-api/internal/config"
)

func main() {
	_ = godotenv.Load()

	if err := cli.RootCmd(config.Load).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
