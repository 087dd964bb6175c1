package main

import (
	"dhi-migrate/cmd"
)

func main() {
	cmd.Execute()
}
