package main

import (
	"playlist-backend/internal/cli"
)

func main() {
	cli.Execute()
}
