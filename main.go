package main

import (
	"os"

	"irjson/cmd"
)

func main() {
	os.Exit(cmd.RunExporter())
}
