package main

import "github.com/xvierd/discipline-tracker/cmd"

func main() {
	cmd.Execute()
}
