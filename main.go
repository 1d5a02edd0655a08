package main

import "github.com/kamal-hamza/specplot/cmd"

func main() {
	cmd.Execute()
}
