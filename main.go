package main

import "github.com/hmelementsgreen/HRM-Dashboard/cmd"

func main() {
	cmd.Execute()
}
