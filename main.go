/*
Copyright 2024 Markus Papenbrock
*/
package main

import "github.com/mpapenbr/skirace-standings-go/cmd"

func main() {
	cmd.Execute()
}
