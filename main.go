package main

import "github.com/alx-travel/travelbook/cmd"

func main() {
	cmd.Execute()
}
