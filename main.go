package main

import "github.com/pacebudget/backend/cmd"

func main() {
	cmd.Execute()
}
