package main

import "lmsadmin/cmd/lmsadmin/cmd"

func main() {
	cmd.Execute()
}
