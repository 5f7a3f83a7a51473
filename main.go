package main

import "github.com/Rorical/RoriMail/cmd"

func main() {
	cmd.Execute()
}
