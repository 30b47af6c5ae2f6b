package main

import "github.com/jhoicas/backoffice-umkm/cmd/backoffice/commands"

func main() {
	commands.Execute()
}
