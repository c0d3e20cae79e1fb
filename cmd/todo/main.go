package main

import (
	"github.com/nagrohan579/todo-list/internal/cli"
)

func main() {
	cli.Execute()
}
