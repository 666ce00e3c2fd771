package main

import (
	"github.com/urfave/cli/v3"
)

func getCommands() []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getCatalogCommands()...)
	cmds = append(cmds, getKeyCommands()...)
	cmds = append(cmds, getDataCommands()...)
	cmds = append(cmds, getSystemCommands()...)
	return cmds
}
