package main

import (
	_ "time/tzdata"

	"achrip/cmd/achrip/commands"
	"achrip/internal/components/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
