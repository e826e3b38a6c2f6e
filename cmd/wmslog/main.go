// wmslog - WMS Log Analyzer
//
// wmslog reads a WMS interface log and reports ERROR records, data transfers,
// elapsed times and send intervals, optionally rendering them as charts.
package main

import (
	"os"

	"github.com/ccollicutt/wmslog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
