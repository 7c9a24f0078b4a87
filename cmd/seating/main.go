// Command seating is the interactive box office: it takes an initial list
// of reserved seats, then repeatedly reserves the best block of the size
// typed in until "q".
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iliyamo/theater-seating/internal/config"
	"github.com/iliyamo/theater-seating/internal/seating"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	rows := flag.Int("rows", cfg.SeatRows, "number of seat rows")
	cols := flag.Int("cols", cfg.SeatCols, "number of seats per row")
	flag.Parse()

	g, err := seating.New(*rows, *cols)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(run(g, os.Stdin, os.Stdout))
}
