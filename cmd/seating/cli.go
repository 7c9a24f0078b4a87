package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iliyamo/theater-seating/internal/seating"
)

// run drives one session and returns the process exit code. Only a bad
// initial reservation line is fatal.
func run(g *seating.Grid, in io.Reader, out io.Writer) int {
	sc := bufio.NewScanner(in)

	fmt.Fprintln(out, "Please type in initially reserved seats.")
	fmt.Fprintln(out, "For example, R1C4 R1C6 R2C3 R2C7 R3C9 R3C10. Or hit 'Return' to not set initial seats.")
	var initial string
	if sc.Scan() {
		initial = strings.TrimRight(sc.Text(), "\r")
	}
	if err := g.Reserve(initial); err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	fmt.Fprintln(out, "Now type the number of consecutive seats you wish to reserve.")
	fmt.Fprint(out, "Type 'q' to quit:\n\n")

	for sc.Scan() {
		cmd := strings.TrimSpace(sc.Text())
		if cmd == "q" {
			break
		}
		n, err := strconv.Atoi(cmd)
		if err != nil || n <= 0 {
			fmt.Fprint(out, "Invalid number\n\n")
			continue
		}
		if g.ReserveBestAvailable(n) {
			fmt.Fprintln(out, g)
		} else {
			fmt.Fprint(out, "Not available\n\n")
		}
	}

	fmt.Fprint(out, "Done!\n\n")
	fmt.Fprintln(out, g)
	return 0
}
