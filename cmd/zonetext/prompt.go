package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// promptPages asks for a page range. The start page is asked for until a
// positive number is given; an empty or non-numeric end means the start
// page.
func promptPages(in io.Reader, out io.Writer) (int, int, error) {
	sc := bufio.NewScanner(in)

	var start int
	for {
		fmt.Fprint(out, "Enter start page: ")
		if !sc.Scan() {
			return 0, 0, readErr(sc)
		}
		n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err == nil && n > 0 {
			start = n
			break
		}
		fmt.Fprintln(out, "Please enter a valid number.")
	}

	fmt.Fprint(out, "Enter end page (press Enter for same page): ")
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, 0, err
		}
		return start, start, nil
	}
	end, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || end < 1 {
		end = start
	}
	return start, end, nil
}

func readErr(sc *bufio.Scanner) error {
	if err := sc.Err(); err != nil {
		return err
	}
	return errors.New("no start page entered")
}
