package refstring

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// DefaultGeneratedFile is where randomly generated problems are saved.
const DefaultGeneratedFile = "rand_input.txt"

// Write writes p in the format accepted by Parse.
func Write(w io.Writer, p *Problem) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n", p.Params)
	for _, page := range p.Refs {
		fmt.Fprintf(bw, "%d ", page)
	}
	fmt.Fprintf(bw, "\n")

	err := bw.Flush()
	if err != nil {
		return unavailable(err)
	}

	return nil
}

// WriteFile saves p to the file at path, replacing any existing content.
func WriteFile(path string, p *Problem) error {
	f, err := os.Create(path)
	if err != nil {
		return unavailable(err)
	}

	err = Write(f, p)
	if err != nil {
		f.Close()
		return err
	}

	err = f.Close()
	if err != nil {
		return unavailable(err)
	}

	return nil
}
