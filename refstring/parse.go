package refstring

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load opens the file at path and parses a problem from it.
func Load(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, unavailable(err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a problem in the text format
//
//	page frame window length
//	p0 p1 p2 ... p(length-1)
//
// The references may span any number of lines. The result is validated.
func Parse(r io.Reader) (*Problem, error) {
	br := bufio.NewReader(r)

	params, err := parseHeader(br)
	if err != nil {
		return nil, err
	}

	err = params.Validate()
	if err != nil {
		return nil, err
	}

	refs, err := allocate(params.Length)
	if err != nil {
		return nil, err
	}

	count, err := parseRefs(br, refs)
	if err != nil {
		return nil, err
	}

	if count != params.Length {
		return nil, malformedf(
			"no. of page reference and string's length not matched: "+
				"declared %d, found %s",
			params.Length, countString(count, params.Length))
	}

	p := &Problem{Params: params, Refs: refs}

	err = p.Validate()
	if err != nil {
		return nil, err
	}

	return p, nil
}

func parseHeader(br *bufio.Reader) (Params, error) {
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Params{}, unavailable(err)
	}

	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Params{}, malformedf(
			"the first line must hold 4 integers "+
				"(page frame window length), got %q",
			strings.TrimSpace(line))
	}

	values := make([]int, 4)
	for i, f := range fields {
		v, convErr := strconv.Atoi(f)
		if convErr != nil {
			return Params{}, malformedf("header value %q is not an integer", f)
		}

		values[i] = v
	}

	return Params{
		PageCount:  values[0],
		FrameCount: values[1],
		WindowSize: values[2],
		Length:     values[3],
	}, nil
}

// parseRefs fills refs and returns how many references were found. Reading
// stops one past len(refs) so an overlong string is still detected.
func parseRefs(br *bufio.Reader, refs ReferenceString) (int, error) {
	scanner := bufio.NewScanner(br)
	scanner.Split(bufio.ScanWords)

	count := 0
	for scanner.Scan() {
		if count == len(refs) {
			return count + 1, nil
		}

		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return count, malformedf(
				"page reference %q at position %d is not an integer",
				scanner.Text(), count)
		}

		refs[count] = v
		count++
	}

	err := scanner.Err()
	if err != nil {
		return count, unavailable(err)
	}

	return count, nil
}

func countString(count, length int) string {
	if count > length {
		return "more than " + strconv.Itoa(length)
	}

	return strconv.Itoa(count)
}
