package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Percent always renders with a fractional part so integral readings come
// out as 100.0 rather than 100.
type Percent float64

func (p Percent) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(p), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return []byte(s), nil
}

// writeReading prints the reading as {"val": <number>}, spaced like
// Python's json.dumps so existing consumers see identical bytes.
func writeReading(w io.Writer, val float64) error {
	b, err := json.Marshal(Percent(val))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "{\"val\": %s}\n", b)
	return err
}
