// Package progtest runs a prog.Program with piped standard files for tests.
package progtest

import (
	"io"
	"os"
	"testing"

	"needle/internal/prog"
)

// Result is what a program run produced.
type Result struct {
	Exit           int
	Stdout, Stderr string
}

// Run runs p as the program "needle" with the given arguments. The program
// reads stdin from a pipe holding the given content.
func Run(t *testing.T, p prog.Program, stdin string, args ...string) Result {
	t.Helper()
	r0, w0 := pipe(t)
	r1, w1 := pipe(t)
	r2, w2 := pipe(t)

	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	stdout := readAll(r1)
	stderr := readAll(r2)

	exit := prog.Run([3]*os.File{r0, w1, w2}, append([]string{"needle"}, args...), p)
	w1.Close()
	w2.Close()
	r0.Close()
	return Result{exit, <-stdout, <-stderr}
}

func pipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	return r, w
}

func readAll(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		data, _ := io.ReadAll(r)
		r.Close()
		ch <- string(data)
	}()
	return ch
}
