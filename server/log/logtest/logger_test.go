package logtest

import (
	"sync"
	"testing"
)

func TestLoggerPrintf(t *testing.T) {
	printfTests := []struct {
		format string
		v      []any
		want   string
	}{
		{},
		{
			format: "table %s created",
			v:      []any{"t1"},
			want:   "table t1 created",
		},
		{
			format: "%s took %d tiles from factory %d",
			v:      []any{"selene", 3, 2},
			want:   "selene took 3 tiles from factory 2",
		},
	}
	for i, test := range printfTests {
		l := NewLogger()
		l.Printf(test.format, test.v...)
		if got := l.String(); test.want != got {
			t.Errorf("Test %v:\nwanted: %v\ngot:    %v", i, test.want, got)
		}
	}
}

func TestLoggerPrintfConcurrent(t *testing.T) {
	l := NewLogger()
	n := 10
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			l.Printf("a")
			wg.Done()
		}()
	}
	wg.Wait()
	if want, got := "aaaaaaaaaa", l.String(); want != got {
		t.Errorf("not equal:\nwanted: %v\ngot:    %v", want, got)
	}
}

func TestLoggerEmptyReset(t *testing.T) {
	l := NewLogger()
	if !l.Empty() {
		t.Errorf("wanted new Logger to be empty")
	}
	l.Printf("stuff")
	if l.Empty() {
		t.Errorf("wanted Logger to not be empty after Printf")
	}
	l.Reset()
	switch {
	case !l.Empty():
		t.Errorf("wanted Logger to be empty after reset")
	case l.String() != "":
		t.Errorf("wanted Logger string to be empty after reset, got %v", l.String())
	}
}

func TestDiscardLogger(t *testing.T) {
	DiscardLogger.Printf("ignored %v", 1)
}
