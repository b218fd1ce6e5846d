package log

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

var (
	_ Logger = (*logrus.Logger)(nil)
	_ Logger = (*logrus.Entry)(nil)
)

func TestNewLogrus(t *testing.T) {
	newLogrusTests := []struct {
		Config
		nilWriter bool
		wantOk    bool
		wantLevel logrus.Level
	}{
		{
			nilWriter: true,
		},
		{
			Config: Config{
				Level: "loud",
			},
		},
		{
			wantOk:    true,
			wantLevel: logrus.InfoLevel,
		},
		{
			Config: Config{
				Level: "debug",
				JSON:  true,
			},
			wantOk:    true,
			wantLevel: logrus.DebugLevel,
		},
	}
	for i, test := range newLogrusTests {
		var w io.Writer = new(bytes.Buffer)
		if test.nilWriter {
			w = nil
		}
		l, err := test.Config.NewLogrus(w)
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case test.wantLevel != l.GetLevel():
			t.Errorf("Test %v: levels not equal: wanted %v, got %v", i, test.wantLevel, l.GetLevel())
		}
	}
}

func TestWithTable(t *testing.T) {
	var buf bytes.Buffer
	l, err := Config{JSON: true}.NewLogrus(&buf)
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	WithTable(l, "t1").Printf("moved %v", 3)
	got := buf.String()
	for _, want := range []string{`"table":"t1"`, `"msg":"moved 3"`} {
		if !strings.Contains(got, want) {
			t.Errorf("wanted log to contain %v, got %v", want, got)
		}
	}
}

type plainLogger struct{}

func (plainLogger) Printf(format string, v ...any) {}

func TestWithTablePlain(t *testing.T) {
	var l Logger = plainLogger{}
	if got := WithTable(l, "t1"); got != l {
		t.Errorf("wanted plain logger to be returned unchanged, got %v", got)
	}
}
