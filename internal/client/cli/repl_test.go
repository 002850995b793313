package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeExec) Create(ctx context.Context) error { f.record("create", nil); return nil }
func (f *fakeExec) List(ctx context.Context, args []string) error {
	f.record("list", args)
	return nil
}
func (f *fakeExec) Lock(ctx context.Context, args []string) error {
	f.record("lock", args)
	return nil
}
func (f *fakeExec) Unlock(ctx context.Context, args []string) error {
	f.record("unlock", args)
	return nil
}
func (f *fakeExec) Health(ctx context.Context) error { f.record("health", nil); return nil }

func silence(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, x := range a {
			if s, ok := x.(string); ok {
				parts = append(parts, s)
			}
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	printed := silence(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"create",
		"list 5 10",
		"",
		"lock 6f1c1c57-0a7e-4a39-9c1c-3c1a2b1b0f01",
		"unlock 6f1c1c57-0a7e-4a39-9c1c-3c1a2b1b0f01",
		"health",
		"foobar",
		"exit",
		"lock never-reached",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	want := []string{"create", "list", "lock", "unlock", "health"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if got := strings.Join(exec.args[1], " "); got != "5 10" {
		t.Fatalf("list args = %q", got)
	}
	if got := exec.args[2]; len(got) != 1 || got[0] != "6f1c1c57-0a7e-4a39-9c1c-3c1a2b1b0f01" {
		t.Fatalf("lock args = %v", got)
	}

	joined := strings.Join(*printed, "\n")
	if !strings.Contains(joined, "Unknown command: foobar") {
		t.Fatalf("unknown command not reported: %s", joined)
	}
	if !strings.Contains(joined, "Bye!") {
		t.Fatalf("no goodbye: %s", joined)
	}
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("l")))

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	silence(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("health\n")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
