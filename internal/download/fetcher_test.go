package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/event"
)

type scriptedEngine struct {
	errs  []error // one per call; nil entries succeed
	calls int
	urls  []string
}

func (e *scriptedEngine) Download(ctx context.Context, url, workDir string) error {
	e.calls++
	e.urls = append(e.urls, url)
	if e.calls <= len(e.errs) {
		return e.errs[e.calls-1]
	}
	return nil
}

func TestFetcher_RetriesUntilSuccess(t *testing.T) {
	boom := errors.New("boom")
	engine := &scriptedEngine{errs: []error{boom, boom, nil}}

	var c event.Collector
	f := NewFetcher(engine, FetcherConfig{Attempts: 5, Backoff: []time.Duration{0}}, c.Sink())

	if err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc", t.TempDir()); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if engine.calls != 3 {
		t.Errorf("engine called %d times, want 3", engine.calls)
	}
	if got := len(c.OfKind(event.KindDownloadFailed)); got != 2 {
		t.Errorf("got %d failure events, want 2", got)
	}
	if got := len(c.OfKind(event.KindDownloaded)); got != 1 {
		t.Errorf("got %d downloaded events, want 1", got)
	}
}

func TestFetcher_GivesUp(t *testing.T) {
	boom := errors.New("boom")
	engine := &scriptedEngine{errs: []error{boom, boom, boom}}
	f := NewFetcher(engine, FetcherConfig{Attempts: 3}, nil)

	err := f.Fetch(context.Background(), "u", t.TempDir())
	if !errors.Is(err, ErrDownloadFailed) {
		t.Errorf("expected ErrDownloadFailed, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected last engine error to be wrapped, got %v", err)
	}
	if engine.calls != 3 {
		t.Errorf("engine called %d times, want 3", engine.calls)
	}
}

func TestFetcher_SingleAttempt(t *testing.T) {
	boom := errors.New("boom")
	engine := &scriptedEngine{errs: []error{boom, nil}}
	f := NewFetcher(engine, FetcherConfig{
		Attempts:      5,
		Backoff:       []time.Duration{10 * time.Millisecond},
		SingleAttempt: true,
	}, nil)

	start := time.Now()
	err := f.Fetch(context.Background(), "u", t.TempDir())
	if !errors.Is(err, ErrDownloadFailed) {
		t.Errorf("expected ErrDownloadFailed, got %v", err)
	}
	if engine.calls != 1 {
		t.Errorf("engine called %d times, want 1", engine.calls)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("single attempt should still wait the first backoff")
	}
}

func TestFetcher_CanceledDuringBackoff(t *testing.T) {
	engine := &scriptedEngine{errs: []error{errors.New("boom")}}
	f := NewFetcher(engine, FetcherConfig{Attempts: 2, Backoff: []time.Duration{time.Hour}}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := f.Fetch(ctx, "u", t.TempDir())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error, got %v", err)
	}
	if engine.calls != 1 {
		t.Errorf("engine called %d times, want 1", engine.calls)
	}
}

func TestFetcher_BackoffAt(t *testing.T) {
	f := NewFetcher(nil, FetcherConfig{
		Attempts: 5,
		Backoff:  []time.Duration{5 * time.Second, 10 * time.Second},
	}, nil)

	tests := []struct {
		try  int
		want time.Duration
	}{
		{0, 5 * time.Second},
		{1, 10 * time.Second},
		{4, 10 * time.Second},
	}
	for _, tt := range tests {
		if got := f.backoffAt(tt.try); got != tt.want {
			t.Errorf("backoffAt(%d) = %v, want %v", tt.try, got, tt.want)
		}
	}

	empty := NewFetcher(nil, FetcherConfig{}, nil)
	if got := empty.backoffAt(3); got != 0 {
		t.Errorf("backoffAt with no schedule = %v, want 0", got)
	}
}

// fakeYtdlp writes a shell script that records its arguments, one per line.
func fakeYtdlp(t *testing.T) (exe, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args.txt")
	exe = filepath.Join(dir, "yt-dlp")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > '" + argsFile + "'\n"
	if err := os.WriteFile(exe, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return exe, argsFile
}

// flagValue returns the argument following the first of names found in args.
func flagValue(args []string, names ...string) (string, bool) {
	for i, a := range args {
		if slices.Contains(names, a) && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func TestYtdlpEngine_Arguments(t *testing.T) {
	exe, argsFile := fakeYtdlp(t)
	work := t.TempDir()
	url := "https://www.youtube.com/watch?v=abc"

	engine := &YtdlpEngine{Codec: "mp3", BitrateKbps: 192, Executable: exe}
	if err := engine.Download(context.Background(), url, work); err != nil {
		t.Fatalf("Download() error: %v", err)
	}

	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("yt-dlp was not run: %v", err)
	}
	args := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	tests := []struct {
		names []string
		want  string
	}{
		{[]string{"--format", "-f"}, "bestaudio/best"},
		{[]string{"--audio-format"}, "mp3"},
		{[]string{"--audio-quality"}, "192K"},
		{[]string{"--output", "-o"}, filepath.Join(work, "%(title)s.%(ext)s")},
	}
	for _, tt := range tests {
		got, ok := flagValue(args, tt.names...)
		if !ok || got != tt.want {
			t.Errorf("%s = %q (present %v), want %q", tt.names[0], got, ok, tt.want)
		}
	}

	if !slices.Contains(args, "--extract-audio") && !slices.Contains(args, "-x") {
		t.Errorf("audio extraction flag missing: %v", args)
	}
	if !slices.Contains(args, "--no-playlist") {
		t.Errorf("--no-playlist missing: %v", args)
	}
	if args[len(args)-1] != url {
		t.Errorf("last argument = %q, want the video URL", args[len(args)-1])
	}
}

func TestYtdlpEngine_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	exe := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\necho 'ERROR: Video unavailable' >&2\nexit 1\n"), 0755); err != nil {
		t.Fatal(err)
	}

	engine := &YtdlpEngine{Codec: "mp3", BitrateKbps: 192, Executable: exe}
	if err := engine.Download(context.Background(), "https://www.youtube.com/watch?v=gone", t.TempDir()); err == nil {
		t.Error("expected an error when yt-dlp exits non-zero")
	}
}
