package ffmpeg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/keagan/clipforge/internal/logging"
)

// Executor runs ffmpeg and ffprobe with progress and log streaming
type Executor struct {
	logger      zerolog.Logger
	ffmpegPath  string
	ffprobePath string
	threads     int
}

// New resolves the ffmpeg and ffprobe binaries from PATH
func New(logger zerolog.Logger, threads int) (*Executor, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	ffprobePath, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, fmt.Errorf("ffprobe not found in PATH: %w", err)
	}

	return &Executor{
		logger:      logging.Component(logger, "ffmpeg"),
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		threads:     threads,
	}, nil
}

// Run executes one ffmpeg invocation. Progress records parsed from the
// `-progress` stream are delivered to opts.ProgressHandler; every raw
// output line goes to opts.LogHandler.
func (e *Executor) Run(ctx context.Context, opts RunOptions) error {
	if len(opts.Args) == 0 {
		return fmt.Errorf("no arguments provided")
	}

	args := []string{"-y", "-hide_banner", "-loglevel", "info"}
	if e.threads > 0 {
		args = append(args, "-threads", strconv.Itoa(e.threads))
	}
	args = append(args, "-progress", "pipe:2")
	args = append(args, opts.Args...)

	e.logger.Debug().Strs("args", args).Msg("executing ffmpeg")

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		// ffmpeg writes both its log and the -progress stream to stderr.
		e.streamOutput(stderr, opts.ProgressHandler, opts.LogHandler)
	}()
	go func() {
		defer wg.Done()
		e.streamOutput(stdout, nil, opts.LogHandler)
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg execution failed: %w", err)
	}

	return nil
}

// streamOutput scans ffmpeg output line by line. The -progress stream is
// key=value pairs terminated by a "progress=continue|end" line; each
// completed block is delivered as one Progress record.
func (e *Executor) streamOutput(r io.Reader, progressHandler ProgressFunc, logHandler func(string)) {
	scanner := bufio.NewScanner(r)
	current := &Progress{}

	for scanner.Scan() {
		line := scanner.Text()

		if logHandler != nil {
			logHandler(line)
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "frame":
			current.Frame, _ = strconv.Atoi(value)
		case "fps":
			current.FPS, _ = strconv.ParseFloat(value, 64)
		case "out_time":
			current.Time = value
		case "speed":
			current.Speed = value
		case "progress":
			if progressHandler != nil && current.Frame > 0 {
				progressHandler(current)
			}
			current = &Progress{}
		}
	}
}
