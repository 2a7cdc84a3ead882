// Copyright 2025 AdScope, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file implements frame acquisition for video inputs. Decoding is
// delegated to ffmpeg, which writes the video as an MJPEG stream to stdout;
// a bufio.Scanner with a JPEG start/end-of-image split function turns that
// stream into one opaque frame buffer at a time. The source holds at most
// one frame in memory and never rewinds.
package media

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/h2non/filetype"
)

// JPEG stream markers used by the frame splitter.
var (
	jpegSOI = []byte{0xFF, 0xD8} // Start of Image
	jpegEOI = []byte{0xFF, 0xD9} // End of Image
)

const (
	frameScannerInitialBuffer = 1 << 20 // 1 MiB
	frameScannerMaxBuffer     = 64 << 20
)

// FrameSource yields decoded frames in stream order. Next returns false when
// the stream is exhausted or broken; Err distinguishes the two. Close must be
// called on every exit path to reap the decoder process.
type FrameSource interface {
	Next() (Frame, bool)
	Err() error
	Close() error
}

// Frame is one decoded frame: an opaque pixel buffer the framework passes
// through to the detectors without interpretation.
type Frame = []byte

// FrameOpener opens a FrameSource for a video path. The ffmpeg-backed
// implementation lives here; tests substitute in-memory sources.
type FrameOpener interface {
	OpenFrames(ctx context.Context, path string) (FrameSource, error)
}

// FFmpegFrameOpener decodes video through an external ffmpeg process.
type FFmpegFrameOpener struct {
	ffmpegPath string
}

// NewFFmpegFrameOpener returns a FrameOpener using the given ffmpeg binary,
// falling back to "ffmpeg" on the PATH when empty.
func NewFFmpegFrameOpener(ffmpegPath string) *FFmpegFrameOpener {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &FFmpegFrameOpener{ffmpegPath: ffmpegPath}
}

// OpenFrames starts the decoder for path and returns a source over its
// frames. A file ffmpeg cannot open surfaces as an error from the first Next
// via Err; callers treat that as "no result".
func (o *FFmpegFrameOpener) OpenFrames(ctx context.Context, path string) (FrameSource, error) {
	staged, cleanup, err := StageInput(path)
	if err != nil {
		return nil, err
	}

	// -vcodec mjpeg gives us JPEG frames the splitter can delimit.
	cmd := exec.CommandContext(ctx, o.ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-i", staged,
		"-f", "image2pipe", "-vcodec", "mjpeg", "-")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to create ffmpeg stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, frameScannerInitialBuffer), frameScannerMaxBuffer)
	scanner.Split(SplitJPEG)

	return &ffmpegFrameSource{
		cmd:     cmd,
		stdout:  stdout,
		stderr:  &stderr,
		scanner: scanner,
		cleanup: cleanup,
	}, nil
}

type ffmpegFrameSource struct {
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	stderr  *bytes.Buffer
	scanner *bufio.Scanner
	cleanup func()
	err     error
}

// Next yields the next decoded frame. The returned buffer is copied out of
// the scanner so the caller may retain it across calls.
func (s *ffmpegFrameSource) Next() (Frame, bool) {
	if !s.scanner.Scan() {
		s.err = s.scanner.Err()
		return nil, false
	}
	frame := make(Frame, len(s.scanner.Bytes()))
	copy(frame, s.scanner.Bytes())
	return frame, true
}

// Err returns the first error hit while scanning the stream, if any.
func (s *ffmpegFrameSource) Err() error {
	return s.err
}

// Close drains the pipe, reaps the decoder process, and removes any staged
// input file.
func (s *ffmpegFrameSource) Close() error {
	_, _ = io.Copy(io.Discard, s.stdout)
	_ = s.stdout.Close()
	err := s.cmd.Wait()
	s.cleanup()
	if err != nil && s.stderr.Len() > 0 {
		return fmt.Errorf("ffmpeg: %s: %w", bytes.TrimSpace(s.stderr.Bytes()), err)
	}
	return err
}

// SplitJPEG is the bufio.SplitFunc that extracts whole JPEG frames from an
// MJPEG byte stream by locating the SOI/EOI marker pair.
func SplitJPEG(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	start := bytes.Index(data, jpegSOI)
	if start == -1 {
		return 0, nil, nil
	}
	end := bytes.Index(data[start:], jpegEOI)
	if end == -1 {
		return 0, nil, nil
	}
	return start + end + 2, data[start : start+end+2], nil
}

// StageInput prepares a file for ffmpeg. ffmpeg keys container detection off
// the extension, so an input without a recognized suffix is copied to a temp
// file whose extension comes from content sniffing. The returned cleanup is
// a no-op when no staging was needed.
func StageInput(path string) (staged string, cleanup func(), err error) {
	if filepath.Ext(path) != "" {
		return path, func() {}, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("could not read input for staging: %w", err)
	}

	kind, err := filetype.Match(buf)
	if err != nil || kind == filetype.Unknown {
		// Hand the file to ffmpeg as-is and let it probe.
		return path, func() {}, nil
	}

	tempFile, err := os.CreateTemp("", "adscope-input-*."+kind.Extension)
	if err != nil {
		return "", nil, err
	}
	if _, err := tempFile.Write(buf); err != nil {
		tempFile.Close()
		os.Remove(tempFile.Name())
		return "", nil, err
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempFile.Name())
		return "", nil, err
	}
	name := tempFile.Name()
	return name, func() { os.Remove(name) }, nil
}
