package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"

	"github.com/linkhive/media-pipeline-go/internal/port"
)

// FFmpegTranscoder shells out to ffmpeg/ffprobe. Every invocation is bound
// to the caller's context so a job timeout kills the child process.
type FFmpegTranscoder struct {
	ffmpegPath  string
	ffprobePath string
}

// compile-time check: *FFmpegTranscoder must satisfy port.VideoTranscoder
var _ port.VideoTranscoder = (*FFmpegTranscoder)(nil)

func NewFFmpegTranscoder() *FFmpegTranscoder {
	log.Println("initialising ffmpeg transcoder...")
	return &FFmpegTranscoder{ffmpegPath: "ffmpeg", ffprobePath: "ffprobe"}
}

// ffprobe JSON output, reduced to the fields the pipeline reads.
type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
		BitRate  string `json:"bit_rate"`
	} `json:"format"`
}

func (f *FFmpegTranscoder) Probe(ctx context.Context, srcPath string) (port.VideoInfo, error) {
	cmd := exec.CommandContext(ctx, f.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		srcPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return port.VideoInfo{}, fmt.Errorf("video: ffprobe failed: %w: %s", err, exitDetail(err))
	}
	return parseProbe(out)
}

func parseProbe(out []byte) (port.VideoInfo, error) {
	var probed probeOutput
	if err := json.Unmarshal(out, &probed); err != nil {
		return port.VideoInfo{}, fmt.Errorf("video: could not parse ffprobe output: %w", err)
	}

	var info port.VideoInfo
	for _, s := range probed.Streams {
		switch s.CodecType {
		case "video":
			if info.Width == 0 {
				info.Width = s.Width
				info.Height = s.Height
				info.Codec = s.CodecName
			}
		case "audio":
			info.HasAudio = true
		}
	}
	if info.Width == 0 || info.Height == 0 {
		return port.VideoInfo{}, errors.New("video: no video stream found")
	}

	if d, err := strconv.ParseFloat(probed.Format.Duration, 64); err == nil {
		info.DurationSeconds = int(d + 0.5)
	}
	if br, err := strconv.Atoi(probed.Format.BitRate); err == nil {
		info.BitrateKbps = br / 1000
	}
	return info, nil
}

func (f *FFmpegTranscoder) ExtractPosterFrame(ctx context.Context, srcPath string, maxW, maxH int) ([]byte, error) {
	// decrease=1 keeps small sources untouched instead of upscaling them
	scale := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", maxW, maxH)

	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-v", "error",
		"-ss", "0",
		"-i", srcPath,
		"-frames:v", "1",
		"-vf", scale,
		"-f", "image2pipe",
		"-c:v", "png",
		"pipe:1",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("video: poster extraction failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("video: poster extraction produced no frame")
	}
	return stdout.Bytes(), nil
}

func (f *FFmpegTranscoder) Transcode(ctx context.Context, srcPath, dstPath string, spec port.RenditionSpec) error {
	// decrease=1 plus the even-dimension floor H.264 requires
	scale := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease:force_divisible_by=2", spec.Width, spec.Height)

	args := []string{
		"-v", "error",
		"-y",
		"-i", srcPath,
		"-vf", scale,
		"-c:v", "libx264",
		"-preset", spec.Preset,
		"-crf", strconv.Itoa(spec.CRF),
		"-maxrate", fmt.Sprintf("%dk", spec.VideoBitrateKbps),
		"-bufsize", fmt.Sprintf("%dk", 2*spec.VideoBitrateKbps),
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		dstPath,
	}
	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("video: transcode to %dx%d failed: %w: %s", spec.Width, spec.Height, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func exitDetail(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return ""
}
