package video

import (
	"testing"
)

func TestParseProbe(t *testing.T) {
	out := []byte(`{
	  "streams": [
	    {"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080},
	    {"codec_type": "audio", "codec_name": "aac"}
	  ],
	  "format": {"duration": "12.480000", "bit_rate": "4521000"}
	}`)

	info, err := parseProbe(out)
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dims = %dx%d; want 1920x1080", info.Width, info.Height)
	}
	if info.Codec != "h264" {
		t.Errorf("codec = %q; want h264", info.Codec)
	}
	if !info.HasAudio {
		t.Error("HasAudio = false; want true")
	}
	// 12.48s rounds to 12
	if info.DurationSeconds != 12 {
		t.Errorf("duration = %d; want 12", info.DurationSeconds)
	}
	if info.BitrateKbps != 4521 {
		t.Errorf("bitrate = %d; want 4521", info.BitrateKbps)
	}
}

func TestParseProbe_FirstVideoStreamWins(t *testing.T) {
	out := []byte(`{
	  "streams": [
	    {"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720},
	    {"codec_type": "video", "codec_name": "mjpeg", "width": 300, "height": 300}
	  ],
	  "format": {"duration": "3.0", "bit_rate": "900000"}
	}`)

	info, err := parseProbe(out)
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if info.Width != 1280 || info.Codec != "h264" {
		t.Errorf("got %dx%d %s; want the first video stream", info.Width, info.Height, info.Codec)
	}
	if info.HasAudio {
		t.Error("HasAudio = true; want false")
	}
}

func TestParseProbe_NoVideoStream(t *testing.T) {
	out := []byte(`{"streams": [{"codec_type": "audio", "codec_name": "mp3"}], "format": {"duration": "3.0"}}`)
	if _, err := parseProbe(out); err == nil {
		t.Error("expected error when no video stream is present")
	}

	if _, err := parseProbe([]byte("{ not json")); err == nil {
		t.Error("expected error on malformed JSON")
	}
}
