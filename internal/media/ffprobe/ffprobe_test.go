package ffprobe

import "testing"

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "audio"},
			{CodecType: "video", Height: 1080},
			{CodecType: "video", Height: 480},
		},
	}
	if result.VideoStreamCount() != 2 {
		t.Fatalf("expected 2 video streams, got %d", result.VideoStreamCount())
	}
	if result.FirstVideoHeight() != 1080 {
		t.Fatalf("unexpected first video height: %d", result.FirstVideoHeight())
	}
}

func TestFirstVideoHeightWithoutVideo(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "audio"}}}
	if result.FirstVideoHeight() != 0 {
		t.Fatalf("expected 0 height, got %d", result.FirstVideoHeight())
	}
}
