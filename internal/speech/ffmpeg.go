package speech

import (
	"context"
	"time"
)

// FFmpeg transcodes audio with the ffmpeg program.
type FFmpeg struct {
	Binary      string
	GracePeriod time.Duration
}

func NewFFmpeg(binary string) *FFmpeg {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{Binary: binary, GracePeriod: DefaultGracePeriod}
}

// Transcode overwrites dst; the codec follows dst's extension.
func (f *FFmpeg) Transcode(ctx context.Context, src, dst string) error {
	cmd := command(ctx, f.GracePeriod, f.Binary, "-y", "-loglevel", "error", "-i", src, dst)
	return run(ctx, cmd)
}
