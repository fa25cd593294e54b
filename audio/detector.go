package audio

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/lixenwraith/glyphfall/parameter"
)

// candidate is a player command that accepts raw s16le stereo on stdin
type candidate struct {
	typ  BackendType
	name string
	args func(rate, latencyMs string) []string
}

var candidates = []candidate{
	{BackendPulse, "pacat", func(rate, lat string) []string {
		return []string{"--raw", "--format=s16le", "--rate=" + rate, "--channels=2", "--latency-msec=" + lat, "--playback"}
	}},
	{BackendPipeWire, "pw-cat", func(rate, lat string) []string {
		return []string{"--playback", "--format=s16", "--rate=" + rate, "--channels=2", "--latency=" + lat + "ms", "-"}
	}},
	{BackendALSA, "aplay", func(rate, _ string) []string {
		return []string{"-t", "raw", "-f", "S16_LE", "-r", rate, "-c", "2", "-q"}
	}},
	{BackendSoX, "play", func(rate, _ string) []string {
		return []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", rate, "-", "-d", "-q"}
	}},
	{BackendFFplay, "ffplay", func(rate, _ string) []string {
		return []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", rate,
			"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet"}
	}},
}

// DetectBackend searches for available audio backends
// Priority: pacat > pw-cat > aplay > play (sox) > ffplay > OSS
func DetectBackend(sampleRate int) (*BackendConfig, error) {
	rate := strconv.Itoa(sampleRate)
	latency := strconv.Itoa(int(parameter.AudioBufferDuration.Milliseconds()))

	for _, c := range candidates {
		if path, err := exec.LookPath(c.name); err == nil {
			return &BackendConfig{Type: c.typ, Name: c.name, Path: path, Args: c.args(rate, latency)}, nil
		}
	}

	// FreeBSD OSS (direct device write, no exec needed)
	if runtime.GOOS == "freebsd" {
		if _, err := os.Stat("/dev/dsp"); err == nil {
			return &BackendConfig{Type: BackendOSS, Name: "oss", Path: "/dev/dsp"}, nil
		}
	}

	return nil, ErrNoAudioBackend
}
