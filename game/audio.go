package game

import (
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/egodrive/config"
	"github.com/pthm-cable/egodrive/sound"
)

// audioPlayer starts the throttle and brake samples on cue entry. A missing
// sample or audio device leaves the player silent.
type audioPlayer struct {
	device  bool
	samples map[sound.Cue]rl.Sound
}

func newAudioPlayer(cfg config.SoundConfig) *audioPlayer {
	a := &audioPlayer{samples: make(map[sound.Cue]rl.Sound)}
	if !cfg.Enabled {
		return a
	}

	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		slog.Warn("audio device unavailable")
		return a
	}
	a.device = true

	for cue, path := range map[sound.Cue]string{
		sound.Throttle: cfg.ThrottlePath,
		sound.Brake:    cfg.BrakePath,
	} {
		if _, err := os.Stat(path); err != nil {
			slog.Warn("sound sample missing", "cue", cue.String(), "path", path)
			continue
		}
		s := rl.LoadSound(path)
		rl.SetSoundVolume(s, float32(cfg.Volume))
		a.samples[cue] = s
	}
	return a
}

// Observe restarts the sample for a newly entered cue. Entering Normal
// stops playback.
func (a *audioPlayer) Observe(cue sound.Cue, entered bool) {
	if !entered {
		return
	}
	for _, s := range a.samples {
		rl.StopSound(s)
	}
	if s, ok := a.samples[cue]; ok {
		rl.PlaySound(s)
	}
}

// Unload releases the samples and the device.
func (a *audioPlayer) Unload() {
	for _, s := range a.samples {
		rl.UnloadSound(s)
	}
	if a.device {
		rl.CloseAudioDevice()
	}
}
