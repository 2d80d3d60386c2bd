package engine

import (
	"context"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/yhkl-dev/EaseCLI/cache"
	"github.com/yhkl-dev/EaseCLI/domain"
	"github.com/yhkl-dev/EaseCLI/lyric"
)

// startPlayback resolves, caches and plays track. On error the sink and the
// playback fields are left as they were: the file is checked before the
// playing sink is stopped.
func (e *Engine) startPlayback(ctx context.Context, track domain.Track) error {
	audio, err := e.catalog.ResolveURL(ctx, []int64{track.ID})
	if err != nil {
		return err
	}
	entry, ok := lo.Find(audio, func(a domain.TrackAudio) bool { return a.URL != "" })
	if !ok {
		return errors.Wrapf(domain.ErrUnavailableTrack, "%s has no playable url", track.Name)
	}

	filename := cache.FileName(track.Name, track.ID, entry.URL)
	path, err := e.media.Fetch(ctx, entry.URL, filename)
	if err != nil {
		return err
	}

	if err := e.sink.CanPlay(path); err != nil {
		return errors.Wrapf(domain.ErrUnavailableTrack, "%s: %v", filename, err)
	}

	idx := e.fetchLyric(ctx, track)

	if !e.sink.IsEmpty() {
		e.sink.Stop()
		fresh, err := e.newSink()
		if err != nil {
			return errors.Wrap(err, "open audio output")
		}
		e.sink = fresh
	}

	e.sink.SetVolume(e.volume())
	if err := e.sink.Append(path); err != nil {
		return errors.Wrapf(domain.ErrUnavailableTrack, "%s: %v", filename, err)
	}
	e.sink.Play()

	e.paused = false
	e.seekMS = 0
	e.lyric = idx
	e.status = ""

	e.log.WithFields(logrus.Fields{
		"track_id": track.ID,
		"name":     track.Name,
		"path":     path,
		"bitrate":  entry.Bitrate,
	}).Info("playback started")
	return nil
}

// fetchLyric never fails: a missing or unreadable lyric is an empty index
func (e *Engine) fetchLyric(ctx context.Context, track domain.Track) lyric.Index {
	text, err := e.catalog.FetchLyric(ctx, track.ID)
	if err != nil {
		e.log.WithError(err).WithField("track_id", track.ID).Debug("no lyric")
		return nil
	}
	return lyric.Parse(text)
}

func (e *Engine) tick(ctx context.Context) {
	e.systemTick++
	if e.paused {
		return
	}
	if e.sink.IsEmpty() {
		e.skip(ctx, 1)
		return
	}
	e.seekMS += e.tickRate
}
