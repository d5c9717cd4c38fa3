package speech

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dokkaebi/sajucut/internal/logger"
)

// Speaker narrates fortune text with toggle semantics: starting narration
// while one is playing stops it instead of layering a second voice.
type Speaker struct {
	engine Engine
	player Player
	params Params

	// OnStateChange is invoked on narration start and stop. It runs on the
	// narration goroutine, so UI callers must marshal to their own thread.
	OnStateChange func(speaking bool)
	// OnError receives synthesis/playback failures. Cancellation is not an
	// error.
	OnError func(err error)

	mu      sync.Mutex
	cancel  context.CancelFunc
	runID   uint64
	voice   Voice
	voiceOK bool
	picked  bool
}

func NewSpeaker(engine Engine, player Player, params Params) *Speaker {
	return &Speaker{
		engine: engine,
		player: player,
		params: params.withDefaults(),
	}
}

func (s *Speaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Toggle starts narrating text, or stops the current narration if one is
// playing. It returns immediately; playback happens on its own goroutine.
func (s *Speaker) Toggle(text string) {
	s.mu.Lock()
	if s.cancel != nil {
		cancel := s.cancel
		s.cancel = nil
		s.mu.Unlock()
		cancel()
		return
	}

	voice, ok := s.pickVoiceLocked()
	if !ok {
		s.mu.Unlock()
		s.reportError(errors.New("no narration voice is available"))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.runID++
	id := s.runID
	s.mu.Unlock()

	go s.run(ctx, cancel, id, text, voice)
}

// Stop cancels the current narration, if any.
func (s *Speaker) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *Speaker) run(ctx context.Context, cancel context.CancelFunc, id uint64, text string, voice Voice) {
	s.notify(true)
	defer func() {
		// A stopped narration can linger while its player shuts down. Only
		// clear the slot if it still belongs to this run, or a newer
		// narration started in the meantime would be untracked.
		s.mu.Lock()
		if s.runID == id {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
		s.notify(false)
	}()

	path, err := s.engine.Synthesize(text, voice, s.params)
	if err != nil {
		s.reportError(fmt.Errorf("narration synthesis failed: %w", err))
		return
	}
	if ctx.Err() != nil {
		return
	}
	if err := s.player.Play(ctx, path); err != nil && !errors.Is(err, context.Canceled) {
		s.reportError(err)
	}
}

// pickVoiceLocked resolves the narration voice once and caches the outcome,
// including a negative one.
func (s *Speaker) pickVoiceLocked() (Voice, bool) {
	if !s.picked {
		s.voice, s.voiceOK = SelectKoreanVoice(s.engine.Voices())
		s.picked = true
		if s.voiceOK {
			logger.Debug("Narration voice selected", "voice", s.voice.Name, "language", s.voice.Language)
		}
	}
	return s.voice, s.voiceOK
}

func (s *Speaker) notify(speaking bool) {
	if s.OnStateChange != nil {
		s.OnStateChange(speaking)
	}
}

func (s *Speaker) reportError(err error) {
	logger.Warn("Narration failed", "error", err)
	if s.OnError != nil {
		s.OnError(err)
	}
}
