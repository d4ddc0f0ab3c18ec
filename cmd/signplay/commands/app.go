package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/unmute-ai/signplay/config"
	"github.com/unmute-ai/signplay/engine"
	"github.com/unmute-ai/signplay/engine/renderer"
	"github.com/unmute-ai/signplay/engine/skeleton"
	"github.com/unmute-ai/signplay/engine/window"
	"github.com/unmute-ai/signplay/landmarks"
	"github.com/unmute-ai/signplay/playback"
	"github.com/unmute-ai/signplay/translate"
)

// app wires the configured collaborators together for the playback commands.
type app struct {
	cfg       config.Config
	source    landmarks.Source
	cache     landmarks.Cache
	skeleton  skeleton.Skeleton
	scheduler playback.Scheduler
	engine    engine.Engine
}

// newApp builds the full engine stack from the loaded configuration.
// With --headless the renderer records frames without a GPU and no window is
// created.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if err := a.buildSource(); err != nil {
		return nil, err
	}

	a.skeleton = skeleton.NewSkeleton(
		skeleton.WithEarlyBlankSamples(cfg.Playback.EarlyBlankSamples),
		skeleton.WithBlankStreakLimit(cfg.Playback.BlankStreakLimit),
	)

	prefetcher := landmarks.NewPrefetcher(a.source)
	a.scheduler = playback.NewScheduler(a.skeleton, a.source,
		playback.WithDwell(time.Duration(cfg.Playback.DwellMs)*time.Millisecond),
		playback.WithInterItemPause(time.Duration(cfg.Playback.InterItemPauseMs)*time.Millisecond),
		playback.WithTextPause(time.Duration(cfg.Playback.TextPauseMs)*time.Millisecond),
		playback.WithLoopPause(time.Duration(cfg.Playback.LoopPauseMs)*time.Millisecond),
		playback.WithMinFps(cfg.Playback.MinFps),
		playback.WithPrefetcher(prefetcher),
	)

	engineOpts := []engine.EngineBuilderOption{engine.WithProfiling(profile)}
	var rend renderer.Renderer
	if headless {
		rend = renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
		rend.Resize(cfg.Window.Width, cfg.Window.Height)
		engineOpts = append(engineOpts, engine.WithRenderFrameLimit(60))
	} else {
		win := window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithWidth(cfg.Window.Width),
			window.WithHeight(cfg.Window.Height),
		)
		rend = renderer.NewRenderer(renderer.BackendTypeWGPU, win)
		engineOpts = append(engineOpts, engine.WithWindow(win))
	}

	a.engine = engine.NewEngine(a.skeleton, rend, a.scheduler, engineOpts...)
	return a, nil
}

// buildSource assembles the landmark source chain: S3 or HTTP upstream,
// optionally fronted by an on-disk cache.
func (a *app) buildSource() error {
	lm := a.cfg.Landmarks
	if lm.Bucket != "" {
		client := s3.New(s3.Options{
			Region:      lm.Region,
			Credentials: aws.AnonymousCredentials{},
		})
		a.source = landmarks.NewS3Source(client, lm.Bucket, landmarks.WithKeyPrefix(lm.Prefix))
	} else {
		a.source = landmarks.NewHTTPSource(lm.BaseURL)
	}

	if lm.CacheDir != "" {
		cache, err := landmarks.NewCache(lm.CacheDir)
		if err != nil {
			return fmt.Errorf("open landmark cache: %w", err)
		}
		a.cache = cache
		a.source = landmarks.NewCachedSource(a.source, cache)
	}
	return nil
}

// vocab loads the configured sign vocabulary.
func (a *app) vocab() (*translate.Vocab, error) {
	tc := a.cfg.Translate
	if tc.VocabPath == "" {
		return nil, fmt.Errorf("no vocab_path configured")
	}
	return translate.LoadVocab(tc.VocabPath, tc.AliasesPath)
}

// glosser builds the text-to-gloss translator over the vocabulary.
func (a *app) glosser(ctx context.Context, vocab *translate.Vocab) (translate.Glosser, error) {
	return translate.NewGlosser(ctx, vocab,
		translate.WithAPIKey(a.cfg.Translate.APIKey),
		translate.WithModel(a.cfg.Translate.Model),
	)
}

// run blocks in the engine loop until the window closes or the process is
// interrupted, then tears everything down.
func (a *app) run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		a.engine.Quit()
	}()

	a.engine.Run()
	a.close()
}

func (a *app) close() {
	a.engine.Dispose()
	if a.cache != nil {
		a.cache.Close()
	}
}
