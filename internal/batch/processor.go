// Package batch renders many views of one panorama with a worker pool.
package batch

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"pano-viewer/internal/camera"
	"pano-viewer/internal/postprocess"
	"pano-viewer/internal/projector"
	"pano-viewer/internal/raster"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Env         projector.Environment
	Projector   *projector.Projector
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Format      string // "webp" or "png"
	Workers     int
}

// Job is one view to render.
type Job struct {
	Name string
	View camera.View
}

// Result holds the outcome of rendering one job.
type Result struct {
	Job
	Path    string
	Success bool
	Error   string
}

// Sweep returns n views evenly spaced around the horizon circle at the given
// pitch, roll and field of view, starting at heading 0.
func Sweep(n int, pitch, roll, fov float64) []Job {
	if n <= 0 {
		return nil
	}
	jobs := make([]Job, n)
	step := 360.0 / float64(n)
	for i := range jobs {
		jobs[i] = Job{
			Name: fmt.Sprintf("view_%03d", i),
			View: camera.View{Heading: float64(i) * step, Pitch: pitch, Roll: roll, FieldOfView: fov},
		}
	}
	return jobs
}

// Run renders all jobs using a worker pool. Cancelling ctx stops handing out
// work; jobs never started are reported as failed.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	for i, j := range jobs {
		results[i] = Result{Job: j, Error: "not rendered"}
	}
	if cfg.Projector == nil {
		cfg.Projector = projector.New()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					slog.Info("progress", "done", p, "total", total, "views_per_sec", float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = renderJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
send:
	for i := range jobs {
		select {
		case <-ctx.Done():
			break send
		case jobChan <- i:
		}
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func renderJob(cfg Config, job Job) Result {
	fail := func(err error) Result {
		return Result{Job: job, Error: err.Error()}
	}

	w, h := postprocess.Supersample(cfg.Width, cfg.Height, cfg.Supersample)
	fb := raster.NewFrameBuffer(w, h)
	if !cfg.Projector.Render(job.View, cfg.Env, fb) {
		return fail(fmt.Errorf("nothing to render for %s", job.Name))
	}
	fb = postprocess.Downsample(fb, cfg.Width, cfg.Height)

	ext := "webp"
	if cfg.Format == "png" {
		ext = "png"
	}
	outPath := filepath.Join(cfg.OutputDir, job.Name+"."+ext)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fail(err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fail(err)
	}
	defer f.Close()

	if ext == "png" {
		err = png.Encode(f, fb.Image())
	} else {
		err = nativewebp.Encode(f, fb.Image(), nil)
	}
	if err != nil {
		return fail(fmt.Errorf("%s encode: %w", ext, err))
	}

	return Result{Job: job, Path: outPath, Success: true}
}
