// Package fetch downloads model assets file by file. Files within one asset
// are fetched strictly in manifest order to bound load on the model host and
// to keep progress monotonic. Each file streams to a .part sibling and is
// renamed into place once fully written, so a killed download never leaves a
// half-written file under its final name.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/voiceflow/voiceflowd/internal/domain"
	"github.com/voiceflow/voiceflowd/internal/infra/logger"
	"github.com/voiceflow/voiceflowd/internal/probe"
)

type Fetcher struct {
	prober *probe.Prober
	jobs   *Jobs
	log    *logger.Logger

	// No client timeout: a model file can legitimately take many minutes,
	// and a hung transfer is left to the user to cancel.
	client *http.Client
}

func New(prober *probe.Prober, jobs *Jobs, log *logger.Logger) *Fetcher {
	return &Fetcher{
		prober: prober,
		jobs:   jobs,
		log:    log,
		client: &http.Client{},
	}
}

// Jobs exposes the job table for status reads.
func (f *Fetcher) Jobs() *Jobs { return f.jobs }

// Acquire downloads every missing file of the asset, invoking onProgress
// with the overall fraction in [0,1] as files complete. At most one Acquire
// per family runs at a time; a concurrent call returns
// domain.ErrDownloadInFlight without queueing. Files already on disk are
// skipped, so a retry resumes at the first missing file. The first failing
// file aborts the attempt; completed files stay in place.
func (f *Fetcher) Acquire(ctx context.Context, asset domain.Asset, onProgress func(float64)) error {
	files := asset.FileList()

	job, err := f.jobs.begin(asset, len(files))
	if err != nil {
		return err
	}

	f.log.Info("Acquiring %s (%d files, job %s)", asset.ID, len(files), job.ID)

	err = f.fetchAll(ctx, asset, files, onProgress)
	f.jobs.finish(asset.Family, err)

	if err != nil {
		f.log.Error("Acquisition of %s failed: %v", asset.ID, err)
		return err
	}

	f.log.Info("Acquisition of %s complete", asset.ID)
	if onProgress != nil {
		onProgress(1)
	}
	return nil
}

func (f *Fetcher) fetchAll(ctx context.Context, asset domain.Asset, files []string, onProgress func(float64)) error {
	if err := os.MkdirAll(f.prober.AssetDir(asset), 0755); err != nil {
		return fmt.Errorf("create asset dir for %s: %w", asset.ID, err)
	}

	report := func() {
		if onProgress != nil {
			onProgress(f.jobs.Fraction(asset.Family))
		}
	}

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		if f.prober.FilePresent(asset, rel) {
			f.jobs.fileDone(asset.Family)
			report()
			continue
		}

		if err := f.fetchFile(ctx, asset, rel, report); err != nil {
			return fmt.Errorf("%s/%s: %w", asset.ID, rel, err)
		}

		f.jobs.fileDone(asset.Family)
		report()
	}

	return nil
}

// fetchFile streams one file to <dst>.part, then renames it into place.
// The rename replaces any stale partial left under the final name by an
// earlier, differently-shaped version of the asset.
func (f *Fetcher) fetchFile(ctx context.Context, asset domain.Asset, rel string, report func()) error {
	url := asset.RemoteBase + "/" + rel
	dst := f.prober.LocalPath(asset, rel)
	part := dst + ".part"

	// Manifest entries may sit in subdirectories of the asset dir.
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", dst, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Surface a plain context.Canceled so a user cancel is not
		// reported as a network fault.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	out, err := os.Create(part)
	if err != nil {
		return fmt.Errorf("create %s: %w", part, err)
	}

	counter := &progressReader{
		r:     resp.Body,
		total: resp.ContentLength,
		tick: func(frac float64) {
			f.jobs.byteProgress(asset.Family, frac)
			report()
		},
	}

	_, err = io.Copy(out, counter)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(part)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("write %s: %w", part, err)
	}

	if err := f.postWriteCheck(asset, part); err != nil {
		os.Remove(part)
		return err
	}

	if err := os.Rename(part, dst); err != nil {
		return fmt.Errorf("move %s into place: %w", part, err)
	}

	return nil
}

// postWriteCheck rejects transfers that ended short of the single-file size
// floor, which catches truncated GGUFs served by a misbehaving mirror.
func (f *Fetcher) postWriteCheck(asset domain.Asset, part string) error {
	info, err := os.Stat(part)
	if err != nil {
		return fmt.Errorf("stat %s: %w", part, err)
	}

	if !asset.Family.IsMultiFile() && info.Size() < f.prober.MinSingleFileBytes {
		return fmt.Errorf("download of %s truncated: %d bytes", asset.ID, info.Size())
	}

	return nil
}

// progressReader reports the byte fraction of one transfer as it is read.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	tick  func(frac float64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		if p.total > 0 && p.tick != nil {
			p.tick(float64(p.read) / float64(p.total))
		}
	}
	return n, err
}
