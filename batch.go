package cloudzcrypt

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/absfs/absfs"
)

// Orchestrator walks a source file set, maps destination paths, invokes the
// engine per file, and aggregates outcomes into a single Result. One
// invocation owns all of its counters, its error list, and its obfuscation
// cache; no state is shared across batches.
type Orchestrator struct {
	fs       absfs.FileSystem
	engine   *Engine
	manifest *ManifestService
	logger   *slog.Logger
	progress ProgressFunc
	space    SpaceChecker
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithProgress sets the progress sink
func WithProgress(fn ProgressFunc) Option {
	return func(o *Orchestrator) { o.progress = fn }
}

// WithSpaceChecker sets the free-space capability used by the preflight check
func WithSpaceChecker(space SpaceChecker) Option {
	return func(o *Orchestrator) { o.space = space }
}

// NewOrchestrator creates an orchestrator over the given filesystem
func NewOrchestrator(base absfs.FileSystem, opts ...Option) *Orchestrator {
	o := &Orchestrator{fs: base}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	o.engine = NewEngine(base, o.space)
	o.manifest = NewManifestService(o.engine)
	return o
}

// Engine returns the underlying encryption engine
func (o *Orchestrator) Engine() *Engine {
	return o.engine
}

// Execute runs the request to completion (or until a fatal error or
// cancellation) and returns the aggregated result. Files are processed
// sequentially in enumeration order.
func (o *Orchestrator) Execute(ctx context.Context, req *Request) *Result {
	run := &batchRun{o: o, req: req, start: time.Now()}

	if err := req.Validate(); err != nil {
		run.record(err)
		return run.result()
	}

	info, err := o.fs.Stat(req.SourcePath)
	if err != nil {
		run.record(NewCryptError(req.Operation.String(), req.SourcePath, classifyFSError(err), err))
		return run.result()
	}

	if info.IsDir() {
		run.executeDirectory(ctx)
	} else {
		run.executeSingle(ctx, info.Size())
	}
	return run.result()
}

// batchRun is the single-owner mutable state of one batch invocation
type batchRun struct {
	o     *Orchestrator
	req   *Request
	start time.Time

	processedFiles int
	totalFiles     int
	processedBytes int64
	totalBytes     int64
	errs           []string
}

func (r *batchRun) record(err error) {
	r.errs = append(r.errs, err.Error())
}

// emit delivers a progress snapshot. A panicking sink is swallowed so
// progress delivery can never fail the batch.
func (r *batchRun) emit() {
	if r.o.progress == nil {
		return
	}
	defer func() { _ = recover() }()
	r.o.progress(Status{
		ProcessedFiles: r.processedFiles,
		TotalFiles:     r.totalFiles,
		ProcessedBytes: r.processedBytes,
		TotalBytes:     r.totalBytes,
		Elapsed:        time.Since(r.start),
	})
}

func (r *batchRun) result() *Result {
	res := &Result{
		Status: Status{
			ProcessedFiles: r.processedFiles,
			TotalFiles:     r.totalFiles,
			ProcessedBytes: r.processedBytes,
			TotalBytes:     r.totalBytes,
			Elapsed:        time.Since(r.start),
		},
		Errors: r.errs,
	}
	res.Success = len(r.errs) == 0 && r.processedFiles == r.totalFiles
	return res
}

// processFile runs the engine for one file and returns the engine error
func (r *batchRun) processFile(ctx context.Context, srcPath, dstPath string) error {
	if r.req.Operation == OpEncrypt {
		return r.o.engine.EncryptFile(ctx, srcPath, dstPath, r.req.Password, r.req.Algorithm, r.req.KDF)
	}
	return r.o.engine.DecryptFile(ctx, srcPath, dstPath, r.req.Password, r.req.Algorithm, r.req.KDF)
}

func (r *batchRun) executeSingle(ctx context.Context, size int64) {
	r.totalFiles = 1
	r.totalBytes = size
	r.emit()

	if err := ctx.Err(); err != nil {
		r.errs = append(r.errs, "operation canceled")
		return
	}

	if err := r.processFile(ctx, r.req.SourcePath, r.req.DestinationPath); err != nil {
		if isCancellation(err) {
			r.errs = append(r.errs, "operation canceled")
			return
		}
		r.record(err)
		r.o.logger.Warn("file processing failed",
			"op", r.req.Operation.String(), "path", r.req.SourcePath, "error", err)
		return
	}

	r.processedFiles = 1
	r.processedBytes = size
	r.emit()
}

func (r *batchRun) executeDirectory(ctx context.Context) {
	sep := string(r.o.fs.Separator())

	entries, err := walkFiles(r.o.fs, r.req.SourcePath)
	if err != nil {
		r.record(NewCryptError(r.req.Operation.String(), r.req.SourcePath, classifyFSError(err), err))
		return
	}

	// A decrypt pass must never treat the manifest as payload.
	if r.req.Operation == OpDecrypt {
		kept := entries[:0]
		for _, e := range entries {
			if strings.EqualFold(e.relPath, ManifestFileName) {
				continue
			}
			kept = append(kept, e)
		}
		entries = kept
	}

	r.totalFiles = len(entries)
	for _, e := range entries {
		r.totalBytes += e.size
	}

	var nameMap map[string]string
	if r.req.Operation == OpDecrypt {
		nameMap = r.o.manifest.Load(ctx, r.req.SourcePath, r.req)
		if nameMap == nil {
			r.o.logger.Info("no manifest found, recovering names by suffix stripping",
				"source", r.req.SourcePath)
		}
	}

	obfuscator := NewNameObfuscator(r.req.Obfuscation)
	cache := segmentCache{}
	var manifestEntries []ManifestEntry

	r.emit()

	aborted := false
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			r.errs = append(r.errs, "operation canceled")
			aborted = true
			break
		}

		destRel := r.mapDestinationPath(entry, obfuscator, cache, nameMap, sep)
		srcPath := joinPath(sep, r.req.SourcePath, entry.relPath)
		dstPath := joinPath(sep, r.req.DestinationPath, destRel)

		err := r.processFile(ctx, srcPath, dstPath)
		if err == nil {
			r.processedFiles++
			r.processedBytes += entry.size
			if r.req.Operation == OpEncrypt {
				// Only files that actually landed in the vault are recorded.
				manifestEntries = append(manifestEntries, ManifestEntry{
					OriginalRelativePath:   entry.relPath,
					ObfuscatedRelativePath: destRel,
				})
			}
			r.o.logger.Debug("file processed", "op", r.req.Operation.String(), "path", entry.relPath)
			r.emit()
			continue
		}

		if isCancellation(err) {
			r.errs = append(r.errs, "operation canceled")
			aborted = true
			break
		}

		r.record(err)
		if IsFatal(err) {
			r.o.logger.Error("fatal error, aborting batch", "path", entry.relPath, "error", err)
			r.emit()
			aborted = true
			break
		}
		r.o.logger.Warn("file skipped", "path", entry.relPath, "error", err)
		r.emit()
	}

	if r.req.Operation == OpEncrypt && !aborted && len(manifestEntries) > 0 {
		if err := r.o.manifest.Save(ctx, manifestEntries, r.req.DestinationPath, r.req); err != nil {
			r.record(err)
			r.o.logger.Warn("failed to write manifest", "error", err)
		}
	}
}

// mapDestinationPath computes the destination path, relative to the
// destination root, for one enumerated file.
//
// Encrypting builds the path segment by segment through the obfuscation
// strategy and appends the engine's file extension. Decrypting prefers the
// manifest's original path and falls back to stripping the extension from
// the final segment.
func (r *batchRun) mapDestinationPath(entry walkEntry, obfuscator NameObfuscator, cache segmentCache, nameMap map[string]string, sep string) string {
	if r.req.Operation == OpDecrypt {
		if orig, ok := nameMap[strings.ToLower(entry.relPath)]; ok {
			return orig
		}
		if strings.HasSuffix(strings.ToLower(entry.relPath), FileExtension) {
			return entry.relPath[:len(entry.relPath)-len(FileExtension)]
		}
		return entry.relPath
	}

	segments := splitSegments(entry.relPath, sep)
	mapped := make([]string, len(segments))
	relSoFar := ""
	for i, seg := range segments {
		if relSoFar == "" {
			relSoFar = seg
		} else {
			relSoFar = relSoFar + sep + seg
		}
		obf, ok := cache.lookup(relSoFar)
		if !ok {
			abs := joinPath(sep, r.req.SourcePath, relSoFar)
			obf = obfuscator.Obfuscate(abs, seg)
			cache.store(relSoFar, obf)
		}
		mapped[i] = obf
	}
	mapped[len(mapped)-1] += FileExtension
	return strings.Join(mapped, sep)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
