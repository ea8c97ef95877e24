// Package pipeline orchestrates the batch sampling workflows: stratified
// line sampling, well-pad sampling, and matrix-plot generation. Each run is
// single-threaded and sequential; every stage writes finished datasets to
// durable storage before the next stage reads them, and the run lifecycle
// is persisted to the registry database.
package pipeline

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tmyeomans/RS2.1/internal/config"
	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/repository"
	"github.com/tmyeomans/RS2.1/internal/storage"
)

// Working-folder layout, one directory per stage output.
const (
	DirEcositePolys        = "Ecosite_polys"
	DirLinesEcosite        = "Lines_ecosite"
	DirStratifiedLines     = "Stratified_lines"
	DirGridStratifiedLines = "Grid_stratified_lines"
	DirSystRandomPts       = "Syst_Random_Pts"
	DirSHLEcosite          = "SHL_Ecosite"
	DirGridStratifiedSHL   = "Grid_stratified_SHL"
	DirSystRandSHL         = "Syst_rand_SHL"
	DirSHLCombined         = "SHL_RanSamp_comb"
	DirSHLPlots            = "SHL_plots"
	DirLineMidpoint        = "Line_midpoint"
	DirMatrixLoc           = "Matrix_loc"
	DirMatrixPlots         = "Matrix_plots"
	DirWellpadMatrixLoc    = "Wellpad_matrix_loc"
	DirWellpadPlots        = "Wellpad_plots"
)

// Fixed output dataset names.
const (
	CombinedSHLName = "Rand_SHL_comb.shp"
	PadPlotsName    = "Sur_ranpad_100m.shp"
)

// ErrRunInProgress rejects a new run while another one holds the working
// folder.
var ErrRunInProgress = errors.New("pipeline: a run is already in progress")

// Runner executes pipelines and records their lifecycle in the registry.
// Runs are serialized: every stage rewrites shared working-folder
// directories, so at most one run may be active at a time.
type Runner struct {
	cfg     *config.Config
	runs    *repository.RunRepository
	samples *repository.SampleRepository
	plots   *repository.PlotRepository

	mu   sync.Mutex
	busy bool
}

// NewRunner creates a runner backed by the registry database.
func NewRunner(cfg *config.Config, db *sql.DB) *Runner {
	storage.SetEPSG(cfg.EPSG)
	return &Runner{
		cfg:     cfg,
		runs:    repository.NewRunRepository(db),
		samples: repository.NewSampleRepository(db),
		plots:   repository.NewPlotRepository(db),
	}
}

// Execute runs one pipeline end to end. The run is registered before any
// processing starts and marked completed or failed afterwards; a stage
// failure aborts the run with its diagnostic preserved. Returns
// ErrRunInProgress when another run is still active.
func (r *Runner) Execute(kind models.RunKind) (*models.Run, error) {
	run, err := r.begin(kind)
	if err != nil {
		return nil, err
	}
	return r.process(run)
}

// Launch registers a run and processes it in the background. The returned
// run is still pending; its outcome is recorded in the registry.
func (r *Runner) Launch(kind models.RunKind) (*models.Run, error) {
	run, err := r.begin(kind)
	if err != nil {
		return nil, err
	}
	go func() {
		if _, err := r.process(run); err != nil {
			log.Printf("Background run failed: %v", err)
		}
	}()
	return run, nil
}

// begin claims the working folder and registers the run.
func (r *Runner) begin(kind models.RunKind) (*models.Run, error) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return nil, ErrRunInProgress
	}
	r.busy = true
	r.mu.Unlock()

	seed := r.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	run := &models.Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		Seed:      seed,
		Status:    models.RunPending,
		StartedAt: time.Now(),
	}
	if err := r.runs.Create(run); err != nil {
		r.release()
		return nil, err
	}
	return run, nil
}

func (r *Runner) release() {
	r.mu.Lock()
	r.busy = false
	r.mu.Unlock()
}

func (r *Runner) process(run *models.Run) (*models.Run, error) {
	defer r.release()

	if err := r.runs.MarkRunning(run.ID); err != nil {
		return nil, err
	}
	log.Printf("Run %s (%s) started with seed %d", run.ID, run.Kind, run.Seed)

	rng := rand.New(rand.NewSource(run.Seed))
	var err error
	switch run.Kind {
	case models.RunLines:
		err = r.runLines(run.ID, rng)
	case models.RunPads:
		err = r.runPads(run.ID, rng)
	case models.RunMatrix:
		err = r.runMatrix(run.ID)
	default:
		err = fmt.Errorf("pipeline: unknown run kind %q", run.Kind)
	}

	if err != nil {
		run.Status = models.RunFailed
		run.Error = err.Error()
		if markErr := r.runs.MarkFailed(run.ID, err.Error()); markErr != nil {
			log.Printf("Failed to record run failure: %v", markErr)
		}
		return run, fmt.Errorf("pipeline: run %s failed: %w", run.ID, err)
	}
	if err := r.runs.MarkCompleted(run.ID); err != nil {
		return run, err
	}
	run.Status = models.RunCompleted
	log.Printf("Run %s (%s) completed", run.ID, run.Kind)
	return run, nil
}

// sourcePath resolves a dataset name inside the source folder.
func (r *Runner) sourcePath(name string) string {
	return filepath.Join(r.cfg.RootFolder, r.cfg.SourceFolder, name)
}

// workingPath resolves a dataset name inside a working-folder stage
// directory.
func (r *Runner) workingPath(stageDir, name string) string {
	return filepath.Join(r.cfg.RootFolder, r.cfg.WorkingFolder, stageDir, name)
}

// recordStratum registers one written dataset in the registry.
func (r *Runner) recordStratum(runID, name, kind, path string, count int) error {
	return r.samples.RecordStratum(&models.StratumRecord{
		RunID:        runID,
		Name:         name,
		Kind:         kind,
		FeatureCount: count,
		Path:         path,
	})
}
