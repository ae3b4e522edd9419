//Package batch simulates many independent universes side by side.
//Every universe is owned by exactly one goroutine, so no universe is ever shared.
package batch

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"lifetorus/src/universe"
)

var (
	//ErrInvalidJob indicates a job which cannot be simulated.
	ErrInvalidJob = errors.New("batch: invalid job")
)

//Job describes one universe to simulate.
//When Template is empty the universe is seeded randomly with Density, using Seed.
type Job struct {
	Name        string
	Width       uint32
	Height      uint32
	Template    string
	Density     float64
	Seed        int64
	Generations int
}

//Result is the outcome of one Job.
type Result struct {
	Name        string
	Generations int  //generations actually simulated
	Population  int  //live cells after the last generation
	Extinct     bool //no live cells left
	Stable      bool //the last generation did not change anything
	Elapsed     time.Duration
}

//Run simulates the jobs concurrently, at most limit at a time (limit <= 0 means no limit).
//Results are returned in the order of jobs. The first failing job cancels the others.
func Run(ctx context.Context, jobs []Job, limit int) ([]Result, error) {
	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}

	results := make([]Result, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		eg.Go(func() error {
			r, err := runJob(ctx, job)
			if err != nil {
				return errors.Wrapf(err, "[batch.Run] job %q", job.Name)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runJob(ctx context.Context, job Job) (Result, error) {
	if job.Generations < 0 {
		return Result{}, errors.Wrapf(ErrInvalidJob, "negative generations %d", job.Generations)
	}
	u, err := universe.New(job.Width, job.Height)
	if err != nil {
		return Result{}, err
	}
	if err = seed(u, job); err != nil {
		return Result{}, err
	}

	start := time.Now()
	res := Result{Name: job.Name}
	for res.Generations < job.Generations {
		if err = ctx.Err(); err != nil {
			return Result{}, err
		}
		live, changed := u.Step()
		res.Generations++
		if live == 0 {
			res.Extinct = true
			break
		}
		if !changed {
			res.Stable = true
			break
		}
	}
	res.Population = u.Population()
	res.Elapsed = time.Since(start)
	return res, nil
}

func seed(u *universe.Universe, job Job) error {
	if job.Template == "" {
		rng := rand.New(rand.NewSource(job.Seed))
		return u.SetLiveCells(universe.RandomPositions(rng, u.Width(), u.Height(), job.Density)...)
	}
	for _, tmpl := range universe.BuiltinTemplates() {
		if tmpl.Name == job.Template {
			return u.Place(tmpl, universe.Position{})
		}
	}
	return errors.Wrapf(ErrInvalidJob, "unknown template %q", job.Template)
}
