package bcreport

import (
	"fmt"

	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/reports"
	"go.uber.org/zap"
)

// result is the outcome of one report builder.
type result struct {
	report *models.Report
	err    error
}

// run calls build and turns a panic into a ReportError so that one broken
// report never takes its siblings down.
func run(name, component string, build func() (*models.Report, error)) (res result) {
	defer func() {
		if p := recover(); p != nil {
			res = result{err: NewReportError(name, component, fmt.Errorf("panic: %v", p))}
		}
	}()

	r, err := build()
	if err != nil {
		return result{err: NewReportError(name, component, err)}
	}
	return result{report: r}
}

// job is one report builder scheduled by Build.
type job struct {
	name      string
	component string
	build     func() (*models.Report, error)
}

// Build computes every report enabled by opts over a normalized dataset.
// Reports that fail are logged, recorded in Failures and skipped; empty watch
// lists are omitted.
func Build(ds *models.Dataset, source string, opts Options) *models.ReportSet {
	log := opts.logger()
	set := &models.ReportSet{Source: source, Records: len(ds.Records)}

	jobs := []job{
		{reports.RegionSummaryName, "region", func() (*models.Report, error) {
			r, err := reports.RegionSummary(ds)
			if r != nil {
				r.Title = opts.Title
			}
			return r, err
		}},
		{reports.PercentageName, "percentage", func() (*models.Report, error) {
			return reports.CoordinatorPercentage(ds, opts.ShouldIncludeInactiveKPI())
		}},
	}
	if opts.ShouldIncludeWatchLists() {
		for _, name := range reports.WatchListNames {
			name := name
			jobs = append(jobs, job{name, "watch_list", func() (*models.Report, error) {
				return reports.WatchList(ds, name)
			}})
		}
	}

	for _, j := range jobs {
		res := run(j.name, j.component, j.build)
		if res.err != nil {
			log.Warn("report skipped", zap.String("report", j.name), zap.Error(res.err))
			set.Failures = append(set.Failures, models.ReportFailure{Report: j.name, Error: res.err.Error()})
			continue
		}
		if res.report == nil {
			log.Debug("report empty", zap.String("report", j.name))
			continue
		}
		set.Reports = append(set.Reports, *res.report)
	}

	log.Info("reports built",
		zap.Int("records", len(ds.Records)),
		zap.Int("reports", len(set.Reports)),
		zap.Int("failures", len(set.Failures)),
	)
	return set
}
