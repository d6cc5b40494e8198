package importrun

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"projimport/internal/backup"
	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/fieldtype"
	"projimport/internal/mapping"
	"projimport/internal/metrics"
	"projimport/internal/resolve"
	"projimport/internal/transform"
)

const tracerName = "projimport/importrun"

// Runner transforms and persists a bundle pass by pass.
type Runner struct {
	table     *mapping.Table
	persister Persister
	workers   int
	log       logrus.FieldLogger
	metrics   *metrics.Metrics
	sink      diagnostic.Sink
	resolver  resolve.IssueResolver
	registry  *fieldtype.Registry
	clock     func() time.Time
	tracer    trace.Tracer
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds the records transformed concurrently within a pass.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Runner) { r.log = log }
}

// WithMetrics counts records and diagnostics in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithSink reports every diagnostic to sink as well.
func WithSink(sink diagnostic.Sink) Option {
	return func(r *Runner) { r.sink = sink }
}

// WithResolver sets the issue link resolver chain.
func WithResolver(res resolve.IssueResolver) Option {
	return func(r *Runner) { r.resolver = res }
}

// WithRegistry sets the field-type registry.
func WithRegistry(reg *fieldtype.Registry) Option {
	return func(r *Runner) { r.registry = reg }
}

// WithClock sets the clock used for missing issue timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.clock = now }
}

// NewRunner creates a Runner resolving through table and persisting to p.
func NewRunner(table *mapping.Table, p Persister, opts ...Option) *Runner {
	r := &Runner{
		table:     table,
		persister: p,
		workers:   4,
		log:       logrus.StandardLogger(),
		clock:     time.Now,
		tracer:    otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// transformers is the set of transformers of one run, all sharing its sink.
type transformers struct {
	project     *transform.ProjectTransformer
	issue       *transform.IssueTransformer
	comment     *transform.CommentTransformer
	worklog     *transform.WorklogTransformer
	changeGroup *transform.ChangeGroupTransformer
	changeItem  *transform.ChangeItemTransformer
	issueLink   *transform.IssueLinkTransformer
	components  *transform.ComponentAssociationTransformer
	versions    *transform.VersionAssociationTransformer
	voter       *transform.VoterTransformer
	watcher     *transform.WatcherTransformer
	label       *transform.LabelTransformer
	attachment  *transform.AttachmentTransformer
	customField *transform.CustomFieldValueTransformer
}

func (r *Runner) newTransformers(sink diagnostic.Sink) *transformers {
	return &transformers{
		project:     transform.NewProjectTransformer(sink),
		issue:       transform.NewIssueTransformer(sink, transform.WithClock(r.clock)),
		comment:     transform.NewCommentTransformer(sink),
		worklog:     transform.NewWorklogTransformer(sink),
		changeGroup: transform.NewChangeGroupTransformer(sink),
		changeItem:  transform.NewChangeItemTransformer(sink),
		issueLink:   transform.NewIssueLinkTransformer(sink, r.resolver),
		components:  transform.NewComponentAssociationTransformer(sink),
		versions:    transform.NewVersionAssociationTransformer(sink),
		voter:       transform.NewVoterTransformer(sink),
		watcher:     transform.NewWatcherTransformer(sink),
		label:       transform.NewLabelTransformer(sink),
		attachment:  transform.NewAttachmentTransformer(sink),
		customField: transform.NewCustomFieldValueTransformer(sink, r.table, r.registry),
	}
}

// Run transforms and persists b. On error the summary covers the passes run
// so far.
func (r *Runner) Run(ctx context.Context, b *Bundle) (*Summary, error) {
	runID := uuid.NewString()
	log := r.log.WithField("run_id", runID)

	collected := &diagnostic.Diagnostics{}

	sink := diagnostic.Tee(collected, diagnostic.NewLogSink(log), r.sink)
	if r.metrics != nil {
		sink = r.metrics.Sink(sink)
	}

	summary := &Summary{RunID: runID, Diagnostics: collected}
	ts := r.newTransformers(sink)

	r.recordIssueTypes(b.Issues)

	for _, kind := range entity.ImportOrder() {
		ps, err := r.pass(ctx, log, kind, b, ts)
		summary.Passes = append(summary.Passes, ps)

		if err != nil {
			return summary, fmt.Errorf("%s pass: %w", kind, err)
		}
	}

	produced, dropped := summary.Totals()
	log.WithFields(logrus.Fields{
		"produced": produced,
		"dropped":  dropped,
		"errors":   len(collected.Errors),
		"warnings": len(collected.Warnings),
	}).Info("import run complete")

	return summary, nil
}

// recordIssueTypes gives the custom-field pass the old issue type of every
// exported issue. Entries already loaded from the mapping file win.
func (r *Runner) recordIssueTypes(issues []backup.Issue) {
	for _, iss := range issues {
		if iss.ID == "" || iss.IssueTypeID == "" {
			continue
		}

		if _, ok := r.table.IssueTypeOf(iss.ID); !ok {
			r.table.SetIssueType(iss.ID, iss.IssueTypeID)
		}
	}
}

func (r *Runner) pass(ctx context.Context, log logrus.FieldLogger, kind entity.Kind, b *Bundle, ts *transformers) (ps PassSummary, err error) {
	ctx, span := r.tracer.Start(ctx, "importrun.pass",
		trace.WithAttributes(attribute.String("projimport.kind", kind.String())))

	start := time.Now()

	defer func() {
		ps.Kind = kind
		ps.Duration = time.Since(start)

		span.SetAttributes(
			attribute.Int("projimport.produced", ps.Produced),
			attribute.Int("projimport.dropped", ps.Dropped),
		)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()

		if r.metrics != nil {
			r.metrics.PassDuration.WithLabelValues(kind.String()).Observe(ps.Duration.Seconds())
		}

		log.WithFields(logrus.Fields{
			"kind":     kind.String(),
			"produced": ps.Produced,
			"dropped":  ps.Dropped,
			"skipped":  ps.Skipped,
		}).Info("pass complete")
	}()

	return r.dispatch(ctx, kind, b, ts)
}

func (r *Runner) dispatch(ctx context.Context, kind entity.Kind, b *Bundle, ts *transformers) (PassSummary, error) {
	p := r.table

	switch kind {
	case entity.KindProject:
		if _, ok := p.MappedID(entity.KindProject, b.Project.ID); ok {
			return PassSummary{Skipped: true}, nil
		}

		return runPass(ctx, r, kind, []backup.Project{b.Project}, func(_ context.Context, old backup.Project) (any, string, error) {
			rec := ts.project.Transform(p, old)
			return some(rec), rec.SourceID, nil
		})
	case entity.KindIssue:
		return runPass(ctx, r, kind, b.Issues, func(_ context.Context, old backup.Issue) (any, string, error) {
			rec := ts.issue.Transform(p, old)
			if rec == nil {
				return nil, "", nil
			}

			return rec, rec.SourceID, nil
		})
	case entity.KindComment:
		return runPass(ctx, r, kind, b.Comments, func(_ context.Context, old backup.Comment) (any, string, error) {
			return some(ts.comment.Transform(p, old)), "", nil
		})
	case entity.KindWorklog:
		return runPass(ctx, r, kind, b.Worklogs, func(_ context.Context, old backup.Worklog) (any, string, error) {
			return some(ts.worklog.Transform(p, old)), "", nil
		})
	case entity.KindChangeGroup:
		return runPass(ctx, r, kind, b.ChangeGroups, func(_ context.Context, old backup.ChangeGroup) (any, string, error) {
			rec := ts.changeGroup.Transform(p, old)
			if rec == nil {
				return nil, "", nil
			}

			return rec, rec.SourceID, nil
		})
	case entity.KindChangeItem:
		return runPass(ctx, r, kind, b.ChangeItems, func(_ context.Context, old backup.ChangeItem) (any, string, error) {
			return some(ts.changeItem.Transform(p, old)), "", nil
		})
	case entity.KindIssueLink:
		return runPass(ctx, r, kind, b.IssueLinks, func(ctx context.Context, old backup.IssueLink) (any, string, error) {
			rec, err := ts.issueLink.Transform(ctx, p, old)
			return some(rec), "", err
		})
	case entity.KindNodeAssociation:
		return runPass(ctx, r, kind, b.NodeAssociations, func(_ context.Context, old backup.NodeAssociation) (any, string, error) {
			if ts.components.Accepts(old.AssociationType) {
				return some(ts.components.Transform(p, old)), "", nil
			}

			return some(ts.versions.Transform(p, old)), "", nil
		})
	case entity.KindVoter:
		return runPass(ctx, r, kind, b.Voters, func(_ context.Context, old backup.Voter) (any, string, error) {
			return some(ts.voter.Transform(p, old)), "", nil
		})
	case entity.KindWatcher:
		return runPass(ctx, r, kind, b.Watchers, func(_ context.Context, old backup.Watcher) (any, string, error) {
			return some(ts.watcher.Transform(p, old)), "", nil
		})
	case entity.KindLabel:
		return runPass(ctx, r, kind, b.Labels, func(_ context.Context, old backup.Label) (any, string, error) {
			return some(ts.label.Transform(p, old)), "", nil
		})
	case entity.KindAttachment:
		return runPass(ctx, r, kind, b.Attachments, func(_ context.Context, old backup.Attachment) (any, string, error) {
			return some(ts.attachment.Transform(p, old)), "", nil
		})
	case entity.KindCustomFieldValue:
		projectID, _ := p.MappedID(entity.KindProject, b.Project.ID)

		return runPass(ctx, r, kind, b.CustomFieldValues, func(_ context.Context, old backup.CustomFieldValue) (any, string, error) {
			rec, err := ts.customField.Transform(p, projectID, old)
			return some(rec), "", err
		})
	default:
		return PassSummary{}, fmt.Errorf("no transformer for %s", kind)
	}
}

// step transforms one Old Record. A nil record means "no record"; sourceID,
// when set, is registered in the mapping with the persisted record's new id.
type step[T any] func(ctx context.Context, old T) (rec any, sourceID string, err error)

func runPass[T any](ctx context.Context, r *Runner, kind entity.Kind, records []T, fn step[T]) (PassSummary, error) {
	var (
		produced, dropped atomic.Int64
		mu                sync.Mutex
		newIDs            = make(map[string]string)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, old := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rec, sourceID, err := fn(gctx, old)
			if err != nil {
				r.count(kind, metrics.OutcomeFailed)
				return err
			}

			if rec == nil {
				dropped.Add(1)
				r.count(kind, metrics.OutcomeDropped)

				return nil
			}

			newID, err := r.persister.Persist(gctx, kind, rec)
			if err != nil {
				r.count(kind, metrics.OutcomeFailed)
				return fmt.Errorf("persisting %s: %w", kind, err)
			}

			produced.Add(1)
			r.count(kind, metrics.OutcomeProduced)

			if sourceID != "" {
				mu.Lock()
				newIDs[sourceID] = newID
				mu.Unlock()
			}

			return nil
		})
	}

	err := g.Wait()

	for oldID, newID := range newIDs {
		r.table.Set(kind, oldID, newID)
	}

	return PassSummary{Produced: int(produced.Load()), Dropped: int(dropped.Load())}, err
}

func (r *Runner) count(kind entity.Kind, outcome string) {
	if r.metrics != nil {
		r.metrics.Record(kind, outcome)
	}
}

// some turns a nil record pointer into an untyped nil.
func some[T any](rec *T) any {
	if rec == nil {
		return nil
	}

	return rec
}
