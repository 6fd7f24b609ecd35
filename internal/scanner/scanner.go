// Package scanner orchestrates one scan pass: harvest every source, filter
// and deduplicate candidates, extract and classify the survivors, persist
// everything, and report findings.
//
// The pass is linear: harvest, filter, dedup, extract+classify, persist,
// report. Failure handling follows a strict taxonomy. Source and content
// failures stay local to the source or document, classifier failures
// degrade to a not-relevant verdict, notifier failures are best-effort,
// and only store failures abort the scan.
package scanner

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/payroll-radar/internal/classify"
	"github.com/jonathan/payroll-radar/internal/config"
	"github.com/jonathan/payroll-radar/internal/filter"
	"github.com/jonathan/payroll-radar/internal/notify"
	"github.com/jonathan/payroll-radar/internal/types"
)

// Harvester yields candidate links for a source.
type Harvester interface {
	Harvest(ctx context.Context, src types.Source) ([]types.Candidate, error)
}

// Extractor turns a document URL into text or a sentinel.
type Extractor interface {
	Extract(ctx context.Context, url string) (text string, ok bool)
}

// Classifier judges a document's relevance.
type Classifier interface {
	Classify(ctx context.Context, doc types.Document) (classify.Result, error)
}

// Notifier delivers one message, best effort.
type Notifier interface {
	Send(ctx context.Context, text string) bool
}

// Store is the persistent fingerprint memory. Any error from it is fatal
// to the scan.
type Store interface {
	FilterNew(urls []string) ([]string, error)
	SaveDocument(doc types.Document) error
	LogScan(stats types.ScanStats) error
}

// Reporter formats scan results into messages. Broken out so tests can
// count logical messages without parsing Markdown.
type Reporter interface {
	JurisdictionReport(jurisdiction string, docs []types.Document) []string
	Summary(stats types.ScanStats) string
	NoUpdates() string
}

// Scanner runs the pipeline. Construct with New; one instance per process.
type Scanner struct {
	sources    []types.Source
	harvester  Harvester
	extractor  Extractor
	classifier Classifier
	notifier   Notifier
	store      Store
	reporter   Reporter
	logger     *log.Logger

	minScore      float64
	maxConcurrent int
	maxPerSource  int
	runMode       config.RunMode
	now           func() time.Time
}

// Deps bundles the scanner's collaborators.
type Deps struct {
	Sources    []types.Source
	Harvester  Harvester
	Extractor  Extractor
	Classifier Classifier
	Notifier   Notifier
	Store      Store
	Reporter   Reporter
	Logger     *log.Logger
}

// markdownReporter renders messages with the notify package's Telegram
// Markdown formatters. It is the Reporter used when Deps leaves one unset.
type markdownReporter struct{}

func (markdownReporter) JurisdictionReport(jurisdiction string, docs []types.Document) []string {
	return notify.FormatJurisdictionReport(jurisdiction, docs)
}

func (markdownReporter) Summary(stats types.ScanStats) string { return notify.FormatSummary(stats) }
func (markdownReporter) NoUpdates() string                    { return notify.FormatNoUpdates() }

// New creates a Scanner from configuration and collaborators.
func New(cfg *config.Config, deps Deps) *Scanner {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	reporter := deps.Reporter
	if reporter == nil {
		reporter = markdownReporter{}
	}
	return &Scanner{
		sources:       deps.Sources,
		harvester:     deps.Harvester,
		extractor:     deps.Extractor,
		classifier:    deps.Classifier,
		notifier:      deps.Notifier,
		store:         deps.Store,
		reporter:      reporter,
		logger:        logger,
		minScore:      cfg.MinScore,
		maxConcurrent: cfg.MaxConcurrent,
		maxPerSource:  cfg.MaxPerSource,
		runMode:       cfg.RunMode,
		now:           time.Now,
	}
}

// Run executes one scan pass and returns its statistics. The returned
// error is non-nil only for fatal conditions (store failures); per-source
// and per-document failures are logged and absorbed.
func (s *Scanner) Run(ctx context.Context) (types.ScanStats, error) {
	start := s.now()
	stats := types.ScanStats{
		RunID:        uuid.NewString(),
		SourcesTotal: len(s.sources),
	}
	s.logger.Info("scan started", "run", stats.RunID, "sources", len(s.sources))

	docs := s.harvestAll(ctx, &stats)
	s.logger.Info("harvest complete",
		"harvested", stats.Harvested, "passed_filter", stats.Filtered,
		"failed_sources", stats.SourcesFailed)

	newDocs, err := s.dedup(docs)
	if err != nil {
		return stats, err
	}
	stats.New = len(newDocs)
	s.logger.Info("deduplication complete", "new", stats.New, "known", len(docs)-len(newDocs))

	relevant := s.classifyAll(ctx, newDocs)
	stats.Relevant = len(relevant)

	// Every processed document is persisted, relevant or not, so nothing
	// is ever re-classified on a later run.
	for i := range newDocs {
		if err := s.store.SaveDocument(newDocs[i]); err != nil {
			return stats, fmt.Errorf("persisting documents: %w", err)
		}
	}

	stats.MessagesSent = s.report(ctx, relevant)
	stats.Duration = s.now().Sub(start)

	s.sendSummary(ctx, &stats)

	if err := s.store.LogScan(stats); err != nil {
		return stats, fmt.Errorf("writing scan log: %w", err)
	}

	s.logger.Info("scan complete",
		"run", stats.RunID, "new", stats.New, "relevant", stats.Relevant,
		"messages", stats.MessagesSent, "duration", stats.Duration.Round(time.Second))
	return stats, nil
}

// harvestAll fans out over the sources with bounded concurrency and applies
// the relevance filter. Results keep catalog order: slot i belongs to
// source i, and within a source the page's candidate order is preserved.
func (s *Scanner) harvestAll(ctx context.Context, stats *types.ScanStats) []types.Document {
	perSource := make([][]types.Document, len(s.sources))
	harvestCounts := make([]int, len(s.sources))
	failed := make([]bool, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, src := range s.sources {
		g.Go(func() error {
			candidates, err := s.harvester.Harvest(gctx, src)
			if err != nil {
				// One unreachable site is steady-state noise, not a
				// scan failure.
				s.logger.Warn("source failed",
					"jurisdiction", src.Jurisdiction, "agency", src.Agency, "err", err)
				failed[i] = true
				return nil
			}
			harvestCounts[i] = len(candidates)
			perSource[i] = s.filterCandidates(src, candidates)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are recorded per source

	var docs []types.Document
	for i := range s.sources {
		stats.Harvested += harvestCounts[i]
		if failed[i] {
			stats.SourcesFailed++
		}
		docs = append(docs, perSource[i]...)
	}
	stats.Filtered = len(docs)
	return docs
}

// filterCandidates runs the two-gate relevance filter over one source's
// candidates and derives the regex-based attributes for survivors.
func (s *Scanner) filterCandidates(src types.Source, candidates []types.Candidate) []types.Document {
	f := filter.New(
		filter.WithMinScore(s.minScore),
		filter.WithExtraKeywords(src.Keywords),
	)

	var docs []types.Document
	for _, cand := range candidates {
		passes, score := f.Passes(cand.Text, cand.URL)
		if !passes {
			continue
		}

		published := filter.ExtractDate(cand.Text)
		if published == "" {
			published = "unknown"
		}

		docs = append(docs, types.Document{
			URL:          cand.URL,
			Title:        clipTitle(cand.Text),
			Jurisdiction: src.Jurisdiction,
			Agency:       src.Agency,
			DocID:        filter.ExtractDocID(cand.Text),
			Published:    published,
			DiscoveredAt: s.now().UTC(),
			IsPDF:        filter.IsDocumentFile(cand.URL),
			Score:        score,
		})
		if len(docs) >= s.maxPerSource {
			break
		}
	}
	return docs
}

// dedup drops in-pass duplicates by URL, then bulk-checks the remainder
// against the store in a single query. The in-memory pass closes the
// check-then-act window between two identical URLs discovered in one scan.
func (s *Scanner) dedup(docs []types.Document) ([]types.Document, error) {
	seen := make(map[string]bool, len(docs))
	unique := make([]types.Document, 0, len(docs))
	for _, doc := range docs {
		if seen[doc.URL] {
			continue
		}
		seen[doc.URL] = true
		unique = append(unique, doc)
	}

	urls := make([]string, len(unique))
	for i, doc := range unique {
		urls[i] = doc.URL
	}
	fresh, err := s.store.FilterNew(urls)
	if err != nil {
		return nil, fmt.Errorf("checking fingerprints: %w", err)
	}

	freshSet := make(map[string]bool, len(fresh))
	for _, u := range fresh {
		freshSet[u] = true
	}

	var out []types.Document
	for _, doc := range unique {
		if freshSet[doc.URL] {
			out = append(out, doc)
		}
	}
	return out, nil
}

// classifyAll extracts content and classifies each new document in place,
// returning the relevant ones. Extraction failures become sentinels that
// push the classifier into title-only mode; classification failures leave
// the document marked not relevant.
func (s *Scanner) classifyAll(ctx context.Context, docs []types.Document) []types.Document {
	var relevant []types.Document
	for i := range docs {
		doc := &docs[i]

		snippet, ok := s.extractor.Extract(ctx, doc.URL)
		doc.Snippet = snippet
		if !ok {
			s.logger.Debug("content unavailable, classifying by title",
				"url", doc.URL, "sentinel", snippet)
		}

		verdict, err := s.classifier.Classify(ctx, *doc)
		if err != nil {
			s.logger.Warn("classification degraded",
				"title", doc.Title, "jurisdiction", doc.Jurisdiction, "err", err)
		}
		doc.Relevant = verdict.Relevant
		doc.Category = verdict.Category
		doc.Summary = verdict.Summary

		if doc.Relevant {
			s.logger.Info("relevant document",
				"jurisdiction", doc.Jurisdiction, "category", doc.Category, "title", doc.Title)
			relevant = append(relevant, *doc)
		}
	}
	return relevant
}

// report groups relevant documents by jurisdiction and sends one logical
// report per jurisdiction, split as needed for the transport ceiling.
func (s *Scanner) report(ctx context.Context, relevant []types.Document) int {
	if len(relevant) == 0 {
		return 0
	}

	byJurisdiction := make(map[string][]types.Document)
	var order []string
	for _, doc := range relevant {
		if _, ok := byJurisdiction[doc.Jurisdiction]; !ok {
			order = append(order, doc.Jurisdiction)
		}
		byJurisdiction[doc.Jurisdiction] = append(byJurisdiction[doc.Jurisdiction], doc)
	}

	sent := 0
	for _, jurisdiction := range order {
		for _, msg := range s.reporter.JurisdictionReport(jurisdiction, byJurisdiction[jurisdiction]) {
			if s.notifier.Send(ctx, msg) {
				sent++
			}
		}
	}
	return sent
}

// sendSummary delivers the terminal notification. Any run that processed
// new documents gets a summary, even when none were relevant. A scheduled
// run with nothing new stays quiet; a manual run always answers.
func (s *Scanner) sendSummary(ctx context.Context, stats *types.ScanStats) {
	if stats.New == 0 {
		if s.runMode == config.RunModeManual {
			if s.notifier.Send(ctx, s.reporter.NoUpdates()) {
				stats.MessagesSent++
			}
		}
		return
	}
	if s.notifier.Send(ctx, s.reporter.Summary(*stats)) {
		stats.MessagesSent++
	}
}

// clipTitle caps link text at 200 bytes without splitting a rune.
func clipTitle(text string) string {
	if len(text) <= 200 {
		return text
	}
	cut := 200
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
