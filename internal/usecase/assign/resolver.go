// Package assign resolves action items to team members by semantic search
// over the team directory index.
package assign

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/team-assistant/internal/domain/entities"
	"github.com/johnquangdev/team-assistant/internal/domain/repositories"
	"github.com/johnquangdev/team-assistant/internal/retrieval"
)

// Matcher reranks retrieved candidates with a model call. Satisfied by
// extract.Extractor.
type Matcher interface {
	MatchAssignee(ctx context.Context, task, taskContext, mentioned, candidates string) (*entities.AssigneeMatchOutput, error)
}

// Resolver assigns action items against the team directory. Below-threshold
// matches leave the item unassigned; resolution never fails an item.
type Resolver struct {
	index     *retrieval.Index
	matcher   Matcher
	teams     repositories.TeamRepository
	threshold float64
	topK      int
	logger    *zap.Logger
}

// NewResolver builds a resolver over the team directory index
func NewResolver(index *retrieval.Index, matcher Matcher, teams repositories.TeamRepository, threshold float64, topK int, logger *zap.Logger) *Resolver {
	if topK <= 0 {
		topK = 3
	}
	return &Resolver{
		index:     index,
		matcher:   matcher,
		teams:     teams,
		threshold: threshold,
		topK:      topK,
		logger:    logger,
	}
}

// Resolve sets the assignee on the item, or leaves it unassigned when no
// candidate clears the confidence threshold. Already-assigned items are
// returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, item *entities.ActionItem, mentioned string) error {
	if item.Assigned() {
		return nil
	}

	queryText := item.Description
	if mentioned != "" {
		queryText = mentioned + ": " + queryText
	}

	results, err := r.index.Query(ctx, retrieval.NamespaceTeamDirectory, queryText, r.topK)
	if err != nil {
		return err
	}
	if len(results) == 0 || results[0].Score < r.threshold {
		r.logger.Info("🤷 No confident assignee match",
			zap.String("action_item", item.ID),
			zap.Float64("best_score", bestScore(results)),
			zap.Float64("threshold", r.threshold),
		)
		return nil
	}

	best := results[0]
	choice, err := r.rerank(ctx, item, mentioned, results)
	if err != nil {
		// Rerank is a refinement; fall back to the top retrieval hit.
		r.logger.Warn("⚠️ Assignee rerank failed, using top retrieval hit",
			zap.String("action_item", item.ID),
			zap.Error(err),
		)
		choice = nil
	}

	selected := best
	if choice != nil {
		for _, res := range results {
			if strings.EqualFold(res.Document.Metadata["name"], choice.Name) {
				selected = res
				break
			}
		}
	}

	member, err := r.teams.FindByName(ctx, selected.Document.Metadata["name"])
	if err != nil {
		return err
	}

	item.Assignee = member.Ref()
	item.AssigneeConfidence = selected.Score
	item.Status = entities.ActionItemStatusAssigned

	r.logger.Info("👤 Action item assigned",
		zap.String("action_item", item.ID),
		zap.String("assignee", member.Name),
		zap.Float64("confidence", selected.Score),
	)
	return nil
}

func (r *Resolver) rerank(ctx context.Context, item *entities.ActionItem, mentioned string, results []retrieval.Result) (*entities.AssigneeMatchOutput, error) {
	if r.matcher == nil {
		return nil, nil
	}
	var sb strings.Builder
	for i, res := range results {
		fmt.Fprintf(&sb, "Candidate %d (similarity %.2f):\n%s\n\n", i+1, res.Score, res.Document.Text)
	}
	return r.matcher.MatchAssignee(ctx, item.Description, item.Context, mentioned, sb.String())
}

func bestScore(results []retrieval.Result) float64 {
	if len(results) == 0 {
		return 0
	}
	return results[0].Score
}
