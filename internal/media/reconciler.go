package media

import (
	"context"
	"log/slog"

	"news-events-api/internal/model"
	"news-events-api/internal/repository"
)

// ReconcileResult reports what a gallery reconciliation did.
type ReconcileResult struct {
	Kept    int
	Added   int
	Removed int
	// FailedFiles lists orphaned references whose backing file could not be
	// unlinked. Their rows are already gone.
	FailedFiles []string
}

// Reconciler applies a submitted gallery state to the stored rows and backing
// files of a news and events item.
type Reconciler struct {
	images   repository.NewsEventImageRepository
	resolver *Resolver
}

// NewReconciler creates a gallery reconciler.
func NewReconciler(images repository.NewsEventImageRepository, resolver *Resolver) *Reconciler {
	return &Reconciler{images: images, resolver: resolver}
}

// Reconcile diffs the stored gallery of an item against the submitted
// references and applies the difference. References present on both sides
// survive with their row id and adopt the submitted position. References only
// in the submission are inserted at their position. Rows no longer referenced
// are deleted, then their backing files are unlinked best effort: a failed
// unlink is logged and reported, never fatal. Database errors abort.
//
// oldImages must be the stored gallery as read before any mutation of the
// item. Submitted references are canonicalized and deduplicated first, first
// occurrence winning.
func (r *Reconciler) Reconcile(ctx context.Context, newsEventID int64, oldImages []model.NewsEventImage, submitted []string) (*ReconcileResult, error) {
	newRefs := r.dedupeCanonical(submitted)

	oldByRef := make(map[string]model.NewsEventImage, len(oldImages))
	for _, img := range oldImages {
		oldByRef[r.resolver.Canonicalize(img.ImageURL)] = img
	}

	result := &ReconcileResult{}
	keep := make(map[string]bool, len(newRefs))

	for idx, ref := range newRefs {
		if old, ok := oldByRef[ref]; ok {
			keep[ref] = true
			if old.ImageOrder != idx {
				if err := r.images.UpdateOrder(ctx, old.ID, idx); err != nil {
					return result, err
				}
			}
			result.Kept++
			continue
		}
		img := &model.NewsEventImage{
			NewsEventID: newsEventID,
			ImageURL:    ref,
			ImageOrder:  idx,
		}
		if err := r.images.Insert(ctx, img); err != nil {
			return result, err
		}
		result.Added++
	}

	var orphaned []string
	for ref, old := range oldByRef {
		if keep[ref] {
			continue
		}
		if err := r.images.Delete(ctx, old.ID); err != nil {
			return result, err
		}
		orphaned = append(orphaned, ref)
		result.Removed++
	}

	// An empty submission means remove everything. The idempotent bulk
	// delete backs up the per-row deletes so no stored row can survive.
	if len(newRefs) == 0 && len(oldImages) > 0 {
		if err := r.images.DeleteByItem(ctx, newsEventID); err != nil {
			return result, err
		}
	}

	result.FailedFiles = r.resolver.DeleteFiles(orphaned)
	if n := len(result.FailedFiles); n > 0 {
		slog.Warn("gallery reconciliation left undeleted files",
			"news_and_events_id", newsEventID, "failed", n, "attempted", len(orphaned))
	}

	return result, nil
}

// dedupeCanonical canonicalizes submitted references and drops empty values
// and later duplicates, keeping first occurrence order.
func (r *Reconciler) dedupeCanonical(refs []string) []string {
	seen := make(map[string]bool, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		c := r.resolver.Canonicalize(ref)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
