package service

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"strings"

	errs "news-events-api/internal/errors"
	"news-events-api/internal/media"
	"news-events-api/internal/model"
	"news-events-api/internal/repository"
	"news-events-api/internal/util"
)

// CreateNewsEventInput carries the fields for item creation. Image slots can
// be fed by uploaded files or by URL references; an uploaded cover wins over
// a cover URL, gallery uploads are appended after gallery URLs.
type CreateNewsEventInput struct {
	CategoryID  int64
	Title       string
	Description string
	Location    string
	DateTime    string
	Status      string

	CoverUpload    *multipart.FileHeader
	CoverURL       string
	GalleryUploads []*multipart.FileHeader
	GalleryURLs    []string

	CreatedBy *int64
}

// UpdateNewsEventInput carries optional fields; nil keeps the stored value.
// HasCover and HasGallery distinguish "field absent, leave stored images
// alone" from "field present but empty, remove them".
type UpdateNewsEventInput struct {
	CategoryID  *int64
	Title       *string
	Description *string
	Location    *string
	DateTime    *string
	Status      *string

	HasCover    bool
	CoverUpload *multipart.FileHeader
	CoverURL    string

	HasGallery     bool
	GalleryUploads []*multipart.FileHeader
	GalleryURLs    []string
}

// NewsEventListQuery is a validated list request. Page and Limit are already
// range-checked by the transport layer; dates are still in client form.
type NewsEventListQuery struct {
	Page       int
	Limit      int
	CategoryID *int64
	Status     string
	Search     string
	DateFrom   string
	DateTo     string
	// PublicOnly pins the listing to active items regardless of Status.
	PublicOnly bool
}

// NewsEventListResult bundles one page of items with the unpaged total.
type NewsEventListResult struct {
	Items []model.NewsEvent
	Total int64
}

// NewsEventService handles news and events items together with their images.
type NewsEventService interface {
	Create(ctx context.Context, in CreateNewsEventInput) (*model.NewsEvent, error)
	Update(ctx context.Context, id int64, in UpdateNewsEventInput) (*model.NewsEvent, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.NewsEvent, error)
	List(ctx context.Context, q NewsEventListQuery) (*NewsEventListResult, error)
}

type newsEventService struct {
	newsRepo   repository.NewsEventRepository
	imageRepo  repository.NewsEventImageRepository
	resolver   *media.Resolver
	reconciler *media.Reconciler
}

// NewNewsEventService creates a new news and events service.
func NewNewsEventService(
	newsRepo repository.NewsEventRepository,
	imageRepo repository.NewsEventImageRepository,
	resolver *media.Resolver,
	reconciler *media.Reconciler,
) NewsEventService {
	return &newsEventService{
		newsRepo:   newsRepo,
		imageRepo:  imageRepo,
		resolver:   resolver,
		reconciler: reconciler,
	}
}

func (s *newsEventService) Create(ctx context.Context, in CreateNewsEventInput) (*model.NewsEvent, error) {
	dt, err := util.NormalizeDateTime(in.DateTime)
	if err != nil {
		return nil, datetimeError(err)
	}

	status := in.Status
	if status == "" {
		status = model.StatusActive
	}
	if !model.IsValidStatus(status) {
		return nil, errs.E(errs.KindValidation, "Status must be either active or inactive")
	}
	if len(in.GalleryUploads) > media.MaxGalleryImages {
		return nil, errs.Ef(errs.KindValidation, "A maximum of %d images can be uploaded", media.MaxGalleryImages)
	}

	// Files are persisted before any row is written, so a rejected request
	// leaves no orphaned uploads.
	var saved []string
	cover, err := s.resolveCover(in.CoverUpload, in.CoverURL, &saved)
	if err != nil {
		s.resolver.DeleteFiles(saved)
		return nil, err
	}
	gallery, err := s.resolveGallery(in.GalleryUploads, in.GalleryURLs, &saved)
	if err != nil {
		s.resolver.DeleteFiles(saved)
		return nil, err
	}

	item := &model.NewsEvent{
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		CoverImage:  cover,
		DateTime:    model.DateTime(dt),
		Status:      status,
		CreatedBy:   in.CreatedBy,
	}
	if err := s.newsRepo.Create(ctx, item); err != nil {
		s.resolver.DeleteFiles(saved)
		return nil, err
	}

	// Creation reconciles against an empty gallery: every reference is an add.
	if _, err := s.reconciler.Reconcile(ctx, item.ID, nil, gallery); err != nil {
		return nil, err
	}

	return s.Get(ctx, item.ID)
}

func (s *newsEventService) Update(ctx context.Context, id int64, in UpdateNewsEventInput) (*model.NewsEvent, error) {
	item, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Snapshot the stored images before any mutation
	oldImages, err := s.imageRepo.FindByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	oldCover := item.CoverImage

	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.DateTime != nil {
		dt, err := util.NormalizeDateTime(*in.DateTime)
		if err != nil {
			return nil, datetimeError(err)
		}
		item.DateTime = model.DateTime(dt)
	}
	if in.Status != nil {
		if !model.IsValidStatus(*in.Status) {
			return nil, errs.E(errs.KindValidation, "Status must be either active or inactive")
		}
		item.Status = *in.Status
	}
	if len(in.GalleryUploads) > media.MaxGalleryImages {
		return nil, errs.Ef(errs.KindValidation, "A maximum of %d images can be uploaded", media.MaxGalleryImages)
	}

	var saved []string
	if in.HasCover {
		cover, err := s.resolveCover(in.CoverUpload, in.CoverURL, &saved)
		if err != nil {
			s.resolver.DeleteFiles(saved)
			return nil, err
		}
		item.CoverImage = cover
	}

	var gallery []string
	if in.HasGallery {
		gallery, err = s.resolveGallery(in.GalleryUploads, in.GalleryURLs, &saved)
		if err != nil {
			s.resolver.DeleteFiles(saved)
			return nil, err
		}
	}

	if err := s.newsRepo.Update(ctx, item); err != nil {
		s.resolver.DeleteFiles(saved)
		return nil, err
	}

	// The replaced cover file goes only after the row points elsewhere.
	if in.HasCover && oldCover != nil && !sameRef(item.CoverImage, oldCover) {
		if err := s.resolver.DeleteFile(*oldCover); err != nil {
			slog.Warn("deleting replaced cover image", "ref", *oldCover, "error", err)
		}
	}

	if in.HasGallery {
		if _, err := s.reconciler.Reconcile(ctx, id, oldImages, gallery); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

func (s *newsEventService) Delete(ctx context.Context, id int64) error {
	item, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	images, err := s.imageRepo.FindByItem(ctx, id)
	if err != nil {
		return err
	}

	// Collect file references before the rows disappear
	refs := make([]string, 0, len(images)+1)
	if item.CoverImage != nil {
		refs = append(refs, *item.CoverImage)
	}
	for _, img := range images {
		refs = append(refs, img.ImageURL)
	}

	// Deleting the item cascades to its gallery rows
	if err := s.newsRepo.Delete(ctx, id); err != nil {
		return err
	}

	if failed := s.resolver.DeleteFiles(refs); len(failed) > 0 {
		slog.Warn("news item deleted with undeleted files",
			"news_and_events_id", id, "failed", len(failed), "attempted", len(refs))
	}
	return nil
}

func (s *newsEventService) Get(ctx context.Context, id int64) (*model.NewsEvent, error) {
	item, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := s.imageRepo.FindByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Images = images
	return item, nil
}

func (s *newsEventService) List(ctx context.Context, q NewsEventListQuery) (*NewsEventListResult, error) {
	filter := repository.NewsEventFilter{
		CategoryID: q.CategoryID,
		Search:     strings.TrimSpace(q.Search),
		Limit:      uint64(q.Limit),
		Offset:     uint64((q.Page - 1) * q.Limit),
	}

	// Public listings only ever see active items
	if q.PublicOnly {
		filter.Status = model.StatusActive
	} else if q.Status != "" {
		if !model.IsValidStatus(q.Status) {
			return nil, errs.E(errs.KindValidation, "Status must be either active or inactive")
		}
		filter.Status = q.Status
	}

	if q.DateFrom != "" {
		dt, err := util.NormalizeDateTime(q.DateFrom)
		if err != nil {
			return nil, errs.E(errs.KindValidation, "Invalid date_from format. Use YYYY-MM-DD HH:MM:SS")
		}
		filter.DateFrom = dt
	}
	if q.DateTo != "" {
		dt, err := util.NormalizeDateTime(q.DateTo)
		if err != nil {
			return nil, errs.E(errs.KindValidation, "Invalid date_to format. Use YYYY-MM-DD HH:MM:SS")
		}
		filter.DateTo = dt
	}

	total, err := s.newsRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.newsRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	// One grouped query hydrates every gallery on the page
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	grouped, err := s.imageRepo.FindByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		images := grouped[items[i].ID]
		if images == nil {
			images = []model.NewsEventImage{}
		}
		items[i].Images = images
	}

	return &NewsEventListResult{Items: items, Total: total}, nil
}

// resolveCover resolves the cover slot: an uploaded file wins over a URL, an
// empty slot clears the cover. Saved upload references are appended to saved
// so callers can clean up when a later step fails.
func (s *newsEventService) resolveCover(upload *multipart.FileHeader, coverURL string, saved *[]string) (*string, error) {
	switch {
	case upload != nil:
		ref, err := s.resolver.SaveUpload(upload, media.CoverImageDir)
		if err != nil {
			return nil, err
		}
		*saved = append(*saved, ref)
		return &ref, nil
	case strings.TrimSpace(coverURL) != "":
		ref := s.resolver.Canonicalize(coverURL)
		return &ref, nil
	default:
		return nil, nil
	}
}

// resolveGallery persists gallery uploads and appends their references after
// the submitted URL references, preserving submission order within each group.
func (s *newsEventService) resolveGallery(uploads []*multipart.FileHeader, urls []string, saved *[]string) ([]string, error) {
	refs := make([]string, 0, len(urls)+len(uploads))
	refs = append(refs, urls...)
	for _, fh := range uploads {
		ref, err := s.resolver.SaveUpload(fh, media.GalleryImageDir)
		if err != nil {
			return nil, err
		}
		*saved = append(*saved, ref)
		refs = append(refs, ref)
	}
	return refs, nil
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func datetimeError(err error) error {
	if errors.Is(err, util.ErrDateTimeRequired) {
		return errs.E(errs.KindValidation, "Date and time is required")
	}
	return errs.E(errs.KindValidation, "Invalid date and time format. Use YYYY-MM-DD HH:MM:SS")
}
