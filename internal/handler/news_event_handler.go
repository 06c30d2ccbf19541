package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"news-events-api/internal/auth"
	errs "news-events-api/internal/errors"
	"news-events-api/internal/media"
	"news-events-api/internal/model"
	"news-events-api/internal/service"
)

// NewsEventHandler handles news and events endpoints. Create and update
// accept either JSON bodies with URL references or multipart forms carrying
// the image files themselves.
type NewsEventHandler struct {
	newsService service.NewsEventService
	resolver    *media.Resolver
}

// NewNewsEventHandler creates a new news and events handler.
func NewNewsEventHandler(newsService service.NewsEventService, resolver *media.Resolver) *NewsEventHandler {
	return &NewsEventHandler{
		newsService: newsService,
		resolver:    resolver,
	}
}

// StringValue is a nullable string field that tracks whether it appeared in
// the request body at all. Null decodes as the empty value.
type StringValue struct {
	present bool
	value   string
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *StringValue) UnmarshalJSON(b []byte) error {
	v.present = true
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		v.value = ""
		return nil
	}
	return json.Unmarshal(trimmed, &v.value)
}

// Present reports whether the field appeared in the request body.
func (v StringValue) Present() bool { return v.present }

// Value returns the decoded string.
func (v StringValue) Value() string { return v.value }

// StringList decodes from a JSON array of strings, a single string, or null,
// and tracks whether the field appeared in the body at all. Updates use the
// distinction: an absent gallery field leaves stored images alone, a present
// but empty one removes them all.
type StringList struct {
	present bool
	values  []string
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(b []byte) error {
	l.present = true
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		l.values = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		if single == "" {
			l.values = nil
		} else {
			l.values = []string{single}
		}
		return nil
	}
	return json.Unmarshal(trimmed, &l.values)
}

// Present reports whether the field appeared in the request body.
func (l StringList) Present() bool { return l.present }

// Values returns the decoded references.
func (l StringList) Values() []string { return l.values }

// CreateNewsEventRequest is the JSON body for item creation. Images accepts a
// single URL or an array of URLs.
type CreateNewsEventRequest struct {
	CategoryID  int64      `json:"category_id" validate:"required,gt=0"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	DateTime    string     `json:"date_time"`
	Status      string     `json:"status"`
	CoverImage  *string    `json:"cover_image"`
	Images      StringList `json:"images"`
}

// UpdateNewsEventRequest is the JSON body for item updates. Absent fields
// keep their stored values; cover_image and images only touch stored images
// when present.
type UpdateNewsEventRequest struct {
	CategoryID  *int64      `json:"category_id" validate:"omitempty,gt=0"`
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Location    *string     `json:"location"`
	DateTime    *string     `json:"date_time"`
	Status      *string     `json:"status"`
	CoverImage  StringValue `json:"cover_image"`
	Images      StringList  `json:"images"`
}

// NewsEventImageData decorates a gallery image with its presentation URL.
type NewsEventImageData struct {
	model.NewsEventImage
	URL string `json:"url"`
}

// NewsEventData decorates an item with presentation URLs built from the
// stored canonical references.
type NewsEventData struct {
	model.NewsEvent
	CoverImageURL string               `json:"cover_image_url,omitempty"`
	Images        []NewsEventImageData `json:"images"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PagedNewsEvents is the data payload of list responses.
type PagedNewsEvents struct {
	Items      []NewsEventData `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// List godoc
// @Summary List news and events with filters
// @Tags news-and-events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, 1 to 100"
// @Param category_id query int false "Filter by category"
// @Param status query string false "Filter by status (active or inactive)"
// @Param search query string false "Match against title and description"
// @Param date_from query string false "Inclusive lower datetime bound"
// @Param date_to query string false "Inclusive upper datetime bound"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /news-and-events [get]
func (h *NewsEventHandler) List(c echo.Context) error {
	q, err := h.listQuery(c, false)
	if err != nil {
		return err
	}

	result, err := h.newsService.List(c.Request().Context(), *q)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "News and events retrieved successfully", h.paged(result, q))
}

// ListPublic godoc
// @Summary List active news and events for public clients
// @Tags news-and-events
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, 1 to 100"
// @Param category_id query int false "Filter by category"
// @Param search query string false "Match against title and description"
// @Param date_from query string false "Inclusive lower datetime bound"
// @Param date_to query string false "Inclusive upper datetime bound"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /news-and-events/public [get]
func (h *NewsEventHandler) ListPublic(c echo.Context) error {
	q, err := h.listQuery(c, true)
	if err != nil {
		return err
	}

	result, err := h.newsService.List(c.Request().Context(), *q)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "News and events retrieved successfully", h.paged(result, q))
}

// Get godoc
// @Summary Get a news and events item by ID
// @Tags news-and-events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /news-and-events/{id} [get]
func (h *NewsEventHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	item, err := h.newsService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "News and events item retrieved successfully", h.present(item))
}

// Create godoc
// @Summary Create a news and events item
// @Tags news-and-events
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /news-and-events [post]
func (h *NewsEventHandler) Create(c echo.Context) error {
	in, err := h.bindCreate(c)
	if err != nil {
		return err
	}

	if claims, ok := auth.IdentityFromContext(c); ok {
		in.CreatedBy = &claims.AdminID
	}

	item, err := h.newsService.Create(c.Request().Context(), *in)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "News and events item created successfully", h.present(item))
}

// Update godoc
// @Summary Update a news and events item
// @Tags news-and-events
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /news-and-events/{id} [put]
func (h *NewsEventHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	in, err := h.bindUpdate(c)
	if err != nil {
		return err
	}

	item, err := h.newsService.Update(c.Request().Context(), id, *in)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "News and events item updated successfully", h.present(item))
}

// Delete godoc
// @Summary Delete a news and events item
// @Tags news-and-events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /news-and-events/{id} [delete]
func (h *NewsEventHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.newsService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "News and events item deleted successfully", nil)
}

func (h *NewsEventHandler) listQuery(c echo.Context, publicOnly bool) (*service.NewsEventListQuery, error) {
	page, limit, err := pageQuery(c)
	if err != nil {
		return nil, err
	}

	q := &service.NewsEventListQuery{
		Page:       page,
		Limit:      limit,
		Search:     c.QueryParam("search"),
		DateFrom:   c.QueryParam("date_from"),
		DateTo:     c.QueryParam("date_to"),
		PublicOnly: publicOnly,
	}
	// Public listings have no status filter; they are pinned to active.
	if !publicOnly {
		q.Status = c.QueryParam("status")
	}

	if raw := strings.TrimSpace(c.QueryParam("category_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return nil, errs.E(errs.KindValidation, "Parameter category_id must be a positive integer")
		}
		q.CategoryID = &id
	}

	return q, nil
}

func (h *NewsEventHandler) paged(result *service.NewsEventListResult, q *service.NewsEventListQuery) PagedNewsEvents {
	totalPages := 0
	if result.Total > 0 {
		totalPages = int((result.Total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return PagedNewsEvents{
		Items: h.presentAll(result.Items),
		Pagination: Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      result.Total,
			TotalPages: totalPages,
		},
	}
}

func (h *NewsEventHandler) present(item *model.NewsEvent) NewsEventData {
	data := NewsEventData{NewsEvent: *item}
	if item.CoverImage != nil {
		data.CoverImageURL = h.resolver.PublicURL(*item.CoverImage)
	}
	data.Images = make([]NewsEventImageData, len(item.Images))
	for i, img := range item.Images {
		data.Images[i] = NewsEventImageData{
			NewsEventImage: img,
			URL:            h.resolver.PublicURL(img.ImageURL),
		}
	}
	return data
}

func (h *NewsEventHandler) presentAll(items []model.NewsEvent) []NewsEventData {
	out := make([]NewsEventData, len(items))
	for i := range items {
		out[i] = h.present(&items[i])
	}
	return out
}

func (h *NewsEventHandler) bindCreate(c echo.Context) (*service.CreateNewsEventInput, error) {
	if isMultipart(c) {
		return h.bindCreateMultipart(c)
	}

	var req CreateNewsEventRequest
	if err := c.Bind(&req); err != nil {
		return nil, errs.E(errs.KindValidation, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	in := &service.CreateNewsEventInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		DateTime:    req.DateTime,
		Status:      req.Status,
		GalleryURLs: req.Images.Values(),
	}
	if req.CoverImage != nil {
		in.CoverURL = *req.CoverImage
	}
	return in, nil
}

func (h *NewsEventHandler) bindCreateMultipart(c echo.Context) (*service.CreateNewsEventInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errs.E(errs.KindValidation, "Invalid multipart form")
	}

	in := &service.CreateNewsEventInput{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		Location:    formValue(form, "location"),
		DateTime:    formValue(form, "date_time"),
		Status:      formValue(form, "status"),
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, errs.E(errs.KindValidation, "Title is required")
	}

	rawID := formValue(form, "category_id")
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || id < 1 {
		return nil, errs.E(errs.KindValidation, "Invalid category ID")
	}
	in.CategoryID = id

	if files := form.File["cover_image"]; len(files) > 0 {
		in.CoverUpload = files[0]
	} else {
		in.CoverURL = formValue(form, "cover_image")
	}

	in.GalleryUploads = form.File["images"]
	in.GalleryURLs = nonEmptyValues(form.Value["images"])
	return in, nil
}

func (h *NewsEventHandler) bindUpdate(c echo.Context) (*service.UpdateNewsEventInput, error) {
	if isMultipart(c) {
		return h.bindUpdateMultipart(c)
	}

	var req UpdateNewsEventRequest
	if err := c.Bind(&req); err != nil {
		return nil, errs.E(errs.KindValidation, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	return &service.UpdateNewsEventInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		DateTime:    req.DateTime,
		Status:      req.Status,
		HasCover:    req.CoverImage.Present(),
		CoverURL:    req.CoverImage.Value(),
		HasGallery:  req.Images.Present(),
		GalleryURLs: req.Images.Values(),
	}, nil
}

func (h *NewsEventHandler) bindUpdateMultipart(c echo.Context) (*service.UpdateNewsEventInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errs.E(errs.KindValidation, "Invalid multipart form")
	}

	in := &service.UpdateNewsEventInput{}

	if v, ok := formLookup(form, "title"); ok {
		in.Title = &v
	}
	if v, ok := formLookup(form, "description"); ok {
		in.Description = &v
	}
	if v, ok := formLookup(form, "location"); ok {
		in.Location = &v
	}
	if v, ok := formLookup(form, "date_time"); ok {
		in.DateTime = &v
	}
	if v, ok := formLookup(form, "status"); ok {
		in.Status = &v
	}
	if raw, ok := formLookup(form, "category_id"); ok {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || id < 1 {
			return nil, errs.E(errs.KindValidation, "Invalid category ID")
		}
		in.CategoryID = &id
	}

	coverFiles := form.File["cover_image"]
	_, coverValuePresent := form.Value["cover_image"]
	switch {
	case len(coverFiles) > 0:
		in.HasCover = true
		in.CoverUpload = coverFiles[0]
	case coverValuePresent:
		in.HasCover = true
		in.CoverURL = formValue(form, "cover_image")
	}

	galleryFiles := form.File["images"]
	galleryValues, galleryValuePresent := form.Value["images"]
	if len(galleryFiles) > 0 || galleryValuePresent {
		in.HasGallery = true
		in.GalleryUploads = galleryFiles
		in.GalleryURLs = nonEmptyValues(galleryValues)
	}

	return in, nil
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func formLookup(form *multipart.Form, key string) (string, bool) {
	vs, ok := form.Value[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func nonEmptyValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
