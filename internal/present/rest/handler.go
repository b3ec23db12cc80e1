package rest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
	"github.com/vitrineapp/vitrine/internal/present/rest/middleware"
	"github.com/vitrineapp/vitrine/internal/present/rest/presenter"
	"github.com/vitrineapp/vitrine/internal/service"
	"github.com/vitrineapp/vitrine/internal/usecase"
)

type Handler struct {
	config  domain.Config
	stores  *usecase.StoreUsecase
	media   *usecase.MediaUsecase
	catalog *usecase.CatalogUsecase
	render  *usecase.RenderUsecase
	editor  *service.EditorService
	signal  *service.SignalService
	pages   usecase.PageCache
}

func NewHandler(
	config domain.Config,
	stores *usecase.StoreUsecase,
	media *usecase.MediaUsecase,
	catalog *usecase.CatalogUsecase,
	render *usecase.RenderUsecase,
	editor *service.EditorService,
	signal *service.SignalService,
	pages usecase.PageCache,
) *Handler {
	return &Handler{
		config:  config,
		stores:  stores,
		media:   media,
		catalog: catalog,
		render:  render,
		editor:  editor,
		signal:  signal,
		pages:   pages,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.AuthMiddleware) {
	api := e.Group("/api/v1", auth.RequireOperator)
	api.GET("/kinds", h.handleKinds)
	api.POST("/stores", h.handleCreateStore)
	api.GET("/stores/:id", h.handleGetDraft)
	api.PATCH("/stores/:id", h.handleUpdateStore)
	api.DELETE("/stores/:id", h.handleDeleteStore)
	api.POST("/stores/:id/logo", h.handleUploadLogo)
	api.POST("/stores/:id/sections", h.handleAddSection)
	api.DELETE("/stores/:id/sections/:sid", h.handleRemoveSection)
	api.POST("/stores/:id/sections/:sid/move", h.handleMoveSection)
	api.PATCH("/stores/:id/sections/:sid", h.handleUpdateContent)
	api.POST("/stores/:id/sections/:sid/media", h.handleUploadSectionMedia)
	api.DELETE("/stores/:id/sections/:sid/media/:index", h.handleRemoveSectionMedia)
	api.POST("/stores/:id/publish", h.handlePublish)
	api.GET("/stores/:id/preview", h.handlePreview)
	api.GET("/stores/:id/selection", h.handleGetSelection)
	api.PUT("/stores/:id/selection", h.handlePutSelection)
	api.POST("/stores/:id/products", h.handleCreateProduct)
	api.GET("/stores/:id/products", h.handleListProducts)
	api.PATCH("/products/:id", h.handleUpdateProduct)
	api.DELETE("/products/:id", h.handleDeleteProduct)
	api.POST("/products/:id/photos", h.handleUploadProductPhotos)
	api.DELETE("/products/:id/photos/:index", h.handleRemoveProductPhoto)
	api.POST("/products/:id/primary", h.handleSetPrimaryPhoto)
	api.POST("/attachments", h.handleNormalizeAttachment)

	e.GET("/s/:id", h.handlePublicPage)
	e.GET("/s/:id/p/:productID", h.handleProductPage)
	e.GET("/realtime", h.handleRealtime)
}

func respondError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return presenter.NotFound(c, err.Error())
	}
	return presenter.InternalError(c, err)
}

// --- palette ---

func (h *Handler) handleKinds(c echo.Context) error {
	return presenter.OK(c, vitrine.Kinds())
}

// --- stores ---

func (h *Handler) handleCreateStore(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.Name == "" {
		return presenter.BadRequestMessage(c, "name is required")
	}

	store, err := h.stores.Create(ctx, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.Created(c, store)
}

func (h *Handler) handleGetDraft(c echo.Context) error {
	ctx := c.Request().Context()

	store, err := h.stores.GetDraft(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, store)
}

func (h *Handler) handleUpdateStore(c echo.Context) error {
	ctx := c.Request().Context()
	storeID := c.Param("id")

	var req struct {
		Name   *string              `json:"name,omitempty"`
		Social *vitrine.SocialLinks `json:"social,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	var store vitrine.Store
	var err error
	if req.Name != nil {
		store, err = h.stores.Rename(ctx, storeID, *req.Name)
		if err != nil {
			return respondError(c, err)
		}
	}
	if req.Social != nil {
		store, err = h.stores.UpdateSocial(ctx, storeID, *req.Social)
		if err != nil {
			return respondError(c, err)
		}
	}
	if req.Name == nil && req.Social == nil {
		return presenter.BadRequestMessage(c, "nothing to update")
	}
	return presenter.OK(c, store)
}

func (h *Handler) handleDeleteStore(c echo.Context) error {
	ctx := c.Request().Context()
	storeID := c.Param("id")

	if err := h.stores.Delete(ctx, storeID); err != nil {
		return respondError(c, err)
	}
	h.editor.Forget(storeID)
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleUploadLogo(c echo.Context) error {
	ctx := c.Request().Context()
	storeID := c.Param("id")

	uploads, err := readUploads(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if len(uploads) != 1 {
		return presenter.BadRequestMessage(c, "exactly one file is required")
	}

	asset, err := h.media.NormalizeLogo(ctx, uploads[0])
	if err != nil {
		if errors.Is(err, domain.ErrMediaRejected) {
			return presenter.BadRequest(c, err)
		}
		return respondError(c, err)
	}

	store, err := h.stores.SetLogo(ctx, storeID, &asset)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, store)
}

// --- sections ---

func (h *Handler) handleAddSection(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Kind vitrine.SectionKind `json:"kind"`
	}
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if !req.Kind.Valid() {
		return presenter.BadRequestMessage(c, "unknown section kind")
	}

	store, err := h.stores.AddSection(ctx, c.Param("id"), req.Kind)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, store)
}

func (h *Handler) handleRemoveSection(c echo.Context) error {
	ctx := c.Request().Context()
	storeID := c.Param("id")
	sectionID := c.Param("sid")

	store, err := h.stores.RemoveSection(ctx, storeID, sectionID)
	if err != nil {
		return respondError(c, err)
	}
	// Deleting the section currently open for editing closes its panel.
	h.editor.ClearSelection(storeID, sectionID)
	return presenter.OK(c, store)
}

func (h *Handler) handleMoveSection(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Index     int `json:"index"`
		Direction int `json:"direction"`
	}
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.Direction != 1 && req.Direction != -1 {
		return presenter.BadRequestMessage(c, "direction must be 1 or -1")
	}

	store, err := h.stores.MoveSection(ctx, c.Param("id"), req.Index, req.Direction)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, store)
}

func (h *Handler) handleUpdateContent(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Field string `json:"field"`
		Value any    `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.Field == "" {
		return presenter.BadRequestMessage(c, "field is required")
	}

	store, err := h.stores.UpdateContent(ctx, c.Param("id"), c.Param("sid"), req.Field, req.Value)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, store)
}

func (h *Handler) handleUploadSectionMedia(c echo.Context) error {
	ctx := c.Request().Context()
	storeID := c.Param("id")
	sectionID := c.Param("sid")

	uploads, err := readUploads(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if len(uploads) == 0 {
		return presenter.BadRequestMessage(c, "no files")
	}

	// One batch per section at a time; the slot shows busy until it
	// resolves.
	if !h.editor.BeginUpload(storeID, sectionID) {
		return presenter.Conflict(c, domain.SectionBusyError{SectionID: sectionID}.Error())
	}
	defer h.editor.EndUpload(storeID, sectionID)

	store, result, err := h.media.AttachStoreMedia(ctx, storeID, sectionID, uploads)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{
		"store":    store,
		"attached": len(result.Assets),
		"rejected": result.Rejected,
	})
}

func (h *Handler) handleRemoveSectionMedia(c echo.Context) error {
	ctx := c.Request().Context()

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid media index")
	}

	store, err := h.stores.RemoveMedia(ctx, c.Param("id"), c.Param("sid"), index)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, store)
}

// --- publish & render ---

func (h *Handler) handlePublish(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.stores.Publish(ctx, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handlePreview(c echo.Context) error {
	ctx := c.Request().Context()

	page, err := h.render.Preview(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, page)
}

func (h *Handler) handlePublicPage(c echo.Context) error {
	ctx := c.Request().Context()
	storeID := c.Param("id")

	if cached, ok := h.pages.Get(ctx, storeID); ok {
		return c.HTMLBlob(http.StatusOK, cached)
	}

	page, err := h.render.PublicPage(ctx, storeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "store not found")
		}
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return respondError(c, err)
	}
	if err := h.pages.Set(ctx, storeID, buf.Bytes()); err != nil {
		slog.WarnContext(ctx, "page cache store failed",
			slog.String("storeId", storeID), slog.String("error", err.Error()))
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *Handler) handleProductPage(c echo.Context) error {
	ctx := c.Request().Context()

	page, err := h.render.ProductPage(ctx, c.Param("productID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := productTemplate.Execute(&buf, page); err != nil {
		return respondError(c, err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// --- shell selection ---

func (h *Handler) handleGetSelection(c echo.Context) error {
	sectionID, ok := h.editor.Selection(c.Param("id"))
	return presenter.OK(c, echo.Map{"sectionId": sectionID, "selected": ok})
}

func (h *Handler) handlePutSelection(c echo.Context) error {
	var req struct {
		SectionID string `json:"sectionId"`
	}
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	h.editor.Select(c.Param("id"), req.SectionID)
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- catalog ---

func (h *Handler) handleCreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.ProductInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}
	input.StoreID = c.Param("id")
	if input.Title == "" {
		return presenter.BadRequestMessage(c, "title is required")
	}

	product, err := h.catalog.Create(ctx, input)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.Created(c, product)
}

func (h *Handler) handleListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalog.ListByStore(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, products)
}

func (h *Handler) handleUpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var update usecase.ProductUpdate
	if err := c.Bind(&update); err != nil {
		return presenter.BadRequest(c, err)
	}

	product, err := h.catalog.Update(ctx, c.Param("id"), update)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, product)
}

func (h *Handler) handleDeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.catalog.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleUploadProductPhotos(c echo.Context) error {
	ctx := c.Request().Context()

	uploads, err := readUploads(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if len(uploads) == 0 {
		return presenter.BadRequestMessage(c, "no files")
	}

	product, result, err := h.media.AttachProductPhotos(ctx, c.Param("id"), uploads)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{
		"product":  product,
		"attached": len(result.Assets),
		"rejected": result.Rejected,
	})
}

func (h *Handler) handleRemoveProductPhoto(c echo.Context) error {
	ctx := c.Request().Context()

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid photo index")
	}

	product, err := h.catalog.RemovePhoto(ctx, c.Param("id"), index)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, product)
}

func (h *Handler) handleSetPrimaryPhoto(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		AssetID string `json:"assetId"`
	}
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	product, err := h.catalog.SetPrimaryPhoto(ctx, c.Param("id"), req.AssetID)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, product)
}

// --- attachments ---

func (h *Handler) handleNormalizeAttachment(c echo.Context) error {
	ctx := c.Request().Context()

	uploads, err := readUploads(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if len(uploads) != 1 {
		return presenter.BadRequestMessage(c, "exactly one file is required")
	}

	asset, err := h.media.NormalizeAttachment(ctx, uploads[0])
	if err != nil {
		if errors.Is(err, domain.ErrMediaRejected) {
			return presenter.BadRequest(c, err)
		}
		return respondError(c, err)
	}
	return presenter.OK(c, asset)
}

// readUploads collects the multipart "files" field into memory.
func readUploads(c echo.Context) ([]domain.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	var uploads []domain.Upload
	for _, header := range form.File["files"] {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, domain.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return uploads, nil
}

// --- realtime preview ---

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type     string   `json:"type"`
	StoreIDs []string `json:"storeIds"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	input := make(chan []string)
	output := make(chan vitrine.Event)

	go h.signal.Realtime(ctx, input, output)

	quit := make(chan struct{})

	go func() {
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				close(quit)
				break
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.StoreIDs:
				case <-ctx.Done():
					return
				}
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
