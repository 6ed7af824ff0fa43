package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"hospital-data/internal/domain"
	"hospital-data/internal/export"
	"hospital-data/internal/service"

	"github.com/gin-gonic/gin"
)

type RecordsHandler struct {
	svc *service.RecordService
}

func NewRecordsHandler(svc *service.RecordService) *RecordsHandler {
	return &RecordsHandler{svc: svc}
}

type collectionInfo struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type moduleInfo struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Path        string           `json:"path"`
	Back        string           `json:"back"`
	Collections []collectionInfo `json:"collections"`
}

func describe(m *service.Module) moduleInfo {
	info := moduleInfo{Key: m.Key, Name: m.Name, Path: m.Path, Back: m.Back, Collections: []collectionInfo{}}
	for _, c := range m.Collections() {
		info.Collections = append(info.Collections, collectionInfo{Name: c.Name(), Key: c.Key(), Count: c.Len()})
	}
	return info
}

// ListModules: GET /api/v1/modules
func (h *RecordsHandler) ListModules(c *gin.Context) {
	modules := h.svc.Catalog().Modules()
	out := make([]moduleInfo, 0, len(modules))
	for _, m := range modules {
		out = append(out, describe(m))
	}
	c.JSON(http.StatusOK, Ok(out))
}

// GetModule: GET /api/v1/modules/:module
func (h *RecordsHandler) GetModule(c *gin.Context) {
	m, err := h.svc.Catalog().Module(c.Param("module"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(describe(m)))
}

type listResult struct {
	Query   string          `json:"query"`
	Total   int             `json:"total"`
	Count   int             `json:"count"`
	Records []domain.Record `json:"records"`
}

// List: GET /api/v1/modules/:module/:collection?q=
func (h *RecordsHandler) List(c *gin.Context) {
	module, name := c.Param("module"), c.Param("collection")
	q := c.Query("q")
	recs, err := h.svc.List(c.Request.Context(), module, name, q)
	if err != nil {
		writeError(c, err)
		return
	}
	col, _ := h.svc.Catalog().Collection(module, name)
	c.JSON(http.StatusOK, Ok(listResult{Query: q, Total: col.Len(), Count: len(recs), Records: recs}))
}

// Schema: GET /api/v1/modules/:module/:collection/schema
func (h *RecordsHandler) Schema(c *gin.Context) {
	col, err := h.svc.Catalog().Collection(c.Param("module"), c.Param("collection"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(col.Schema()))
}

// GetDraft: GET .../draft
func (h *RecordsHandler) GetDraft(c *gin.Context) {
	d, err := h.svc.Draft(c.Request.Context(), sessionID(c), c.Param("module"), c.Param("collection"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(d))
}

type setFieldRequest struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value"`
}

// rawValue accepts the value as a JSON string or a bare number/bool, the way
// form inputs deliver it.
func (r setFieldRequest) rawValue() (string, error) {
	if len(r.Value) == 0 || string(r.Value) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(r.Value, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(r.Value, &n); err == nil {
		return n.String(), nil
	}
	var b bool
	if err := json.Unmarshal(r.Value, &b); err == nil {
		return strconv.FormatBool(b), nil
	}
	return "", fmt.Errorf("value of %q must be a string or number", r.Field)
}

// SetField: PUT .../draft {field, value}
func (h *RecordsHandler) SetField(c *gin.Context) {
	var req setFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, Fail("invalid body: "+err.Error()))
		return
	}
	raw, err := req.rawValue()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, Fail(err.Error()))
		return
	}
	d, err := h.svc.SetField(c.Request.Context(), sessionID(c), c.Param("module"), c.Param("collection"), req.Field, raw)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(d))
}

// ResetDraft: DELETE .../draft
func (h *RecordsHandler) ResetDraft(c *gin.Context) {
	d, err := h.svc.ResetDraft(c.Request.Context(), sessionID(c), c.Param("module"), c.Param("collection"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(d))
}

// Submit: POST .../draft/submit
func (h *RecordsHandler) Submit(c *gin.Context) {
	res, err := h.svc.Submit(c.Request.Context(), sessionID(c), c.Param("module"), c.Param("collection"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Ok(res))
}

// Export: GET .../export?q=
func (h *RecordsHandler) Export(c *gin.Context) {
	module, name := c.Param("module"), c.Param("collection")
	data, err := h.svc.Export(c.Request.Context(), module, name, c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.xlsx"`, module, name))
	c.Data(http.StatusOK, export.ContentType, data)
}

// Submissions: GET .../submissions?limit=
func (h *RecordsHandler) Submissions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, Fail("limit must be a positive integer"))
		return
	}
	subs, err := h.svc.Submissions(c.Request.Context(), c.Param("module"), c.Param("collection"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(subs))
}

// SessionDrafts: GET /api/v1/drafts
func (h *RecordsHandler) SessionDrafts(c *gin.Context) {
	keys, err := h.svc.SessionDrafts(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(keys))
}

// DiscardSession: DELETE /api/v1/drafts
func (h *RecordsHandler) DiscardSession(c *gin.Context) {
	n, err := h.svc.DiscardSession(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Ok(gin.H{"discarded": n}))
}
