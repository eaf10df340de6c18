package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"content-ledger/pkg/logger"
	"content-ledger/pkg/middleware"
	"content-ledger/services/ledger/internal/chain"
	"content-ledger/services/ledger/internal/entity"
	"content-ledger/services/ledger/internal/repo/persistent"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxUploadSize   = 32 << 20
	adminRole       = "admin"
)

// Caller is satisfied by *dispatcher.Dispatcher.
type Caller interface {
	Call(ctx context.Context, call entity.Call) entity.Result
	Routes() []string
}

// ContentStore is satisfied by *s3.Client.
type ContentStore interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
}

type LedgerHandler struct {
	caller  Caller
	calls   persistent.CallRepository
	content ContentStore
	chain   chain.Chain
	logger  *logger.Logger
}

// NewLedgerHandler wires the gateway. content may be nil, in which case
// uploads answer 503.
func NewLedgerHandler(caller Caller, calls persistent.CallRepository, content ContentStore, ch chain.Chain, logger *logger.Logger) *LedgerHandler {
	return &LedgerHandler{
		caller:  caller,
		calls:   calls,
		content: content,
		chain:   ch,
		logger:  logger,
	}
}

type CallRequest struct {
	Args []interface{} `json:"args"`
}

type AdvanceRequest struct {
	Blocks uint64 `json:"blocks" binding:"required,min=1,max=9223372036854775807"`
}

func statusOf(r entity.Result) int {
	if r.Success {
		return http.StatusOK
	}
	switch r.Error {
	case entity.ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case entity.ErrCodeUnauthorized:
		return http.StatusForbidden
	case entity.ErrCodeNotFound:
		return http.StatusNotFound
	case entity.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CallContract godoc
// @Summary      Call a contract function
// @Description  Dispatches contract.function with positional args. The caller principal comes from the JWT subject. Unsigned integers may be sent as "u<n>" literals or JSON numbers.
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        contract  path  string       true  "Contract name"  Enums(content-nft, subscription)
// @Param        function  path  string       true  "Function name"
// @Param        request   body  CallRequest  false "Arguments"
// @Success      200  {object}  entity.Result
// @Failure      400  {object}  entity.Result
// @Failure      403  {object}  entity.Result
// @Failure      404  {object}  entity.Result
// @Failure      409  {object}  entity.Result
// @Router       /contracts/{contract}/{function} [post]
func (h *LedgerHandler) CallContract(c *gin.Context) {
	var req CallRequest
	if c.Request.ContentLength != 0 {
		decoder := json.NewDecoder(c.Request.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&req); err != nil && err != io.EOF {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	result := h.caller.Call(c.Request.Context(), entity.Call{
		Contract: c.Param("contract"),
		Function: c.Param("function"),
		Sender:   c.GetString(middleware.PrincipalKey),
		Args:     req.Args,
	})
	c.JSON(statusOf(result), result)
}

// ListRoutes godoc
// @Summary      List callable functions
// @Tags         contracts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]string
// @Router       /contracts [get]
func (h *LedgerHandler) ListRoutes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"routes": h.caller.Routes()})
}

// ListCalls godoc
// @Summary      Call history
// @Description  Dispatched calls, newest first
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Param        contract  query  string  false  "Filter by contract"
// @Param        sender    query  string  false  "Filter by sender principal"
// @Param        limit     query  int     false  "Page size"  default(20)
// @Param        offset    query  int     false  "Offset"     default(0)
// @Success      200  {array}   entity.CallRecord
// @Failure      500  {object}  map[string]string
// @Router       /calls [get]
func (h *LedgerHandler) ListCalls(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	filter := persistent.CallFilter{
		Contract: c.Query("contract"),
		Sender:   c.Query("sender"),
	}
	records, err := h.calls.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list calls: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list calls"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// UploadContent godoc
// @Summary      Upload content and mint it
// @Description  Stores the file in object storage and mints a content-nft whose uri is the object URL.
// @Tags         content
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Content file"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /content [post]
func (h *LedgerHandler) UploadContent(c *gin.Context) {
	if h.content == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Content storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(buf.Bytes())
	}

	key := "content/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)
	uri, err := h.content.UploadFile(key, &buf, contentType)
	if err != nil {
		h.logger.Error("Failed to upload content: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload content"})
		return
	}

	result := h.caller.Call(c.Request.Context(), entity.Call{
		Contract: entity.ContractContentNFT,
		Function: "mint",
		Sender:   c.GetString(middleware.PrincipalKey),
		Args:     []interface{}{uri},
	})
	if !result.Success {
		if err := h.content.DeleteFile(key); err != nil {
			h.logger.Error("Failed to remove unminted content %s: %v", key, err)
		}
		c.JSON(statusOf(result), gin.H{"result": result})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"uri": uri, "result": result})
}

// GetHeight godoc
// @Summary      Current block height
// @Tags         chain
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]uint64
// @Router       /chain/height [get]
func (h *LedgerHandler) GetHeight(c *gin.Context) {
	height, err := h.chain.Height(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read height: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read height"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"height": height})
}

// AdvanceChain godoc
// @Summary      Mine blocks
// @Description  Advances the simulated chain. Admin only.
// @Tags         chain
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  AdvanceRequest  true  "Blocks to advance"
// @Success      200  {object}  map[string]uint64
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /chain/advance [post]
func (h *LedgerHandler) AdvanceChain(c *gin.Context) {
	if c.GetString(middleware.RoleKey) != adminRole {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can advance the chain"})
		return
	}

	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	height, err := h.chain.Advance(c.Request.Context(), req.Blocks)
	if errors.Is(err, entity.ErrInvalidArgument) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("Failed to advance chain: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance chain"})
		return
	}
	h.logger.Info("[CHAIN] Advanced %d blocks to %d", req.Blocks, height)
	c.JSON(http.StatusOK, gin.H{"height": height})
}
