package handler

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agencyops/crm-system/internal/api/metrics"
	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
)

// maxPDFBytes caps invoice document uploads at 10 MiB.
const maxPDFBytes = 10 << 20

// InvoiceHandler handles HTTP requests for invoices, including the PDF
// document upload.
type InvoiceHandler struct {
	service   ports.InvoiceService
	uploadDir string
}

func NewInvoiceHandler(service ports.InvoiceService, uploadDir string) *InvoiceHandler {
	return &InvoiceHandler{service: service, uploadDir: uploadDir}
}

type createInvoiceRequest struct {
	OrderID       int         `json:"orderId" validate:"required,gt=0"`
	InvoiceNumber string      `json:"invoiceNumber" validate:"required"`
	Amount        float64     `json:"amount" validate:"gte=0"`
	Status        string      `json:"status" validate:"omitempty,oneof=pending paid overdue canceled"`
	IssueDate     domain.Date `json:"issueDate"`
	DueDate       domain.Date `json:"dueDate"`
	Notes         string      `json:"notes"`
}

type updateInvoiceRequest struct {
	OrderID       *int         `json:"orderId" validate:"omitempty,gt=0"`
	InvoiceNumber *string      `json:"invoiceNumber" validate:"omitempty,min=1"`
	Amount        *float64     `json:"amount" validate:"omitempty,gte=0"`
	Status        *string      `json:"status" validate:"omitempty,oneof=pending paid overdue canceled"`
	IssueDate     *domain.Date `json:"issueDate"`
	DueDate       *domain.Date `json:"dueDate"`
	Notes         *string      `json:"notes"`
}

// List handles GET /api/invoices. An optional orderId query parameter
// restricts the listing to one order's invoices.
//
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  query     int  false  "Filter by order id"
// @Success      200      {array}   domain.Invoice
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	var filter ports.InvoiceFilter
	if raw := c.QueryParam("orderId"); raw != "" {
		orderID, err := strconv.Atoi(raw)
		if err != nil || orderID <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid orderId filter")
		}
		filter.OrderID = orderID
	}

	invoices, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoices)
}

// Get handles GET /api/invoices/:id.
//
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Invoice id"
// @Success      200  {object}  domain.Invoice
// @Failure      404  {object}  errorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	invoice, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// Create handles POST /api/invoices.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInvoiceRequest  true  "Invoice fields"
// @Success      201   {object}  domain.Invoice
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invoice, err := h.service.Create(c.Request().Context(), ports.CreateInvoiceInput{
		OrderID:       req.OrderID,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		Status:        domain.InvoiceStatus(req.Status),
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("invoice").Inc()
	return c.JSON(http.StatusCreated, invoice)
}

// Update handles PUT /api/invoices/:id.
//
// @Summary      Update an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Invoice id"
// @Param        body  body      updateInvoiceRequest  true  "Fields to change"
// @Success      200   {object}  domain.Invoice
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var status *domain.InvoiceStatus
	if req.Status != nil {
		s := domain.InvoiceStatus(*req.Status)
		status = &s
	}

	invoice, err := h.service.Update(c.Request().Context(), id, ports.UpdateInvoiceInput{
		OrderID:       req.OrderID,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		Status:        status,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// Delete handles DELETE /api/invoices/:id.
//
// @Summary      Delete an invoice
// @Tags         invoices
// @Security     BearerAuth
// @Param        id  path  int  true  "Invoice id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.RecordsDeletedTotal.WithLabelValues("invoice").Inc()
	return c.NoContent(http.StatusNoContent)
}

// UploadPDF handles POST /api/invoices/:id/pdf. The multipart field "pdf"
// is stored under the upload directory with a collision-free name and the
// invoice's pdfPath is updated to the served path.
//
// @Summary      Attach a PDF document to an invoice
// @Tags         invoices
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int   true  "Invoice id"
// @Param        pdf  formData  file  true  "PDF document"
// @Success      200  {object}  domain.Invoice
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/invoices/{id}/pdf [post]
func (h *InvoiceHandler) UploadPDF(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	// Look the invoice up first so a bad id fails before any disk write.
	if _, err := h.service.Get(c.Request().Context(), id); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing pdf file")
	}
	if fileHeader.Size > maxPDFBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "pdf too large")
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return echo.NewHTTPError(http.StatusBadRequest, "only pdf files are accepted")
	}

	name, err := h.storePDF(fileHeader)
	if err != nil {
		return fmt.Errorf("store pdf: %w", err)
	}

	pdfPath := "/uploads/" + name
	invoice, err := h.service.Update(c.Request().Context(), id, ports.UpdateInvoiceInput{PDFPath: &pdfPath})
	if err != nil {
		return err
	}

	metrics.InvoicePDFUploadsTotal.Inc()
	return c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) storePDF(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	name := fmt.Sprintf("invoice-%d-%s.pdf", time.Now().UnixMilli(), hex.EncodeToString(buf))

	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}
