package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	documentdomain "github.com/talleraustral/taller/internal/document/domain"
)

type documentLineItemRequest struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type createDocumentRequest struct {
	DocType       string                    `json:"doc_type"`
	ClientID      string                    `json:"client_id"`
	RepairOrderID string                    `json:"repair_order_id"`
	IssueDate     string                    `json:"issue_date"`
	DueDate       string                    `json:"due_date"`
	Subtotal      float64                   `json:"subtotal"`
	Items         []documentLineItemRequest `json:"items"`
	Notes         string                    `json:"notes"`
	Status        string                    `json:"status"`
}

type updateDocumentRequest struct {
	Status  *string `json:"status"`
	DueDate *string `json:"due_date"`
	Notes   *string `json:"notes"`
}

type convertPresupuestoRequest struct {
	TargetType string `json:"target_type"`
}

func (s *Server) CreateDocument(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	issueDate, err := parseOptionalTime(req.IssueDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("issue_date", "invalid_issue_date", "invalid issue_date"))
		return
	}

	dueDate, err := parseOptionalTime(req.DueDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
		return
	}

	items := make([]documentdomain.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, documentdomain.LineItem{
			Description: strings.TrimSpace(item.Description),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      float64(item.Quantity) * item.UnitPrice,
		})
	}

	resp, err := s.documentSvc.Create(c.Request.Context(), documentdomain.CreateDocumentRequest{
		DocType:       strings.TrimSpace(strings.ToLower(req.DocType)),
		ClientID:      strings.TrimSpace(req.ClientID),
		RepairOrderID: strings.TrimSpace(req.RepairOrderID),
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Subtotal:      req.Subtotal,
		Items:         items,
		Notes:         req.Notes,
		Status:        strings.TrimSpace(req.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "document.create", "document", resp.ID.String(), map[string]any{
		"doc_type":       resp.DocType,
		"invoice_number": resp.InvoiceNumber,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDocuments(c *gin.Context) {
	var query struct {
		DocType   string `form:"doc_type"`
		Status    string `form:"status"`
		ClientID  string `form:"client_id"`
		IssueFrom string `form:"issue_from"`
		IssueTo   string `form:"issue_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	issueFrom, err := parseOptionalTime(query.IssueFrom, false)
	if err != nil {
		AbortWithError(c, newValidationError("issue_from", "invalid_issue_from", "invalid issue_from"))
		return
	}

	issueTo, err := parseOptionalTime(query.IssueTo, true)
	if err != nil {
		AbortWithError(c, newValidationError("issue_to", "invalid_issue_to", "invalid issue_to"))
		return
	}

	resp, err := s.documentSvc.List(c.Request.Context(), documentdomain.ListDocumentRequest{
		DocType:   strings.TrimSpace(strings.ToLower(query.DocType)),
		Status:    strings.TrimSpace(query.Status),
		ClientID:  strings.TrimSpace(query.ClientID),
		IssueFrom: issueFrom,
		IssueTo:   issueTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDocumentByID(c *gin.Context) {
	resp, err := s.documentSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateDocument(c *gin.Context) {
	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := parseOptionalTime(*req.DueDate, false)
		if err != nil {
			AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
			return
		}
		dueDate = parsed
	}

	resp, err := s.documentSvc.Update(c.Request.Context(), documentdomain.UpdateDocumentRequest{
		ID:      strings.TrimSpace(c.Param("id")),
		Status:  req.Status,
		DueDate: dueDate,
		Notes:   req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "document.update", "document", resp.ID.String(), map[string]any{
		"status": resp.Status,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteDocument(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.documentSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "document.delete", "document", id, nil)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ConvertPresupuesto(c *gin.Context) {
	var req convertPresupuestoRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	resp, err := s.documentSvc.ConvertPresupuesto(c.Request.Context(), documentdomain.ConvertPresupuestoRequest{
		ID:         strings.TrimSpace(c.Param("id")),
		TargetType: strings.TrimSpace(strings.ToLower(req.TargetType)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "document.convert", "document", resp.ID.String(), map[string]any{
		"source_id": strings.TrimSpace(c.Param("id")),
		"doc_type":  resp.DocType,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GenerateAFIPAuthorization(c *gin.Context) {
	resp, err := s.documentSvc.GenerateAFIP(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "document.afip", "document", resp.ID.String(), map[string]any{
		"cae": resp.AFIPCAE,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadDocumentPDF(c *gin.Context) {
	doc, err := s.documentSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	clientName := ""
	if cli, err := s.clientSvc.GetByID(c.Request.Context(), doc.ClientID.String()); err == nil {
		clientName = cli.Name
	}

	reader, err := s.pdfProvider.RenderDocument(c.Request.Context(), doc, clientName)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := doc.InvoiceNumber
	if filename == "" {
		filename = doc.ID.String()
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (s *Server) SendDocumentEmail(c *gin.Context) {
	doc, err := s.documentSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cli, err := s.clientSvc.GetByID(c.Request.Context(), doc.ClientID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if strings.TrimSpace(cli.Email) == "" {
		AbortWithError(c, newValidationError("email", "missing_email", "client has no email address"))
		return
	}

	subject := fmt.Sprintf("Documento %s", doc.InvoiceNumber)
	body := fmt.Sprintf(
		"Hola %s,\n\nLe enviamos el documento %s con fecha %s por un total de $ %.2f.\n\nGracias por su confianza.\n",
		cli.Name, doc.InvoiceNumber, doc.IssueDate.Format("02/01/2006"), doc.Total,
	)

	if err := s.emailSender.Send(c.Request.Context(), []string{cli.Email}, subject, body); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "document.send", "document", doc.ID.String(), map[string]any{
		"to": cli.Email,
	})

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"sent": true}})
}

func isDocumentValidationError(err error) bool {
	switch err {
	case documentdomain.ErrInvalidDocType,
		documentdomain.ErrInvalidClient,
		documentdomain.ErrInvalidID,
		documentdomain.ErrNotPresupuesto,
		documentdomain.ErrNotFactura:
		return true
	default:
		return false
	}
}
