package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/talleraustral/taller/internal/actionhistory"
	"github.com/talleraustral/taller/internal/client"
	clientdomain "github.com/talleraustral/taller/internal/client/domain"
	"github.com/talleraustral/taller/internal/config"
	"github.com/talleraustral/taller/internal/document"
	documentdomain "github.com/talleraustral/taller/internal/document/domain"
	"github.com/talleraustral/taller/internal/inventory"
	inventorydomain "github.com/talleraustral/taller/internal/inventory/domain"
	"github.com/talleraustral/taller/internal/observability"
	"github.com/talleraustral/taller/internal/payment"
	paymentdomain "github.com/talleraustral/taller/internal/payment/domain"
	"github.com/talleraustral/taller/internal/provider"
	providerdomain "github.com/talleraustral/taller/internal/provider/domain"
	"github.com/talleraustral/taller/internal/providers/email"
	"github.com/talleraustral/taller/internal/providers/pdf"
	"github.com/talleraustral/taller/internal/repairorder"
	repairorderdomain "github.com/talleraustral/taller/internal/repairorder/domain"
	"github.com/talleraustral/taller/internal/report"
	reportdomain "github.com/talleraustral/taller/internal/report/domain"
	"github.com/talleraustral/taller/internal/sysconfig"
	"github.com/talleraustral/taller/internal/ticket"
	ticketdomain "github.com/talleraustral/taller/internal/ticket/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	observability.Module,
	fx.Provide(registerGin),
	actionhistory.Module,
	sysconfig.Module,
	email.Module,
	pdf.Module,
	client.Module,
	repairorder.Module,
	inventory.Module,
	document.Module,
	provider.Module,
	payment.Module,
	ticket.Module,
	report.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *observability.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Named("http")))
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, metrics *observability.HTTPMetrics) *gin.Engine {
	return NewEngine(log, metrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	clientSvc    clientdomain.Service
	orderSvc     repairorderdomain.Service
	inventorySvc inventorydomain.Service
	documentSvc  documentdomain.Service
	providerSvc  providerdomain.Service
	paymentSvc   paymentdomain.Service
	ticketSvc    ticketdomain.Service
	reportSvc    reportdomain.Service
	sysconfigSvc sysconfig.Service
	historySvc   actionhistory.Service
	pdfProvider  pdf.Provider
	emailSender  email.Sender
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	ClientSvc    clientdomain.Service
	OrderSvc     repairorderdomain.Service
	InventorySvc inventorydomain.Service
	DocumentSvc  documentdomain.Service
	ProviderSvc  providerdomain.Service
	PaymentSvc   paymentdomain.Service
	TicketSvc    ticketdomain.Service
	ReportSvc    reportdomain.Service
	SysconfigSvc sysconfig.Service
	HistorySvc   actionhistory.Service
	PDFProvider  pdf.Provider
	EmailSender  email.Sender
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		clientSvc:    p.ClientSvc,
		orderSvc:     p.OrderSvc,
		inventorySvc: p.InventorySvc,
		documentSvc:  p.DocumentSvc,
		providerSvc:  p.ProviderSvc,
		paymentSvc:   p.PaymentSvc,
		ticketSvc:    p.TicketSvc,
		reportSvc:    p.ReportSvc,
		sysconfigSvc: p.SysconfigSvc,
		historySvc:   p.HistorySvc,
		pdfProvider:  p.PDFProvider,
		emailSender:  p.EmailSender,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Clients --------
	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/:id", s.GetClientByID)
	api.PUT("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)
	api.GET("/clients/:id/balance", s.GetClientBalance)
	api.GET("/clients/:id/whatsapp", s.GetClientWhatsAppLink)

	// -------- Repair orders --------
	api.GET("/repair_orders", s.ListRepairOrders)
	api.POST("/repair_orders", s.CreateRepairOrder)
	api.GET("/repair_orders/overdue", s.ListOverdueRepairOrders)
	api.GET("/repair_orders/:id", s.GetRepairOrderByID)
	api.PUT("/repair_orders/:id", s.UpdateRepairOrder)
	api.DELETE("/repair_orders/:id", s.DeleteRepairOrder)

	// -------- Inventory --------
	api.GET("/inventory", s.ListInventoryItems)
	api.POST("/inventory", s.CreateInventoryItem)
	api.GET("/inventory/:id", s.GetInventoryItemByID)
	api.PUT("/inventory/:id", s.UpdateInventoryItem)
	api.DELETE("/inventory/:id", s.DeleteInventoryItem)
	api.POST("/inventory/:id/adjust", s.AdjustInventoryStock)

	// -------- Documents --------
	api.GET("/documents", s.ListDocuments)
	api.POST("/documents", s.CreateDocument)
	api.GET("/documents/:id", s.GetDocumentByID)
	api.PUT("/documents/:id", s.UpdateDocument)
	api.DELETE("/documents/:id", s.DeleteDocument)
	api.POST("/documents/:id/convert", s.ConvertPresupuesto)
	api.POST("/documents/:id/afip", s.GenerateAFIPAuthorization)
	api.GET("/documents/:id/pdf", s.DownloadDocumentPDF)
	api.POST("/documents/:id/send", s.SendDocumentEmail)

	// -------- Providers --------
	api.GET("/providers", s.ListProviders)
	api.POST("/providers", s.CreateProvider)
	api.GET("/providers/search", s.SearchProviders)
	api.GET("/providers/:id", s.GetProviderByID)
	api.PUT("/providers/:id", s.UpdateProvider)
	api.DELETE("/providers/:id", s.DeleteProvider)

	// -------- Payments --------
	api.GET("/payments", s.ListPayments)
	api.POST("/payments", s.CreatePayment)
	api.GET("/payments/:id", s.GetPaymentByID)
	api.DELETE("/payments/:id", s.DeletePayment)

	// -------- Tickets --------
	api.GET("/tickets", s.ListTickets)
	api.POST("/tickets", s.CreateTicket)
	api.GET("/tickets/:id", s.GetTicketByID)
	api.PUT("/tickets/:id", s.UpdateTicket)

	// -------- Reports --------
	reports := api.Group("/reports")
	{
		reports.GET("/monthly_sales", s.MonthlySalesSummary)
		reports.GET("/new_clients", s.NewClientCount)
		reports.GET("/client_activity", s.ClientActivitySummary)
		reports.GET("/stock_status", s.StockStatus)
		reports.GET("/orders_by_equipment", s.OrdersByEquipment)
		reports.GET("/technician_performance", s.TechnicianPerformance)
		reports.GET("/average_repair_time", s.AverageRepairTime)
		reports.GET("/sales_by_client", s.SalesByClient)
		reports.GET("/invoice_aging", s.InvoiceAging)
		reports.GET("/revenue_by_service_type", s.RevenueByServiceType)
		reports.GET("/order_status_counts", s.OrderStatusCounts)
		reports.GET("/ticket_volume", s.TicketVolumeAndResolution)
	}

	// -------- Settings --------
	api.GET("/settings/:key", s.GetSetting)
	api.PUT("/settings/:key", s.SetSetting)

	// -------- Action history --------
	api.GET("/history", s.ListActionHistory)
}
