package service

import (
	"context"
	"sort"
	"strings"
	"time"

	clientdomain "github.com/talleraustral/taller/internal/client/domain"
	"github.com/talleraustral/taller/internal/clock"
	documentdomain "github.com/talleraustral/taller/internal/document/domain"
	inventorydomain "github.com/talleraustral/taller/internal/inventory/domain"
	repairorderdomain "github.com/talleraustral/taller/internal/repairorder/domain"
	"github.com/talleraustral/taller/internal/report/domain"
	ticketdomain "github.com/talleraustral/taller/internal/ticket/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The report layer fetches each collection wholesale and aggregates in
// memory: the row counts of a repair shop stay small enough that pushing
// grouping into SQL buys nothing over one scan per report.

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("report.service"),
		clock: p.Clock,
	}
}

func (s *Service) MonthlySalesSummary(ctx context.Context, month, year int) (domain.MonthlySalesSummary, error) {
	if month < 1 || month > 12 || year < 1 {
		return domain.MonthlySalesSummary{}, domain.ErrInvalidMonth
	}

	docs, err := s.fetchDocuments(ctx)
	if err != nil {
		return domain.MonthlySalesSummary{}, err
	}

	summary := domain.MonthlySalesSummary{Month: month, Year: year}
	for _, doc := range docs {
		issued := doc.IssueDate.UTC()
		if int(issued.Month()) != month || issued.Year() != year {
			continue
		}
		switch {
		case doc.IsFactura():
			summary.InvoiceTotal += doc.Total
			summary.InvoiceCount++
		case doc.DocType == documentdomain.DocTypeRecibo:
			summary.ReceiptTotal += doc.Total
		}
	}
	return summary, nil
}

func (s *Service) NewClientCount(ctx context.Context, startDate, endDate string) ([]domain.MonthCount, error) {
	start, end, err := parseRequiredRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	clients, err := s.fetchClients(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, client := range clients {
		// Rows imported without an acquisition timestamp are skipped.
		if client.CreatedAt.IsZero() {
			continue
		}
		created := client.CreatedAt.UTC()
		if !inRange(created, &start, &end) {
			continue
		}
		counts[monthKey(created)]++
	}

	out := make([]domain.MonthCount, 0, len(counts))
	for month, count := range counts {
		out = append(out, domain.MonthCount{Month: month, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (s *Service) ClientActivitySummary(ctx context.Context, startDate, endDate string) ([]domain.ClientActivity, error) {
	start, end, err := parseRequiredRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	clients, err := s.fetchClients(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.fetchOrders(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := s.fetchDocuments(ctx)
	if err != nil {
		return nil, err
	}

	orderCounts := make(map[string]int)
	for _, order := range orders {
		if inRange(order.EntryDate.UTC(), &start, &end) {
			orderCounts[order.ClientID.String()]++
		}
	}

	invoiceTotals := make(map[string]float64)
	for _, doc := range docs {
		if !doc.IsFactura() {
			continue
		}
		if inRange(doc.IssueDate.UTC(), &start, &end) {
			invoiceTotals[doc.ClientID.String()] += doc.Total
		}
	}

	// Every client appears, including those with no activity in range.
	out := make([]domain.ClientActivity, 0, len(clients))
	for _, client := range clients {
		id := client.ID.String()
		out = append(out, domain.ClientActivity{
			ClientID:     id,
			ClientName:   client.Name,
			OrderCount:   orderCounts[id],
			InvoiceTotal: invoiceTotals[id],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientName < out[j].ClientName })
	return out, nil
}

func (s *Service) StockStatus(ctx context.Context, req domain.StockStatusRequest) ([]domain.StockStatusRow, error) {
	items, err := s.fetchInventory(ctx)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	out := make([]domain.StockStatusRow, 0, len(items))
	for _, item := range items {
		if category != "" && item.Category != category {
			continue
		}
		low := item.IsLowStock()
		if req.LowOnly && !low {
			continue
		}
		minimum := 0
		if item.MinimumStock != nil {
			minimum = *item.MinimumStock
		}
		out = append(out, domain.StockStatusRow{
			ItemID:       item.ID.String(),
			Name:         item.Name,
			Category:     item.Category,
			Quantity:     item.Quantity,
			MinimumStock: minimum,
			TotalValue:   float64(item.Quantity) * item.CostPrice,
			IsLowStock:   low,
		})
	}
	return out, nil
}

func (s *Service) OrdersByEquipment(ctx context.Context, req domain.OrdersByEquipmentRequest) ([]domain.GroupCount, error) {
	groupBy := strings.TrimSpace(req.GroupBy)
	if groupBy == "" {
		groupBy = domain.GroupByEquipmentType
	}
	if groupBy != domain.GroupByEquipmentType && groupBy != domain.GroupByEquipmentBrand {
		return nil, domain.ErrInvalidGroupBy
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	orders, err := s.fetchOrders(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, order := range orders {
		if !inRange(order.EntryDate.UTC(), start, end) {
			continue
		}
		key := order.EquipmentType
		if groupBy == domain.GroupByEquipmentBrand {
			key = order.EquipmentBrand
		}
		if key == "" {
			key = "Unknown " + groupBy
		}
		counts[key]++
	}

	out := make([]domain.GroupCount, 0, len(counts))
	for group, count := range counts {
		out = append(out, domain.GroupCount{Group: group, Count: count})
	}
	sortGroupCounts(out)
	return out, nil
}

func (s *Service) TechnicianPerformance(ctx context.Context, req domain.RangeRequest) ([]domain.TechnicianPerformance, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	orders, err := s.fetchOrders(ctx)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		name      string
		count     int
		totalDays int
	}
	buckets := make(map[string]*bucket)
	for _, order := range orders {
		// Orders still open or never assigned are out before grouping.
		if order.CompletionDate == nil || order.AssignedTechnicianID == nil {
			continue
		}
		if !inRange(order.EntryDate.UTC(), start, end) {
			continue
		}
		key := order.AssignedTechnicianID.String()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{name: order.AssignedTechnician}
			buckets[key] = b
		}
		b.count++
		b.totalDays += wholeDays(order.EntryDate.UTC(), order.CompletionDate.UTC())
		if b.name == "" {
			b.name = order.AssignedTechnician
		}
	}

	out := make([]domain.TechnicianPerformance, 0, len(buckets))
	for id, b := range buckets {
		out = append(out, domain.TechnicianPerformance{
			TechnicianID:   id,
			TechnicianName: b.name,
			CompletedCount: b.count,
			AverageDays:    float64(b.totalDays) / float64(b.count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompletedCount != out[j].CompletedCount {
			return out[i].CompletedCount > out[j].CompletedCount
		}
		return out[i].TechnicianID < out[j].TechnicianID
	})
	return out, nil
}

func (s *Service) AverageRepairTime(ctx context.Context, req domain.AverageRepairTimeRequest) (domain.AverageRepairTimeResponse, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return domain.AverageRepairTimeResponse{}, err
	}

	orders, err := s.fetchOrders(ctx)
	if err != nil {
		return domain.AverageRepairTimeResponse{}, err
	}

	var resp domain.AverageRepairTimeResponse
	var totalDays int
	type bucket struct {
		count     int
		totalDays int
	}
	groups := make(map[string]*bucket)

	for _, order := range orders {
		// Open orders are excluded outright, never defaulted to "now".
		if order.CompletionDate == nil {
			continue
		}
		if !inRange(order.EntryDate.UTC(), start, end) {
			continue
		}
		days := wholeDays(order.EntryDate.UTC(), order.CompletionDate.UTC())
		resp.Count++
		totalDays += days

		if req.GroupByEquipment {
			key := order.EquipmentType
			if key == "" {
				key = "Unknown equipment_type"
			}
			b, ok := groups[key]
			if !ok {
				b = &bucket{}
				groups[key] = b
			}
			b.count++
			b.totalDays += days
		}
	}

	if resp.Count > 0 {
		resp.AverageDays = float64(totalDays) / float64(resp.Count)
	}
	if req.GroupByEquipment {
		resp.Groups = make([]domain.GroupAverage, 0, len(groups))
		for group, b := range groups {
			resp.Groups = append(resp.Groups, domain.GroupAverage{
				Group:       group,
				Count:       b.count,
				AverageDays: float64(b.totalDays) / float64(b.count),
			})
		}
		sort.Slice(resp.Groups, func(i, j int) bool { return resp.Groups[i].Group < resp.Groups[j].Group })
	}
	return resp, nil
}

func (s *Service) SalesByClient(ctx context.Context, startDate, endDate string) ([]domain.ClientSales, error) {
	start, end, err := parseRequiredRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	clients, err := s.fetchClients(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := s.fetchDocuments(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(clients))
	for _, client := range clients {
		names[client.ID.String()] = client.Name
	}

	totals := make(map[string]float64)
	for _, doc := range docs {
		if !doc.IsFactura() {
			continue
		}
		if inRange(doc.IssueDate.UTC(), &start, &end) {
			totals[doc.ClientID.String()] += doc.Total
		}
	}

	// Unlike the activity summary, clients with no invoices in range do
	// not appear at all.
	out := make([]domain.ClientSales, 0, len(totals))
	for id, total := range totals {
		out = append(out, domain.ClientSales{
			ClientID:   id,
			ClientName: names[id],
			Total:      total,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].ClientID < out[j].ClientID
	})
	return out, nil
}

var agingBuckets = []string{"0-30 days", "31-60 days", "61-90 days", "90+ days"}

func (s *Service) InvoiceAging(ctx context.Context, asOfDate string) ([]domain.AgingBucket, error) {
	var asOf time.Time
	if asOfDate == "" {
		asOf = s.clock.Now()
	} else {
		parsed, err := parseDate(asOfDate)
		if err != nil {
			return nil, err
		}
		asOf = endOfDay(parsed)
	}

	docs, err := s.fetchDocuments(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*domain.AgingBucket, len(agingBuckets))
	out := make([]domain.AgingBucket, len(agingBuckets))
	for i, name := range agingBuckets {
		out[i] = domain.AgingBucket{Bucket: name}
		totals[name] = &out[i]
	}

	for _, doc := range docs {
		if !doc.IsFactura() {
			continue
		}
		if doc.Status == documentdomain.StatusPagada || doc.Status == "Paid" {
			continue
		}

		// Invoices issued after the as-of date do not exist yet at that
		// date. Ones already issued but not yet due still count, at age
		// zero, so bucket totals conserve the full unpaid amount.
		if doc.IssueDate.After(asOf) {
			continue
		}

		reference := doc.IssueDate
		if doc.DueDate != nil {
			reference = *doc.DueDate
		}

		age := wholeDays(reference.UTC(), asOf)
		var bucket string
		switch {
		case age <= 30:
			bucket = agingBuckets[0]
		case age <= 60:
			bucket = agingBuckets[1]
		case age <= 90:
			bucket = agingBuckets[2]
		default:
			bucket = agingBuckets[3]
		}
		totals[bucket].Total += doc.Total
		totals[bucket].Count++
	}
	return out, nil
}

func (s *Service) RevenueByServiceType(ctx context.Context, startDate, endDate string) ([]domain.GroupRevenue, error) {
	start, end, err := parseRequiredRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	docs, err := s.fetchDocuments(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.fetchOrders(ctx)
	if err != nil {
		return nil, err
	}

	equipmentByOrder := make(map[string]string, len(orders))
	for _, order := range orders {
		equipmentByOrder[order.ID.String()] = order.EquipmentType
	}

	// Invoices with no order link, or a dangling one, still count: they
	// land in the Unknown bucket so revenue stays conserved.
	totals := make(map[string]float64)
	for _, doc := range docs {
		if !doc.IsFactura() {
			continue
		}
		if !inRange(doc.IssueDate.UTC(), &start, &end) {
			continue
		}
		group := ""
		if doc.RepairOrderID != nil {
			group = equipmentByOrder[doc.RepairOrderID.String()]
		}
		if group == "" {
			group = "Unknown equipment_type"
		}
		totals[group] += doc.Total
	}

	out := make([]domain.GroupRevenue, 0, len(totals))
	for group, total := range totals {
		out = append(out, domain.GroupRevenue{Group: group, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Group < out[j].Group
	})
	return out, nil
}

func (s *Service) OrderStatusCounts(ctx context.Context, req domain.RangeRequest) ([]domain.StatusCount, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	orders, err := s.fetchOrders(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, order := range orders {
		if !inRange(order.EntryDate.UTC(), start, end) {
			continue
		}
		status := order.Status
		if status == "" {
			status = "Unknown status"
		}
		counts[status]++
	}

	out := make([]domain.StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, domain.StatusCount{Status: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out, nil
}

func (s *Service) TicketVolumeAndResolution(ctx context.Context, req domain.TicketReportRequest) (domain.TicketReport, error) {
	start, end, err := parseRequiredRange(req.StartDate, req.EndDate)
	if err != nil {
		return domain.TicketReport{}, err
	}

	tickets, err := s.fetchTickets(ctx)
	if err != nil {
		return domain.TicketReport{}, err
	}

	statusFilter := strings.TrimSpace(req.Status)
	priorityFilter := strings.TrimSpace(req.Priority)

	var report domain.TicketReport
	byStatus := make(map[string]int)
	byPriority := make(map[string]int)
	var resolutionDays int

	for _, ticket := range tickets {
		if !inRange(ticket.CreatedAt.UTC(), &start, &end) {
			continue
		}
		if statusFilter != "" && ticket.Status != statusFilter {
			continue
		}
		if priorityFilter != "" && ticket.Priority != priorityFilter {
			continue
		}

		report.TotalCount++
		byStatus[ticket.Status]++
		byPriority[ticket.Priority]++

		// Resolution time only counts tickets that both opened and
		// resolved inside the window.
		if ticket.IsResolved() && ticket.ResolvedAt != nil && inRange(ticket.ResolvedAt.UTC(), &start, &end) {
			report.ResolvedCount++
			resolutionDays += wholeDays(ticket.CreatedAt.UTC(), ticket.ResolvedAt.UTC())
		}
	}

	if report.ResolvedCount > 0 {
		report.AverageResolutionDays = float64(resolutionDays) / float64(report.ResolvedCount)
	}
	report.ByStatus = statusCounts(byStatus)
	report.ByPriority = statusCounts(byPriority)
	return report, nil
}

func statusCounts(counts map[string]int) []domain.StatusCount {
	out := make([]domain.StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, domain.StatusCount{Status: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

func sortGroupCounts(out []domain.GroupCount) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Group < out[j].Group
	})
}

func (s *Service) fetchClients(ctx context.Context) ([]clientdomain.Client, error) {
	var clients []clientdomain.Client
	if err := s.db.WithContext(ctx).Find(&clients).Error; err != nil {
		s.log.Error("failed to fetch clients", zap.Error(err))
		return nil, err
	}
	return clients, nil
}

func (s *Service) fetchOrders(ctx context.Context) ([]repairorderdomain.RepairOrder, error) {
	var orders []repairorderdomain.RepairOrder
	if err := s.db.WithContext(ctx).Find(&orders).Error; err != nil {
		s.log.Error("failed to fetch repair orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (s *Service) fetchDocuments(ctx context.Context) ([]documentdomain.Document, error) {
	var docs []documentdomain.Document
	if err := s.db.WithContext(ctx).Find(&docs).Error; err != nil {
		s.log.Error("failed to fetch documents", zap.Error(err))
		return nil, err
	}
	return docs, nil
}

func (s *Service) fetchInventory(ctx context.Context) ([]inventorydomain.Item, error) {
	var items []inventorydomain.Item
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		s.log.Error("failed to fetch inventory", zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (s *Service) fetchTickets(ctx context.Context) ([]ticketdomain.Ticket, error) {
	var tickets []ticketdomain.Ticket
	if err := s.db.WithContext(ctx).Find(&tickets).Error; err != nil {
		s.log.Error("failed to fetch tickets", zap.Error(err))
		return nil, err
	}
	return tickets, nil
}
