package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/talleraustral/taller/internal/client/domain"
	documentdomain "github.com/talleraustral/taller/internal/document/domain"
	inventorydomain "github.com/talleraustral/taller/internal/inventory/domain"
	providerdomain "github.com/talleraustral/taller/internal/provider/domain"
	repairorderdomain "github.com/talleraustral/taller/internal/repairorder/domain"
	"github.com/talleraustral/taller/internal/sysconfig"
	"gorm.io/gorm"
)

// EnsureDemoData seeds a small workshop data set for local development.
// The seed is idempotent: it backs off when any client already exists.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&clientdomain.Client{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()

		cli := clientdomain.Client{
			ID:        node.Generate(),
			Name:      "Juan Pérez",
			Email:     "juan.perez@example.com",
			Phone:     "+54 9 11 5555-0101",
			Address:   "Av. Corrientes 1234, CABA",
			Document:  "20-12345678-3",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&cli).Error; err != nil {
			return err
		}

		prov := providerdomain.Provider{
			ID:           node.Generate(),
			Type:         providerdomain.TypeCompany,
			Name:         "Repuestos del Sur",
			BusinessName: "Repuestos del Sur S.R.L.",
			ContactName:  "María López",
			CUIT:         "30-71234567-9",
			Email:        "ventas@repuestosdelsur.com.ar",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Create(&prov).Error; err != nil {
			return err
		}

		minimum := 5
		sku := "PAN-156-FHD"
		item := inventorydomain.Item{
			ID:           node.Generate(),
			Name:         "Pantalla 15.6\" FHD",
			SKU:          &sku,
			Category:     "Pantallas",
			Quantity:     12,
			MinimumStock: &minimum,
			CostPrice:    45000,
			SalePrice:    72000,
			ProviderID:   &prov.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		order := repairorderdomain.RepairOrder{
			ID:             node.Generate(),
			OrderNumber:    "OR-000001",
			ClientID:       cli.ID,
			EquipmentType:  "Notebook",
			EquipmentBrand: "Lenovo",
			EquipmentModel: "ThinkPad E14",
			ReportedIssue:  "No enciende",
			Status:         repairorderdomain.StatusIngresado,
			EntryDate:      now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		doc := documentdomain.Document{
			ID:            node.Generate(),
			DocType:       documentdomain.DocTypePresupuesto,
			InvoiceNumber: "PR-0001-00000001",
			ClientID:      cli.ID,
			RepairOrderID: &order.ID,
			IssueDate:     now,
			Subtotal:      90000,
			Tax:           90000 * documentdomain.TaxRate,
			Total:         90000 * (1 + documentdomain.TaxRate),
			Status:        documentdomain.StatusPendiente,
			Items: []documentdomain.LineItem{
				{Description: "Cambio de pantalla", Quantity: 1, UnitPrice: 90000, Amount: 90000},
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}

		setting := sysconfig.Setting{
			Key:       sysconfig.KeyOverdueThresholdDays,
			Value:     "15",
			UpdatedAt: now,
		}
		return tx.Where(sysconfig.Setting{Key: setting.Key}).FirstOrCreate(&setting).Error
	})
}
