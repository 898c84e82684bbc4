package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/pkg/pg"
)

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(txn)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, translate(err)
	}
	return toTransactionModel(entity), nil
}

func (r *TransactionRepository) Update(ctx context.Context, txn *model.Transaction) error {
	entity := toTransactionEntity(txn)
	result := r.Write(ctx).
		Model(&TransactionEntity{}).
		Where("id = ? AND model_id = ?", txn.ID, txn.TenantID).
		Updates(map[string]any{
			"client_name":      entity.ClientName,
			"applicant_name":   entity.ApplicantName,
			"email":            entity.Email,
			"email_link":       entity.EmailLink,
			"service_type":     entity.ServiceType,
			"app_id":           entity.AppID,
			"country_name":     entity.CountryName,
			"country_price":    entity.CountryPrice,
			"rate":             entity.Rate,
			"addition":         entity.Addition,
			"amount":           entity.Amount,
			"amount_n":         entity.AmountN,
			"transaction_date": entity.TransactionDate,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, tenantID, id int64) error {
	return translate(r.Write(ctx).
		Where("id = ? AND model_id = ?", id, tenantID).
		Delete(&TransactionEntity{}).Error)
}

func (r *TransactionRepository) GetByID(ctx context.Context, tenantID, id int64) (*model.Transaction, error) {
	var entity TransactionEntity
	err := r.Read(ctx).
		Where("id = ? AND model_id = ?", id, tenantID).
		First(&entity).Error
	if err != nil {
		return nil, translate(err)
	}
	return toTransactionModel(&entity), nil
}

// AppIDExists reports whether another transaction in the tenant already uses
// app_id. excludeID skips the row being edited; pass 0 on create.
func (r *TransactionRepository) AppIDExists(ctx context.Context, tenantID, appID, excludeID int64) (bool, error) {
	var count int64
	q := r.Read(ctx).
		Model(&TransactionEntity{}).
		Where("app_id = ? AND model_id = ?", appID, tenantID)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *TransactionRepository) SetPaid(ctx context.Context, id int64, paid bool) error {
	result := r.Write(ctx).
		Model(&TransactionEntity{}).
		Where("id = ?", id).
		Update("is_paid", paid)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) List(ctx context.Context, tenantID int64, f model.TransactionFilter) ([]*model.Transaction, *model.TransactionSums, error) {
	filtered := func(q *gorm.DB) *gorm.DB {
		q = q.Model(&TransactionEntity{}).Where("model_id = ?", tenantID)
		if f.ClientName != nil {
			q = q.Where("client_name = ?", *f.ClientName)
		}
		if f.CountryName != nil {
			q = q.Where("country_name = ?", *f.CountryName)
		}
		if f.DateFrom != nil {
			q = q.Where("transaction_date >= ?", *f.DateFrom)
		}
		if f.DateTo != nil {
			q = q.Where("transaction_date <= ?", *f.DateTo)
		}
		if f.Paid != nil {
			q = q.Where("is_paid = ?", *f.Paid)
		}
		return q
	}

	var entities []*TransactionEntity
	q := filtered(r.Read(ctx)).Order("transaction_date DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if err := q.Find(&entities).Error; err != nil {
		return nil, nil, translate(err)
	}

	var sums model.TransactionSums
	err := filtered(r.Read(ctx)).
		Select("COALESCE(SUM(amount),0) AS sum_amount, COALESCE(SUM(amount_n),0) AS sum_amount_n").
		Scan(&sums).Error
	if err != nil {
		return nil, nil, translate(err)
	}

	return toTransactionModels(entities), &sums, nil
}

func (r *TransactionRepository) ListByClient(ctx context.Context, tenantID int64, clientName string) ([]*model.Transaction, error) {
	var entities []*TransactionEntity
	err := r.Read(ctx).
		Where("client_name = ? AND model_id = ?", clientName, tenantID).
		Order("transaction_date DESC").
		Find(&entities).Error
	if err != nil {
		return nil, translate(err)
	}
	return toTransactionModels(entities), nil
}
