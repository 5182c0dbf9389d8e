package handler

import (
	"github.com/studiolume/pos-backoffice/internal/core/domain"
	"github.com/studiolume/pos-backoffice/internal/core/ports"
)

// --- Request → Service input ---

func toRecordSaleInput(req recordSaleRequest, idempotencyKey string) ports.RecordSaleInput {
	items := make([]ports.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ports.SaleItemInput{
			ServiceTypeID: item.ServiceTypeID,
			ChargedAmount: item.ChargedAmount,
		})
	}
	return ports.RecordSaleInput{
		ClientID:       req.ClientID,
		TotalAmount:    req.TotalAmount,
		Items:          items,
		IdempotencyKey: idempotencyKey,
	}
}

// --- Service result → HTTP response ---

func toRecordSaleResponse(r *ports.RecordSaleResult) recordSaleResponse {
	return recordSaleResponse{
		SaleID:         r.SaleID,
		CreatedAt:      r.CreatedAt,
		AlreadyExisted: r.AlreadyExisted,
	}
}

func toSaleViewResponse(v *domain.SaleView) saleViewResponse {
	items := make([]saleItemViewResponse, len(v.Items))
	for i, item := range v.Items {
		items[i] = saleItemViewResponse{
			ID:              item.ID,
			ServiceTypeName: item.ServiceTypeName,
			ChargedAmount:   item.ChargedAmount,
		}
	}
	return saleViewResponse{
		ID:           v.ID,
		TotalAmount:  v.TotalAmount,
		CreatedAt:    v.CreatedAt.UTC(),
		ClientName:   v.ClientName,
		OperatorName: v.OperatorName,
		Items:        items,
	}
}

func toHistoryResponse(views []*domain.SaleView) []saleViewResponse {
	out := make([]saleViewResponse, len(views))
	for i, v := range views {
		out[i] = toSaleViewResponse(v)
	}
	return out
}
