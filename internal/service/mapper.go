package service

import (
	"time"

	"procurement-bidding-api/internal/entity"
)

func mapRequirement(r *entity.Requirement, items []entity.RequirementItem) *entity.RequirementOutputModel {
	out := &entity.RequirementOutputModel{
		Id:        r.Id.String(),
		Title:     r.Title,
		Status:    r.Status,
		BuyerId:   r.BuyerId.String(),
		Deadline:  r.Deadline.Format(time.RFC3339),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		Items:     make([]entity.RequirementItemOutputModel, 0, len(items)),
	}
	for _, item := range items {
		out.Items = append(out.Items, entity.RequirementItemOutputModel{
			Id:       item.Id.String(),
			ItemName: item.ItemName,
			Quantity: item.Quantity.String(),
			Unit:     item.Unit,
			Category: item.Category,
		})
	}

	return out
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:            b.Id.String(),
		RequirementId: b.RequirementId.String(),
		SupplierId:    b.SupplierId.String(),
		BidAmount:     b.BidAmount.String(),
		DispatchedQty: b.DispatchedQty.String(),
		Status:        b.Status,
		Version:       b.Version,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}

func mapBidWithItems(b *entity.Bid, items []entity.BidItem) *entity.BidOutputModel {
	out := mapBid(b)
	out.Items = make([]entity.BidItemOutputModel, 0, len(items))
	for _, item := range items {
		out.Items = append(out.Items, entity.BidItemOutputModel{
			Id:                item.Id.String(),
			RequirementItemId: item.RequirementItemId.String(),
			UnitPrice:         item.UnitPrice.String(),
			Quantity:          item.Quantity.String(),
			Total:             item.Total.String(),
			DispatchedQty:     item.DispatchedQty.String(),
		})
	}

	return out
}

func mapBids(bids []entity.Bid) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, *mapBid(&bid))
	}

	return s
}

func mapQuote(q *entity.Quote, rank int) entity.RankedQuoteModel {
	return entity.RankedQuoteModel{
		Rank:       rank,
		BidId:      q.BidId.String(),
		BidItemId:  q.BidItemId.String(),
		SupplierId: q.SupplierId.String(),
		UnitPrice:  q.UnitPrice.String(),
		Quantity:   q.Quantity.String(),
	}
}

func mapL1(requirementId string, results []entity.L1Result) *entity.L1OutputModel {
	out := &entity.L1OutputModel{
		RequirementId: requirementId,
		Items:         make([]entity.L1ItemOutputModel, 0, len(results)),
	}
	for _, result := range results {
		item := entity.L1ItemOutputModel{
			RequirementItemId: result.Item.Id.String(),
			ItemName:          result.Item.ItemName,
			Quantity:          result.Item.Quantity.String(),
			Unit:              result.Item.Unit,
			Ranked:            make([]entity.RankedQuoteModel, 0, len(result.Ranked)),
		}
		for i := range result.Ranked {
			item.Ranked = append(item.Ranked, mapQuote(&result.Ranked[i], i+1))
		}
		if result.Lowest != nil {
			lowest := mapQuote(result.Lowest, 1)
			item.Lowest = &lowest
		}
		out.Items = append(out.Items, item)
	}

	return out
}

func mapCommission(rec *entity.CommissionRecord) *entity.CommissionOutputModel {
	return &entity.CommissionOutputModel{
		Id:                      rec.Id.String(),
		BidId:                   rec.BidId.String(),
		PlatformFeePerUnit:      rec.PlatformFeePerUnit.String(),
		ReferralSharePercentage: rec.ReferralSharePercentage.String(),
		DispatchedQty:           rec.DispatchedQty.String(),
		CommissionAmount:        rec.CommissionAmount.String(),
		PlatformNetRevenue:      rec.PlatformNetRevenue.String(),
		UpdatedAt:               rec.UpdatedAt.Format(time.RFC3339),
	}
}
