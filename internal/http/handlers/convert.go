package handlers

import (
	"time"

	"jamjam-delivery/internal/domain"
	"jamjam-delivery/internal/lifecycle"
	"jamjam-delivery/internal/pricing"
)

func toSegmentDTO(s domain.RouteSegment) segmentDTO {
	return segmentDTO{
		Number:           s.Number,
		StartPoint:       s.StartPoint,
		EndPoint:         s.EndPoint,
		DistanceKm:       s.DistanceKm.String(),
		EstimatedTimeMin: s.EstimatedTimeMin,
		Status:           s.Status,
	}
}

func toRiderDTO(r domain.Rider) riderDTO {
	return riderDTO{
		ID:               r.ID,
		Name:             r.Name,
		Rating:           r.Rating,
		Trips:            r.Trips,
		Distance:         r.Distance,
		Phone:            r.Phone,
		Vehicle:          r.Vehicle,
		LicensePlate:     r.LicensePlate,
		EstimatedArrival: r.EstimatedArrival,
		PricePerSegment:  pricing.Display(r.PricePerSegment),
	}
}

func toAssignmentDTO(a domain.RiderAssignment) assignmentDTO {
	return assignmentDTO{
		Rider:      toRiderDTO(a.Rider),
		Segment:    toSegmentDTO(a.Segment),
		AcceptedAt: a.AcceptedAt.UTC().Format(time.RFC3339),
	}
}

func toSnapshotResponse(id string, snap lifecycle.Snapshot) snapshotResponse {
	o := snap.Order
	resp := snapshotResponse{
		ID:     id,
		Stage:  o.Stage,
		Status: o.Status,

		Pickup:      o.Pickup,
		Dropoff:     o.Dropoff,
		Weight:      o.Weight,
		PackageType: o.PackageType,

		SenderPhone:          o.SenderPhone,
		RecipientPhone:       o.RecipientPhone,
		RecipientBackupPhone: o.RecipientBackupPhone,

		MultiRider:     o.MultiRider,
		RequiredRiders: o.RequiredRiders,
		CurrentSegment: o.CurrentSegment,

		Option:       o.Option,
		HasInsurance: o.HasInsurance,
		BasePrice:    pricing.Display(o.BasePrice),
		TotalPrice:   pricing.Display(o.TotalPrice),

		Payer:              o.Payer,
		CollectCash:        o.CollectCash,
		CollectCashDetails: o.CollectCashDetails,

		PaymentMethod:     o.PaymentMethod,
		ProcessingPayment: o.ProcessingPayment,

		Segments:    make([]segmentDTO, 0, len(snap.Segments)),
		Assignments: make([]assignmentDTO, 0, len(snap.Assignments)),
		Chat:        snap.Chat,
	}
	if o.HasInsurance {
		resp.DeclaredValue = pricing.Display(o.DeclaredValue)
		resp.InsuranceCost = pricing.Display(o.InsuranceCost)
	}
	if o.CollectCash {
		resp.CollectCashAmount = pricing.Display(o.CollectCashAmount)
	}
	for _, s := range snap.Segments {
		resp.Segments = append(resp.Segments, toSegmentDTO(s))
	}
	for _, a := range snap.Assignments {
		resp.Assignments = append(resp.Assignments, toAssignmentDTO(a))
	}
	if snap.SelectedRider != nil {
		dto := toRiderDTO(*snap.SelectedRider)
		resp.SelectedRider = &dto
	}
	return resp
}
