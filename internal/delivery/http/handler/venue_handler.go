package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/venuedate/venuedate-backend/internal/delivery/http/middleware"
	"github.com/venuedate/venuedate-backend/internal/usecase/presence"
	"github.com/venuedate/venuedate-backend/internal/usecase/venue"
)

// VenueHandler serves the public venue surface: listings, proximity, and
// presence (check-in/out, heartbeat, occupancy).
type VenueHandler struct {
	venueUseCase    *venue.VenueUseCase
	presenceUseCase *presence.PresenceUseCase
}

func NewVenueHandler(venueUseCase *venue.VenueUseCase, presenceUseCase *presence.PresenceUseCase) *VenueHandler {
	return &VenueHandler{venueUseCase: venueUseCase, presenceUseCase: presenceUseCase}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (h *VenueHandler) List(c *gin.Context) {
	venues, err := h.venueUseCase.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"venues": venues})
}

func (h *VenueHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	v, err := h.venueUseCase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, v)
}

func (h *VenueHandler) Nearby(c *gin.Context) {
	var req presence.NearbyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	venues, err := h.presenceUseCase.Nearby(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"venues": venues})
}

func (h *VenueHandler) Detect(c *gin.Context) {
	var req presence.DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "lat and lng required")
		return
	}
	resp, err := h.presenceUseCase.Detect(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *VenueHandler) CheckIn(c *gin.Context) {
	var req presence.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "venue_id required")
		return
	}
	resp, err := h.presenceUseCase.CheckIn(c.Request.Context(), middleware.UserID(c), req.VenueID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *VenueHandler) CheckOut(c *gin.Context) {
	if err := h.presenceUseCase.CheckOut(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "checked out")
}

func (h *VenueHandler) Heartbeat(c *gin.Context) {
	resp, err := h.presenceUseCase.Heartbeat(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *VenueHandler) PeopleCount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.presenceUseCase.PeopleCount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// AdminVenueHandler serves the admin venue registry.
type AdminVenueHandler struct {
	venueUseCase *venue.VenueUseCase
}

func NewAdminVenueHandler(venueUseCase *venue.VenueUseCase) *AdminVenueHandler {
	return &AdminVenueHandler{venueUseCase: venueUseCase}
}

func (h *AdminVenueHandler) Create(c *gin.Context) {
	var req venue.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	v, err := h.venueUseCase.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, v)
}

func (h *AdminVenueHandler) List(c *gin.Context) {
	var req venue.ListVenuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	resp, err := h.venueUseCase.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *AdminVenueHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	v, err := h.venueUseCase.GetAny(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, v)
}

func (h *AdminVenueHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req venue.UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	v, err := h.venueUseCase.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, v)
}

func (h *AdminVenueHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.venueUseCase.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "venue deleted")
}

func (h *AdminVenueHandler) Stats(c *gin.Context) {
	stats, err := h.venueUseCase.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, stats)
}
