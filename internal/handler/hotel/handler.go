package hotel

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelops/hotel-api/internal/handler"
	"github.com/hotelops/hotel-api/internal/model"
	"github.com/hotelops/hotel-api/internal/repository"
	hotelService "github.com/hotelops/hotel-api/internal/service/hotel"
)

type Handler struct {
	service hotelService.HotelServicer
}

func NewHandler(service hotelService.HotelServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	hotels := r.Group("/hotels")
	{
		hotels.POST("", h.CreateHotel)
		hotels.GET("", h.ListHotels)
		hotels.GET("/:id", h.GetHotel)
		hotels.PUT("/:id", h.UpdateHotel)
		hotels.DELETE("/:id", h.DeleteHotel)
	}
}

type createHotelRequest struct {
	Name     string              `json:"name" binding:"required"`
	Address  *string             `json:"address"`
	Phone    *string             `json:"phone"`
	Timezone string              `json:"timezone"`
	Settings model.HotelSettings `json:"settings"`
}

func (h *Handler) CreateHotel(c *gin.Context) {
	var req createHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	hotel := &model.Hotel{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Timezone: req.Timezone,
		Settings: req.Settings,
	}

	if err := h.service.CreateHotel(c.Request.Context(), hotel); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(hotel))
}

func (h *Handler) GetHotel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid hotel ID"))
		return
	}

	hotel, err := h.service.GetHotel(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("hotel not found"))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(hotel))
}

func (h *Handler) UpdateHotel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid hotel ID"))
		return
	}

	hotel, err := h.service.GetHotel(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("hotel not found"))
			return
		}
		_ = c.Error(err)
		return
	}

	if err := c.ShouldBindJSON(hotel); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	hotel.ID = id

	if err := h.service.UpdateHotel(c.Request.Context(), hotel); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(hotel))
}

func (h *Handler) DeleteHotel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid hotel ID"))
		return
	}

	if err := h.service.DeleteHotel(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListHotels(c *gin.Context) {
	hotels, err := h.service.ListHotels(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewListResponse(hotels, len(hotels)))
}
