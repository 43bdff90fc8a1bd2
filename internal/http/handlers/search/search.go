// Package search реализует HTTP-обработчик поиска верифицированных бойцов.
package search

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fighters-hub/internal/http/request"
	"github.com/magabrotheeeer/fighters-hub/internal/http/response"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Service поиск бойцов.
type Service interface {
	Search(ctx context.Context, f models.SearchFilter) ([]models.PublicProfile, error)
}

// Handler обрабатывает поисковые запросы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Поиск бойцов
// @Description Ищет среди верифицированных. Текстовые фильтры без учета регистра,
// @Description числовые диапазоны включительно. Нечисловые значения игнорируются.
// @Tags Search
// @Produce json
// @Param city query string false "Город"
// @Param full_name query string false "Имя, любое слово"
// @Param sport query string false "Вид спорта"
// @Param status query string false "Статус"
// @Param weight_min query int false "Вес от"
// @Param weight_max query int false "Вес до"
// @Param height_min query int false "Рост от"
// @Param height_max query int false "Рост до"
// @Param age_min query int false "Возраст от"
// @Param age_max query int false "Возраст до"
// @Success 200 {object} response.Response
// @Router /search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	f := ParseFilter(r)
	log.Debug("search filter parsed", slog.Any("filter", f))

	profiles, err := h.service.Search(r.Context(), f)
	if err != nil {
		log.Error("search failed", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":    len(profiles),
		"profiles": profiles,
	}))
}

// ParseFilter собирает SearchFilter из query-параметров.
func ParseFilter(r *http.Request) models.SearchFilter {
	q := r.URL.Query()
	return models.SearchFilter{
		City:      strings.TrimSpace(q.Get("city")),
		FullName:  strings.TrimSpace(q.Get("full_name")),
		Sport:     strings.TrimSpace(q.Get("sport")),
		Status:    strings.TrimSpace(q.Get("status")),
		WeightMin: request.OptionalInt(r, "weight_min"),
		WeightMax: request.OptionalInt(r, "weight_max"),
		HeightMin: request.OptionalInt(r, "height_min"),
		HeightMax: request.OptionalInt(r, "height_max"),
		AgeMin:    request.OptionalInt(r, "age_min"),
		AgeMax:    request.OptionalInt(r, "age_max"),
	}
}
