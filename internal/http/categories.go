package http

import (
	"net/http"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/service"
	"github.com/summitlog/summitlog/pkg/httpx"
)

// CategoriesHandler serves the global category catalogue. Reads sit
// behind the user gate; writes behind the admin gate.
type CategoriesHandler struct {
	Categories *service.CategoryService
}

type categoryRequest struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

//	@Summary	Create a category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		categoryRequest	true	"Category"
//	@Success	201		{object}	CategoryResponse
//	@Failure	409		{object}	APIError	"Name already in use"
//	@Router		/v1/categories [post].
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.Categories.Create(r.Context(), service.CategoryInput{
		Name:        req.Name,
		Icon:        req.Icon,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCategoryResponse(c))
}

//	@Summary	List categories
//	@Tags		Categories
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	CategoryResponse
//	@Router		/v1/categories [get].
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	cs, err := h.Categories.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]CategoryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategoryResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

//	@Summary	Get a category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Category id"
//	@Success	200	{object}	CategoryResponse
//	@Router		/v1/categories/{id} [get].
func (h *CategoriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.Categories.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(c))
}

type categoryUpdateRequest struct {
	Name        *string `json:"name"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

//	@Summary	Update a category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Category id"
//	@Param		request	body		categoryUpdateRequest	true	"Fields to change"
//	@Success	200		{object}	CategoryResponse
//	@Router		/v1/categories/{id} [put].
func (h *CategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req categoryUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.Categories.Update(r.Context(), r.PathValue("id"), domain.CategoryUpdate{
		Name:        req.Name,
		Icon:        req.Icon,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(c))
}

//	@Summary	Delete a category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Category id"
//	@Success	204
//	@Router		/v1/categories/{id} [delete].
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Categories.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
